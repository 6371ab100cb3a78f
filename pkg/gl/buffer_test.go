package gl

import (
	"errors"
	"testing"
)

func TestBufferSubViewReuse(t *testing.T) {
	b := &Buffer{
		payload: make([]byte, 64),
		views:   make(map[uint64][]byte),
	}

	v1, err := b.subView(8, 24)
	if err != nil {
		t.Errorf("no view, %v", err)
	}
	v2, err := b.subView(8, 24)
	if err != nil {
		t.Errorf("no view, %v", err)
	}
	if len(v1) != 16 || len(v2) != 16 {
		t.Errorf("wrong view size, %v %v", len(v1), len(v2))
	}
	if &v1[0] != &v2[0] {
		t.Errorf("same range gave different views")
	}
	if len(b.views) != 1 {
		t.Errorf("expected one memoized view, got %v", len(b.views))
	}

	if _, err := b.subView(0, 8); err != nil {
		t.Errorf("no view, %v", err)
	}
	if len(b.views) != 2 {
		t.Errorf("expected two memoized views, got %v", len(b.views))
	}
}

func TestBufferSubViewWritesThrough(t *testing.T) {
	b := &Buffer{
		payload: []byte{1, 2, 3, 4},
		views:   make(map[uint64][]byte),
	}
	view, err := b.subView(1, 3)
	if err != nil {
		t.Errorf("no view, %v", err)
	}
	b.payload[1] = 42
	if view[0] != 42 {
		t.Errorf("view is detached from the payload")
	}
}

func TestBufferSubViewBounds(t *testing.T) {
	b := &Buffer{
		payload: make([]byte, 8),
		views:   make(map[uint64][]byte),
	}
	tests := []struct {
		begin, end int
	}{
		{begin: -1, end: 4},
		{begin: 5, end: 4},
		{begin: 0, end: 9},
	}
	for _, test := range tests {
		if _, err := b.subView(test.begin, test.end); !errors.Is(err, ErrRange) {
			t.Errorf("expected range error for [%v:%v), got %v", test.begin, test.end, err)
		}
	}
	if len(b.views) != 0 {
		t.Errorf("bad ranges were memoized")
	}
}

func TestBufferSubViewNoPayload(t *testing.T) {
	b := &Buffer{}
	if _, err := b.subView(0, 0); !errors.Is(err, ErrNoPayload) {
		t.Errorf("expected no payload error, got %v", err)
	}
}

func TestRangeKey(t *testing.T) {
	ranges := []struct {
		begin, end int
	}{
		{0, 0},
		{0, 1},
		{1, 1},
		{1, 2},
		{0, 1 << 20},
		{1 << 20, 1 << 21},
	}
	seen := make(map[uint64]int, len(ranges))
	for i, r := range ranges {
		key := rangeKey(r.begin, r.end)
		if j, ok := seen[key]; ok {
			t.Errorf("ranges %v and %v share the key %v", ranges[j], r, key)
		}
		seen[key] = i
	}
}
