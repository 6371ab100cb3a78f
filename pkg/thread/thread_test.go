package thread

import "testing"

func TestMainMaybe(t *testing.T) {
	if isMacOs {
		t.Skip("needs the main thread loop")
	}
	value := 0
	MainMaybe(func() { value = 1 })
	if value != 1 {
		t.Errorf("wrong value %v", value)
	}
}

func TestMainWrapMaybe(t *testing.T) {
	value := 0
	MainWrapMaybe(func() { value = 2 })
	if value != 2 {
		t.Errorf("wrong value %v", value)
	}
}
