package gl

import "testing"

// Released handles turn into no-ops, so disposing a resource twice
// or disposing a never-created one must not blow up.
func TestReleaseZeroHandles(t *testing.T) {
	b := &Buffer{ctx: &Context{}}
	b.Release()
	b.Release()

	p := &Program{}
	p.Release()
	p.Release()

	v := &VertexArray{ctx: &Context{}}
	v.Release()

	x := &Texture{ctx: &Context{}}
	x.Release()

	f := &Framebuffer{ctx: &Context{}}
	f.Release()
}

func TestUniformCacheHit(t *testing.T) {
	p := &Program{uniforms: map[string]Location{"u_missing": noLocation, "u_time": 3}}

	if loc := p.Uniform("u_missing"); loc.Valid() {
		t.Errorf("expected an invalid location, got %v", loc)
	}
	if loc := p.Uniform("u_time"); loc != 3 {
		t.Errorf("wrong cached location %v", loc)
	}
	if len(p.uniforms) != 2 {
		t.Errorf("lookup should not grow the cache, got %v", len(p.uniforms))
	}
}

func TestAttribCacheHit(t *testing.T) {
	p := &Program{attribs: map[string]Location{"a_position": 0, "a_gone": noLocation}}

	if loc := p.Attrib("a_position"); !loc.Valid() || loc != 0 {
		t.Errorf("wrong cached location %v", loc)
	}
	if loc := p.Attrib("a_gone"); loc.Valid() {
		t.Errorf("expected an invalid location, got %v", loc)
	}
}
