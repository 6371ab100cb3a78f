package gl

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v2.1/gl"
)

// Location is a resolved uniform or attribute slot of a program.
// Invalid locations are kept as a negative sentinel, and the GL
// silently ignores writes to them.
type Location int32

const noLocation Location = -1

// Valid reports whether the location resolved to a real slot.
func (l Location) Valid() bool { return l >= 0 }

// Set1i writes a single integer uniform, also used for texture units.
func (l Location) Set1i(v int32) { gl.Uniform1i(int32(l), v) }

// Set1f writes a single float uniform.
func (l Location) Set1f(v float32) { gl.Uniform1f(int32(l), v) }

// Set2f writes a vec2 uniform.
func (l Location) Set2f(x, y float32) { gl.Uniform2f(int32(l), x, y) }

// Set3f writes a vec3 uniform.
func (l Location) Set3f(x, y, z float32) { gl.Uniform3f(int32(l), x, y, z) }

// Set4f writes a vec4 uniform.
func (l Location) Set4f(x, y, z, w float32) { gl.Uniform4f(int32(l), x, y, z, w) }

// SetMat4 writes a column-major 4x4 matrix uniform.
func (l Location) SetMat4(m *[16]float32) { gl.UniformMatrix4fv(int32(l), 1, false, &m[0]) }

// Program is a linked vertex/fragment shader pair with cached
// uniform and attribute locations.
type Program struct {
	ctx *Context
	id  uint32

	vertex   uint32
	fragment uint32

	uniforms map[string]Location
	attribs  map[string]Location
}

// NewProgram compiles a vertex and a fragment shader and links them
// into a program. Compile and link failures carry the driver info log.
func (c *Context) NewProgram(vertexSrc string, fragmentSrc string) (*Program, error) {
	vertex, err := compileShader(gl.VERTEX_SHADER, vertexSrc)
	if err != nil {
		return nil, fmt.Errorf("vertex shader: %w", err)
	}
	fragment, err := compileShader(gl.FRAGMENT_SHADER, fragmentSrc)
	if err != nil {
		gl.DeleteShader(vertex)
		return nil, fmt.Errorf("fragment shader: %w", err)
	}

	id := gl.CreateProgram()
	gl.AttachShader(id, vertex)
	gl.AttachShader(id, fragment)
	gl.LinkProgram(id)

	var status int32
	gl.GetProgramiv(id, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		infoLog := programInfoLog(id)
		gl.DeleteShader(vertex)
		gl.DeleteShader(fragment)
		gl.DeleteProgram(id)
		return nil, fmt.Errorf("program link: %v", infoLog)
	}

	return &Program{
		ctx:      c,
		id:       id,
		vertex:   vertex,
		fragment: fragment,
		uniforms: make(map[string]Location),
		attribs:  make(map[string]Location),
	}, nil
}

// Use makes the program current.
func (p *Program) Use() { p.ctx.useProgram(p.id) }

// Uniform resolves and caches the location of a named uniform.
// A name absent from the program is logged once and then kept as an
// invalid location, so repeated writes to it stay silent no-ops.
func (p *Program) Uniform(name string) Location {
	if loc, ok := p.uniforms[name]; ok {
		return loc
	}
	loc := Location(gl.GetUniformLocation(p.id, gl.Str(name+"\x00")))
	if !loc.Valid() {
		loc = noLocation
		p.ctx.log.Warn().Msgf("no uniform %v in the program %v", name, p.id)
	}
	p.uniforms[name] = loc
	return loc
}

// Attrib resolves and caches the location of a named vertex attribute,
// with the same warn-once semantics as Uniform.
func (p *Program) Attrib(name string) Location {
	if loc, ok := p.attribs[name]; ok {
		return loc
	}
	loc := Location(gl.GetAttribLocation(p.id, gl.Str(name+"\x00")))
	if !loc.Valid() {
		loc = noLocation
		p.ctx.log.Warn().Msgf("no attribute %v in the program %v", name, p.id)
	}
	p.attribs[name] = loc
	return loc
}

// Release deletes the program together with its shader pair.
// It is safe to call more than once.
func (p *Program) Release() {
	if p.id == 0 {
		return
	}
	if p.ctx.program == p.id {
		p.ctx.useProgram(0)
	}
	gl.DeleteShader(p.vertex)
	gl.DeleteShader(p.fragment)
	gl.DeleteProgram(p.id)
	p.id, p.vertex, p.fragment = 0, 0, 0
	p.uniforms, p.attribs = nil, nil
}

func compileShader(xtype uint32, src string) (uint32, error) {
	shader := gl.CreateShader(xtype)
	csrc, free := gl.Strs(src + "\x00")
	gl.ShaderSource(shader, 1, csrc, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		infoLog := shaderInfoLog(shader)
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("compile: %v", infoLog)
	}
	return shader, nil
}

func shaderInfoLog(shader uint32) string {
	var n int32
	gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &n)
	if n == 0 {
		return "(no info log)"
	}
	infoLog := strings.Repeat("\x00", int(n+1))
	gl.GetShaderInfoLog(shader, n, nil, gl.Str(infoLog))
	return strings.TrimRight(infoLog, "\x00")
}

func programInfoLog(program uint32) string {
	var n int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &n)
	if n == 0 {
		return "(no info log)"
	}
	infoLog := strings.Repeat("\x00", int(n+1))
	gl.GetProgramInfoLog(program, n, nil, gl.Str(infoLog))
	return strings.TrimRight(infoLog, "\x00")
}
