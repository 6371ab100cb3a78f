package viewer

import (
	"encoding/binary"
	"fmt"
	"math"
	"math/rand"
	"runtime"
	"sync"
	"time"

	"github.com/glcage/glcage/pkg/config"
	"github.com/glcage/glcage/pkg/gl"
	"github.com/glcage/glcage/pkg/library"
	"github.com/glcage/glcage/pkg/logger"
	"github.com/glcage/glcage/pkg/screenshot"
	"github.com/glcage/glcage/pkg/surface"
)

// the built-in fullscreen pair, also the vertex fallback for
// library shaders without a vertex file
const (
	defaultVert = `#version 120
attribute vec2 a_position;
varying vec2 v_texcoord;
void main() {
	v_texcoord = a_position * 0.5 + 0.5;
	gl_Position = vec4(a_position, 0.0, 1.0);
}`
	defaultFrag = `#version 120
uniform vec2 u_resolution;
uniform float u_time;
uniform sampler2D u_noise;
varying vec2 v_texcoord;
void main() {
	vec2 uv = v_texcoord;
	float n = texture2D(u_noise, uv * 4.0).r;
	gl_FragColor = vec4(uv, 0.5 + 0.5 * sin(u_time + n), 1.0);
}`
	scopeVert = `#version 120
attribute vec2 a_position;
void main() { gl_Position = vec4(a_position, 0.0, 1.0); }`
	scopeFrag = `#version 120
uniform vec3 u_color;
void main() { gl_FragColor = vec4(u_color, 1.0); }`
)

const (
	noiseSide   = 64
	scopePoints = 128
)

// Frame is one RGBA top-down readback of the offscreen target.
type Frame struct {
	W, H int
	Pix  []byte
	Seq  uint64
}

func (f Frame) Copy() Frame {
	return Frame{W: f.W, H: f.H, Seq: f.Seq, Pix: append([]byte{}, f.Pix...)}
}

// BuildInfo reports the outcome of a shader program rebuild.
type BuildInfo struct {
	Name string
	Err  error
}

// Renderer runs the GL loop on its own locked OS thread: it owns the
// surface, the context and every GL resource, renders the selected
// shader into an offscreen framebuffer and keeps the latest readback
// in a frame slot. All cross-thread mutations go through jobs.
type Renderer struct {
	conf config.ViewerConfig
	lib  library.ShaderLibrary
	log  *logger.Logger

	// GL-thread state
	sf      surface.Surface
	ctx     *gl.Context
	fb      *gl.Framebuffer
	quad    *gl.Buffer
	vao     *gl.VertexArray
	program *gl.Program
	noise   *gl.Texture
	scope   *gl.Buffer
	scopePr *gl.Program

	jobs    chan func()
	done    chan struct{}
	stopped chan struct{}

	onBuild func(BuildInfo)

	scratch []byte

	mu      sync.Mutex
	frame   Frame
	current string
}

func NewRenderer(conf config.ViewerConfig, lib library.ShaderLibrary, log *logger.Logger) *Renderer {
	w, h := conf.Gfx.Width, conf.Gfx.Height
	return &Renderer{
		conf:    conf,
		lib:     lib,
		log:     log,
		jobs:    make(chan func(), 8),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
		scratch: make([]byte, w*h*4),
		frame:   Frame{W: w, H: h, Pix: make([]byte, w*h*4)},
	}
}

// OnBuild registers a callback fired after every program rebuild.
func (r *Renderer) OnBuild(fn func(BuildInfo)) { r.onBuild = fn }

// Start spins the render loop and blocks until the context with the
// initial program is up, or fails.
func (r *Renderer) Start() error {
	ready := make(chan error, 1)
	go r.loop(ready)
	return <-ready
}

// Stop terminates the render loop and waits for the GL teardown.
func (r *Renderer) Stop() {
	close(r.done)
	<-r.stopped
}

// Use switches the active shader by its library name,
// an empty name selects the built-in one.
func (r *Renderer) Use(name string) {
	r.enqueue(func() {
		if err := r.build(name); err != nil {
			r.log.Error().Err(err).Msgf("shader switch fail, keeping the previous program")
		}
	})
}

// Reload rebuilds the active shader, keeping the previous program
// when the new sources don't compile.
func (r *Renderer) Reload() {
	r.enqueue(func() {
		if err := r.build(r.Current()); err != nil {
			r.log.Error().Err(err).Msgf("shader reload fail, keeping the previous program")
		}
	})
}

// enqueue hands a job to the render thread, dropping it when the
// loop is already stopped.
func (r *Renderer) enqueue(job func()) {
	select {
	case r.jobs <- job:
	case <-r.done:
	}
}

// Current returns the name of the active shader.
func (r *Renderer) Current() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// Frame returns a copy of the latest readback.
func (r *Renderer) Frame() Frame {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frame.Copy()
}

// loop owns the GL context from creation to teardown.
// Every GL call happens on this goroutine, pinned to its OS thread.
func (r *Renderer) loop(ready chan error) {
	// the OpenGL context below is bound to this thread
	runtime.LockOSThread()
	defer close(r.stopped)

	if err := r.init(); err != nil {
		r.teardown()
		ready <- err
		return
	}
	// the initial shader has to compile, later rebuilds are fail-soft
	if err := r.build(r.conf.Viewer.Render.Shader); err != nil {
		r.teardown()
		ready <- fmt.Errorf("initial shader: %w", err)
		return
	}
	ready <- nil

	fps := r.conf.Viewer.Render.Fps
	if fps <= 0 {
		fps = 30
	}
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	start := time.Now()
	for {
		select {
		case <-r.done:
			r.teardown()
			return
		case job := <-r.jobs:
			job()
		case <-ticker.C:
			r.render(time.Since(start))
		}
	}
}

func (r *Renderer) init() error {
	gfx := r.conf.Gfx

	profile := surface.ProfileCompat
	if gfx.Gl.AutoContext {
		profile = surface.ProfileAuto
	}
	sf, err := surface.New(gfx.Provider, surface.Config{
		Profile:      profile,
		VersionMajor: gfx.Gl.VersionMajor,
		VersionMinor: gfx.Gl.VersionMinor,
	}, r.log)
	if err != nil {
		return fmt.Errorf("surface: %w", err)
	}
	r.sf = sf
	if err := sf.Bind(); err != nil {
		return fmt.Errorf("gl bind: %w", err)
	}
	// the loop never swaps, no point in waiting for the vsync
	if err := sf.SwapInterval(0); err != nil {
		r.log.Warn().Err(err).Msg("swap interval fail")
	}

	ctx, err := gl.NewContext(sf.ProcAddress, r.log)
	if err != nil {
		return err
	}
	r.ctx = ctx
	ctx.LogDriverInfo()

	fb, err := ctx.NewFramebuffer(gfx.Width, gfx.Height, gl.RGBA8888, gfx.Gl.HasDepth, gfx.Gl.HasStencil)
	if err != nil {
		return err
	}
	r.fb = fb

	// x, y pairs of a fullscreen triangle strip
	r.quad = ctx.NewBufferNoRetain(gl.ArrayBuffer, gl.StaticDraw, packFloats(
		-1, -1, 1, -1, -1, 1, 1, 1,
	))
	vao, err := ctx.NewVertexArray()
	if err != nil {
		return err
	}
	r.vao = vao

	r.noise = ctx.NewTexture(0, noiseSide, noiseSide, noisePixels())

	if r.conf.Viewer.Render.Overlay {
		if err := r.initScope(); err != nil {
			return err
		}
	}
	return ctx.Error()
}

// initScope sets up the animated line on top of the image: a line
// strip updated in place each frame through the retained buffer.
func (r *Renderer) initScope() error {
	pr, err := r.ctx.NewProgram(scopeVert, scopeFrag)
	if err != nil {
		return fmt.Errorf("scope shader: %w", err)
	}
	r.scopePr = pr
	r.scope = r.ctx.NewBuffer(gl.ArrayBuffer, gl.DynamicDraw, make([]byte, scopePoints*2*4))
	return nil
}

// build compiles and links a (re)selected shader program. On failure
// the previous program stays active and the error is reported.
func (r *Renderer) build(name string) error {
	vert, frag := defaultVert, defaultFrag
	if name != "" {
		shader := r.lib.FindShaderByName(name)
		if !shader.Found() {
			err := fmt.Errorf("no shader %v in the library", name)
			r.report(BuildInfo{Name: name, Err: err})
			return err
		}
		v, f, err := shader.Load("")
		if err != nil {
			r.report(BuildInfo{Name: name, Err: err})
			return err
		}
		if v != "" {
			vert = v
		}
		frag = f
	}

	program, err := r.ctx.NewProgram(vert, frag)
	if err != nil {
		r.report(BuildInfo{Name: name, Err: err})
		return err
	}

	if r.program != nil {
		r.program.Release()
	}
	r.program = program

	program.Use()
	r.vao.Bind()
	r.quad.Bind()
	r.vao.FloatAttrib(program.Attrib("a_position"), 2, 0, 0)

	// fresh noise for every switch
	r.noise.Update(noisePixels())
	r.noise.Activate()
	program.Uniform("u_noise").Set1i(r.noise.Unit())

	r.mu.Lock()
	r.current = name
	r.mu.Unlock()

	r.log.Info().Msgf("shader: %v", displayName(name))
	r.report(BuildInfo{Name: name})
	return nil
}

func (r *Renderer) render(elapsed time.Duration) {
	if r.program == nil {
		return
	}
	w, h := r.fb.Size()

	r.fb.Bind()
	r.ctx.Viewport(0, 0, int32(w), int32(h))
	r.ctx.ClearColor(0, 0, 0, 1)
	r.ctx.Clear()

	t := float32(elapsed.Seconds())

	r.program.Use()
	r.program.Uniform("u_time").Set1f(t)
	r.program.Uniform("u_resolution").Set2f(float32(w), float32(h))
	r.vao.Bind()
	r.ctx.DrawArrays(gl.TriangleStrip, 0, 4)

	if r.scope != nil {
		r.renderScope(t)
	}
	r.vao.Unbind()

	if err := r.fb.ReadPixels(r.scratch); err != nil {
		r.log.Error().Err(err).Msg("readback fail")
		return
	}

	r.mu.Lock()
	copy(r.frame.Pix, r.scratch)
	screenshot.FlipV(screenshot.FromRGBA(r.frame.W, r.frame.H, r.frame.Pix))
	r.frame.Seq++
	r.mu.Unlock()
}

// renderScope rewrites the retained point payload in place and pushes
// it with a ranged buffer write, then draws the line strip.
func (r *Renderer) renderScope(t float32) {
	pts := r.scope.Payload()
	for i := 0; i < scopePoints; i++ {
		x := float32(i)/float32(scopePoints-1)*2 - 1
		y := float32(math.Sin(float64(x)*4+float64(t)*2))*0.2 - 0.7
		binary.LittleEndian.PutUint32(pts[i*8:], math.Float32bits(x))
		binary.LittleEndian.PutUint32(pts[i*8+4:], math.Float32bits(y))
	}
	if err := r.scope.SubData(0, len(pts)); err != nil {
		r.log.Error().Err(err).Msg("scope update fail")
		return
	}

	r.scopePr.Use()
	r.scopePr.Uniform("u_color").Set3f(0.3, 1, 0.6)
	r.scope.Bind()
	r.vao.FloatAttrib(r.scopePr.Attrib("a_position"), 2, 0, 0)
	r.ctx.DrawArrays(gl.LineStrip, 0, scopePoints)

	// restore the quad layout for the next frame
	r.quad.Bind()
	r.vao.FloatAttrib(r.program.Attrib("a_position"), 2, 0, 0)
}

func (r *Renderer) report(info BuildInfo) {
	if r.onBuild != nil {
		r.onBuild(info)
	}
}

func (r *Renderer) teardown() {
	if r.scopePr != nil {
		r.scopePr.Release()
	}
	if r.scope != nil {
		r.scope.Release()
	}
	if r.program != nil {
		r.program.Release()
	}
	if r.noise != nil {
		r.noise.Release()
	}
	if r.vao != nil {
		r.vao.Release()
	}
	if r.quad != nil {
		r.quad.Release()
	}
	if r.fb != nil {
		r.fb.Release()
	}
	if r.ctx != nil {
		r.ctx.Reset()
	}
	if r.sf != nil {
		if err := r.sf.Destroy(); err != nil {
			r.log.Error().Err(err).Msg("surface destroy fail")
		}
	}
}

func packFloats(values ...float32) []byte {
	data := make([]byte, len(values)*4)
	for i, v := range values {
		binary.LittleEndian.PutUint32(data[i*4:], math.Float32bits(v))
	}
	return data
}

func noisePixels() []byte {
	pix := make([]byte, noiseSide*noiseSide*4)
	rand.Read(pix)
	for i := 3; i < len(pix); i += 4 {
		pix[i] = 255
	}
	return pix
}

func displayName(name string) string {
	if name == "" {
		return "(built-in)"
	}
	return name
}
