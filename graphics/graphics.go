// Package graphics manages GLSL shader programs and the texture units
// they sample through. GL access goes through the Context interface, so
// the package itself carries no GL dependency; backend/opengl provides
// the real driver.
package graphics

import (
	"errors"
	"fmt"
	"strings"

	love "github.com/mcanthony/love-nacl"
)

// ErrNoSource is returned when a shader is created without any source
// code.
var ErrNoSource = errors.New("graphics: cannot create shader: no source code")

// Graphics owns the shader machinery of one GL context: the driver, the
// shared texture unit pool, the current shader and the default shader
// partial sources fall back to.
//
// Graphics and Shader state is confined to the goroutine that owns the
// GL context. Only the pool may be shared wider.
type Graphics struct {
	ctx  Context
	pool *TextureUnitPool

	current        *Shader
	defaultShader  *Shader
	defaultSources Sources

	shaders map[*Shader]struct{}
}

// Option configures a Graphics instance.
type Option func(*Graphics)

// WithTextureUnitPool shares an existing pool instead of creating a fresh
// one. Use when several Graphics values drive programs on the same GL
// context and must agree on unit ownership.
func WithTextureUnitPool(pool *TextureUnitPool) Option {
	return func(g *Graphics) { g.pool = pool }
}

// New creates a Graphics over a GL driver.
func New(ctx Context, opts ...Option) *Graphics {
	g := &Graphics{
		ctx:     ctx,
		pool:    NewTextureUnitPool(),
		shaders: make(map[*Shader]struct{}),
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// NewShader compiles and links a shader program. A missing stage is
// filled in from the default sources; creating a partial shader without
// the matching default set is an error.
func (g *Graphics) NewShader(sources Sources) (*Shader, error) {
	completed, err := g.completeSources(sources)
	if err != nil {
		return nil, err
	}

	s := &Shader{
		gfx:      g,
		sources:  completed,
		uniforms: make(map[string]int32),
		units:    make(map[string]int),
	}
	if err := s.load(); err != nil {
		return nil, err
	}

	g.shaders[s] = struct{}{}
	return s, nil
}

// completeSources fills missing stages from the default sources.
func (g *Graphics) completeSources(sources Sources) (Sources, error) {
	completed := make(Sources, 2)
	for stage, source := range sources {
		if source != "" {
			completed[stage] = source
		}
	}
	if len(completed) == 0 {
		return nil, ErrNoSource
	}

	for _, stage := range []ShaderStage{StageVertex, StagePixel} {
		if _, ok := completed[stage]; ok {
			continue
		}
		def, ok := g.defaultSources[stage]
		if !ok {
			return nil, fmt.Errorf("graphics: cannot create shader: no default %s shader code", stage)
		}
		completed[stage] = def
	}
	return completed, nil
}

// SetDefaultSources registers the fallback code used to complete partial
// shaders. Both stages are required.
func (g *Graphics) SetDefaultSources(sources Sources) error {
	_, hasVertex := sources[StageVertex]
	_, hasPixel := sources[StagePixel]
	if !hasVertex || !hasPixel {
		return errors.New("graphics: default shader sources need both vertex and pixel code")
	}

	g.defaultSources = make(Sources, 2)
	g.defaultSources[StageVertex] = sources[StageVertex]
	g.defaultSources[StagePixel] = sources[StagePixel]
	return nil
}

// SetDefaultShader registers the shader that detaching falls back to.
// Pass nil to fall back to no program instead.
func (g *Graphics) SetDefaultShader(s *Shader) {
	g.defaultShader = s
}

// DefaultShader returns the registered fallback shader, or nil.
func (g *Graphics) DefaultShader() *Shader {
	return g.defaultShader
}

// SetShader makes a shader current, re-binding the textures it holds.
// Passing nil detaches: the default shader takes over when one is set,
// otherwise no program is left bound.
func (g *Graphics) SetShader(s *Shader) {
	if s == nil {
		g.detach()
		return
	}
	s.attach(false)
}

// detach activates the default shader, or unbinds the program entirely
// when no default is set.
func (g *Graphics) detach() {
	if g.defaultShader != nil {
		g.defaultShader.attach(false)
		return
	}
	g.ctx.UseProgram(0)
	g.current = nil
}

// Current returns the shader whose program is in use, or nil.
func (g *Graphics) Current() *Shader {
	return g.current
}

// Pool returns the texture unit pool shared by this Graphics' shaders.
func (g *Graphics) Pool() *TextureUnitPool {
	return g.pool
}

// ReloadAll rebuilds every live shader program. Call once the GL context
// has been restored after a loss; every program id handed out before is
// dead. Textures must be re-created and re-sent by the host afterwards.
func (g *Graphics) ReloadAll() error {
	for s := range g.shaders {
		if err := s.Reload(); err != nil {
			return err
		}
	}
	love.Logger().Info("shader programs reloaded", "count", len(g.shaders))
	return nil
}

// GLSLVersion reports the shading language version as a bare version
// token: "1.00" from a raw "1.00 build 1234". Returns "0.0" when the
// driver cannot tell.
func (g *Graphics) GLSLVersion() string {
	v := g.ctx.ShadingLanguageVersion()
	if v == "" {
		return "0.0"
	}
	if i := strings.IndexByte(v, ' '); i >= 0 {
		return v[:i]
	}
	return v
}

// usableTextureUnits is the hardware unit count minus the reserved
// scratch unit 0.
func (g *Graphics) usableTextureUnits() int {
	return max(g.ctx.MaxTextureUnits()-1, 0)
}
