package graphics

import (
	"fmt"

	love "github.com/mcanthony/love-nacl"
)

// Shader is a compiled and linked GLSL program together with its share of
// the texture unit pool.
//
// Each sampler uniform a texture is sent to gets a texture unit assigned
// on first use, and keeps that unit for the shader's whole lifetime,
// across rebinds and reloads. boundTextures remembers what is bound where
// so attach can restore the bindings after another program ran.
//
// Shader methods must be called from the goroutine that owns the GL
// context, like every other graphics operation.
type Shader struct {
	gfx     *Graphics
	sources Sources

	program uint32

	// uniform name -> location, with -1 memoizing known misses.
	uniforms map[string]int32

	// sampler name -> sticky 1-based texture unit.
	units map[string]int

	// unit-1 -> texture bound through this program, 0 when none.
	boundTextures []uint32
}

// load compiles and links the program and sizes the bound-texture table
// for the current hardware limit. Called on creation and again on Reload.
func (s *Shader) load() error {
	g := s.gfx

	units := g.usableTextureUnits()
	g.pool.EnsureCapacity(units)
	s.boundTextures = make([]uint32, units)

	var compiled []uint32
	for _, stage := range []ShaderStage{StageVertex, StagePixel} {
		source, ok := s.sources[stage]
		if !ok {
			continue
		}
		shader, err := g.ctx.CompileShader(stage, source)
		if err != nil {
			for _, c := range compiled {
				g.ctx.DeleteShader(c)
			}
			return fmt.Errorf("graphics: cannot compile %s shader code: %w", stage, err)
		}
		compiled = append(compiled, shader)
	}

	program, err := g.ctx.LinkProgram(compiled, VertexAttribNames)
	if err != nil {
		return fmt.Errorf("graphics: cannot link shader program object: %w", err)
	}
	s.program = program

	love.Logger().Debug("shader program loaded", "program", program, "units", units)
	return nil
}

// unload releases the program object and the shader's texture unit
// claims. The sampler-to-unit assignments survive; only Release drops
// them.
func (s *Shader) unload() {
	g := s.gfx

	if g.current == s {
		g.ctx.UseProgram(0)
	}
	if s.program != 0 {
		g.ctx.DeleteProgram(s.program)
		s.program = 0
	}

	for i, tex := range s.boundTextures {
		if tex != 0 {
			g.pool.Release(i + 1)
			s.boundTextures[i] = 0
		}
	}

	// Locations belong to the dead program object.
	clear(s.uniforms)
}

// Reload drops the compiled program and builds it again from the same
// sources. The shader's bound textures are released and must be sent
// again, but sampler names keep their units, so textures sent after the
// reload land on the same units as before. Use after a GL context loss;
// ReloadAll does this for every live shader.
func (s *Shader) Reload() error {
	wasCurrent := s.gfx.current == s

	s.unload()
	if err := s.load(); err != nil {
		return err
	}

	if wasCurrent {
		s.gfx.current = nil
		s.attach(false)
	}
	return nil
}

// Release detaches the shader, deletes its program and returns its
// texture unit claims to the pool. The sampler assignments are dropped
// with it. The shader must not be used afterwards.
func (s *Shader) Release() {
	g := s.gfx

	if g.defaultShader == s {
		g.defaultShader = nil
	}
	if g.current == s {
		g.detach()
	}

	s.unload()
	s.units = nil
	delete(g.shaders, s)
}

// attach makes this program current. A full attach also re-binds every
// texture this shader holds, then parks the active unit back on 0; a
// temporary attach, used for uniform sends, skips that.
func (s *Shader) attach(temporary bool) {
	g := s.gfx

	if g.current != s {
		g.ctx.UseProgram(s.program)
		g.current = s
	}
	if temporary {
		return
	}

	// The list may still hold ids of textures deleted since they were
	// sent.
	for i, tex := range s.boundTextures {
		if tex != 0 {
			g.ctx.BindTextureToUnit(tex, i+1)
		}
	}
	g.ctx.SetActiveTextureUnit(0)
}

// withActive runs fn with this program temporarily current, then restores
// whichever shader was current before, or detaches when none was.
func (s *Shader) withActive(fn func() error) error {
	prev := s.gfx.current
	s.attach(true)

	err := fn()

	if prev != nil && prev != s {
		prev.attach(false)
	} else if prev == nil {
		s.gfx.detach()
	}
	return err
}

// uniformLocation resolves and caches the location of a uniform variable.
// A cached miss is re-queried rather than trusted, so a location that
// exists again after a reload is found.
func (s *Shader) uniformLocation(name string) (int32, error) {
	if loc, ok := s.uniforms[name]; ok && loc != -1 {
		return loc, nil
	}

	loc := s.gfx.ctx.UniformLocation(s.program, name)
	s.uniforms[name] = loc
	if loc == -1 {
		return -1, fmt.Errorf("graphics: cannot get location of shader variable %q (a common error is to define but not use the variable)", name)
	}
	return loc, nil
}

// HasUniform reports whether the program has a uniform variable with the
// given name. Declared but unused variables are compiled out and report
// false.
func (s *Shader) HasUniform(name string) bool {
	if loc, ok := s.uniforms[name]; ok {
		return loc != -1
	}
	loc := s.gfx.ctx.UniformLocation(s.program, name)
	s.uniforms[name] = loc
	return loc != -1
}

// SendFloat sets a float or float-vector uniform. size is the component
// count of the GLSL type: 1 for float, 2 to 4 for vec2 to vec4.
// len(values) must be a non-zero multiple of size; more than one multiple
// fills an array uniform.
func (s *Shader) SendFloat(name string, size int, values ...float32) error {
	if size < 1 || size > 4 {
		return fmt.Errorf("graphics: invalid variable size: %d (expected 1-4)", size)
	}
	if len(values) == 0 || len(values)%size != 0 {
		return fmt.Errorf("graphics: invalid number of values: %d (expected a multiple of %d)", len(values), size)
	}

	return s.withActive(func() error {
		loc, err := s.uniformLocation(name)
		if err != nil {
			return err
		}
		s.gfx.ctx.SetUniformFloats(loc, size, values)
		return nil
	})
}

// SendMatrix sets a square matrix uniform from column-major values.
// dimension selects mat2, mat3 or mat4; len(values) must be a non-zero
// multiple of dimension*dimension, with more than one multiple filling an
// array uniform.
func (s *Shader) SendMatrix(name string, dimension int, values ...float32) error {
	if dimension < 2 || dimension > 4 {
		return fmt.Errorf("graphics: invalid matrix size: %dx%d (can only set 2x2, 3x3 or 4x4 matrices)", dimension, dimension)
	}
	if n := dimension * dimension; len(values) == 0 || len(values)%n != 0 {
		return fmt.Errorf("graphics: invalid number of values: %d (expected a multiple of %d)", len(values), dimension*dimension)
	}

	return s.withActive(func() error {
		loc, err := s.uniformLocation(name)
		if err != nil {
			return err
		}
		s.gfx.ctx.SetUniformMatrices(loc, dimension, values)
		return nil
	})
}

// SendInt sets an int uniform. Sampler uniforms are not set this way;
// SendTexture picks their unit and writes it for you.
func (s *Shader) SendInt(name string, value int32) error {
	return s.withActive(func() error {
		loc, err := s.uniformLocation(name)
		if err != nil {
			return err
		}
		s.gfx.ctx.SetUniformInt(loc, value)
		return nil
	})
}

// SendTexture binds a texture to the sampler uniform with the given name.
// The sampler's texture unit is assigned on first send and reused for
// every send after that. Sending texture 0 unbinds the sampler and
// returns its claim on the unit to the pool; the unit itself stays
// assigned to the name.
func (s *Shader) SendTexture(name string, texture uint32) error {
	return s.withActive(func() error {
		loc, err := s.uniformLocation(name)
		if err != nil {
			return err
		}
		unit, err := s.TextureUnit(name)
		if err != nil {
			return err
		}

		g := s.gfx
		g.ctx.BindTextureToUnit(texture, unit)
		g.ctx.SetUniformInt(loc, int32(unit))
		g.ctx.SetActiveTextureUnit(0)

		prev := s.boundTextures[unit-1]
		switch {
		case texture != 0 && prev == 0:
			g.pool.Retain(unit)
		case texture == 0 && prev != 0:
			g.pool.Release(unit)
		}
		s.boundTextures[unit-1] = texture
		return nil
	})
}

// SendImage binds an image's texture to the sampler uniform name.
func (s *Shader) SendImage(name string, img *Image) error {
	return s.SendTexture(name, img.Texture())
}

// SendCanvas binds a canvas' texture to the sampler uniform name.
func (s *Shader) SendCanvas(name string, canvas *Canvas) error {
	return s.SendTexture(name, canvas.Texture())
}

// TextureUnit reports which texture unit the sampler uniform name is, or
// will be, served by. The first call for a name claims the unit; later
// calls return the same one.
func (s *Shader) TextureUnit(name string) (int, error) {
	if unit, ok := s.units[name]; ok {
		return unit, nil
	}

	unit, err := s.gfx.pool.Assign(s.boundTextures)
	if err != nil {
		return 0, err
	}
	s.units[name] = unit

	love.Logger().Debug("texture unit assigned", "sampler", name, "unit", unit, "program", s.program)
	return unit, nil
}

// TextureUnits returns a snapshot of the sampler-to-unit assignments.
func (s *Shader) TextureUnits() map[string]int {
	snapshot := make(map[string]int, len(s.units))
	for name, unit := range s.units {
		snapshot[name] = unit
	}
	return snapshot
}

// BoundTextures returns a snapshot of the textures this shader holds per
// unit; index 0 is unit 1, 0 entries are unbound.
func (s *Shader) BoundTextures() []uint32 {
	snapshot := make([]uint32, len(s.boundTextures))
	copy(snapshot, s.boundTextures)
	return snapshot
}

// Warnings returns the info log of the linked program.
func (s *Shader) Warnings() string {
	return s.gfx.ctx.ProgramLog(s.program)
}

// Program returns the driver handle of the linked program.
func (s *Shader) Program() uint32 {
	return s.program
}
