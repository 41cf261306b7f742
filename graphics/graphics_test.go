package graphics_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/mcanthony/love-nacl/graphics"
)

// fakeContext is an in-memory driver. It grants a uniform location for
// any name that occurs in a program's source text, so tests control the
// uniform surface through the GLSL they pass in.
type fakeContext struct {
	maxUnits    int
	glslVersion string

	nextShader  uint32
	nextProgram uint32
	nextTexture uint32

	stages   map[uint32]fakeStage
	programs map[uint32]*fakeProgram
	textures map[uint32][2]int

	used    uint32
	active  int
	bound   map[int]uint32
	bindLog []string

	compileErr map[graphics.ShaderStage]string
	linkErr    string
}

type fakeStage struct {
	stage  graphics.ShaderStage
	source string
}

type fakeProgram struct {
	sources   []string
	locations map[string]int32
	nextLoc   int32
	floats    map[int32][]float32
	matrices  map[int32][]float32
	ints      map[int32]int32
	log       string
}

func newFakeContext(maxUnits int) *fakeContext {
	return &fakeContext{
		maxUnits:    maxUnits,
		glslVersion: "1.00 build fake",
		stages:      make(map[uint32]fakeStage),
		programs:    make(map[uint32]*fakeProgram),
		textures:    make(map[uint32][2]int),
		bound:       make(map[int]uint32),
		compileErr:  make(map[graphics.ShaderStage]string),
	}
}

func (c *fakeContext) MaxTextureUnits() int           { return c.maxUnits }
func (c *fakeContext) ShadingLanguageVersion() string { return c.glslVersion }

func (c *fakeContext) CompileShader(stage graphics.ShaderStage, source string) (uint32, error) {
	if msg, ok := c.compileErr[stage]; ok {
		return 0, errors.New(msg)
	}
	c.nextShader++
	c.stages[c.nextShader] = fakeStage{stage: stage, source: source}
	return c.nextShader, nil
}

func (c *fakeContext) LinkProgram(shaders []uint32, attribs map[string]uint32) (uint32, error) {
	var sources []string
	for _, id := range shaders {
		if stage, ok := c.stages[id]; ok {
			sources = append(sources, stage.source)
		}
		delete(c.stages, id)
	}
	if c.linkErr != "" {
		return 0, errors.New(c.linkErr)
	}
	c.nextProgram++
	c.programs[c.nextProgram] = &fakeProgram{
		sources:   sources,
		locations: make(map[string]int32),
		floats:    make(map[int32][]float32),
		matrices:  make(map[int32][]float32),
		ints:      make(map[int32]int32),
	}
	return c.nextProgram, nil
}

func (c *fakeContext) ProgramLog(program uint32) string {
	if p, ok := c.programs[program]; ok {
		return p.log
	}
	return ""
}

func (c *fakeContext) UseProgram(program uint32) { c.used = program }

func (c *fakeContext) DeleteShader(shader uint32) { delete(c.stages, shader) }

func (c *fakeContext) DeleteProgram(program uint32) { delete(c.programs, program) }

func (c *fakeContext) UniformLocation(program uint32, name string) int32 {
	p, ok := c.programs[program]
	if !ok {
		return -1
	}
	if loc, ok := p.locations[name]; ok {
		return loc
	}
	for _, source := range p.sources {
		if strings.Contains(source, name) {
			loc := p.nextLoc
			p.nextLoc++
			p.locations[name] = loc
			return loc
		}
	}
	return -1
}

func (c *fakeContext) SetUniformFloats(location int32, components int, values []float32) {
	if p, ok := c.programs[c.used]; ok {
		p.floats[location] = append([]float32(nil), values...)
	}
}

func (c *fakeContext) SetUniformMatrices(location int32, dimension int, values []float32) {
	if p, ok := c.programs[c.used]; ok {
		p.matrices[location] = append([]float32(nil), values...)
	}
}

func (c *fakeContext) SetUniformInt(location int32, value int32) {
	if p, ok := c.programs[c.used]; ok {
		p.ints[location] = value
	}
}

func (c *fakeContext) SetActiveTextureUnit(unit int) { c.active = unit }

func (c *fakeContext) BindTextureToUnit(texture uint32, unit int) {
	c.bound[unit] = texture
	c.active = unit
	c.bindLog = append(c.bindLog, fmt.Sprintf("%d@%d", texture, unit))
}

func (c *fakeContext) CreateTexture(width, height int, pixels []byte, filter graphics.Filter, wrap graphics.Wrap) (uint32, error) {
	if width <= 0 || height <= 0 {
		return 0, fmt.Errorf("fake: bad texture size %dx%d", width, height)
	}
	if pixels != nil && len(pixels) != width*height*4 {
		return 0, fmt.Errorf("fake: pixel data is %d bytes, want %d", len(pixels), width*height*4)
	}
	c.nextTexture++
	c.textures[c.nextTexture] = [2]int{width, height}
	return c.nextTexture, nil
}

func (c *fakeContext) DeleteTexture(texture uint32) { delete(c.textures, texture) }

// uniformInt reads back the recorded value of an int uniform.
func (c *fakeContext) uniformInt(program uint32, name string) (int32, bool) {
	p, ok := c.programs[program]
	if !ok {
		return 0, false
	}
	loc, ok := p.locations[name]
	if !ok {
		return 0, false
	}
	v, ok := p.ints[loc]
	return v, ok
}

// uniformFloats reads back the recorded values of a float uniform.
func (c *fakeContext) uniformFloats(program uint32, name string) []float32 {
	p, ok := c.programs[program]
	if !ok {
		return nil
	}
	loc, ok := p.locations[name]
	if !ok {
		return nil
	}
	return p.floats[loc]
}

const testVertexSource = `
attribute vec4 VertexPosition;
attribute vec2 VertexTexCoord;
varying vec2 vTexCoord;
void main() {
	vTexCoord = VertexTexCoord;
	gl_Position = VertexPosition;
}
`

// pixelSource builds a pixel stage declaring one sampler per name.
func pixelSource(samplers ...string) string {
	var b strings.Builder
	b.WriteString("precision mediump float;\nvarying vec2 vTexCoord;\n")
	for _, name := range samplers {
		fmt.Fprintf(&b, "uniform sampler2D %s;\n", name)
	}
	b.WriteString("void main() { gl_FragColor = vec4(1.0); }\n")
	return b.String()
}

// newTestGraphics builds a Graphics over a fake driver exposing maxUnits
// hardware texture units; one of those is the reserved scratch unit.
func newTestGraphics(maxUnits int) (*graphics.Graphics, *fakeContext) {
	ctx := newFakeContext(maxUnits)
	return graphics.New(ctx), ctx
}

func newTestShader(t *testing.T, g *graphics.Graphics, samplers ...string) *graphics.Shader {
	t.Helper()
	s, err := g.NewShader(graphics.Sources{
		graphics.StageVertex: testVertexSource,
		graphics.StagePixel:  pixelSource(samplers...),
	})
	if err != nil {
		t.Fatalf("NewShader() = %v", err)
	}
	return s
}

func TestNewShaderNoSource(t *testing.T) {
	g, _ := newTestGraphics(4)

	if _, err := g.NewShader(nil); !errors.Is(err, graphics.ErrNoSource) {
		t.Errorf("NewShader(nil) = %v, want ErrNoSource", err)
	}
	if _, err := g.NewShader(graphics.Sources{graphics.StagePixel: ""}); !errors.Is(err, graphics.ErrNoSource) {
		t.Errorf("NewShader(empty pixel) = %v, want ErrNoSource", err)
	}
}

func TestNewShaderMissingStageWithoutDefaults(t *testing.T) {
	g, _ := newTestGraphics(4)

	_, err := g.NewShader(graphics.Sources{graphics.StagePixel: pixelSource("tex0")})
	if err == nil || !strings.Contains(err.Error(), "no default vertex shader code") {
		t.Errorf("NewShader(pixel only) = %v, want missing default vertex error", err)
	}

	_, err = g.NewShader(graphics.Sources{graphics.StageVertex: testVertexSource})
	if err == nil || !strings.Contains(err.Error(), "no default pixel shader code") {
		t.Errorf("NewShader(vertex only) = %v, want missing default pixel error", err)
	}
}

func TestNewShaderFillsMissingStageFromDefaults(t *testing.T) {
	g, ctx := newTestGraphics(4)

	if err := g.SetDefaultSources(graphics.Sources{
		graphics.StageVertex: testVertexSource,
		graphics.StagePixel:  pixelSource("tex0"),
	}); err != nil {
		t.Fatalf("SetDefaultSources() = %v", err)
	}

	effect := pixelSource("mask")
	s, err := g.NewShader(graphics.Sources{graphics.StagePixel: effect})
	if err != nil {
		t.Fatalf("NewShader(pixel only) = %v", err)
	}

	p := ctx.programs[s.Program()]
	if p == nil {
		t.Fatal("program not registered in fake driver")
	}
	var sawDefaultVertex, sawEffect bool
	for _, source := range p.sources {
		if source == testVertexSource {
			sawDefaultVertex = true
		}
		if source == effect {
			sawEffect = true
		}
	}
	if !sawDefaultVertex {
		t.Error("missing vertex stage was not filled from the default sources")
	}
	if !sawEffect {
		t.Error("explicit pixel stage was not compiled")
	}
}

func TestSetDefaultSourcesValidation(t *testing.T) {
	g, _ := newTestGraphics(4)

	err := g.SetDefaultSources(graphics.Sources{graphics.StageVertex: testVertexSource})
	if err == nil || !strings.Contains(err.Error(), "both vertex and pixel code") {
		t.Errorf("SetDefaultSources(vertex only) = %v, want both-stages error", err)
	}
}

func TestSetShaderAndDetach(t *testing.T) {
	g, ctx := newTestGraphics(4)
	a := newTestShader(t, g, "texA")

	g.SetShader(a)
	if g.Current() != a {
		t.Fatal("Current() should be the attached shader")
	}
	if ctx.used != a.Program() {
		t.Fatalf("driver has program %d in use, want %d", ctx.used, a.Program())
	}

	g.SetShader(nil)
	if g.Current() != nil {
		t.Error("Current() should be nil after detaching with no default shader")
	}
	if ctx.used != 0 {
		t.Errorf("driver has program %d in use after detach, want 0", ctx.used)
	}
}

func TestDetachActivatesDefaultShader(t *testing.T) {
	g, ctx := newTestGraphics(4)
	def := newTestShader(t, g, "tex0")
	a := newTestShader(t, g, "texA")
	g.SetDefaultShader(def)

	g.SetShader(a)
	g.SetShader(nil)

	if g.Current() != def {
		t.Error("detach should fall back to the default shader")
	}
	if ctx.used != def.Program() {
		t.Errorf("driver has program %d in use, want default %d", ctx.used, def.Program())
	}
}

func TestReloadAllRebuildsPrograms(t *testing.T) {
	g, _ := newTestGraphics(4)
	a := newTestShader(t, g, "texA")
	b := newTestShader(t, g, "texB")

	if err := a.SendTexture("texA", 7); err != nil {
		t.Fatalf("SendTexture() = %v", err)
	}

	oldA, oldB := a.Program(), b.Program()
	if err := g.ReloadAll(); err != nil {
		t.Fatalf("ReloadAll() = %v", err)
	}

	if a.Program() == oldA || b.Program() == oldB {
		t.Error("reload should produce fresh program objects")
	}
	for i, n := range g.Pool().Counts() {
		if n != 0 {
			t.Errorf("unit %d still has count %d after reload", i+1, n)
		}
	}
}

func TestSharedPoolAcrossGraphics(t *testing.T) {
	pool := graphics.NewTextureUnitPool()
	g1 := graphics.New(newFakeContext(4), graphics.WithTextureUnitPool(pool))
	g2 := graphics.New(newFakeContext(4), graphics.WithTextureUnitPool(pool))

	a, err := g1.NewShader(graphics.Sources{
		graphics.StageVertex: testVertexSource,
		graphics.StagePixel:  pixelSource("texA"),
	})
	if err != nil {
		t.Fatalf("NewShader() = %v", err)
	}
	b, err := g2.NewShader(graphics.Sources{
		graphics.StageVertex: testVertexSource,
		graphics.StagePixel:  pixelSource("texB"),
	})
	if err != nil {
		t.Fatalf("NewShader() = %v", err)
	}

	if err := a.SendTexture("texA", 1); err != nil {
		t.Fatalf("SendTexture() = %v", err)
	}
	if err := b.SendTexture("texB", 2); err != nil {
		t.Fatalf("SendTexture() = %v", err)
	}

	unitA, _ := a.TextureUnit("texA")
	unitB, _ := b.TextureUnit("texB")
	if unitA == unitB {
		t.Errorf("programs sharing a pool were assigned the same unit %d with units to spare", unitA)
	}
	if got := pool.Counts(); got[unitA-1] != 1 || got[unitB-1] != 1 {
		t.Errorf("pool counts = %v, want one reference on units %d and %d", got, unitA, unitB)
	}
}

func TestGLSLVersion(t *testing.T) {
	g, ctx := newTestGraphics(4)

	if got := g.GLSLVersion(); got != "1.00" {
		t.Errorf("GLSLVersion() = %q, want %q", got, "1.00")
	}

	ctx.glslVersion = "3.10"
	if got := g.GLSLVersion(); got != "3.10" {
		t.Errorf("GLSLVersion() = %q, want %q", got, "3.10")
	}

	ctx.glslVersion = ""
	if got := g.GLSLVersion(); got != "0.0" {
		t.Errorf("GLSLVersion() = %q, want %q", got, "0.0")
	}
}
