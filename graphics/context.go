package graphics

// ShaderStage identifies one compilation stage of a shader program.
type ShaderStage int

const (
	StageVertex ShaderStage = iota
	StagePixel
)

// String returns the stage name as it appears in error messages.
func (s ShaderStage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StagePixel:
		return "pixel"
	default:
		return "unknown"
	}
}

// Sources maps shader stages to GLSL source code.
type Sources map[ShaderStage]string

// Generic vertex attribute locations. Shaders declare attributes with
// these names; the driver binds them to the matching locations before
// linking, so every program shares one vertex layout.
const (
	AttribPosition uint32 = iota
	AttribColor
	AttribTexCoord
)

// VertexAttribNames maps the fixed attribute locations to the attribute
// names used in shader source code.
var VertexAttribNames = map[string]uint32{
	"VertexPosition": AttribPosition,
	"VertexColor":    AttribColor,
	"VertexTexCoord": AttribTexCoord,
}

// Filter selects how a texture is sampled when scaled.
type Filter int

const (
	FilterLinear Filter = iota
	FilterNearest
)

// Wrap selects how a texture is sampled outside [0,1] coordinates.
type Wrap int

const (
	WrapClamp Wrap = iota
	WrapRepeat
)

// Context is the GL driver the graphics package runs against. The real
// implementation lives in backend/opengl; tests substitute an in-memory
// fake.
//
// Unit numbers passed to SetActiveTextureUnit and BindTextureToUnit are
// hardware unit indices: 0 is the scratch unit, pooled units start at 1.
type Context interface {
	// MaxTextureUnits reports how many texture image units the hardware
	// exposes, including unit 0.
	MaxTextureUnits() int

	// ShadingLanguageVersion reports the raw GLSL version string, or ""
	// when the context cannot tell.
	ShadingLanguageVersion() string

	// CompileShader compiles one stage and returns its shader object.
	// The error carries the compiler's info log.
	CompileShader(stage ShaderStage, source string) (uint32, error)

	// LinkProgram links compiled stage objects into a program, binding
	// the given attribute names to their locations first. The stage
	// objects are flagged for deletion whether or not the link succeeds.
	// The error carries the linker's info log.
	LinkProgram(shaders []uint32, attribs map[string]uint32) (uint32, error)

	// ProgramLog returns the program's current info log. Drivers may
	// report warnings here even for programs that linked.
	ProgramLog(program uint32) string

	// UseProgram makes a program current; 0 unbinds.
	UseProgram(program uint32)

	DeleteShader(shader uint32)
	DeleteProgram(program uint32)

	// UniformLocation reports the location of a uniform variable, or -1
	// when the program does not use it.
	UniformLocation(program uint32, name string) int32

	// SetUniformFloats writes float values to a uniform of the current
	// program. components is 1 for float, 2-4 for vec2-vec4; values
	// holds len(values)/components array elements.
	SetUniformFloats(location int32, components int, values []float32)

	// SetUniformMatrices writes column-major square matrices to a
	// uniform of the current program. dimension is 2, 3 or 4.
	SetUniformMatrices(location int32, dimension int, values []float32)

	// SetUniformInt writes a single int uniform. Sampler uniforms take
	// their unit number through this.
	SetUniformInt(location int32, value int32)

	// SetActiveTextureUnit selects the active hardware texture unit.
	SetActiveTextureUnit(unit int)

	// BindTextureToUnit binds a texture to a hardware unit and leaves
	// that unit active. Texture 0 unbinds the unit.
	BindTextureToUnit(texture uint32, unit int)

	// CreateTexture uploads RGBA pixel data into a new texture bound on
	// the scratch unit. A nil pixels slice allocates uninitialized
	// storage.
	CreateTexture(width, height int, pixels []byte, filter Filter, wrap Wrap) (uint32, error)

	DeleteTexture(texture uint32)
}
