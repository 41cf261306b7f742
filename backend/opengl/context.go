// Package opengl provides an OpenGL ES 2.0 driver for the graphics
// package and a GLFW input adapter. Everything here must run on the
// thread that owns the GL context.
package opengl

import (
	"errors"
	"fmt"
	"strings"
	"unsafe"

	gl "github.com/go-gl/gl/v3.1/gles2"

	"github.com/mcanthony/love-nacl/graphics"
)

// Context implements graphics.Context over OpenGL ES 2.0.
type Context struct {
	maxUnits int
}

var _ graphics.Context = (*Context)(nil)

// NewContext initializes the GL bindings against the context current
// on this thread and queries its limits.
func NewContext() (*Context, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("opengl: initializing bindings: %w", err)
	}
	var units int32
	gl.GetIntegerv(gl.MAX_TEXTURE_IMAGE_UNITS, &units)
	if units < 1 {
		return nil, fmt.Errorf("opengl: driver reports %d texture units", units)
	}
	return &Context{maxUnits: int(units)}, nil
}

func (c *Context) MaxTextureUnits() int { return c.maxUnits }

func (c *Context) ShadingLanguageVersion() string {
	return gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION))
}

func (c *Context) CompileShader(stage graphics.ShaderStage, source string) (uint32, error) {
	var kind uint32
	switch stage {
	case graphics.StageVertex:
		kind = gl.VERTEX_SHADER
	case graphics.StagePixel:
		kind = gl.FRAGMENT_SHADER
	default:
		return 0, fmt.Errorf("opengl: unknown shader stage %d", stage)
	}

	shader := gl.CreateShader(kind)
	if shader == 0 {
		return 0, fmt.Errorf("opengl: cannot create %s shader object", stage)
	}

	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		log := shaderLog(shader)
		gl.DeleteShader(shader)
		if log == "" {
			log = "unknown error"
		}
		return 0, errors.New(log)
	}
	return shader, nil
}

func (c *Context) LinkProgram(shaders []uint32, attribs map[string]uint32) (uint32, error) {
	program := gl.CreateProgram()
	if program == 0 {
		for _, shader := range shaders {
			gl.DeleteShader(shader)
		}
		return 0, errors.New("cannot create program object")
	}

	for _, shader := range shaders {
		gl.AttachShader(program, shader)
	}
	for name, index := range attribs {
		gl.BindAttribLocation(program, index, gl.Str(name+"\x00"))
	}
	gl.LinkProgram(program)

	// The program now holds its own reference to each stage object.
	for _, shader := range shaders {
		gl.DeleteShader(shader)
	}

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		log := programLog(program)
		gl.DeleteProgram(program)
		if log == "" {
			log = "unknown error"
		}
		return 0, errors.New(log)
	}
	return program, nil
}

func (c *Context) ProgramLog(program uint32) string { return programLog(program) }

func (c *Context) UseProgram(program uint32) { gl.UseProgram(program) }

func (c *Context) DeleteShader(shader uint32) { gl.DeleteShader(shader) }

func (c *Context) DeleteProgram(program uint32) { gl.DeleteProgram(program) }

func (c *Context) UniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (c *Context) SetUniformFloats(location int32, components int, values []float32) {
	if len(values) == 0 {
		return
	}
	count := int32(len(values) / components)
	switch components {
	case 1:
		gl.Uniform1fv(location, count, &values[0])
	case 2:
		gl.Uniform2fv(location, count, &values[0])
	case 3:
		gl.Uniform3fv(location, count, &values[0])
	case 4:
		gl.Uniform4fv(location, count, &values[0])
	}
}

func (c *Context) SetUniformMatrices(location int32, dimension int, values []float32) {
	if len(values) == 0 {
		return
	}
	count := int32(len(values) / (dimension * dimension))
	switch dimension {
	case 2:
		gl.UniformMatrix2fv(location, count, false, &values[0])
	case 3:
		gl.UniformMatrix3fv(location, count, false, &values[0])
	case 4:
		gl.UniformMatrix4fv(location, count, false, &values[0])
	}
}

func (c *Context) SetUniformInt(location int32, value int32) {
	gl.Uniform1i(location, value)
}

func (c *Context) SetActiveTextureUnit(unit int) {
	gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
}

func (c *Context) BindTextureToUnit(texture uint32, unit int) {
	gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
	gl.BindTexture(gl.TEXTURE_2D, texture)
}

func (c *Context) CreateTexture(width, height int, pixels []byte, filter graphics.Filter, wrap graphics.Wrap) (uint32, error) {
	var tex uint32
	gl.GenTextures(1, &tex)

	// Upload on the scratch unit so shader sampler bindings stay put.
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, tex)

	mode := glFilter(filter)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, mode)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, mode)
	edge := glWrap(wrap)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, edge)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, edge)

	var ptr unsafe.Pointer
	if pixels != nil {
		ptr = gl.Ptr(pixels)
	}
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(width), int32(height), 0, gl.RGBA, gl.UNSIGNED_BYTE, ptr)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	if code := gl.GetError(); code != gl.NO_ERROR {
		gl.DeleteTextures(1, &tex)
		return 0, fmt.Errorf("opengl: uploading %dx%d texture: error 0x%04x", width, height, code)
	}
	return tex, nil
}

func (c *Context) DeleteTexture(texture uint32) {
	gl.DeleteTextures(1, &texture)
}

func glFilter(f graphics.Filter) int32 {
	if f == graphics.FilterNearest {
		return gl.NEAREST
	}
	return gl.LINEAR
}

func glWrap(w graphics.Wrap) int32 {
	if w == graphics.WrapRepeat {
		return gl.REPEAT
	}
	return gl.CLAMP_TO_EDGE
}

func shaderLog(shader uint32) string {
	var length int32
	gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &length)
	if length <= 0 {
		return ""
	}
	log := make([]byte, length+1)
	gl.GetShaderInfoLog(shader, length, nil, &log[0])
	return strings.TrimRight(string(log), "\x00\n")
}

func programLog(program uint32) string {
	var length int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &length)
	if length <= 0 {
		return ""
	}
	log := make([]byte, length+1)
	gl.GetProgramInfoLog(program, length, nil, &log[0])
	return strings.TrimRight(string(log), "\x00\n")
}
