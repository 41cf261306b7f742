// Command gen renders the effect shader in a hidden window at a few
// settings, captures framebuffer pixels, and saves JPEG screenshots to
// doc/imgs/.
//
// Usage:
//
//	devbox shell
//	go run ./doc/gen/
package main

import (
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
	"runtime"

	gl "github.com/go-gl/gl/v3.1/gles2"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/mcanthony/love-nacl/backend/opengl"
	"github.com/mcanthony/love-nacl/graphics"
)

const (
	shotWidth  = 512
	shotHeight = 512
)

const vertexSource = `
attribute vec4 VertexPosition;
attribute vec2 VertexTexCoord;

varying vec2 vTexCoord;

void main() {
	vTexCoord = VertexTexCoord;
	gl_Position = VertexPosition;
}
`

const plainPixelSource = `
precision mediump float;

uniform sampler2D tex0;

varying vec2 vTexCoord;

void main() {
	gl_FragColor = texture2D(tex0, vTexCoord);
}
`

const effectPixelSource = `
precision mediump float;

uniform sampler2D tex0;
uniform sampler2D mask;
uniform float strength;
uniform vec2 center;

varying vec2 vTexCoord;

void main() {
	vec4 base = texture2D(tex0, vTexCoord);
	vec4 overlay = texture2D(mask, vTexCoord);
	float ring = smoothstep(0.4, 0.0, distance(vTexCoord, center));
	gl_FragColor = mix(base, overlay, strength * ring);
}
`

func init() {
	runtime.LockOSThread()
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// screenshot describes one capture: which shader is current and the
// uniforms sent before drawing.
type screenshot struct {
	name     string
	strength float32
	effect   bool
}

func run() error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw init: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ClientAPI, glfw.OpenGLESAPI)
	glfw.WindowHint(glfw.ContextVersionMajor, 2)
	glfw.WindowHint(glfw.ContextVersionMinor, 0)
	glfw.WindowHint(glfw.Visible, glfw.False)

	window, err := glfw.CreateWindow(shotWidth, shotHeight, "screenshot-gen", nil, nil)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()

	ctx, err := opengl.NewContext()
	if err != nil {
		return err
	}
	g := graphics.New(ctx)

	if err := g.SetDefaultSources(graphics.Sources{
		graphics.StageVertex: vertexSource,
		graphics.StagePixel:  plainPixelSource,
	}); err != nil {
		return err
	}
	plain, err := g.NewShader(graphics.Sources{graphics.StagePixel: plainPixelSource})
	if err != nil {
		return err
	}
	g.SetDefaultShader(plain)

	base, err := g.NewImage(gradientImage(256, 256))
	if err != nil {
		return err
	}
	mask, err := g.NewImage(checkerImage(256, 256, 32), graphics.WithFilter(graphics.FilterNearest))
	if err != nil {
		return err
	}

	effect, err := g.NewShader(graphics.Sources{graphics.StagePixel: effectPixelSource})
	if err != nil {
		return err
	}
	if err := effect.SendImage("tex0", base); err != nil {
		return err
	}
	if err := effect.SendImage("mask", mask); err != nil {
		return err
	}
	if err := plain.SendImage("tex0", base); err != nil {
		return err
	}

	quad := newQuad()
	defer quad.delete()

	outDir := filepath.Join("doc", "imgs")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}

	shots := []screenshot{
		{name: "plain", effect: false},
		{name: "effect_low", effect: true, strength: 0.35},
		{name: "effect_full", effect: true, strength: 1.0},
	}

	for _, s := range shots {
		if err := capture(g, effect, quad, s, outDir); err != nil {
			return fmt.Errorf("capture %s: %w", s.name, err)
		}
		fmt.Printf("  %s.jpg (%dx%d)\n", s.name, shotWidth, shotHeight)
	}

	fmt.Printf("\nGenerated %d screenshots in %s/\n", len(shots), outDir)
	return nil
}

func capture(g *graphics.Graphics, effect *graphics.Shader, quad *quad, s screenshot, outDir string) error {
	gl.Viewport(0, 0, shotWidth, shotHeight)
	gl.ClearColor(0.1, 0.1, 0.12, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)

	if s.effect {
		g.SetShader(effect)
		if err := effect.SendFloat("strength", 1, s.strength); err != nil {
			return err
		}
		if err := effect.SendFloat("center", 2, 0.5, 0.5); err != nil {
			return err
		}
	} else {
		g.SetShader(nil)
	}
	quad.draw()
	gl.Finish()

	pixels := make([]byte, shotWidth*shotHeight*4)
	gl.ReadPixels(0, 0, shotWidth, shotHeight, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))

	// Flip vertically: the GL origin is bottom-left.
	rowLen := shotWidth * 4
	tmp := make([]byte, rowLen)
	for y := 0; y < shotHeight/2; y++ {
		top := y * rowLen
		bot := (shotHeight - 1 - y) * rowLen
		copy(tmp, pixels[top:top+rowLen])
		copy(pixels[top:top+rowLen], pixels[bot:bot+rowLen])
		copy(pixels[bot:bot+rowLen], tmp)
	}

	img := image.NewRGBA(image.Rect(0, 0, shotWidth, shotHeight))
	copy(img.Pix, pixels)

	f, err := os.Create(filepath.Join(outDir, s.name+".jpg"))
	if err != nil {
		return err
	}
	defer f.Close()
	return jpeg.Encode(f, img, &jpeg.Options{Quality: 90})
}

func gradientImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(255 * x / w),
				G: uint8(255 * y / h),
				B: 160,
				A: 255,
			})
		}
	}
	return img
}

func checkerImage(w, h, cell int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.NRGBA{R: 40, G: 40, B: 48, A: 255}
			if (x/cell+y/cell)%2 == 0 {
				c = color.NRGBA{R: 230, G: 230, B: 240, A: 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

type quad struct {
	vbo uint32
}

func newQuad() *quad {
	vertices := []float32{
		-1, -1, 0, 1,
		1, -1, 1, 1,
		-1, 1, 0, 0,
		1, 1, 1, 0,
	}

	q := &quad{}
	gl.GenBuffers(1, &q.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, q.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)

	gl.EnableVertexAttribArray(graphics.AttribPosition)
	gl.VertexAttribPointerWithOffset(graphics.AttribPosition, 2, gl.FLOAT, false, 16, 0)
	gl.EnableVertexAttribArray(graphics.AttribTexCoord)
	gl.VertexAttribPointerWithOffset(graphics.AttribTexCoord, 2, gl.FLOAT, false, 16, 8)

	return q
}

func (q *quad) draw() {
	gl.DrawArrays(gl.TRIANGLE_STRIP, 0, 4)
}

func (q *quad) delete() {
	gl.DeleteBuffers(1, &q.vbo)
}
