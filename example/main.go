// Example renders a procedural image through a two-sampler effect
// shader and wires window input into the event queue.
//
// Prerequisites:
//
//	Install devbox: https://www.jetify.com/devbox
//	devbox shell              # enter the dev environment (provides Go + GLES/X11 headers)
//	go run ./example/         # run this example
//
// Controls: move the mouse to steer the effect, scroll to change its
// strength, press space to toggle the effect shader, R to simulate a
// lost GL context and rebuild everything, and escape to quit.
package main

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"os"
	"runtime"

	gl "github.com/go-gl/gl/v3.1/gles2"
	"github.com/go-gl/glfw/v3.3/glfw"

	love "github.com/mcanthony/love-nacl"
	"github.com/mcanthony/love-nacl/backend/opengl"
	"github.com/mcanthony/love-nacl/graphics"
	"github.com/mcanthony/love-nacl/input"
)

const (
	windowWidth  = 800
	windowHeight = 600
	windowTitle  = "love-nacl shader example"
)

const defaultVertexSource = `
attribute vec4 VertexPosition;
attribute vec2 VertexTexCoord;

varying vec2 vTexCoord;

void main() {
	vTexCoord = VertexTexCoord;
	gl_Position = VertexPosition;
}
`

const defaultPixelSource = `
precision mediump float;

uniform sampler2D tex0;

varying vec2 vTexCoord;

void main() {
	gl_FragColor = texture2D(tex0, vTexCoord);
}
`

// effectPixelSource blends a checker overlay into the base image in a
// ring around the pointer.
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
	// GLFW must run on the main thread.
	runtime.LockOSThread()
}

func main() {
	love.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})))

	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	// Initialize GLFW with an OpenGL ES 2.0 context.
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw init: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ClientAPI, glfw.OpenGLESAPI)
	glfw.WindowHint(glfw.ContextVersionMajor, 2)
	glfw.WindowHint(glfw.ContextVersionMinor, 0)

	window, err := glfw.CreateWindow(windowWidth, windowHeight, windowTitle, nil, nil)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(1) // vsync

	ctx, err := opengl.NewContext()
	if err != nil {
		return err
	}
	g := graphics.New(ctx)

	if err := g.SetDefaultSources(graphics.Sources{
		graphics.StageVertex: defaultVertexSource,
		graphics.StagePixel:  defaultPixelSource,
	}); err != nil {
		return err
	}
	def, err := g.NewShader(graphics.Sources{
		graphics.StageVertex: defaultVertexSource,
		graphics.StagePixel:  defaultPixelSource,
	})
	if err != nil {
		return err
	}
	g.SetDefaultShader(def)

	base, err := g.NewImage(gradientImage(256, 256))
	if err != nil {
		return err
	}
	mask, err := g.NewImage(checkerImage(256, 256, 32), graphics.WithFilter(graphics.FilterNearest))
	if err != nil {
		return err
	}

	// The effect shader reuses the default vertex stage.
	effect, err := g.NewShader(graphics.Sources{graphics.StagePixel: effectPixelSource})
	if err != nil {
		return err
	}

	strength := float32(0.5)
	if err := bindEffect(effect, base, mask, strength); err != nil {
		return err
	}
	if err := def.SendImage("tex0", base); err != nil {
		return err
	}

	in := input.New()
	opengl.NewInputAdapter(window, in)

	quad := newQuad()
	defer quad.delete()

	effectOn := true
	for !window.ShouldClose() {
		glfw.PollEvents()

		for _, ev := range in.PollAll() {
			switch ev.Type {
			case input.EventKey:
				if ev.Key.Action != input.KeyActionDown {
					break
				}
				switch ev.Key.Code {
				case input.KeyEscape:
					window.SetShouldClose(true)
				case input.KeySpace:
					effectOn = !effectOn
				case input.KeyR:
					// Rebuild everything, as after a lost context.
					if err := restore(g, base, mask, effect, def, strength); err != nil {
						return err
					}
				}
			case input.EventWheel:
				strength = clamp(strength+ev.Wheel.TicksY*0.05, 0, 1)
				if err := effect.SendFloat("strength", 1, strength); err != nil {
					return err
				}
			case input.EventMouse:
				if ev.Mouse.Action == input.MouseActionDown {
					love.Logger().Info("click",
						"button", ev.Mouse.Button,
						"x", ev.Mouse.X, "y", ev.Mouse.Y,
						"mods", ev.Modifiers)
				}
			}
		}

		w, h := window.GetFramebufferSize()
		gl.Viewport(0, 0, int32(w), int32(h))
		gl.ClearColor(0.1, 0.1, 0.12, 1)
		gl.Clear(gl.COLOR_BUFFER_BIT)

		if effectOn {
			g.SetShader(effect)
			mx, my := in.MousePosition()
			cx := float32(mx) / float32(windowWidth)
			cy := float32(my) / float32(windowHeight)
			if err := effect.SendFloat("center", 2, cx, cy); err != nil {
				return err
			}
		} else {
			g.SetShader(nil)
		}

		quad.draw()
		window.SwapBuffers()
	}

	in.Close()
	return nil
}

func bindEffect(effect *graphics.Shader, base, mask *graphics.Image, strength float32) error {
	if err := effect.SendImage("tex0", base); err != nil {
		return err
	}
	if err := effect.SendImage("mask", mask); err != nil {
		return err
	}
	return effect.SendFloat("strength", 1, strength)
}

// restore walks the context-loss recovery path: fresh programs and
// textures, then the uniforms and samplers sent again.
func restore(g *graphics.Graphics, base, mask *graphics.Image, effect, def *graphics.Shader, strength float32) error {
	if err := g.ReloadAll(); err != nil {
		return err
	}
	if err := base.Reload(); err != nil {
		return err
	}
	if err := mask.Reload(); err != nil {
		return err
	}
	if err := bindEffect(effect, base, mask, strength); err != nil {
		return err
	}
	return def.SendImage("tex0", base)
}

func clamp(v, lo, hi float32) float32 {
	return min(max(v, lo), hi)
}

// gradientImage fills a diagonal color ramp.
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

// checkerImage fills an alternating light and dark grid.
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

// quad is a fullscreen triangle strip carrying position and texture
// coordinates on the attribute slots the graphics package binds.
type quad struct {
	vbo uint32
}

func newQuad() *quad {
	vertices := []float32{
		// x, y, u, v
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
