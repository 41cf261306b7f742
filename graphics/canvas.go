package graphics

import "fmt"

// Canvas is an offscreen render target texture. The framebuffer it is
// attached to lives with the host; the canvas only owns the texture that
// shaders sample from, so it can be sent to sampler uniforms like an
// Image.
type Canvas struct {
	gfx           *Graphics
	texture       uint32
	width, height int
}

// NewCanvas allocates an empty render target texture.
func (g *Graphics) NewCanvas(width, height int) (*Canvas, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("graphics: invalid canvas size: %dx%d", width, height)
	}

	texture, err := g.ctx.CreateTexture(width, height, nil, FilterLinear, WrapClamp)
	if err != nil {
		return nil, fmt.Errorf("graphics: cannot create canvas texture: %w", err)
	}

	return &Canvas{gfx: g, texture: texture, width: width, height: height}, nil
}

// Reload allocates a fresh texture after a GL context loss. The previous
// contents are gone; the host must render into the canvas again.
func (c *Canvas) Reload() error {
	if c.texture != 0 {
		c.gfx.ctx.DeleteTexture(c.texture)
		c.texture = 0
	}

	texture, err := c.gfx.ctx.CreateTexture(c.width, c.height, nil, FilterLinear, WrapClamp)
	if err != nil {
		return fmt.Errorf("graphics: cannot create canvas texture: %w", err)
	}
	c.texture = texture
	return nil
}

// Release deletes the texture. The canvas must not be used afterwards.
func (c *Canvas) Release() {
	if c.texture != 0 {
		c.gfx.ctx.DeleteTexture(c.texture)
		c.texture = 0
	}
}

// Texture returns the driver handle of the target texture.
func (c *Canvas) Texture() uint32 { return c.texture }

// Width returns the canvas width in pixels.
func (c *Canvas) Width() int { return c.width }

// Height returns the canvas height in pixels.
func (c *Canvas) Height() int { return c.height }
