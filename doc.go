/*
Package love is the root of a GLES2 shader and input runtime extracted from
a browser (NaCl/PPAPI) game engine port. It manages GLSL shader programs,
texture unit allocation across programs, and the translation of host input
events into an engine-neutral queue.

# Overview

The module is split into a small portable core and thin host backends:

  - graphics: shader programs, uniform sends, the shared texture unit
    pool, images and canvases. GL calls go through the Context interface,
    so the core has no GL dependency of its own.
  - input: tagged input events, a blocking queue, and the mouse/keyboard
    state derived from the event stream.
  - backend/opengl: a GLES2 Context driver plus a GLFW callback pump.
  - backend/sdl2: an SDL event pump.

# Texture units

GLES2 samples textures through a fixed set of texture units. Every shader
program that wants to sample a texture must claim a unit, bind the texture
to it, and point its sampler uniform at the unit number. Units are a global
resource: two programs may share one, but then they also share whatever is
bound there.

The graphics package makes this explicit. A [graphics.TextureUnitPool]
reference-counts every unit across all programs; each shader keeps a
sticky sampler-name-to-unit assignment and its own bound-texture list.
Sending a texture claims a unit, releasing the shader returns its claims,
and unit 0 is left free as scratch space for texture creation.

# Context loss

The engine originates from an environment where the GL context can vanish
at any time (tab switch, device sleep). Shader programs survive this
through [graphics.Shader.Reload]: the program object and its unit claims
are discarded and rebuilt, but sampler names keep their assigned units, so
re-sent uniforms land where they did before the loss.

# Quick start

	ctx, err := opengl.NewContext()
	if err != nil {
	    return err
	}
	g := graphics.New(ctx)

	shader, err := g.NewShader(graphics.Sources{
	    graphics.StageVertex: vertexSrc,
	    graphics.StagePixel:  pixelSrc,
	})
	if err != nil {
	    return err
	}

	img, err := g.NewImage(picture)
	if err != nil {
	    return err
	}
	if err := shader.SendImage("tex0", img); err != nil {
	    return err
	}
	g.SetShader(shader)

# Logging

The module is silent by default. Install a logger to see unit assignment
decisions and lifecycle events:

	love.SetLogger(slog.Default())
*/
package love
