package graphics

import (
	"fmt"
	"image"
	"os"

	"github.com/disintegration/imaging"

	// Register decoders for DecodeImage.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
)

// Image is a texture uploaded from CPU pixel data. The pixels are kept
// so the texture can be uploaded again after a GL context loss.
type Image struct {
	gfx           *Graphics
	texture       uint32
	pixels        *image.NRGBA
	width, height int
	filter        Filter
	wrap          Wrap
}

// ImageOption configures an Image before upload.
type ImageOption func(*Image)

// WithFilter sets the sampling filter. The default is FilterLinear.
func WithFilter(f Filter) ImageOption {
	return func(img *Image) { img.filter = f }
}

// WithWrap sets the wrap mode. The default is WrapClamp. GLES2 cannot
// repeat textures with non-power-of-two sides, so WrapRepeat resamples
// such sources up to the next power of two.
func WithWrap(w Wrap) ImageOption {
	return func(img *Image) { img.wrap = w }
}

// NewImage converts src to RGBA, applies the power-of-two policy of the
// chosen wrap mode and uploads the pixels into a texture.
func (g *Graphics) NewImage(src image.Image, opts ...ImageOption) (*Image, error) {
	img := &Image{
		gfx:    g,
		filter: FilterLinear,
		wrap:   WrapClamp,
	}
	for _, opt := range opts {
		opt(img)
	}

	pixels := imaging.Clone(src)
	bounds := pixels.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("graphics: invalid image size: %dx%d", w, h)
	}

	if img.wrap == WrapRepeat && (!isPowerOfTwo(w) || !isPowerOfTwo(h)) {
		pixels = imaging.Resize(pixels, nextPowerOfTwo(w), nextPowerOfTwo(h), imaging.Lanczos)
		w, h = pixels.Bounds().Dx(), pixels.Bounds().Dy()
	}
	img.pixels = pixels
	img.width, img.height = w, h

	if err := img.upload(); err != nil {
		return nil, err
	}
	return img, nil
}

// DecodeImage reads and decodes an image file. PNG, JPEG, GIF and BMP
// are understood.
func DecodeImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("graphics: decode %s: %w", path, err)
	}
	return img, nil
}

func (img *Image) upload() error {
	texture, err := img.gfx.ctx.CreateTexture(img.width, img.height, img.pixels.Pix, img.filter, img.wrap)
	if err != nil {
		return fmt.Errorf("graphics: cannot create image texture: %w", err)
	}
	img.texture = texture
	return nil
}

// Reload uploads the kept pixels into a fresh texture. Call after a GL
// context loss; the old texture id died with the context. Shaders the
// image was sent to need it sent again.
func (img *Image) Reload() error {
	if img.texture != 0 {
		img.gfx.ctx.DeleteTexture(img.texture)
		img.texture = 0
	}
	return img.upload()
}

// Release deletes the texture. The image must not be used afterwards.
func (img *Image) Release() {
	if img.texture != 0 {
		img.gfx.ctx.DeleteTexture(img.texture)
		img.texture = 0
	}
	img.pixels = nil
}

// Texture returns the driver handle of the uploaded texture.
func (img *Image) Texture() uint32 { return img.texture }

// Width returns the uploaded width in pixels, after any power-of-two
// resample.
func (img *Image) Width() int { return img.width }

// Height returns the uploaded height in pixels, after any power-of-two
// resample.
func (img *Image) Height() int { return img.height }

func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

func nextPowerOfTwo(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
