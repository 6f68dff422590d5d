// Package texture provides image decoding for texture set images and the
// in-memory Texture resource handed out by the asset manager.
package texture

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"path/filepath"
	"strings"

	// Registered decoders for image.Decode.
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// Texture is a decoded image keyed by the path it was loaded from.
type Texture struct {
	Path   string
	Width  int
	Height int
	Image  *image.RGBA

	// ID is the GPU texture name once uploaded, 0 otherwise.
	ID uint32
}

// PixelSize returns the texture dimensions in pixels.
func (t *Texture) PixelSize() (width, height int) {
	return t.Width, t.Height
}

// New wraps a decoded image.
func New(path string, img *image.RGBA) *Texture {
	b := img.Bounds()
	return &Texture{
		Path:   path,
		Width:  b.Dx(),
		Height: b.Dy(),
		Image:  img,
	}
}

// Decode decodes PNG, JPEG, BMP, WebP or TGA data into RGBA. The path is only
// used to pick the TGA decoder for files whose header the sniffer cannot
// recognise. When magentaKey is set, magenta pixels become transparent.
func Decode(path string, data []byte, magentaKey bool) (*image.RGBA, error) {
	var (
		img image.Image
		err error
	)
	if strings.EqualFold(filepath.Ext(path), ".tga") {
		img, err = DecodeTGA(data)
	} else {
		img, _, err = image.Decode(bytes.NewReader(data))
	}
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}

	return ImageToRGBA(img, magentaKey), nil
}

// IsMagentaKey checks if an RGB color matches the magenta transparency key.
// Uses tolerance (R >= 250, G <= 10, B >= 250) to handle BMP decoding variations.
func IsMagentaKey(r, g, b uint8) bool {
	return r >= 250 && g <= 10 && b >= 250
}

// ImageToRGBA converts any image.Image to *image.RGBA anchored at (0,0).
// If applyMagentaKey is true, magenta pixels are made transparent black.
func ImageToRGBA(img image.Image, applyMagentaKey bool) *image.RGBA {
	bounds := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
			if applyMagentaKey && IsMagentaKey(c.R, c.G, c.B) {
				c = color.RGBA{}
			}
			rgba.SetRGBA(x-bounds.Min.X, y-bounds.Min.Y, c)
		}
	}

	return rgba
}

// SubImage copies the pixels of r out of t. The rectangle is clipped to the
// texture bounds.
func (t *Texture) SubImage(r image.Rectangle) *image.RGBA {
	r = r.Intersect(t.Image.Bounds())
	if r.Empty() {
		return image.NewRGBA(image.Rectangle{})
	}
	out := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	for y := 0; y < r.Dy(); y++ {
		src := t.Image.PixOffset(r.Min.X, r.Min.Y+y)
		copy(out.Pix[y*out.Stride:y*out.Stride+r.Dx()*4], t.Image.Pix[src:src+r.Dx()*4])
	}
	return out
}
