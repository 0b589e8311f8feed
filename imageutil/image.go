// Package imageutil provides the image plumbing around the chameleon
// engine: decoding, cropping, scaling and conversion between image.Image
// values and packed 0xAARRGGBB pixel buffers.
package imageutil

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// RGB represents a color in the RGB color space with 8-bit channels.
type RGB struct {
	R, G, B uint8
}

// ToColor converts RGB to color.RGBA for use with standard library.
func (rgb RGB) ToColor() color.RGBA {
	return color.RGBA{R: rgb.R, G: rgb.G, B: rgb.B, A: 255}
}

// Packed returns the color as an opaque 0xFFRRGGBB value.
func (rgb RGB) Packed() uint32 {
	return 0xFF000000 | uint32(rgb.R)<<16 | uint32(rgb.G)<<8 | uint32(rgb.B)
}

// RGBFromPacked splits a packed 0xAARRGGBB value, dropping alpha.
func RGBFromPacked(p uint32) RGB {
	return RGB{R: uint8(p >> 16), G: uint8(p >> 8), B: uint8(p)}
}

// RGBAImage wraps image.RGBA with convenience methods for pixel access.
type RGBAImage struct {
	*image.RGBA
}

// NewRGBAImage creates a new RGBAImage with the specified dimensions.
func NewRGBAImage(width, height int) *RGBAImage {
	return &RGBAImage{
		RGBA: image.NewRGBA(image.Rect(0, 0, width, height)),
	}
}

// RGBAImageFromImage converts any image.Image to an RGBAImage whose
// bounds start at the origin.
func RGBAImageFromImage(img image.Image) *RGBAImage {
	bounds := img.Bounds()
	rgba := NewRGBAImage(bounds.Dx(), bounds.Dy())
	draw.Draw(rgba.RGBA, rgba.Bounds(), img, bounds.Min, draw.Src)
	return rgba
}

// Width returns the image width.
func (img *RGBAImage) Width() int {
	return img.Bounds().Dx()
}

// Height returns the image height.
func (img *RGBAImage) Height() int {
	return img.Bounds().Dy()
}

// GetRGB returns the RGB value at (x, y).
func (img *RGBAImage) GetRGB(x, y int) RGB {
	c := img.RGBAAt(x, y)
	return RGB{R: c.R, G: c.G, B: c.B}
}

// SetRGB sets the RGB value at (x, y).
func (img *RGBAImage) SetRGB(x, y int, c RGB) {
	img.SetRGBA(x, y, color.RGBA{R: c.R, G: c.G, B: c.B, A: 255})
}

// Pack returns the pixels as a row-major slice of 0xAARRGGBB values.
//
// image.RGBA stores alpha-premultiplied channels; they are un-premultiplied
// here so partially transparent pixels keep their hue.
func (img *RGBAImage) Pack() []uint32 {
	width, height := img.Width(), img.Height()
	pixels := make([]uint32, 0, width*height)

	for y := 0; y < height; y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+width*4]
		for x := 0; x < len(row); x += 4 {
			r, g, b, a := uint32(row[x]), uint32(row[x+1]), uint32(row[x+2]), uint32(row[x+3])
			if a != 0 && a != 255 {
				r = min(r*255/a, 255)
				g = min(g*255/a, 255)
				b = min(b*255/a, 255)
			}
			pixels = append(pixels, a<<24|r<<16|g<<8|b)
		}
	}
	return pixels
}

// RGBAImageFromPacked builds an image from a row-major slice of
// 0xAARRGGBB values. The slice must hold at least width*height pixels.
func RGBAImageFromPacked(pixels []uint32, width, height int) *RGBAImage {
	img := NewRGBAImage(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			p := pixels[y*width+x]
			img.Set(x, y, color.NRGBA{
				R: uint8(p >> 16),
				G: uint8(p >> 8),
				B: uint8(p),
				A: uint8(p >> 24),
			})
		}
	}
	return img
}
