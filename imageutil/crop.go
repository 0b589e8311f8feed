package imageutil

import (
	"errors"
	"fmt"
	"image"

	"golang.org/x/image/draw"
)

// ErrCropOutOfBounds is returned by Crop when the crop rectangle does not
// overlap the image.
var ErrCropOutOfBounds = errors.New("crop rectangle out of bounds")

// Crop copies the part of img inside rect into a new image. rect is
// clipped to the image bounds. When nothing of rect lies inside the image,
// img is returned unchanged together with ErrCropOutOfBounds.
func Crop(img *RGBAImage, rect image.Rectangle) (*RGBAImage, error) {
	clipped := rect.Intersect(img.Bounds())
	if clipped.Empty() {
		return img, fmt.Errorf("failed to crop %v from %v: %w",
			rect, img.Bounds(), ErrCropOutOfBounds)
	}
	if clipped == img.Bounds() {
		return img, nil
	}

	dst := NewRGBAImage(clipped.Dx(), clipped.Dy())
	draw.Draw(dst.RGBA, dst.Bounds(), img.RGBA, clipped.Min, draw.Src)
	return dst, nil
}

// CenterCrop crops img to width x height around its center. Dimensions
// larger than the image are clamped to it, so a wallpaper smaller than
// the screen is used whole.
func CenterCrop(img *RGBAImage, width, height int) *RGBAImage {
	width = min(width, img.Width())
	height = min(height, img.Height())
	if width <= 0 || height <= 0 {
		return img
	}

	x := img.Bounds().Min.X + (img.Width()-width)/2
	y := img.Bounds().Min.Y + (img.Height()-height)/2
	cropped, err := Crop(img, image.Rect(x, y, x+width, y+height))
	if err != nil {
		return img
	}
	return cropped
}
