package imageutil

import (
	"image"

	"golang.org/x/image/draw"
)

// Interpolation specifies the interpolation method for resizing.
type Interpolation int

const (
	// InterpolationArea averages every source pixel under a destination
	// pixel with a box kernel. It approximates OpenCV's INTER_AREA and,
	// unlike Catmull-Rom, never overshoots at hard edges.
	InterpolationArea Interpolation = iota

	// InterpolationLinear uses bilinear interpolation.
	InterpolationLinear

	// InterpolationNearest uses nearest-neighbor interpolation.
	// Fastest, and the only method that never invents colors.
	InterpolationNearest
)

// boxKernel is widened by the scale factor when shrinking, so each
// destination pixel becomes the mean of the source pixels it covers.
var boxKernel = &draw.Kernel{
	Support: 0.5,
	At:      func(float64) float64 { return 1 },
}

func (interp Interpolation) scaler() draw.Scaler {
	switch interp {
	case InterpolationLinear:
		return draw.BiLinear
	case InterpolationNearest:
		return draw.NearestNeighbor
	default:
		return boxKernel
	}
}

// Resize resizes an RGBA image to the specified dimensions using the
// given interpolation method.
func Resize(img *RGBAImage, width, height int, interp Interpolation) *RGBAImage {
	dst := NewRGBAImage(width, height)
	dstRect := image.Rect(0, 0, width, height)

	interp.scaler().Scale(dst.RGBA, dstRect, img.RGBA, img.Bounds(), draw.Src, nil)
	return dst
}

// FitWithin shrinks each dimension of img that exceeds maxDim down to
// maxDim. The dimensions are clamped independently, so the aspect ratio
// is not kept; the engine only cares about color proportions. Images that
// already fit are returned as is.
func FitWithin(img *RGBAImage, maxDim int, interp Interpolation) *RGBAImage {
	width, height := img.Width(), img.Height()
	if maxDim <= 0 || (width <= maxDim && height <= maxDim) {
		return img
	}
	return Resize(img, min(width, maxDim), min(height, maxDim), interp)
}
