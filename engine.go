// Package chameleon derives a small set of key colors from an image for
// automatic UI theming: two backgrounds, two foregrounds, the average
// color, and the four picks ordered from light to dark.
//
// An Engine is fed packed 0xAARRGGBB pixel rows, quantizes each opaque
// pixel into one of 64 color buckets, and then runs a greedy weighted
// search over the buckets to pick the key colors. Pixels on the border of
// the image are counted separately so that framing colors can be
// preferred as backgrounds.
//
// A typical use:
//
//	e := chameleon.New()
//	e.ProcessImage(pixels, width, height, true, false)
//	e.FindKeyColors(chameleon.DefaultImageParams(), true)
//	bg := e.Color(chameleon.Background1)
//
// An Engine is not safe for concurrent use; use one per image.
package chameleon

// DefaultMinContrast is the contrast ratio below which FindKeyColors
// repairs a foreground when contrast is forced. The value is kept as the
// reference configuration defines it. Because a contrast ratio is never
// below 1 it does not trigger repair on its own; use WithMinContrast to
// ask for real readability (e.g. 4.5).
const DefaultMinContrast float32 = 3.5 / 21

// Engine accumulates color statistics for a single image and answers
// key-color queries about it.
type Engine struct {
	store bucketStore

	// Running totals start at 1 so nothing divides by zero before the
	// first pixel arrives.
	pixelCount     float32
	edgePixelCount float32

	// normalized is set once the averaged colors and YUV values have been
	// derived from the raw sums, and cleared whenever new pixels arrive.
	normalized bool

	roles [RoleCount]int

	minContrast float32
}

// Option configures an Engine.
type Option func(*Engine)

// WithMinContrast sets the contrast ratio enforced by FindKeyColors when
// forceContrast is requested. Non-positive values keep the default.
func WithMinContrast(ratio float32) Option {
	return func(e *Engine) {
		if ratio > 0 {
			e.minContrast = ratio
		}
	}
}

// New creates an empty Engine. Every role except Average starts unset and
// reads as the average color until FindKeyColors runs.
func New(opts ...Option) *Engine {
	e := &Engine{
		pixelCount:     1,
		edgePixelCount: 1,
		minContrast:    DefaultMinContrast,
	}
	for i := range e.roles {
		e.roles[i] = unsetSlot
	}
	e.roles[Average] = averageSlot

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// MinContrast returns the contrast ratio the engine enforces.
func (e *Engine) MinContrast() float32 {
	return e.minContrast
}

// PixelCount returns the number of pixels fed to the engine, including
// transparent ones. The count starts at 1.
func (e *Engine) PixelCount() float32 {
	return e.pixelCount
}

// EdgePixelCount returns the number of border pixels fed to the engine.
// The count starts at 1.
func (e *Engine) EdgePixelCount() float32 {
	return e.edgePixelCount
}

// normalize derives averaged colors once per batch of pixel data.
func (e *Engine) normalize() {
	if e.normalized {
		return
	}
	e.store.normalize(e.edgePixelCount)
	e.normalized = true
}
