package theme

import (
	"errors"
	"fmt"
	"image"

	"github.com/kbinani/screenshot"
)

// ErrNoDisplay is returned when the requested display does not exist.
var ErrNoDisplay = errors.New("no such display")

// Display reports display geometry and captures display contents.
type Display interface {
	NumDisplays() int
	Bounds(display int) image.Rectangle
	Capture(display int) (*image.RGBA, error)
}

// ScreenDisplay is the Display backed by the operating system's screens.
type ScreenDisplay struct{}

func (ScreenDisplay) NumDisplays() int {
	return screenshot.NumActiveDisplays()
}

func (ScreenDisplay) Bounds(display int) image.Rectangle {
	return screenshot.GetDisplayBounds(display)
}

func (ScreenDisplay) Capture(display int) (*image.RGBA, error) {
	img, err := screenshot.CaptureDisplay(display)
	if err != nil {
		return nil, fmt.Errorf("failed to capture display %d: %w", display, err)
	}
	return img, nil
}

func checkDisplay(d Display, display int) error {
	n := d.NumDisplays()
	if display < 0 || display >= n {
		return fmt.Errorf("display %d of %d: %w", display, n, ErrNoDisplay)
	}
	return nil
}
