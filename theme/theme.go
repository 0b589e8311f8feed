// Package theme turns images into color themes: it loads a file, a
// desktop wallpaper or a live screen capture, prepares it for the
// chameleon engine and reports the picked colors, falling back to
// configured colors when no image can be sampled.
package theme

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/wbrown/chameleon"
)

// Theme is the set of colors picked for one image. All colors are packed
// as 0xFFRRGGBB.
type Theme struct {
	Background1 uint32
	Background2 uint32
	Foreground1 uint32
	Foreground2 uint32
	Average     uint32

	// Light holds the four picks from brightest to darkest, Dark the
	// same picks from darkest to brightest.
	Light [4]uint32
	Dark  [4]uint32

	// Luminance is the luma (0..1) of the average color.
	Luminance float32

	// Path is the image the theme was sampled from, if any.
	Path string

	// Fallback is set when the colors are the configured fallbacks
	// rather than sampled ones.
	Fallback bool
}

// Color returns the color for role. Out of range roles report Average.
func (t *Theme) Color(role chameleon.Role) uint32 {
	switch {
	case role == chameleon.Background1:
		return t.Background1
	case role == chameleon.Background2:
		return t.Background2
	case role == chameleon.Foreground1:
		return t.Foreground1
	case role == chameleon.Foreground2:
		return t.Foreground2
	case role >= chameleon.Light1 && role <= chameleon.Light4:
		return t.Light[role-chameleon.Light1]
	case role >= chameleon.Dark1 && role <= chameleon.Dark4:
		return t.Dark[role-chameleon.Dark1]
	default:
		return t.Average
	}
}

// FromEngine copies the selected colors out of an engine on which
// FindKeyColors has run.
func FromEngine(e *chameleon.Engine) *Theme {
	t := &Theme{
		Background1: e.Color(chameleon.Background1),
		Background2: e.Color(chameleon.Background2),
		Foreground1: e.Color(chameleon.Foreground1),
		Foreground2: e.Color(chameleon.Foreground2),
		Average:     e.Color(chameleon.Average),
		Luminance:   e.Luminance(chameleon.Average),
	}
	for i := range t.Light {
		t.Light[i] = e.Color(chameleon.Light1 + chameleon.Role(i))
		t.Dark[i] = e.Color(chameleon.Dark1 + chameleon.Role(i))
	}
	return t
}

// Fallback holds the colors reported when an image cannot be sampled.
// Zero fields take defaults: Background1 white, Foreground1 black, and
// the second background and foreground copy the first.
type Fallback struct {
	Background1 uint32
	Background2 uint32
	Foreground1 uint32
	Foreground2 uint32
}

// DefaultFallback returns white backgrounds and black foregrounds.
func DefaultFallback() Fallback {
	return Fallback{}.resolved()
}

func (f Fallback) resolved() Fallback {
	if f.Background1 == 0 {
		f.Background1 = 0xFFFFFFFF
	}
	if f.Background2 == 0 {
		f.Background2 = f.Background1
	}
	if f.Foreground1 == 0 {
		f.Foreground1 = 0xFF000000
	}
	if f.Foreground2 == 0 {
		f.Foreground2 = f.Foreground1
	}
	return f
}

// FallbackTheme builds the theme reported for an unusable image. The
// light and dark lists are not sorted by luma; they list the fallbacks in
// background-then-foreground order. The average is white with luminance 1.
func FallbackTheme(f Fallback, path string) *Theme {
	f = f.resolved()
	return &Theme{
		Background1: f.Background1,
		Background2: f.Background2,
		Foreground1: f.Foreground1,
		Foreground2: f.Foreground2,
		Average:     0xFFFFFFFF,
		Light:       [4]uint32{f.Background1, f.Background2, f.Foreground1, f.Foreground2},
		Dark:        [4]uint32{f.Foreground2, f.Foreground1, f.Background2, f.Background1},
		Luminance:   1,
		Path:        path,
		Fallback:    true,
	}
}

// ColorFormat selects how Format renders a color.
type ColorFormat int

const (
	// FormatHex renders "RRGGBB" in upper case.
	FormatHex ColorFormat = iota
	// FormatDec renders "r,g,b" in decimal.
	FormatDec
)

// ParseFormat accepts "hex" or "dec" in any case.
func ParseFormat(s string) (ColorFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "hex":
		return FormatHex, nil
	case "dec":
		return FormatDec, nil
	}
	return FormatHex, fmt.Errorf("invalid color format %q", s)
}

func (f ColorFormat) String() string {
	if f == FormatDec {
		return "dec"
	}
	return "hex"
}

// Format renders a packed color, ignoring alpha.
func Format(c uint32, f ColorFormat) string {
	r, g, b := (c>>16)&0xFF, (c>>8)&0xFF, c&0xFF
	if f == FormatDec {
		return fmt.Sprintf("%d,%d,%d", r, g, b)
	}
	return fmt.Sprintf("%02X%02X%02X", r, g, b)
}

// ParseColor reads a color as hex ("RRGGBB", "#RRGGBB" or "#RGB") or as
// decimal "r,g,b", and returns it packed as 0xFFRRGGBB.
func ParseColor(s string) (uint32, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty color")
	}

	if strings.Contains(s, ",") {
		parts := strings.Split(s, ",")
		if len(parts) != 3 {
			return 0, fmt.Errorf("invalid color %q: expected r,g,b", s)
		}
		c := uint32(0xFF000000)
		for i, part := range parts {
			v, err := strconv.ParseUint(strings.TrimSpace(part), 10, 8)
			if err != nil {
				return 0, fmt.Errorf("invalid color %q: %w", s, err)
			}
			c |= uint32(v) << (16 - 8*i)
		}
		return c, nil
	}

	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return 0, fmt.Errorf("invalid color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return 0xFF000000 | uint32(r)<<16 | uint32(g)<<8 | uint32(b), nil
}
