package theme

import (
	"fmt"
	"image"
	"strings"

	"github.com/wbrown/chameleon"
)

// Kind is where a Source gets its pixels from.
type Kind int

const (
	// KindFile samples an image file.
	KindFile Kind = iota

	// KindDesktop samples a wallpaper file and, unless disabled, first
	// crops it to the size of the display it is shown on.
	KindDesktop

	// KindScreen samples a live capture of a display.
	KindScreen
)

var kindNames = [...]string{
	KindFile:    "File",
	KindDesktop: "Desktop",
	KindScreen:  "Screen",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind accepts "file", "desktop" or "screen" in any case.
func ParseKind(s string) (Kind, error) {
	for i, name := range kindNames {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return Kind(i), nil
		}
	}
	return KindFile, fmt.Errorf("invalid source type %q", s)
}

// Source describes one image to theme.
type Source struct {
	// Name identifies the source in logs and in the sampler cache.
	Name string
	Kind Kind

	// Path is the image or wallpaper file. Unused for KindScreen.
	Path string

	// Display is the index of the display used for KindDesktop cropping
	// and KindScreen capture.
	Display int

	// Crop, when not empty, is cut out of the image before sampling and
	// takes precedence over CropDesktop.
	Crop image.Rectangle

	// CropDesktop center-crops a KindDesktop wallpaper to the display
	// size.
	CropDesktop bool

	// ForceIcon samples with the icon presets: alpha is respected and
	// foreground contrast is not forced.
	ForceIcon bool

	Fallback Fallback

	// Params overrides the preset weights when set.
	Params *chameleon.Params

	// MinContrast overrides the engine's minimum contrast when positive.
	MinContrast float32
}

// settings summarizes everything besides the file itself that affects
// the sampled colors.
func (src *Source) settings() string {
	var params chameleon.Params
	if src.Params != nil {
		params = *src.Params
	}
	return fmt.Sprintf("%d|%d|%v|%t|%t|%v|%v|%v",
		src.Kind, src.Display, src.Crop, src.CropDesktop, src.ForceIcon,
		src.Fallback, params, src.MinContrast)
}
