package theme

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/wbrown/chameleon"
	"github.com/wbrown/chameleon/imageutil"
)

// ErrEmptyPath is returned when a file or desktop source has no path.
var ErrEmptyPath = errors.New("empty image path")

// maxSampleSize bounds each image dimension before sampling.
const maxSampleSize = 256

type cacheKey struct {
	name, path string
}

type cacheEntry struct {
	modTime  time.Time
	size     int64
	settings string
	theme    Theme
}

// Sampler computes themes for sources and remembers the result per
// source name and path until the file's modification time, its size or
// the source settings change. It is safe for concurrent use.
type Sampler struct {
	log     *logrus.Entry
	display Display

	mu    sync.RWMutex
	cache map[cacheKey]cacheEntry
}

// SamplerOption configures a Sampler.
type SamplerOption func(*Sampler)

// WithDisplay replaces the operating system's displays, e.g. for tests.
func WithDisplay(d Display) SamplerOption {
	return func(s *Sampler) {
		s.display = d
	}
}

// WithLogger sends the sampler's logs to logger instead of the logrus
// standard logger.
func WithLogger(logger *logrus.Logger) SamplerOption {
	return func(s *Sampler) {
		s.log = logger.WithField("component", "theme")
	}
}

// NewSampler creates a Sampler with an empty cache.
func NewSampler(opts ...SamplerOption) *Sampler {
	s := &Sampler{
		log:     logrus.WithField("component", "theme"),
		display: ScreenDisplay{},
		cache:   make(map[cacheKey]cacheEntry),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Sample returns the theme for src. When the image cannot be read, the
// returned theme holds src's fallback colors and the error says why; the
// theme is never nil.
//
// File and desktop themes are cached until the file's modification time,
// its size or the source settings change. Screen captures are always resampled.
func (s *Sampler) Sample(src Source) (*Theme, error) {
	key := cacheKey{src.Name, src.Path}
	settings := src.settings()
	cacheable := src.Kind == KindFile || src.Kind == KindDesktop

	var (
		modTime time.Time
		size    int64
	)
	if cacheable {
		if src.Path == "" {
			return s.fallback(src, ErrEmptyPath)
		}
		info, err := os.Stat(src.Path)
		if err != nil {
			return s.fallback(src, fmt.Errorf("failed to stat image: %w", err))
		}
		modTime, size = info.ModTime(), info.Size()

		s.mu.RLock()
		entry, ok := s.cache[key]
		s.mu.RUnlock()
		if ok && entry.modTime.Equal(modTime) && entry.size == size &&
			entry.settings == settings {
			t := entry.theme
			return &t, nil
		}
	}

	s.sourceLog(src).Debug("Updating colors")

	img, err := s.Load(src)
	if err != nil {
		return s.fallback(src, err)
	}

	t := FromEngine(Analyze(src, img))
	t.Path = src.Path

	if cacheable {
		s.mu.Lock()
		s.cache[key] = cacheEntry{
			modTime:  modTime,
			size:     size,
			settings: settings,
			theme:    *t,
		}
		s.mu.Unlock()
	}

	return t, nil
}

// Forget drops the cached theme of a source so the next Sample reloads it.
func (s *Sampler) Forget(name, path string) {
	s.mu.Lock()
	delete(s.cache, cacheKey{name, path})
	s.mu.Unlock()
}

// Load reads the pixels of src, from its file or by capturing its
// display, and applies its crop.
func (s *Sampler) Load(src Source) (*imageutil.RGBAImage, error) {
	var img *imageutil.RGBAImage

	switch src.Kind {
	case KindFile, KindDesktop:
		if src.Path == "" {
			return nil, ErrEmptyPath
		}
		loaded, err := imageutil.LoadImage(src.Path)
		if err != nil {
			return nil, err
		}
		img = loaded

	case KindScreen:
		if err := checkDisplay(s.display, src.Display); err != nil {
			return nil, err
		}
		capture, err := s.display.Capture(src.Display)
		if err != nil {
			return nil, err
		}
		img = imageutil.RGBAImageFromImage(capture)

	default:
		return nil, fmt.Errorf("invalid source type %v", src.Kind)
	}

	return s.crop(s.sourceLog(src), src, img), nil
}

func (s *Sampler) sourceLog(src Source) *logrus.Entry {
	fields := logrus.Fields{"source": src.Name}
	if src.Kind == KindScreen {
		fields["display"] = src.Display
	} else {
		fields["path"] = src.Path
	}
	return s.log.WithFields(fields)
}

// crop applies the explicit crop, or for wallpapers the crop to the
// display size. Crop failures are logged and leave the image whole.
func (s *Sampler) crop(log *logrus.Entry, src Source, img *imageutil.RGBAImage) *imageutil.RGBAImage {
	if !src.Crop.Empty() {
		cropped, err := imageutil.Crop(img, src.Crop)
		if err != nil {
			log.WithError(err).Error("Cropping out of bounds of image, check the crop parameters")
		}
		return cropped
	}

	if src.Kind != KindDesktop || !src.CropDesktop {
		return img
	}

	if err := checkDisplay(s.display, src.Display); err != nil {
		log.WithError(err).Warn("Not cropping wallpaper to display")
		return img
	}
	bounds := s.display.Bounds(src.Display)
	return imageutil.CenterCrop(img, bounds.Dx(), bounds.Dy())
}

// Analyze shrinks img to at most 256 pixels per side and runs an engine
// over it with the weights, contrast and alpha handling src asks for.
// Cropping is left to the caller.
func Analyze(src Source, img *imageutil.RGBAImage) *chameleon.Engine {
	img = imageutil.FitWithin(img, maxSampleSize, imageutil.InterpolationArea)

	params := src.Params
	if params == nil {
		if src.ForceIcon {
			params = chameleon.DefaultIconParams()
		} else {
			params = chameleon.DefaultImageParams()
		}
	}

	e := chameleon.New(chameleon.WithMinContrast(src.MinContrast))
	e.ProcessImage(img.Pack(), img.Width(), img.Height(), true, src.ForceIcon)
	e.FindKeyColors(params, !src.ForceIcon)

	return e
}

func (s *Sampler) fallback(src Source, err error) (*Theme, error) {
	s.Forget(src.Name, src.Path)

	entry := s.sourceLog(src).WithError(err)
	if errors.Is(err, ErrEmptyPath) {
		entry.Debug("Using fallback colors")
	} else {
		entry.Error("Using fallback colors")
	}

	return FallbackTheme(src.Fallback, src.Path), err
}
