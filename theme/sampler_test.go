package theme

import (
	"errors"
	"image"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/wbrown/chameleon/imageutil"
)

var (
	white = imageutil.RGB{R: 255, G: 255, B: 255}
	black = imageutil.RGB{}
	red   = imageutil.RGB{R: 255}
	blue  = imageutil.RGB{B: 255}
)

type stubDisplay struct {
	bounds  []image.Rectangle
	capture *image.RGBA
	err     error
}

func (d *stubDisplay) NumDisplays() int { return len(d.bounds) }

func (d *stubDisplay) Bounds(display int) image.Rectangle { return d.bounds[display] }

func (d *stubDisplay) Capture(display int) (*image.RGBA, error) {
	if d.err != nil {
		return nil, d.err
	}
	return d.capture, nil
}

func newTestSampler(t *testing.T, d Display) (*Sampler, *test.Hook) {
	t.Helper()
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	return NewSampler(WithLogger(logger), WithDisplay(d)), hook
}

func writeImage(t *testing.T, path string, img *imageutil.RGBAImage) {
	t.Helper()
	if err := imageutil.SavePNG(img, path); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
}

// framedImage is 40x40: a white frame four pixels wide around black.
func framedImage() *imageutil.RGBAImage {
	return imageutil.CreateFramedImage(40, 40, 4, white, black)
}

func TestSampleFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "framed.png")
	writeImage(t, path, framedImage())

	s, _ := newTestSampler(t, &stubDisplay{})
	th, err := s.Sample(Source{Name: "file", Kind: KindFile, Path: path})
	if err != nil {
		t.Fatalf("Failed to sample: %v", err)
	}

	if th.Background1 != 0xFFFFFFFF {
		t.Errorf("Expected the white frame as background, got %08X", th.Background1)
	}
	if th.Foreground1 != 0xFF000000 {
		t.Errorf("Expected black foreground, got %08X", th.Foreground1)
	}
	if th.Fallback || th.Path != path {
		t.Errorf("Expected a sampled theme for %s, got %+v", path, th)
	}
	if th.Light[0] != 0xFFFFFFFF || th.Dark[0] != 0xFF000000 {
		t.Errorf("Expected white Light1 and black Dark1, got %08X %08X", th.Light[0], th.Dark[0])
	}
}

func TestSampleIconPresets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "icon.png")
	writeImage(t, path, framedImage())

	s, _ := newTestSampler(t, &stubDisplay{})
	th, err := s.Sample(Source{Name: "icon", Kind: KindFile, Path: path, ForceIcon: true})
	if err != nil {
		t.Fatalf("Failed to sample: %v", err)
	}

	// Icon weights ignore the frame and go by area.
	if th.Background1 != 0xFF000000 {
		t.Errorf("Expected the larger black area as background, got %08X", th.Background1)
	}
}

func TestSampleAlphaByPreset(t *testing.T) {
	// 200x200 is large enough for the engine to resample: a red square on
	// a fully transparent canvas.
	img := imageutil.NewRGBAImage(200, 200)
	for y := 50; y < 150; y++ {
		for x := 50; x < 150; x++ {
			img.SetRGB(x, y, red)
		}
	}
	path := filepath.Join(t.TempDir(), "transparent.png")
	writeImage(t, path, img)

	s, _ := newTestSampler(t, &stubDisplay{})

	icon, err := s.Sample(Source{Name: "icon", Kind: KindFile, Path: path, ForceIcon: true})
	if err != nil {
		t.Fatalf("Failed to sample icon: %v", err)
	}
	if icon.Background1 != 0xFFFF0000 {
		t.Errorf("Expected icons to skip transparent pixels, got background %08X", icon.Background1)
	}

	photo, err := s.Sample(Source{Name: "photo", Kind: KindFile, Path: path})
	if err != nil {
		t.Fatalf("Failed to sample image: %v", err)
	}
	if photo.Background1 != 0xFF000000 {
		t.Errorf("Expected images to count transparent pixels as black, got background %08X", photo.Background1)
	}
}

func TestSampleCachesByModTime(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wall.png")
	writeImage(t, path, framedImage())

	s, hook := newTestSampler(t, &stubDisplay{})
	src := Source{Name: "wall", Kind: KindFile, Path: path}

	first, err := s.Sample(src)
	if err != nil {
		t.Fatalf("Failed to sample: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Failed to stat: %v", err)
	}
	modTime := info.ModTime()

	// Touching the file without moving its time keeps the cache.
	if err := os.Chtimes(path, modTime, modTime); err != nil {
		t.Fatalf("Failed to set times: %v", err)
	}
	hook.Reset()
	cached, err := s.Sample(src)
	if err != nil {
		t.Fatalf("Failed to sample: %v", err)
	}
	if *cached != *first {
		t.Errorf("Expected the cached theme, got %+v", cached)
	}
	if len(hook.Entries) != 0 {
		t.Errorf("Expected no reload for an unchanged file, got %d log entries", len(hook.Entries))
	}

	writeImage(t, path, imageutil.CreateSolidImage(40, 40, blue))
	later := modTime.Add(time.Hour)
	if err := os.Chtimes(path, later, later); err != nil {
		t.Fatalf("Failed to set times: %v", err)
	}
	updated, err := s.Sample(src)
	if err != nil {
		t.Fatalf("Failed to sample: %v", err)
	}
	if updated.Background1 != 0xFF0000FF {
		t.Errorf("Expected the new blue image to be sampled, got %08X", updated.Background1)
	}
}

func TestSampleCacheChecksSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wall.png")
	writeImage(t, path, framedImage())

	s, _ := newTestSampler(t, &stubDisplay{})
	src := Source{Name: "wall", Kind: KindFile, Path: path}

	if _, err := s.Sample(src); err != nil {
		t.Fatalf("Failed to sample: %v", err)
	}
	before, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Failed to stat: %v", err)
	}

	// Replace the image but keep the modification time, as a filesystem
	// with coarse timestamps would.
	writeImage(t, path, imageutil.CreateFramedImage(120, 80, 10, red, blue))
	modTime := before.ModTime()
	if err := os.Chtimes(path, modTime, modTime); err != nil {
		t.Fatalf("Failed to set times: %v", err)
	}
	after, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Failed to stat: %v", err)
	}
	if after.Size() == before.Size() {
		t.Fatalf("Expected the replacement to change the file size, got %d bytes for both", after.Size())
	}

	th, err := s.Sample(src)
	if err != nil {
		t.Fatalf("Failed to sample: %v", err)
	}
	if th.Background1 != 0xFFFF0000 {
		t.Errorf("Expected the replaced red frame to be sampled, got %08X", th.Background1)
	}
}

func TestSampleSettingsInvalidateCache(t *testing.T) {
	path := filepath.Join(t.TempDir(), "framed.png")
	writeImage(t, path, framedImage())

	s, _ := newTestSampler(t, &stubDisplay{})
	src := Source{Name: "framed", Kind: KindFile, Path: path}

	th, _ := s.Sample(src)
	if th.Background1 != 0xFFFFFFFF {
		t.Fatalf("Expected white background, got %08X", th.Background1)
	}

	src.Crop = image.Rect(10, 10, 30, 30)
	th, err := s.Sample(src)
	if err != nil {
		t.Fatalf("Failed to sample: %v", err)
	}
	if th.Background1 != 0xFF000000 {
		t.Errorf("Expected the cropped interior to be sampled, got %08X", th.Background1)
	}
}

func TestSampleCropOutOfBounds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "framed.png")
	writeImage(t, path, framedImage())

	s, hook := newTestSampler(t, &stubDisplay{})
	th, err := s.Sample(Source{
		Name: "framed",
		Kind: KindFile,
		Path: path,
		Crop: image.Rect(100, 100, 120, 120),
	})
	if err != nil {
		t.Fatalf("Failed to sample: %v", err)
	}
	if th.Background1 != 0xFFFFFFFF {
		t.Errorf("Expected the whole image to be sampled, got %08X", th.Background1)
	}

	found := false
	for _, entry := range hook.AllEntries() {
		if entry.Level == logrus.ErrorLevel && errors.Is(entry.Data[logrus.ErrorKey].(error), imageutil.ErrCropOutOfBounds) {
			found = true
		}
	}
	if !found {
		t.Error("Expected the bad crop to be logged")
	}
}

func TestSampleDesktopCrop(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wallpaper.png")
	writeImage(t, path, imageutil.CreateFramedImage(40, 40, 10, red, blue))

	d := &stubDisplay{bounds: []image.Rectangle{image.Rect(0, 0, 20, 20)}}
	s, _ := newTestSampler(t, d)
	src := Source{Name: "desktop", Kind: KindDesktop, Path: path, CropDesktop: true}

	th, err := s.Sample(src)
	if err != nil {
		t.Fatalf("Failed to sample: %v", err)
	}
	if th.Background1 != 0xFF0000FF {
		t.Errorf("Expected the visible blue center, got %08X", th.Background1)
	}

	src.CropDesktop = false
	th, err = s.Sample(src)
	if err != nil {
		t.Fatalf("Failed to sample: %v", err)
	}
	if th.Background1 != 0xFFFF0000 {
		t.Errorf("Expected the red frame without cropping, got %08X", th.Background1)
	}
}

func TestSampleDesktopWithoutDisplay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wallpaper.png")
	writeImage(t, path, imageutil.CreateFramedImage(40, 40, 10, red, blue))

	s, hook := newTestSampler(t, &stubDisplay{})
	th, err := s.Sample(Source{Name: "desktop", Kind: KindDesktop, Path: path, CropDesktop: true})
	if err != nil {
		t.Fatalf("Failed to sample: %v", err)
	}
	if th.Background1 != 0xFFFF0000 {
		t.Errorf("Expected the uncropped wallpaper, got %08X", th.Background1)
	}

	found := false
	for _, entry := range hook.AllEntries() {
		if entry.Level == logrus.WarnLevel {
			found = true
		}
	}
	if !found {
		t.Error("Expected a warning about the missing display")
	}
}

func TestSampleEmptyPath(t *testing.T) {
	s, _ := newTestSampler(t, &stubDisplay{})
	th, err := s.Sample(Source{Name: "empty", Kind: KindFile})
	if !errors.Is(err, ErrEmptyPath) {
		t.Fatalf("Expected ErrEmptyPath, got %v", err)
	}
	if !th.Fallback {
		t.Error("Expected a fallback theme")
	}
	if th.Background1 != 0xFFFFFFFF || th.Foreground1 != 0xFF000000 {
		t.Errorf("Expected default fallback colors, got %08X %08X", th.Background1, th.Foreground1)
	}
}

func TestSampleMissingFile(t *testing.T) {
	s, hook := newTestSampler(t, &stubDisplay{})
	src := Source{
		Name:     "missing",
		Kind:     KindFile,
		Path:     filepath.Join(t.TempDir(), "missing.png"),
		Fallback: Fallback{Background1: 0xFF102030},
	}

	th, err := s.Sample(src)
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("Expected a not-exist error, got %v", err)
	}
	if th.Background1 != 0xFF102030 || th.Background2 != 0xFF102030 {
		t.Errorf("Expected the configured fallback, got %08X %08X", th.Background1, th.Background2)
	}

	entry := hook.LastEntry()
	if entry == nil || entry.Level != logrus.ErrorLevel {
		t.Fatalf("Expected an error to be logged, got %v", entry)
	}
	if entry.Data["component"] != "theme" || entry.Data["source"] != "missing" {
		t.Errorf("Expected component and source fields, got %v", entry.Data)
	}
}

func TestSampleUndecodableFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.png")
	if err := os.WriteFile(path, []byte("not an image"), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	s, _ := newTestSampler(t, &stubDisplay{})
	th, err := s.Sample(Source{Name: "broken", Kind: KindFile, Path: path})
	if err == nil || !strings.Contains(err.Error(), "failed to decode image") {
		t.Fatalf("Expected a decode error, got %v", err)
	}
	if !th.Fallback || th.Path != path {
		t.Errorf("Expected a fallback theme for %s, got %+v", path, th)
	}
}

func TestSampleScreen(t *testing.T) {
	capture := imageutil.CreateFramedImage(64, 32, 2, blue, white).RGBA
	d := &stubDisplay{
		bounds:  []image.Rectangle{image.Rect(0, 0, 64, 32)},
		capture: capture,
	}
	s, _ := newTestSampler(t, d)

	th, err := s.Sample(Source{Name: "screen", Kind: KindScreen})
	if err != nil {
		t.Fatalf("Failed to sample: %v", err)
	}
	if th.Fallback {
		t.Error("Expected a sampled theme")
	}
	if th.Average == 0xFFFFFFFF || th.Average == 0xFF0000FF {
		t.Errorf("Expected a mixed average, got %08X", th.Average)
	}

	_, err = s.Sample(Source{Name: "screen", Kind: KindScreen, Display: 1})
	if !errors.Is(err, ErrNoDisplay) {
		t.Errorf("Expected ErrNoDisplay, got %v", err)
	}

	d.err = errors.New("capture denied")
	th, err = s.Sample(Source{Name: "screen", Kind: KindScreen})
	if err == nil || !th.Fallback {
		t.Errorf("Expected a fallback theme on capture failure, got %v", err)
	}
}

func TestSampleLargeImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "large.png")
	writeImage(t, path, imageutil.CreateSolidImage(600, 300, imageutil.RGB{G: 255}))

	s, _ := newTestSampler(t, &stubDisplay{})
	th, err := s.Sample(Source{Name: "large", Kind: KindFile, Path: path})
	if err != nil {
		t.Fatalf("Failed to sample: %v", err)
	}

	c := imageutil.RGBFromPacked(th.Background1)
	if c.G < 254 || c.R > 1 || c.B > 1 {
		t.Errorf("Expected green background, got %v", c)
	}
}

func TestSampleConcurrent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "framed.png")
	writeImage(t, path, framedImage())

	s, _ := newTestSampler(t, &stubDisplay{})
	src := Source{Name: "framed", Kind: KindFile, Path: path}

	var wg sync.WaitGroup
	results := make([]*Theme, 8)
	errs := make([]error, len(results))
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = s.Sample(src)
		}(i)
	}
	wg.Wait()

	for i, th := range results {
		if errs[i] != nil {
			t.Errorf("Sample %d failed: %v", i, errs[i])
			continue
		}
		if th.Background1 != 0xFFFFFFFF {
			t.Errorf("Sample %d: expected white background, got %08X", i, th.Background1)
		}
	}
}

func TestSampleInvalidKind(t *testing.T) {
	s, _ := newTestSampler(t, &stubDisplay{})
	th, err := s.Sample(Source{Name: "bad", Kind: Kind(7), Path: "x"})
	if err == nil || !th.Fallback {
		t.Errorf("Expected a fallback theme for an invalid kind, got %v", err)
	}
}
