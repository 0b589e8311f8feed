package theme

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ErrNoInterval is returned by Watch for a screen source without a
// polling interval.
var ErrNoInterval = errors.New("screen sources need a positive interval")

// Watch samples src once and then again whenever it may have changed,
// calling fn with every theme that differs from the previous one. Failed
// samples are always reported, together with the fallback theme.
//
// File and desktop sources are resampled when their file is written,
// replaced or touched. Screen sources are recaptured every interval.
// Watch blocks until ctx is done and returns ctx.Err().
func (s *Sampler) Watch(ctx context.Context, src Source, interval time.Duration, fn func(*Theme, error)) error {
	var last *Theme
	update := func() {
		t, err := s.Sample(src)
		if err == nil && last != nil && *last == *t {
			return
		}
		last = t
		fn(t, err)
	}

	if src.Kind == KindScreen {
		if interval <= 0 {
			return ErrNoInterval
		}
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		update()
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
				update()
			}
		}
	}

	if src.Path == "" {
		return ErrEmptyPath
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	// Editors often replace files instead of writing them, so watch the
	// directory and filter by name.
	path := filepath.Clean(src.Path)
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(path), err)
	}

	log := s.sourceLog(src)
	update()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			log.WithField("op", event.Op.String()).Debug("Image changed")
			// The modification time may not have moved on filesystems
			// with coarse timestamps.
			s.Forget(src.Name, src.Path)
			update()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.WithError(err).Warn("Watcher error")
		}
	}
}
