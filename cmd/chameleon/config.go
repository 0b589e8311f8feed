package main

import (
	"fmt"
	"image"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/wbrown/chameleon/theme"
)

// Environment variables read for defaults. Flags win over them.
const (
	envFallbackBg1 = "CHAMELEON_FALLBACK_BG1"
	envFallbackBg2 = "CHAMELEON_FALLBACK_BG2"
	envFallbackFg1 = "CHAMELEON_FALLBACK_FG1"
	envFallbackFg2 = "CHAMELEON_FALLBACK_FG2"
	envFormat      = "CHAMELEON_FORMAT"
	envMinContrast = "CHAMELEON_MIN_CONTRAST"
	defaultEnvFile = ".env"
)

const cropFieldCount = 4

// loadEnv reads path into the environment. A missing default .env file is
// not an error, an explicitly requested one is.
func loadEnv(log *logrus.Logger, path string) error {
	if path != "" {
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("error loading env file: %w", err)
		}
		return nil
	}
	if err := godotenv.Load(defaultEnvFile); err != nil {
		log.Debug("No .env file found, using flags and environment only")
	}
	return nil
}

// parseCrop parses "x,y,w,h" into a rectangle. An empty string is no
// crop.
func parseCrop(s string) (image.Rectangle, error) {
	if strings.TrimSpace(s) == "" {
		return image.Rectangle{}, nil
	}

	fields := strings.Split(s, ",")
	if len(fields) != cropFieldCount {
		return image.Rectangle{}, fmt.Errorf("invalid crop %q, expected x,y,w,h", s)
	}

	var v [cropFieldCount]int
	for i, f := range fields {
		n, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return image.Rectangle{}, fmt.Errorf("invalid crop %q: %w", s, err)
		}
		v[i] = n
	}
	if v[2] <= 0 || v[3] <= 0 {
		return image.Rectangle{}, fmt.Errorf("invalid crop %q, width and height must be positive", s)
	}

	return image.Rect(v[0], v[1], v[0]+v[2], v[1]+v[3]), nil
}

// parseFallback reads the four fallback colors. Unset or empty values
// keep the defaults; a malformed value is an error naming its variable.
func parseFallback(getenv func(string) string) (theme.Fallback, error) {
	var f theme.Fallback
	fields := []struct {
		key string
		dst *uint32
	}{
		{envFallbackBg1, &f.Background1},
		{envFallbackBg2, &f.Background2},
		{envFallbackFg1, &f.Foreground1},
		{envFallbackFg2, &f.Foreground2},
	}

	for _, field := range fields {
		value := strings.TrimSpace(getenv(field.key))
		if value == "" {
			continue
		}
		c, err := theme.ParseColor(value)
		if err != nil {
			return theme.Fallback{}, fmt.Errorf("%s: %w", field.key, err)
		}
		*field.dst = c
	}
	return f, nil
}

// envFloat returns the float in key, or def when it is unset.
func envFloat(getenv func(string) string, key string, def float64) (float64, error) {
	value := strings.TrimSpace(getenv(key))
	if value == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(value, 32)
	if err != nil {
		return def, fmt.Errorf("%s: %w", key, err)
	}
	return f, nil
}

// envString returns the value of key, or def when it is unset.
func envString(getenv func(string) string, key, def string) string {
	if v := strings.TrimSpace(getenv(key)); v != "" {
		return v
	}
	return def
}
