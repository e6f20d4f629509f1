// Package config loads runtime settings from the environment.
//
// A .env file in the working directory is read first when present. Variables
// already set in the environment win over the file.
package config

import (
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variable names.
const (
	EnvLogLevel    = "WATERMARK_LOG_LEVEL"
	EnvLogFormat   = "WATERMARK_LOG_FORMAT"
	EnvOutputDir   = "WATERMARK_OUTPUT_DIR"
	EnvOCRLanguage = "WATERMARK_OCR_LANGUAGE"
	EnvOpacity     = "WATERMARK_OPACITY"
	EnvMaxPixels   = "WATERMARK_MAX_PIXELS"
)

// Config holds the server settings.
type Config struct {
	// LogLevel is one of debug, info, warn or error.
	LogLevel string

	// LogFormat is console or json.
	LogFormat string

	// OutputDir is where artifacts are saved when no path is given.
	OutputDir string

	// OCRLanguage is the Tesseract language used for legibility checks.
	OCRLanguage string

	// Opacity scales the watermark alpha, clamped to [0, 1].
	Opacity float64

	// MaxPixels caps the canvas size of a single run.
	MaxPixels int
}

// Load reads .env (if any) and the environment.
func Load() Config {
	_ = godotenv.Load(".env")

	return Config{
		LogLevel:    strings.ToLower(getEnv(EnvLogLevel, "info")),
		LogFormat:   strings.ToLower(getEnv(EnvLogFormat, "console")),
		OutputDir:   getEnv(EnvOutputDir, os.TempDir()),
		OCRLanguage: getEnv(EnvOCRLanguage, "eng"),
		Opacity:     clamp01(getEnvFloat(EnvOpacity, 0.4)),
		MaxPixels:   getEnvInt(EnvMaxPixels, 50_000_000),
	}
}

func getEnv(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func getEnvInt(k string, def int) int {
	if v, err := strconv.Atoi(getEnv(k, "")); err == nil {
		return v
	}
	return def
}

// getEnvFloat treats NaN like an unparsable value.
func getEnvFloat(k string, def float64) float64 {
	if v, err := strconv.ParseFloat(getEnv(k, ""), 64); err == nil && !math.IsNaN(v) {
		return v
	}
	return def
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
