package config

import (
	"os"
	"strconv"
	"time"
)

// Defaults for the Gemini decoding parameters. Overridable via env, but the
// stock values match what the product ships with.
const (
	DefaultModel           = "gemini-2.5-flash"
	DefaultMaxOutputTokens = 1024
	DefaultTemperature     = 0.7
	DefaultTimeout         = 60 * time.Second
)

// Config holds everything read from the environment at process start.
// GeminiAPIKey may legitimately be empty here: absence is reported
// per-request at the chat boundary, not at startup.
type Config struct {
	Port            string
	CORSOrigin      string
	GeminiAPIKey    string
	Model           string
	MaxOutputTokens int
	Temperature     float64
	RequestTimeout  time.Duration
}

func Load() Config {
	cfg := Config{
		Port:            getenv("PORT", "8080"),
		CORSOrigin:      getenv("CORS_ORIGIN", "http://localhost:3000"),
		GeminiAPIKey:    os.Getenv("GEMINI_API_KEY"),
		Model:           getenv("GEMINI_MODEL", DefaultModel),
		MaxOutputTokens: DefaultMaxOutputTokens,
		Temperature:     DefaultTemperature,
		RequestTimeout:  DefaultTimeout,
	}
	if v := os.Getenv("GEMINI_MAX_OUTPUT_TOKENS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MaxOutputTokens = n
		}
	}
	if v := os.Getenv("GEMINI_TEMPERATURE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 {
			cfg.Temperature = f
		}
	}
	if v := os.Getenv("REQUEST_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.RequestTimeout = time.Duration(n) * time.Second
		}
	}
	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
