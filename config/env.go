package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// The readers below take a variable and return fallback when it is unset,
// blank or does not parse.

// String returns the trimmed value of key.
func String(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

// CSV splits key on commas, dropping empty items.
func CSV(key string) []string {
	return parseCSV(os.Getenv(key))
}

// Bool accepts the forms strconv.ParseBool does.
func Bool(key string, fallback bool) bool {
	return parseBool(os.Getenv(key), fallback)
}

// Int reads a base-10 integer.
func Int(key string, fallback int) int {
	return parseInt(os.Getenv(key), fallback)
}

// Float reads a float64.
func Float(key string, fallback float64) float64 {
	return parseFloat(os.Getenv(key), fallback)
}

// Duration reads a Go duration or a number of seconds.
func Duration(key string, fallback time.Duration) time.Duration {
	return parseDuration(os.Getenv(key), fallback)
}

func parseCSV(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		v := strings.TrimSpace(p)
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

func parseBool(raw string, fallback bool) bool {
	v := strings.TrimSpace(raw)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func parseInt(raw string, fallback int) int {
	v := strings.TrimSpace(raw)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func parseFloat(raw string, fallback float64) float64 {
	v := strings.TrimSpace(raw)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return n
}

// parseDuration accepts Go durations ("90s") and bare seconds ("90").
func parseDuration(raw string, fallback time.Duration) time.Duration {
	v := strings.TrimSpace(raw)
	if v == "" {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil && n >= 0 {
		return time.Duration(n) * time.Second
	}
	return fallback
}
