// Package config loads the client settings shared by the TUI and the MCP
// servers from BUSTUI_* environment variables.
package config

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/qyinm/bustui/api"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Client configures the movie API gateway.
type Client struct {
	BaseURL   string
	ProxyURL  string
	Timeout   time.Duration
	CacheSize int
	CacheTTL  time.Duration
}

// Log configures the rotating log file.
type Log struct {
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// Config is everything read from the environment.
type Config struct {
	Client Client
	Log    Log
}

// Load reads the BUSTUI_* variables, falling back to the api defaults.
func Load() Config {
	cfg := Config{
		Client: Client{
			BaseURL:   String("BUSTUI_API_BASE", api.DefaultBaseURL),
			ProxyURL:  String("BUSTUI_PROXY", ""),
			Timeout:   Duration("BUSTUI_TIMEOUT", api.DefaultTimeout),
			CacheSize: Int("BUSTUI_CACHE_SIZE", api.DefaultCacheSize),
			CacheTTL:  Duration("BUSTUI_CACHE_TTL", api.DefaultCacheTTL),
		},
		Log: Log{
			File:       String("BUSTUI_LOG_FILE", defaultLogFile()),
			MaxSizeMB:  Int("BUSTUI_LOG_MAX_SIZE_MB", 10),
			MaxBackups: Int("BUSTUI_LOG_MAX_BACKUPS", 3),
			MaxAgeDays: Int("BUSTUI_LOG_MAX_AGE_DAYS", 28),
			Compress:   Bool("BUSTUI_LOG_COMPRESS", false),
		},
	}

	if cfg.Client.Timeout < 0 {
		cfg.Client.Timeout = api.DefaultTimeout
	}
	if cfg.Client.CacheSize <= 0 {
		cfg.Client.CacheSize = api.DefaultCacheSize
	}
	if cfg.Log.MaxSizeMB <= 0 {
		cfg.Log.MaxSizeMB = 10
	}

	return cfg
}

// APIOptions maps the client settings onto api.Options.
func (c Client) APIOptions() api.Options {
	return api.Options{
		BaseURL:   c.BaseURL,
		ProxyURL:  c.ProxyURL,
		Timeout:   c.Timeout,
		CacheSize: c.CacheSize,
		CacheTTL:  c.CacheTTL,
	}
}

// NewClient builds the gateway from the client settings.
func (c Client) NewClient() (*api.Client, error) {
	return api.New(c.APIOptions())
}

// OpenLog returns a logger writing to the rotating log file. Setting the
// file to "-" or "off" discards log output. The returned closer releases
// the file.
func (l Log) OpenLog(prefix string) (*log.Logger, io.Closer, error) {
	switch l.File {
	case "", "-", "off":
		return log.New(io.Discard, "", 0), io.NopCloser(nil), nil
	}
	if err := os.MkdirAll(filepath.Dir(l.File), 0o755); err != nil {
		return nil, nil, err
	}
	w := &lumberjack.Logger{
		Filename:   l.File,
		MaxSize:    l.MaxSizeMB,
		MaxBackups: l.MaxBackups,
		MaxAge:     l.MaxAgeDays,
		Compress:   l.Compress,
	}
	return log.New(w, prefix, log.LstdFlags|log.Lmsgprefix), w, nil
}

func defaultLogFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "bustui", "bustui.log")
}
