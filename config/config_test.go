package config

import (
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/qyinm/bustui/api"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"BUSTUI_API_BASE", "BUSTUI_PROXY", "BUSTUI_TIMEOUT", "BUSTUI_CACHE_SIZE", "BUSTUI_CACHE_TTL", "BUSTUI_LOG_FILE"} {
		t.Setenv(k, "")
	}
	cfg := Load()
	if cfg.Client.BaseURL != api.DefaultBaseURL {
		t.Fatalf("base url = %q", cfg.Client.BaseURL)
	}
	if cfg.Client.Timeout != api.DefaultTimeout {
		t.Fatalf("timeout = %v", cfg.Client.Timeout)
	}
	if cfg.Client.CacheSize != api.DefaultCacheSize {
		t.Fatalf("cache size = %d", cfg.Client.CacheSize)
	}
	if !strings.HasSuffix(cfg.Log.File, filepath.Join("bustui", "bustui.log")) {
		t.Fatalf("log file = %q", cfg.Log.File)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("BUSTUI_API_BASE", "http://localhost:3000/api")
	t.Setenv("BUSTUI_PROXY", "http://127.0.0.1:7890")
	t.Setenv("BUSTUI_TIMEOUT", "0")
	t.Setenv("BUSTUI_CACHE_SIZE", "-4")
	t.Setenv("BUSTUI_CACHE_TTL", "5m")

	cfg := Load()
	if cfg.Client.BaseURL != "http://localhost:3000/api" || cfg.Client.ProxyURL != "http://127.0.0.1:7890" {
		t.Fatalf("unexpected client config: %+v", cfg.Client)
	}
	if cfg.Client.Timeout != 0 {
		t.Fatalf("timeout 0 should disable the deadline, got %v", cfg.Client.Timeout)
	}
	if cfg.Client.CacheSize != api.DefaultCacheSize {
		t.Fatalf("negative cache size should fall back, got %d", cfg.Client.CacheSize)
	}
	if cfg.Client.CacheTTL != 5*time.Minute {
		t.Fatalf("cache ttl = %v", cfg.Client.CacheTTL)
	}

	c, err := cfg.Client.NewClient()
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	if c.BaseURL() != "http://localhost:3000/api" {
		t.Fatalf("client base url = %q", c.BaseURL())
	}
}

func TestParseHelpers(t *testing.T) {
	if got := parseDuration("90", time.Second); got != 90*time.Second {
		t.Fatalf("bare seconds: %v", got)
	}
	if got := parseDuration("1m30s", time.Second); got != 90*time.Second {
		t.Fatalf("go duration: %v", got)
	}
	if got := parseDuration("soon", 7*time.Second); got != 7*time.Second {
		t.Fatalf("fallback: %v", got)
	}
	if got := parseBool("yes", true); !got {
		t.Fatalf("unparseable bool should fall back")
	}
	if got := parseInt(" 12 ", 0); got != 12 {
		t.Fatalf("int: %d", got)
	}
	if got := parseFloat("x", 2.5); got != 2.5 {
		t.Fatalf("float fallback: %v", got)
	}
	if got := parseCSV(" a, ,b ,"); len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("csv: %v", got)
	}
}

func TestOpenLog(t *testing.T) {
	logger, closer, err := Log{File: "off"}.OpenLog("")
	if err != nil || logger == nil || closer == nil {
		t.Fatalf("off: %v", err)
	}
	if logger.Writer() != io.Discard {
		t.Fatalf("off should discard")
	}

	path := filepath.Join(t.TempDir(), "nested", "bustui.log")
	logger, closer, err = Log{File: path, MaxSizeMB: 1}.OpenLog("test: ")
	if err != nil {
		t.Fatalf("open log: %v", err)
	}
	defer closer.Close()
	logger.Printf("hello")
}
