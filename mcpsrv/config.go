package mcpsrv

import (
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/qyinm/bustui/config"
)

type Config struct {
	Port               string
	AllowedOrigins     []string
	Stateless          bool
	EnableSearch       bool
	EnableAdmin        bool
	APIKey             string
	RPS                float64
	Burst              int
	SessionTimeout     time.Duration
	CacheClearInterval time.Duration
	MaxItems           int
}

func LoadConfig() Config {
	port := strings.TrimSpace(config.String("PORT", ""))
	if port == "" {
		port = config.String("BUSTUI_MCP_PORT", "8080")
	}

	cfg := Config{
		Port:               port,
		AllowedOrigins:     config.CSV("BUSTUI_MCP_ALLOWED_ORIGINS"),
		Stateless:          config.Bool("BUSTUI_MCP_STATELESS", false),
		EnableSearch:       config.Bool("BUSTUI_MCP_ENABLE_SEARCH", true),
		EnableAdmin:        config.Bool("BUSTUI_MCP_ENABLE_ADMIN", false),
		APIKey:             config.String("BUSTUI_MCP_API_KEY", ""),
		RPS:                config.Float("BUSTUI_MCP_RPS", 2),
		Burst:              config.Int("BUSTUI_MCP_BURST", 5),
		SessionTimeout:     config.Duration("BUSTUI_MCP_SESSION_TIMEOUT", 15*time.Minute),
		CacheClearInterval: config.Duration("BUSTUI_MCP_CACHE_CLEAR_INTERVAL", 30*time.Minute),
		MaxItems:           config.Int("BUSTUI_MCP_MAX_ITEMS", defaultMaxItems),
	}

	if cfg.RPS <= 0 {
		cfg.RPS = 2
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 5
	}
	if cfg.MaxItems <= 0 {
		cfg.MaxItems = defaultMaxItems
	}

	return cfg
}

// ServerOptions derives the tool gating from cfg. The admin tool is only
// exposed when an API key protects the endpoint.
func (c Config) ServerOptions() *ServerOptions {
	return &ServerOptions{
		EnableSearch: c.EnableSearch,
		EnableAdmin:  c.EnableAdmin && c.APIKey != "",
		APIKey:       c.APIKey,
		MaxItems:     c.MaxItems,
	}
}

func StreamableOptions(cfg Config) *mcp.StreamableHTTPOptions {
	return &mcp.StreamableHTTPOptions{
		Stateless:      cfg.Stateless,
		SessionTimeout: cfg.SessionTimeout,
	}
}
