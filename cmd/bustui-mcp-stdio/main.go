package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/qyinm/bustui/config"
	"github.com/qyinm/bustui/mcpsrv"
)

var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// stdout carries the protocol; keep diagnostics on stderr and the log file.
	log.SetOutput(os.Stderr)

	env := config.Load()
	logger, closer, err := env.Log.OpenLog("bustui-mcp-stdio: ")
	if err != nil {
		log.Fatalf("open log: %v", err)
	}
	defer closer.Close()

	source, err := env.Client.NewClient()
	if err != nil {
		log.Fatalf("create api client: %v", err)
	}

	cfg := mcpsrv.LoadConfig()
	server := mcpsrv.NewServer(source, version, &mcpsrv.ServerOptions{
		EnableSearch: cfg.EnableSearch,
		EnableAdmin:  cfg.EnableAdmin,
		MaxItems:     cfg.MaxItems,
		Logger:       logger,
	})

	mcpsrv.StartCacheJanitor(ctx, source, cfg.CacheClearInterval, logger)

	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		log.Fatalf("stdio mcp server failed: %v", err)
	}
}
