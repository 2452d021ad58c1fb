package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/qyinm/bustui/config"
	"github.com/qyinm/bustui/mcpsrv"
)

var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	env := config.Load()
	logger, closer, err := env.Log.OpenLog("bustui-mcp: ")
	if err != nil {
		log.Fatalf("open log: %v", err)
	}
	defer closer.Close()

	source, err := env.Client.NewClient()
	if err != nil {
		log.Fatalf("create api client: %v", err)
	}

	cfg := mcpsrv.LoadConfig()
	opts := cfg.ServerOptions()
	opts.Logger = logger
	if cfg.EnableAdmin && cfg.APIKey == "" {
		log.Printf("BUSTUI_MCP_ENABLE_ADMIN ignored: cache_clear requires BUSTUI_MCP_API_KEY")
	}
	server := mcpsrv.NewServer(source, version, opts)

	mcpsrv.StartCacheJanitor(ctx, source, cfg.CacheClearInterval, logger)

	httpServer := &http.Server{
		Addr:              ":" + strings.TrimSpace(cfg.Port),
		Handler:           mcpsrv.NewMux(server, cfg),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      0,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown error: %v", err)
		}
	}()

	log.Printf("bustui-mcp %s listening on %s (api %s)", version, httpServer.Addr, source.BaseURL())
	err = httpServer.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("server failed: %v", err)
	}
}
