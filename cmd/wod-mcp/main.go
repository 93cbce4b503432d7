package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/meltforce/wodlog/internal/config"
	wodmcp "github.com/meltforce/wodlog/internal/mcp"
	"github.com/meltforce/wodlog/internal/storage"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file (local mode)")
	remote := flag.String("remote", "", "wodlog server URL; when set, no database is opened")
	apiKey := flag.String("api-key", os.Getenv("WOD_AUTH_API_KEY"), "API key for log_workout in remote mode")
	flag.Parse()

	// stdout carries the MCP protocol, so logs go to stderr.
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	var ds wodmcp.DataSource
	if *remote != "" {
		ds = wodmcp.NewHTTPClient(*remote, *apiKey)
		log.Info("wod-mcp starting", "version", Version, "mode", "remote", "server", *remote)
	} else {
		cfg, err := config.Load(*configPath)
		if err != nil {
			log.Error("failed to load config", "error", err)
			os.Exit(1)
		}
		db, err := storage.New(context.Background(), cfg.Database.DSN())
		if err != nil {
			log.Error("failed to connect database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		ds = db
		log.Info("wod-mcp starting", "version", Version, "mode", "local")
	}

	s := wodmcp.New(ds, Version, log)
	if err := server.ServeStdio(s); err != nil {
		log.Error("mcp server stopped", "error", err)
		os.Exit(1)
	}
}
