package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/claude/wodboard/internal/config"
	wmcp "github.com/claude/wodboard/internal/mcp"
	"github.com/claude/wodboard/internal/page"
	"github.com/claude/wodboard/internal/server"
	"github.com/claude/wodboard/internal/source"
	"github.com/claude/wodboard/internal/storage"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"golang.org/x/sync/errgroup"
	"tailscale.com/tsnet"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	migrateOnly := flag.Bool("migrate-only", false, "run migrations and exit")
	mcpStdio := flag.Bool("mcp-stdio", false, "serve MCP over stdin/stdout instead of HTTP")
	remote := flag.String("remote", "", "with -mcp-stdio: read schedules from this WODBoard server URL")
	flag.Parse()

	// stdout carries the MCP protocol in stdio mode
	logOut := os.Stdout
	if *mcpStdio {
		logOut = os.Stderr
	}
	log := slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: slog.LevelInfo}))
	log.Info("WODBoard starting", "version", Version)

	if *mcpStdio && *remote != "" {
		log.Info("serving MCP over stdio", "remote", *remote)
		mcpSrv := wmcp.New(wmcp.NewHTTPClient(*remote), nil, Version, log)
		if err := mcpserver.ServeStdio(mcpSrv); err != nil {
			log.Error("mcp stdio error", "error", err)
			os.Exit(1)
		}
		return
	}

	// Load config
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	// Week archive (optional)
	var archive source.Archive
	if cfg.Database.Enabled() {
		dsn := cfg.Database.DSN()
		version, err := storage.RunMigrations(dsn, "migrations")
		if err != nil {
			log.Error("migration failed", "error", err)
			os.Exit(1)
		}
		log.Info("migrations applied", "version", version)

		if *migrateOnly {
			log.Info("migrate-only: exiting")
			return
		}

		db, err := storage.New(ctx, dsn)
		if err != nil {
			log.Error("failed to connect database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		archive = db
		log.Info("database connected")
	} else if *migrateOnly {
		log.Error("migrate-only: no database configured")
		os.Exit(1)
	}

	src := newSource(cfg, archive)
	log.Info("schedule source", "kind", cfg.Source.Kind)

	mcpSrv := wmcp.New(wmcp.Local{Source: src, Archive: archive}, cfg.Page.FilterLabels, Version, log)
	if *mcpStdio {
		if err := mcpserver.ServeStdio(mcpSrv); err != nil {
			log.Error("mcp stdio error", "error", err)
			os.Exit(1)
		}
		return
	}

	// Create server
	srv := server.New(src, archive, server.Options{
		Page: page.Options{
			Lang:       cfg.Page.Lang,
			Stylesheet: cfg.Page.Stylesheet,
		},
		FilterLabels: cfg.Page.FilterLabels,
		HideFilters:  cfg.Page.HideFilters,
		APIKey:       cfg.Auth.APIKey,
	}, log)
	if cfg.Page.StaticDir != "" {
		srv.SetStatic(os.DirFS(cfg.Page.StaticDir))
	}
	srv.SetMCP(mcpserver.NewStreamableHTTPServer(mcpSrv))

	// Listen on the tailnet or a plain TCP address
	var listener net.Listener

	if cfg.Tailscale.Enabled {
		tsServer := &tsnet.Server{
			Hostname: cfg.Tailscale.Hostname,
			Dir:      cfg.Tailscale.StateDir,
		}
		if err := tsServer.Start(); err != nil {
			log.Error("tsnet start failed", "error", err)
			os.Exit(1)
		}
		defer tsServer.Close()

		listener, err = tsServer.Listen("tcp", ":80")
		if err != nil {
			log.Error("tsnet listen failed", "error", err)
			os.Exit(1)
		}
		log.Info("tsnet server starting", "hostname", cfg.Tailscale.Hostname)
	} else {
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		listener, err = net.Listen("tcp", addr)
		if err != nil {
			log.Error("listen failed", "addr", addr, "error", err)
			os.Exit(1)
		}
		log.Info("server starting", "addr", addr)
	}

	httpSrv := &http.Server{Handler: srv, ReadHeaderTimeout: 10 * time.Second}

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := httpSrv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown error: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error("server terminated with error", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}

// newSource picks the current week's source from config. validate has
// already ensured the fields for the chosen kind are set.
func newSource(cfg *config.Config, archive source.Archive) source.Source {
	switch cfg.Source.Kind {
	case config.SourceHTTP:
		return source.NewHTTP(cfg.Source.URL)
	case config.SourceArchive:
		return source.Week{Archive: archive, Slug: cfg.Source.Week}
	default:
		return source.File{Path: cfg.Source.Path}
	}
}
