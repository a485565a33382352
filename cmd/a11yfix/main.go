// Command a11yfix rewrites HTML files in place to fill in missing
// accessibility attributes.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/dgallion1/a11yfix/internal/api"
	"github.com/dgallion1/a11yfix/internal/batch"
	"github.com/dgallion1/a11yfix/internal/config"
	"github.com/dgallion1/a11yfix/internal/rewrite"
)

// CLI defines the command-line interface using Kong. Flags override the
// environment read by config.Load.
var CLI struct {
	LogFormat string `name:"log-format" help:"Log output format: json or text (default from LOG_FORMAT)"`
	Verbose   bool   `name:"verbose" short:"v" help:"Log unchanged files too"`

	Fix   FixCmd   `cmd:"" default:"withargs" help:"Rewrite HTML files under a directory in place"`
	Serve ServeCmd `cmd:"" help:"Serve the rewriter over HTTP"`
}

// FixCmd runs the batch rewrite.
type FixCmd struct {
	Root    string   `arg:"" optional:"" default:"." type:"existingdir" help:"Directory to scan"`
	DryRun  bool     `name:"dry-run" short:"n" help:"Report files that would change without writing them"`
	Ext     []string `name:"ext" help:"File extensions to rewrite (default .html)"`
	Exclude []string `name:"exclude" help:"Directory names to skip (default node_modules,.git)"`
}

func (c *FixCmd) Run(cfg config.Config, log *slog.Logger) error {
	opts := batch.Options{
		Extensions: cfg.Extensions,
		Exclude:    cfg.Exclude,
		DryRun:     cfg.DryRun || c.DryRun,
	}
	if len(c.Ext) > 0 {
		opts.Extensions = c.Ext
	}
	if len(c.Exclude) > 0 {
		opts.Exclude = c.Exclude
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sum, err := batch.NewDriver(rewrite.New(nil), opts, log).Run(ctx, c.Root)
	if err != nil {
		return fmt.Errorf("fix %s: %w", c.Root, err)
	}
	fmt.Printf("Total files changed: %d\n", sum.Changed)
	return nil
}

// ServeCmd exposes POST /api/rewrite.
type ServeCmd struct {
	Port string `name:"port" short:"p" help:"Listen port (default from PORT)"`
}

func (c *ServeCmd) Run(cfg config.Config, log *slog.Logger) error {
	if c.Port != "" {
		cfg.Port = c.Port
	}

	stats := rewrite.NewStats()
	opts := batch.Options{Extensions: cfg.Extensions, Exclude: cfg.Exclude}
	srv := api.NewServer(rewrite.New(stats), stats, opts, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	if cfg.APIKey == "" {
		log.Warn("A11YFIX_API_KEY not set, rewrite endpoints are unauthenticated")
	}
	log.Info("starting a11yfix", "port", cfg.Port)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

func newLogger(format string, verbose bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if verbose {
		opts.Level = slog.LevelDebug
	}
	if format == "text" {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}

func main() {
	kctx := kong.Parse(&CLI,
		kong.Name("a11yfix"),
		kong.Description("Fill in missing accessibility attributes in HTML files."),
		kong.UsageOnError(),
	)

	cfg := config.Load()
	if CLI.LogFormat != "" {
		cfg.LogFormat = CLI.LogFormat
	}
	log := newLogger(cfg.LogFormat, CLI.Verbose)
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	if err := kctx.Run(cfg, log); err != nil {
		log.Error("command failed", "error", err)
		os.Exit(1)
	}
}
