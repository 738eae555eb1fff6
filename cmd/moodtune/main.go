// Command moodtune runs the MoodTune web application.
//
// Usage:
//
//	moodtune [serve] [flags]        start the web server (default)
//	moodtune seed [flags]           seed the song catalog and exit
//	moodtune phases [flags] [user]  print mood phases for a user, or everyone
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/justestif/go-moodtune/internal/auth"
	"github.com/justestif/go-moodtune/internal/catalog"
	"github.com/justestif/go-moodtune/internal/clustering"
	"github.com/justestif/go-moodtune/internal/config"
	"github.com/justestif/go-moodtune/internal/db"
	"github.com/justestif/go-moodtune/internal/genres"
	"github.com/justestif/go-moodtune/internal/lastfm"
	"github.com/justestif/go-moodtune/internal/preferences"
	"github.com/justestif/go-moodtune/internal/web"
	webfs "github.com/justestif/go-moodtune/web"
)

// phaseSampleSize caps the entries clustered by the phases command.
const phaseSampleSize = 500

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}

	command := "serve"
	if len(args) > 0 && (args[0] == "serve" || args[0] == "seed" || args[0] == "phases") {
		command, args = args[0], args[1:]
	}

	cfg, err := config.Load("moodtune "+command, args, os.Getenv)
	if err != nil {
		return err
	}
	logger := newLogger(cfg)
	slog.SetDefault(logger)

	ctx := context.Background()
	store, err := db.Open(ctx, cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer store.Close()
	logger.Debug("database ready", "type", cfg.DatabaseType)

	switch command {
	case "seed":
		_, err := catalog.Seed(ctx, store, logger)
		return err
	case "phases":
		return printPhases(ctx, store, cfg.Args)
	default:
		return serve(ctx, cfg, store, logger)
	}
}

func serve(ctx context.Context, cfg config.Config, store db.Store, logger *slog.Logger) error {
	if cfg.Seed {
		if _, err := catalog.Seed(ctx, store, logger); err != nil {
			return err
		}
	}

	if n, err := store.Sessions().DeleteExpired(ctx); err != nil {
		logger.Warn("pruning sessions", "error", err)
	} else if n > 0 {
		logger.Info("pruned expired sessions", "count", n)
	}

	var authenticator *auth.Authenticator
	if cfg.SpotifyEnabled() {
		a, err := auth.New(auth.Config{
			ClientID:     cfg.SpotifyClientID,
			ClientSecret: cfg.SpotifyClientSecret,
			RedirectURL:  cfg.SpotifyRedirectURL,
		})
		if err != nil {
			return fmt.Errorf("configuring Spotify: %w", err)
		}
		authenticator = a
	} else {
		logger.Info("Spotify not configured; personalised recommendations disabled")
	}

	prefOpts := []preferences.Option{preferences.WithCooldown(cfg.AnalysisCooldown)}
	if cfg.LastFMAPIKey != "" {
		client, err := lastfm.NewClient(cfg.LastFMAPIKey)
		if err != nil {
			return fmt.Errorf("configuring Last.fm: %w", err)
		}
		prefOpts = append(prefOpts, preferences.WithGenreResolver(genres.NewService(client)))
	}

	templates, static, err := webfs.Sub()
	if err != nil {
		return err
	}

	server, err := web.NewServer(web.ServerConfig{
		Addr:        cfg.Addr,
		Store:       store,
		Auth:        authenticator,
		Preferences: preferences.New(store.Listeners(), store.Preferences(), prefOpts...),
		Logger:      logger,
		TemplatesFS: templates,
		StaticFS:    static,
	})
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	return server.Run()
}

func printPhases(ctx context.Context, store db.Store, args []string) error {
	filter := db.EntryFilter{Limit: phaseSampleSize}
	if len(args) > 0 {
		filter.UserID = args[0]
	}

	entries, err := store.MoodEntries().List(ctx, filter)
	if err != nil {
		return fmt.Errorf("loading entries: %w", err)
	}

	phases, outliers, err := clustering.DetectPhases(web.ClusterEntries(entries), clustering.DefaultConfig())
	if err != nil {
		return fmt.Errorf("detecting phases: %w", err)
	}

	fmt.Print(clustering.FormatPhaseSummary(phases, outliers))
	return nil
}

func newLogger(cfg config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
