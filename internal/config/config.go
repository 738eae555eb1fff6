// Package config loads MoodTune settings from command-line flags with
// environment variable fallbacks. Flags take precedence over the environment.
//
//	ADDR                  -addr          listen address (127.0.0.1:8080)
//	DATABASE_TYPE         -db-type       sqlite or postgres (sqlite)
//	DATABASE_URL          -db            postgres URL or sqlite path (data/moodtune.db for sqlite)
//	SPOTIFY_ID            -spotify-id    Spotify client ID
//	SPOTIFY_SECRET        -spotify-secret
//	SPOTIFY_REDIRECT_URL  -spotify-redirect
//	LASTFM_API_KEY        -lastfm-key    enables Last.fm genre fallback
//	ANALYSIS_COOLDOWN     -cooldown      time between preference analyses (1h)
//	SEED                  -seed          seed the catalog on start (true)
//	LOG_LEVEL             -log-level     debug, info, warn or error (info)
//	LOG_FORMAT            -log-format    text or json (text)
package config

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"
)

// Defaults.
const (
	DefaultAddr             = "127.0.0.1:8080"
	DefaultDatabaseType     = "sqlite"
	DefaultSQLitePath       = "data/moodtune.db"
	DefaultAnalysisCooldown = time.Hour
)

// Errors returned by Load.
var (
	ErrMissingDatabaseURL  = errors.New("database URL required (use -db or DATABASE_URL)")
	ErrInvalidDatabaseType = errors.New("database type must be sqlite or postgres")
	ErrInvalidLogFormat    = errors.New("log format must be text or json")
)

// Config holds all runtime settings.
type Config struct {
	Addr         string
	DatabaseType string
	DatabaseURL  string

	SpotifyClientID     string
	SpotifyClientSecret string
	SpotifyRedirectURL  string
	LastFMAPIKey        string

	AnalysisCooldown time.Duration
	Seed             bool

	LogLevel  slog.Level
	LogFormat string

	// Args holds the positional arguments left after the flags.
	Args []string
}

// SpotifyEnabled reports whether Spotify credentials are configured.
func (c Config) SpotifyEnabled() bool {
	return c.SpotifyClientID != "" && c.SpotifyClientSecret != ""
}

// Load parses args for the named command, filling unset values from getenv.
func Load(name string, args []string, getenv func(string) string) (Config, error) {
	var cfg Config
	var cooldown, seed, logLevel string

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.StringVar(&cfg.Addr, "addr", "", "Listen address")
	fs.StringVar(&cfg.DatabaseType, "db-type", "", "Database type (sqlite or postgres)")
	fs.StringVar(&cfg.DatabaseURL, "db", "", "Database URL or SQLite path")
	fs.StringVar(&cfg.SpotifyClientID, "spotify-id", "", "Spotify client ID (prefer env)")
	fs.StringVar(&cfg.SpotifyClientSecret, "spotify-secret", "", "Spotify client secret (prefer env)")
	fs.StringVar(&cfg.SpotifyRedirectURL, "spotify-redirect", "", "Spotify OAuth redirect URL")
	fs.StringVar(&cfg.LastFMAPIKey, "lastfm-key", "", "Last.fm API key (prefer env)")
	fs.StringVar(&cooldown, "cooldown", "", "Minimum time between preference analyses")
	fs.StringVar(&seed, "seed", "", "Seed the song catalog when empty (true/false)")
	fs.StringVar(&logLevel, "log-level", "", "Log level")
	fs.StringVar(&cfg.LogFormat, "log-format", "", "Log format (text or json)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	cfg.Args = fs.Args()

	fallback(&cfg.Addr, getenv("ADDR"), DefaultAddr)
	fallback(&cfg.DatabaseType, getenv("DATABASE_TYPE"), DefaultDatabaseType)
	fallback(&cfg.DatabaseURL, getenv("DATABASE_URL"), "")
	fallback(&cfg.SpotifyClientID, getenv("SPOTIFY_ID"), "")
	fallback(&cfg.SpotifyClientSecret, getenv("SPOTIFY_SECRET"), "")
	fallback(&cfg.SpotifyRedirectURL, getenv("SPOTIFY_REDIRECT_URL"), "")
	fallback(&cfg.LastFMAPIKey, getenv("LASTFM_API_KEY"), "")
	fallback(&cooldown, getenv("ANALYSIS_COOLDOWN"), "")
	fallback(&seed, getenv("SEED"), "true")
	fallback(&logLevel, getenv("LOG_LEVEL"), "info")
	fallback(&cfg.LogFormat, getenv("LOG_FORMAT"), "text")

	cfg.DatabaseType = strings.ToLower(cfg.DatabaseType)
	switch cfg.DatabaseType {
	case "sqlite":
		if cfg.DatabaseURL == "" {
			cfg.DatabaseURL = DefaultSQLitePath
		}
	case "postgres":
		if cfg.DatabaseURL == "" {
			return Config{}, ErrMissingDatabaseURL
		}
	default:
		return Config{}, fmt.Errorf("%w: %q", ErrInvalidDatabaseType, cfg.DatabaseType)
	}

	cfg.AnalysisCooldown = DefaultAnalysisCooldown
	if cooldown != "" {
		d, err := time.ParseDuration(cooldown)
		if err != nil || d < 0 {
			return Config{}, fmt.Errorf("invalid analysis cooldown %q", cooldown)
		}
		cfg.AnalysisCooldown = d
	}

	b, err := strconv.ParseBool(seed)
	if err != nil {
		return Config{}, fmt.Errorf("invalid seed value %q", seed)
	}
	cfg.Seed = b

	if err := cfg.LogLevel.UnmarshalText([]byte(logLevel)); err != nil {
		return Config{}, fmt.Errorf("invalid log level %q", logLevel)
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return Config{}, fmt.Errorf("%w: %q", ErrInvalidLogFormat, cfg.LogFormat)
	}

	return cfg, nil
}

// fallback fills an empty flag value from env, then def.
func fallback(dst *string, env, def string) {
	if *dst != "" {
		return
	}
	if env != "" {
		*dst = env
		return
	}
	*dst = def
}
