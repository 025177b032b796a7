// Package config loads pokergraph settings. Values are layered: built-in
// defaults, then a TOML file, then a .env file and POKERGRAPH_* variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	envPrefix         = "POKERGRAPH_"
	defaultConfigFile = "pokergraph.toml"
)

// Site is one supported poker site and the hero screen name used on it.
type Site struct {
	Name string `toml:"name"`
	Hero string `toml:"hero"`
}

type Database struct {
	Driver       string `toml:"driver"`
	Path         string `toml:"path"`
	DSN          string `toml:"dsn"`
	MaxOpenConns int    `toml:"max_open_conns"`

	BusyTimeout       time.Duration `toml:"-"`
	BusyTimeoutString string        `toml:"busy_timeout"`

	// Migrate is nil when unset; see ShouldMigrate.
	Migrate *bool `toml:"migrate"`
}

// ShouldMigrate reports whether the schema migrations should run on open.
// The SQLite database is owned by this program and migrates by default;
// a Postgres database belongs to the importer and is only read.
func (d Database) ShouldMigrate() bool {
	if d.Migrate != nil {
		return *d.Migrate
	}
	return d.Driver == DriverSQLite
}

type Graph struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

type Config struct {
	// DayStart shifts the start of each calendar day, in hours.
	DayStart  float64  `toml:"day_start"`
	Database  Database `toml:"database"`
	Sites     []Site   `toml:"sites"`
	DebugAddr string   `toml:"debug_addr"`
	Graph     Graph    `toml:"graph"`
	Debug     bool     `toml:"debug"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Database: Database{
			Driver:       DriverSQLite,
			Path:         filepath.Join(".", "pokergraph.db"),
			MaxOpenConns: 4,
			BusyTimeout:  5 * time.Second,
		},
		Graph: Graph{Width: 1000, Height: 600},
	}
}

// Merge overlays the non-zero fields of override onto c.
func (c Config) Merge(override Config) Config {
	result := c
	if override.DayStart != 0 {
		result.DayStart = override.DayStart
	}
	if d := strings.TrimSpace(override.Database.Driver); d != "" {
		result.Database.Driver = strings.ToLower(d)
	}
	if p := strings.TrimSpace(override.Database.Path); p != "" {
		result.Database.Path = p
	}
	if dsn := strings.TrimSpace(override.Database.DSN); dsn != "" {
		result.Database.DSN = dsn
	}
	if override.Database.MaxOpenConns > 0 {
		result.Database.MaxOpenConns = override.Database.MaxOpenConns
	}
	if override.Database.BusyTimeout > 0 {
		result.Database.BusyTimeout = override.Database.BusyTimeout
	}
	if s := strings.TrimSpace(override.Database.BusyTimeoutString); s != "" {
		result.Database.BusyTimeoutString = s
	}
	if override.Database.Migrate != nil {
		v := *override.Database.Migrate
		result.Database.Migrate = &v
	}
	if len(override.Sites) > 0 {
		result.Sites = append([]Site(nil), override.Sites...)
	}
	if a := strings.TrimSpace(override.DebugAddr); a != "" {
		result.DebugAddr = a
	}
	if override.Graph.Width > 0 {
		result.Graph.Width = override.Graph.Width
	}
	if override.Graph.Height > 0 {
		result.Graph.Height = override.Graph.Height
	}
	if override.Debug {
		result.Debug = true
	}
	return result
}

// Load builds the configuration. path may be empty, in which case
// $POKERGRAPH_CONFIG or ./pokergraph.toml is tried; a missing default file
// is not an error.
func Load(path string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load .env file", "error", err)
	}

	cfg := Default()

	explicit := strings.TrimSpace(path) != ""
	if !explicit {
		path = strings.TrimSpace(os.Getenv(envPrefix + "CONFIG"))
		explicit = path != ""
	}
	if !explicit {
		path = defaultConfigFile
	}

	fileCfg, err := loadFile(path)
	switch {
	case err == nil:
		cfg = cfg.Merge(fileCfg)
	case errors.Is(err, os.ErrNotExist) && !explicit:
		slog.Debug("no config file, using defaults", "path", path)
	default:
		return Config{}, err
	}

	envCfg, err := loadEnv()
	if err != nil {
		return Config{}, err
	}
	cfg = cfg.Merge(envCfg)
	cfg.applyHeroEnv()
	if err := cfg.applyDefaults(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadFile(path string) (Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(filepath.Clean(path), &cfg); err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	return cfg, nil
}

func loadEnv() (Config, error) {
	var cfg Config
	if v := os.Getenv(envPrefix + "DAY_START"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return Config{}, fmt.Errorf("parse %sDAY_START: %w", envPrefix, err)
		}
		cfg.DayStart = f
	}
	cfg.Database.Driver = os.Getenv(envPrefix + "DB_DRIVER")
	cfg.Database.Path = os.Getenv(envPrefix + "DB_PATH")
	cfg.Database.DSN = os.Getenv(envPrefix + "DB_DSN")
	cfg.Database.BusyTimeoutString = os.Getenv(envPrefix + "DB_BUSY_TIMEOUT")
	if v := os.Getenv(envPrefix + "DB_MAX_OPEN_CONNS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("parse %sDB_MAX_OPEN_CONNS: %w", envPrefix, err)
		}
		cfg.Database.MaxOpenConns = n
	}
	if v := os.Getenv(envPrefix + "DB_MIGRATE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("parse %sDB_MIGRATE: %w", envPrefix, err)
		}
		cfg.Database.Migrate = &b
	}
	cfg.DebugAddr = os.Getenv(envPrefix + "DEBUG_ADDR")
	if v := os.Getenv(envPrefix + "DEBUG"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("parse %sDEBUG: %w", envPrefix, err)
		}
		cfg.Debug = b
	}
	return cfg, nil
}

// applyHeroEnv handles POKERGRAPH_HERO_<SITE>=name. The site part is
// matched case-insensitively with spaces removed, so POKERGRAPH_HERO_FULLTILTPOKER
// targets "Full Tilt Poker". Unknown sites are ignored.
func (c *Config) applyHeroEnv() {
	for _, kv := range os.Environ() {
		key, val, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(key, envPrefix+"HERO_") {
			continue
		}
		want := strings.TrimPrefix(key, envPrefix+"HERO_")
		for i := range c.Sites {
			if strings.EqualFold(strings.ReplaceAll(c.Sites[i].Name, " ", ""), want) {
				c.Sites[i].Hero = val
			}
		}
	}
}

func (c *Config) applyDefaults() error {
	switch c.Database.Driver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if c.Database.Driver == DriverPostgres && c.Database.DSN == "" {
		return errors.New("database.dsn is required for the postgres driver")
	}
	if c.Database.BusyTimeoutString != "" {
		d, err := time.ParseDuration(c.Database.BusyTimeoutString)
		if err != nil {
			return fmt.Errorf("parse database.busy_timeout: %w", err)
		}
		c.Database.BusyTimeout = d
	}
	if c.Database.BusyTimeout <= 0 {
		c.Database.BusyTimeout = 5 * time.Second
	}
	if c.Database.MaxOpenConns <= 0 {
		c.Database.MaxOpenConns = 4
	}
	if c.DayStart < -24 || c.DayStart > 24 {
		return fmt.Errorf("day_start %.2f out of range [-24, 24]", c.DayStart)
	}
	return nil
}

// Heroes maps site name to hero screen name.
func (c Config) Heroes() map[string]string {
	out := make(map[string]string, len(c.Sites))
	for _, s := range c.Sites {
		out[s.Name] = s.Hero
	}
	return out
}

// SiteNames lists the configured sites in file order.
func (c Config) SiteNames() []string {
	out := make([]string, 0, len(c.Sites))
	for _, s := range c.Sites {
		out = append(out, s.Name)
	}
	return out
}
