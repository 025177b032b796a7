package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

const sampleTOML = `
day_start = 6.5
debug_addr = "127.0.0.1:9109"

[database]
driver = "sqlite"
path = "fpdb.db3"
busy_timeout = "2s"

[graph]
width = 1200

[[sites]]
name = "PokerStars"
hero = "hero_ps"

[[sites]]
name = "Full Tilt Poker"
hero = "hero_ft"
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pokergraph.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleTOML))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DayStart != 6.5 {
		t.Fatalf("day_start = %v, want 6.5", cfg.DayStart)
	}
	if cfg.Database.Path != "fpdb.db3" || cfg.Database.BusyTimeout != 2*time.Second {
		t.Fatalf("database = %+v", cfg.Database)
	}
	if cfg.Graph.Width != 1200 || cfg.Graph.Height != 600 {
		t.Fatalf("graph = %+v, want width from file and default height", cfg.Graph)
	}
	if got := cfg.SiteNames(); !reflect.DeepEqual(got, []string{"PokerStars", "Full Tilt Poker"}) {
		t.Fatalf("sites = %v", got)
	}
	if !cfg.Database.ShouldMigrate() {
		t.Fatalf("sqlite should migrate by default")
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	t.Setenv("POKERGRAPH_DAY_START", "-3")
	t.Setenv("POKERGRAPH_DB_PATH", "/tmp/other.db")
	t.Setenv("POKERGRAPH_DB_MIGRATE", "false")
	t.Setenv("POKERGRAPH_HERO_FULLTILTPOKER", "env_hero")

	cfg, err := Load(writeConfig(t, sampleTOML))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DayStart != -3 {
		t.Fatalf("day_start = %v, want -3", cfg.DayStart)
	}
	if cfg.Database.Path != "/tmp/other.db" {
		t.Fatalf("db path = %q", cfg.Database.Path)
	}
	if cfg.Database.ShouldMigrate() {
		t.Fatalf("migrate override ignored")
	}
	if got := cfg.Heroes()["Full Tilt Poker"]; got != "env_hero" {
		t.Fatalf("hero = %q, want env_hero", got)
	}
	if got := cfg.Heroes()["PokerStars"]; got != "hero_ps" {
		t.Fatalf("untouched hero = %q, want hero_ps", got)
	}
}

func TestLoadMissingDefaultFileUsesDefaults(t *testing.T) {
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Database.Driver != DriverSQLite || cfg.Database.MaxOpenConns != 4 {
		t.Fatalf("defaults = %+v", cfg.Database)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		path    string
		wantErr string
	}{
		{name: "explicit missing file", path: filepath.Join(os.TempDir(), "does-not-exist-pokergraph.toml"), wantErr: "read config"},
		{name: "bad driver", body: "[database]\ndriver = \"mysql\"\n", wantErr: "unsupported database driver"},
		{name: "postgres without dsn", body: "[database]\ndriver = \"postgres\"\n", wantErr: "dsn is required"},
		{name: "bad duration", body: "[database]\nbusy_timeout = \"soon\"\n", wantErr: "busy_timeout"},
		{name: "day start out of range", body: "day_start = 30.0\n", wantErr: "out of range"},
		{name: "malformed toml", body: "day_start = = 1\n", wantErr: "read config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := tt.path
			if path == "" {
				path = writeConfig(t, tt.body)
			}
			_, err := Load(path)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("err = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestPostgresDoesNotMigrateByDefault(t *testing.T) {
	t.Parallel()

	d := Database{Driver: DriverPostgres}
	if d.ShouldMigrate() {
		t.Fatalf("postgres should not migrate unless asked")
	}
	yes := true
	d.Migrate = &yes
	if !d.ShouldMigrate() {
		t.Fatalf("explicit migrate ignored")
	}
}
