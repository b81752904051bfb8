package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	// Point the default location at an empty directory so a developer's real
	// config cannot leak into the test.
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := loadConfig("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Room != "main" {
		t.Errorf("Room = %q, want main", cfg.Room)
	}
	if cfg.Grid != 20 {
		t.Errorf("Grid = %v, want 20", cfg.Grid)
	}
	if cfg.Listen != ":8080" {
		t.Errorf("Listen = %q, want :8080", cfg.Listen)
	}
	if cfg.Storage.Backend != "file" {
		t.Errorf("Storage.Backend = %q, want file", cfg.Storage.Backend)
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := writeConfig(t, `
server = "http://localhost:9090"
room = "patio"
grid = 40

[storage]
backend = "redis"

[storage.redis]
addr = "redis:6379"
db = 2
`)

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server != "http://localhost:9090" {
		t.Errorf("Server = %q", cfg.Server)
	}
	if cfg.Room != "patio" || cfg.Grid != 40 {
		t.Errorf("Room/Grid = %q/%v, want patio/40", cfg.Room, cfg.Grid)
	}
	if cfg.Storage.Backend != "redis" || cfg.Storage.Redis.Addr != "redis:6379" || cfg.Storage.Redis.DB != 2 {
		t.Errorf("Storage = %+v, want redis at redis:6379 db 2", cfg.Storage)
	}
	// Unset fields keep their defaults.
	if cfg.Listen != ":8080" {
		t.Errorf("Listen = %q, want default :8080", cfg.Listen)
	}
}

func TestLoadConfigInvalidGridFallsBack(t *testing.T) {
	path := writeConfig(t, `grid = -5`)

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Grid != 20 {
		t.Errorf("Grid = %v, want fallback 20", cfg.Grid)
	}
}

func TestLoadConfigExplicitMissingFileFails(t *testing.T) {
	if _, err := loadConfig(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Error("explicit missing config path did not error")
	}
}

func TestLoadConfigMalformedFails(t *testing.T) {
	path := writeConfig(t, `room = [broken`)
	if _, err := loadConfig(path); err == nil {
		t.Error("malformed config did not error")
	}
}

func TestRoomArg(t *testing.T) {
	c := &CLI{config: Config{Room: "main"}}

	if room, err := c.roomArg([]string{"patio"}); err != nil || room != "patio" {
		t.Errorf("roomArg(patio) = %q, %v", room, err)
	}
	if room, err := c.roomArg(nil); err != nil || room != "main" {
		t.Errorf("roomArg() = %q, %v; want configured default", room, err)
	}

	c.config.Room = ""
	if _, err := c.roomArg(nil); err == nil {
		t.Error("roomArg with no room and no default did not error")
	}
}
