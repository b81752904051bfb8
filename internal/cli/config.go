package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/elvisburrniku/OrderTable-sub008/pkg/floorplan"
)

// Config is the TOML configuration shared by all commands. Every field has a
// workable default so the editor runs with no config file at all.
type Config struct {
	// Server is the layout service base URL. Empty means offline mode: the
	// editor loads and saves directly against the configured storage backend.
	Server string `toml:"server"`

	// Room is the default room to edit when none is given on the command line.
	Room string `toml:"room"`

	// Grid is the snapping grid size in canvas units.
	Grid float64 `toml:"grid"`

	// Listen is the address the layout service binds to.
	Listen string `toml:"listen"`

	Storage StorageConfig `toml:"storage"`
}

// StorageConfig selects and configures the layout storage backend.
type StorageConfig struct {
	// Backend is one of "memory", "file", "redis", "mongo".
	Backend string `toml:"backend"`

	// Dir is the layout directory for the file backend.
	Dir string `toml:"dir"`

	Redis RedisConfig `toml:"redis"`
	Mongo MongoConfig `toml:"mongo"`
}

// RedisConfig configures the redis backend.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// MongoConfig configures the mongo backend.
type MongoConfig struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// defaultConfig returns the configuration used when no file is present.
func defaultConfig() Config {
	return Config{
		Room:   "main",
		Grid:   floorplan.DefaultGridSize,
		Listen: ":8080",
		Storage: StorageConfig{
			Backend: "file",
			Redis:   RedisConfig{Addr: "localhost:6379"},
			Mongo:   MongoConfig{URI: "mongodb://localhost:27017"},
		},
	}
}

// loadConfig reads the TOML config at path, or the default location when path
// is empty. A missing file yields the defaults; a malformed file is an error.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()

	explicit := path != ""
	if path == "" {
		var err error
		path, err = defaultConfigPath()
		if err != nil {
			return cfg, nil
		}
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return cfg, fmt.Errorf("load config %s: %w", path, err)
	}

	if cfg.Grid <= 0 {
		cfg.Grid = floorplan.DefaultGridSize
	}
	return cfg, nil
}

// defaultConfigPath returns the XDG config location (~/.config/floorplan/config.toml).
func defaultConfigPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// defaultDataDir returns the XDG data location for the file backend
// (~/.local/share/floorplan/layouts).
func defaultDataDir() (string, error) {
	if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
		return filepath.Join(dataHome, appName, "layouts"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", appName, "layouts"), nil
}
