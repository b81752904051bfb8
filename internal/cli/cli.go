// Package cli implements the floorplan command-line interface.
//
// This package provides commands for editing restaurant floor plans in an
// interactive terminal canvas, rendering stored layouts to SVG or PNG,
// serving the layout HTTP API, and inspecting stored rooms. The CLI is built
// using cobra and supports verbose logging via the charmbracelet/log library.
//
// # Commands
//
//   - edit: Open the interactive floor-plan editor for a room
//   - render: Export a layout to SVG or PNG
//   - serve: Run the layout HTTP service
//   - rooms: List, show, and delete stored layouts
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/elvisburrniku/OrderTable-sub008/pkg/api"
	"github.com/elvisburrniku/OrderTable-sub008/pkg/buildinfo"
	"github.com/elvisburrniku/OrderTable-sub008/pkg/editor"
	"github.com/elvisburrniku/OrderTable-sub008/pkg/layoutstore"
)

// appName is the application name used for directories and display.
const appName = "floorplan"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	config     Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Floorplan is the OrderTable floor-plan layout editor",
		Long:         `Floorplan edits restaurant floor plans on an interactive 2D canvas: place, move, resize, rotate, and annotate tables, chairs, walls, doors, windows, and decorations, with grid snapping and undo/redo. Layouts are persisted per room and shared read-only with the rest of OrderTable (bookings, occupancy heat maps).`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(c.configPath)
			if err != nil {
				return err
			}
			c.config = cfg
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default ~/.config/floorplan/config.toml)")

	root.AddCommand(c.editCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.roomsCommand())

	return root
}

// =============================================================================
// Backend factories
// =============================================================================

// newStore opens the layout storage backend selected by the config.
// The caller owns the returned store and must Close it.
func (c *CLI) newStore(ctx context.Context) (layoutstore.Store, error) {
	st := c.config.Storage
	switch st.Backend {
	case "", "memory":
		return layoutstore.NewMemoryStore(), nil
	case "file":
		dir := st.Dir
		if dir == "" {
			var err error
			dir, err = defaultDataDir()
			if err != nil {
				return nil, fmt.Errorf("resolve layout directory: %w", err)
			}
		}
		return layoutstore.NewFileStore(dir)
	case "redis":
		return layoutstore.NewRedisStore(ctx, layoutstore.RedisConfig{
			Addr:     st.Redis.Addr,
			Password: st.Redis.Password,
			DB:       st.Redis.DB,
		})
	case "mongo":
		return layoutstore.NewMongoStore(ctx, layoutstore.MongoConfig{
			URI:        st.Mongo.URI,
			Database:   st.Mongo.Database,
			Collection: st.Mongo.Collection,
		})
	default:
		return nil, fmt.Errorf("unknown storage backend %q", st.Backend)
	}
}

// newPersistence builds the editor's save/load boundary: the HTTP client when
// a server is configured, otherwise the storage backend directly (offline
// mode). The returned closer releases the backend in offline mode.
func (c *CLI) newPersistence(ctx context.Context) (editor.Persistence, func() error, error) {
	if c.config.Server != "" {
		client, err := api.NewClient(c.config.Server)
		if err != nil {
			return nil, nil, err
		}
		return client, func() error { return nil }, nil
	}

	store, err := c.newStore(ctx)
	if err != nil {
		return nil, nil, err
	}
	return editor.StoreBackend{Store: store}, store.Close, nil
}

// roomArg resolves the room to operate on: the positional argument when
// given, the configured default otherwise.
func (c *CLI) roomArg(args []string) (string, error) {
	if len(args) > 0 && args[0] != "" {
		return args[0], nil
	}
	if c.config.Room != "" {
		return c.config.Room, nil
	}
	return "", stderrors.New("no room given and none configured")
}
