package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/elvisburrniku/OrderTable-sub008/pkg/editor"
	"github.com/elvisburrniku/OrderTable-sub008/pkg/errors"
)

// editCommand creates the 'edit' command: the interactive floor-plan editor.
func (c *CLI) editCommand() *cobra.Command {
	var gridSize float64

	cmd := &cobra.Command{
		Use:   "edit [room]",
		Short: "Open the interactive floor-plan editor",
		Long: `Edit a room's floor plan on an interactive terminal canvas.

Items are placed from a template palette, moved by dragging, and snapped to
the grid. Every edit is local until saved with ctrl+s. With a server
configured the layout round-trips through the HTTP API; otherwise it is
stored directly in the configured backend.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			room, err := c.roomArg(args)
			if err != nil {
				return err
			}
			if err := errors.ValidateRoom(room); err != nil {
				return err
			}
			if gridSize == 0 {
				gridSize = c.config.Grid
			}
			return c.runEdit(cmd, room, gridSize)
		},
	}

	cmd.Flags().Float64Var(&gridSize, "grid", 0, "snapping grid size in canvas units")
	return cmd
}

func (c *CLI) runEdit(cmd *cobra.Command, room string, gridSize float64) error {
	ctx := cmd.Context()

	persist, closer, err := c.newPersistence(ctx)
	if err != nil {
		return err
	}
	defer closer()

	session := editor.NewSession(room,
		editor.WithGridSize(gridSize),
		editor.WithLogger(c.Logger),
		editor.WithPersistence(persist),
	)

	// The initial load blocks the first render. A missing room starts empty;
	// a failed fetch starts empty too but the user is told before the screen
	// is taken over.
	if err := session.Load(ctx); err != nil {
		printWarning("could not load layout for %q: %s (starting empty)", room, errors.UserMessage(err))
	}

	program := tea.NewProgram(
		newEditorModel(session, persist),
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("editor terminated: %w", err)
	}

	if session.Dirty() {
		printWarning("unsaved changes in %q were discarded", room)
	}
	return nil
}
