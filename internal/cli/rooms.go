package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/elvisburrniku/OrderTable-sub008/pkg/errors"
	"github.com/elvisburrniku/OrderTable-sub008/pkg/floorplan"
	"github.com/elvisburrniku/OrderTable-sub008/pkg/layout"
)

// roomsCommand creates the 'rooms' command group for inspecting stored
// layouts. These commands talk to the storage backend directly.
func (c *CLI) roomsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rooms",
		Short: "List, show, and delete stored layouts",
	}
	cmd.AddCommand(c.roomsListCommand())
	cmd.AddCommand(c.roomsShowCommand())
	cmd.AddCommand(c.roomsDeleteCommand())
	return cmd
}

func (c *CLI) roomsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List rooms with a stored layout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := c.newStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			rooms, err := store.List(ctx)
			if err != nil {
				return err
			}
			if len(rooms) == 0 {
				printInfo("no stored layouts")
				return nil
			}
			for _, room := range rooms {
				fmt.Println(StyleValue.Render(room))
			}
			return nil
		},
	}
}

func (c *CLI) roomsShowCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show [room]",
		Short: "Show a summary of a room's layout",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			room, err := c.roomArg(args)
			if err != nil {
				return err
			}

			store, err := c.newStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			l, err := store.Get(ctx, room)
			if err != nil {
				return err
			}

			if asJSON {
				return layout.Write(l, os.Stdout)
			}

			items := layout.Deserialize(l)
			tables, seats := 0, 0
			byType := map[floorplan.ItemType]int{}
			for _, it := range items {
				byType[it.Type]++
				if it.IsTable() {
					tables++
					seats += it.Capacity
				}
			}

			fmt.Println(StyleTitle.Render(room))
			printKeyValue("items", fmt.Sprintf("%d", len(items)))
			printKeyValue("tables", fmt.Sprintf("%d", tables))
			printKeyValue("seats", fmt.Sprintf("%d", seats))
			for _, t := range []floorplan.ItemType{
				floorplan.ItemChair, floorplan.ItemWall, floorplan.ItemDoor,
				floorplan.ItemWindow, floorplan.ItemDecoration,
			} {
				if n := byType[t]; n > 0 {
					printKeyValue(string(t)+"s", fmt.Sprintf("%d", n))
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the raw layout document")
	return cmd
}

func (c *CLI) roomsDeleteCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <room>",
		Short: "Delete a room's stored layout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			room := args[0]
			if err := errors.ValidateRoom(room); err != nil {
				return err
			}
			if !force {
				return fmt.Errorf("refusing to delete layout for %q without --force", room)
			}

			store, err := c.newStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.Delete(ctx, room); err != nil {
				return err
			}
			printSuccess("deleted layout for %s", StyleValue.Render(room))
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "confirm the deletion")
	return cmd
}
