package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/elvisburrniku/OrderTable-sub008/pkg/errors"
	"github.com/elvisburrniku/OrderTable-sub008/pkg/layout"
	"github.com/elvisburrniku/OrderTable-sub008/pkg/render"
)

// renderCommand creates the 'render' command: export a layout to SVG or PNG.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		fromFile string
		output   string
		formats  []string
		scale    float64
		showGrid bool
	)

	cmd := &cobra.Command{
		Use:   "render [room]",
		Short: "Export a layout to SVG or PNG",
		Long: `Render a room's stored layout to an image file.

The layout comes from the configured persistence (server or storage backend),
or from a layout JSON file with --file. SVG is the primary export format;
PNG is rasterized at --scale pixels per canvas unit.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var (
				l   *layout.RoomLayout
				err error
			)
			if fromFile != "" {
				l, err = layout.ReadFile(fromFile)
				if err != nil {
					return errors.Wrap(errors.ErrCodeInvalidLayout, err, "read layout file %s", fromFile)
				}
			} else {
				room, roomErr := c.roomArg(args)
				if roomErr != nil {
					return roomErr
				}

				persist, closer, perr := c.newPersistence(ctx)
				if perr != nil {
					return perr
				}
				defer closer()

				spin := newSpinnerWithContext(ctx, fmt.Sprintf("Loading layout for %s...", room))
				spin.Start()
				l, err = persist.Load(ctx, room)
				spin.Stop()
				if err != nil {
					return err
				}
			}

			items := layout.Deserialize(l)
			opts := []render.Option{render.WithZoom(scale)}
			if showGrid {
				opts = append(opts, render.WithGrid(c.config.Grid))
			}

			base := output
			if base == "" {
				base = l.Room
			}
			base = strings.TrimSuffix(base, filepath.Ext(base))

			printInfo("rendering %s (%d items)", StyleValue.Render(l.Room), len(items))
			for _, format := range formats {
				var (
					data []byte
					err  error
				)
				switch format {
				case "svg":
					data = render.RenderSVG(items, opts...)
				case "png":
					data, err = render.RenderPNG(items, opts...)
				default:
					return errors.New(errors.ErrCodeInvalidFormat, "unknown format %q (svg, png)", format)
				}
				if err != nil {
					return errors.Wrap(errors.ErrCodeInternal, err, "render %s", format)
				}

				path := base + "." + format
				if err := os.WriteFile(path, data, 0o644); err != nil {
					return fmt.Errorf("write %s: %w", path, err)
				}
				printFile(path)
			}

			printSuccess("rendered %d file(s)", len(formats))
			return nil
		},
	}

	cmd.Flags().StringVar(&fromFile, "file", "", "render a layout JSON file instead of a stored room")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output base name (default the room name)")
	cmd.Flags().StringSliceVar(&formats, "format", []string{"svg"}, "output formats: svg, png")
	cmd.Flags().Float64Var(&scale, "scale", 1.0, "zoom factor (pixels per canvas unit for png)")
	cmd.Flags().BoolVar(&showGrid, "grid", false, "draw the snapping grid")
	return cmd
}
