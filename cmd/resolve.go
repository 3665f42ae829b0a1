package cmd

import (
	"fmt"

	container "github.com/inference-gateway/gridpick/internal/container"
	domain "github.com/inference-gateway/gridpick/internal/domain"
	grid "github.com/inference-gateway/gridpick/internal/grid"
	zoom "github.com/inference-gateway/gridpick/internal/zoom"
	cobra "github.com/spf13/cobra"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <cell> <x,y>",
	Short: "Map a point in a cell's zoom view to an absolute screen point",
	Long: `Run the zoom math without showing anything: pick the one-based cell, take
x,y as a point inside its zoom viewport and print the absolute point a click
there would land on.

The viewport defaults to the size the picker would use; override it with
--viewport when the zoom window was resized.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		services := newServiceContainer()
		defer closeServices(services)

		target, err := targetDisplay(cmd.Context(), cmd, services)
		if err != nil {
			return err
		}
		settings := container.SettingsFrom(services.GetConfig())

		index, err := grid.ParseCellNumber(args[0], settings.Grid)
		if err != nil {
			return err
		}
		p, err := parsePoint(args[1])
		if err != nil {
			return err
		}

		cell, err := grid.CellByIndex(target, settings.Grid, index)
		if err != nil {
			return err
		}
		region, err := zoom.ComputeRegion(target, cell.Rect, settings.Padding)
		if err != nil {
			return err
		}

		viewport := zoom.ViewportSize(region, settings.ZoomFactor, settings.MaxViewport)
		if raw, _ := cmd.Flags().GetString("viewport"); raw != "" {
			if viewport, err = parseSize(raw); err != nil {
				return err
			}
		}

		abs, err := zoom.Resolve(region, domain.Selection{CellIndex: index, ViewportPoint: p, Viewport: viewport})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "cell:     %d %s\n", cell.Label(), cell.Rect)
		fmt.Fprintf(out, "region:   %s\n", region.Source)
		fmt.Fprintf(out, "viewport: %s\n", viewport)
		fmt.Fprintf(out, "point:    %s\n", abs)
		if !target.Bounds.Contains(abs) {
			fmt.Fprintf(out, "warning:  %s is outside %s\n", abs, target.Bounds)
		}
		return nil
	},
}

func init() {
	resolveCmd.Flags().String("viewport", "", "zoom viewport size as WIDTHxHEIGHT")
	addBoundsFlag(resolveCmd)
	rootCmd.AddCommand(resolveCmd)
}

