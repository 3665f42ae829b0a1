package cmd

import (
	"fmt"

	grid "github.com/inference-gateway/gridpick/internal/grid"
	cobra "github.com/spf13/cobra"
)

var cellCmd = &cobra.Command{
	Use:   "cell [number]",
	Short: "Show the rectangle of a grid cell",
	Long: `Print the absolute rectangle of a one-based grid cell on the target display,
or with --at the cell covering an absolute point.

Use --bounds to work against a given display rectangle without a display server.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		at, _ := cmd.Flags().GetString("at")
		if (at == "") == (len(args) == 0) {
			return fmt.Errorf("give either a cell number or --at x,y")
		}

		services := newServiceContainer()
		defer closeServices(services)

		target, err := targetDisplay(cmd.Context(), cmd, services)
		if err != nil {
			return err
		}
		cfg := services.GetConfig().Grid

		index := 0
		if at != "" {
			p, err := parsePoint(at)
			if err != nil {
				return err
			}
			var ok bool
			index, ok = grid.CellAt(target, cfg, p)
			if !ok {
				return fmt.Errorf("point %s is outside display %s", p, target)
			}
		} else {
			if index, err = grid.ParseCellNumber(args[0], cfg); err != nil {
				return err
			}
		}

		cell, err := grid.CellByIndex(target, cfg, index)
		if err != nil {
			return err
		}

		c := cell.Rect.Centroid()
		fmt.Fprintf(cmd.OutOrStdout(), "cell %d (row %d, col %d): %s center %s\n",
			cell.Label(), cell.Row+1, cell.Col+1, cell.Rect, c)
		return nil
	},
}

func init() {
	cellCmd.Flags().String("at", "", "absolute point x,y to find the covering cell for")
	addBoundsFlag(cellCmd)
	rootCmd.AddCommand(cellCmd)
}
