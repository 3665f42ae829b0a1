package cmd

import (
	"fmt"

	grid "github.com/inference-gateway/gridpick/internal/grid"
	cobra "github.com/spf13/cobra"
)

var whereCmd = &cobra.Command{
	Use:   "where",
	Short: "Show the pointer position and the grid cell under it",
	Long: `Read the current pointer position through the configured dispatch backend
and print the one-based grid cell covering it on the target display.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		services := newServiceContainer()
		defer closeServices(services)

		locator, err := services.GetLocator()
		if err != nil {
			return err
		}
		p, err := locator.Position(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to read pointer position: %w", err)
		}

		target, err := targetDisplay(cmd.Context(), cmd, services)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		index, ok := grid.CellAt(target, services.GetConfig().Grid, p)
		if !ok {
			fmt.Fprintf(out, "pointer %s (outside %s)\n", p, target)
			return nil
		}
		fmt.Fprintf(out, "pointer %s in cell %d\n", p, index+1)
		return nil
	},
}

func init() {
	addBoundsFlag(whereCmd)
	rootCmd.AddCommand(whereCmd)
}
