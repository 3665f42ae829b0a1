package cmd

import (
	"os"
	"os/signal"
	"syscall"

	app "github.com/inference-gateway/gridpick/internal/app"
	cobra "github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the picker",
	Long: `Start the picker on the configured surface and wait for operator input.

With the stdio surface, JSON messages are read from stdin one per line and
grid/zoom announcements are written to stdout; frames are written under
surface.frames_dir. With the web surface, open the printed URL.

SIGINT or SIGTERM hides any visible view and waits for an in-flight click.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := currentConfig()
		if surfaceType, _ := cmd.Flags().GetString("surface"); surfaceType != "" {
			cfg = cfg.Clone()
			cfg.Surface.Type = surfaceType
			loadedConfig = cfg
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		services := newServiceContainer()
		defer closeServices(services)
		// stdout belongs to the stdio surface
		services.DryRunOutput = cmd.ErrOrStderr()

		return app.NewPickerApplication(services, cmd.InOrStdin(), cmd.OutOrStdout()).Run(ctx)
	},
}

func init() {
	runCmd.Flags().String("surface", "", "surface to use: stdio or web (default from config)")
	rootCmd.AddCommand(runCmd)
}
