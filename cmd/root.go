package cmd

import (
	"fmt"
	"os"

	config "github.com/inference-gateway/gridpick/config"
	container "github.com/inference-gateway/gridpick/internal/container"
	logger "github.com/inference-gateway/gridpick/internal/logger"
	cobra "github.com/spf13/cobra"
)

var (
	configLoader *config.Loader
	loadedConfig *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "gridpick",
	Short: "Pick a screen point through a numbered grid and a zoom view",
	Long: `gridpick overlays a numbered grid on one display, magnifies the cell you
pick and clicks the exact point you choose inside the magnified view.

The grid and zoom views are served over a JSON-lines protocol on stdin/stdout
or over a websocket, so both people and agents can drive the picker.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	defer logger.Close()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "", fmt.Sprintf("config file (default is %s)", config.DefaultConfigPath))
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")

	cobra.OnInitialize(initConfig)
}

func initConfig() {
	verbose, _ := rootCmd.PersistentFlags().GetBool("verbose")
	configPath, _ := rootCmd.PersistentFlags().GetString("config")

	configLoader = config.NewLoader(configPath)
	cfg, errs, err := configLoader.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config from %s: %v\n", configLoader.Path(), err)
		os.Exit(1)
	}
	loadedConfig = cfg

	logger.Init(verbose, cfg)
	for _, e := range errs {
		logger.Warn("Invalid configuration value, using default", "key", e.Key, "error", e.Error())
	}
}

// currentConfig returns the loaded configuration or the defaults when
// initConfig has not run
func currentConfig() *config.Config {
	if loadedConfig == nil {
		return config.DefaultConfig()
	}
	return loadedConfig
}

func newServiceContainer() *container.ServiceContainer {
	return container.NewServiceContainer(currentConfig(), configLoader)
}

func closeServices(services *container.ServiceContainer) {
	if err := services.Close(); err != nil {
		logger.Warn("Failed to release resources", "error", err)
	}
}
