package cmd

import (
	"fmt"
	"os"

	config "github.com/inference-gateway/gridpick/config"
	cobra "github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage gridpick configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new configuration file",
	Long: `Write the default configuration to .gridpick/config.yaml in the current
directory, or under the home directory with --userspace.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		userspace, _ := cmd.Flags().GetBool("userspace")
		overwrite, _ := cmd.Flags().GetBool("overwrite")
		return initConfigFile(cmd, config.GetConfigPath(userspace), overwrite)
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Long: `Print the configuration after the file, GRIDPICK_* environment variables and
defaults have been merged. Invalid values show the default they fell back to.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := currentConfig().Marshal()
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

var configKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List every configuration key with its default",
	Run: func(cmd *cobra.Command, args []string) {
		defaults := config.DefaultKeys()
		for _, key := range config.SortedKeys() {
			fmt.Fprintf(cmd.OutOrStdout(), "%s=%v\n", key, defaults[key])
		}
	},
}

func initConfigFile(cmd *cobra.Command, configPath string, overwrite bool) error {
	if _, err := os.Stat(configPath); err == nil && !overwrite {
		return fmt.Errorf("configuration file %s already exists (use --overwrite to replace)", configPath)
	}

	if err := config.DefaultConfig().SaveConfig(configPath); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Successfully created %s\n", configPath)
	return nil
}

func init() {
	configInitCmd.Flags().Bool("overwrite", false, "Overwrite an existing configuration file")
	configInitCmd.Flags().Bool("userspace", false, "Write the configuration under the home directory")

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configKeysCmd)
	rootCmd.AddCommand(configCmd)
}
