package cmd

import (
	"encoding/json"
	"fmt"

	container "github.com/inference-gateway/gridpick/internal/container"
	display "github.com/inference-gateway/gridpick/internal/display"
	domain "github.com/inference-gateway/gridpick/internal/domain"
	cobra "github.com/spf13/cobra"
)

var displaysCmd = &cobra.Command{
	Use:   "displays",
	Short: "List displays and the one the picker targets",
	Long: `Enumerate the displays of the configured display server, their absolute
bounds in the virtual desktop and the display the current policy resolves to.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		services := newServiceContainer()
		defer closeServices(services)

		info, err := services.GetDisplayInfo()
		if err != nil {
			return err
		}
		acquirer, err := services.GetAcquirer()
		if err != nil {
			return err
		}
		displays, err := acquirer.ListDisplays(cmd.Context())
		if err != nil {
			return err
		}

		policy := container.PolicyFrom(services.GetConfig())
		target, targetErr := display.ResolveTarget(displays, policy)

		asJSON, _ := cmd.Flags().GetBool("json")
		if asJSON {
			return printDisplaysJSON(cmd, info.Name, displays, policy, target, targetErr)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Display server: %s\n", info.Name)
		fmt.Fprintf(out, "Virtual desktop: %s\n\n", display.VirtualBounds(displays))
		for _, d := range displays {
			marker := " "
			if targetErr == nil && d.ID == target.ID {
				marker = "*"
			}
			primary := ""
			if d.Primary {
				primary = " (primary)"
			}
			fmt.Fprintf(out, "%s %d  %-10s bounds %s  work area %s%s\n", marker, d.ID, d.Name, d.Bounds, d.WorkArea, primary)
		}

		fmt.Fprintln(out)
		if targetErr != nil {
			fmt.Fprintf(out, "Policy %s does not resolve: %v\n", policy, targetErr)
			return nil
		}
		fmt.Fprintf(out, "Policy %s targets display %d\n", policy, target.ID)
		return nil
	},
}

func printDisplaysJSON(cmd *cobra.Command, server string, displays []domain.Display, policy display.Policy, target domain.Display, targetErr error) error {
	report := struct {
		Server   string           `json:"server"`
		Policy   string           `json:"policy"`
		Displays []domain.Display `json:"displays"`
		Target   *domain.Display  `json:"target,omitempty"`
		Error    string           `json:"error,omitempty"`
	}{
		Server:   server,
		Policy:   policy.String(),
		Displays: displays,
	}
	if targetErr != nil {
		report.Error = targetErr.Error()
	} else {
		report.Target = &target
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}

func init() {
	displaysCmd.Flags().Bool("json", false, "Print the displays as JSON")
	rootCmd.AddCommand(displaysCmd)
}
