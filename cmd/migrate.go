package cmd

import (
	"fmt"
	"strings"

	storage "github.com/inference-gateway/gridpick/internal/infra/storage"
	cobra "github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run dispatch journal migrations",
	Long: `Open the configured dispatch journal, which applies any pending schema
migrations, and report the result.

Migrations are tracked in the schema_migrations table so each is applied once.
The JSONL, Redis and memory journals have no relational schema.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		status, _ := cmd.Flags().GetBool("status")

		services := newServiceContainer()
		defer closeServices(services)

		journal, err := services.GetJournal()
		if err != nil {
			return err
		}

		backend := services.GetConfig().Storage.Type
		out := cmd.OutOrStdout()

		migrator, ok := journal.(storage.Migrator)
		if !ok {
			fmt.Fprintf(out, "%s storage does not require migrations\n", backend)
			return nil
		}

		if !status {
			fmt.Fprintf(out, "%s journal migrations are up to date\n", backend)
			return nil
		}

		statuses, err := migrator.MigrationStatus(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to get migration status: %w", err)
		}

		var md strings.Builder
		md.WriteString(fmt.Sprintf("**%s MIGRATIONS:** %d total\n\n", strings.ToUpper(backend), len(statuses)))
		md.WriteString("| Version | Description                              | Status  |\n")
		md.WriteString("|---------|------------------------------------------|---------|\n")
		for _, s := range statuses {
			state := "pending"
			if s.Applied {
				state = "applied"
			}
			md.WriteString(fmt.Sprintf("| %-7s | %-40s | %-7s |\n", s.Version, s.Description, state))
		}
		printMarkdown(out, md.String())
		return nil
	},
}

func init() {
	migrateCmd.Flags().Bool("status", false, "Show migration status")
	rootCmd.AddCommand(migrateCmd)
}
