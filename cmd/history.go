package cmd

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	domain "github.com/inference-gateway/gridpick/internal/domain"
	cobra "github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List journaled dispatches, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		offset, _ := cmd.Flags().GetInt("offset")
		asJSON, _ := cmd.Flags().GetBool("json")

		services := newServiceContainer()
		defer closeServices(services)

		journal, err := services.GetJournal()
		if err != nil {
			return err
		}
		records, err := journal.List(cmd.Context(), limit, offset)
		if err != nil {
			return fmt.Errorf("failed to list dispatches: %w", err)
		}

		if asJSON {
			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			return encoder.Encode(records)
		}

		if len(records) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No dispatches recorded")
			return nil
		}

		printMarkdown(cmd.OutOrStdout(), historyMarkdown(records, limit, offset))
		return nil
	},
}

func historyMarkdown(records []domain.DispatchRecord, limit, offset int) string {
	var md strings.Builder
	md.WriteString(fmt.Sprintf("**DISPATCHES:** %d shown\n\n", len(records)))

	md.WriteString("| Time                | Activation | Display | Cell | Point        | Button | Result   | Duration |\n")
	md.WriteString("|---------------------|------------|---------|------|--------------|--------|----------|----------|\n")

	for _, r := range records {
		cell := "-"
		if r.CellIndex >= 0 {
			cell = fmt.Sprintf("%d", r.CellIndex+1)
		}
		result := "ok"
		if !r.Success {
			result = "failed: " + strings.ReplaceAll(r.Error, "|", "\\|")
		}
		md.WriteString(fmt.Sprintf("| %-19s | %-10s | %7d | %4s | %-12s | %-6s | %-8s | %8s |\n",
			r.CreatedAt.Local().Format(time.DateTime),
			shortID(r.ActivationID),
			r.DisplayID,
			cell,
			r.Point,
			r.Button,
			result,
			r.Duration.Round(time.Millisecond)))
	}

	if limit > 0 && len(records) >= limit {
		md.WriteString(fmt.Sprintf("\nShowing %d-%d (use --limit and --offset for pagination)\n",
			offset+1, offset+len(records)))
	} else if offset > 0 {
		md.WriteString(fmt.Sprintf("\nShowing %d-%d\n", offset+1, offset+len(records)))
	}
	return md.String()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "maximum number of entries (0 for all)")
	historyCmd.Flags().Int("offset", 0, "number of newest entries to skip")
	historyCmd.Flags().Bool("json", false, "Print the entries as JSON")
	rootCmd.AddCommand(historyCmd)
}
