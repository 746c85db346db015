package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/atrium-legal/jurisync-cli/internal/core/ports/driving"
)

var (
	syncJSON   bool
	syncDryRun bool
)

var syncCmd = &cobra.Command{
	Use:   "sync [tribunal]",
	Short: "Synchronise one tribunal's cases from the official API",
	Long: `Runs one incremental synchronisation for a tribunal (e.g. tjsp).
Fetches the tribunal's recently updated cases page by page, writes only
records whose content changed and appends the daily audit log entry.

Exit status is zero when the run completed, including runs where the
source had nothing new, and non-zero when the run failed.`,
	Args: cobra.ExactArgs(1),
	RunE: runSyncCmd,
}

func init() {
	syncCmd.Flags().BoolVar(&syncJSON, "json", false, "output the run result as JSON")
	syncCmd.Flags().BoolVar(&syncDryRun, "dry-run", false, "write into a throwaway in-memory store")
	rootCmd.AddCommand(syncCmd)
}

func runSyncCmd(cmd *cobra.Command, args []string) error {
	if err := ensureServices(); err != nil {
		return err
	}

	tribunal := args[0]
	if !syncJSON {
		cmd.Printf("Synchronising %s...\n", tribunal)
	}

	result, err := syncRunner.Run(context.Background(), tribunal)
	if result == nil {
		return fmt.Errorf("sync failed: %w", err)
	}

	if syncJSON {
		data, merr := json.MarshalIndent(result, "", "  ")
		if merr != nil {
			return fmt.Errorf("failed to marshal result: %w", merr)
		}
		cmd.Println(string(data))
	} else {
		printRunResult(cmd, result)
	}

	if result.State == driving.RunError {
		return fmt.Errorf("sync failed: %w", err)
	}
	return nil
}

func printRunResult(cmd *cobra.Command, res *driving.RunResult) {
	switch res.State {
	case driving.RunSuccess:
		cmd.Println(styleSuccess.Render(fmt.Sprintf(
			"Run %s completed: fetched %d, written %d, skipped %d",
			res.RunID, res.Fetched, res.Written, res.Skipped)))
	case driving.RunNoData:
		cmd.Println(styleMuted.Render(fmt.Sprintf(
			"Run %s completed: source returned no records", res.RunID)))
	case driving.RunError:
		cmd.Println(styleError.Render(fmt.Sprintf("Run %s failed", res.RunID)))
	}

	for _, msg := range res.Errors {
		cmd.Println(styleWarning.Render("  " + msg))
	}

	cmd.Println(styleMuted.Render(fmt.Sprintf(
		"Quota: %s, %d/%d writes used",
		res.Quota.Status, res.Quota.WritesUsed, res.Quota.WritesUsed+res.Quota.WritesRemaining)))
}
