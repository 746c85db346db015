package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var quotaJSON bool

var quotaCmd = &cobra.Command{
	Use:   "quota",
	Short: "Show today's write budget usage",
	Long: `Reads the daily audit log counters and classifies how much of the
storage tier's write budget remains. The check is advisory; unreadable
counters yield a conservative estimate.`,
	RunE: runQuota,
}

func init() {
	quotaCmd.Flags().BoolVar(&quotaJSON, "json", false, "output the status as JSON")
	rootCmd.AddCommand(quotaCmd)
}

func runQuota(cmd *cobra.Command, _ []string) error {
	if err := ensureServices(); err != nil {
		return err
	}

	status := quotaService.Status(context.Background(), time.Now())

	if quotaJSON {
		data, err := json.MarshalIndent(status, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal status: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Println(quotaStyle(string(status.Status)).Render(string(status.Status)))
	cmd.Printf("  Writes used:      %d (%.1f%%)\n", status.WritesUsed, status.WritesPercent)
	cmd.Printf("  Writes remaining: %d\n", status.WritesRemaining)
	return nil
}
