package cli

import (
	"sort"

	"github.com/spf13/cobra"

	"github.com/atrium-legal/jurisync-cli/internal/core/domain"
)

var tribunalsCmd = &cobra.Command{
	Use:   "tribunals",
	Short: "List the court systems sync understands",
	Run:   runTribunals,
}

func init() {
	rootCmd.AddCommand(tribunalsCmd)
}

func runTribunals(cmd *cobra.Command, _ []string) {
	tribunals := domain.Tribunals()
	sort.Slice(tribunals, func(i, j int) bool {
		return tribunals[i].SegmentKey < tribunals[j].SegmentKey
	})

	for _, t := range tribunals {
		cmd.Printf("  %-6s %s %s\n", t.Code, styleMuted.Render(t.SegmentKey), t.Name)
	}
}
