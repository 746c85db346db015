package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/atrium-legal/jurisync-cli/internal/core/domain"
)

var searchJSON bool

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search cases across all configured sources",
	Long: `Fans the query out to every configured source, merges records
describing the same case and reports duplicates and factual conflicts.
The query is a party name or a case number.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if err := ensureServices(); err != nil {
		return err
	}

	result, err := searchService.Search(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputSearchJSON(cmd, result)
	}
	return outputSearchTable(cmd, result)
}

func outputSearchJSON(cmd *cobra.Command, result *domain.ConsolidationResult) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, result *domain.ConsolidationResult) error {
	for _, sr := range result.SourceResults {
		if sr.Err != nil {
			cmd.Println(styleWarning.Render(fmt.Sprintf("source %s unavailable: %v", sr.Source, sr.Err)))
		}
	}

	if len(result.UniqueCases) == 0 {
		cmd.Println("No cases found.")
		return nil
	}

	cmd.Println(styleTitle.Render(fmt.Sprintf("%d case(s), %d duplicate record(s) merged",
		len(result.UniqueCases), result.DuplicateCount)))
	cmd.Println()

	for i := range result.UniqueCases {
		c := &result.UniqueCases[i]

		cmd.Printf("  [%d] %s\n", i+1, styleTitle.Render(c.CaseNumber))
		cmd.Printf("      %s", c.Tribunal.Name)
		if c.Classification.Name != domain.Unclassified {
			cmd.Printf("  %s", styleMuted.Render(c.Classification.Name))
		}
		cmd.Println()
		if c.Subject.Name != domain.Unclassified {
			cmd.Printf("      Subject: %s\n", c.Subject.Name)
		}
		for _, p := range c.Parties[domain.RoleClaimant] {
			cmd.Printf("      Claimant: %s\n", p.Name)
		}
		for _, p := range c.Parties[domain.RoleRespondent] {
			cmd.Printf("      Respondent: %s\n", p.Name)
		}
		cmd.Printf("      Status: %s", c.Status)
		if c.LastMovement != nil {
			cmd.Printf("  %s", styleMuted.Render(c.LastMovement.Name))
		}
		cmd.Println()
		cmd.Println()
	}

	for _, conflict := range result.Conflicts {
		cmd.Println(styleWarning.Render(fmt.Sprintf("conflict on %s (%s): %s=%q vs %s=%q",
			conflict.ProcessID, conflict.Field,
			conflict.SourceA, conflict.ValueA, conflict.SourceB, conflict.ValueB)))
	}

	cmd.Println(styleMuted.Render(fmt.Sprintf("%d/%d sources answered",
		result.SourcesSuccessful, len(result.SourceResults))))
	return nil
}
