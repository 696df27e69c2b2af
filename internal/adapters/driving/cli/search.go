package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/grantcraft-cli/internal/core/domain"
)

var (
	searchLimit int
	searchJSON  bool
	searchVoice bool
	clearYes    bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search indexed applications",
	Long: `Performs semantic search across the chunks of every indexed application.

With --voice the query is optional and narrows the fixed query that surfaces
the organisation's own language, for example "impact" or "mission".`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSearch,
}

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Inspect or reset the retrieval index",
}

var indexStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show the collection name and chunk count",
	Args:  cobra.NoArgs,
	RunE:  runIndexStats,
}

var indexClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every chunk and voice phrase from the index",
	Args:  cobra.NoArgs,
	RunE:  runIndexClear,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", domain.DefaultTopK, "maximum number of results")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	searchCmd.Flags().BoolVar(&searchVoice, "voice", false, "retrieve voice examples instead of matching the query")
	indexClearCmd.Flags().BoolVarP(&clearYes, "yes", "y", false, "do not ask for confirmation")
	indexCmd.AddCommand(indexStatsCmd)
	indexCmd.AddCommand(indexClearCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(indexCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := ""
	if len(args) > 0 {
		query = args[0]
	}
	if query == "" && !searchVoice {
		return errors.New("a query is required unless --voice is set")
	}

	a, err := appFor(cmd)
	if err != nil {
		return err
	}

	var results []domain.SearchResult
	if searchVoice {
		results, err = a.Retrieval.VoiceExamples(cmd.Context(), query, searchLimit)
	} else {
		results, err = a.Retrieval.Search(cmd.Context(), query, searchLimit)
	}
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return printJSON(cmd, results)
	}

	return outputSearchTable(cmd, results)
}

func outputSearchTable(cmd *cobra.Command, results []domain.SearchResult) error {
	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Println("Results:")
	cmd.Println()
	for i := range results {
		// Format: [N] Source / Section (Score)
		heading := fmt.Sprintf("[%d] %s / %s", i+1, results[i].Metadata.Source, results[i].Metadata.Section)
		if results[i].Score != nil {
			heading += fmt.Sprintf(" (%.2f)", *results[i].Score)
		}
		cmd.Println("  " + render(cmd, headingStyle, heading))
		if results[i].Metadata.Format != "" {
			cmd.Println("      " + render(cmd, mutedStyle, results[i].Metadata.Format.String()))
		}
		cmd.Printf("      %s\n", truncate(results[i].Text, 240))
		cmd.Println()
	}
	return nil
}

func runIndexStats(cmd *cobra.Command, _ []string) error {
	a, err := appFor(cmd)
	if err != nil {
		return err
	}

	stats, err := a.Retrieval.Stats(cmd.Context())
	if err != nil {
		return fmt.Errorf("reading index: %w", err)
	}
	cmd.Printf("Collection: %s\n", stats.Collection)
	cmd.Printf("Chunks:     %d\n", stats.Count)
	return nil
}

func runIndexClear(cmd *cobra.Command, _ []string) error {
	if !clearYes && !confirm(cmd, "Remove every chunk and voice phrase from the index?") {
		cmd.Println("Aborted.")
		return nil
	}

	a, err := appFor(cmd)
	if err != nil {
		return err
	}
	reset := a.Retrieval.Clear
	if a.Ingest != nil {
		reset = a.Ingest.Clear
	}
	if err := reset(cmd.Context()); err != nil {
		return fmt.Errorf("clearing index: %w", err)
	}
	cmd.Println(render(cmd, successStyle, "Index cleared."))
	return nil
}
