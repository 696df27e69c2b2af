package cli

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/grantcraft-cli/internal/core/domain"
)

var (
	ingestJSON  bool
	inspectJSON bool
	voiceJSON   bool
)

var errNoDocuments = errors.New("no document source configured; set documents.dir")

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Parse and index past applications",
	Long: `Reads every whitelisted document in the configured documents directory,
classifies its format, extracts sections and voice phrases, chunks the
sections and rebuilds the retrieval index from scratch.`,
	Args: cobra.NoArgs,
	RunE: runIngest,
}

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Show how each document is classified and sectioned",
	Args:  cobra.NoArgs,
	RunE:  runInspect,
}

var voiceCmd = &cobra.Command{
	Use:   "voice",
	Short: "Show the organisation's voice signature",
	Long: `Prints the mission phrases, population focus, program names, impact
metrics and values language found across all documents.`,
	Args: cobra.NoArgs,
	RunE: runVoice,
}

func init() {
	ingestCmd.Flags().BoolVar(&ingestJSON, "json", false, "output the report as JSON")
	inspectCmd.Flags().BoolVar(&inspectJSON, "json", false, "output documents as JSON")
	voiceCmd.Flags().BoolVar(&voiceJSON, "json", false, "output the signature as JSON")
	rootCmd.AddCommand(ingestCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(voiceCmd)
}

func runIngest(cmd *cobra.Command, _ []string) error {
	a, err := appFor(cmd)
	if err != nil {
		return err
	}
	if a.Ingest == nil {
		return errNoDocuments
	}

	report, err := a.Ingest.Ingest(cmd.Context())
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}

	if ingestJSON {
		return printJSON(cmd, report)
	}

	printTitle(cmd, "Ingest")
	cmd.Printf("  Documents: %d\n", report.Documents)
	for _, tag := range domain.AllFormatTags() {
		if n := report.Formats[tag]; n > 0 {
			cmd.Printf("    %-28s %d\n", tag, n)
		}
	}
	cmd.Printf("  Chunks:    %d\n", report.Chunks)
	cmd.Printf("  Index:     %s (%d chunks)\n", report.Index.Collection, report.Index.Count)
	if len(report.Skipped) > 0 {
		cmd.Println(render(cmd, warnStyle, fmt.Sprintf("  Skipped:   %s", strings.Join(report.Skipped, ", "))))
	}
	return nil
}

// documentSummary is the inspect view of one parsed document.
type documentSummary struct {
	ID       string           `json:"id"`
	Format   domain.FormatTag `json:"format"`
	Sections []sectionSummary `json:"sections"`
	Voice    int              `json:"voice_phrases"`
}

type sectionSummary struct {
	Name  string `json:"name"`
	Words int    `json:"words"`
}

func runInspect(cmd *cobra.Command, _ []string) error {
	a, err := appFor(cmd)
	if err != nil {
		return err
	}
	if a.Ingest == nil {
		return errNoDocuments
	}

	docs, skipped, err := a.Ingest.Parse(cmd.Context())
	if err != nil {
		return fmt.Errorf("parse failed: %w", err)
	}

	summaries := make([]documentSummary, 0, len(docs))
	for _, doc := range docs {
		s := documentSummary{ID: doc.ID, Format: doc.Format, Voice: doc.Voice.Len()}
		for _, sec := range doc.Sections {
			s.Sections = append(s.Sections, sectionSummary{Name: sec.Name, Words: len(strings.Fields(sec.Text))})
		}
		summaries = append(summaries, s)
	}

	if inspectJSON {
		return printJSON(cmd, summaries)
	}

	if len(summaries) == 0 {
		cmd.Println("No documents found.")
	}
	for _, s := range summaries {
		cmd.Println(render(cmd, headingStyle, s.ID))
		cmd.Printf("  Format: %s\n", s.Format)
		cmd.Printf("  Voice phrases: %d\n", s.Voice)
		for _, sec := range s.Sections {
			cmd.Printf("  - %s (%d words)\n", sec.Name, sec.Words)
		}
		cmd.Println()
	}
	for _, path := range skipped {
		cmd.Println(render(cmd, warnStyle, "Skipped: "+path))
	}
	return nil
}

func runVoice(cmd *cobra.Command, _ []string) error {
	a, err := appFor(cmd)
	if err != nil {
		return err
	}
	if a.Ingest == nil {
		return errNoDocuments
	}

	sig, err := a.Ingest.Voice(cmd.Context())
	if err != nil {
		return fmt.Errorf("voice extraction failed: %w", err)
	}

	if voiceJSON {
		return printJSON(cmd, sig)
	}

	printTitle(cmd, "Voice Signature")
	for _, category := range domain.AllVoiceCategories() {
		phrases := uniqueSorted(sig.Get(category))
		cmd.Println(render(cmd, headingStyle, fmt.Sprintf("%s (%d)", category, len(sig.Get(category)))))
		for _, p := range phrases {
			cmd.Printf("  %s\n", truncate(p, 100))
		}
	}
	return nil
}

// uniqueSorted returns the distinct phrases in s, sorted.
func uniqueSorted(s []string) []string {
	seen := make(map[string]bool, len(s))
	out := make([]string, 0, len(s))
	for _, v := range s {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}
