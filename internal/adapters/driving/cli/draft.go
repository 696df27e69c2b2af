package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/grantcraft-cli/internal/core/domain"
)

var (
	draftPick     int
	draftFrom     string
	draftKeywords string
	draftSections string
	draftOut      string
	draftNoSave   bool
	draftJSON     bool

	refineFeedback string
	refineOut      string

	draftsJSON bool
)

var draftCmd = &cobra.Command{
	Use:   "draft",
	Short: "Draft an application for a discovered opportunity",
	Long: `Runs discovery, picks one opportunity and writes each requested section
with the configured LLM, grounded in excerpts from past applications.

Sections that fail to generate hold a placeholder and can be retried with
'grantcraft refine'. The draft is saved unless --no-save is given.`,
	Example: `  grantcraft draft --pick 2
  grantcraft draft --from opportunities.yaml --sections project_overview,intended_outcomes
  grantcraft draft --out draft.md`,
	Args: cobra.NoArgs,
	RunE: runDraft,
}

var refineCmd = &cobra.Command{
	Use:   "refine <draft-id>",
	Short: "Rewrite every section of a saved draft with feedback",
	Args:  cobra.ExactArgs(1),
	RunE:  runRefine,
}

var draftsCmd = &cobra.Command{
	Use:   "drafts",
	Short: "Manage saved drafts",
	RunE:  runDraftsList,
}

var draftsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved drafts",
	Args:  cobra.NoArgs,
	RunE:  runDraftsList,
}

var draftsShowCmd = &cobra.Command{
	Use:   "show <draft-id>",
	Short: "Print a saved draft as markdown",
	Args:  cobra.ExactArgs(1),
	RunE:  runDraftsShow,
}

var draftsDeleteCmd = &cobra.Command{
	Use:   "delete <draft-id>",
	Short: "Delete a saved draft",
	Args:  cobra.ExactArgs(1),
	RunE:  runDraftsDelete,
}

func init() {
	draftCmd.Flags().IntVarP(&draftPick, "pick", "p", 1, "1-based rank of the opportunity to draft for")
	draftCmd.Flags().StringVar(&draftFrom, "from", "", "read opportunities from a YAML file")
	draftCmd.Flags().StringVarP(&draftKeywords, "keywords", "k", "", "comma separated discovery keywords")
	draftCmd.Flags().StringVarP(&draftSections, "sections", "s", "", "comma separated section types (default: all six)")
	draftCmd.Flags().StringVarP(&draftOut, "out", "o", "", "write the draft as markdown to this file")
	draftCmd.Flags().BoolVar(&draftNoSave, "no-save", false, "do not persist the draft")
	draftCmd.Flags().BoolVar(&draftJSON, "json", false, "output the draft as JSON")

	refineCmd.Flags().StringVarP(&refineFeedback, "feedback", "f", "", "reviewer feedback applied to every section")
	refineCmd.Flags().StringVarP(&refineOut, "out", "o", "", "write the refined draft as markdown to this file")
	_ = refineCmd.MarkFlagRequired("feedback")

	draftsCmd.PersistentFlags().BoolVar(&draftsJSON, "json", false, "output as JSON")
	draftsCmd.AddCommand(draftsListCmd)
	draftsCmd.AddCommand(draftsShowCmd)
	draftsCmd.AddCommand(draftsDeleteCmd)

	rootCmd.AddCommand(draftCmd)
	rootCmd.AddCommand(refineCmd)
	rootCmd.AddCommand(draftsCmd)
}

func runDraft(cmd *cobra.Command, _ []string) error {
	sections, err := domain.ParseSectionTypes(draftSections)
	if err != nil {
		return err
	}

	records, err := discoverOpportunities(cmd, draftFrom, splitList(draftKeywords))
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return errors.New("no relevant opportunities found")
	}
	if draftPick < 1 || draftPick > len(records) {
		return fmt.Errorf("%w: --pick must be between 1 and %d", domain.ErrInvalidInput, len(records))
	}
	opp := records[draftPick-1]

	a, err := appFor(cmd)
	if err != nil {
		return err
	}

	cmd.PrintErrf("Drafting %d sections for %q...\n", len(sections), opp.Title)
	start := time.Now()
	draft, err := a.Generation.Generate(cmd.Context(), opp, sections)
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	if !draftNoSave {
		if err := a.Drafts.Save(cmd.Context(), draft); err != nil {
			return fmt.Errorf("saving draft: %w", err)
		}
	}

	if err := outputDraft(cmd, draft, draftOut, draftJSON); err != nil {
		return err
	}
	reportDraft(cmd, draft, !draftNoSave, time.Since(start))
	return nil
}

func runRefine(cmd *cobra.Command, args []string) error {
	a, err := appFor(cmd)
	if err != nil {
		return err
	}

	draft, err := a.Drafts.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("loading draft %s: %w", args[0], err)
	}

	start := time.Now()
	refined, err := a.Generation.Refine(cmd.Context(), draft, refineFeedback)
	if err != nil {
		return fmt.Errorf("refine failed: %w", err)
	}
	if err := a.Drafts.Save(cmd.Context(), refined); err != nil {
		return fmt.Errorf("saving draft: %w", err)
	}

	if err := outputDraft(cmd, refined, refineOut, false); err != nil {
		return err
	}
	reportDraft(cmd, refined, true, time.Since(start))
	return nil
}

func outputDraft(cmd *cobra.Command, draft *domain.Draft, out string, asJSON bool) error {
	if asJSON {
		return printJSON(cmd, draft)
	}
	if out == "" {
		cmd.Print(draft.Markdown())
		return nil
	}
	if err := os.WriteFile(out, []byte(draft.Markdown()), 0600); err != nil {
		return fmt.Errorf("writing draft: %w", err)
	}
	cmd.PrintErrf("Wrote %s\n", out)
	return nil
}

func reportDraft(cmd *cobra.Command, draft *domain.Draft, saved bool, elapsed time.Duration) {
	if saved {
		cmd.PrintErrf("Saved draft %s (%s)\n", draft.ID, elapsed.Round(time.Second))
	}
	if n := draft.FailedCount(); n > 0 {
		cmd.PrintErrln(render(cmd, warnStyle,
			fmt.Sprintf("%d of %d sections failed; run 'grantcraft refine %s' to retry", n, len(draft.Sections), draft.ID)))
	}
}

func runDraftsList(cmd *cobra.Command, _ []string) error {
	a, err := appFor(cmd)
	if err != nil {
		return err
	}

	drafts, err := a.Drafts.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("listing drafts: %w", err)
	}

	if draftsJSON {
		return printJSON(cmd, drafts)
	}

	if len(drafts) == 0 {
		cmd.Println("No drafts saved.")
		return nil
	}
	for i := range drafts {
		d := &drafts[i]
		status := render(cmd, successStyle, "complete")
		if n := d.FailedCount(); n > 0 {
			status = render(cmd, warnStyle, fmt.Sprintf("%d failed", n))
		}
		cmd.Printf("%s  %s  %d sections, %s  %s\n",
			d.ID, d.UpdatedAt.Local().Format("2006-01-02 15:04"), len(d.Sections), status, d.Opportunity.Title)
	}
	return nil
}

func runDraftsShow(cmd *cobra.Command, args []string) error {
	a, err := appFor(cmd)
	if err != nil {
		return err
	}

	draft, err := a.Drafts.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("loading draft %s: %w", args[0], err)
	}
	return outputDraft(cmd, draft, "", draftsJSON)
}

func runDraftsDelete(cmd *cobra.Command, args []string) error {
	a, err := appFor(cmd)
	if err != nil {
		return err
	}

	if err := a.Drafts.Delete(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("deleting draft %s: %w", args[0], err)
	}
	cmd.Printf("Deleted draft %s\n", args[0])
	return nil
}

// splitList splits a comma separated flag value, dropping empty items.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
