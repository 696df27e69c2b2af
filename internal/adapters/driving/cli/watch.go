package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/grantcraft-cli/internal/core/ports/driven"
	"github.com/custodia-labs/grantcraft-cli/internal/logger"
)

var watchSkipInitial bool

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-index whenever the documents directory changes",
	Long: `Runs an initial ingest and then watches the documents directory. Each
burst of changes to whitelisted files triggers a full re-ingest. Stops on
Ctrl+C.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().BoolVar(&watchSkipInitial, "skip-initial", false, "do not ingest before watching")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	a, err := appFor(cmd)
	if err != nil {
		return err
	}
	if a.Ingest == nil {
		return errNoDocuments
	}
	if a.Watcher == nil {
		return errors.New("the document source does not support watching")
	}

	ctx := cmd.Context()
	reindex := func() {
		report, err := a.Ingest.Ingest(ctx)
		if err != nil {
			if ctx.Err() == nil {
				logger.Error("ingest failed: %v", err)
			}
			return
		}
		cmd.Printf("Indexed %d chunks from %d documents\n", report.Chunks, report.Documents)
	}

	if !watchSkipInitial {
		reindex()
	}

	cmd.Printf("Watching %s (Ctrl+C to stop)\n", a.Settings.Documents.Dir)
	err = a.Watcher.Watch(ctx, func(refs []driven.DocumentRef) {
		ids := make([]string, len(refs))
		for i, ref := range refs {
			ids[i] = ref.ID
		}
		cmd.Println(render(cmd, mutedStyle, "Changed: "+strings.Join(ids, ", ")))
		reindex()
	})
	if err != nil {
		return fmt.Errorf("watching documents: %w", err)
	}
	return nil
}
