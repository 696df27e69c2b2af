package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/grantcraft-cli/internal/adapters/driving/tui"
	"github.com/custodia-labs/grantcraft-cli/internal/app"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface.

The TUI searches the example index, discovers opportunities, drafts
proposals for them and browses saved drafts.

Controls:
  ↑/k, ↓/j - Navigate
  Enter    - Search / Open
  g        - Draft a proposal for the selected opportunity
  Esc      - Back
  q        - Quit from the menu`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	a, err := appFor(cmd)
	if err != nil {
		return err
	}

	model, err := newTUI(a)
	if err != nil {
		return err
	}
	model.WithContext(cmd.Context())

	if err := model.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

// newTUI builds the TUI model from the application's services.
func newTUI(a *app.App) (*tui.App, error) {
	ports := &tui.Ports{
		Retrieval:  a.Retrieval,
		Discovery:  a.Discovery,
		Generation: a.Generation,
		Drafts:     a.Drafts,
	}
	if a.Settings != nil {
		ports.Organization = a.Settings.Organization.Name
	}

	model, err := tui.NewApp(ports)
	if err != nil {
		return nil, fmt.Errorf("failed to create TUI: %w", err)
	}
	return model, nil
}
