package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize [file]",
	Short: "Clean up model output",
	Long: `Strips markdown emphasis and bullets, collapses blank lines and repairs
punctuation spacing. Reads the file argument, or standard input when it is
omitted or "-".`,
	Args: cobra.MaximumNArgs(1),
	RunE: runNormalize,
}

func init() {
	rootCmd.AddCommand(normalizeCmd)
}

func runNormalize(cmd *cobra.Command, args []string) error {
	var (
		data []byte
		err  error
	)
	if len(args) == 0 || args[0] == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(args[0])
	}
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	a, err := appFor(cmd)
	if err != nil {
		return err
	}
	cmd.Println(a.Normaliser.Normalise(string(data)))
	return nil
}
