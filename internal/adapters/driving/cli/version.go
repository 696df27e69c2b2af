package cli

import (
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	RunE: func(cmd *cobra.Command, _ []string) error {
		s, err := sessionFor(cmd)
		if err != nil {
			return err
		}
		version := s.rt.Version
		if version == "" {
			version = "dev"
		}
		cmd.Printf("grantcraft version %s\n", version)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
