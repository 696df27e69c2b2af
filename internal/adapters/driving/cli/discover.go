package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/grantcraft-cli/internal/connectors/yamlfile"
	"github.com/custodia-labs/grantcraft-cli/internal/core/domain"
	"github.com/custodia-labs/grantcraft-cli/internal/core/services"
)

var (
	discoverJSON bool
	discoverFrom string
)

var discoverCmd = &cobra.Command{
	Use:   "discover [keywords...]",
	Short: "Find relevant funding opportunities",
	Long: `Queries every configured opportunity source and lists the records that
match the organisation's focus keywords, best first.

Keywords default to discovery.search_keywords. Use --from to read records
from a YAML file instead of the configured sources.`,
	RunE: runDiscover,
}

func init() {
	discoverCmd.Flags().BoolVar(&discoverJSON, "json", false, "output opportunities as JSON")
	discoverCmd.Flags().StringVar(&discoverFrom, "from", "", "read opportunities from a YAML file")
	rootCmd.AddCommand(discoverCmd)
}

func runDiscover(cmd *cobra.Command, args []string) error {
	records, err := discoverOpportunities(cmd, discoverFrom, args)
	if err != nil {
		return err
	}

	if discoverJSON {
		return printJSON(cmd, records)
	}

	if len(records) == 0 {
		cmd.Println("No relevant opportunities found.")
		return nil
	}

	printTitle(cmd, "Opportunities")
	for i, r := range records {
		cmd.Println(render(cmd, headingStyle, fmt.Sprintf("[%d] %s", i+1, r.Title)))
		cmd.Printf("      %s  |  Deadline: %s  |  Amount: %s  |  Score: %d\n",
			r.Organization, r.DeadlineOrDefault(), r.AmountOrDefault(), r.Score())
		if len(r.FocusAreas) > 0 {
			cmd.Println("      " + render(cmd, mutedStyle, strings.Join(r.FocusAreas, ", ")))
		}
		if r.URL != "" {
			cmd.Println("      " + render(cmd, mutedStyle, r.URL))
		}
	}
	return nil
}

// discoverOpportunities runs discovery, over a YAML file when from is set.
func discoverOpportunities(cmd *cobra.Command, from string, keywords []string) ([]domain.OpportunityRecord, error) {
	a, err := appFor(cmd)
	if err != nil {
		return nil, err
	}

	discovery := a.Discovery
	if from != "" {
		discovery = services.NewDiscoveryService(a.Settings.Discovery, yamlfile.New(from))
	}

	records, err := discovery.Discover(cmd.Context(), keywords)
	if err != nil {
		return nil, fmt.Errorf("discovery failed: %w", err)
	}
	return records, nil
}
