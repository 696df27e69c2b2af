package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/grantcraft-cli/internal/core/domain"
	"github.com/custodia-labs/grantcraft-cli/internal/core/services"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage application settings",
	Long: `View and change grantcraft settings.

Settings live in ~/.grantcraft/config.toml unless --config or
GRANTCRAFT_CONFIG points elsewhere.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a single setting",
	Long: `Set a single setting by its dotted key. List values are comma separated.

Run 'grantcraft config keys' for the recognised keys.`,
	Example: `  grantcraft config set documents.dir ~/grants
  grantcraft config set discovery.focus_keywords "education,AI,workforce"
  grantcraft config set storage.backend memory`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List recognised setting keys",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		for _, k := range services.Keys() {
			cmd.Println(k)
		}
	},
}

var configEmbeddingCmd = &cobra.Command{
	Use:   "embedding",
	Short: "Configure embedding provider",
	Long:  `Interactively configure the embedding provider used to index applications.`,
	Args:  cobra.NoArgs,
	RunE:  runConfigEmbedding,
}

var configLLMCmd = &cobra.Command{
	Use:   "llm",
	Short: "Configure LLM provider",
	Long:  `Interactively configure the LLM provider used to write sections.`,
	Args:  cobra.NoArgs,
	RunE:  runConfigLLM,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configKeysCmd)
	configCmd.AddCommand(configEmbeddingCmd)
	configCmd.AddCommand(configLLMCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	config, err := settingsFor(cmd)
	if err != nil {
		return err
	}

	settings, err := config.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	printTitle(cmd, "Current Settings")
	cmd.Println()

	section(cmd, "Documents")
	cmd.Printf("  Directory: %s\n", settings.Documents.Dir)
	cmd.Printf("  Prefixes: %s\n", listOrNone(settings.Documents.Prefixes))
	cmd.Println()

	section(cmd, "Chunking")
	cmd.Printf("  Max chunk size: %d words\n", settings.Chunking.MaxChunkSize)
	cmd.Printf("  Overlap: %d\n", settings.Chunking.Overlap)
	cmd.Println()

	section(cmd, "Retrieval")
	cmd.Printf("  Collection: %s\n", settings.Retrieval.Collection)
	cmd.Printf("  Top K: %d\n", settings.Retrieval.TopK)
	cmd.Printf("  Storage: %s", settings.Storage.Backend)
	if settings.Storage.Backend == domain.StorageSQLite {
		path := settings.Storage.Path
		if path == "" {
			path = "~/.grantcraft/data/grantcraft.db"
		}
		cmd.Printf(" (%s)", path)
	}
	cmd.Println()
	cmd.Println()

	section(cmd, "Embedding")
	cmd.Printf("  Provider: %s\n", settings.Embedding.Provider.Description())
	cmd.Printf("  Model: %s\n", settings.Embedding.Model)
	if settings.Embedding.Provider.IsLocal() {
		cmd.Printf("  Base URL: %s\n", settings.Embedding.BaseURL)
	}
	if settings.Embedding.Provider.RequiresAPIKey() {
		cmd.Printf("  API Key: %s\n", maskAPIKey(settings.Embedding.APIKey))
	}
	cmd.Printf("  Cache size: %d\n", settings.Embedding.CacheSize)
	cmd.Printf("  Status: %s\n", configuredStatus(cmd, settings.Embedding.IsConfigured()))
	cmd.Println()

	section(cmd, "LLM")
	cmd.Printf("  Provider: %s\n", settings.LLM.Provider.Description())
	cmd.Printf("  Model: %s\n", settings.LLM.Model)
	if settings.LLM.Provider.IsLocal() {
		cmd.Printf("  Base URL: %s\n", settings.LLM.BaseURL)
	}
	if settings.LLM.Provider.RequiresAPIKey() {
		cmd.Printf("  API Key: %s\n", maskAPIKey(settings.LLM.APIKey))
	}
	cmd.Printf("  Timeout: %s\n", settings.LLM.Timeout)
	cmd.Printf("  Status: %s\n", configuredStatus(cmd, settings.LLM.IsConfigured()))
	cmd.Println()

	section(cmd, "Organization")
	cmd.Printf("  Name: %s\n", settings.Organization.Name)
	cmd.Printf("  Program: %s\n", settings.Organization.Program)
	cmd.Printf("  Mission anchors: %s\n", listOrNone(settings.Organization.MissionAnchors))
	cmd.Printf("  Population keywords: %s\n", listOrNone(settings.Organization.PopulationKeywords))
	cmd.Printf("  Values keywords: %s\n", listOrNone(settings.Organization.ValuesKeywords))
	cmd.Println()

	section(cmd, "Discovery")
	cmd.Printf("  Max results: %d\n", settings.Discovery.MaxResults)
	cmd.Printf("  Scraping delay: %s\n", settings.Discovery.ScrapingDelay)
	cmd.Printf("  Focus keywords: %s\n", listOrNone(settings.Discovery.FocusKeywords))
	cmd.Printf("  Search keywords: %s\n", listOrNone(settings.Discovery.SearchKeywords))
	if settings.Discovery.GrantsGovURL != "" {
		cmd.Printf("  Grants.gov URL: %s\n", settings.Discovery.GrantsGovURL)
	}
	if settings.Discovery.OpportunitiesFile != "" {
		cmd.Printf("  Opportunities file: %s\n", settings.Discovery.OpportunitiesFile)
	}
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	config, err := settingsFor(cmd)
	if err != nil {
		return err
	}

	if err := config.Set(args[0], args[1]); err != nil {
		return fmt.Errorf("failed to set %s: %w", args[0], err)
	}
	cmd.Printf("Set %s = %s\n", args[0], args[1])
	return nil
}

func runConfigEmbedding(cmd *cobra.Command, _ []string) error {
	config, err := settingsFor(cmd)
	if err != nil {
		return err
	}
	reader := bufio.NewReader(cmd.InOrStdin())
	return configureProvider(cmd, reader, providerPrompt{
		label:     "Embedding",
		providers: domain.AllEmbeddingProviders(),
		models:    domain.DefaultEmbeddingModels(),
		set:       config.SetEmbeddingProvider,
		validate:  config.ValidateEmbeddingConfig,
	})
}

func runConfigLLM(cmd *cobra.Command, _ []string) error {
	config, err := settingsFor(cmd)
	if err != nil {
		return err
	}
	reader := bufio.NewReader(cmd.InOrStdin())
	return configureProvider(cmd, reader, providerPrompt{
		label:     "LLM",
		providers: domain.AllLLMProviders(),
		models:    domain.DefaultLLMModels(),
		set:       config.SetLLMProvider,
		validate:  config.ValidateLLMConfig,
	})
}

// providerPrompt describes one interactive provider setup flow.
type providerPrompt struct {
	label     string
	providers []domain.AIProvider
	models    map[domain.AIProvider]string
	set       func(provider domain.AIProvider, model, apiKey string) error
	validate  func() error
}

func configureProvider(cmd *cobra.Command, reader *bufio.Reader, p providerPrompt) error {
	cmd.Printf("Select %s Provider\n", p.label)
	for i, provider := range p.providers {
		cmd.Printf("  %d. %s\n", i+1, provider.Description())
	}
	cmd.Print("\nEnter choice [1]: ")
	idx := parseChoice(readLine(reader), len(p.providers), 1)
	selected := p.providers[idx-1]

	defaultModel := p.models[selected]
	cmd.Printf("Enter model name [%s]: ", defaultModel)
	model := readLine(reader)
	if model == "" {
		model = defaultModel
	}

	var apiKey string
	if selected.RequiresAPIKey() {
		cmd.Print("Enter API key: ")
		apiKey = readPassword(cmd.InOrStdin(), reader)
		cmd.Println()
		if apiKey == "" {
			return errors.New("API key is required for this provider")
		}
	}

	if err := p.set(selected, model, apiKey); err != nil {
		return fmt.Errorf("failed to configure %s provider: %w", p.label, err)
	}

	// Validate the configuration by pinging the service
	cmd.Print("Validating configuration... ")
	if err := p.validate(); err != nil {
		cmd.Println(render(cmd, warnStyle, "FAILED"))
		return fmt.Errorf("%s configuration validation failed: %w", p.label, err)
	}
	cmd.Println(render(cmd, successStyle, "OK"))

	cmd.Printf("%s provider configured: %s (%s)\n", p.label, selected.Description(), model)
	return nil
}

// Helper functions.

func section(cmd *cobra.Command, name string) {
	cmd.Println(render(cmd, headingStyle, "["+name+"]"))
}

func configuredStatus(cmd *cobra.Command, ok bool) string {
	if ok {
		return render(cmd, successStyle, "configured")
	}
	return render(cmd, warnStyle, "not configured")
}

func listOrNone(items []string) string {
	if len(items) == 0 {
		return "(none)"
	}
	return strings.Join(items, ", ")
}

// confirm asks a yes/no question on the command's input.
func confirm(cmd *cobra.Command, question string) bool {
	cmd.Printf("%s [y/N]: ", question)
	answer := strings.ToLower(readLine(bufio.NewReader(cmd.InOrStdin())))
	return answer == "y" || answer == "yes"
}

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

// readPassword reads without echo when in is a terminal.
func readPassword(in io.Reader, reader *bufio.Reader) string {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		password, err := term.ReadPassword(int(f.Fd()))
		if err == nil {
			return string(password)
		}
	}
	return readLine(reader)
}

func maskAPIKey(key string) string {
	if key == "" {
		return "(not set)"
	}
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
