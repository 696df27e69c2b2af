// Package app assembles the application context: settings, driven adapters
// and core services. It is constructed once by main and handed to the
// driving adapters; nothing in the pipeline reaches for globals.
package app

import (
	"errors"
	"fmt"

	"github.com/custodia-labs/grantcraft-cli/internal/adapters/driven/ai"
	"github.com/custodia-labs/grantcraft-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/grantcraft-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/grantcraft-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/grantcraft-cli/internal/connectors/filesystem"
	"github.com/custodia-labs/grantcraft-cli/internal/connectors/grantsgov"
	"github.com/custodia-labs/grantcraft-cli/internal/connectors/sample"
	"github.com/custodia-labs/grantcraft-cli/internal/connectors/yamlfile"
	"github.com/custodia-labs/grantcraft-cli/internal/core/domain"
	"github.com/custodia-labs/grantcraft-cli/internal/core/ports/driven"
	"github.com/custodia-labs/grantcraft-cli/internal/core/ports/driving"
	"github.com/custodia-labs/grantcraft-cli/internal/core/services"
	"github.com/custodia-labs/grantcraft-cli/internal/logger"
	"github.com/custodia-labs/grantcraft-cli/internal/normalisers/grant"
	"github.com/custodia-labs/grantcraft-cli/internal/normalisers/output"
	"github.com/custodia-labs/grantcraft-cli/internal/normalisers/voice"
	"github.com/custodia-labs/grantcraft-cli/internal/postprocessors"
)

// App is the application context shared by the CLI and the MCP server.
type App struct {
	Settings *domain.AppSettings
	Config   driving.SettingsService

	Retrieval  driving.RetrievalService
	Ingest     driving.IngestService
	Generation driving.GenerationService
	Drafts     driving.DraftService
	Discovery  driving.DiscoveryService

	// Normaliser is the output cleanup pipeline applied to generated text.
	Normaliser driven.TextNormaliser

	// Watcher is set when the document source can report changes.
	Watcher driven.DocumentWatcher

	// Warnings lists non-fatal setup problems, such as an unreachable LLM.
	Warnings []string

	closers []func() error
}

// Deps are the driven adapters an App is built from.
// Nil stores fall back to in-memory implementations.
type Deps struct {
	Config        driving.SettingsService
	Source        driven.DocumentSource
	Embedder      driven.EmbeddingService
	LLM           driven.LLMService
	Vectors       driven.VectorStore
	Voices        driven.VoiceStore
	Drafts        driven.DraftStore
	Prompts       driven.PromptStore
	Opportunities []driven.OpportunitySource
}

// Options control Load.
type Options struct {
	// ConfigPath is a config directory or .toml file. Empty uses the default.
	ConfigPath string

	// PromptDir overrides the prompt template directory.
	PromptDir string

	// Validate pings the AI providers during setup.
	Validate bool
}

// Load reads settings and builds every adapter they name.
func Load(opts Options) (*App, error) {
	config, err := LoadSettings(opts)
	if err != nil {
		return nil, err
	}

	settings, err := config.Get()
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}

	var closers []func() error
	deps := Deps{
		Config:        config,
		Source:        filesystem.New(settings.Documents.Dir, settings.Documents.Prefixes),
		Opportunities: OpportunitySources(settings.Discovery),
	}

	aiResult := ai.Init(settings, opts.Validate)
	deps.Embedder = aiResult.EmbeddingService
	deps.LLM = aiResult.LLMService
	closers = append(closers, func() error { aiResult.Close(); return nil })

	if settings.Storage.Backend != domain.StorageMemory {
		store, err := sqlite.NewStore(settings.Storage.Path)
		if err != nil {
			aiResult.Close()
			return nil, fmt.Errorf("opening storage: %w", err)
		}
		deps.Vectors = store.VectorStore(settings.Retrieval.Collection)
		deps.Voices = store.VoiceStore()
		deps.Drafts = store.DraftStore()
		closers = append(closers, store.Close)
	}

	prompts, err := file.NewPromptStore(opts.PromptDir, services.DefaultPrompts())
	if err != nil {
		logger.Warn("prompt store unavailable, using built-in prompts: %v", err)
	} else {
		deps.Prompts = prompts
	}

	a, err := New(settings, deps)
	if err != nil {
		for _, c := range closers {
			_ = c()
		}
		return nil, err
	}
	a.closers = append(a.closers, closers...)
	a.Warnings = append(a.Warnings, aiResult.Warnings...)
	return a, nil
}

// LoadSettings opens the config file named by opts without building any
// other adapter.
func LoadSettings(opts Options) (*services.SettingsService, error) {
	configStore, err := file.NewConfigStore(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("opening config: %w", err)
	}
	return services.NewSettingsService(configStore, ai.NewConfigValidator()), nil
}

// OpportunitySources returns the discovery sources enabled by settings.
// The sample source is always first.
func OpportunitySources(settings domain.DiscoverySettings) []driven.OpportunitySource {
	sources := []driven.OpportunitySource{sample.New()}
	if settings.OpportunitiesFile != "" {
		sources = append(sources, yamlfile.New(settings.OpportunitiesFile))
	}
	if settings.GrantsGovURL != "" {
		sources = append(sources, grantsgov.New(grantsgov.Config{
			URL:        settings.GrantsGovURL,
			Delay:      settings.ScrapingDelay,
			MaxResults: settings.MaxResults,
		}))
	}
	return sources
}

// New wires the core services over deps.
func New(settings *domain.AppSettings, deps Deps) (*App, error) {
	if settings == nil {
		defaults := domain.DefaultAppSettings()
		settings = &defaults
	}
	if deps.Vectors == nil {
		deps.Vectors = memory.NewVectorStore(settings.Retrieval.Collection)
	}
	if deps.Voices == nil {
		deps.Voices = memory.NewVoiceStore()
	}
	if deps.Drafts == nil {
		deps.Drafts = memory.NewDraftStore()
	}
	if len(deps.Opportunities) == 0 {
		deps.Opportunities = []driven.OpportunitySource{sample.New()}
	}

	registry := postprocessors.NewRegistry()
	postprocessors.RegisterDefaults(registry)
	pipeline, err := postprocessors.FromConfig(registry, domain.PipelineConfigFor(settings.Chunking))
	if err != nil {
		return nil, err
	}

	normaliser := output.New()
	retrieval := services.NewRetrievalService(deps.Vectors, deps.Embedder, settings.Organization, settings.Retrieval.TopK)

	composer := services.NewPromptComposer(retrieval, settings.Organization)
	if deps.Prompts != nil {
		composer.SetPromptStore(deps.Prompts)
	}

	a := &App{
		Settings:   settings,
		Config:     deps.Config,
		Retrieval:  retrieval,
		Generation: services.NewGenerationService(composer, deps.LLM, normaliser, settings.LLM.Timeout),
		Drafts:     services.NewDraftService(deps.Drafts),
		Discovery:  services.NewDiscoveryService(settings.Discovery, deps.Opportunities...),
		Normaliser: normaliser,
	}

	if deps.Source != nil {
		docs := grant.New(voice.New(settings.Organization))
		a.Ingest = services.NewIngestService(deps.Source, docs, pipeline, retrieval, deps.Voices)
		if w, ok := deps.Source.(driven.DocumentWatcher); ok {
			a.Watcher = w
		}
	}
	if deps.LLM == nil {
		a.Warnings = append(a.Warnings, "no LLM configured: generated sections will hold placeholders")
	}
	if deps.Embedder == nil {
		a.Warnings = append(a.Warnings, "no embedding service configured: ingest and search are unavailable")
	}

	a.closers = append(a.closers, deps.Vectors.Close)
	return a, nil
}

// Close releases every adapter held by the App.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
