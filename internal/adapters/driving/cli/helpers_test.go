package cli

import (
	"bytes"
	"context"
	"hash/fnv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/grantcraft-cli/internal/app"
	"github.com/custodia-labs/grantcraft-cli/internal/connectors/filesystem"
	"github.com/custodia-labs/grantcraft-cli/internal/core/domain"
	"github.com/custodia-labs/grantcraft-cli/internal/core/ports/driven"
	"github.com/custodia-labs/grantcraft-cli/internal/core/ports/driving"
)

const testDims = 32

// hashEmbedder maps each word to a bucket so texts sharing words are similar.
type hashEmbedder struct{}

func (hashEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	v := make([]float32, testDims)
	for _, w := range strings.Fields(strings.ToLower(text)) {
		h := fnv.New32a()
		h.Write([]byte(w)) //nolint:errcheck
		v[h.Sum32()%testDims]++
	}
	v[0] += 0.01
	return v, nil
}

func (e hashEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i], _ = e.Embed(ctx, t) //nolint:errcheck
	}
	return out, nil
}

func (hashEmbedder) Dimensions() int              { return testDims }
func (hashEmbedder) ModelName() string            { return "hash" }
func (hashEmbedder) Ping(_ context.Context) error { return nil }
func (hashEmbedder) Close() error                 { return nil }

// cannedLLM answers every chat with the same reply.
type cannedLLM struct {
	reply string
}

func (l cannedLLM) Chat(_ context.Context, _ []driven.ChatMessage, _ driven.ChatOptions) (string, error) {
	return l.reply, nil
}

func (cannedLLM) ModelName() string            { return "canned" }
func (cannedLLM) Ping(_ context.Context) error { return nil }
func (cannedLLM) Close() error                 { return nil }

// newTestApp builds an in-memory app over a temporary documents directory.
func newTestApp(t *testing.T, docs map[string]string) *app.App {
	t.Helper()
	dir := t.TempDir()
	for name, text := range docs {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(text), 0600))
	}

	settings := domain.DefaultAppSettings()
	settings.Documents.Dir = dir
	settings.Storage.Backend = domain.StorageMemory

	config, err := app.LoadSettings(app.Options{ConfigPath: t.TempDir()})
	require.NoError(t, err)

	a, err := app.New(&settings, app.Deps{
		Config:   config,
		Source:   filesystem.New(dir, settings.Documents.Prefixes),
		Embedder: hashEmbedder{},
		LLM:      cannedLLM{reply: "**Journey** helps BIPOC youth.. Outcomes follow"},
	})
	require.NoError(t, err)
	return a
}

func testRuntime(a *app.App) Runtime {
	return Runtime{
		Version: "1.2.3",
		Build: func(app.Options) (*app.App, error) {
			return a, nil
		},
		Settings: func(app.Options) (driving.SettingsService, error) {
			return a.Config, nil
		},
	}
}

// resetFlags restores every flag in the tree to its default.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// executeCommand runs the command tree with args and returns combined output.
func executeCommand(t *testing.T, rt Runtime, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	}()

	err := Execute(context.Background(), rt)
	return buf.String(), err
}

const sampleDocument = `Cambio Labs is dedicated to empowering BIPOC youth and adults through Journey.

Journey has served 500 learners across New York with equitable, inclusive programs.`
