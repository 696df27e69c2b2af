package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/grantcraft-cli/internal/app"
	"github.com/custodia-labs/grantcraft-cli/internal/core/ports/driving"
)

// settingsRuntime opens real settings in a temp dir and never builds an app.
func settingsRuntime(t *testing.T) Runtime {
	dir := t.TempDir()
	return Runtime{
		Build: func(app.Options) (*app.App, error) {
			t.Fatal("config commands must not build the app")
			return nil, nil
		},
		Settings: func(app.Options) (driving.SettingsService, error) {
			return app.LoadSettings(app.Options{ConfigPath: dir})
		},
	}
}

func TestConfigShow(t *testing.T) {
	out, err := executeCommand(t, settingsRuntime(t), "", "config", "show")
	require.NoError(t, err)

	for _, heading := range []string{"[Documents]", "[Chunking]", "[Retrieval]", "[Embedding]", "[LLM]", "[Organization]", "[Discovery]"} {
		assert.Contains(t, out, heading)
	}
	assert.Contains(t, out, "Name: Cambio Labs")
	assert.Contains(t, out, "Prefixes: DATA, Scaling")
}

func TestConfigSet(t *testing.T) {
	rt := settingsRuntime(t)

	out, err := executeCommand(t, rt, "", "config", "set", "organization.name", "Example Org")
	require.NoError(t, err)
	assert.Contains(t, out, "Set organization.name = Example Org")

	out, err = executeCommand(t, rt, "", "config", "set", "discovery.focus_keywords", "climate, water")
	require.NoError(t, err)

	out, err = executeCommand(t, rt, "", "config")
	require.NoError(t, err)
	assert.Contains(t, out, "Name: Example Org")
	assert.Contains(t, out, "Focus keywords: climate, water")
}

func TestConfigSet_Errors(t *testing.T) {
	rt := settingsRuntime(t)

	_, err := executeCommand(t, rt, "", "config", "set", "no.such.key", "x")
	assert.Error(t, err)

	_, err = executeCommand(t, rt, "", "config", "set", "retrieval.top_k", "many")
	assert.Error(t, err)

	_, err = executeCommand(t, rt, "", "config", "set", "retrieval.top_k")
	assert.Error(t, err)
}

func TestConfigKeys(t *testing.T) {
	out, err := executeCommand(t, settingsRuntime(t), "", "config", "keys")
	require.NoError(t, err)
	assert.Contains(t, out, "documents.dir\n")
	assert.Contains(t, out, "storage.backend\n")
}

func TestParseChoice(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"", 1},
		{"2", 2},
		{"0", 1},
		{"9", 1},
		{"abc", 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseChoice(tt.input, 3, 1), "input %q", tt.input)
	}
}

func TestMaskAPIKey(t *testing.T) {
	assert.Equal(t, "(not set)", maskAPIKey(""))
	assert.Equal(t, "****", maskAPIKey("short"))
	assert.Equal(t, "sk-a...wxyz", maskAPIKey("sk-abcdefghijklmnopqrstuvwxyz"))
}
