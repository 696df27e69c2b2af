package file

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/grantcraft-cli/internal/core/domain"
	"github.com/custodia-labs/grantcraft-cli/internal/core/ports/driven"
)

var testSeeds = map[string]string{
	driven.PromptGenerationSystem: "You write grants for %s.",
	driven.PromptRefineSystem:     "Refine the %s section for %s.",
}

func writePrompt(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name+".txt"), []byte(content), 0600))
}

func TestNewPromptStore_DefaultDir(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	store, err := NewPromptStore("", nil)

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".grantcraft", "prompts"), store.Dir())
}

func TestNewPromptStore_NoIO(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "prompts")

	_, err := NewPromptStore(dir, testSeeds)

	require.NoError(t, err)
	_, statErr := os.Stat(dir)
	assert.True(t, os.IsNotExist(statErr))
}

func TestPromptStore_SeedsOnFirstLoad(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "prompts")
	store, err := NewPromptStore(dir, testSeeds)
	require.NoError(t, err)

	prompt, err := store.Load(driven.PromptGenerationSystem)

	require.NoError(t, err)
	assert.Equal(t, "You write grants for %s.", prompt)
	for name := range testSeeds {
		_, err := os.Stat(filepath.Join(dir, name+".txt"))
		assert.NoError(t, err, name)
	}
}

func TestPromptStore_KeepsUserEdits(t *testing.T) {
	dir := t.TempDir()
	writePrompt(t, dir, driven.PromptRefineSystem, "  Rework the %s part for %s, kindly.\n\n")
	store, err := NewPromptStore(dir, testSeeds)
	require.NoError(t, err)

	prompt, err := store.Load(driven.PromptRefineSystem)

	require.NoError(t, err)
	assert.Equal(t, "Rework the %s part for %s, kindly.", prompt)
}

func TestPromptStore_LoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		prompt  string
		wantErr error
	}{
		{"missing file", "", "unknown_prompt", domain.ErrNotFound},
		{"empty file", "   \n", driven.PromptGenerationSystem, domain.ErrNotFound},
		{"too few placeholders", "Refine for %s.", driven.PromptRefineSystem, ErrPromptArgs},
		{"too many placeholders", "%s writes for %s.", driven.PromptGenerationSystem, ErrPromptArgs},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			if tt.content != "" {
				writePrompt(t, dir, tt.prompt, tt.content)
			}
			store, err := NewPromptStore(dir, nil)
			require.NoError(t, err)

			_, err = store.Load(tt.prompt)

			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestPromptStore_CachesUntilReload(t *testing.T) {
	dir := t.TempDir()
	writePrompt(t, dir, driven.PromptGenerationSystem, "First for %s.")
	store, err := NewPromptStore(dir, nil)
	require.NoError(t, err)

	first, err := store.Load(driven.PromptGenerationSystem)
	require.NoError(t, err)

	writePrompt(t, dir, driven.PromptGenerationSystem, "Second for %s.")
	cached, err := store.Load(driven.PromptGenerationSystem)
	require.NoError(t, err)
	assert.Equal(t, first, cached)

	store.Reload()
	fresh, err := store.Load(driven.PromptGenerationSystem)
	require.NoError(t, err)
	assert.Equal(t, "Second for %s.", fresh)
}

func TestPromptStore_ConcurrentLoad(t *testing.T) {
	store, err := NewPromptStore(t.TempDir(), testSeeds)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%5 == 0 {
				store.Reload()
			}
			prompt, err := store.Load(driven.PromptRefineSystem)
			assert.NoError(t, err)
			assert.Equal(t, "Refine the %s section for %s.", prompt)
		}(i)
	}
	wg.Wait()
}
