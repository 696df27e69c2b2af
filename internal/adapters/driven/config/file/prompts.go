package file

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/custodia-labs/grantcraft-cli/internal/core/domain"
	"github.com/custodia-labs/grantcraft-cli/internal/core/ports/driven"
	"github.com/custodia-labs/grantcraft-cli/internal/logger"
)

// Ensure PromptStore implements the interface.
var _ driven.PromptStore = (*PromptStore)(nil)

// ErrPromptArgs reports a template whose %s count does not match its prompt name.
var ErrPromptArgs = errors.New("prompt has the wrong number of %s placeholders")

// PromptStore reads prompt templates from <dir>/<name>.txt.
//
// On first use the directory is seeded with the built-in templates so users
// have something to edit; existing files are never overwritten. A missing,
// empty or malformed file yields an error and the caller's built-in prompt
// is used instead.
type PromptStore struct {
	dir   string
	seeds map[string]string

	seedOnce sync.Once

	mu    sync.RWMutex
	cache map[string]string
}

// NewPromptStore creates a prompt store over dir, seeding it from seeds.
// An empty dir means ~/.grantcraft/prompts. No I/O happens until Load.
func NewPromptStore(dir string, seeds map[string]string) (*PromptStore, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("locating home directory: %w", err)
		}
		dir = filepath.Join(home, ".grantcraft", "prompts")
	}
	return &PromptStore{
		dir:   dir,
		seeds: seeds,
		cache: make(map[string]string),
	}, nil
}

// Load returns the user's template for name.
func (s *PromptStore) Load(name string) (string, error) {
	s.seedOnce.Do(s.seed)

	s.mu.RLock()
	prompt, ok := s.cache[name]
	s.mu.RUnlock()
	if ok {
		return prompt, nil
	}

	data, err := os.ReadFile(s.path(name))
	if errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("prompt %q: %w", name, domain.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("reading prompt %q: %w", name, err)
	}

	prompt = strings.TrimSpace(string(data))
	if prompt == "" {
		return "", fmt.Errorf("prompt %q is empty: %w", name, domain.ErrNotFound)
	}
	if want, known := driven.PromptArgs[name]; known {
		if got := strings.Count(prompt, "%s"); got != want {
			logger.Warn("Ignoring %s: expected %d %%s placeholders, found %d", s.path(name), want, got)
			return "", fmt.Errorf("prompt %q: %w", name, ErrPromptArgs)
		}
	}

	s.mu.Lock()
	s.cache[name] = prompt
	s.mu.Unlock()
	return prompt, nil
}

// Reload drops cached templates.
func (s *PromptStore) Reload() {
	s.mu.Lock()
	s.cache = make(map[string]string)
	s.mu.Unlock()
}

// Dir returns the prompt directory.
func (s *PromptStore) Dir() string {
	return s.dir
}

func (s *PromptStore) path(name string) string {
	return filepath.Join(s.dir, name+".txt")
}

// seed writes the built-in templates that have no file yet. Failures are
// logged; Load then reports the prompt as missing.
func (s *PromptStore) seed() {
	if len(s.seeds) == 0 {
		return
	}
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		logger.Warn("Cannot create prompt directory %s: %v", s.dir, err)
		return
	}
	for name, content := range s.seeds {
		f, err := os.OpenFile(s.path(name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
		if errors.Is(err, os.ErrExist) {
			continue
		}
		if err != nil {
			logger.Warn("Cannot seed prompt %s: %v", name, err)
			continue
		}
		_, err = f.WriteString(content + "\n")
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			logger.Warn("Cannot seed prompt %s: %v", name, err)
		}
	}
}
