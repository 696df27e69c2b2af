package file

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/grantcraft-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/grantcraft-cli/internal/core/ports/driven"
)

// Ensure ConfigStore implements the interface.
var _ driven.ConfigStore = (*ConfigStore)(nil)

// ConfigPathEnv names the environment variable that overrides the config file path.
const ConfigPathEnv = "GRANTCRAFT_CONFIG"

// ConfigStore is a TOML file-backed driven.ConfigStore.
// Values are kept flattened under dotted keys ("storage.path") in the
// embedded memory store and written back as nested tables.
type ConfigStore struct {
	*memory.ConfigStore

	// mu serialises file writes.
	mu       sync.Mutex
	filePath string
}

// NewConfigStore creates a new TOML-based config store.
// location is either a directory (config.toml is placed inside it) or a path
// ending in .toml. If location is empty, GRANTCRAFT_CONFIG is consulted and
// then ~/.grantcraft/config.toml is used.
func NewConfigStore(location string) (*ConfigStore, error) {
	if location == "" {
		location = os.Getenv(ConfigPathEnv)
	}
	if location == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		location = filepath.Join(home, ".grantcraft")
	}

	filePath := filepath.Join(location, "config.toml")
	if strings.EqualFold(filepath.Ext(location), ".toml") {
		filePath = location
	}

	if err := os.MkdirAll(filepath.Dir(filePath), 0700); err != nil {
		return nil, err
	}

	s := &ConfigStore{
		ConfigStore: memory.NewConfigStore(),
		filePath:    filePath,
	}
	if err := s.Load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Set stores a configuration value and persists immediately.
func (s *ConfigStore) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Put(key, value)
	return s.save()
}

// Save persists the current configuration to disk.
func (s *ConfigStore) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save()
}

// save writes configuration to the TOML file (caller must hold mu).
func (s *ConfigStore) save() error {
	data, err := toml.Marshal(nest(s.Snapshot()))
	if err != nil {
		return err
	}

	// Write to a sibling temp file and rename so readers never see a partial file.
	tmp, err := os.CreateTemp(filepath.Dir(s.filePath), ".config-*.toml")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return os.Rename(tmpPath, s.filePath)
}

// Load reads configuration from the TOML file. A missing file is an empty
// configuration.
func (s *ConfigStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.filePath)
	if os.IsNotExist(err) {
		s.Replace(nil)
		return nil
	}
	if err != nil {
		return err
	}

	var loaded map[string]any
	if err := toml.Unmarshal(data, &loaded); err != nil {
		return err
	}
	s.Replace(flatten(loaded, ""))
	return nil
}

// Path returns the configuration file path.
func (s *ConfigStore) Path() string {
	return s.filePath
}

// flatten converts nested tables to dotted keys: {"a": {"b": 1}} becomes {"a.b": 1}.
func flatten(m map[string]any, prefix string) map[string]any {
	out := make(map[string]any)
	for key, value := range m {
		if prefix != "" {
			key = prefix + "." + key
		}
		if nested, ok := value.(map[string]any); ok {
			for k, v := range flatten(nested, key) {
				out[k] = v
			}
			continue
		}
		out[key] = value
	}
	return out
}

// nest is the inverse of flatten. Keys are placed in sorted order, so a key
// whose parent path already holds a plain value stays a literal dotted key.
func nest(flat map[string]any) map[string]any {
	keys := make([]string, 0, len(flat))
	for k := range flat {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(map[string]any)
	for _, key := range keys {
		parts := strings.Split(key, ".")
		table := out
		for _, part := range parts[:len(parts)-1] {
			child, exists := table[part]
			if !exists {
				next := make(map[string]any)
				table[part] = next
				table = next
				continue
			}
			next, ok := child.(map[string]any)
			if !ok {
				table = nil
				break
			}
			table = next
		}
		if table == nil {
			out[key] = flat[key]
			continue
		}
		table[parts[len(parts)-1]] = flat[key]
	}
	return out
}
