package driven

// ConfigStore holds configuration values under dotted keys such as
// "llm.model". The typed getters return the zero value for a missing key or
// a value that cannot be coerced.
type ConfigStore interface {
	Get(key string) (any, bool)
	GetString(key string) string

	// GetInt also accepts int64 and whole float64 values, the shapes TOML
	// and JSON decoding produce, and numeric strings.
	GetInt(key string) int

	// GetBool also accepts strings strconv.ParseBool understands.
	GetBool(key string) bool

	GetStringSlice(key string) []string

	// Set stores a value; persistent stores write it through immediately.
	Set(key string, value any) error

	// Save writes every value to the backing storage.
	Save() error

	// Load replaces the values with those in the backing storage.
	Load() error

	// Path names the backing storage.
	Path() string
}
