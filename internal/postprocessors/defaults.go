package postprocessors

import (
	"fmt"
	"math"

	"github.com/custodia-labs/grantcraft-cli/internal/core/ports/driven"
	"github.com/custodia-labs/grantcraft-cli/internal/postprocessors/chunker"
)

// ChunkerName is the registry name of the section chunker.
const ChunkerName = "chunker"

// RegisterDefaults registers the built-in processors.
func RegisterDefaults(r *Registry) {
	r.Register(ChunkerName, buildChunker)
}

// buildChunker reads "chunk_size" (characters) and "overlap". Absent keys
// keep the chunker defaults; present keys must be whole numbers.
func buildChunker(cfg map[string]any) (driven.PostProcessor, error) {
	var opts []chunker.Option

	size, ok, err := intSetting(cfg, "chunk_size")
	if err != nil {
		return nil, err
	}
	if ok {
		if size <= 0 {
			return nil, fmt.Errorf("chunk_size must be positive, got %d", size)
		}
		opts = append(opts, chunker.WithChunkSize(size))
	}

	overlap, ok, err := intSetting(cfg, "overlap")
	if err != nil {
		return nil, err
	}
	if ok {
		opts = append(opts, chunker.WithOverlap(overlap))
	}

	return chunker.New(opts...), nil
}

// intSetting accepts the integer shapes TOML and JSON decoding produce.
func intSetting(cfg map[string]any, key string) (int, bool, error) {
	val, ok := cfg[key]
	if !ok {
		return 0, false, nil
	}
	switch v := val.(type) {
	case int:
		return v, true, nil
	case int64:
		return int(v), true, nil
	case float64:
		if v == math.Trunc(v) {
			return int(v), true, nil
		}
	}
	return 0, false, fmt.Errorf("%s must be a whole number, got %v", key, val)
}
