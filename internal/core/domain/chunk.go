package domain

// FullChunkSuffix tags the single chunk produced for a section at or below
// the chunk threshold.
const FullChunkSuffix = "full"

// ChunkMetadata records where a chunk came from.
type ChunkMetadata struct {
	// Source is the originating document identifier.
	Source string `json:"source"`

	// Format is the document's format tag.
	Format FormatTag `json:"grant_type"`

	// Section is the section name the chunk was cut from.
	Section string `json:"section"`

	// ChunkID is unique within the originating document.
	ChunkID string `json:"chunk_id"`
}

// Chunk is a retrieval-sized unit of text derived from one section.
type Chunk struct {
	// Text is the chunk content.
	Text string `json:"text"`

	// Metadata carries provenance.
	Metadata ChunkMetadata `json:"metadata"`
}

// ID returns the chunk identifier.
func (c Chunk) ID() string {
	return c.Metadata.ChunkID
}
