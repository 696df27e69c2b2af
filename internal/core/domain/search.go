package domain

// DefaultCollection is the identity of the retrieval index.
const DefaultCollection = "grant_documents"

// SearchResult is one retrieved chunk.
type SearchResult struct {
	// Text is the original chunk text.
	Text string `json:"text"`

	// Metadata is the chunk's provenance.
	Metadata ChunkMetadata `json:"metadata"`

	// Score is the similarity score, nil when the backend does not supply one.
	Score *float64 `json:"score"`
}

// IndexHandle describes the current state of the retrieval index.
type IndexHandle struct {
	// Collection is the index identity.
	Collection string `json:"collection"`

	// Count is the number of chunks currently indexed.
	Count int `json:"count"`
}

// IngestReport summarises one ingestion run.
type IngestReport struct {
	// Documents is the number of documents parsed.
	Documents int `json:"documents"`

	// Skipped lists documents that could not be read or decoded.
	Skipped []string `json:"skipped,omitempty"`

	// Chunks is the number of chunks indexed.
	Chunks int `json:"chunks"`

	// Formats counts parsed documents per format tag.
	Formats map[FormatTag]int `json:"formats"`

	// Index is the state of the index after ingestion.
	Index IndexHandle `json:"index"`
}
