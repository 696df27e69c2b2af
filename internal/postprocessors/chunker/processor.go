// Package chunker provides the section chunking processor.
package chunker

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/custodia-labs/grantcraft-cli/internal/core/domain"
)

// DefaultChunkSize is the default section length threshold in characters.
const DefaultChunkSize = domain.DefaultMaxChunkSize

// DefaultChunkOverlap is the default overlap setting.
const DefaultChunkOverlap = domain.DefaultChunkOverlap

// wordsPerCharacter converts the character threshold into a window size in words.
const wordsPerCharacter = 6

// Processor splits document sections into chunks.
// It implements the PostProcessor interface.
type Processor struct {
	chunkSize int
	overlap   int
}

// Option configures the chunker processor.
type Option func(*Processor)

// WithChunkSize sets the section length threshold in characters.
func WithChunkSize(size int) Option {
	return func(p *Processor) {
		if size > 0 {
			p.chunkSize = size
		}
	}
}

// WithOverlap records the configured overlap. Windows never overlap; the
// value is accepted so configuration round-trips.
func WithOverlap(overlap int) Option {
	return func(p *Processor) {
		if overlap >= 0 {
			p.overlap = overlap
		}
	}
}

// New creates a new chunker processor with the given options.
func New(opts ...Option) *Processor {
	p := &Processor{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultChunkOverlap,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "chunker"
}

// ChunkSize returns the section length threshold.
func (p *Processor) ChunkSize() int {
	return p.chunkSize
}

// Overlap returns the configured overlap.
func (p *Processor) Overlap() int {
	return p.overlap
}

// WindowSize returns the number of words per chunk for long sections.
func (p *Processor) WindowSize() int {
	if w := p.chunkSize / wordsPerCharacter; w > 0 {
		return w
	}
	return 1
}

// Process splits every section of the document into chunks.
// A section no longer than the threshold becomes one chunk tagged "full".
// A longer section is cut into consecutive word windows, each identified by
// the offset of its first word.
// Input chunks are ignored; this processor creates new chunks from the sections.
func (p *Processor) Process(_ context.Context, doc *domain.ParsedDocument, _ []domain.Chunk) ([]domain.Chunk, error) {
	if len(doc.Sections) == 0 {
		return nil, nil
	}

	chunks := make([]domain.Chunk, 0, len(doc.Sections))
	window := p.WindowSize()

	for _, section := range doc.Sections {
		if utf8.RuneCountInString(section.Text) <= p.chunkSize {
			chunks = append(chunks, newChunk(doc, section.Name, domain.FullChunkSuffix, section.Text))
			continue
		}

		words := strings.Fields(section.Text)
		for start := 0; start < len(words); start += window {
			end := start + window
			if end > len(words) {
				end = len(words)
			}
			chunks = append(chunks, newChunk(doc, section.Name, fmt.Sprint(start), strings.Join(words[start:end], " ")))
		}
	}

	return chunks, nil
}

func newChunk(doc *domain.ParsedDocument, section, suffix, text string) domain.Chunk {
	return domain.Chunk{
		Text: text,
		Metadata: domain.ChunkMetadata{
			Source:  doc.ID,
			Format:  doc.Format,
			Section: section,
			ChunkID: fmt.Sprintf("%s_%s_%s", doc.ID, section, suffix),
		},
	}
}
