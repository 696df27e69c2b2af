// Package postprocessors turns parsed grant documents into retrieval chunks.
//
// A Pipeline runs named processors in order; the first one (the chunker)
// creates chunks from document sections and later ones may rewrite them.
// Processors are built by name from a Registry so the chain can be driven
// by configuration.
package postprocessors

import (
	"context"
	"fmt"

	"github.com/custodia-labs/grantcraft-cli/internal/core/domain"
	"github.com/custodia-labs/grantcraft-cli/internal/core/ports/driven"
	"github.com/custodia-labs/grantcraft-cli/internal/logger"
)

// Ensure Pipeline implements the interface.
var _ driven.PostProcessorPipeline = (*Pipeline)(nil)

// Pipeline runs processors in order over one document.
type Pipeline struct {
	processors []driven.PostProcessor
}

// NewPipeline creates a pipeline of the given processors.
func NewPipeline(processors ...driven.PostProcessor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Process feeds each processor the previous one's chunks, starting from none.
func (p *Pipeline) Process(ctx context.Context, doc *domain.ParsedDocument) ([]domain.Chunk, error) {
	if doc == nil {
		return nil, fmt.Errorf("post-processing: %w", domain.ErrInvalidInput)
	}

	var chunks []domain.Chunk
	for _, proc := range p.processors {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		next, err := proc.Process(ctx, doc, chunks)
		if err != nil {
			return nil, fmt.Errorf("%s on %s: %w", proc.Name(), doc.ID, err)
		}
		logger.Debug("%s: %s produced %d chunks", doc.ID, proc.Name(), len(next))
		chunks = next
	}
	return chunks, nil
}

// Add appends a processor.
func (p *Pipeline) Add(proc driven.PostProcessor) {
	p.processors = append(p.processors, proc)
}

// Names lists the processors in run order.
func (p *Pipeline) Names() []string {
	names := make([]string, len(p.processors))
	for i, proc := range p.processors {
		names[i] = proc.Name()
	}
	return names
}
