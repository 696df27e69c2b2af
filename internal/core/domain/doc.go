// Package domain defines the core business entities for Grantcraft.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - RawDocument: A historical grant document as loaded from disk
//   - ParsedDocument: Named sections and voice signature extracted from a RawDocument
//   - Chunk: A retrieval-sized unit of section text
//   - OpportunityRecord: A fundable program produced by discovery
//   - Draft: The ordered set of generated sections for one application
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
