// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - DocumentSource: Supplies historical grant documents
//   - Normaliser: Turns a raw document into named sections and a voice signature
//   - PostProcessor: Cuts parsed documents into chunks
//   - VectorStore: Chunk vector persistence and nearest-neighbour search
//   - EmbeddingService: Generates vector embeddings
//   - LLMService: Generates section text
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - OpportunitySource: Additional discovery sources beyond the built-in samples
//   - VoiceStore: Persisted voice signatures for the voice report
//   - DraftStore: Persisted drafts for later refinement
//   - PromptStore: User-editable prompt templates
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or normaliser package
package driven
