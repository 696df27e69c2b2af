// Package driving declares what the CLI, MCP server and TUI call into:
// ingestion, retrieval, discovery, generation, drafts and settings.
// internal/core/services implements every interface here.
package driving
