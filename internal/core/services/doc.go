// Package services implements the driving ports: ingestion, retrieval,
// prompt composition, section generation, drafts, discovery and settings.
// Services depend only on domain types and driven ports.
package services
