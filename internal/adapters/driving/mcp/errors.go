package mcp

import "errors"

// ErrMissingRetrievalService is returned when the retrieval service is not provided.
var ErrMissingRetrievalService = errors.New("mcp: retrieval service is required")

// errNotConfigured is returned by tools whose backing port was not provided.
var errNotConfigured = errors.New("mcp: tool is not configured")
