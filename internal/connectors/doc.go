// Package connectors holds the driven adapters that supply input to the
// pipeline: historical grant documents from the local filesystem and
// opportunity records from discovery sources (built-in samples, YAML files
// and the grants.gov listing page).
package connectors
