// Package file holds the adapters backed by plain files in the user's
// ~/.grantcraft directory: the TOML ConfigStore and the editable
// PromptStore.
package file
