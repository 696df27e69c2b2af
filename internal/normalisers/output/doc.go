// Package output cleans text returned by a language model so it reads as
// finished prose: markup delimiters and list markers are removed, runs of
// repeated punctuation are collapsed, spacing around punctuation is
// repaired and the text ends with sentence punctuation.
package output
