// Package filesystem supplies historical grant documents from a local directory.
//
// Only top-level *.txt files whose names start with a whitelisted prefix are
// listed. Text is decoded as UTF-8, falling back to Windows-1252 for files
// saved by older word processors.
package filesystem
