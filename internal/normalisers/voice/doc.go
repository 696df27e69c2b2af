// Package voice scans raw grant text for the phrases that carry an
// organisation's voice: mission statements, the communities it serves,
// program names, impact figures and values language.
package voice
