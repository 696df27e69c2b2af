// Package grant parses historical grant applications.
//
// A document is first classified into one of a closed set of layout
// families by its identifier. Each family maps to one extraction strategy:
//
//   - Structured: a fixed table of prompt questions, each section running
//     from its question to the next numbered item ("2.1") or end of text
//   - Catalyst and Empowerment: every non-blank line is a section
//     (content_0, content_1, ...)
//   - General: every non-blank paragraph is a section named by its
//     position among all paragraphs (section_0, section_2, ...)
//
// All section text is cleaned: whitespace collapsed, numbering prefixes
// and word-limit boilerplate removed.
package grant
