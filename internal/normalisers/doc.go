// Package normalisers groups the text transformations of the pipeline.
//
//   - grant parses historical documents: format classification, section
//     extraction and cleanup.
//   - voice scans text for an organisation's signal phrases.
//   - output cleans generated text before it is shown or saved.
package normalisers
