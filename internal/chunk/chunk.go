// Package chunk splits a test file into independently verifiable snippets.
// A chunk is delimited by "//!START_CHUNK: <name>" and "//!END_CHUNK" marker
// lines; text outside markers is ignored.
package chunk

import "strings"

const (
	startMarker = "//!START_CHUNK:"
	endMarker   = "//!END_CHUNK"
)

// Chunk is one named snippet of S-Java source lines.
type Chunk struct {
	Name  string
	Lines []string
}

// Split extracts the chunks of a marker-delimited file, in order. An
// unterminated chunk at end of input is kept.
func Split(lines []string) []Chunk {
	var chunks []Chunk
	var current *Chunk

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, startMarker):
			if current != nil {
				chunks = append(chunks, *current)
			}
			name := strings.TrimSpace(strings.TrimPrefix(trimmed, startMarker))
			current = &Chunk{Name: name}
		case trimmed == endMarker:
			if current != nil {
				chunks = append(chunks, *current)
				current = nil
			}
		default:
			if current != nil {
				current.Lines = append(current.Lines, line)
			}
		}
	}

	if current != nil {
		chunks = append(chunks, *current)
	}
	return chunks
}
