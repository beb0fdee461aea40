package rules

import "strings"

// Document is an ordered sequence of text lines read from a single source.
// It is immutable once built.
type Document struct {
	source string
	lines  []string
}

// NewDocument builds a Document from raw text. The text is split on "\n",
// one trailing "\r" per line is stripped (CRLF input), and the empty element
// produced by a trailing newline is dropped. Empty text yields zero lines.
func NewDocument(source, text string) *Document {
	if text == "" {
		return &Document{source: source}
	}

	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}

	return &Document{source: source, lines: lines}
}

// NewDocumentFromLines builds a Document from an already-split line sequence.
// The lines are copied so later mutation of the input slice cannot leak in.
func NewDocumentFromLines(source string, lines []string) *Document {
	copied := make([]string, len(lines))
	copy(copied, lines)
	return &Document{source: source, lines: copied}
}

// Source returns the name of the source the document was read from
func (d *Document) Source() string {
	return d.source
}

// Lines returns the document's lines in order. Callers must not modify the
// returned slice.
func (d *Document) Lines() []string {
	return d.lines
}

// Len returns the number of lines in the document
func (d *Document) Len() int {
	return len(d.lines)
}
