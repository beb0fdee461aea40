package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arthur-debert/rulesync/pkg/rules"
)

func TestNewDocument(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "empty_text_yields_zero_lines",
			text: "",
			want: nil,
		},
		{
			name: "trailing_newline_dropped",
			text: "A\nB\n",
			want: []string{"A", "B"},
		},
		{
			name: "no_trailing_newline",
			text: "A\nB",
			want: []string{"A", "B"},
		},
		{
			name: "crlf_normalized",
			text: "A\r\nB\r\n",
			want: []string{"A", "B"},
		},
		{
			name: "blank_lines_kept",
			text: "A\n\nB\n",
			want: []string{"A", "", "B"},
		},
		{
			name: "trailing_blank_line_kept",
			text: "A\n\n",
			want: []string{"A", ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := rules.NewDocument("test.md", tt.text)
			assert.Equal(t, tt.want, doc.Lines())
			assert.Equal(t, len(tt.want), doc.Len())
			assert.Equal(t, "test.md", doc.Source())
		})
	}
}

func TestNewDocumentFromLinesCopies(t *testing.T) {
	lines := []string{"A", "B"}
	doc := rules.NewDocumentFromLines("test.md", lines)

	lines[0] = "mutated"
	assert.Equal(t, []string{"A", "B"}, doc.Lines())
}
