package rules

import (
	"strings"

	"github.com/arthur-debert/rulesync/pkg/errors"
	"github.com/arthur-debert/rulesync/pkg/logging"
)

// Directive markers. Matching is prefix-based at the start of a line; lines
// merely containing these strings elsewhere are ordinary content.
const (
	OpenDirectivePrefix  = "::only "
	CloseDirectivePrefix = "::end"
)

// Shared is the reserved bucket key for lines that belong to every target.
const Shared = "__ALL__"

// Buckets maps an identifier (Shared or a target name from an ::only
// directive) to the ordered lines assigned to it. A target named in any
// ::only directive has an entry even if no lines were ever assigned to it.
type Buckets map[string][]string

// Lines returns the bucket for the given identifier, or nil if the
// identifier never appeared in the document.
func (b Buckets) Lines(identifier string) []string {
	return b[identifier]
}

// Targets returns the target identifiers seen in the document, excluding
// the shared bucket. Order is unspecified.
func (b Buckets) Targets() []string {
	names := make([]string, 0, len(b))
	for name := range b {
		if name != Shared {
			names = append(names, name)
		}
	}
	return names
}

// Parse scans the document once and buckets its lines.
//
// Exactly one tag set is active at any point of the scan. It starts as
// {Shared}, is replaced wholesale by each ::only directive, and reset to
// {Shared} by ::end. Content lines are appended verbatim to every active
// bucket. An ::only directive whose identifier list is empty after trimming
// aborts the parse with MALFORMED_DIRECTIVE; no partial result is returned.
func Parse(doc *Document) (Buckets, error) {
	logger := logging.GetLogger("rules.parser")

	buckets := Buckets{Shared: {}}
	active := []string{Shared}

	for i, line := range doc.Lines() {
		switch {
		case strings.HasPrefix(line, OpenDirectivePrefix):
			targets := splitTargets(strings.TrimPrefix(line, OpenDirectivePrefix))
			if len(targets) == 0 {
				return nil, errors.Newf(errors.ErrMalformedDirective,
					"directive names no targets: %q", line).
					WithDetail("line", line).
					WithDetail("lineNumber", i+1)
			}
			for _, target := range targets {
				if _, ok := buckets[target]; !ok {
					buckets[target] = []string{}
				}
			}
			active = targets

		case strings.HasPrefix(line, CloseDirectivePrefix):
			// Trailing text after ::end is ignored. Closing while already
			// in the shared scope is a no-op.
			active = []string{Shared}

		default:
			for _, tag := range active {
				buckets[tag] = append(buckets[tag], line)
			}
		}
	}

	logger.Debug().
		Str("source", doc.Source()).
		Int("lines", doc.Len()).
		Int("buckets", len(buckets)).
		Msg("Document parsed")

	return buckets, nil
}

// splitTargets splits a comma-separated identifier list, trimming whitespace
// and dropping entries that are empty after trimming.
func splitTargets(list string) []string {
	var targets []string
	for _, piece := range strings.Split(list, ",") {
		piece = strings.TrimSpace(piece)
		if piece != "" {
			targets = append(targets, piece)
		}
	}
	return targets
}
