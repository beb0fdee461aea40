// Package compose reconstructs per-target output from parsed line buckets.
package compose

import (
	"context"
	"strings"
	"unicode"

	"golang.org/x/sync/errgroup"

	"github.com/arthur-debert/rulesync/pkg/rules"
	"github.com/arthur-debert/rulesync/pkg/targets"
)

// Outputs maps a target name to its final composed text. Every value ends
// in exactly one trailing newline with no other trailing whitespace.
type Outputs map[string]string

// Compose builds the final text for one target: the shared lines followed by
// the target's own lines (none if the target never appeared in an ::only
// directive), joined by newlines, trailing whitespace stripped, and exactly
// one trailing newline appended.
func Compose(buckets rules.Buckets, target string) string {
	shared := buckets.Lines(rules.Shared)
	own := buckets.Lines(target)

	lines := make([]string, 0, len(shared)+len(own))
	lines = append(lines, shared...)
	lines = append(lines, own...)

	text := strings.TrimRightFunc(strings.Join(lines, "\n"), unicode.IsSpace)
	return text + "\n"
}

// ComposeAll composes every target in the registry. Each target is a pure
// function of the buckets and its own name, so the compositions run
// concurrently; results are identical to a sequential pass.
func ComposeAll(ctx context.Context, buckets rules.Buckets, registry *targets.Registry) (Outputs, error) {
	names := registry.Names()
	results := make([]string, len(names))

	g, ctx := errgroup.WithContext(ctx)
	for i, name := range names {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			results[i] = Compose(buckets, name)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	outputs := make(Outputs, len(names))
	for i, name := range names {
		outputs[name] = results[i]
	}
	return outputs, nil
}
