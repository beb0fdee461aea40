// Package targets holds the registry of sync targets: the named tools a
// composed rules document is delivered to, and the destination file each one
// reads.
package targets

import (
	"sort"
	"strings"

	"github.com/arthur-debert/rulesync/pkg/errors"
	"github.com/arthur-debert/rulesync/pkg/rules"
)

// Target names one consumer of the composed output and the destination file
// it reads. Dest is kept as supplied; resolution against the project root
// happens at write time.
type Target struct {
	Name string
	Dest string
}

// Registry is the set of configured targets, keyed by name. Iteration via
// Names is deterministic (name-sorted).
type Registry struct {
	targets map[string]Target
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{targets: make(map[string]Target)}
}

// Defaults returns a registry holding the built-in target table
func Defaults() *Registry {
	r := NewRegistry()
	r.Add(Target{Name: "claude", Dest: "CLAUDE.md"})
	r.Add(Target{Name: "codex", Dest: "AGENTS.md"})
	r.Add(Target{Name: "cursor", Dest: ".cursorrules.mdc"})
	r.Add(Target{Name: "windsurf", Dest: ".windsurfrules"})
	return r
}

// Add inserts or replaces a target by name
func (r *Registry) Add(t Target) {
	r.targets[t.Name] = t
}

// Get returns the target with the given name
func (r *Registry) Get(name string) (Target, bool) {
	t, ok := r.targets[name]
	return t, ok
}

// Len returns the number of registered targets
func (r *Registry) Len() int {
	return len(r.targets)
}

// Names returns all target names in sorted order
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.targets))
	for name := range r.targets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns all targets in name-sorted order
func (r *Registry) All() []Target {
	all := make([]Target, 0, len(r.targets))
	for _, name := range r.Names() {
		all = append(all, r.targets[name])
	}
	return all
}

// Filter returns a registry restricted to the given names. An empty name
// list returns the registry unchanged. Unknown names fail with
// TARGET_UNKNOWN listing every name that did not match.
func (r *Registry) Filter(names []string) (*Registry, error) {
	if len(names) == 0 {
		return r, nil
	}

	filtered := NewRegistry()
	var unknown []string
	for _, name := range names {
		t, ok := r.targets[name]
		if !ok {
			unknown = append(unknown, name)
			continue
		}
		filtered.Add(t)
	}

	if len(unknown) > 0 {
		return nil, errors.Newf(errors.ErrTargetUnknown,
			"unknown target(s): %s (known: %s)",
			strings.Join(unknown, ", "), strings.Join(r.Names(), ", ")).
			WithDetail("unknown", unknown)
	}

	return filtered, nil
}

// ParseMapping parses a TOOL:DEST mapping as given on the command line.
// The destination may use a leading ~ for the user's home directory.
func ParseMapping(mapping string) (Target, error) {
	tool, dest, found := strings.Cut(mapping, ":")
	if !found {
		return Target{}, errors.Newf(errors.ErrInvalidInput,
			"mapping %q is not of the form TOOL:DEST", mapping)
	}

	tool = strings.TrimSpace(tool)
	dest = strings.TrimSpace(dest)
	if tool == "" || dest == "" {
		return Target{}, errors.Newf(errors.ErrInvalidInput,
			"mapping %q is not of the form TOOL:DEST", mapping)
	}
	if tool == rules.Shared {
		return Target{}, errors.Newf(errors.ErrTargetInvalid,
			"%s is reserved for shared content and cannot name a target", rules.Shared)
	}

	return Target{Name: tool, Dest: dest}, nil
}

// Build assembles the effective registry: built-in defaults, overridden or
// extended by the config file's targets table, overridden or extended by
// TOOL:DEST mappings from the command line (in that order).
func Build(configured map[string]string, mappings []string) (*Registry, error) {
	r := Defaults()

	for name, dest := range configured {
		if name == rules.Shared {
			return nil, errors.Newf(errors.ErrTargetInvalid,
				"%s is reserved for shared content and cannot name a target", rules.Shared)
		}
		r.Add(Target{Name: name, Dest: dest})
	}

	for _, mapping := range mappings {
		t, err := ParseMapping(mapping)
		if err != nil {
			return nil, err
		}
		r.Add(t)
	}

	return r, nil
}
