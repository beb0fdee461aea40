// Package rules parses the canonical rules document into per-target line
// buckets.
//
// The document is plain line-oriented text. Two in-document markers control
// which targets the surrounding lines belong to:
//
//	::only cursor,windsurf
//	lines here go only to cursor and windsurf
//	::end
//
// Everything outside an ::only/::end pair is shared and ends up in every
// target's output. Scoped regions do not nest: a second ::only replaces the
// active target set instead of stacking on top of it.
package rules
