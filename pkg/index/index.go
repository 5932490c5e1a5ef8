// Package index finds node identifiers defined in more than one quest document.
//
// Keys are detected textually, so documents that fail to parse still take part
// in duplicate detection. The index is a read-only query structure: building it
// never fails, and lookups have no outcome besides "no matches".
package index

import (
	"regexp"
	"slices"

	"github.com/matzehuels/questcanvas/pkg/codec"
)

var keyPattern = regexp.MustCompile(`(?m)^(?:"([^"\n]+)"|'([^'\n]+)'|([\p{L}\p{N}_][\p{L}\p{N}_.\-]*))[ \t]*:(?:\s|$)`)

// ExtractKeys returns the unindented top-level keys of a document in order of
// appearance, without repeats. Keys may be single or double quoted. The
// reserved metadata key is never returned.
func ExtractKeys(text string) []string {
	var keys []string
	seen := make(map[string]bool)
	for _, m := range keyPattern.FindAllStringSubmatch(text, -1) {
		key := m[1] + m[2] + m[3]
		if key == codec.ReservedKey || seen[key] {
			continue
		}
		seen[key] = true
		keys = append(keys, key)
	}
	return keys
}

// Source is a named document text.
type Source struct {
	Name string `json:"name"`
	Text string `json:"text"`
}

// Index maps node identifiers to the documents defining them.
type Index struct {
	defs map[string][]string
}

// Build indexes every document except the one named exclude, which is usually
// the document being edited.
func Build(docs []Source, exclude string) *Index {
	ix := &Index{defs: make(map[string][]string)}
	for _, d := range docs {
		if d.Name == exclude {
			continue
		}
		for _, key := range ExtractKeys(d.Text) {
			if !slices.Contains(ix.defs[key], d.Name) {
				ix.defs[key] = append(ix.defs[key], d.Name)
			}
		}
	}
	return ix
}

// CheckDuplicate returns the documents that define id, in input order, or nil
// when no indexed document does.
func (ix *Index) CheckDuplicate(id string) []string {
	return slices.Clone(ix.defs[id])
}

// Len returns the number of distinct identifiers.
func (ix *Index) Len() int { return len(ix.defs) }

// IDs returns every indexed identifier in sorted order.
func (ix *Index) IDs() []string {
	ids := make([]string, 0, len(ix.defs))
	for id := range ix.defs {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Duplicates returns the identifiers defined by more than one indexed document.
func (ix *Index) Duplicates() map[string][]string {
	out := make(map[string][]string)
	for id, names := range ix.defs {
		if len(names) > 1 {
			out[id] = slices.Clone(names)
		}
	}
	return out
}
