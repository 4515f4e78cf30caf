// Package references manages the ordered set of reference translations the
// user has typed or imported.
package references

import (
	"fmt"
	"strings"

	"github.com/f3rmion/smt/internal/apperrors"
)

// EmptyFileMessage is shown when an imported file has no usable lines.
const EmptyFileMessage = "The uploaded file is empty."

// Set is an ordered list of editable reference entries. Blank entries are
// kept until edited and are only dropped by Collect.
type Set struct {
	entries []string
}

// NewSet returns a set with one blank entry, the initial form state.
func NewSet() *Set {
	return &Set{entries: []string{""}}
}

// FromEntries returns a set holding entries, or one blank entry when
// entries is empty.
func FromEntries(entries []string) *Set {
	if len(entries) == 0 {
		return NewSet()
	}
	out := make([]string, len(entries))
	copy(out, entries)
	return &Set{entries: out}
}

// Len returns the number of entries, blank ones included.
func (s *Set) Len() int {
	return len(s.entries)
}

// Entries returns a copy of the raw entries.
func (s *Set) Entries() []string {
	out := make([]string, len(s.entries))
	copy(out, s.entries)
	return out
}

// Label returns the caption for entry i.
func Label(i int) string {
	return fmt.Sprintf("Reference %d", i+1)
}

// Labels returns the captions for all entries.
func (s *Set) Labels() []string {
	labels := make([]string, len(s.entries))
	for i := range s.entries {
		labels[i] = Label(i)
	}
	return labels
}

// AddBlank appends an empty entry and returns its index.
func (s *Set) AddBlank() int {
	s.entries = append(s.entries, "")
	return len(s.entries) - 1
}

// Update replaces the text of entry i. Out of range indexes are ignored.
func (s *Set) Update(i int, text string) {
	if i < 0 || i >= len(s.entries) {
		return
	}
	s.entries[i] = text
}

// LoadFromFile replaces the whole set with one entry per non-blank line of
// contents. When no line survives the set is left untouched.
func (s *Set) LoadFromFile(contents string) (int, error) {
	lines := ParseLines(contents)
	if len(lines) == 0 {
		return 0, apperrors.EmptyInput(EmptyFileMessage)
	}
	s.entries = lines
	return len(lines), nil
}

// Collect returns the trimmed non-blank entries in order.
func (s *Set) Collect() []string {
	out := make([]string, 0, len(s.entries))
	for _, e := range s.entries {
		if text := strings.TrimSpace(e); text != "" {
			out = append(out, text)
		}
	}
	return out
}

// ParseLines splits contents on newlines and returns the trimmed lines that
// are not blank.
func ParseLines(contents string) []string {
	var lines []string
	for _, line := range strings.Split(contents, "\n") {
		if text := strings.TrimSpace(line); text != "" {
			lines = append(lines, text)
		}
	}
	return lines
}
