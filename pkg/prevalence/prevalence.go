// Package prevalence answers word-prevalence queries against the Brysbaert
// English word-prevalence table.
package prevalence

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Entry is one row of the prevalence table.
type Entry struct {
	Word       string  `json:"word"`
	Prevalence float64 `json:"prevalence"`
	// Optional columns. Zero when the sheet does not carry them.
	PKnown     float64 `json:"pknown,omitempty"`
	Nobs       int     `json:"nobs,omitempty"`
	FreqZipfUS float64 `json:"freq_zipf_us,omitempty"`
}

// Lookuper is anything that can resolve a word to its prevalence.
type Lookuper interface {
	PrevalenceFor(word string) (float64, error)
}

// WordNotFoundError reports a lookup for a word the table does not hold.
type WordNotFoundError struct {
	Word string
}

func (e *WordNotFoundError) Error() string {
	return fmt.Sprintf("word not found: %q", e.Word)
}

// IsWordNotFound reports whether err is, or wraps, a *WordNotFoundError.
func IsWordNotFound(err error) bool {
	var nf *WordNotFoundError
	return errors.As(err, &nf)
}

// Table is an immutable, ordered set of entries.
// Duplicate words are kept; lookups resolve to the first one in source order.
type Table struct {
	entries []Entry
	// index maps a word to the position of its first occurrence.
	index map[string]int
	words map[string]struct{}
}

// NewTable builds a table from entries, lowercasing every word.
func NewTable(entries []Entry) *Table {
	t := &Table{
		entries: make([]Entry, len(entries)),
		index:   make(map[string]int, len(entries)),
		words:   make(map[string]struct{}, len(entries)),
	}
	for i, e := range entries {
		e.Word = strings.ToLower(e.Word)
		t.entries[i] = e
		if _, ok := t.index[e.Word]; !ok {
			t.index[e.Word] = i
		}
		t.words[e.Word] = struct{}{}
	}
	return t
}

// PrevalenceFor returns the prevalence of word. The query is matched exactly
// against the stored lowercase keys; callers normalize casing themselves.
func (t *Table) PrevalenceFor(word string) (float64, error) {
	i, ok := t.index[word]
	if !ok {
		return 0, &WordNotFoundError{Word: word}
	}
	return t.entries[i].Prevalence, nil
}

// Entry returns the first entry stored under word.
func (t *Table) Entry(word string) (Entry, error) {
	i, ok := t.index[word]
	if !ok {
		return Entry{}, &WordNotFoundError{Word: word}
	}
	return t.entries[i], nil
}

// Contains reports whether word is one of the table's keys, with the same
// exact-match semantics as PrevalenceFor.
func (t *Table) Contains(word string) bool {
	_, ok := t.words[word]
	return ok
}

// Words returns the distinct words, sorted.
func (t *Table) Words() []string {
	out := make([]string, 0, len(t.words))
	for w := range t.words {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}

// Entries returns a copy of all rows in source order.
func (t *Table) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Len is the number of rows, duplicates included.
func (t *Table) Len() int { return len(t.entries) }
