// Package lookup provides ordered, bidirectional index/string tables used to
// translate enumerable board categories (inputs, switches, trims, special and
// cyclic sources) to and from their persisted spellings.
package lookup

import (
	"errors"
	"fmt"
)

// ErrDuplicateTag is returned when a table is built with two entries sharing a tag.
var ErrDuplicateTag = errors.New("duplicate tag")

// Kind selects which alias of an entry a lookup matches or returns.
type Kind int

const (
	// ByTag uses the primary, stable tag.
	ByTag Kind = iota
	// ByName uses the secondary display name.
	ByName
)

// Entry is a single table row. Name is optional.
type Entry struct {
	Index int
	Tag   string
	Name  string
}

// Table maps integer indices to tags and names. A Table is immutable once
// built and safe for concurrent use.
type Table struct {
	entries []Entry
	byIndex map[int]int
	byTag   map[string]int
	byName  map[string]int
}

// New builds a table from entries, preserving their order. Tags must be
// unique; names are only indexed when present and the first occurrence wins.
func New(entries ...Entry) (*Table, error) {
	t := &Table{
		entries: make([]Entry, 0, len(entries)),
		byIndex: make(map[int]int, len(entries)),
		byTag:   make(map[string]int, len(entries)),
		byName:  make(map[string]int, len(entries)),
	}

	for _, e := range entries {
		if e.Tag == "" {
			return nil, fmt.Errorf("entry %d has an empty tag", e.Index)
		}
		if _, exists := t.byTag[e.Tag]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateTag, e.Tag)
		}
		if _, exists := t.byIndex[e.Index]; exists {
			return nil, fmt.Errorf("duplicate index %d (tag %s)", e.Index, e.Tag)
		}

		pos := len(t.entries)
		t.entries = append(t.entries, e)
		t.byIndex[e.Index] = pos
		t.byTag[e.Tag] = pos
		if e.Name != "" {
			if _, exists := t.byName[e.Name]; !exists {
				t.byName[e.Name] = pos
			}
		}
	}

	return t, nil
}

// MustNew is like New but panics on a construction defect. It is meant for
// package-level fixed tables.
func MustNew(entries ...Entry) *Table {
	t, err := New(entries...)
	if err != nil {
		panic(fmt.Sprintf("lookup: %v", err))
	}
	return t
}

// FromTags builds a table whose indices are the positions of tags.
func FromTags(tags ...string) (*Table, error) {
	entries := make([]Entry, len(tags))
	for i, tag := range tags {
		entries[i] = Entry{Index: i, Tag: tag}
	}
	return New(entries...)
}

// IndexOf returns the index whose tag (or name) exactly equals text.
func (t *Table) IndexOf(text string, kind Kind) (int, bool) {
	if t == nil {
		return -1, false
	}
	m := t.byTag
	if kind == ByName {
		m = t.byName
	}
	pos, ok := m[text]
	if !ok {
		return -1, false
	}
	return t.entries[pos].Index, true
}

// TextOf returns the tag (or name) stored for index.
func (t *Table) TextOf(index int, kind Kind) (string, bool) {
	if t == nil {
		return "", false
	}
	pos, ok := t.byIndex[index]
	if !ok {
		return "", false
	}
	e := t.entries[pos]
	if kind == ByName {
		return e.Name, e.Name != ""
	}
	return e.Tag, true
}

// Len returns the number of entries.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

// Entries returns a copy of the entries in construction order.
func (t *Table) Entries() []Entry {
	if t == nil {
		return nil
	}
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}
