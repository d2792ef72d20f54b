package index

import (
	"sort"

	"github.com/vvka-141/lawcat/pkg/lawcat"
)

// Table is an immutable law id → IndexEntry lookup.
type Table struct {
	entries map[string]lawcat.IndexEntry
	ids     []string
}

// NewTable builds a table from entries. Later entries replace earlier ones
// with the same law id.
func NewTable(entries []lawcat.IndexEntry) *Table {
	t := &Table{entries: make(map[string]lawcat.IndexEntry, len(entries))}
	for _, e := range entries {
		t.entries[e.LawID] = e
	}
	t.ids = make([]string, 0, len(t.entries))
	for id := range t.entries {
		t.ids = append(t.ids, id)
	}
	sort.Strings(t.ids)
	return t
}

// Lookup returns the entry for lawID.
func (t *Table) Lookup(lawID string) (lawcat.IndexEntry, bool) {
	e, ok := t.entries[lawID]
	return e, ok
}

// LawIDs returns every law id in the table, sorted. The slice is a copy.
func (t *Table) LawIDs() []string {
	return append([]string(nil), t.ids...)
}

// Len returns the number of entries.
func (t *Table) Len() int {
	return len(t.entries)
}

var _ lawcat.IndexLookup = (*Table)(nil)
