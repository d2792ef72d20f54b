package catalog

import (
	"fmt"
	"sort"

	"github.com/vvka-141/lawcat/pkg/lawcat"
)

// Assemble validates entries against the discovered files and returns them
// sorted by law id in byte order. The input slice is not modified.
func Assemble(entries []lawcat.CatalogEntry, discovered []lawcat.LawFileRef) ([]lawcat.CatalogEntry, error) {
	known := make(map[string]struct{}, len(discovered))
	for _, ref := range discovered {
		known[ref.RelPath] = struct{}{}
	}

	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		if _, dup := seen[e.LawID]; dup {
			return nil, &lawcat.AssemblerInvariantError{LawID: e.LawID, Detail: "law id appears more than once"}
		}
		seen[e.LawID] = struct{}{}

		if _, ok := known[e.CurrentFile]; !ok {
			return nil, &lawcat.AssemblerInvariantError{
				LawID:  e.LawID,
				Detail: fmt.Sprintf("current file %q was not discovered in this run", e.CurrentFile),
			}
		}
	}

	out := make([]lawcat.CatalogEntry, len(entries))
	copy(out, entries)
	sort.Slice(out, func(i, j int) bool { return out[i].LawID < out[j].LawID })
	return out, nil
}
