// Package reconcile compares canonical law records against the law index
// and flags each record with the outcome.
package reconcile

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/vvka-141/lawcat/pkg/lawcat"
)

// Result is the outcome of Reconcile.
type Result struct {
	// Entries are in the same order as the input records.
	Entries []lawcat.CatalogEntry

	// Notes lists index law ids that matched no record, sorted by law id.
	Notes []lawcat.Note
}

// Reconcile flags every record. A nil index flags everything no-index and
// produces no notes. Reconcile never fails.
func Reconcile(records []lawcat.CanonicalLawRecord, index lawcat.IndexLookup) Result {
	out := Result{Entries: make([]lawcat.CatalogEntry, 0, len(records))}

	if index == nil {
		for _, rec := range records {
			out.Entries = append(out.Entries, entryFor(rec, lawcat.FlagNoIndex, ""))
		}
		return out
	}

	seen := make(map[string]struct{}, len(records))
	for _, rec := range records {
		seen[rec.LawID] = struct{}{}

		idx, ok := index.Lookup(rec.LawID)
		switch {
		case !ok:
			out.Entries = append(out.Entries, entryFor(rec, lawcat.FlagIndexMissing, ""))
		case Matches(rec, idx):
			out.Entries = append(out.Entries, entryFor(rec, lawcat.FlagMatched, ""))
		default:
			out.Entries = append(out.Entries, entryFor(rec, lawcat.FlagFieldMismatch, idx.Title))
		}
	}

	for _, lawID := range index.LawIDs() {
		if _, ok := seen[lawID]; ok {
			continue
		}
		idx, _ := index.Lookup(lawID)
		out.Notes = append(out.Notes, lawcat.Note{
			Kind:    lawcat.NoteIndexOnly,
			LawID:   lawID,
			Message: fmt.Sprintf("listed in the index (%s) but no document was cataloged", idx.Title),
		})
	}
	return out
}

// Matches reports whether a record agrees with its index entry. Titles are
// compared after NFKC normalisation and whitespace folding; the category is
// compared only when the index carries one.
func Matches(rec lawcat.CanonicalLawRecord, idx lawcat.IndexEntry) bool {
	if normalize(rec.Title) != normalize(idx.Title) {
		return false
	}
	if idx.Category != "" && normalize(rec.Category) != normalize(idx.Category) {
		return false
	}
	return true
}

// normalize maps full-width and compatibility forms to their canonical
// equivalents and removes all whitespace, including U+3000.
func normalize(s string) string {
	return strings.Join(strings.Fields(norm.NFKC.String(s)), "")
}

func entryFor(rec lawcat.CanonicalLawRecord, flag lawcat.ReconciliationFlag, indexTitle string) lawcat.CatalogEntry {
	history := rec.RevisionHistory
	if history == nil {
		history = []lawcat.RevisionRef{}
	}
	return lawcat.CatalogEntry{
		LawID:              rec.LawID,
		Title:              rec.Title,
		PromulgationDate:   rec.PromulgationDate,
		LawType:            rec.LawType,
		Category:           rec.Category,
		CurrentFile:        rec.CurrentFile,
		RevisionHistory:    history,
		ReconciliationFlag: flag,
		LawNum:             rec.LawNum,
		IndexTitle:         indexTitle,
	}
}
