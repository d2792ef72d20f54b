package resolve

import (
	"fmt"
	"slices"
	"sort"

	"github.com/samber/lo"

	"github.com/vvka-141/lawcat/internal/files/locator"
	"github.com/vvka-141/lawcat/pkg/lawcat"
)

// Result is the outcome of Resolve.
type Result struct {
	// Records are sorted by law id.
	Records []lawcat.CanonicalLawRecord

	// Notes are sorted by law id, then path.
	Notes []lawcat.Note
}

// Resolve builds canonical records from extraction results. It is pure:
// the output depends only on the set of inputs, not their order.
func Resolve(results []lawcat.ExtractionResult) Result {
	ok := lo.Filter(results, func(r lawcat.ExtractionResult, _ int) bool { return r.OK() })
	failed := lo.Filter(results, func(r lawcat.ExtractionResult, _ int) bool { return !r.OK() })

	// Source paths are unique per run, so they key metadata back to refs.
	byPath := lo.KeyBy(ok, func(r lawcat.ExtractionResult) string { return r.Metadata.Source.Path })
	byLaw := locator.GroupByLawID(lo.Map(ok, func(r lawcat.ExtractionResult, _ int) lawcat.LawFileRef {
		return r.Metadata.Source
	}))

	var out Result
	for _, lawID := range sortedKeys(byLaw) {
		revisions := lo.Map(byLaw[lawID], func(ref lawcat.LawFileRef, _ int) *lawcat.ExtractedMetadata {
			return byPath[ref.Path].Metadata
		})
		record, notes := resolveLaw(lawID, revisions)
		out.Records = append(out.Records, record)
		out.Notes = append(out.Notes, notes...)
	}

	failedIDs := lo.Uniq(lo.Map(failed, func(r lawcat.ExtractionResult, _ int) string { return lawIDOf(r) }))
	for _, lawID := range failedIDs {
		if _, ok := byLaw[lawID]; ok {
			continue
		}
		out.Notes = append(out.Notes, lawcat.Note{
			Kind:    lawcat.NoteAllRevisionsFailed,
			LawID:   lawID,
			Message: "no revision could be extracted; law omitted from catalog",
		})
	}

	sort.SliceStable(out.Notes, func(i, j int) bool {
		if out.Notes[i].LawID != out.Notes[j].LawID {
			return out.Notes[i].LawID < out.Notes[j].LawID
		}
		return out.Notes[i].Path < out.Notes[j].Path
	})
	return out
}

func resolveLaw(lawID string, revisions []*lawcat.ExtractedMetadata) (lawcat.CanonicalLawRecord, []lawcat.Note) {
	sorted := slices.Clone(revisions)
	sort.Slice(sorted, func(i, j int) bool {
		a, b := sorted[i].Source, sorted[j].Source
		if a.RevisionKey != b.RevisionKey {
			return a.RevisionKey < b.RevisionKey
		}
		return a.RelPath < b.RelPath
	})

	var (
		history []lawcat.RevisionRef
		notes   []lawcat.Note
	)
	for i, md := range sorted {
		// Equal keys sort by path, so only the last of a run is kept.
		if i+1 < len(sorted) && sorted[i+1].Source.RevisionKey == md.Source.RevisionKey {
			notes = append(notes, lawcat.Note{
				Kind:  lawcat.NoteDuplicateRevisionKey,
				LawID: lawID,
				Path:  md.Source.RelPath,
				Message: fmt.Sprintf("revision %s also provided by %s; dropped",
					md.Source.RevisionKey, sorted[i+1].Source.RelPath),
			})
			continue
		}
		history = append(history, lawcat.RevisionRef{
			RevisionKey: md.Source.RevisionKey,
			Path:        md.Source.RelPath,
			AmendmentID: md.Source.AmendmentID,
		})
	}

	current := sorted[len(sorted)-1]
	return lawcat.CanonicalLawRecord{
		LawID:            lawID,
		Title:            current.Title,
		PromulgationDate: current.PromulgationDate,
		LawType:          current.LawType,
		Category:         current.Category,
		LawNum:           current.LawNum,
		CurrentFile:      current.Source.RelPath,
		RevisionHistory:  history,
	}, notes
}

func lawIDOf(r lawcat.ExtractionResult) string {
	if r.Err != nil && r.Err.LawID != "" {
		return r.Err.LawID
	}
	return r.Ref.LawID
}

func sortedKeys[V any](m map[string]V) []string {
	keys := lo.Keys(m)
	sort.Strings(keys)
	return keys
}
