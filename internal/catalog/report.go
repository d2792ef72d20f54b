package catalog

import (
	"sort"
	"time"

	"github.com/vvka-141/lawcat/pkg/lawcat"
)

// Report is the optional machine-readable record of one run.
type Report struct {
	RunID       string         `json:"run_id"`
	GeneratedAt time.Time      `json:"generated_at"`
	DurationMS  int64          `json:"duration_ms"`
	Output      string         `json:"output"`
	Digest      string         `json:"sha256"`
	Discovered  int            `json:"discovered"`
	Extracted   int            `json:"extracted"`
	Cataloged   int            `json:"cataloged"`
	Flags       map[string]int `json:"flags"`
	Skipped     []SkippedFile  `json:"skipped"`
	Notes       []lawcat.Note  `json:"notes"`
}

// SkippedFile is one document that could not be extracted.
type SkippedFile struct {
	LawID string `json:"law_id"`
	Path  string `json:"path"`
	Error string `json:"error"`
}

// NewReport builds a report from a run summary. Skipped files are sorted by
// path; slices are never nil so they encode as [].
func NewReport(runID string, generatedAt time.Time, summary lawcat.Summary) Report {
	r := Report{
		RunID:       runID,
		GeneratedAt: generatedAt.UTC(),
		DurationMS:  summary.Duration.Milliseconds(),
		Output:      summary.OutputPath,
		Digest:      summary.Digest,
		Discovered:  summary.Discovered,
		Extracted:   summary.Extracted,
		Cataloged:   summary.Cataloged,
		Flags:       make(map[string]int, len(summary.Flags)),
		Skipped:     make([]SkippedFile, 0, len(summary.Skipped)),
		Notes:       append([]lawcat.Note{}, summary.Notes...),
	}
	for flag, n := range summary.Flags {
		r.Flags[string(flag)] = n
	}
	for _, e := range summary.Skipped {
		r.Skipped = append(r.Skipped, SkippedFile{LawID: e.LawID, Path: e.Path, Error: causeText(e)})
	}
	sort.Slice(r.Skipped, func(i, j int) bool { return r.Skipped[i].Path < r.Skipped[j].Path })
	return r
}

func causeText(e *lawcat.ExtractionError) string {
	if e.Cause == nil {
		return e.Error()
	}
	return e.Cause.Error()
}
