package lawcat

import "time"

// LawFileRef identifies one revision file of a law found during discovery.
// Values are immutable once produced by the locator.
type LawFileRef struct {
	// Path is the location handed to the filesystem provider when reading
	Path string

	// RelPath is the slash-separated path relative to the scan root.
	// This is the value recorded in the catalog.
	RelPath string

	// LawID is the e-Gov law identifier taken from the file name
	LawID string

	// RevisionKey orders revisions of one law (ISO date, YYYY-MM-DD)
	RevisionKey string

	// AmendmentID is the identifier of the amending law taken from the file name
	AmendmentID string
}

// ExtractedMetadata is the projection of one successfully parsed law document.
type ExtractedMetadata struct {
	LawID            string
	Title            string
	PromulgationDate string
	LawType          string
	Category         string
	LawNum           string
	Source           LawFileRef
}

// ExtractionResult carries the outcome of extracting a single file.
// Exactly one of Metadata and Err is set.
type ExtractionResult struct {
	Ref      LawFileRef
	Metadata *ExtractedMetadata
	Err      *ExtractionError
}

// OK reports whether the extraction succeeded.
func (r ExtractionResult) OK() bool {
	return r.Err == nil && r.Metadata != nil
}

// RevisionRef is one entry of a law's revision history.
type RevisionRef struct {
	RevisionKey string `json:"revision_key"`
	Path        string `json:"path"`
	AmendmentID string `json:"amendment_law_id,omitempty"`
}

// CanonicalLawRecord is the single current revision chosen for a law id.
//
// CurrentFile is always the path of the revision with the greatest
// RevisionKey; RevisionHistory is strictly ascending by RevisionKey.
type CanonicalLawRecord struct {
	LawID            string
	Title            string
	PromulgationDate string
	LawType          string
	Category         string
	LawNum           string
	CurrentFile      string
	RevisionHistory  []RevisionRef
}

// IndexEntry is one row of the authoritative law list.
type IndexEntry struct {
	LawID            string
	Title            string
	Category         string
	LawNum           string
	PromulgationDate string
}

// ReconciliationFlag describes how a record compared against the index.
type ReconciliationFlag string

const (
	FlagMatched       ReconciliationFlag = "matched"
	FlagIndexMissing  ReconciliationFlag = "index-missing"
	FlagFieldMismatch ReconciliationFlag = "field-mismatch"
	FlagNoIndex       ReconciliationFlag = "no-index"
)

// CatalogEntry is the unit written to the output catalog.
// Field order is part of the output format and must not change.
type CatalogEntry struct {
	LawID              string             `json:"law_id"`
	Title              string             `json:"title"`
	PromulgationDate   string             `json:"promulgation_date"`
	LawType            string             `json:"law_type"`
	Category           string             `json:"category"`
	CurrentFile        string             `json:"current_file"`
	RevisionHistory    []RevisionRef      `json:"revision_history"`
	ReconciliationFlag ReconciliationFlag `json:"reconciliation_flag"`
	LawNum             string             `json:"law_num"`

	// IndexTitle keeps the index's title when it disagrees with the document.
	IndexTitle string `json:"index_title,omitempty"`
}

// NoteKind classifies a reconciliation note.
type NoteKind string

const (
	NoteAllRevisionsFailed   NoteKind = "all-revisions-failed"
	NoteDuplicateRevisionKey NoteKind = "duplicate-revision-key"
	NoteIndexOnly            NoteKind = "index-only"
)

// Note is an informational finding recorded during a run. Notes never fail a run.
type Note struct {
	Kind    NoteKind `json:"kind"`
	LawID   string   `json:"law_id"`
	Path    string   `json:"path,omitempty"`
	Message string   `json:"message"`
}

// Summary reports the outcome of a catalog build.
type Summary struct {
	Discovered int
	Extracted  int
	Skipped    []*ExtractionError
	Cataloged  int
	Flags      map[ReconciliationFlag]int
	Notes      []Note
	OutputPath string
	Digest     string
	Duration   time.Duration
}
