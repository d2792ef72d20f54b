package lawcat

import (
	"context"
	"time"
)

// FileLocator enumerates law documents under a root directory.
type FileLocator interface {
	// Locate returns every law file under root. Files that do not follow the
	// naming convention are skipped silently.
	Locate(root string) ([]LawFileRef, error)
}

// DocumentParser decodes one law document and returns its metadata fields.
// Implementations must be safe for concurrent use.
type DocumentParser interface {
	Parse(content []byte, path string) (DocumentFields, error)
}

// DocumentFields is the subset of a decoded law document the catalog needs.
type DocumentFields struct {
	Title            string
	PromulgationDate string
	LawType          string
	Category         string
	LawNum           string
}

// MetadataExtractor turns one located file into metadata.
type MetadataExtractor interface {
	Extract(ctx context.Context, ref LawFileRef) (*ExtractedMetadata, error)
}

// IndexLookup is a read-only view of the authoritative law list.
type IndexLookup interface {
	Lookup(lawID string) (IndexEntry, bool)
	LawIDs() []string
	Len() int
}

// ErrorClassifier decides whether an error is transient (worth retrying).
type ErrorClassifier interface {
	IsTransient(err error) bool
}

// BackoffStrategy calculates the delay before the next retry attempt.
type BackoffStrategy interface {
	// NextDelay returns the wait before retry number attempt (0 = first retry).
	NextDelay(attempt int) time.Duration

	// MaxAttempts returns the number of retries (0 = none, -1 = unlimited).
	MaxAttempts() int
}
