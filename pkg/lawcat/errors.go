package lawcat

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Sentinel errors for the failure classes of a catalog build.
// Callers distinguish them with errors.Is.
//
// Example usage:
//
//	summary, err := pipeline.Run(ctx, settings, deps)
//	if errors.Is(err, lawcat.ErrWrite) {
//	    // the previous catalog is untouched
//	}
var (
	// ErrUsage indicates a command-line usage error (bad flag or argument).
	ErrUsage = errors.New("usage error")

	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrDiscovery indicates the scan root is missing or unreadable.
	ErrDiscovery = errors.New("discovery failed")

	// ErrExtraction indicates a single document could not be decoded.
	// It is recoverable and never aborts a run on its own.
	ErrExtraction = errors.New("extraction failed")

	// ErrWrite indicates the catalog could not be written.
	ErrWrite = errors.New("write failed")

	// ErrAssemblerInvariant indicates a logic defect detected during assembly.
	ErrAssemblerInvariant = errors.New("assembler invariant violated")
)

// DiscoveryError reports that the scan root could not be enumerated.
type DiscoveryError struct {
	Root  string
	Cause error
}

func (e *DiscoveryError) Error() string {
	return fmt.Sprintf("cannot scan %s: %v", e.Root, e.Cause)
}

func (e *DiscoveryError) Unwrap() error        { return e.Cause }
func (e *DiscoveryError) Is(target error) bool { return target == ErrDiscovery }

// NewDiscoveryError wraps cause with the root path and a hint for the user.
func NewDiscoveryError(root string, cause error) error {
	return errors.WithHint(
		&DiscoveryError{Root: root, Cause: cause},
		"--work must point at an existing, readable directory of law XML files",
	)
}

// ExtractionError reports that one file could not be turned into metadata.
type ExtractionError struct {
	LawID string
	Path  string
	Cause error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract %s (%s): %v", e.Path, e.LawID, e.Cause)
}

func (e *ExtractionError) Unwrap() error        { return e.Cause }
func (e *ExtractionError) Is(target error) bool { return target == ErrExtraction }

// WriteError reports that the catalog could not be persisted.
type WriteError struct {
	Path  string
	Cause error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write %s: %v", e.Path, e.Cause)
}

func (e *WriteError) Unwrap() error        { return e.Cause }
func (e *WriteError) Is(target error) bool { return target == ErrWrite }

// AssemblerInvariantError signals a defect upstream of assembly,
// such as a duplicate law id surviving revision resolution.
type AssemblerInvariantError struct {
	LawID  string
	Detail string
}

func (e *AssemblerInvariantError) Error() string {
	return fmt.Sprintf("assembler invariant violated for %s: %s", e.LawID, e.Detail)
}

func (e *AssemblerInvariantError) Is(target error) bool { return target == ErrAssemblerInvariant }

// ExitCodeForError returns the process exit code for an error.
// Extraction errors are never fatal, so they map to a general error only
// when something returned one directly.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrUsage):
		return ExitUsageError
	case errors.Is(err, ErrInvalidConfig):
		return ExitConfigError
	case errors.Is(err, ErrDiscovery):
		return ExitDiscoveryError
	case errors.Is(err, ErrWrite):
		return ExitWriteError
	case errors.Is(err, ErrAssemblerInvariant):
		return ExitInvariantError
	}

	return ExitGeneralError
}
