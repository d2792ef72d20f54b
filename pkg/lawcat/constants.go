package lawcat

import "time"

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess        = 0  // Catalog written (skipped files do not change this)
	ExitGeneralError   = 1  // Unknown or unclassified error
	ExitUsageError     = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic          = 3  // Internal panic (unexpected crash)
	ExitConfigError    = 10 // Invalid configuration or index file
	ExitDiscoveryError = 11 // Scan root missing or unreadable
	ExitWriteError     = 12 // Catalog could not be written
	ExitInvariantError = 13 // Internal defect detected during assembly
)

const (
	// DefaultExtractConcurrency bounds the number of documents read and
	// parsed at the same time.
	DefaultExtractConcurrency = 16

	// MaxDocumentSize is the largest law document the extractor will read.
	MaxDocumentSize = 64 << 20

	// DefaultWatchDebounce is the quiet period before watch mode rebuilds.
	DefaultWatchDebounce = 2 * time.Second

	// LawFileExtension is the extension of law documents in the bulk download.
	LawFileExtension = ".xml"
)
