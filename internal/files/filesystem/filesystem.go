package filesystem

import (
	"io/fs"
)

// FileInfo is an alias for fs.FileInfo from the standard library.
type FileInfo = fs.FileInfo

// File represents an entry discovered while walking a Directory.
type File interface {
	// Path returns the path to pass back to FileSystemProvider.ReadFile
	Path() string

	// RelativePath returns the slash-separated path relative to the walk root
	RelativePath() string

	// Info returns file metadata
	Info() FileInfo
}

// Directory represents a scan root that can be traversed.
type Directory interface {
	// Path returns the absolute path to the directory
	Path() string

	// Walk visits every entry under the directory in lexical order.
	// Returning fs.SkipDir from fn for a directory skips its contents;
	// any other error stops the walk and is returned.
	Walk(fn func(File, error) error) error
}

// FileSystemProvider opens directories and reads files.
// Implementations must be safe for concurrent use by multiple goroutines.
type FileSystemProvider interface {
	// Open opens a directory for walking. It fails when the path does not
	// exist, is not a directory, or cannot be listed.
	Open(path string) (Directory, error)

	// ReadFile reads a file at the given path.
	// Missing files produce an error matching fs.ErrNotExist.
	ReadFile(path string) ([]byte, error)

	// Stat returns file information for the given path
	Stat(path string) (FileInfo, error)
}
