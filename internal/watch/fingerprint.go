package watch

import (
	"fmt"

	"github.com/cockroachdb/errors"

	"github.com/vvka-141/lawcat/internal/checksum"
	"github.com/vvka-141/lawcat/internal/files/filesystem"
	"github.com/vvka-141/lawcat/pkg/lawcat"
)

// Fingerprinter summarises the law files under a root in one digest.
type Fingerprinter struct {
	locator    lawcat.FileLocator
	fsProvider filesystem.FileSystemProvider
	calculator checksum.Calculator
}

// NewFingerprinter creates a fingerprinter. Panics on nil arguments.
func NewFingerprinter(locator lawcat.FileLocator, fsProvider filesystem.FileSystemProvider, calculator checksum.Calculator) *Fingerprinter {
	if locator == nil {
		panic("locator cannot be nil")
	}
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	if calculator == nil {
		panic("calculator cannot be nil")
	}
	return &Fingerprinter{locator: locator, fsProvider: fsProvider, calculator: calculator}
}

// Fingerprint returns a digest of every law file's path, size and mtime.
func (f *Fingerprinter) Fingerprint(root string) (string, error) {
	refs, err := f.locator.Locate(root)
	if err != nil {
		return "", err
	}

	lines := make([]string, 0, len(refs))
	for _, ref := range refs {
		info, err := f.fsProvider.Stat(ref.Path)
		if err != nil {
			return "", errors.Wrapf(err, "stat %s", ref.RelPath)
		}
		lines = append(lines, fmt.Sprintf("%s %d %d", ref.RelPath, info.Size(), info.ModTime().UnixNano()))
	}
	return f.calculator.Fingerprint(lines), nil
}
