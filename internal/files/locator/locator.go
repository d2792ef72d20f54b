package locator

import (
	"errors"
	"io/fs"
	"iter"
	"regexp"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/vvka-141/lawcat/internal/files/filesystem"
	"github.com/vvka-141/lawcat/pkg/lawcat"
)

// lawFileRegex matches {LawID}_{YYYYMMDD}_{AmendmentLawID}.xml
var lawFileRegex = regexp.MustCompile(`^([0-9A-Za-z]+)_(\d{4})(\d{2})(\d{2})_([0-9A-Za-z]+)\.xml$`)

var errStopWalk = errors.New("walk stopped by consumer")

// Locator discovers law files in a directory tree.
// Locator is safe for concurrent use as long as the provider is.
type Locator struct {
	fsProvider filesystem.FileSystemProvider
	logger     lawcat.Logger
}

// NewLocator creates a locator over the OS filesystem.
// Panics if logger is nil.
func NewLocator(logger lawcat.Logger) *Locator {
	return NewLocatorWithFS(filesystem.NewOSFileSystem(), logger)
}

// NewLocatorWithFS creates a locator over a custom filesystem provider.
// Panics if fsProvider or logger is nil.
func NewLocatorWithFS(fsProvider filesystem.FileSystemProvider, logger lawcat.Logger) *Locator {
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &Locator{fsProvider: fsProvider, logger: logger}
}

// Walk lazily yields every law file under root in lexical path order.
// If the root cannot be opened or the walk fails, a single
// lawcat.DiscoveryError is yielded and the sequence ends.
func (l *Locator) Walk(root string) iter.Seq2[lawcat.LawFileRef, error] {
	return func(yield func(lawcat.LawFileRef, error) bool) {
		dir, err := l.fsProvider.Open(root)
		if err != nil {
			yield(lawcat.LawFileRef{}, lawcat.NewDiscoveryError(root, err))
			return
		}

		err = dir.Walk(func(file filesystem.File, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}

			name := file.Info().Name()
			if file.Info().IsDir() {
				if file.RelativePath() != "." && strings.HasPrefix(name, ".") {
					return fs.SkipDir
				}
				return nil
			}

			ref, ok := refFor(file)
			if !ok {
				l.logger.Verbose("skipping %s: not a law document name", file.RelativePath())
				return nil
			}
			if !yield(ref, nil) {
				return errStopWalk
			}
			return nil
		})

		if err != nil && !errors.Is(err, errStopWalk) {
			yield(lawcat.LawFileRef{}, lawcat.NewDiscoveryError(root, err))
		}
	}
}

// Locate collects Walk into a slice.
func (l *Locator) Locate(root string) ([]lawcat.LawFileRef, error) {
	var refs []lawcat.LawFileRef
	for ref, err := range l.Walk(root) {
		if err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	l.logger.Verbose("located %d law files under %s", len(refs), root)
	return refs, nil
}

func refFor(file filesystem.File) (lawcat.LawFileRef, bool) {
	lawID, revisionKey, amendmentID, ok := ParseFileName(file.Info().Name())
	if !ok {
		return lawcat.LawFileRef{}, false
	}
	return lawcat.LawFileRef{
		Path:        file.Path(),
		RelPath:     file.RelativePath(),
		LawID:       lawID,
		RevisionKey: revisionKey,
		AmendmentID: amendmentID,
	}, true
}

// ParseFileName splits a law document file name into its law id, revision
// key (YYYY-MM-DD) and amending law id. Names that do not follow the
// convention, or carry an impossible calendar date, are rejected.
func ParseFileName(name string) (lawID, revisionKey, amendmentID string, ok bool) {
	m := lawFileRegex.FindStringSubmatch(name)
	if m == nil {
		return "", "", "", false
	}

	date, err := time.Parse("20060102", m[2]+m[3]+m[4])
	if err != nil {
		return "", "", "", false
	}

	return m[1], date.Format(time.DateOnly), m[5], true
}

// GroupByLawID folds refs into per-law buckets. The resolver uses it to
// collect the revisions of each law. The order of refs within a bucket
// follows the input order.
func GroupByLawID(refs []lawcat.LawFileRef) map[string][]lawcat.LawFileRef {
	return lo.GroupBy(refs, func(ref lawcat.LawFileRef) string {
		return ref.LawID
	})
}

var _ lawcat.FileLocator = (*Locator)(nil)
