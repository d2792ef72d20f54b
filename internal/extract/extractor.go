package extract

import (
	"context"
	"fmt"

	"github.com/cockroachdb/errors"

	"github.com/vvka-141/lawcat/internal/files/filesystem"
	"github.com/vvka-141/lawcat/pkg/lawcat"
)

// Extractor implements lawcat.MetadataExtractor.
type Extractor struct {
	fsProvider filesystem.FileSystemProvider
	parser     lawcat.DocumentParser
	maxSize    int64
}

// NewExtractor creates an extractor reading from the OS filesystem.
// Panics if parser is nil.
func NewExtractor(parser lawcat.DocumentParser) *Extractor {
	return NewExtractorWithFS(filesystem.NewOSFileSystem(), parser)
}

// NewExtractorWithFS creates an extractor over a custom filesystem provider.
// Panics if fsProvider or parser is nil.
func NewExtractorWithFS(fsProvider filesystem.FileSystemProvider, parser lawcat.DocumentParser) *Extractor {
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	if parser == nil {
		panic("parser cannot be nil")
	}
	return &Extractor{
		fsProvider: fsProvider,
		parser:     parser,
		maxSize:    lawcat.MaxDocumentSize,
	}
}

// Extract reads and parses one law file. Every failure is returned as a
// *lawcat.ExtractionError carrying the law id and path.
func (e *Extractor) Extract(ctx context.Context, ref lawcat.LawFileRef) (*lawcat.ExtractedMetadata, error) {
	if err := ctx.Err(); err != nil {
		return nil, newExtractionError(ref, err)
	}

	info, err := e.fsProvider.Stat(ref.Path)
	if err != nil {
		return nil, newExtractionError(ref, errors.Wrap(err, "stat failed"))
	}
	if info.Size() > e.maxSize {
		return nil, newExtractionError(ref, errors.Newf(
			"file is %d bytes, larger than the %d byte limit", info.Size(), e.maxSize))
	}

	content, err := e.fsProvider.ReadFile(ref.Path)
	if err != nil {
		return nil, newExtractionError(ref, errors.Wrap(err, "read failed"))
	}

	fields, err := e.parser.Parse(content, ref.RelPath)
	if err != nil {
		return nil, newExtractionError(ref, err)
	}

	return &lawcat.ExtractedMetadata{
		LawID:            ref.LawID,
		Title:            fields.Title,
		PromulgationDate: fields.PromulgationDate,
		LawType:          fields.LawType,
		Category:         fields.Category,
		LawNum:           fields.LawNum,
		Source:           ref,
	}, nil
}

func newExtractionError(ref lawcat.LawFileRef, cause error) *lawcat.ExtractionError {
	return &lawcat.ExtractionError{
		LawID: ref.LawID,
		Path:  ref.RelPath,
		Cause: cause,
	}
}

// asExtractionError normalises an error from any MetadataExtractor.
func asExtractionError(ref lawcat.LawFileRef, err error) *lawcat.ExtractionError {
	var extErr *lawcat.ExtractionError
	if errors.As(err, &extErr) {
		return extErr
	}
	return newExtractionError(ref, err)
}

// describe formats a ref for verbose logs.
func describe(ref lawcat.LawFileRef) string {
	return fmt.Sprintf("%s@%s (%s)", ref.LawID, ref.RevisionKey, ref.RelPath)
}
