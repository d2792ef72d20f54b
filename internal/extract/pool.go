package extract

import (
	"context"

	"github.com/cockroachdb/errors"
	"golang.org/x/sync/errgroup"

	"github.com/vvka-141/lawcat/pkg/lawcat"
)

// Pool runs a MetadataExtractor over many files with bounded concurrency.
type Pool struct {
	extractor lawcat.MetadataExtractor
	logger    lawcat.Logger
	width     int
}

// PoolOption configures a Pool.
type PoolOption func(*Pool)

// WithConcurrency overrides the number of files extracted at once.
// Values below one are ignored.
func WithConcurrency(n int) PoolOption {
	return func(p *Pool) {
		if n > 0 {
			p.width = n
		}
	}
}

// NewPool creates a pool. Panics if extractor or logger is nil.
func NewPool(extractor lawcat.MetadataExtractor, logger lawcat.Logger, opts ...PoolOption) *Pool {
	if extractor == nil {
		panic("extractor cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	p := &Pool{
		extractor: extractor,
		logger:    logger,
		width:     lawcat.DefaultExtractConcurrency,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run extracts every ref and returns one result per ref, in the order of refs.
//
// Per-file failures are reported in the results. If ctx is cancelled no
// further files are dispatched and ctx.Err() is returned together with the
// results collected so far, also when the cancellation arrived after the
// last file was dispatched.
func (p *Pool) Run(ctx context.Context, refs []lawcat.LawFileRef) ([]lawcat.ExtractionResult, error) {
	type indexed struct {
		idx    int
		result lawcat.ExtractionResult
	}

	out := make(chan indexed, p.width)
	collected := make([]lawcat.ExtractionResult, len(refs))
	filled := make([]bool, len(refs))
	done := make(chan struct{})

	go func() {
		defer close(done)
		for r := range out {
			collected[r.idx] = r.result
			filled[r.idx] = true
		}
	}()

	g := new(errgroup.Group)
	g.SetLimit(p.width)

	var dispatchErr error
	for i, ref := range refs {
		if err := ctx.Err(); err != nil {
			dispatchErr = err
			break
		}
		g.Go(func() error {
			out <- indexed{idx: i, result: p.extractOne(ctx, ref)}
			return nil
		})
	}

	_ = g.Wait()
	close(out)
	<-done

	// Workers that saw the cancellation reported it as a per-file failure;
	// the run as a whole is interrupted.
	if dispatchErr == nil {
		dispatchErr = ctx.Err()
	}
	if dispatchErr != nil {
		partial := make([]lawcat.ExtractionResult, 0, len(refs))
		for i, ok := range filled {
			if ok {
				partial = append(partial, collected[i])
			}
		}
		return partial, dispatchErr
	}
	return collected, nil
}

func (p *Pool) extractOne(ctx context.Context, ref lawcat.LawFileRef) lawcat.ExtractionResult {
	md, err := p.extractor.Extract(ctx, ref)
	if err == nil && md == nil {
		err = errors.New("extractor returned no metadata")
	}
	if err != nil {
		extErr := asExtractionError(ref, err)
		p.logger.Verbose("extraction failed for %s: %v", describe(ref), extErr.Cause)
		return lawcat.ExtractionResult{Ref: ref, Err: extErr}
	}
	p.logger.Verbose("extracted %s", describe(ref))
	return lawcat.ExtractionResult{Ref: ref, Metadata: md}
}
