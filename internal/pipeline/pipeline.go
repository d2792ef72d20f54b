package pipeline

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/vvka-141/lawcat/internal/catalog"
	"github.com/vvka-141/lawcat/internal/checksum"
	"github.com/vvka-141/lawcat/internal/extract"
	"github.com/vvka-141/lawcat/internal/files/locator"
	"github.com/vvka-141/lawcat/internal/index"
	"github.com/vvka-141/lawcat/internal/lawxml"
	"github.com/vvka-141/lawcat/internal/reconcile"
	"github.com/vvka-141/lawcat/internal/resolve"
	"github.com/vvka-141/lawcat/internal/retry"
	"github.com/vvka-141/lawcat/pkg/lawcat"
)

// Deps are the collaborators of a run.
type Deps struct {
	Locator   lawcat.FileLocator
	Extractor lawcat.MetadataExtractor
	Writer    *catalog.Writer
	Logger    lawcat.Logger

	// RunID identifies the run in logs and in the report.
	RunID string

	// Concurrency overrides lawcat.DefaultExtractConcurrency when positive.
	Concurrency int

	// Now is the clock used for the report timestamp and duration.
	Now func() time.Time
}

// NewDeps wires the production collaborators for cfg: the OS filesystem,
// the law XML parser (strict when cfg.SchemaPath is set) and a SHA-256
// catalog writer. A schema that cannot be loaded is a configuration error.
func NewDeps(cfg lawcat.BuildConfig, logger lawcat.Logger, runID string) (Deps, error) {
	if logger == nil {
		panic("logger cannot be nil")
	}

	var opts []lawxml.Option
	if cfg.SchemaPath != "" {
		schema, err := lawxml.LoadSchema(cfg.SchemaPath)
		if err != nil {
			return Deps{}, errors.WithHint(
				errors.Wrapf(lawcat.ErrInvalidConfig, "%v", err),
				"--schema must name a readable XSD file",
			)
		}
		opts = append(opts, lawxml.WithSchema(schema))
		logger.Verbose("strict mode: validating documents against %s", cfg.SchemaPath)
	}

	return Deps{
		Locator:   locator.NewLocator(logger),
		Extractor: extract.NewExtractor(lawxml.NewParser(opts...)),
		Writer:    catalog.NewWriter(checksum.New(), catalog.WithReplaceRetry(replaceRetry(logger))),
		Logger:    logger,
		RunID:     runID,
		Now:       time.Now,
	}, nil
}

// replaceRetry retries renames over a destination another process holds open.
func replaceRetry(logger lawcat.Logger) *retry.Executor {
	return retry.NewExecutor(retry.NewFileBusyClassifier(), retry.NewExponentialBackoff(3)).
		WithOnRetry(func(attempt int, err error, delay time.Duration) {
			logger.Warn("destination busy (%v); retry %d in %s", err, attempt+1, delay.Round(time.Millisecond))
		})
}

// Run builds the catalog described by cfg. The returned summary is valid
// only when err is nil.
func Run(ctx context.Context, cfg lawcat.BuildConfig, deps Deps) (lawcat.Summary, error) {
	if err := cfg.Validate(); err != nil {
		return lawcat.Summary{}, err
	}
	if deps.Locator == nil || deps.Extractor == nil || deps.Writer == nil || deps.Logger == nil {
		panic("pipeline: incomplete dependencies")
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	logger := deps.Logger
	start := now()

	table, err := loadIndex(cfg, logger)
	if err != nil {
		return lawcat.Summary{}, err
	}

	refs, err := deps.Locator.Locate(cfg.WorkDir)
	if err != nil {
		return lawcat.Summary{}, err
	}
	logger.Info("discovered %d law files under %s", len(refs), cfg.WorkDir)

	var poolOpts []extract.PoolOption
	if deps.Concurrency > 0 {
		poolOpts = append(poolOpts, extract.WithConcurrency(deps.Concurrency))
	}
	results, err := extract.NewPool(deps.Extractor, logger, poolOpts...).Run(ctx, refs)
	if err != nil {
		return lawcat.Summary{}, errors.Wrap(err, "extraction interrupted")
	}

	summary := lawcat.Summary{
		Discovered: len(refs),
		Flags:      make(map[lawcat.ReconciliationFlag]int),
		OutputPath: cfg.OutputPath,
	}
	for _, r := range results {
		if r.OK() {
			summary.Extracted++
			continue
		}
		summary.Skipped = append(summary.Skipped, r.Err)
		logger.Warn("skipping %s: %v", r.Err.Path, r.Err.Cause)
	}

	resolved := resolve.Resolve(results)

	var lookup lawcat.IndexLookup
	if table != nil {
		lookup = table
	}
	reconciled := reconcile.Reconcile(resolved.Records, lookup)

	entries, err := catalog.Assemble(reconciled.Entries, refs)
	if err != nil {
		return lawcat.Summary{}, err
	}

	digest, err := deps.Writer.WriteCatalog(ctx, cfg.OutputPath, entries)
	if err != nil {
		return lawcat.Summary{}, err
	}

	summary.Cataloged = len(entries)
	summary.Digest = digest
	summary.Notes = append(resolved.Notes, reconciled.Notes...)
	for _, e := range entries {
		summary.Flags[e.ReconciliationFlag]++
	}
	for _, n := range summary.Notes {
		logger.Verbose("note [%s] %s: %s", n.Kind, n.LawID, n.Message)
	}
	summary.Duration = now().Sub(start)

	if cfg.ReportPath != "" {
		report := catalog.NewReport(deps.RunID, now(), summary)
		if err := deps.Writer.WriteReport(ctx, cfg.ReportPath, report); err != nil {
			return lawcat.Summary{}, err
		}
		logger.Verbose("report written to %s", cfg.ReportPath)
	}

	logger.Info("wrote %d laws to %s (%d skipped)", summary.Cataloged, cfg.OutputPath, len(summary.Skipped))
	return summary, nil
}

func loadIndex(cfg lawcat.BuildConfig, logger lawcat.Logger) (*index.Table, error) {
	if cfg.IndexPath == "" {
		logger.Verbose("no index configured; every law is flagged %s", lawcat.FlagNoIndex)
		return nil, nil
	}
	return index.LoadFile(cfg.IndexPath, cfg.IndexEncoding, logger)
}
