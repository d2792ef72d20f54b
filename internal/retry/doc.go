// Package retry re-runs operations that fail with transient errors,
// waiting with exponential backoff between attempts.
//
// lawcat uses it for the final rename of an atomic write: on some
// platforms replacing a file fails briefly while another process (an
// editor, an indexer, a virus scanner) still holds the old catalog open.
//
//	executor := retry.NewExecutor(retry.NewFileBusyClassifier(), retry.NewExponentialBackoff(3))
//	err := executor.Execute(ctx, func(ctx context.Context) error {
//	    return os.Rename(tmp, dest)
//	})
package retry
