package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"

	"github.com/vvka-141/lawcat/internal/checksum"
	"github.com/vvka-141/lawcat/internal/retry"
	"github.com/vvka-141/lawcat/pkg/lawcat"
)

const filePerm os.FileMode = 0o644

// replaceRetries is how often a busy destination is retried before the
// write fails.
const replaceRetries = 3

// Writer persists catalogs and run reports.
type Writer struct {
	calculator checksum.Calculator
	replacer   *retry.Executor
}

// WriterOption configures a Writer.
type WriterOption func(*Writer)

// WithReplaceRetry sets the executor that retries the final rename.
func WithReplaceRetry(executor *retry.Executor) WriterOption {
	return func(w *Writer) { w.replacer = executor }
}

// NewWriter creates a writer. Panics if calculator is nil.
func NewWriter(calculator checksum.Calculator, opts ...WriterOption) *Writer {
	if calculator == nil {
		panic("calculator cannot be nil")
	}
	w := &Writer{
		calculator: calculator,
		replacer:   retry.NewExecutor(retry.NewFileBusyClassifier(), retry.NewExponentialBackoff(replaceRetries)),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Encode renders entries exactly as they are written: a JSON array with
// two-space indentation, no HTML escaping and a trailing newline.
func Encode(entries []lawcat.CatalogEntry) ([]byte, error) {
	if entries == nil {
		entries = []lawcat.CatalogEntry{}
	}
	return encodeJSON(entries)
}

// WriteCatalog atomically replaces path with the encoded entries and returns
// the SHA-256 digest of the bytes written. Failures are *lawcat.WriteError.
//
// Writability is decided by the directory, not the file: the temp file is
// renamed over path, so an existing read-only (0444) catalog is replaced
// whenever its directory is writable. The previous catalog is left untouched
// only when the directory itself refuses the temp file or the rename.
func (w *Writer) WriteCatalog(ctx context.Context, path string, entries []lawcat.CatalogEntry) (string, error) {
	data, err := Encode(entries)
	if err != nil {
		return "", &lawcat.WriteError{Path: path, Cause: err}
	}
	if err := w.writeAtomic(ctx, path, data); err != nil {
		return "", &lawcat.WriteError{Path: path, Cause: err}
	}
	return w.calculator.CalculateRaw(data), nil
}

// WriteReport atomically writes a run report as JSON.
func (w *Writer) WriteReport(ctx context.Context, path string, report Report) error {
	data, err := encodeJSON(report)
	if err != nil {
		return &lawcat.WriteError{Path: path, Cause: err}
	}
	if err := w.writeAtomic(ctx, path, data); err != nil {
		return &lawcat.WriteError{Path: path, Cause: err}
	}
	return nil
}

func encodeJSON(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, errors.Wrap(err, "encode json")
	}
	return buf.Bytes(), nil
}

// writeAtomic writes data to a temporary file next to dest, syncs it and
// renames it over dest. The temporary file is removed on any failure.
func (w *Writer) writeAtomic(ctx context.Context, dest string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Dir(dest)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(dest)+".tmp-*")
	if err != nil {
		return errors.Wrap(err, "create temporary file")
	}
	tmpPath := tmp.Name()

	fail := func(err error, msg string) error {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return errors.Wrap(err, msg)
	}

	if err := tmp.Chmod(filePerm); err != nil {
		return fail(err, "chmod temporary file")
	}
	if _, err := tmp.Write(data); err != nil {
		return fail(err, "write temporary file")
	}
	if err := tmp.Sync(); err != nil {
		return fail(err, "sync temporary file")
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return errors.Wrap(err, "close temporary file")
	}
	if err := ctx.Err(); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	err = w.replacer.Execute(ctx, func(context.Context) error {
		return os.Rename(tmpPath, dest)
	})
	if err != nil {
		_ = os.Remove(tmpPath)
		return errors.Wrap(err, "replace destination")
	}

	_ = syncDir(dir)
	return nil
}

// syncDir makes the rename durable where the platform supports it.
func syncDir(dir string) error {
	f, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Sync()
}
