// Package extract reads located law files and turns them into metadata.
//
// Extractor handles one file: read, size check, parse, project. Pool fans
// Extractor calls out over a bounded number of goroutines and collects the
// results in a single goroutine, so callers never share mutable state with
// the workers. A failure on one file is recorded in its result and never
// affects the others.
package extract
