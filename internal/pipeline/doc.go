// Package pipeline runs one catalog build from discovery to the written file.
//
// Stages run in a fixed order:
//
//	load index → locate → extract (bounded pool) → resolve → reconcile → assemble → write
//
// The index is loaded first so that a bad --index fails before any document
// is read. Fatal errors (configuration, discovery, invariant, write) abort
// the run; documents that fail to extract are recorded in the summary and
// the run continues without them.
package pipeline
