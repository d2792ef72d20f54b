// Package filesystem provides filesystem abstraction interfaces and implementations.
//
// The locator walks law document trees and the extractor reads documents
// through these interfaces, so both can be tested against an in-memory tree.
//
// Key interfaces:
//   - FileSystemProvider: Opens scan roots and reads individual files
//   - Directory: A scan root that can be traversed
//   - File: An entry found while walking, with its metadata
//
// Implementations:
//   - OSFileSystem: Production implementation using the OS filesystem
//   - MemoryFileSystem: In-memory implementation for testing
package filesystem
