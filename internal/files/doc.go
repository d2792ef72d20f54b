// Package files groups the file-related sub-packages:
//   - filesystem: filesystem abstraction with OS and in-memory implementations
//   - locator: discovery of law documents by their bulk-download file names
package files
