// Package checksum computes the digests lawcat reports and compares.
//
// Two digests are produced:
//
//   - Raw digest: SHA-256 of the exact catalog bytes. It is printed in the run
//     summary and report so a published catalog can be verified.
//   - Fingerprint: SHA-256 of a set of lines, independent of their order.
//     Watch mode fingerprints the discovered law files (path, size, mtime)
//     and skips a rebuild when the fingerprint is unchanged.
//
// # Example Usage
//
//	calculator := checksum.New()
//	digest := calculator.CalculateRaw(catalogBytes)
//	fp := calculator.Fingerprint([]string{"a.xml 120 1700000000", "b.xml 88 1700000001"})
//
// # Thread Safety
//
// SHA256 is safe for concurrent use by multiple goroutines.
package checksum
