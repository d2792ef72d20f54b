package checksum

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
)

// Calculator computes content digests.
type Calculator interface {
	// CalculateRaw computes a digest of the exact content.
	CalculateRaw(content []byte) string

	// Fingerprint computes a digest of a set of lines. The order of lines
	// does not affect the result; duplicates do.
	Fingerprint(lines []string) string
}

// SHA256 implements Calculator using SHA-256.
//
// SHA256 is a zero-size type and is safe for concurrent use by multiple goroutines.
type SHA256 struct{}

// New creates a new SHA-256 based calculator.
func New() SHA256 {
	return SHA256{}
}

// CalculateRaw computes SHA-256 of raw content as lowercase hex.
func (c SHA256) CalculateRaw(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}

// Fingerprint computes SHA-256 over the sorted lines, each terminated by a
// newline.
func (c SHA256) Fingerprint(lines []string) string {
	sorted := append([]string(nil), lines...)
	sort.Strings(sorted)

	h := sha256.New()
	for _, line := range sorted {
		h.Write([]byte(line))
		h.Write([]byte{'\n'})
	}
	return hex.EncodeToString(h.Sum(nil))
}

var _ Calculator = SHA256{}
