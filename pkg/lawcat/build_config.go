package lawcat

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
)

// Index encodings accepted by BuildConfig.IndexEncoding.
const (
	IndexEncodingAuto     = "auto"
	IndexEncodingUTF8     = "utf-8"
	IndexEncodingShiftJIS = "shift_jis"
)

// BuildConfig contains all parameters needed for one catalog build.
type BuildConfig struct {
	// WorkDir is the root directory holding the law XML files
	WorkDir string

	// OutputPath is the catalog file to replace atomically
	OutputPath string

	// IndexPath is the optional authoritative law list (CSV).
	// Empty means the build runs in no-index mode.
	IndexPath string

	// IndexEncoding selects how the index file is decoded
	IndexEncoding string

	// SchemaPath is an optional XSD every document must validate against
	SchemaPath string

	// ReportPath is an optional run report written next to the catalog
	ReportPath string

	// Verbose enables detailed logging
	Verbose bool
}

// Validate checks that the BuildConfig has all required fields.
// Every problem found is reported in a single ErrInvalidConfig.
func (c *BuildConfig) Validate() error {
	var problems []string

	if strings.TrimSpace(c.WorkDir) == "" {
		problems = append(problems, "work directory is required")
	}
	if strings.TrimSpace(c.OutputPath) == "" {
		problems = append(problems, "output path is required")
	}
	if c.ReportPath != "" && c.ReportPath == c.OutputPath {
		problems = append(problems, "report path must differ from output path")
	}

	switch strings.ToLower(c.IndexEncoding) {
	case "", IndexEncodingAuto, IndexEncodingUTF8, IndexEncodingShiftJIS:
	default:
		problems = append(problems, fmt.Sprintf("unsupported index encoding %q", c.IndexEncoding))
	}

	if len(problems) == 0 {
		return nil
	}
	return errors.Wrap(ErrInvalidConfig, strings.Join(problems, "; "))
}
