package tui

import (
	"os"

	"golang.org/x/term"
)

// Mode selects how lawcat renders human-facing output.
type Mode int

const (
	// ModePlain is used for CI, scripts and redirected output.
	ModePlain Mode = iota
	// ModeStyled is used when a human is watching the terminal.
	ModeStyled
)

// DetectMode decides whether the run summary on stderr is styled.
//
// Returns ModePlain if:
//   - LAWCAT_PLAIN=1 is set
//   - CI is set (common CI/CD convention)
//   - NO_COLOR is set
//   - stderr is not a terminal
func DetectMode() Mode {
	if os.Getenv("LAWCAT_PLAIN") == "1" {
		return ModePlain
	}
	if os.Getenv("CI") != "" {
		return ModePlain
	}
	if os.Getenv("NO_COLOR") != "" {
		return ModePlain
	}
	if !term.IsTerminal(int(os.Stderr.Fd())) {
		return ModePlain
	}
	return ModeStyled
}

// IsStyled reports whether DetectMode returns ModeStyled.
func IsStyled() bool {
	return DetectMode() == ModeStyled
}
