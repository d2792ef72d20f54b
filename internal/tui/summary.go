package tui

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/vvka-141/lawcat/pkg/lawcat"
)

// flagOrder is the display order of reconciliation flags.
var flagOrder = []lawcat.ReconciliationFlag{
	lawcat.FlagMatched,
	lawcat.FlagFieldMismatch,
	lawcat.FlagIndexMissing,
	lawcat.FlagNoIndex,
}

// RenderSummary writes a human-readable run summary to w.
func RenderSummary(w io.Writer, s lawcat.Summary, mode Mode) {
	if mode == ModeStyled {
		fmt.Fprintln(w, styledSummary(s))
		return
	}
	fmt.Fprint(w, plainSummary(s))
}

type row struct {
	label string
	value string
}

func rows(s lawcat.Summary) []row {
	return []row{
		{"catalog", s.OutputPath},
		{"laws cataloged", fmt.Sprintf("%d", s.Cataloged)},
		{"files discovered", fmt.Sprintf("%d", s.Discovered)},
		{"files extracted", fmt.Sprintf("%d", s.Extracted)},
		{"files skipped", fmt.Sprintf("%d", len(s.Skipped))},
		{"flags", formatFlags(s.Flags)},
		{"sha256", s.Digest},
		{"duration", s.Duration.Round(time.Millisecond).String()},
	}
}

func formatFlags(flags map[lawcat.ReconciliationFlag]int) string {
	var parts []string
	for _, f := range flagOrder {
		if n := flags[f]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s=%d", f, n))
		}
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, " ")
}

func sortedSkipped(s lawcat.Summary) []*lawcat.ExtractionError {
	skipped := append([]*lawcat.ExtractionError(nil), s.Skipped...)
	sort.Slice(skipped, func(i, j int) bool { return skipped[i].Path < skipped[j].Path })
	return skipped
}

func plainSummary(s lawcat.Summary) string {
	var b strings.Builder
	for _, r := range rows(s) {
		fmt.Fprintf(&b, "%-18s%s\n", r.label+":", r.value)
	}
	if len(s.Skipped) > 0 {
		b.WriteString("skipped files:\n")
		for _, e := range sortedSkipped(s) {
			fmt.Fprintf(&b, "  %s (%s): %v\n", e.Path, e.LawID, e.Cause)
		}
	}
	if len(s.Notes) > 0 {
		b.WriteString("notes:\n")
		for _, n := range s.Notes {
			fmt.Fprintf(&b, "  [%s] %s: %s\n", n.Kind, n.LawID, n.Message)
		}
	}
	return b.String()
}

func styledSummary(s lawcat.Summary) string {
	var lines []string
	lines = append(lines, titleStyle.Render("lawcat build"))
	for _, r := range rows(s) {
		value := r.value
		switch {
		case r.label == "laws cataloged":
			value = okStyle.Render(value)
		case r.label == "files skipped" && len(s.Skipped) > 0:
			value = warnStyle.Render(value)
		case r.label == "flags":
			value = styledFlags(s.Flags)
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(r.label), value))
	}

	if len(s.Skipped) > 0 {
		lines = append(lines, "", warnStyle.Render("skipped files"))
		for _, e := range sortedSkipped(s) {
			lines = append(lines, fmt.Sprintf("  %s %s", e.Path, mutedStyle.Render(fmt.Sprintf("(%s) %v", e.LawID, e.Cause))))
		}
	}
	if len(s.Notes) > 0 {
		lines = append(lines, "", mutedStyle.Render("notes"))
		for _, n := range s.Notes {
			lines = append(lines, fmt.Sprintf("  [%s] %s %s", n.Kind, n.LawID, mutedStyle.Render(n.Message)))
		}
	}
	return boxStyle.Render(strings.Join(lines, "\n"))
}

func styledFlags(flags map[lawcat.ReconciliationFlag]int) string {
	var parts []string
	for _, f := range flagOrder {
		if n := flags[f]; n > 0 {
			parts = append(parts, flagStyle(f).Render(fmt.Sprintf("%s=%d", f, n)))
		}
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, " ")
}
