// Package report renders analysis results for terminals and machine
// consumers.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"a11yscan/internal/detect"
)

// Result is one analysis run's output.
type Result struct {
	Timestamp time.Time        `json:"timestamp"`
	Files     int              `json:"files"`
	Skipped   []string         `json:"skipped,omitempty"`
	Degraded  bool             `json:"degraded"`
	Findings  []detect.Finding `json:"findings"`
}

// Errors counts findings at error severity.
func (r *Result) Errors() int {
	n := 0
	for _, f := range r.Findings {
		if f.Severity == detect.SeverityError {
			n++
		}
	}
	return n
}

var (
	headerStyle   = lipgloss.NewStyle().Bold(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	warningStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	infoStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	locationStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	wcagStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("13"))
	degradedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true)
	summaryStyle  = lipgloss.NewStyle().Bold(true).MarginTop(1)
)

func severityStyle(s detect.Severity) lipgloss.Style {
	switch s {
	case detect.SeverityError:
		return errorStyle
	case detect.SeverityWarning:
		return warningStyle
	default:
		return infoStyle
	}
}

// RenderText writes a human-readable report grouped by file.
func RenderText(w io.Writer, r *Result) {
	if len(r.Findings) == 0 {
		fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("No accessibility issues found in %d files.", r.Files)))
		return
	}

	var file string
	for _, f := range r.Findings {
		if f.Location.File != file {
			file = f.Location.File
			fmt.Fprintf(w, "\n%s\n", headerStyle.Render(file))
		}

		line := fmt.Sprintf("  %s %s %s %s",
			severityStyle(f.Severity).Render(strings.ToUpper(string(f.Severity))),
			locationStyle.Render(fmt.Sprintf("%d:%d", f.Location.Line, f.Location.Column)),
			f.Message,
			wcagStyle.Render(ruleTag(f)),
		)
		if f.Degraded {
			line += " " + degradedStyle.Render("(single-file analysis)")
		}
		fmt.Fprintln(w, line)
	}

	errors := r.Errors()
	warnings := len(r.Findings) - errors
	summary := fmt.Sprintf("%d issues (%d errors, %d others) across %d files",
		len(r.Findings), errors, warnings, r.Files)
	if r.Degraded {
		summary += " [degraded: no DOM supplied, results may contain false positives]"
	}
	fmt.Fprintln(w, summaryStyle.Render(summary))
}

func ruleTag(f detect.Finding) string {
	if f.WCAG == "" {
		return "[" + f.Rule + "]"
	}
	return fmt.Sprintf("[%s, WCAG %s]", f.Rule, f.WCAG)
}

// WriteJSON writes the result as indented JSON.
func WriteJSON(w io.Writer, r *Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
