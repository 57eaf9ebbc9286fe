// Package output renders a lint run's findings and summary for a human
// terminal or for machine consumption, mirroring the teacher's two-mode
// rendering split (styled terminal output vs. plain JSON) even though the
// teacher's own internal/cli/output package was not available to copy from
// directly — this package is grounded on its call sites instead
// (internal/cli/commands/rules.go's output.Mode / output.NewRenderer
// usage) and on the teacher's lipgloss-based TUI styling elsewhere in the
// corpus.
package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/obi1kenobi/semver-check-go/pkg/lint"
	"github.com/obi1kenobi/semver-check-go/pkg/semver"
)

// Mode selects which renderer a Renderer delegates to.
type Mode string

const (
	ModeText Mode = "text"
	ModeJSON Mode = "json"
)

// ParseMode normalizes a --format flag value, defaulting to text for
// anything unrecognized rather than failing the run over cosmetics.
func ParseMode(s string) Mode {
	if Mode(s) == ModeJSON {
		return ModeJSON
	}
	return ModeText
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	majorStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	minorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	patchStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	dimStyle    = lipgloss.NewStyle().Faint(true)
)

func bumpStyle(b semver.Bump) lipgloss.Style {
	switch b {
	case semver.Major:
		return majorStyle
	case semver.Minor:
		return minorStyle
	case semver.Patch:
		return patchStyle
	default:
		return dimStyle
	}
}

// RunResult is everything one `check` invocation renders: the findings, the
// driver's summary, and the semvergate's skip decisions (empty when the
// gate never ran, e.g. no version strings were available).
type RunResult struct {
	Findings    []lint.Finding `json:"findings"`
	Summary     lint.Summary   `json:"summary"`
	ActualBump  semver.Bump    `json:"actual_bump"`
	BumpKnown   bool           `json:"actual_bump_known"`
	SkippedByGate []string     `json:"skipped_by_gate,omitempty"`
	Verbose     bool           `json:"-"`
}

// Renderer writes a RunResult or a lint listing to an io.Writer.
type Renderer struct {
	w    io.Writer
	mode Mode
}

// NewRenderer builds a Renderer for the given mode.
func NewRenderer(w io.Writer, mode Mode) *Renderer {
	return &Renderer{w: w, mode: mode}
}

// RenderRun writes a completed check run.
func (r *Renderer) RenderRun(res RunResult) error {
	if r.mode == ModeJSON {
		enc := json.NewEncoder(r.w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
	return r.renderRunText(res)
}

func (r *Renderer) renderRunText(res RunResult) error {
	if len(res.Findings) == 0 {
		fmt.Fprintln(r.w, headerStyle.Render("no breaking changes detected"))
	} else {
		for _, f := range res.Findings {
			style := bumpStyle(f.RequiredUpdate)
			fmt.Fprintf(r.w, "%s %s: %s\n",
				style.Render(fmt.Sprintf("[%s]", f.RequiredUpdate)),
				dimStyle.Render(f.LintID),
				f.Message)
		}
	}

	fmt.Fprintln(r.w)
	fmt.Fprintln(r.w, headerStyle.Render("summary"))
	fmt.Fprintf(r.w, "  total findings: %d\n", res.Summary.TotalFindings)
	fmt.Fprintf(r.w, "  highest required update: %s\n", bumpStyle(res.Summary.HighestRequired).Render(res.Summary.HighestRequired.String()))
	if res.BumpKnown {
		fmt.Fprintf(r.w, "  actual version change: %s\n", res.ActualBump)
	}
	if len(res.Summary.ParseErrors) > 0 {
		fmt.Fprintf(r.w, "  %d lint(s) failed to parse\n", len(res.Summary.ParseErrors))
	}
	if len(res.Summary.StaticErrors) > 0 {
		fmt.Fprintf(r.w, "  %d lint(s) failed static validation\n", len(res.Summary.StaticErrors))
	}
	if res.Verbose && len(res.SkippedByGate) > 0 {
		fmt.Fprintf(r.w, "  %d lint(s) skipped (already satisfied by actual version change): %v\n",
			len(res.SkippedByGate), res.SkippedByGate)
	}
	return nil
}

// RenderLints lists a catalogue's lints.
func (r *Renderer) RenderLints(lints []*lint.Lint) error {
	if r.mode == ModeJSON {
		enc := json.NewEncoder(r.w)
		enc.SetIndent("", "  ")
		return enc.Encode(lints)
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.w)
	t.AppendHeader(table.Row{"ID", "Required Update", "Name"})
	for _, l := range lints {
		t.AppendRow(table.Row{l.ID, l.RequiredUpdate, l.HumanReadableName})
	}
	t.Render()
	return nil
}

// RenderLintDetail prints one lint's full record.
func (r *Renderer) RenderLintDetail(l *lint.Lint) error {
	if r.mode == ModeJSON {
		enc := json.NewEncoder(r.w)
		enc.SetIndent("", "  ")
		return enc.Encode(l)
	}

	fmt.Fprintln(r.w, headerStyle.Render(l.ID)+" — "+l.HumanReadableName)
	fmt.Fprintln(r.w, l.Description)
	if l.ReferenceLink != "" {
		fmt.Fprintln(r.w, dimStyle.Render(l.ReferenceLink))
	}
	fmt.Fprintf(r.w, "required update: %s\n\n", l.RequiredUpdate)
	fmt.Fprintln(r.w, dimStyle.Render("query:"))
	fmt.Fprintln(r.w, l.Query)
	return nil
}
