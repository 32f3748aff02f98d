package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/weversonbarbieri/accountant-pdf-extract/view"
)

// styles holds the table-mode styles. All zero when color is off.
type styles struct {
	heading lipgloss.Style
	success lipgloss.Style
	failure lipgloss.Style
	muted   lipgloss.Style
}

func newStyles(out io.Writer, noColor bool) styles {
	if noColor {
		return styles{}
	}
	re := lipgloss.NewRenderer(out)
	return styles{
		heading: re.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED")),
		success: re.NewStyle().Foreground(lipgloss.Color("#10B981")),
		failure: re.NewStyle().Foreground(lipgloss.Color("#EF4444")),
		muted:   re.NewStyle().Foreground(lipgloss.Color("#6B7280")),
	}
}

// Badge texts used in table mode.
const (
	BadgeSuccess = "[OK]"
	BadgeError   = "[ERRO]"
)

func (r *Renderer) renderResults(v view.ResultsView) error {
	var b strings.Builder
	if v.Heading != "" {
		b.WriteString(r.styles.heading.Render(v.Heading))
		b.WriteByte('\n')
	}
	if v.Empty() {
		b.WriteString(r.styles.muted.Render(v.Placeholder))
		b.WriteByte('\n')
		_, err := io.WriteString(r.out, b.String())
		return err
	}

	for _, c := range v.Cards {
		r.writeCard(&b, c)
	}
	ok, failed := v.Counts()
	fmt.Fprintf(&b, "\n%d succeeded, %d failed\n", ok, failed)
	_, err := io.WriteString(r.out, b.String())
	return err
}

func (r *Renderer) renderPDF(v view.PDFView) error {
	var b strings.Builder
	b.WriteString(r.styles.heading.Render(v.Heading))
	b.WriteByte('\n')
	if v.ProcessingTime != "" {
		fmt.Fprintf(&b, "Processing time: %s\n", v.ProcessingTime)
	}
	for _, c := range v.Cards {
		r.writeCard(&b, c)
	}
	if len(v.Artifacts) > 0 {
		b.WriteString("\nGenerated JSON files:\n")
		for _, a := range v.Artifacts {
			fmt.Fprintf(&b, "  %s\n", a)
		}
	}
	_, err := io.WriteString(r.out, b.String())
	return err
}

func (r *Renderer) writeCard(b *strings.Builder, c view.ResultCard) {
	badge := r.styles.success.Render(BadgeSuccess)
	if c.Failed() {
		badge = r.styles.failure.Render(BadgeError)
	}
	fmt.Fprintf(b, "%s %s\n", badge, c.Title)
	if c.Message != "" {
		fmt.Fprintf(b, "    %s\n", c.Message)
	}
	if c.Detail != "" {
		fmt.Fprintf(b, "    %s\n", r.styles.muted.Render(c.Detail))
	}
	if h := c.Help; h != nil {
		fmt.Fprintf(b, "    Problema: %s\n", h.Problem)
		fmt.Fprintf(b, "    Solução: %s\n", h.Solution)
		fmt.Fprintf(b, "    %s\n", r.styles.muted.Render(h.ProblemEN+" "+h.SolutionEN))
	}
	for _, a := range c.Artifacts {
		fmt.Fprintf(b, "    - %s\n", a)
	}
}

func (r *Renderer) renderLines(lines []string) error {
	if len(lines) == 0 {
		_, err := fmt.Fprintln(r.out, "(no results)")
		return err
	}
	for _, l := range lines {
		if _, err := fmt.Fprintln(r.out, l); err != nil {
			return err
		}
	}
	return nil
}
