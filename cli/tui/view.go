package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/weversonbarbieri/accountant-pdf-extract/controller"
	"github.com/weversonbarbieri/accountant-pdf-extract/view"
)

// Tab header labels.
const (
	jsonTabLabel = "Arquivos JSON"
	pdfTabLabel  = "Arquivos PDF"
)

// dropHint is shown in an empty staging area.
const dropHint = "Arraste arquivos JSON aqui (cole os caminhos) ou pressione o para escolher"

func (m Model) renderTabs(active controller.Tab) string {
	jsonTab, pdfTab := TabStyle.Render(jsonTabLabel), TabStyle.Render(pdfTabLabel)
	if active == controller.TabPDF {
		pdfTab = ActiveTabStyle.Render(pdfTabLabel)
	} else {
		jsonTab = ActiveTabStyle.Render(jsonTabLabel)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, TitleStyle.MarginBottom(0).Render("docpanel"), "  ", jsonTab, pdfTab)
}

func renderNotices(notices []controller.Notice) string {
	if len(notices) == 0 {
		return ""
	}
	var b strings.Builder
	for _, n := range notices {
		b.WriteString(NoticeStyle(n.Kind).Render("• " + n.Text))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	return b.String()
}

func renderModal(modal controller.Modal) string {
	body := fmt.Sprintf("Tem certeza que deseja excluir o arquivo %s?\n\n%s  %s",
		modal.Target,
		ErrorStyle.Render("[y] Excluir"),
		HelpStyle.MarginTop(0).Render("[n] Cancelar"),
	)
	return ModalStyle.Render(body)
}

func (m Model) renderJSON(page controller.Page) string {
	var b strings.Builder

	var zone strings.Builder
	if len(page.Staged) == 0 {
		zone.WriteString(HelpStyle.MarginTop(0).Render(dropHint))
	}
	cursor := clamp(m.stagedCursor, len(page.Staged))
	for i, item := range page.Staged {
		if i > 0 {
			zone.WriteString("\n")
		}
		prefix := "  "
		if m.stagedFocus && i == cursor {
			prefix = CursorStyle.Render("> ")
		}
		fmt.Fprintf(&zone, "%s%s %s", prefix, ValueStyle.Render(item.Name), HelpStyle.MarginTop(0).Render("("+item.Size+")"))
	}
	style := DropZoneStyle
	if page.DragOver {
		style = DropZoneActiveStyle
	}
	b.WriteString(style.Render(zone.String()))
	b.WriteString("\n")

	upload := page.Upload.Label
	if page.Upload.Disabled {
		upload = m.spinner.View() + " " + upload
	}
	b.WriteString(upload)
	b.WriteString("\n\n")

	b.WriteString(TitleStyle.Render("Arquivos disponíveis"))
	b.WriteString("\n")
	if len(page.ServerFiles) == 0 {
		b.WriteString(HelpStyle.MarginTop(0).Render("Nenhum arquivo JSON encontrado no diretório."))
		b.WriteString("\n")
	}
	cursor = clamp(m.fileCursor, len(page.ServerFiles))
	for i, f := range page.ServerFiles {
		b.WriteString(renderItem(f, !m.stagedFocus && i == cursor, true))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if page.Processing {
		b.WriteString(m.spinner.View() + " Processando...\n")
	}
	b.WriteString(renderResults(page.Results))
	return b.String()
}

func (m Model) renderPDF(page controller.Page) string {
	var b strings.Builder
	pdf := page.PDF

	if pdf.FormVisible {
		b.WriteString(LabelStyle.Width(0).Render("PDF: "))
		b.WriteString(ValueStyle.Render(pdf.Placeholder))
		b.WriteString("\n")
	}
	if pdf.Indicator {
		b.WriteString(m.spinner.View() + " Processando PDF...\n")
		b.WriteString(m.bar.ViewAs(float64(pdf.Progress) / 100))
		b.WriteString("\n")
	}
	if pdf.Result != nil {
		b.WriteString("\n")
		b.WriteString(BoxStyle.Render(strings.TrimRight(renderPDFResult(*pdf.Result), "\n")))
		b.WriteString("\n")
	}

	if len(pdf.Artifacts) > 0 {
		b.WriteString("\n")
		b.WriteString(TitleStyle.Render("Arquivos JSON gerados"))
		b.WriteString("\n")
		cursor := clamp(m.artifactCursor, len(pdf.Artifacts))
		for i, a := range pdf.Artifacts {
			b.WriteString(renderItem(a, i == cursor, pdf.MultiSelect))
			b.WriteString("\n")
		}
	}
	return b.String()
}

// renderItem draws a list row as a checkbox, or a radio button when multi
// is false.
func renderItem(f controller.FileItem, focused, multi bool) string {
	mark := "[ ]"
	switch {
	case multi && f.Selected:
		mark = "[x]"
	case !multi && f.Selected:
		mark = "(•)"
	case !multi:
		mark = "( )"
	}
	row := mark + " " + f.Name
	if focused {
		return CursorStyle.Render("> " + row)
	}
	return "  " + row
}

func renderResults(rv view.ResultsView) string {
	var b strings.Builder
	if rv.Heading != "" {
		b.WriteString(TitleStyle.Render(rv.Heading))
		b.WriteString("\n")
	}
	if rv.Empty() {
		b.WriteString(HelpStyle.MarginTop(0).Render(rv.Placeholder))
		b.WriteString("\n")
		return b.String()
	}
	for _, c := range rv.Cards {
		b.WriteString(renderCard(c))
	}
	return b.String()
}

func renderPDFResult(pv view.PDFView) string {
	var b strings.Builder
	heading := SuccessStyle
	if !pv.Success {
		heading = ErrorStyle
	}
	b.WriteString(heading.Bold(true).Render(pv.Heading))
	b.WriteString("\n")
	if pv.ProcessingTime != "" {
		b.WriteString(LabelStyle.Render("Tempo:") + " " + pv.ProcessingTime + "\n")
	}
	for _, c := range pv.Cards {
		b.WriteString(renderCard(c))
	}
	return b.String()
}

func renderCard(c view.ResultCard) string {
	var b strings.Builder
	badge := SuccessStyle.Render("✓")
	if c.Failed() {
		badge = ErrorStyle.Render("✗")
	}
	fmt.Fprintf(&b, "%s %s\n", badge, ValueStyle.Bold(true).Render(c.Title))
	if c.Message != "" {
		fmt.Fprintf(&b, "  %s\n", c.Message)
	}
	if c.Detail != "" {
		fmt.Fprintf(&b, "  %s\n", HelpStyle.MarginTop(0).Render(c.Detail))
	}
	if h := c.Help; h != nil {
		fmt.Fprintf(&b, "  %s %s\n", WarningStyle.Render("Problema:"), h.Problem)
		fmt.Fprintf(&b, "  %s %s\n", WarningStyle.Render("Solução:"), h.Solution)
	}
	for _, a := range c.Artifacts {
		fmt.Fprintf(&b, "  - %s\n", a)
	}
	return b.String()
}

// footerOps are the operations whose state is shown in the footer.
var footerOps = []controller.Operation{
	controller.OpList,
	controller.OpUpload,
	controller.OpProcess,
	controller.OpPDF,
	controller.OpArtifacts,
	controller.OpDelete,
}

func (m Model) renderFooter(page controller.Page) string {
	var b strings.Builder
	var ops []string
	for _, op := range footerOps {
		st := page.Ops[op]
		if st == controller.OpIdle {
			continue
		}
		ops = append(ops, string(op)+" "+StateStyle(st.String()).Render(st.String()))
	}
	if len(ops) > 0 {
		b.WriteString(strings.Join(ops, "  "))
		b.WriteString("\n")
	}
	if m.metrics != nil {
		s := m.metrics.Snapshot()
		fmt.Fprintf(&b, "%s %d  %s %d/%d/%d\n",
			LabelStyle.Width(0).Render("requests:"), s.TotalRequests(),
			LabelStyle.Width(0).Render("errors (input/server/transport):"),
			s.UserInputErrors, s.ServerReportedErrors, s.TransportErrors,
		)
	}
	b.WriteString(m.help.View(keys))
	return b.String()
}
