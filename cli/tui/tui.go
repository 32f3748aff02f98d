// Package tui provides the interactive Bubble Tea front end for docpanel.
//
// The Model is a thin host around controller.Controller: key presses and
// pastes become controller events, controller commands become tea.Cmds,
// and the view is drawn from Controller.Page. Pasted text is treated as a
// file drop, which is how terminals deliver drag-and-drop.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/weversonbarbieri/accountant-pdf-extract/controller"
	"github.com/weversonbarbieri/accountant-pdf-extract/metrics"
	"github.com/weversonbarbieri/accountant-pdf-extract/types"
)

// eventMsg carries a controller event through the Bubble Tea loop.
type eventMsg struct {
	ev controller.Event
}

// Model is the Bubble Tea model for the panel.
type Model struct {
	ctx     context.Context
	ctrl    *controller.Controller
	metrics *metrics.Collector

	spinner spinner.Model
	bar     progress.Model
	input   textinput.Model
	help    help.Model

	inputOpen      bool
	inputPasted    bool
	stagedFocus    bool
	fileCursor     int
	stagedCursor   int
	artifactCursor int
	scheduled      map[int]bool
	width          int
	quitting       bool
}

// NewModel creates a model around ctrl. Commands run with ctx.
func NewModel(ctx context.Context, ctrl *controller.Controller, m *metrics.Collector) Model {
	in := textinput.New()
	in.Placeholder = "paths or globs, e.g. exports/*.json"
	in.Prompt = "> "
	in.CharLimit = 0

	return Model{
		ctx:       ctx,
		ctrl:      ctrl,
		metrics:   m,
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(WarningStyle)),
		bar:       progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		input:     in,
		help:      help.New(),
		scheduled: make(map[int]bool),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.commands(m.ctrl.Init()), m.spinner.Tick)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case eventMsg:
		return m.dispatch(msg.ev)

	case tea.KeyMsg:
		if m.inputOpen {
			return m.updateInput(msg)
		}
		if msg.Paste {
			return m.stagePaths(string(msg.Runes), true)
		}
		return m.updateKey(msg)
	}
	return m, nil
}

// dispatch feeds ev to the controller and schedules the resulting commands
// plus the dismissal of any new notice.
func (m Model) dispatch(ev controller.Event) (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{m.commands(m.ctrl.Dispatch(ev))}
	for _, n := range m.ctrl.Notices() {
		if m.scheduled[n.ID] {
			continue
		}
		m.scheduled[n.ID] = true
		cmds = append(cmds, dismissAfter(n.ID))
	}
	if d, ok := ev.(controller.NoticeDismissed); ok {
		delete(m.scheduled, d.ID)
	}
	return m, tea.Batch(cmds...)
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	page := m.ctrl.Page()

	if page.Modal.Open {
		switch {
		case key.Matches(msg, keys.Confirm):
			return m.dispatch(controller.DeleteConfirmed{})
		case key.Matches(msg, keys.Cancel):
			return m.dispatch(controller.DeleteCanceled{})
		case msg.String() == "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, keys.SwitchTab):
		next := controller.TabPDF
		if page.Tab == controller.TabPDF {
			next = controller.TabJSON
		}
		return m.dispatch(controller.TabSelected{Tab: next})
	case key.Matches(msg, keys.Open):
		m.inputOpen = true
		m.inputPasted = false
		m.input.Reset()
		focus := m.input.Focus()
		if page.Tab == controller.TabJSON {
			next, cmd := m.dispatch(controller.DragEntered{})
			return next, tea.Batch(focus, cmd)
		}
		return m, focus
	case key.Matches(msg, keys.Refresh):
		return m.dispatch(controller.RefreshRequested{})
	}

	if page.Tab == controller.TabPDF {
		return m.updatePDFKey(msg, page)
	}
	return m.updateJSONKey(msg, page)
}

func (m Model) updateJSONKey(msg tea.KeyMsg, page controller.Page) (tea.Model, tea.Cmd) {
	m.fileCursor = clamp(m.fileCursor, len(page.ServerFiles))
	m.stagedCursor = clamp(m.stagedCursor, len(page.Staged))

	if key.Matches(msg, keys.Focus) {
		m.stagedFocus = !m.stagedFocus
		return m, nil
	}
	if m.stagedFocus {
		switch {
		case key.Matches(msg, keys.Up):
			m.stagedCursor = clamp(m.stagedCursor-1, len(page.Staged))
			return m, nil
		case key.Matches(msg, keys.Down):
			m.stagedCursor = clamp(m.stagedCursor+1, len(page.Staged))
			return m, nil
		case key.Matches(msg, keys.Toggle), key.Matches(msg, keys.Delete):
			return m, nil
		}
	}

	current := func() (string, bool) {
		if len(page.ServerFiles) == 0 {
			return "", false
		}
		return page.ServerFiles[m.fileCursor].Name, true
	}

	switch {
	case key.Matches(msg, keys.Up):
		m.fileCursor = clamp(m.fileCursor-1, len(page.ServerFiles))
	case key.Matches(msg, keys.Down):
		m.fileCursor = clamp(m.fileCursor+1, len(page.ServerFiles))
	case key.Matches(msg, keys.Toggle):
		if name, ok := current(); ok {
			return m.dispatch(controller.ServerFileToggled{Name: name})
		}
	case key.Matches(msg, keys.ToggleAll):
		return m.dispatch(controller.AllServerFilesToggled{Checked: !page.AllSelected})
	case key.Matches(msg, keys.Delete):
		if name, ok := current(); ok {
			return m.dispatch(controller.DeleteRequested{Name: name})
		}
	case key.Matches(msg, keys.Upload):
		return m.dispatch(controller.UploadRequested{})
	case key.Matches(msg, keys.Process):
		return m.dispatch(controller.ProcessRequested{})
	case key.Matches(msg, keys.Unstage):
		if len(page.Staged) > 0 {
			return m.dispatch(controller.StagedFileRemoved{Index: m.stagedCursor})
		}
	case key.Matches(msg, keys.Clear):
		return m.dispatch(controller.StagingCleared{})
	}
	return m, nil
}

func (m Model) updatePDFKey(msg tea.KeyMsg, page controller.Page) (tea.Model, tea.Cmd) {
	arts := page.PDF.Artifacts
	m.artifactCursor = clamp(m.artifactCursor, len(arts))

	switch {
	case key.Matches(msg, keys.Up):
		m.artifactCursor = clamp(m.artifactCursor-1, len(arts))
	case key.Matches(msg, keys.Down):
		m.artifactCursor = clamp(m.artifactCursor+1, len(arts))
	case key.Matches(msg, keys.Toggle):
		if len(arts) > 0 {
			return m.dispatch(controller.ArtifactToggled{Name: arts[m.artifactCursor].Name})
		}
	case key.Matches(msg, keys.Process):
		return m.dispatch(controller.PDFProcessRequested{})
	case key.Matches(msg, keys.Artifacts):
		return m.dispatch(controller.ArtifactProcessRequested{})
	}
	return m, nil
}

// updateInput edits the path input. Text pasted into it is staged as a
// drop, since that is how terminals deliver dragged files.
func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyEsc:
		return m.closeInput(), nil
	case key.Matches(msg, keys.Submit):
		text, dropped := m.input.Value(), m.inputPasted
		return m.closeInput().stagePaths(text, dropped)
	}
	if msg.Paste {
		m.inputPasted = true
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// closeInput hides the path input and clears the drop zone highlight.
// DragLeft yields no commands.
func (m Model) closeInput() Model {
	m.inputOpen = false
	m.input.Blur()
	if m.ctrl.Page().DragOver {
		m.ctrl.Dispatch(controller.DragLeft{})
	}
	return m
}

// stagePaths resolves text into files and hands them to the controller as
// a pick (typed) or a drop (pasted). On the PDF tab both become a PDF
// selection.
func (m Model) stagePaths(text string, dropped bool) (tea.Model, tea.Cmd) {
	paths, err := splitPaths(text)
	if err != nil {
		return m.dispatch(controller.StagingFailed{Err: err})
	}
	if len(paths) == 0 {
		return m, nil
	}
	files, err := types.StagePaths(paths)
	if err != nil {
		return m.dispatch(controller.StagingFailed{Err: err})
	}

	switch {
	case m.ctrl.Page().Tab == controller.TabPDF:
		return m.dispatch(controller.PDFSelected{Files: files})
	case dropped:
		return m.dispatch(controller.FilesDropped{Files: files})
	default:
		return m.dispatch(controller.FilesSelected{Files: files})
	}
}

// commands adapts controller commands to tea.Cmds.
func (m Model) commands(cmds []controller.Command) tea.Cmd {
	out := make([]tea.Cmd, 0, len(cmds))
	for _, c := range cmds {
		if c == nil {
			continue
		}
		out = append(out, func() tea.Msg {
			ev := c(m.ctx)
			if ev == nil {
				return nil
			}
			return eventMsg{ev: ev}
		})
	}
	return tea.Batch(out...)
}

func dismissAfter(id int) tea.Cmd {
	return tea.Tick(controller.NoticeTTL, func(time.Time) tea.Msg {
		return eventMsg{ev: controller.NoticeDismissed{ID: id}}
	})
}

func clamp(i, n int) int {
	if n == 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// Run starts the interactive panel and blocks until the user quits or ctx
// is canceled.
func Run(ctx context.Context, ctrl *controller.Controller, m *metrics.Collector) error {
	p := tea.NewProgram(NewModel(ctx, ctrl, m), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	page := m.ctrl.Page()

	var b strings.Builder
	b.WriteString(m.renderTabs(page.Tab))
	b.WriteString("\n\n")
	b.WriteString(renderNotices(page.Notices))

	if page.Modal.Open {
		b.WriteString(renderModal(page.Modal))
		b.WriteString("\n")
		return b.String()
	}

	if page.Tab == controller.TabPDF {
		b.WriteString(m.renderPDF(page))
	} else {
		b.WriteString(m.renderJSON(page))
	}

	if m.inputOpen {
		b.WriteString("\n")
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.renderFooter(page))
	return b.String()
}
