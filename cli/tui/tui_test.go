package tui

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/weversonbarbieri/accountant-pdf-extract/controller"
	"github.com/weversonbarbieri/accountant-pdf-extract/metrics"
	"github.com/weversonbarbieri/accountant-pdf-extract/types"
)

type fakeBackend struct {
	mu      sync.Mutex
	files   []string
	deleted []string
}

func (f *fakeBackend) Upload(context.Context, []types.StagedFile) (*types.UploadResponse, error) {
	return &types.UploadResponse{Success: true}, nil
}

func (f *fakeBackend) Process(_ context.Context, names []string) (*types.ProcessResponse, error) {
	resp := &types.ProcessResponse{}
	for _, n := range names {
		resp.Results = append(resp.Results, types.ProcessingResult{File: n, Status: types.StatusSuccess, Message: "ok"})
	}
	return resp, nil
}

func (f *fakeBackend) ProcessPDF(context.Context, []types.StagedFile) (*types.PDFResponse, error) {
	return &types.PDFResponse{Success: true, FileName: "scan.pdf", JSONFiles: []string{"scan_p1.json"}}, nil
}

func (f *fakeBackend) DeleteFile(_ context.Context, name string) (*types.DeleteResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, name)
	f.files = slices.DeleteFunc(f.files, func(s string) bool { return s == name })
	return &types.DeleteResponse{Success: true, Message: "ok"}, nil
}

func (f *fakeBackend) ListFiles(context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.files), nil
}

func newTestModel(t *testing.T, files ...string) (Model, *fakeBackend) {
	t.Helper()
	backend := &fakeBackend{files: files}
	ctrl := controller.New(backend, controller.Options{
		Progress: controller.Progress{Interval: time.Millisecond, Step: 50, Ceiling: 90, RevealDelay: 0},
	})
	m := NewModel(t.Context(), ctrl, metrics.NewCollector("test", "http://backend"))
	m = settle(t, m, m.Init())
	return m, backend
}

// collect runs cmd and every command batched into it, returning the
// controller events produced within wait. Longer timers are abandoned.
func collect(t *testing.T, cmd tea.Cmd, wait time.Duration) []controller.Event {
	t.Helper()
	ch := make(chan controller.Event, 64)
	var wg sync.WaitGroup
	var run func(tea.Cmd)
	run = func(c tea.Cmd) {
		if c == nil {
			return
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			switch msg := c().(type) {
			case tea.BatchMsg:
				for _, sub := range msg {
					run(sub)
				}
			case eventMsg:
				ch <- msg.ev
			}
		}()
	}
	run(cmd)

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	var events []controller.Event
	timeout := time.After(wait)
	for {
		select {
		case ev := <-ch:
			events = append(events, ev)
		case <-done:
			for {
				select {
				case ev := <-ch:
					events = append(events, ev)
				default:
					return events
				}
			}
		case <-timeout:
			return events
		}
	}
}

// settle feeds the events produced by cmd back into m until no more arrive.
func settle(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	for range 20 {
		events := collect(t, cmd, 200*time.Millisecond)
		if len(events) == 0 {
			return m
		}
		var cmds []tea.Cmd
		for _, ev := range events {
			var next tea.Cmd
			m, next = update(t, m, eventMsg{ev: ev})
			cmds = append(cmds, next)
		}
		cmd = tea.Batch(cmds...)
	}
	t.Fatal("events did not settle")
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm, cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func paste(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s), Paste: true}
}

func writeFile(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestModel_InitListsFiles(t *testing.T) {
	m, _ := newTestModel(t, "a.json", "b.json")

	page := m.ctrl.Page()
	if len(page.ServerFiles) != 2 {
		t.Fatalf("server files = %+v", page.ServerFiles)
	}
	view := m.View()
	for _, want := range []string{"a.json", "b.json", jsonTabLabel} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestModel_PasteStagesFiles(t *testing.T) {
	m, _ := newTestModel(t)
	path := writeFile(t, "doc.json")

	m, _ = update(t, m, paste(path))

	staged := m.ctrl.Staged()
	if len(staged) != 1 || staged[0].Name != "doc.json" {
		t.Fatalf("staged = %+v", staged)
	}
	if !strings.Contains(m.View(), "doc.json") {
		t.Error("view should list the staged file")
	}
}

func TestModel_PasteOnPDFTabSelectsPDF(t *testing.T) {
	m, _ := newTestModel(t)
	path := writeFile(t, "scan.pdf")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.ctrl.Page().Tab != controller.TabPDF {
		t.Fatal("tab should switch to PDF")
	}
	m, _ = update(t, m, paste("'"+path+"'"))

	if got := m.ctrl.Page().PDF.Files; len(got) != 1 || got[0] != "scan.pdf" {
		t.Errorf("pdf files = %v", got)
	}
}

func TestModel_PasteMissingPathShowsNotice(t *testing.T) {
	m, _ := newTestModel(t)

	m, cmd := update(t, m, paste(filepath.Join(t.TempDir(), "gone.json")))

	notices := m.ctrl.Notices()
	if len(notices) != 1 || !strings.HasPrefix(notices[0].Text, controller.MsgReadFailed) {
		t.Fatalf("notices = %+v", notices)
	}
	if !m.scheduled[notices[0].ID] || cmd == nil {
		t.Error("notice dismissal should be scheduled")
	}
}

func TestModel_InputStagesTypedPaths(t *testing.T) {
	m, _ := newTestModel(t)
	path := writeFile(t, "typed.json")

	m, _ = update(t, m, runes("o"))
	if !m.inputOpen {
		t.Fatal("input should open")
	}
	m, _ = update(t, m, runes("q"))
	if m.quitting || m.input.Value() != "q" {
		t.Fatal("q should be typed into the input, not quit")
	}
	m.input.SetValue(path)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.inputOpen {
		t.Error("input should close on enter")
	}
	if staged := m.ctrl.Staged(); len(staged) != 1 || staged[0].Name != "typed.json" {
		t.Errorf("staged = %+v", staged)
	}
}

func TestModel_UnstageFocusedEntry(t *testing.T) {
	m, _ := newTestModel(t, "server.json")
	paths := []string{writeFile(t, "a.json"), writeFile(t, "b.json"), writeFile(t, "c.json")}
	for i := range paths {
		paths[i] = "'" + paths[i] + "'"
	}
	m, _ = update(t, m, paste(strings.Join(paths, " ")))
	if got := len(m.ctrl.Staged()); got != 3 {
		t.Fatalf("staged = %d, want 3", got)
	}

	m, _ = update(t, m, runes("s"))
	if !m.stagedFocus {
		t.Fatal("s should focus the staged list")
	}
	m, _ = update(t, m, runes("j"))
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	if got := m.ctrl.SelectedFiles(); len(got) != 0 {
		t.Errorf("space on the staged list should not select server files, got %v", got)
	}
	m, _ = update(t, m, runes("x"))

	var names []string
	for _, f := range m.ctrl.Staged() {
		names = append(names, f.Name)
	}
	if want := []string{"a.json", "c.json"}; !slices.Equal(names, want) {
		t.Errorf("staged after unstage = %v, want %v", names, want)
	}

	m, _ = update(t, m, runes("s"))
	if m.stagedFocus {
		t.Error("s should return focus to the server list")
	}
}

func TestModel_InputHighlightsDropZone(t *testing.T) {
	m, _ := newTestModel(t)
	path := writeFile(t, "dragged.json")

	m, _ = update(t, m, runes("o"))
	if !m.ctrl.Page().DragOver {
		t.Fatal("opening the input should highlight the drop zone")
	}
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.ctrl.Page().DragOver {
		t.Fatal("esc should clear the highlight")
	}

	m, _ = update(t, m, runes("o"))
	m, _ = update(t, m, paste(path))
	if m.input.Value() != path || !m.inputPasted {
		t.Fatalf("paste should fill the input, got %q", m.input.Value())
	}
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.ctrl.Page().DragOver {
		t.Error("highlight should clear after the drop")
	}
	if staged := m.ctrl.Staged(); len(staged) != 1 || staged[0].Name != "dragged.json" {
		t.Errorf("staged = %+v", staged)
	}
}

func TestModel_InputOnPDFTabKeepsDropZone(t *testing.T) {
	m, _ := newTestModel(t)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m, _ = update(t, m, runes("o"))
	if m.ctrl.Page().DragOver {
		t.Error("the PDF tab has no drop zone to highlight")
	}
}

func TestModel_InputEscCancels(t *testing.T) {
	m, _ := newTestModel(t)

	m, _ = update(t, m, runes("o"))
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	if m.inputOpen {
		t.Error("esc should close the input")
	}
	if len(m.ctrl.Staged()) != 0 {
		t.Error("nothing should be staged")
	}
}

func TestModel_ToggleAndDelete(t *testing.T) {
	m, backend := newTestModel(t, "a.json", "b.json")

	m, _ = update(t, m, runes("j"))
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	if got := m.ctrl.SelectedFiles(); len(got) != 1 || got[0] != "b.json" {
		t.Fatalf("selected = %v", got)
	}

	m, _ = update(t, m, runes("d"))
	if !m.ctrl.Page().Modal.Open {
		t.Fatal("delete should open the modal")
	}
	if !strings.Contains(m.View(), "excluir o arquivo b.json") {
		t.Error("modal should name the target")
	}

	m, cmd := update(t, m, runes("y"))
	m = settle(t, m, cmd)

	backend.mu.Lock()
	deleted := slices.Clone(backend.deleted)
	backend.mu.Unlock()
	if len(deleted) != 1 || deleted[0] != "b.json" {
		t.Errorf("deleted = %v", deleted)
	}
	if got := m.ctrl.Page().ServerFiles; len(got) != 1 || got[0].Name != "a.json" {
		t.Errorf("server files after delete = %+v", got)
	}
}

func TestModel_ModalCancel(t *testing.T) {
	m, backend := newTestModel(t, "a.json")

	m, _ = update(t, m, runes("d"))
	m, _ = update(t, m, runes("n"))

	if m.ctrl.Page().Modal.Open {
		t.Error("modal should close")
	}
	if len(backend.deleted) != 0 {
		t.Error("nothing should be deleted")
	}
}

func TestModel_ProcessShowsResults(t *testing.T) {
	m, _ := newTestModel(t, "a.json")

	m, _ = update(t, m, runes("a"))
	m, cmd := update(t, m, runes("p"))
	m = settle(t, m, cmd)

	results := m.ctrl.Page().Results
	if len(results.Cards) != 1 || results.Cards[0].Title != "a.json" {
		t.Fatalf("results = %+v", results)
	}
	if !strings.Contains(m.View(), "Processing results") {
		t.Error("view should show results heading")
	}
}

func TestModel_PDFFlow(t *testing.T) {
	m, _ := newTestModel(t)
	path := writeFile(t, "scan.pdf")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m, _ = update(t, m, paste(path))
	m, cmd := update(t, m, runes("p"))
	m = settle(t, m, cmd)

	pdf := m.ctrl.Page().PDF
	if pdf.Result == nil || !pdf.Result.Success {
		t.Fatalf("pdf result = %+v", pdf.Result)
	}
	if len(pdf.Artifacts) != 1 || pdf.Artifacts[0].Name != "scan_p1.json" {
		t.Fatalf("artifacts = %+v", pdf.Artifacts)
	}
	if !strings.Contains(m.View(), "( ) scan_p1.json") {
		t.Error("single mode artifacts should render as radio buttons")
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	if got := m.ctrl.SelectedArtifacts(); len(got) != 1 {
		t.Errorf("selected artifacts = %v", got)
	}
}

func TestModel_Quit(t *testing.T) {
	m, _ := newTestModel(t)

	m, cmd := update(t, m, runes("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
	if m.View() != "" {
		t.Error("view should be empty after quitting")
	}
}

func TestModel_NoticeDismissal(t *testing.T) {
	m, _ := newTestModel(t)

	m, _ = update(t, m, runes("u"))
	notices := m.ctrl.Notices()
	if len(notices) != 1 || notices[0].Text != controller.MsgNothingToUpload {
		t.Fatalf("notices = %+v", notices)
	}
	id := notices[0].ID

	m, _ = update(t, m, eventMsg{ev: controller.NoticeDismissed{ID: id}})
	if len(m.ctrl.Notices()) != 0 {
		t.Error("notice should be dismissed")
	}
	if m.scheduled[id] {
		t.Error("dismissed notice should leave the schedule")
	}
}

func TestSplitPaths(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []string
		wantErr bool
	}{
		{"single", "/tmp/a.json", []string{"/tmp/a.json"}, false},
		{"several", "/tmp/a.json  /tmp/b.json\n", []string{"/tmp/a.json", "/tmp/b.json"}, false},
		{"single quoted", "'/tmp/my file.json'", []string{"/tmp/my file.json"}, false},
		{"double quoted", `"/tmp/my file.json" b.json`, []string{"/tmp/my file.json", "b.json"}, false},
		{"escaped space", `/tmp/my\ file.json`, []string{"/tmp/my file.json"}, false},
		{"empty quotes", "''", []string{""}, false},
		{"blank", "   ", nil, false},
		{"unterminated", "'/tmp/a.json", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := splitPaths(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("splitPaths(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestRenderItem(t *testing.T) {
	tests := []struct {
		name  string
		item  controller.FileItem
		multi bool
		want  string
	}{
		{"checkbox off", controller.FileItem{Name: "a"}, true, "  [ ] a"},
		{"checkbox on", controller.FileItem{Name: "a", Selected: true}, true, "  [x] a"},
		{"radio off", controller.FileItem{Name: "a"}, false, "  ( ) a"},
		{"radio on", controller.FileItem{Name: "a", Selected: true}, false, "  (•) a"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := renderItem(tt.item, false, tt.multi); got != tt.want {
				t.Errorf("renderItem = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	tests := []struct{ i, n, want int }{
		{0, 0, 0},
		{-1, 3, 0},
		{1, 3, 1},
		{5, 3, 2},
	}
	for _, tt := range tests {
		if got := clamp(tt.i, tt.n); got != tt.want {
			t.Errorf("clamp(%d, %d) = %d, want %d", tt.i, tt.n, got, tt.want)
		}
	}
}
