package controller

import (
	"fmt"
	"maps"
	"slices"

	"github.com/weversonbarbieri/accountant-pdf-extract/types"
	"github.com/weversonbarbieri/accountant-pdf-extract/view"
)

// Upload button labels.
const (
	UploadLabel     = "Enviar arquivos"
	UploadBusyLabel = "Enviando..."
)

// PDF picker placeholder texts.
const (
	PDFNoneSelected    = "Nenhum arquivo selecionado"
	pdfManySelectedFmt = "%d arquivos PDF selecionados"
)

// Page is the render-ready view of the controller state.
type Page struct {
	Tab Tab `json:"tab" yaml:"tab"`

	Staged   []view.PreviewItem `json:"staged" yaml:"staged"`
	DragOver bool               `json:"drag_over" yaml:"drag_over"`
	// PickerID changes whenever the file picker must be reset.
	PickerID int    `json:"-" yaml:"-"`
	Upload   Button `json:"upload" yaml:"upload"`

	ServerFiles []FileItem       `json:"server_files" yaml:"server_files"`
	AllSelected bool             `json:"all_selected" yaml:"all_selected"`
	Processing  bool             `json:"processing" yaml:"processing"`
	Results     view.ResultsView `json:"results" yaml:"results"`

	PDF PDFPanel `json:"pdf" yaml:"pdf"`

	Modal Modal `json:"modal" yaml:"modal"`

	Notices []Notice              `json:"notices,omitempty" yaml:"notices,omitempty"`
	Ops     map[Operation]OpState `json:"-" yaml:"-"`
}

// Button is a control that is disabled while its request is in flight.
type Button struct {
	Label    string `json:"label" yaml:"label"`
	Disabled bool   `json:"disabled" yaml:"disabled"`
}

// FileItem is one selectable entry of a file list.
type FileItem struct {
	Name     string `json:"name" yaml:"name"`
	Selected bool   `json:"selected" yaml:"selected"`
}

// PDFPanel is the PDF tab.
type PDFPanel struct {
	Files       []string `json:"files" yaml:"files"`
	Placeholder string   `json:"placeholder" yaml:"placeholder"`
	// FormVisible is false while the indicator is shown.
	FormVisible bool          `json:"form_visible" yaml:"form_visible"`
	Indicator   bool          `json:"indicator" yaml:"indicator"`
	Progress    int           `json:"progress" yaml:"progress"`
	Result      *view.PDFView `json:"result,omitempty" yaml:"result,omitempty"`
	Artifacts   []FileItem    `json:"artifacts,omitempty" yaml:"artifacts,omitempty"`
	// MultiSelect is true when artifacts are checkboxes rather than radio buttons.
	MultiSelect bool `json:"multi_select" yaml:"multi_select"`
}

// Modal is the delete confirmation dialog.
type Modal struct {
	Open   bool   `json:"open" yaml:"open"`
	Target string `json:"target,omitempty" yaml:"target,omitempty"`
}

// Page derives the current view.
func (c *Controller) Page() Page {
	p := Page{
		Tab:        c.tab,
		Staged:     view.StagedPreview(c.staged),
		DragOver:   c.dragOver,
		PickerID:   c.pickerID,
		Upload:     Button{Label: UploadLabel},
		Processing: c.processPending > 0,
		Results:    c.results,
		Modal:      Modal{Open: c.modalOpen, Target: c.deleteTarget},
		Notices:    slices.Clone(c.notices),
		Ops:        maps.Clone(c.ops),
	}
	if c.ops[OpUpload] == OpInFlight {
		p.Upload = Button{Label: UploadBusyLabel, Disabled: true}
	}

	p.AllSelected = len(c.serverFiles) > 0
	for _, name := range c.serverFiles {
		sel := c.selected[name]
		p.ServerFiles = append(p.ServerFiles, FileItem{Name: name, Selected: sel})
		p.AllSelected = p.AllSelected && sel
	}

	p.PDF = PDFPanel{
		Placeholder: pdfPlaceholder(c.pdf.files),
		FormVisible: !c.pdf.running,
		Indicator:   c.pdf.running,
		Progress:    c.pdf.progress,
		Result:      c.pdf.result,
		MultiSelect: c.mode == types.PDFModeBatch,
	}
	for _, f := range c.pdf.files {
		p.PDF.Files = append(p.PDF.Files, f.Name)
	}
	for _, name := range c.artifacts {
		p.PDF.Artifacts = append(p.PDF.Artifacts, FileItem{Name: name, Selected: c.artifactSel[name]})
	}
	return p
}

// Staged returns a copy of the staged files.
func (c *Controller) Staged() []types.StagedFile {
	return slices.Clone(c.staged)
}

// State returns the lifecycle state of op.
func (c *Controller) State(op Operation) OpState {
	return c.ops[op]
}

// Notices returns the notices currently shown.
func (c *Controller) Notices() []Notice {
	return slices.Clone(c.notices)
}

func pdfPlaceholder(files []types.StagedFile) string {
	switch len(files) {
	case 0:
		return PDFNoneSelected
	case 1:
		return files[0].Name
	default:
		return fmt.Sprintf(pdfManySelectedFmt, len(files))
	}
}
