// Package controller implements the docpanel page controller.
//
// The Controller owns every piece of page state (active tab, staged files,
// server file selection, result views, PDF progress, pending deletion,
// notices). Hosts feed it one Event per user action through Dispatch and
// run the Commands it returns; command results re-enter through Dispatch.
// The controller itself never blocks and starts no goroutines, so it must
// be driven from a single goroutine.
package controller

import (
	"fmt"
	"slices"
	"time"

	"github.com/weversonbarbieri/accountant-pdf-extract/log"
	"github.com/weversonbarbieri/accountant-pdf-extract/metrics"
	"github.com/weversonbarbieri/accountant-pdf-extract/types"
	"github.com/weversonbarbieri/accountant-pdf-extract/view"
)

// NoticeTTL is how long hosts keep a notice on screen.
const NoticeTTL = 5 * time.Second

// Progress configures the simulated PDF progress bar.
type Progress struct {
	// Interval between increments.
	Interval time.Duration
	// Step is the increment in percent.
	Step int
	// Ceiling is the highest value reached before the reply arrives.
	Ceiling int
	// RevealDelay is the pause between the bar reaching 100 and the result showing.
	RevealDelay time.Duration
}

// DefaultProgress returns the default progress settings.
func DefaultProgress() Progress {
	return Progress{
		Interval:    time.Second,
		Step:        5,
		Ceiling:     90,
		RevealDelay: 500 * time.Millisecond,
	}
}

// Options configures a Controller.
type Options struct {
	PDFMode  types.PDFMode
	Progress Progress
	Logger   *log.Logger
	Metrics  *metrics.Collector
}

// Operation names a request-issuing action.
type Operation string

// Operations tracked by the controller.
const (
	OpUpload    Operation = "upload"
	OpProcess   Operation = "process"
	OpPDF       Operation = "process_pdf"
	OpArtifacts Operation = "process_artifacts"
	OpDelete    Operation = "delete"
	OpList      Operation = "list"
)

// OpState is the lifecycle of an operation. Terminal states behave like
// Idle for the purpose of starting the operation again.
type OpState int

// Operation states.
const (
	OpIdle OpState = iota
	OpInFlight
	OpSucceeded
	OpFailed
)

func (s OpState) String() string {
	switch s {
	case OpInFlight:
		return "in_flight"
	case OpSucceeded:
		return "succeeded"
	case OpFailed:
		return "failed"
	default:
		return "idle"
	}
}

// NoticeKind is the severity of a notice.
type NoticeKind string

// Notice kinds.
const (
	NoticeInfo    NoticeKind = "info"
	NoticeSuccess NoticeKind = "success"
	NoticeWarning NoticeKind = "warning"
	NoticeError   NoticeKind = "error"
)

// Notice is a transient message shown to the user.
type Notice struct {
	ID   int        `json:"id" yaml:"id"`
	Kind NoticeKind `json:"kind" yaml:"kind"`
	Text string     `json:"text" yaml:"text"`
}

// Notice texts.
const (
	MsgOnlyJSON          = "Por favor, selecione apenas arquivos JSON."
	MsgOnlyPDF           = "Por favor, selecione apenas arquivos PDF."
	MsgNothingToUpload   = "Por favor, selecione pelo menos um arquivo para upload."
	MsgNothingToProcess  = "Por favor, selecione pelo menos um arquivo para processar."
	MsgNoPDF             = "Por favor, selecione pelo menos um arquivo PDF para processar."
	MsgNoArtifact        = "Por favor, selecione pelo menos um arquivo JSON para processar."
	MsgUploaded          = "Arquivos enviados com sucesso!"
	MsgArtifactsDone     = "Processamento concluído com sucesso!"
	MsgUploadFailed      = "Erro ao enviar arquivos: "
	MsgDeleteFailed      = "Erro ao excluir arquivo: "
	MsgPDFFailed         = "Erro ao processar os arquivos: "
	MsgArtifactsFailed   = "Erro ao processar os arquivos JSON."
	MsgListFailed        = "Erro ao listar arquivos: "
	MsgReadFailed        = "Erro ao ler arquivos: "
	msgProcessingFmt     = "Processando %d arquivos JSON."
	msgPDFSkippedFmt     = "%d arquivo(s) ignorado(s): apenas PDF é aceito."
	msgSingleModeOnlyFmt = "Apenas o primeiro PDF será enviado (%s)."
)

// Controller holds the page state. It is not safe for concurrent use.
type Controller struct {
	backend  Backend
	mode     types.PDFMode
	progress Progress
	logger   *log.Logger
	metrics  *metrics.Collector

	tab      Tab
	staged   []types.StagedFile
	dragOver bool
	pickerID int

	serverFiles []string
	selected    map[string]bool

	processPending int
	results        view.ResultsView

	pdf pdfState

	artifacts   []string
	artifactSel map[string]bool

	deleteTarget string
	modalOpen    bool

	notices    []Notice
	nextNotice int

	ops map[Operation]OpState
}

type pdfState struct {
	files    []types.StagedFile
	gen      int
	awaiting bool
	running  bool
	progress int
	pending  *view.PDFView
	result   *view.PDFView
}

// New creates a controller on the JSON tab.
func New(backend Backend, opts Options) *Controller {
	if opts.PDFMode == "" {
		opts.PDFMode = types.PDFModeSingle
	}
	def := DefaultProgress()
	if opts.Progress.Interval <= 0 {
		opts.Progress.Interval = def.Interval
	}
	if opts.Progress.Step <= 0 {
		opts.Progress.Step = def.Step
	}
	if opts.Progress.Ceiling <= 0 || opts.Progress.Ceiling > 100 {
		opts.Progress.Ceiling = def.Ceiling
	}
	if opts.Progress.RevealDelay < 0 {
		opts.Progress.RevealDelay = def.RevealDelay
	}
	if opts.Logger == nil {
		opts.Logger = log.Nop()
	}

	return &Controller{
		backend:     backend,
		mode:        opts.PDFMode,
		progress:    opts.Progress,
		logger:      opts.Logger,
		metrics:     opts.Metrics,
		tab:         TabJSON,
		selected:    make(map[string]bool),
		results:     view.InitialResults(),
		artifactSel: make(map[string]bool),
		ops:         make(map[Operation]OpState),
	}
}

// Init returns the commands that load the initial page.
func (c *Controller) Init() []Command {
	c.ops[OpList] = OpInFlight
	return []Command{c.listCmd()}
}

// Dispatch applies ev to the controller state and returns the commands
// the host must run.
func (c *Controller) Dispatch(ev Event) []Command {
	c.logger.Debug("dispatch", map[string]any{"event": fmt.Sprintf("%T", ev)})

	switch ev := ev.(type) {
	case TabSelected:
		if ev.Tab.Valid() {
			c.tab = ev.Tab
		}

	case FilesSelected:
		c.stage(ev.Files)
	case FilesDropped:
		c.dragOver = false
		c.stage(ev.Files)
	case StagingFailed:
		c.userError(NoticeError, MsgReadFailed+errText(ev.Err))
	case DragEntered:
		c.dragOver = true
	case DragLeft:
		c.dragOver = false
	case StagedFileRemoved:
		if ev.Index >= 0 && ev.Index < len(c.staged) {
			c.staged = slices.Delete(c.staged, ev.Index, ev.Index+1)
		}
	case StagingCleared:
		c.staged = nil
		c.pickerID++

	case UploadRequested:
		return c.upload()
	case UploadCompleted:
		return c.uploadCompleted(ev)

	case RefreshRequested:
		return c.reload()
	case FilesListed:
		c.filesListed(ev)
	case ServerFileToggled:
		if slices.Contains(c.serverFiles, ev.Name) {
			c.selected[ev.Name] = !c.selected[ev.Name]
		}
	case AllServerFilesToggled:
		for _, name := range c.serverFiles {
			c.selected[name] = ev.Checked
		}
	case ProcessRequested:
		return c.process()
	case ProcessCompleted:
		c.processCompleted(ev)

	case PDFSelected:
		c.selectPDF(ev.Files)
	case PDFProcessRequested:
		return c.processPDF()
	case PDFProgressTicked:
		return c.tick(ev)
	case PDFProcessCompleted:
		return c.pdfCompleted(ev)
	case PDFResultRevealed:
		c.reveal(ev)
	case ArtifactToggled:
		c.toggleArtifact(ev.Name)
	case ArtifactProcessRequested:
		return c.processArtifacts()

	case DeleteRequested:
		if ev.Name != "" {
			c.deleteTarget = ev.Name
			c.modalOpen = true
		}
	case DeleteConfirmed:
		return c.confirmDelete()
	case DeleteCanceled:
		c.deleteTarget = ""
		c.modalOpen = false
	case DeleteCompleted:
		return c.deleteCompleted(ev)

	case NoticeDismissed:
		c.notices = slices.DeleteFunc(c.notices, func(n Notice) bool { return n.ID == ev.ID })
	}
	return nil
}

// --- staging ---

func (c *Controller) stage(files []types.StagedFile) {
	accepted := types.FilterJSON(files)
	if len(accepted) == 0 {
		c.metrics.AddFilesRejected(len(files))
		c.userError(NoticeWarning, MsgOnlyJSON)
		return
	}
	c.metrics.AddFilesStaged(len(accepted))
	c.metrics.AddFilesRejected(len(files) - len(accepted))
	c.staged = append(c.staged, accepted...)
}

// --- upload ---

func (c *Controller) upload() []Command {
	if c.ops[OpUpload] == OpInFlight {
		return nil
	}
	if len(c.staged) == 0 {
		c.userError(NoticeWarning, MsgNothingToUpload)
		return nil
	}
	c.ops[OpUpload] = OpInFlight
	return []Command{c.uploadCmd(c.staged)}
}

func (c *Controller) uploadCompleted(ev UploadCompleted) []Command {
	switch {
	case ev.Err != nil:
		c.ops[OpUpload] = OpFailed
		c.notify(NoticeError, MsgUploadFailed+ev.Err.Error())
		return nil
	case ev.Resp == nil || !ev.Resp.Success:
		c.ops[OpUpload] = OpFailed
		c.metrics.IncServerReportedError()
		var msg string
		if ev.Resp != nil {
			msg = ev.Resp.Message
		}
		c.notify(NoticeError, MsgUploadFailed+msg)
		return nil
	}

	c.ops[OpUpload] = OpSucceeded
	c.staged = nil
	c.pickerID++
	c.notify(NoticeSuccess, MsgUploaded)
	return c.reload()
}

// --- server files ---

// reload re-reads the server file list and resets the page state a
// browser reload would reset. The active tab is kept.
func (c *Controller) reload() []Command {
	c.staged = nil
	c.dragOver = false
	c.pickerID++
	clear(c.selected)
	c.results = view.InitialResults()
	if !c.pdf.awaiting && !c.pdf.running {
		c.pdf = pdfState{gen: c.pdf.gen}
		c.artifacts = nil
		clear(c.artifactSel)
	}
	c.ops[OpList] = OpInFlight
	return []Command{c.listCmd()}
}

func (c *Controller) filesListed(ev FilesListed) {
	if ev.Err != nil {
		c.ops[OpList] = OpFailed
		c.notify(NoticeError, MsgListFailed+ev.Err.Error())
		return
	}
	c.ops[OpList] = OpSucceeded
	c.serverFiles = slices.Clone(ev.Names)
	for name := range c.selected {
		if !slices.Contains(c.serverFiles, name) {
			delete(c.selected, name)
		}
	}
}

// SelectedFiles returns the checked server files in list order.
func (c *Controller) SelectedFiles() []string {
	var out []string
	for _, name := range c.serverFiles {
		if c.selected[name] {
			out = append(out, name)
		}
	}
	return out
}

// --- processing ---

func (c *Controller) process() []Command {
	names := c.SelectedFiles()
	if len(names) == 0 {
		c.userError(NoticeWarning, MsgNothingToProcess)
		return nil
	}
	c.processPending++
	c.ops[OpProcess] = OpInFlight
	c.results = view.ResultsView{}
	return []Command{c.processCmd(names, false)}
}

func (c *Controller) processCompleted(ev ProcessCompleted) {
	op := OpProcess
	if ev.FromArtifacts {
		op = OpArtifacts
	}
	if c.processPending > 0 {
		c.processPending--
	}

	if ev.Err != nil {
		c.ops[op] = OpFailed
		c.results = view.CommunicationError(ev.Err)
		if ev.FromArtifacts {
			c.notify(NoticeError, MsgArtifactsFailed)
		}
		return
	}

	c.results = view.ResultsFromProcess(ev.Resp)
	success, failed := c.results.Counts()
	c.metrics.AddResults(success, failed)
	if failed > 0 {
		c.metrics.IncServerReportedError()
		c.ops[op] = OpFailed
	} else {
		c.ops[op] = OpSucceeded
	}
	if ev.FromArtifacts {
		c.notify(NoticeInfo, MsgArtifactsDone)
	}
}

// --- PDF ---

func (c *Controller) selectPDF(files []types.StagedFile) {
	if len(files) == 0 {
		c.pdf.files = nil
		return
	}
	pdfs := types.FilterPDF(files)
	rejected := len(files) - len(pdfs)
	c.metrics.AddFilesRejected(rejected)
	if len(pdfs) == 0 {
		c.userError(NoticeWarning, MsgOnlyPDF)
		return
	}
	if rejected > 0 {
		c.notify(NoticeWarning, fmt.Sprintf(msgPDFSkippedFmt, rejected))
	}
	if c.mode == types.PDFModeSingle && len(pdfs) > 1 {
		c.notify(NoticeInfo, fmt.Sprintf(msgSingleModeOnlyFmt, pdfs[0].Name))
		pdfs = pdfs[:1]
	}
	c.metrics.AddFilesStaged(len(pdfs))
	c.pdf.files = pdfs
}

func (c *Controller) processPDF() []Command {
	if len(c.pdf.files) == 0 {
		c.userError(NoticeWarning, MsgNoPDF)
		return nil
	}

	c.pdf.gen++
	c.pdf.awaiting = true
	c.pdf.running = true
	c.pdf.progress = 0
	c.pdf.pending = nil
	c.pdf.result = nil
	c.artifacts = nil
	clear(c.artifactSel)
	c.ops[OpPDF] = OpInFlight

	return []Command{
		c.pdfCmd(c.pdf.gen, c.pdf.files),
		after(c.progress.Interval, PDFProgressTicked{Gen: c.pdf.gen}),
	}
}

func (c *Controller) tick(ev PDFProgressTicked) []Command {
	if ev.Gen != c.pdf.gen || !c.pdf.awaiting {
		return nil
	}
	c.pdf.progress = min(c.pdf.progress+c.progress.Step, c.progress.Ceiling)
	if c.pdf.progress >= c.progress.Ceiling {
		return nil
	}
	return []Command{after(c.progress.Interval, PDFProgressTicked{Gen: ev.Gen})}
}

func (c *Controller) pdfCompleted(ev PDFProcessCompleted) []Command {
	if ev.Gen != c.pdf.gen || !c.pdf.awaiting {
		c.logger.Debug("stale pdf reply dropped", map[string]any{"gen": ev.Gen, "current": c.pdf.gen})
		return nil
	}
	c.pdf.awaiting = false

	if ev.Err != nil {
		c.ops[OpPDF] = OpFailed
		c.pdf.running = false
		pv := view.PDFCommunicationError(ev.Err)
		c.pdf.result = &pv
		c.notify(NoticeError, MsgPDFFailed+ev.Err.Error())
		return nil
	}

	pv := view.PDFResult(ev.Resp)
	if pv.Success {
		c.ops[OpPDF] = OpSucceeded
	} else {
		c.ops[OpPDF] = OpFailed
		c.metrics.IncServerReportedError()
	}
	c.pdf.progress = 100
	c.pdf.pending = &pv
	return []Command{after(c.progress.RevealDelay, PDFResultRevealed{Gen: ev.Gen})}
}

func (c *Controller) reveal(ev PDFResultRevealed) {
	if ev.Gen != c.pdf.gen || c.pdf.pending == nil {
		return
	}
	c.pdf.running = false
	c.pdf.result = c.pdf.pending
	c.pdf.pending = nil
	c.artifacts = slices.Clone(c.pdf.result.Artifacts)
	clear(c.artifactSel)
}

func (c *Controller) toggleArtifact(name string) {
	if !slices.Contains(c.artifacts, name) {
		return
	}
	if c.mode == types.PDFModeSingle {
		clear(c.artifactSel)
		c.artifactSel[name] = true
		return
	}
	c.artifactSel[name] = !c.artifactSel[name]
}

// SelectedArtifacts returns the chosen generated files in list order.
func (c *Controller) SelectedArtifacts() []string {
	var out []string
	for _, name := range c.artifacts {
		if c.artifactSel[name] {
			out = append(out, name)
		}
	}
	return out
}

func (c *Controller) processArtifacts() []Command {
	names := c.SelectedArtifacts()
	if len(names) == 0 {
		c.userError(NoticeWarning, MsgNoArtifact)
		return nil
	}
	c.notify(NoticeInfo, fmt.Sprintf(msgProcessingFmt, len(names)))
	c.processPending++
	c.ops[OpArtifacts] = OpInFlight
	c.results = view.ResultsView{}
	return []Command{c.processCmd(names, true)}
}

// --- deletion ---

func (c *Controller) confirmDelete() []Command {
	name := c.deleteTarget
	c.deleteTarget = ""
	c.modalOpen = false
	if name == "" {
		return nil
	}
	c.ops[OpDelete] = OpInFlight
	return []Command{c.deleteCmd(name)}
}

func (c *Controller) deleteCompleted(ev DeleteCompleted) []Command {
	switch {
	case ev.Err != nil:
		c.ops[OpDelete] = OpFailed
		c.notify(NoticeError, MsgDeleteFailed+ev.Err.Error())
		return nil
	case ev.Resp == nil || !ev.Resp.Success:
		c.ops[OpDelete] = OpFailed
		c.metrics.IncServerReportedError()
		var msg string
		if ev.Resp != nil {
			msg = ev.Resp.Message
		}
		c.notify(NoticeError, MsgDeleteFailed+msg)
		return nil
	}
	c.ops[OpDelete] = OpSucceeded
	return c.reload()
}

// --- notices ---

func (c *Controller) notify(kind NoticeKind, text string) {
	c.nextNotice++
	c.notices = append(c.notices, Notice{ID: c.nextNotice, Kind: kind, Text: text})
	c.logger.Info("notice", map[string]any{"kind": string(kind), "text": text})
}

func (c *Controller) userError(kind NoticeKind, text string) {
	c.metrics.IncUserInputError()
	c.notify(kind, text)
}

func errText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
