package controller

import (
	"github.com/weversonbarbieri/accountant-pdf-extract/types"
)

// Event is a user action or the completion of a Command.
// Every event is handled by Controller.Dispatch.
type Event interface {
	event()
}

// Tab names a panel of the page.
type Tab string

// Panels.
const (
	TabJSON Tab = "json"
	TabPDF  Tab = "pdf"
)

// Valid reports whether t names a known panel.
func (t Tab) Valid() bool {
	return t == TabJSON || t == TabPDF
}

// --- Tabs ---

// TabSelected activates a panel. Unknown tabs are ignored.
type TabSelected struct {
	Tab Tab
}

// --- Staging ---

// FilesSelected adds files chosen with the file picker.
type FilesSelected struct {
	Files []types.StagedFile
}

// FilesDropped adds files dropped on the drop zone.
type FilesDropped struct {
	Files []types.StagedFile
}

// StagingFailed reports that the host could not read the chosen paths.
type StagingFailed struct {
	Err error
}

// DragEntered highlights the drop zone.
type DragEntered struct{}

// DragLeft removes the drop zone highlight.
type DragLeft struct{}

// StagedFileRemoved removes one staged file by position.
type StagedFileRemoved struct {
	Index int
}

// StagingCleared removes every staged file.
type StagingCleared struct{}

// UploadRequested sends the staged files to the server.
type UploadRequested struct{}

// UploadCompleted carries the /upload outcome.
type UploadCompleted struct {
	Resp *types.UploadResponse
	Err  error
}

// --- Server files and processing ---

// RefreshRequested reloads the server file list.
type RefreshRequested struct{}

// FilesListed carries the server file list.
type FilesListed struct {
	Names []string
	Err   error
}

// ServerFileToggled flips the checkbox of one server file.
type ServerFileToggled struct {
	Name string
}

// AllServerFilesToggled sets every server file checkbox.
type AllServerFilesToggled struct {
	Checked bool
}

// ProcessRequested processes the checked server files.
type ProcessRequested struct{}

// ProcessCompleted carries the /processar outcome.
type ProcessCompleted struct {
	// FromArtifacts is set when the request came from the PDF artifact list.
	FromArtifacts bool
	Resp          *types.ProcessResponse
	Err           error
}

// --- PDF ---

// PDFSelected replaces the PDF selection. An empty list clears it.
type PDFSelected struct {
	Files []types.StagedFile
}

// PDFProcessRequested sends the selected PDFs for extraction.
type PDFProcessRequested struct{}

// PDFProgressTicked advances the simulated progress bar of run Gen.
type PDFProgressTicked struct {
	Gen int
}

// PDFProcessCompleted carries the /processar-pdf outcome of run Gen.
type PDFProcessCompleted struct {
	Gen  int
	Resp *types.PDFResponse
	Err  error
}

// PDFResultRevealed swaps the progress indicator of run Gen for its result.
type PDFResultRevealed struct {
	Gen int
}

// ArtifactToggled selects a generated JSON file. In single mode the list
// behaves like radio buttons; in batch mode like checkboxes.
type ArtifactToggled struct {
	Name string
}

// ArtifactProcessRequested processes the selected generated JSON files.
type ArtifactProcessRequested struct{}

// --- Deletion ---

// DeleteRequested opens the confirmation modal for Name.
type DeleteRequested struct {
	Name string
}

// DeleteConfirmed deletes the file named in the modal.
type DeleteConfirmed struct{}

// DeleteCanceled closes the modal without a request. Backdrop is set
// when the user dismissed it by clicking outside the dialog.
type DeleteCanceled struct {
	Backdrop bool
}

// DeleteCompleted carries the /excluir-arquivo outcome.
type DeleteCompleted struct {
	Name string
	Resp *types.DeleteResponse
	Err  error
}

// --- Notices ---

// NoticeDismissed removes a notice. Hosts send it NoticeTTL after the
// notice was raised.
type NoticeDismissed struct {
	ID int
}

func (TabSelected) event()              {}
func (FilesSelected) event()            {}
func (FilesDropped) event()             {}
func (StagingFailed) event()            {}
func (DragEntered) event()              {}
func (DragLeft) event()                 {}
func (StagedFileRemoved) event()        {}
func (StagingCleared) event()           {}
func (UploadRequested) event()          {}
func (UploadCompleted) event()          {}
func (RefreshRequested) event()         {}
func (FilesListed) event()              {}
func (ServerFileToggled) event()        {}
func (AllServerFilesToggled) event()    {}
func (ProcessRequested) event()         {}
func (ProcessCompleted) event()         {}
func (PDFSelected) event()              {}
func (PDFProcessRequested) event()      {}
func (PDFProgressTicked) event()        {}
func (PDFProcessCompleted) event()      {}
func (PDFResultRevealed) event()        {}
func (ArtifactToggled) event()          {}
func (ArtifactProcessRequested) event() {}
func (DeleteRequested) event()          {}
func (DeleteConfirmed) event()          {}
func (DeleteCanceled) event()           {}
func (DeleteCompleted) event()          {}
func (NoticeDismissed) event()          {}
