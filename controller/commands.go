package controller

import (
	"context"
	"slices"
	"time"

	"github.com/weversonbarbieri/accountant-pdf-extract/types"
)

// Backend is the document processing server as seen by the controller.
// *client.Client implements it.
type Backend interface {
	Upload(ctx context.Context, files []types.StagedFile) (*types.UploadResponse, error)
	Process(ctx context.Context, names []string) (*types.ProcessResponse, error)
	ProcessPDF(ctx context.Context, files []types.StagedFile) (*types.PDFResponse, error)
	DeleteFile(ctx context.Context, name string) (*types.DeleteResponse, error)
	ListFiles(ctx context.Context) ([]string, error)
}

// Command is asynchronous work requested by Dispatch. Its result is fed
// back through Dispatch. A nil result means there is nothing to report.
type Command func(ctx context.Context) Event

func (c *Controller) uploadCmd(files []types.StagedFile) Command {
	files = slices.Clone(files)
	return func(ctx context.Context) Event {
		resp, err := c.backend.Upload(ctx, files)
		return UploadCompleted{Resp: resp, Err: err}
	}
}

func (c *Controller) processCmd(names []string, fromArtifacts bool) Command {
	names = slices.Clone(names)
	return func(ctx context.Context) Event {
		resp, err := c.backend.Process(ctx, names)
		return ProcessCompleted{FromArtifacts: fromArtifacts, Resp: resp, Err: err}
	}
}

func (c *Controller) pdfCmd(gen int, files []types.StagedFile) Command {
	files = slices.Clone(files)
	return func(ctx context.Context) Event {
		resp, err := c.backend.ProcessPDF(ctx, files)
		return PDFProcessCompleted{Gen: gen, Resp: resp, Err: err}
	}
}

func (c *Controller) deleteCmd(name string) Command {
	return func(ctx context.Context) Event {
		resp, err := c.backend.DeleteFile(ctx, name)
		return DeleteCompleted{Name: name, Resp: resp, Err: err}
	}
}

func (c *Controller) listCmd() Command {
	return func(ctx context.Context) Event {
		names, err := c.backend.ListFiles(ctx)
		return FilesListed{Names: names, Err: err}
	}
}

// after emits ev once d has elapsed, or nothing if ctx ends first.
func after(d time.Duration, ev Event) Command {
	return func(ctx context.Context) Event {
		t := time.NewTimer(d)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			return ev
		}
	}
}
