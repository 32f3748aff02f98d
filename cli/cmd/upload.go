package cmd

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/weversonbarbieri/accountant-pdf-extract/cli/render"
	"github.com/weversonbarbieri/accountant-pdf-extract/controller"
	"github.com/weversonbarbieri/accountant-pdf-extract/types"
)

// UploadResponse is the response for the upload command.
type UploadResponse struct {
	Uploaded []string `json:"uploaded" yaml:"uploaded"`
	Files    []string `json:"files" yaml:"files"`
}

// UploadCommand returns the upload command.
func UploadCommand() *cli.Command {
	return &cli.Command{
		Name:      "upload",
		Usage:     "Upload JSON files to the backend (non-JSON files are skipped)",
		ArgsUsage: "FILE...",
		Flags:     OutputFlags(),
		Action:    uploadAction,
	}
}

func uploadAction(c *cli.Context) error {
	r, err := render.NewRenderer(c)
	if err != nil {
		return err
	}
	if c.NArg() == 0 {
		return cli.Exit("upload requires at least one FILE", exitFailure)
	}
	files, err := types.StagePaths(c.Args().Slice())
	if err != nil {
		return cli.Exit(err.Error(), exitFailure)
	}

	s, err := newSession(c, false)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx, cancel := signalContext(c)
	defer cancel()

	ctrl := s.controller()
	if err := controller.Drive(ctx, ctrl, controller.FilesSelected{Files: files}, controller.UploadRequested{}); err != nil {
		return fmt.Errorf("upload interrupted: %w", err)
	}
	s.printNotices(ctrl)

	if ctrl.State(controller.OpUpload) == controller.OpSucceeded {
		resp := UploadResponse{
			Uploaded: fileNames(types.FilterJSON(files)),
			Files:    serverFileNames(ctrl.Page()),
		}
		if err := r.Render(resp); err != nil {
			return err
		}
	}
	return s.finish()
}

func fileNames(files []types.StagedFile) []string {
	names := make([]string, 0, len(files))
	for _, f := range files {
		names = append(names, f.Name)
	}
	return names
}

func serverFileNames(p controller.Page) []string {
	names := make([]string, 0, len(p.ServerFiles))
	for _, f := range p.ServerFiles {
		names = append(names, f.Name)
	}
	return names
}
