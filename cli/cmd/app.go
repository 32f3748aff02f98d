package cmd

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/weversonbarbieri/accountant-pdf-extract/types"
)

// NewApp builds the docpanel CLI application. The caller sets the exit
// error handler.
func NewApp(commit string) *cli.App {
	return &cli.App{
		Name:    "docpanel",
		Usage:   "Upload, process, and manage documents on the extraction backend",
		Version: fmt.Sprintf("%s (commit: %s)", types.Version, commit),
		Flags:   GlobalFlags(),
		Commands: []*cli.Command{
			TUICommand(),
			FilesCommand(),
			UploadCommand(),
			ProcessCommand(),
			PDFCommand(),
			DeleteCommand(),
			DevServerCommand(),
			VersionCommand(commit),
		},
	}
}
