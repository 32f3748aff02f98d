package cmd

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/weversonbarbieri/accountant-pdf-extract/cli/render"
	"github.com/weversonbarbieri/accountant-pdf-extract/controller"
)

// FilesCommand returns the files command, which lists the JSON files
// available on the backend.
func FilesCommand() *cli.Command {
	return &cli.Command{
		Name:   "files",
		Usage:  "List JSON files available on the backend",
		Flags:  OutputFlags(),
		Action: filesAction,
	}
}

func filesAction(c *cli.Context) error {
	r, err := render.NewRenderer(c)
	if err != nil {
		return err
	}

	s, err := newSession(c, false)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx, cancel := signalContext(c)
	defer cancel()

	ctrl := s.controller()
	if err := controller.Start(ctx, ctrl); err != nil {
		return fmt.Errorf("list interrupted: %w", err)
	}
	if ctrl.State(controller.OpList) != controller.OpSucceeded {
		s.printNotices(ctrl)
		return s.finish()
	}
	if err := r.Render(serverFileNames(ctrl.Page())); err != nil {
		return err
	}
	return s.finish()
}
