package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/weversonbarbieri/accountant-pdf-extract/cli/render"
	"github.com/weversonbarbieri/accountant-pdf-extract/controller"
)

// DeleteResponse is the response for the delete command.
type DeleteResponse struct {
	Deleted string   `json:"deleted" yaml:"deleted"`
	Files   []string `json:"files" yaml:"files"`
}

// DeleteCommand returns the delete command.
func DeleteCommand() *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Usage:     "Delete a JSON file from the backend",
		ArgsUsage: "NAME",
		Flags: append(OutputFlags(),
			&cli.BoolFlag{
				Name:    "yes",
				Aliases: []string{"y"},
				Usage:   "Do not ask for confirmation",
			},
		),
		Action: deleteAction,
	}
}

func deleteAction(c *cli.Context) error {
	r, err := render.NewRenderer(c)
	if err != nil {
		return err
	}
	if c.NArg() != 1 {
		return cli.Exit("delete requires exactly one NAME", exitFailure)
	}
	name := c.Args().First()

	s, err := newSession(c, false)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx, cancel := signalContext(c)
	defer cancel()

	ctrl := s.controller()
	answer := controller.Event(controller.DeleteConfirmed{})
	if !c.Bool("yes") {
		in := c.App.Reader
		if in == nil {
			in = os.Stdin
		}
		if !confirm(in, s.stderr, name) {
			answer = controller.DeleteCanceled{}
		}
	}

	if err := controller.Drive(ctx, ctrl, controller.DeleteRequested{Name: name}, answer); err != nil {
		return fmt.Errorf("delete interrupted: %w", err)
	}
	s.printNotices(ctrl)

	if ctrl.State(controller.OpDelete) == controller.OpSucceeded {
		if err := r.Render(DeleteResponse{Deleted: name, Files: serverFileNames(ctrl.Page())}); err != nil {
			return err
		}
	}
	return s.finish()
}

// confirm asks the confirmation question on w and reads the answer from in.
// Only "y" or "yes" confirms.
func confirm(in io.Reader, w io.Writer, name string) bool {
	fmt.Fprintf(w, "Tem certeza que deseja excluir o arquivo %s? [y/N] ", name)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes", "s", "sim":
		return true
	default:
		return false
	}
}
