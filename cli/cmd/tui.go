package cmd

import (
	"github.com/urfave/cli/v2"

	"github.com/weversonbarbieri/accountant-pdf-extract/cli/tui"
)

// TUICommand returns the interactive panel command.
func TUICommand() *cli.Command {
	return &cli.Command{
		Name:   "tui",
		Usage:  "Open the interactive upload and processing panel",
		Action: tuiAction,
	}
}

func tuiAction(c *cli.Context) error {
	s, err := newSession(c, true)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx, cancel := signalContext(c)
	defer cancel()

	return tui.Run(ctx, s.controller(), s.metrics)
}
