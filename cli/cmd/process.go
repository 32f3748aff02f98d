package cmd

import (
	"fmt"
	"slices"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/weversonbarbieri/accountant-pdf-extract/cli/render"
	"github.com/weversonbarbieri/accountant-pdf-extract/controller"
)

// ProcessCommand returns the process command.
func ProcessCommand() *cli.Command {
	return &cli.Command{
		Name:      "process",
		Usage:     "Process JSON files already on the backend",
		ArgsUsage: "NAME...",
		Flags: append(OutputFlags(),
			&cli.BoolFlag{
				Name:  "all",
				Usage: "Process every file on the backend",
			},
		),
		Action: processAction,
	}
}

func processAction(c *cli.Context) error {
	r, err := render.NewRenderer(c)
	if err != nil {
		return err
	}
	all := c.Bool("all")
	if c.NArg() == 0 && !all {
		return cli.Exit("process requires at least one NAME or --all", exitFailure)
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

	events, err := selectionEvents(serverFileNames(ctrl.Page()), c.Args().Slice(), all)
	if err != nil {
		return cli.Exit(err.Error(), exitFailure)
	}
	events = append(events, controller.ProcessRequested{})
	if err := controller.Drive(ctx, ctrl, events...); err != nil {
		return fmt.Errorf("process interrupted: %w", err)
	}
	s.printNotices(ctrl)

	if err := r.Render(ctrl.Page().Results); err != nil {
		return err
	}
	return s.finish()
}

// selectionEvents checks the requested names against the listing and
// returns the events selecting them. Duplicates are ignored.
func selectionEvents(listed, names []string, all bool) ([]controller.Event, error) {
	if all {
		return []controller.Event{controller.AllServerFilesToggled{Checked: true}}, nil
	}

	var (
		events  []controller.Event
		missing []string
		seen    = make(map[string]bool)
	)
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true
		if !slices.Contains(listed, name) {
			missing = append(missing, name)
			continue
		}
		events = append(events, controller.ServerFileToggled{Name: name})
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("not on the server: %s", strings.Join(missing, ", "))
	}
	return events, nil
}
