package cmd

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/weversonbarbieri/accountant-pdf-extract/cli/render"
	"github.com/weversonbarbieri/accountant-pdf-extract/controller"
	"github.com/weversonbarbieri/accountant-pdf-extract/types"
	"github.com/weversonbarbieri/accountant-pdf-extract/view"
)

// PDFResponse is the response for the pdf command.
type PDFResponse struct {
	PDF     *view.PDFView     `json:"pdf" yaml:"pdf"`
	Results *view.ResultsView `json:"results,omitempty" yaml:"results,omitempty"`
}

// PDFCommand returns the pdf command.
func PDFCommand() *cli.Command {
	return &cli.Command{
		Name:      "pdf",
		Usage:     "Extract PDF files into JSON on the backend",
		ArgsUsage: "FILE...",
		Flags: append(OutputFlags(),
			&cli.StringSliceFlag{
				Name:  "follow",
				Usage: "Process a generated JSON file once extraction finishes (repeatable)",
			},
			&cli.BoolFlag{
				Name:  "quiet",
				Usage: "Do not draw the progress line",
			},
		),
		Action: pdfAction,
	}
}

func pdfAction(c *cli.Context) error {
	r, err := render.NewRenderer(c)
	if err != nil {
		return err
	}
	if c.NArg() == 0 {
		return cli.Exit("pdf requires at least one FILE", exitFailure)
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
	var observe func(controller.Event)
	if !c.Bool("quiet") && isStderrTTY() {
		observe = progressPrinter(s.stderr, ctrl)
	}
	err = controller.DriveObserved(ctx, ctrl, observe,
		controller.PDFSelected{Files: files},
		controller.PDFProcessRequested{},
	)
	if err != nil {
		return fmt.Errorf("pdf interrupted: %w", err)
	}

	resp := PDFResponse{PDF: ctrl.Page().PDF.Result}
	if follow := c.StringSlice("follow"); len(follow) > 0 && resp.PDF != nil && resp.PDF.Success {
		events, err := artifactEvents(ctrl.Page().PDF.Artifacts, follow)
		if err != nil {
			s.printNotices(ctrl)
			return cli.Exit(err.Error(), exitFailure)
		}
		events = append(events, controller.ArtifactProcessRequested{})
		if err := controller.Drive(ctx, ctrl, events...); err != nil {
			return fmt.Errorf("processing interrupted: %w", err)
		}
		results := ctrl.Page().Results
		resp.Results = &results
	}
	s.printNotices(ctrl)

	if err := renderPDF(r, resp); err != nil {
		return err
	}
	return s.finish()
}

func renderPDF(r *render.Renderer, resp PDFResponse) error {
	if r.Format() != render.FormatTable {
		return r.Render(resp)
	}
	if resp.PDF != nil {
		if err := r.Render(resp.PDF); err != nil {
			return err
		}
	}
	if resp.Results != nil {
		return r.Render(resp.Results)
	}
	return nil
}

// artifactEvents selects the requested generated files.
func artifactEvents(artifacts []controller.FileItem, names []string) ([]controller.Event, error) {
	var (
		events  []controller.Event
		missing []string
	)
	for _, name := range names {
		if !slices.ContainsFunc(artifacts, func(a controller.FileItem) bool { return a.Name == name }) {
			missing = append(missing, name)
			continue
		}
		events = append(events, controller.ArtifactToggled{Name: name})
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("not generated by this extraction: %s", strings.Join(missing, ", "))
	}
	return events, nil
}

// progressPrinter redraws a one-line progress indicator on w.
func progressPrinter(w io.Writer, ctrl *controller.Controller) func(controller.Event) {
	return func(ev controller.Event) {
		switch ev.(type) {
		case controller.PDFProcessRequested, controller.PDFProgressTicked, controller.PDFProcessCompleted:
			p := ctrl.Page().PDF
			if p.Indicator {
				fmt.Fprintf(w, "\rProcessando PDF... %3d%%", p.Progress)
			} else {
				fmt.Fprintln(w)
			}
		case controller.PDFResultRevealed:
			fmt.Fprintln(w)
		}
	}
}
