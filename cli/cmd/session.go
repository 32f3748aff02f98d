package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"

	"github.com/weversonbarbieri/accountant-pdf-extract/cli/config"
	"github.com/weversonbarbieri/accountant-pdf-extract/client"
	"github.com/weversonbarbieri/accountant-pdf-extract/controller"
	"github.com/weversonbarbieri/accountant-pdf-extract/log"
	"github.com/weversonbarbieri/accountant-pdf-extract/metrics"
	"github.com/weversonbarbieri/accountant-pdf-extract/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitFailure   = 1 // user input or server-reported failure
	exitTransport = 2 // backend unreachable, timed out, or undecodable
)

// session is the per-invocation wiring: config, logger, metrics, client.
type session struct {
	cfg     *config.Config
	logger  *log.Logger
	metrics *metrics.Collector
	client  *client.Client

	logFile *os.File
	stderr  io.Writer
}

// loadConfig resolves the config file and applies global flag overrides.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.Resolve(c.String(ConfigFlag.Name))
	if err != nil {
		return nil, err
	}
	if v := c.String(ServerFlag.Name); v != "" {
		cfg.Server.URL = v
	}
	if v := c.String(PDFModeFlag.Name); v != "" {
		cfg.PDF.Mode = types.PDFMode(v)
	}
	if v := c.String(LogFileFlag.Name); v != "" {
		cfg.Log.File = v
	}
	if v := c.String(LogLevelFlag.Name); v != "" {
		cfg.Log.Level = v
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// newSession builds the session for a command. When interactive is set and
// no log file is configured, logs are discarded so they cannot corrupt the
// terminal.
func newSession(c *cli.Context, interactive bool) (*session, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, cli.Exit(err.Error(), exitFailure)
	}

	s := &session{cfg: cfg, stderr: c.App.ErrWriter}
	if s.stderr == nil {
		s.stderr = os.Stderr
	}

	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, cli.Exit(err.Error(), exitFailure)
	}
	var logOut io.Writer = s.stderr
	switch {
	case cfg.Log.File != "":
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, cli.Exit(fmt.Sprintf("cannot open log file: %v", err), exitFailure)
		}
		s.logFile = f
		logOut = f
	case interactive:
		logOut = io.Discard
	}

	sessionID := uuid.NewString()
	s.logger = log.NewLoggerWithWriter(log.Session{ID: sessionID, Server: cfg.Server.URL}, level, logOut)
	s.metrics = metrics.NewCollector(sessionID, cfg.Server.URL)

	s.client, err = client.New(client.Config{
		BaseURL: cfg.Server.URL,
		Timeout: cfg.Server.Timeout.Duration,
		Headers: cfg.Server.Headers,
		PDFMode: cfg.PDF.Mode,
	}, s.logger, s.metrics)
	if err != nil {
		s.Close()
		return nil, cli.Exit(err.Error(), exitFailure)
	}
	return s, nil
}

// controller creates a controller over the session's client.
func (s *session) controller() *controller.Controller {
	return controller.New(s.client, controller.Options{
		PDFMode: s.cfg.PDF.Mode,
		Progress: controller.Progress{
			Interval:    s.cfg.Progress.Interval.Duration,
			Step:        s.cfg.Progress.Step,
			Ceiling:     s.cfg.Progress.Ceiling,
			RevealDelay: s.cfg.Progress.RevealDelay.Duration,
		},
		Logger:  s.logger,
		Metrics: s.metrics,
	})
}

// printNotices writes the controller's notices to stderr, one per line.
func (s *session) printNotices(ctrl *controller.Controller) {
	for _, n := range ctrl.Notices() {
		fmt.Fprintf(s.stderr, "%s: %s\n", n.Kind, n.Text)
	}
}

// exitCode classifies the session outcome from the failure counters.
func (s *session) exitCode() int {
	snap := s.metrics.Snapshot()
	switch {
	case snap.TransportErrors > 0:
		return exitTransport
	case snap.UserInputErrors > 0 || snap.ServerReportedErrors > 0:
		return exitFailure
	default:
		return exitSuccess
	}
}

// finish converts the session outcome to the command's return value.
func (s *session) finish() error {
	if code := s.exitCode(); code != exitSuccess {
		return cli.Exit("", code)
	}
	return nil
}

// Close logs the session metrics and releases resources.
func (s *session) Close() {
	snap := s.metrics.Snapshot()
	s.logger.Info("session finished", map[string]any{
		"requests":               snap.TotalRequests(),
		"user_input_errors":      snap.UserInputErrors,
		"server_reported_errors": snap.ServerReportedErrors,
		"transport_errors":       snap.TransportErrors,
	})
	_ = s.logger.Sync()
	if s.client != nil {
		_ = s.client.Close()
	}
	if s.logFile != nil {
		_ = s.logFile.Close()
	}
}

// signalContext returns a context canceled on SIGINT or SIGTERM.
func signalContext(c *cli.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
}

// isStderrTTY reports whether stderr is a terminal.
func isStderrTTY() bool {
	info, err := os.Stderr.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
