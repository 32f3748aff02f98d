package cmd

import (
	"os"

	"github.com/urfave/cli/v2"

	"github.com/weversonbarbieri/accountant-pdf-extract/devserver"
	"github.com/weversonbarbieri/accountant-pdf-extract/iox"
	"github.com/weversonbarbieri/accountant-pdf-extract/log"
)

// DevServerCommand returns the devserver command, which serves the backend
// routes over a local directory.
func DevServerCommand() *cli.Command {
	return &cli.Command{
		Name:  "devserver",
		Usage: "Serve a development stand-in for the backend over a directory of JSON files",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "dir",
				Usage: "Directory holding the JSON files (default from config, else .)",
			},
			&cli.StringFlag{
				Name:  "addr",
				Usage: "Listen address (default from config, else " + devserver.DefaultAddr + ")",
			},
		},
		Action: devServerAction,
	}
}

func devServerAction(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return cli.Exit(err.Error(), exitFailure)
	}
	dir := cfg.DevServer.Dir
	if v := c.String("dir"); v != "" {
		dir = v
	}
	addr := cfg.DevServer.Addr
	if v := c.String("addr"); v != "" {
		addr = v
	}

	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		return cli.Exit(err.Error(), exitFailure)
	}
	logger := log.NewLogger(log.Session{ID: "devserver"}, level)
	if cfg.Log.File != "" {
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return cli.Exit(err.Error(), exitFailure)
		}
		defer iox.DiscardClose(f)
		logger = log.NewLoggerWithWriter(log.Session{ID: "devserver"}, level, f)
	}
	defer func() { _ = logger.Sync() }()

	srv, err := devserver.New(dir, logger)
	if err != nil {
		return cli.Exit(err.Error(), exitFailure)
	}

	ctx, cancel := signalContext(c)
	defer cancel()
	return srv.ListenAndServe(ctx, addr)
}
