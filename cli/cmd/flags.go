// Package cmd provides CLI commands for the docpanel binary.
package cmd

import "github.com/urfave/cli/v2"

// Output flags shared by every command that renders a result.
var (
	// FormatFlag selects output format: json, table, yaml.
	FormatFlag = &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Usage:   "Output format: json, table, yaml",
	}

	// NoColorFlag disables colored output.
	NoColorFlag = &cli.BoolFlag{
		Name:  "no-color",
		Usage: "Disable colored output",
	}
)

// Global flags. They override the config file.
var (
	// ConfigFlag points at a docpanel.yaml file.
	ConfigFlag = &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to config file (default: ./docpanel.yaml when present)",
		EnvVars: []string{"DOCPANEL_CONFIG"},
	}

	// ServerFlag is the backend base URL.
	ServerFlag = &cli.StringFlag{
		Name:    "server",
		Aliases: []string{"s"},
		Usage:   "Backend base URL, e.g. http://127.0.0.1:5000",
		EnvVars: []string{"DOCPANEL_SERVER"},
	}

	// PDFModeFlag selects the /processar-pdf variant.
	PDFModeFlag = &cli.StringFlag{
		Name:  "pdf-mode",
		Usage: "PDF upload variant: single or batch",
	}

	// LogFileFlag sends JSON logs to a file.
	LogFileFlag = &cli.StringFlag{
		Name:  "log-file",
		Usage: "Append JSON logs to this file",
	}

	// LogLevelFlag sets the log level.
	LogLevelFlag = &cli.StringFlag{
		Name:  "log-level",
		Usage: "Log level: debug, info, warn, error",
	}
)

// GlobalFlags returns the flags accepted before any command.
func GlobalFlags() []cli.Flag {
	return []cli.Flag{
		ConfigFlag,
		ServerFlag,
		PDFModeFlag,
		LogFileFlag,
		LogLevelFlag,
	}
}

// OutputFlags returns the shared flags for commands that render output.
func OutputFlags() []cli.Flag {
	return []cli.Flag{
		FormatFlag,
		NoColorFlag,
	}
}
