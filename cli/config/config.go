package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/weversonbarbieri/accountant-pdf-extract/types"
)

// Default values applied before the config file and flags.
const (
	DefaultServerURL     = "http://127.0.0.1:5000"
	DefaultTimeout       = 30 * time.Minute
	DefaultLogLevel      = "info"
	DefaultDevServerDir  = "."
	DefaultDevServerAddr = "127.0.0.1:5000"

	DefaultProgressInterval    = time.Second
	DefaultProgressStep        = 5
	DefaultProgressCeiling     = 90
	DefaultProgressRevealDelay = 500 * time.Millisecond
)

// Config represents a docpanel.yaml configuration file.
// All values are optional. CLI flags always override config values.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	PDF       PDFConfig       `yaml:"pdf"`
	Progress  ProgressConfig  `yaml:"progress"`
	Log       LogConfig       `yaml:"log"`
	DevServer DevServerConfig `yaml:"devserver"`
}

// ServerConfig describes the backend.
type ServerConfig struct {
	URL     string            `yaml:"url"`
	Timeout Duration          `yaml:"timeout"`
	Headers map[string]string `yaml:"headers,omitempty"`
}

// PDFConfig selects the /processar-pdf variant.
type PDFConfig struct {
	Mode types.PDFMode `yaml:"mode"`
}

// ProgressConfig tunes the simulated PDF progress bar.
type ProgressConfig struct {
	Interval    Duration `yaml:"interval"`
	Step        int      `yaml:"step"`
	Ceiling     int      `yaml:"ceiling"`
	RevealDelay Duration `yaml:"reveal_delay"`
}

// LogConfig configures the session log.
type LogConfig struct {
	// File receives JSON log lines. Empty discards logs in the TUI and
	// writes to stderr elsewhere.
	File  string `yaml:"file"`
	Level string `yaml:"level"`
}

// DevServerConfig holds defaults for docpanel devserver.
type DevServerConfig struct {
	Dir  string `yaml:"dir"`
	Addr string `yaml:"addr"`
}

// Duration wraps time.Duration for YAML string parsing (e.g. "10s", "5m").
type Duration struct {
	time.Duration
}

// UnmarshalYAML parses a duration string like "10s" or "5m30s".
func (d *Duration) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	if s == "" {
		return nil
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	d.Duration = parsed
	return nil
}

// MarshalYAML renders the duration in time.Duration string form.
func (d Duration) MarshalYAML() (any, error) {
	return d.String(), nil
}

// Defaults returns the configuration used when no file is given.
func Defaults() *Config {
	return &Config{
		Server: ServerConfig{
			URL:     DefaultServerURL,
			Timeout: Duration{DefaultTimeout},
		},
		PDF: PDFConfig{Mode: types.PDFModeSingle},
		Progress: ProgressConfig{
			Interval:    Duration{DefaultProgressInterval},
			Step:        DefaultProgressStep,
			Ceiling:     DefaultProgressCeiling,
			RevealDelay: Duration{DefaultProgressRevealDelay},
		},
		Log: LogConfig{Level: DefaultLogLevel},
		DevServer: DevServerConfig{
			Dir:  DefaultDevServerDir,
			Addr: DefaultDevServerAddr,
		},
	}
}

// Validate checks the values that cannot be corrected silently.
func (c *Config) Validate() error {
	var errs []error

	if c.Server.URL == "" {
		errs = append(errs, errors.New("server.url is required"))
	} else if u, err := url.Parse(c.Server.URL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, fmt.Errorf("server.url %q must be an http(s) URL", c.Server.URL))
	}
	if c.Server.Timeout.Duration < 0 {
		errs = append(errs, errors.New("server.timeout must not be negative"))
	}
	if !c.PDF.Mode.Valid() {
		errs = append(errs, fmt.Errorf("pdf.mode %q must be single or batch", c.PDF.Mode))
	}
	if c.Progress.Step < 0 || c.Progress.Step > 100 {
		errs = append(errs, fmt.Errorf("progress.step %d must be between 0 and 100", c.Progress.Step))
	}
	if c.Progress.Ceiling < 0 || c.Progress.Ceiling > 100 {
		errs = append(errs, fmt.Errorf("progress.ceiling %d must be between 0 and 100", c.Progress.Ceiling))
	}
	if c.Progress.Interval.Duration < 0 || c.Progress.RevealDelay.Duration < 0 {
		errs = append(errs, errors.New("progress durations must not be negative"))
	}
	return errors.Join(errs...)
}
