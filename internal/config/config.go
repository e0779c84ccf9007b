package config

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/atomicstack/flatpak-manager/internal/app"
	"github.com/spf13/pflag"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

// Load parses configuration from the process arguments.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:])
}

// LoadArgs allows tests to supply specific args.
func LoadArgs(args []string) (Config, error) {
	fs := pflag.NewFlagSet("flatpak-manager", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)

	manpage := fs.Bool("manpage", false, "print the manual page and exit")
	trace := fs.Bool("trace", false, "enable verbose JSON trace logging")
	logFile := fs.String("log-file", "", "path to the log file")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if rest := fs.Args(); len(rest) > 0 {
		return Config{}, fmt.Errorf("unexpected argument %q", rest[0])
	}

	cfg := Config{
		App: app.Config{
			Manpage: *manpage,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Flags: map[string]string{
			"manpage": strconv.FormatBool(*manpage),
			"trace":   strconv.FormatBool(*trace),
			"logFile": *logFile,
		},
		Args: append([]string(nil), args...),
	}
	return cfg, nil
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate ensures required minimum configuration is present.
func Validate(cfg Config) error {
	if path := cfg.Logging.FilePath; path != "" {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			return fmt.Errorf("log file %s is a directory", path)
		}
	}
	return nil
}
