package main

import (
	"fmt"
	"io"
	"os"

	"github.com/atomicstack/flatpak-manager/internal/app"
	"github.com/atomicstack/flatpak-manager/internal/config"
	"github.com/atomicstack/flatpak-manager/internal/logging"
	"github.com/atomicstack/flatpak-manager/internal/logging/events"
	"golang.org/x/term"
)

// Seams for tests.
var (
	runDashboard  = app.Run
	probeTerminal = func() terminalReport {
		return inspectTerminal(map[string]*os.File{"stdout": os.Stdout, "stdin": os.Stdin, "stderr": os.Stderr})
	}
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run returns the process exit status: 0 on success, 1 when the dashboard
// fails, 2 for bad flags.
func run(args []string, stdout, stderr io.Writer) int {
	cfg, err := config.LoadArgs(args)
	if err == nil {
		err = config.Validate(cfg)
	}
	if err != nil {
		fmt.Fprintf(stderr, "Configuration error: %v\n", err)
		return 2
	}
	if cfg.App.Manpage {
		if err := app.WriteManual(stdout); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}

	logging.Configure(cfg.Logging.FilePath)
	logging.SetTraceEnabled(cfg.Logging.Trace)

	report := probeTerminal()
	cfg.App.Width, cfg.App.Height = report.Size()
	events.App.Start(startupPayload(cfg, report))

	if err := runDashboard(cfg.App); err != nil {
		logging.Error(err)
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func startupPayload(cfg config.Config, report terminalReport) map[string]interface{} {
	payload := map[string]interface{}{
		"argv":     cfg.Args,
		"flags":    cfg.Flags,
		"logFile":  logging.Path(),
		"terminal": report,
	}
	if exe, err := os.Executable(); err == nil {
		payload["executable"] = exe
	}
	if _, err := os.Stat("/.flatpak-info"); err == nil {
		payload["sandboxed"] = true
	}
	return payload
}

// terminalReport records which standard descriptors are terminals and the
// first usable size among them.
type terminalReport struct {
	Source      string            `json:"source,omitempty"`
	Width       int               `json:"width"`
	Height      int               `json:"height"`
	Descriptors []descriptorProbe `json:"descriptors"`
}

type descriptorProbe struct {
	Name     string `json:"name"`
	Terminal bool   `json:"terminal"`
	Error    string `json:"error,omitempty"`
}

// Size returns the detected terminal size, or zeros to let the dashboard use
// its defaults until the first resize event.
func (r terminalReport) Size() (int, int) {
	if r.Width <= 0 || r.Height <= 0 {
		return 0, 0
	}
	return r.Width, r.Height
}

// inspectTerminal probes stdout first since that is where the dashboard
// draws, then stdin and stderr.
func inspectTerminal(files map[string]*os.File) terminalReport {
	var report terminalReport
	for _, name := range []string{"stdout", "stdin", "stderr"} {
		f, ok := files[name]
		if !ok || f == nil {
			continue
		}
		probe := descriptorProbe{Name: name}
		fd := int(f.Fd())
		if term.IsTerminal(fd) {
			probe.Terminal = true
			w, h, err := term.GetSize(fd)
			switch {
			case err != nil:
				probe.Error = err.Error()
			case report.Source == "" && w > 0 && h > 0:
				report.Source, report.Width, report.Height = name, w, h
			}
		}
		report.Descriptors = append(report.Descriptors, probe)
	}
	return report
}
