package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/atomicstack/flatpak-manager/internal/app"
	"github.com/atomicstack/flatpak-manager/internal/logging"
	"github.com/atomicstack/flatpak-manager/internal/manual"
)

func stubDashboard(t *testing.T, report terminalReport, err error) *[]app.Config {
	t.Helper()
	var calls []app.Config
	prevRun, prevProbe := runDashboard, probeTerminal
	runDashboard = func(cfg app.Config) error {
		calls = append(calls, cfg)
		return err
	}
	probeTerminal = func() terminalReport { return report }
	t.Cleanup(func() {
		runDashboard, probeTerminal = prevRun, prevProbe
	})
	return &calls
}

func TestManpagePrintsBeforeLoggingIsConfigured(t *testing.T) {
	calls := stubDashboard(t, terminalReport{}, nil)
	sentinel := filepath.Join(t.TempDir(), "sentinel.log")
	logging.Configure(sentinel)
	other := filepath.Join(t.TempDir(), "other.log")

	var stdout, stderr bytes.Buffer
	code := run([]string{"--manpage", "--log-file", other}, &stdout, &stderr)

	if code != 0 {
		t.Fatalf("expected exit 0, got %d (%s)", code, stderr.String())
	}
	if stdout.String() != manual.Page() {
		t.Fatalf("expected manual page on stdout")
	}
	if got := logging.Path(); got != sentinel {
		t.Fatalf("logging was reconfigured to %q", got)
	}
	if _, err := os.Stat(other); !os.IsNotExist(err) {
		t.Fatalf("manpage run must not create a log file")
	}
	if len(*calls) != 0 {
		t.Fatalf("dashboard must not start for --manpage")
	}
}

func TestRunPassesDetectedTerminalSize(t *testing.T) {
	calls := stubDashboard(t, terminalReport{Source: "stdout", Width: 120, Height: 40}, nil)
	logFile := filepath.Join(t.TempDir(), "fm.log")

	var stdout, stderr bytes.Buffer
	if code := run([]string{"--log-file", logFile}, &stdout, &stderr); code != 0 {
		t.Fatalf("expected exit 0, got %d (%s)", code, stderr.String())
	}
	if len(*calls) != 1 {
		t.Fatalf("expected one dashboard run, got %d", len(*calls))
	}
	if cfg := (*calls)[0]; cfg.Width != 120 || cfg.Height != 40 {
		t.Fatalf("expected 120x40, got %dx%d", cfg.Width, cfg.Height)
	}
}

func TestRunReportsErrors(t *testing.T) {
	stubDashboard(t, terminalReport{}, errors.New("no tty"))
	logFile := filepath.Join(t.TempDir(), "fm.log")

	var stdout, stderr bytes.Buffer
	if code := run([]string{"--log-file", logFile}, &stdout, &stderr); code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
	if !bytes.Contains(stderr.Bytes(), []byte("Error: no tty")) {
		t.Fatalf("unexpected stderr %q", stderr.String())
	}

	stderr.Reset()
	if code := run([]string{"--bogus"}, &stdout, &stderr); code != 2 {
		t.Fatalf("expected exit 2, got %d", code)
	}
	if !bytes.HasPrefix(stderr.Bytes(), []byte("Configuration error:")) {
		t.Fatalf("unexpected stderr %q", stderr.String())
	}
}

func TestTerminalReportSize(t *testing.T) {
	if w, h := (terminalReport{Width: 80, Height: 0}).Size(); w != 0 || h != 0 {
		t.Fatalf("partial size must fall back to defaults, got %dx%d", w, h)
	}
	if w, h := (terminalReport{Width: 80, Height: 24}).Size(); w != 80 || h != 24 {
		t.Fatalf("expected 80x24, got %dx%d", w, h)
	}
}

func TestInspectTerminalSkipsNonTerminals(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "not-a-tty")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	report := inspectTerminal(map[string]*os.File{"stdout": f})
	if len(report.Descriptors) != 1 || report.Descriptors[0].Terminal {
		t.Fatalf("unexpected descriptors %+v", report.Descriptors)
	}
	if report.Source != "" || report.Width != 0 {
		t.Fatalf("regular file must not report a size: %+v", report)
	}
}
