package app

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/atomicstack/flatpak-manager/internal/flatpak"
	"github.com/atomicstack/flatpak-manager/internal/logging/events"
	"github.com/atomicstack/flatpak-manager/internal/manual"
	"github.com/atomicstack/flatpak-manager/internal/ptyproc"
	"github.com/atomicstack/flatpak-manager/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
)

// Config describes user-provided application options.
type Config struct {
	Manpage bool
	// Width and Height seed the layout before the first resize event; zero
	// keeps the dashboard defaults.
	Width  int
	Height int
}

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg Config) error {
	model := ui.NewModel(ui.Options{
		Catalog: flatpak.NewClient(),
		Spawn:   spawnPTY,
		Width:   cfg.Width,
		Height:  cfg.Height,
	})

	stop := watchInterrupt(model)
	defer stop()

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithoutSignalHandler())
	if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("run dashboard: %w", err)
	}
	return nil
}

// WriteManual writes the manual page to w.
func WriteManual(w io.Writer) error {
	if _, err := io.WriteString(w, manual.Page()); err != nil {
		return fmt.Errorf("write manual: %w", err)
	}
	return nil
}

// spawnPTY adapts ptyproc.Spawn to the ui.Spawner signature without leaking
// a typed nil session on failure.
func spawnPTY(commandLine string, cols, rows int) (ui.Session, error) {
	s, err := ptyproc.Spawn(commandLine, cols, rows)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// watchInterrupt turns SIGINT into an exit request that the dashboard picks
// up on its next tick.
func watchInterrupt(model *ui.Model) func() {
	ch := make(chan os.Signal, 1)
	done := make(chan struct{})
	signal.Notify(ch, syscall.SIGINT)
	go func() {
		for {
			select {
			case <-ch:
				events.App.Interrupt()
				model.RequestExit()
			case <-done:
				return
			}
		}
	}()
	return func() {
		signal.Stop(ch)
		close(done)
	}
}
