package command

import (
	"time"

	"github.com/atomicstack/flatpak-manager/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
)

// Request encapsulates a fire-and-forget catalog action such as launching or
// stopping an app.
type Request struct {
	ID    string
	Label string
	Run   func()
}

// Done is delivered once a request has finished running.
type Done struct {
	ID    string
	Label string
}

// Bus coordinates the execution of catalog actions.
type Bus struct {
	now func() time.Time
}

// New initialises a command bus instance.
func New() *Bus {
	return &Bus{now: time.Now}
}

// Execute wraps a request into a Bubble Tea command while emitting trace logs.
func (b *Bus) Execute(req Request) tea.Cmd {
	events.Command.Queue(req.ID, req.Label)
	return func() tea.Msg {
		if req.Run == nil {
			events.Command.Skip(req.ID, req.Label)
			return nil
		}
		start := b.now()
		req.Run()
		events.Command.Result(req.ID, req.Label, b.now().Sub(start))
		return Done{ID: req.ID, Label: req.Label}
	}
}
