package dispatcher

import (
	"github.com/atomicstack/flatpak-manager/internal/backend"
	"github.com/atomicstack/flatpak-manager/internal/flatpak"
	"github.com/atomicstack/flatpak-manager/internal/state"
)

type Result struct {
	InstalledUpdated bool
	RunningUpdated   bool
}

type Dispatcher struct {
	installed state.InstalledStore
	running   state.RunningStore
}

func New(i state.InstalledStore, r state.RunningStore) *Dispatcher {
	return &Dispatcher{installed: i, running: r}
}

// Handle applies a single backend event. Each kind replaces its store wholesale.
func (d *Dispatcher) Handle(evt backend.Event) Result {
	var res Result
	if evt.Err != nil {
		return res
	}
	switch evt.Kind {
	case backend.KindInstalled:
		if apps, ok := evt.Data.([]flatpak.App); ok {
			d.installed.SetEntries(apps)
			res.InstalledUpdated = true
		}
	case backend.KindRunning:
		if running, ok := evt.Data.(flatpak.Running); ok {
			d.running.SetSnapshot(running)
			res.RunningUpdated = true
		}
	}
	return res
}

// HandleAll applies events in order and merges the results.
func (d *Dispatcher) HandleAll(events []backend.Event) Result {
	var res Result
	for _, evt := range events {
		r := d.Handle(evt)
		res.InstalledUpdated = res.InstalledUpdated || r.InstalledUpdated
		res.RunningUpdated = res.RunningUpdated || r.RunningUpdated
	}
	return res
}
