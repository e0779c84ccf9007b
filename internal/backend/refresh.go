package backend

import (
	"sync"
	"time"

	"github.com/atomicstack/flatpak-manager/internal/flatpak"
)

// RefreshInterval bounds how often the dashboard re-reads the catalog.
const RefreshInterval = 2 * time.Second

// Kind represents the type of data carried by an Event.
type Kind int

const (
	KindInstalled Kind = iota
	KindRunning
)

// Event conveys updated data or an error from a refresh.
type Event struct {
	Kind Kind
	Data interface{}
	Err  error
}

// Source is the subset of the flatpak client a refresh reads from.
type Source interface {
	ListInstalled() []flatpak.App
	ListRunning() flatpak.Running
}

// Refresher is a time based cache gate: data older than the interval is
// considered stale, and only one fetch may be outstanding at a time.
type Refresher struct {
	interval time.Duration

	mu       sync.Mutex
	last     time.Time
	inflight bool
}

func NewRefresher(interval time.Duration) *Refresher {
	if interval < 0 {
		interval = 0
	}
	return &Refresher{interval: interval}
}

// Due reports whether a fetch should start at now.
func (r *Refresher) Due(now time.Time) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.inflight {
		return false
	}
	return r.last.IsZero() || now.Sub(r.last) > r.interval
}

// Begin marks a fetch as started at now.
func (r *Refresher) Begin(now time.Time) {
	r.mu.Lock()
	r.last = now
	r.inflight = true
	r.mu.Unlock()
}

// Done marks the outstanding fetch as complete.
func (r *Refresher) Done() {
	r.mu.Lock()
	r.inflight = false
	r.mu.Unlock()
}

// Invalidate expires the cache so the next Due call returns true.
func (r *Refresher) Invalidate() {
	r.mu.Lock()
	r.last = time.Time{}
	r.mu.Unlock()
}

// Snapshot reads the installed list and the running map from src.
func Snapshot(src Source) []Event {
	installed := src.ListInstalled()
	running := src.ListRunning()
	return []Event{
		{Kind: KindInstalled, Data: installed},
		{Kind: KindRunning, Data: running},
	}
}
