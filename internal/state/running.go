package state

import (
	"sort"

	"github.com/atomicstack/flatpak-manager/internal/flatpak"
)

// RunningEntry is one row of the running panel.
type RunningEntry struct {
	ID       string
	Instance string
}

type RunningStore interface {
	Snapshot() flatpak.Running
	SetSnapshot(flatpak.Running)
	Instance(id string) (string, bool)
	Entries() []RunningEntry
}

type runningStore struct {
	byID flatpak.Running
}

func NewRunningStore() RunningStore {
	return &runningStore{byID: flatpak.Running{}}
}

func (s *runningStore) Snapshot() flatpak.Running {
	dup := make(flatpak.Running, len(s.byID))
	for id, instance := range s.byID {
		dup[id] = instance
	}
	return dup
}

func (s *runningStore) SetSnapshot(running flatpak.Running) {
	dup := make(flatpak.Running, len(running))
	for id, instance := range running {
		dup[id] = instance
	}
	s.byID = dup
}

func (s *runningStore) Instance(id string) (string, bool) {
	instance, ok := s.byID[id]
	return instance, ok
}

// Entries returns the running apps ordered by id so the panel is stable
// across refreshes.
func (s *runningStore) Entries() []RunningEntry {
	entries := make([]RunningEntry, 0, len(s.byID))
	for id, instance := range s.byID {
		entries = append(entries, RunningEntry{ID: id, Instance: instance})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })
	return entries
}
