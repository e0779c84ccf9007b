package state

import "github.com/atomicstack/flatpak-manager/internal/flatpak"

type InstalledStore interface {
	Entries() []flatpak.App
	SetEntries([]flatpak.App)
	Lookup(id string) (flatpak.App, bool)
}

type installedStore struct {
	entries []flatpak.App
}

func NewInstalledStore() InstalledStore {
	return &installedStore{}
}

func (s *installedStore) Entries() []flatpak.App {
	return cloneApps(s.entries)
}

func (s *installedStore) SetEntries(entries []flatpak.App) {
	s.entries = cloneApps(entries)
}

func (s *installedStore) Lookup(id string) (flatpak.App, bool) {
	for _, app := range s.entries {
		if app.ID == id {
			return app, true
		}
	}
	return flatpak.App{}, false
}

func cloneApps(entries []flatpak.App) []flatpak.App {
	if len(entries) == 0 {
		return nil
	}
	dup := make([]flatpak.App, len(entries))
	copy(dup, entries)
	return dup
}
