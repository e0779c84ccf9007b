package backend

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atomicstack/flatpak-manager/internal/flatpak"
)

func TestDebouncerWaitsForQuietWindow(t *testing.T) {
	d := NewDebouncer(DebounceWindow)
	base := time.Unix(1_700_000_000, 0)

	fetches := 0
	query := ""
	for i, r := range "gimp!" {
		query += string(r)
		now := base.Add(time.Duration(i) * 100 * time.Millisecond)
		d.Edit(now)
		if d.Ready(query, now) {
			fetches++
		}
	}
	assert.Equal(t, 0, fetches)

	last := base.Add(400 * time.Millisecond)
	assert.False(t, d.Ready(query, last.Add(DebounceWindow-time.Millisecond)))
	assert.Equal(t, last.Add(DebounceWindow), d.ReadyAt())

	for step := time.Duration(0); step <= 2*time.Second; step += 50 * time.Millisecond {
		now := last.Add(step)
		if d.Ready(query, now) {
			fetches++
			assert.GreaterOrEqual(t, now.Sub(last), DebounceWindow)
			d.MarkQueried(query)
		}
	}
	assert.Equal(t, 1, fetches)
	assert.Equal(t, "gimp!", d.LastQueried())
}

func TestDebouncerEmptyQueryNeverFetches(t *testing.T) {
	d := NewDebouncer(DebounceWindow)
	now := time.Now()
	d.Edit(now.Add(-time.Hour))
	assert.False(t, d.Ready("", now))
}

func TestDebouncerForgetForcesRefetch(t *testing.T) {
	d := NewDebouncer(DebounceWindow)
	now := time.Unix(1_700_000_000, 0)
	d.Edit(now)
	d.MarkQueried("vlc")
	assert.False(t, d.Ready("vlc", now.Add(time.Second)))

	d.Forget()
	assert.True(t, d.Ready("vlc", now.Add(time.Second)))
}

func TestRefresherGatesOnInterval(t *testing.T) {
	r := NewRefresher(RefreshInterval)
	now := time.Unix(1_700_000_000, 0)

	require.True(t, r.Due(now))
	r.Begin(now)
	assert.False(t, r.Due(now.Add(3*time.Second)), "in-flight fetch blocks another")
	r.Done()

	assert.False(t, r.Due(now.Add(RefreshInterval)))
	assert.True(t, r.Due(now.Add(RefreshInterval+time.Millisecond)))

	r.Begin(now.Add(RefreshInterval + time.Millisecond))
	r.Done()
	r.Invalidate()
	assert.True(t, r.Due(now.Add(RefreshInterval+2*time.Millisecond)))
}

type fakeSource struct {
	installed []flatpak.App
	running   flatpak.Running
}

func (f fakeSource) ListInstalled() []flatpak.App  { return f.installed }
func (f fakeSource) ListRunning() flatpak.Running { return f.running }

func TestSnapshotEmitsBothKinds(t *testing.T) {
	src := fakeSource{
		installed: []flatpak.App{{ID: "org.gimp.GIMP", Name: "GNU Image Manipulation Program"}},
		running:   flatpak.Running{"org.gimp.GIMP": "1234"},
	}
	events := Snapshot(src)
	require.Len(t, events, 2)
	assert.Equal(t, KindInstalled, events[0].Kind)
	assert.Equal(t, src.installed, events[0].Data)
	assert.Equal(t, KindRunning, events[1].Kind)
	assert.Equal(t, src.running, events[1].Data)
}
