package ui

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/atomicstack/flatpak-manager/internal/flatpak"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startInstall(t *testing.T, spawner *spawnRecorder) (*Harness, *fakeCatalog, *fakeClock) {
	t.Helper()
	clock := newFakeClock()
	catalog := sampleCatalog(clock)
	catalog.packages = []flatpak.Package{{ID: "org.gimp.GIMP", Name: "GIMP", Description: "Image editor"}}
	h := newTestHarness(t, catalog, clock, spawner)
	h.Send(keyType(tea.KeyTab))
	typeText(h, "gimp")
	clock.Advance(500 * time.Millisecond)
	h.Tick()
	require.Len(t, h.Model().search.results, 1)

	h.Send(keyType(tea.KeyEnter))
	require.Contains(t, h.View(), "Install package GIMP (org.gimp.GIMP)?")
	h.Send(keyType(tea.KeyEnter))
	require.Equal(t, ModeSession, h.Model().Mode())
	return h, catalog, clock
}

func TestInstallSessionStreamsAndCompletes(t *testing.T) {
	proc := &fakeSession{chunks: [][]byte{[]byte("Downloading...\r\n")}}
	spawner := &spawnRecorder{session: proc}
	h, catalog, _ := startInstall(t, spawner)
	m := h.Model()

	assert.Equal(t, []string{"flatpak install flathub org.gimp.GIMP"}, spawner.commands)
	assert.Equal(t, sessionPoll, m.PollTimeout())
	view := h.View()
	assert.Contains(t, view, "Installing GIMP (org.gimp.GIMP)")
	assert.Contains(t, view, "Downloading...")

	// q is an ordinary keystroke until the command exits
	h.Send(keyRunes("q"))
	assert.Equal(t, ModeSession, m.Mode())
	h.Send(keyType(tea.KeyEnter))
	assert.Equal(t, []string{"q", "\n"}, proc.sent)

	proc.eof = true
	proc.final = []byte("Error: network unreachable\r\n")
	proc.exitCode = 1
	h.Tick()

	view = h.View()
	assert.Contains(t, view, "Installation of GIMP (org.gimp.GIMP) completed.")
	assert.Contains(t, view, "Press 'q' to return.")
	assert.Contains(t, view, "Downloading...")
	assert.Contains(t, view, "Error: network unreachable")
	assert.Equal(t, time.Duration(0), m.PollTimeout())
	assert.Equal(t, 1, m.session.exitCode)

	h.Send(keyRunes("x"))
	assert.Equal(t, ModeSession, m.Mode())
	assert.Equal(t, []string{"q", "\n"}, proc.sent)

	calls := catalog.listInstalledCalls
	h.Send(keyRunes("q"))
	assert.Equal(t, ModeDashboard, m.Mode())
	assert.Nil(t, m.search)
	assert.Nil(t, m.session)
	assert.True(t, proc.closed)

	h.Tick()
	assert.Equal(t, calls+1, catalog.listInstalledCalls, "closing the session should force a refresh")
}

func TestQuitAfterExitShowsRemainingOutput(t *testing.T) {
	proc := &fakeSession{}
	h, _, _ := startInstall(t, &spawnRecorder{session: proc})
	m := h.Model()

	proc.eof = true
	proc.exited = true
	proc.final = []byte("Installation complete.\n")
	h.Send(keyRunes("q"))

	require.Equal(t, ModeSession, m.Mode())
	require.NotNil(t, m.session)
	assert.True(t, m.session.completed)
	assert.Empty(t, proc.sent)
	view := h.View()
	assert.Contains(t, view, "Installation of GIMP (org.gimp.GIMP) completed.")
	assert.Contains(t, view, "Installation complete.")
	assert.Equal(t, time.Duration(0), m.PollTimeout())

	h.Send(keyRunes("q"))
	assert.Equal(t, ModeDashboard, m.Mode())
	assert.True(t, proc.closed)
}

func TestSessionForwardsBackspace(t *testing.T) {
	proc := &fakeSession{}
	h, _, _ := startInstall(t, &spawnRecorder{session: proc})
	h.Send(keyType(tea.KeyBackspace))
	h.Send(keyRunes("y"))
	assert.Equal(t, []string{"\x7f", "y"}, proc.sent)
}

func TestSessionSpawnFailureShowsError(t *testing.T) {
	spawner := &spawnRecorder{err: errors.New("pty unavailable")}
	h, _, _ := startInstall(t, spawner)
	m := h.Model()

	view := h.View()
	assert.Contains(t, view, "Installation of GIMP (org.gimp.GIMP) completed.")
	assert.Contains(t, view, "pty unavailable")
	assert.Equal(t, time.Duration(0), m.PollTimeout())

	h.Send(keyRunes("q"))
	assert.Equal(t, ModeDashboard, m.Mode())
}

func TestUninstallSessionRunsUninstallCommand(t *testing.T) {
	clock := newFakeClock()
	proc := &fakeSession{chunks: [][]byte{[]byte("Uninstalling: org.gnome.Gedit\n")}}
	spawner := &spawnRecorder{session: proc}
	h := newTestHarness(t, sampleCatalog(clock), clock, spawner)

	h.Send(keyType(tea.KeyCtrlU))
	h.Send(keyType(tea.KeyDown))
	h.Send(keyType(tea.KeyEnter))
	h.Send(keyType(tea.KeyEnter))

	require.Equal(t, ModeSession, h.Model().Mode())
	assert.Equal(t, []string{"flatpak uninstall org.gnome.Gedit"}, spawner.commands)
	view := h.View()
	assert.Contains(t, view, "Uninstalling gedit (org.gnome.Gedit)")
	assert.Contains(t, view, "Uninstalling: org.gnome.Gedit")

	proc.eof = true
	h.Tick()
	assert.Contains(t, h.View(), "Uninstallation of gedit (org.gnome.Gedit) completed.")
}

func TestTranscriptTail(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		limit int
		want  []string
	}{
		{name: "progress overwrites", raw: "10%\r50%\r100%\n", limit: 5, want: []string{"100%"}},
		{name: "escape codes removed", raw: "\x1b[31mred\x1b[0m\n", limit: 5, want: []string{"red"}},
		{name: "keeps the tail", raw: "a\nb\nc\n", limit: 2, want: []string{"b", "c"}},
		{name: "partial last line", raw: "a\nb", limit: 5, want: []string{"a", "b"}},
		{name: "no room", raw: "a\n", limit: 0, want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, transcriptTail(tt.raw, tt.limit))
		})
	}
}

func TestDisplayLineDropsControlCharacters(t *testing.T) {
	got := displayLine("a\x07b\tc\x1b")
	assert.Equal(t, "ab\tc", got)
	assert.False(t, strings.ContainsRune(got, 0x1b))
}
