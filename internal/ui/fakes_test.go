package ui

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/atomicstack/flatpak-manager/internal/flatpak"
	"github.com/atomicstack/flatpak-manager/internal/logging"
	tea "github.com/charmbracelet/bubbletea"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "flatpak-manager-ui")
	if err == nil {
		logging.Configure(filepath.Join(dir, "ui-test.log"))
	}
	code := m.Run()
	if err == nil {
		os.RemoveAll(dir)
	}
	os.Exit(code)
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

type fakeCatalog struct {
	mu    sync.Mutex
	clock *fakeClock

	installed []flatpak.App
	running   flatpak.Running
	packages  []flatpak.Package

	listInstalledCalls int
	searches           []string
	searchTimes        []time.Time
	launched           []string
	stopped            []string
	described          []string
}

func (f *fakeCatalog) ListInstalled() []flatpak.App {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listInstalledCalls++
	return append([]flatpak.App(nil), f.installed...)
}

func (f *fakeCatalog) ListRunning() flatpak.Running {
	f.mu.Lock()
	defer f.mu.Unlock()
	dup := flatpak.Running{}
	for id, instance := range f.running {
		dup[id] = instance
	}
	return dup
}

func (f *fakeCatalog) Launch(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.launched = append(f.launched, id)
}

func (f *fakeCatalog) Stop(instance string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stopped = append(f.stopped, instance)
}

func (f *fakeCatalog) Describe(id string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.described = append(f.described, id)
	return "Description of " + id
}

func (f *fakeCatalog) Search(term string) []flatpak.Package {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searches = append(f.searches, term)
	if f.clock != nil {
		f.searchTimes = append(f.searchTimes, f.clock.Now())
	}
	return append([]flatpak.Package(nil), f.packages...)
}

func (f *fakeCatalog) InstallCommand(id string) string {
	return "flatpak install flathub " + id
}

func (f *fakeCatalog) UninstallCommand(id string) string {
	return "flatpak uninstall " + id
}

var errFakeTimeout = errors.New("fake read timeout")

// fakeSession replays queued output. Once eof is set and the queue is empty
// the next read returns final together with io.EOF.
type fakeSession struct {
	chunks   [][]byte
	eof      bool
	final    []byte
	exitCode int
	// exited reports EOF before the final read has been delivered.
	exited bool

	done   bool
	sent   []string
	closed bool
}

func (f *fakeSession) ReadNonblocking(max int, timeout time.Duration) ([]byte, error) {
	if f.done {
		return nil, io.EOF
	}
	if len(f.chunks) > 0 {
		chunk := f.chunks[0]
		if len(chunk) > max {
			f.chunks[0] = chunk[max:]
			return chunk[:max], nil
		}
		f.chunks = f.chunks[1:]
		return chunk, nil
	}
	if f.eof {
		f.done = true
		return f.final, io.EOF
	}
	return nil, errFakeTimeout
}

func (f *fakeSession) Send(text string) error {
	f.sent = append(f.sent, text)
	return nil
}

func (f *fakeSession) SendLine(text string) error {
	return f.Send(text + "\n")
}

func (f *fakeSession) EOF() bool { return f.done || f.exited }

func (f *fakeSession) ExitCode() int {
	if !f.done {
		return -1
	}
	return f.exitCode
}

func (f *fakeSession) Close() error {
	f.closed = true
	return nil
}

type spawnRecorder struct {
	session  *fakeSession
	err      error
	commands []string
}

func (r *spawnRecorder) Spawn(commandLine string, cols, rows int) (Session, error) {
	r.commands = append(r.commands, commandLine)
	if r.err != nil {
		return nil, r.err
	}
	return r.session, nil
}

func sampleCatalog(clock *fakeClock) *fakeCatalog {
	return &fakeCatalog{
		clock: clock,
		installed: []flatpak.App{
			{ID: "org.gimp.GIMP", Name: "GIMP"},
			{ID: "org.gnome.Gedit", Name: "gedit"},
			{ID: "org.videolan.VLC", Name: "VLC"},
		},
		running: flatpak.Running{"org.gimp.GIMP": "123"},
	}
}

func newTestHarness(t *testing.T, catalog *fakeCatalog, clock *fakeClock, spawner *spawnRecorder) *Harness {
	t.Helper()
	opts := Options{Width: 100, Height: 24, Clock: clock.Now}
	if catalog != nil {
		opts.Catalog = catalog
	}
	if spawner != nil {
		opts.Spawn = spawner.Spawn
	}
	h := NewHarness(NewModel(opts))
	h.Init()
	return h
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func keyType(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func typeText(h *Harness, text string) {
	for _, r := range text {
		h.Send(keyRunes(string(r)))
	}
}
