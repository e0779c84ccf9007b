package ui

import (
	"reflect"
	"sync/atomic"
	"time"

	"github.com/atomicstack/flatpak-manager/internal/backend"
	"github.com/atomicstack/flatpak-manager/internal/data/dispatcher"
	"github.com/atomicstack/flatpak-manager/internal/flatpak"
	"github.com/atomicstack/flatpak-manager/internal/logging/events"
	"github.com/atomicstack/flatpak-manager/internal/state"
	"github.com/atomicstack/flatpak-manager/internal/theme"
	"github.com/atomicstack/flatpak-manager/internal/ui/command"
	uistate "github.com/atomicstack/flatpak-manager/internal/ui/state"
	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"
)

// Mode identifies the active screen. Modes form a stack and the top one
// receives input; the ones below keep their state until they resume.
type Mode int

const (
	ModeDashboard Mode = iota
	ModeInstallSearch
	ModeUninstallSearch
	ModeHelp
	ModeExitConfirm
	ModeSession
)

var modeNames = map[Mode]string{
	ModeDashboard:       "dashboard",
	ModeInstallSearch:   "install-search",
	ModeUninstallSearch: "uninstall-search",
	ModeHelp:            "help",
	ModeExitConfirm:     "exit-confirm",
	ModeSession:         "session",
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return "unknown"
}

// Panel identifies the focused dashboard list.
type Panel int

const (
	PanelInstalled Panel = iota
	PanelRunning
)

func (p Panel) String() string {
	if p == PanelRunning {
		return "running"
	}
	return "installed"
}

const (
	dashboardPoll = 200 * time.Millisecond
	searchPoll    = 50 * time.Millisecond
	sessionPoll   = 100 * time.Millisecond

	defaultWidth  = 80
	defaultHeight = 24
)

// pollTimeout returns how often the given mode wakes up without input. Zero
// means the mode only reacts to keys.
func pollTimeout(mode Mode) time.Duration {
	switch mode {
	case ModeDashboard:
		return dashboardPoll
	case ModeInstallSearch:
		return searchPoll
	case ModeSession:
		return sessionPoll
	default:
		return 0
	}
}

// Catalog is the package manager surface the dashboard drives.
type Catalog interface {
	ListInstalled() []flatpak.App
	ListRunning() flatpak.Running
	Launch(id string)
	Stop(instance string)
	Describe(id string) string
	Search(term string) []flatpak.Package
	InstallCommand(id string) string
	UninstallCommand(id string) string
}

// Session is a child process attached to a pseudo-terminal.
type Session interface {
	ReadNonblocking(max int, timeout time.Duration) ([]byte, error)
	Send(text string) error
	SendLine(text string) error
	EOF() bool
	ExitCode() int
	Close() error
}

// Spawner starts commandLine on a pseudo-terminal of the given size.
type Spawner func(commandLine string, cols, rows int) (Session, error)

// Options configures a Model.
type Options struct {
	Catalog Catalog
	Spawn   Spawner
	Width   int
	Height  int
	// Clock overrides time.Now, mainly for tests.
	Clock func() time.Time
}

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

type tickMsg struct {
	gen int
}

// Model implements the Bubble Tea model for the flatpak dashboard.
type Model struct {
	modes  []Mode
	width  int
	height int

	catalog    Catalog
	spawn      Spawner
	installed  state.InstalledStore
	running    state.RunningStore
	dispatcher *dispatcher.Dispatcher
	refresher  *backend.Refresher
	bus        *command.Bus

	focus           Panel
	filter          uistate.Query
	installedCursor uistate.Cursor
	runningCursor   uistate.Cursor
	descriptions    map[string]string
	describing      map[string]bool

	search  *searchState
	session *sessionState
	confirm *confirmState

	exitRequested atomic.Bool
	quitting      bool

	timeout time.Duration
	tickGen int
	tick    func(time.Duration, func(time.Time) tea.Msg) tea.Cmd
	now     func() time.Time

	caret    cursor.Model
	keys     keyMap
	handlers map[reflect.Type]msgHandler
}

// NewModel initialises the dashboard in its starting mode.
func NewModel(opts Options) *Model {
	installed := state.NewInstalledStore()
	running := state.NewRunningStore()
	m := &Model{
		modes:        []Mode{ModeDashboard},
		width:        defaultWidth,
		height:       defaultHeight,
		catalog:      opts.Catalog,
		spawn:        opts.Spawn,
		installed:    installed,
		running:      running,
		dispatcher:   dispatcher.New(installed, running),
		refresher:    backend.NewRefresher(backend.RefreshInterval),
		bus:          command.New(),
		descriptions: map[string]string{},
		describing:   map[string]bool{},
		timeout:      pollTimeout(ModeDashboard),
		tick:         tea.Tick,
		now:          time.Now,
		keys:         defaultKeyMap(),
	}
	if opts.Width > 0 {
		m.width = opts.Width
	}
	if opts.Height > 0 {
		m.height = opts.Height
	}
	if opts.Clock != nil {
		m.now = opts.Clock
	}
	c := cursor.New()
	c.Style = styles.Cursor.Copy()
	c.TextStyle = styles.Filter.Copy()
	c.SetChar(" ")
	c.SetMode(cursor.CursorStatic)
	c.Focus()
	m.caret = c
	m.registerHandlers()
	return m
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.startRefresh(), m.scheduleTick())
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if handler := m.handlerFor(msg); handler != nil {
		return m, handler(msg)
	}
	return m, nil
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(tickMsg{}):           m.handleTickMsg,
		reflect.TypeOf(refreshMsg{}):        m.handleRefreshMsg,
		reflect.TypeOf(descriptionMsg{}):    m.handleDescriptionMsg,
		reflect.TypeOf(searchResultsMsg{}):  m.handleSearchResultsMsg,
		reflect.TypeOf(sessionOutputMsg{}):  m.handleSessionOutputMsg,
		reflect.TypeOf(stopAllDoneMsg{}):    m.handleStopAllDoneMsg,
		reflect.TypeOf(command.Done{}):      m.handleCommandDoneMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	if m.confirm != nil {
		return m.handleConfirmKey(keyMsg)
	}
	switch m.Mode() {
	case ModeInstallSearch, ModeUninstallSearch:
		return m.handleSearchKey(keyMsg)
	case ModeHelp:
		return m.popMode()
	case ModeExitConfirm:
		return m.handleExitKey(keyMsg)
	case ModeSession:
		return m.handleSessionKey(keyMsg)
	default:
		return m.handleDashboardKey(keyMsg)
	}
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	size, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if size.Width > 0 {
		m.width = size.Width
	}
	if size.Height > 0 {
		m.height = size.Height
	}
	m.syncCursors()
	return nil
}

func (m *Model) handleTickMsg(msg tea.Msg) tea.Cmd {
	tick, ok := msg.(tickMsg)
	if !ok || tick.gen != m.tickGen || m.timeout <= 0 {
		return nil
	}
	gen := m.tickGen
	var cmd tea.Cmd
	switch m.Mode() {
	case ModeDashboard:
		cmd = m.dashboardTick()
	case ModeInstallSearch:
		cmd = m.searchTick()
	case ModeSession:
		cmd = m.sessionTick()
	}
	if m.tickGen != gen {
		// the tick changed mode and already started a new chain
		return cmd
	}
	return tea.Batch(cmd, m.scheduleTick())
}

// Mode returns the active mode.
func (m *Model) Mode() Mode {
	return m.modes[len(m.modes)-1]
}

// PollTimeout returns the current input poll timeout; zero means blocking.
func (m *Model) PollTimeout() time.Duration {
	return m.timeout
}

// RequestExit asks the dashboard to show the exit prompt on its next tick.
// It is safe to call from any goroutine.
func (m *Model) RequestExit() {
	m.exitRequested.Store(true)
}

// ExitRequested reports whether an exit request is pending.
func (m *Model) ExitRequested() bool {
	return m.exitRequested.Load()
}

func (m *Model) pushMode(mode Mode) tea.Cmd {
	events.Dashboard.Mode(m.Mode().String(), mode.String())
	m.modes = append(m.modes, mode)
	return m.setPollTimeout(pollTimeout(mode))
}

func (m *Model) popMode() tea.Cmd {
	if len(m.modes) <= 1 {
		return nil
	}
	from := m.Mode()
	m.modes = m.modes[:len(m.modes)-1]
	events.Dashboard.Mode(from.String(), m.Mode().String())
	return m.setPollTimeout(pollTimeout(m.Mode()))
}

// setPollTimeout replaces the tick chain. Ticks from the previous chain are
// discarded when they arrive.
func (m *Model) setPollTimeout(d time.Duration) tea.Cmd {
	m.timeout = d
	m.tickGen++
	return m.scheduleTick()
}

func (m *Model) scheduleTick() tea.Cmd {
	if m.timeout <= 0 || m.tick == nil {
		return nil
	}
	gen := m.tickGen
	return m.tick(m.timeout, func(time.Time) tea.Msg { return tickMsg{gen: gen} })
}
