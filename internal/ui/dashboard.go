package ui

import (
	"fmt"

	"github.com/atomicstack/flatpak-manager/internal/backend"
	"github.com/atomicstack/flatpak-manager/internal/flatpak"
	"github.com/atomicstack/flatpak-manager/internal/logging/events"
	"github.com/atomicstack/flatpak-manager/internal/state"
	"github.com/atomicstack/flatpak-manager/internal/ui/command"
	uistate "github.com/atomicstack/flatpak-manager/internal/ui/state"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

const (
	dashboardTitle  = "Flatpak Manager"
	dashboardFooter = "tab install  ctrl+u uninstall  f1 help  esc exit"
	runningMarker   = " [running]"
)

type refreshMsg struct {
	events []backend.Event
}

type descriptionMsg struct {
	id   string
	text string
}

func (m *Model) dashboardTick() tea.Cmd {
	if m.exitRequested.Load() {
		return m.pushMode(ModeExitConfirm)
	}
	return m.startRefresh()
}

// startRefresh fetches the installed list and the running map when the cached
// copy has expired.
func (m *Model) startRefresh() tea.Cmd {
	now := m.now()
	if m.catalog == nil || !m.refresher.Due(now) {
		return nil
	}
	m.refresher.Begin(now)
	catalog := m.catalog
	return func() tea.Msg {
		return refreshMsg{events: backend.Snapshot(catalog)}
	}
}

func (m *Model) handleRefreshMsg(msg tea.Msg) tea.Cmd {
	refresh, ok := msg.(refreshMsg)
	if !ok {
		return nil
	}
	m.refresher.Done()
	res := m.dispatcher.HandleAll(refresh.events)
	if !res.InstalledUpdated && !res.RunningUpdated {
		return nil
	}
	m.syncCursors()
	if m.search != nil && m.search.kind == searchUninstall {
		m.refilterLocal()
	}
	events.Dashboard.Refresh(len(m.installed.Entries()), len(m.running.Entries()))
	return m.describeSelected()
}

func (m *Model) handleDescriptionMsg(msg tea.Msg) tea.Cmd {
	desc, ok := msg.(descriptionMsg)
	if !ok {
		return nil
	}
	delete(m.describing, desc.id)
	m.descriptions[desc.id] = desc.text
	return nil
}

func (m *Model) handleCommandDoneMsg(msg tea.Msg) tea.Cmd {
	m.refresher.Invalidate()
	return nil
}

func (m *Model) handleDashboardKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Up):
		return m.moveFocused(func(c *uistate.Cursor, n int) bool { return c.MoveUp() })
	case key.Matches(msg, m.keys.Down):
		return m.moveFocused(func(c *uistate.Cursor, n int) bool { return c.MoveDown(n) })
	case key.Matches(msg, m.keys.PageUp):
		visible := m.focusedVisibleRows()
		return m.moveFocused(func(c *uistate.Cursor, n int) bool { return c.MovePageUp(n, visible) })
	case key.Matches(msg, m.keys.PageDown):
		visible := m.focusedVisibleRows()
		return m.moveFocused(func(c *uistate.Cursor, n int) bool { return c.MovePageDown(n, visible) })
	case key.Matches(msg, m.keys.Home):
		return m.moveFocused(func(c *uistate.Cursor, n int) bool { return c.MoveHome() })
	case key.Matches(msg, m.keys.End):
		return m.moveFocused(func(c *uistate.Cursor, n int) bool { return c.MoveEnd(n) })
	case key.Matches(msg, m.keys.Left):
		m.setFocus(PanelInstalled)
		return nil
	case key.Matches(msg, m.keys.Right):
		m.setFocus(PanelRunning)
		return nil
	case key.Matches(msg, m.keys.Select):
		return m.activateSelection()
	case key.Matches(msg, m.keys.Install):
		return m.openSearch(searchInstall)
	case key.Matches(msg, m.keys.Uninstall):
		return m.openSearch(searchUninstall)
	case key.Matches(msg, m.keys.Help):
		return m.pushMode(ModeHelp)
	case key.Matches(msg, m.keys.HelpOrDelete):
		if m.filter.Empty() {
			return m.pushMode(ModeHelp)
		}
		return m.editFilter(m.filter.DeleteBackward())
	case key.Matches(msg, m.keys.Delete):
		return m.editFilter(m.filter.DeleteBackward())
	case key.Matches(msg, m.keys.Exit):
		m.exitRequested.Store(true)
		return m.pushMode(ModeExitConfirm)
	}
	if text, ok := printableText(msg); ok {
		return m.editFilter(m.filter.Insert(text))
	}
	return nil
}

func (m *Model) editFilter(changed bool) tea.Cmd {
	if !changed {
		return nil
	}
	m.installedCursor.Reset()
	m.syncCursors()
	events.Dashboard.Filter(m.filter.Text)
	return m.describeSelected()
}

func (m *Model) setFocus(panel Panel) {
	if m.focus == panel {
		return
	}
	m.focus = panel
	events.Dashboard.Focus(panel.String())
}

func (m *Model) moveFocused(move func(*uistate.Cursor, int) bool) tea.Cmd {
	c, n := &m.installedCursor, len(m.visibleInstalled())
	if m.focus == PanelRunning {
		c, n = &m.runningCursor, len(m.running.Entries())
	}
	if !move(c, n) {
		return nil
	}
	m.syncCursors()
	events.Dashboard.Cursor(m.focus.String(), c.Index)
	if m.focus == PanelInstalled {
		return m.describeSelected()
	}
	return nil
}

func (m *Model) activateSelection() tea.Cmd {
	switch m.focus {
	case PanelRunning:
		entry, ok := m.selectedRunning()
		if !ok {
			return nil
		}
		return m.confirmStop(m.displayName(entry.ID), entry.Instance)
	default:
		app, ok := m.selectedInstalled()
		if !ok {
			return nil
		}
		if instance, running := m.running.Instance(app.ID); running {
			return m.confirmStop(app.Name, instance)
		}
		return m.launch(app.ID)
	}
}

func (m *Model) confirmStop(name, instance string) tea.Cmd {
	message := fmt.Sprintf("Do you really want to stop '%s'?", name)
	return m.openConfirm(message, func(d Decision) tea.Cmd {
		if d != Confirmed {
			return nil
		}
		return m.stop(instance)
	})
}

func (m *Model) launch(id string) tea.Cmd {
	catalog := m.catalog
	if catalog == nil {
		return nil
	}
	return m.bus.Execute(command.Request{ID: "launch", Label: id, Run: func() { catalog.Launch(id) }})
}

func (m *Model) stop(instance string) tea.Cmd {
	catalog := m.catalog
	if catalog == nil {
		return nil
	}
	return m.bus.Execute(command.Request{ID: "stop", Label: instance, Run: func() { catalog.Stop(instance) }})
}

// describeSelected fetches the description of the selected installed app
// unless it is cached or already being fetched.
func (m *Model) describeSelected() tea.Cmd {
	app, ok := m.selectedInstalled()
	if !ok || m.catalog == nil {
		return nil
	}
	if _, cached := m.descriptions[app.ID]; cached || m.describing[app.ID] {
		return nil
	}
	m.describing[app.ID] = true
	catalog, id := m.catalog, app.ID
	return func() tea.Msg {
		return descriptionMsg{id: id, text: catalog.Describe(id)}
	}
}

func (m *Model) installedCandidates() []uistate.Candidate {
	apps := m.installed.Entries()
	out := make([]uistate.Candidate, len(apps))
	for i, app := range apps {
		out[i] = uistate.Candidate{ID: app.ID, Name: app.Name}
	}
	return out
}

// visibleInstalled returns the installed apps matching the dashboard filter.
func (m *Model) visibleInstalled() []uistate.Candidate {
	return uistate.FilterByName(m.installedCandidates(), m.filter.Text)
}

func (m *Model) selectedInstalled() (flatpak.App, bool) {
	apps := m.visibleInstalled()
	if len(apps) == 0 {
		return flatpak.App{}, false
	}
	m.installedCursor.Clamp(len(apps))
	c := apps[m.installedCursor.Index]
	return flatpak.App{ID: c.ID, Name: c.Name}, true
}

func (m *Model) selectedRunning() (state.RunningEntry, bool) {
	entries := m.running.Entries()
	if len(entries) == 0 {
		return state.RunningEntry{}, false
	}
	m.runningCursor.Clamp(len(entries))
	return entries[m.runningCursor.Index], true
}

func (m *Model) displayName(id string) string {
	if app, ok := m.installed.Lookup(id); ok && app.Name != "" {
		return app.Name
	}
	return id
}

func (m *Model) installedVisibleRows() int {
	return maxInt(1, m.height-4)
}

func (m *Model) runningVisibleRows() int {
	return maxInt(1, m.height-7)
}

func (m *Model) focusedVisibleRows() int {
	if m.focus == PanelRunning {
		return m.runningVisibleRows()
	}
	return m.installedVisibleRows()
}

// syncCursors re-establishes the cursor invariants after any list change.
func (m *Model) syncCursors() {
	m.installedCursor.EnsureVisible(len(m.visibleInstalled()), m.installedVisibleRows())
	m.runningCursor.EnsureVisible(len(m.running.Entries()), m.runningVisibleRows())
	if m.search != nil {
		m.search.cursor.EnsureVisible(len(m.search.results), m.searchVisibleRows())
	}
}

func (m *Model) viewDashboard() string {
	m.syncCursors()
	leftWidth := m.width / 2
	rightWidth := m.width - leftWidth
	bodyHeight := maxInt(1, m.height-3)

	left := m.installedPanel(leftWidth, bodyHeight)
	right := m.runningPanel(rightWidth, bodyHeight)
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, right)

	header := applyWidth([]styledLine{{text: dashboardTitle, style: styles.Header}}, m.width)
	bottom := applyWidth([]styledLine{
		{text: m.promptLine("Search: ", m.filter.Text, "type to filter installed apps"), raw: true},
		{text: dashboardFooter, style: styles.Footer},
	}, m.width)
	return renderLines(header) + "\n" + body + "\n" + renderLines(bottom)
}

func (m *Model) installedPanel(width, height int) string {
	apps := m.visibleInstalled()
	title := fmt.Sprintf("Installed (%d)", len(apps))
	lines := []styledLine{m.panelTitle(title, PanelInstalled)}
	if len(apps) == 0 {
		lines = append(lines, m.emptyInstalledLines()...)
		return renderColumn(lines, width, height)
	}
	start, end := m.installedCursor.Window(len(apps), m.installedVisibleRows())
	for i := start; i < end; i++ {
		label := apps[i].Name
		if _, running := m.running.Instance(apps[i].ID); running {
			label += runningMarker
		}
		selected := i == m.installedCursor.Index && m.focus == PanelInstalled
		lines = append(lines, buildItemLine(label, selected, width))
	}
	return renderColumn(lines, width, height)
}

func (m *Model) emptyInstalledLines() []styledLine {
	if m.filter.Empty() {
		return []styledLine{{text: "(no installed apps)", style: styles.Info}}
	}
	lines := []styledLine{{text: fmt.Sprintf("No matches for %q", m.filter.Text), style: styles.Info}}
	if hint := uistate.Suggest(m.installedCandidates(), m.filter.Text); hint != "" {
		lines = append(lines, styledLine{text: fmt.Sprintf("Did you mean %s?", hint), style: styles.Hint})
	}
	return lines
}

func (m *Model) runningPanel(width, height int) string {
	lines := []styledLine{{text: "Description:", style: styles.DetailTitle}}
	desc := ""
	if app, ok := m.selectedInstalled(); ok {
		if text, cached := m.descriptions[app.ID]; cached {
			desc = text
		} else {
			desc = "…"
		}
	}
	lines = append(lines,
		styledLine{text: truncate.String(firstLine(desc), uint(maxInt(0, width))), style: styles.Description},
		styledLine{},
	)

	entries := m.running.Entries()
	lines = append(lines, m.panelTitle(fmt.Sprintf("Running (%d)", len(entries)), PanelRunning))
	if len(entries) == 0 {
		lines = append(lines, styledLine{text: "(nothing running)", style: styles.Info})
		return renderColumn(lines, width, height)
	}
	start, end := m.runningCursor.Window(len(entries), m.runningVisibleRows())
	for i := start; i < end; i++ {
		label := fmt.Sprintf("%s (%s)", m.displayName(entries[i].ID), entries[i].Instance)
		selected := i == m.runningCursor.Index && m.focus == PanelRunning
		lines = append(lines, buildItemLine(label, selected, width))
	}
	return renderColumn(lines, width, height)
}

func (m *Model) panelTitle(title string, panel Panel) styledLine {
	if m.focus == panel {
		return styledLine{text: title, style: styles.FocusedPanelTitle}
	}
	return styledLine{text: title, style: styles.PanelTitle}
}

func firstLine(text string) string {
	for i, r := range text {
		if r == '\n' {
			return text[:i]
		}
	}
	return text
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
