package ui

import (
	"fmt"

	"github.com/atomicstack/flatpak-manager/internal/backend"
	"github.com/atomicstack/flatpak-manager/internal/flatpak"
	"github.com/atomicstack/flatpak-manager/internal/logging/events"
	uistate "github.com/atomicstack/flatpak-manager/internal/ui/state"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

type searchKind int

const (
	// searchInstall queries the remote catalog with a debounce.
	searchInstall searchKind = iota
	// searchUninstall filters the live installed list on every keystroke.
	searchUninstall
)

func (k searchKind) String() string {
	if k == searchUninstall {
		return "uninstall"
	}
	return "install"
}

type searchState struct {
	kind     searchKind
	query    uistate.Query
	cursor   uistate.Cursor
	results  []uistate.Candidate
	debounce *backend.Debouncer
	inflight bool
	hint     string
}

type searchResultsMsg struct {
	query    string
	packages []flatpak.Package
}

func (m *Model) openSearch(kind searchKind) tea.Cmd {
	m.search = &searchState{
		kind:     kind,
		debounce: backend.NewDebouncer(backend.DebounceWindow),
	}
	if kind == searchUninstall {
		m.refilterLocal()
		return m.pushMode(ModeUninstallSearch)
	}
	return m.pushMode(ModeInstallSearch)
}

func (m *Model) closeSearch() tea.Cmd {
	m.search = nil
	return m.popMode()
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) tea.Cmd {
	s := m.search
	if s == nil {
		return m.popMode()
	}
	n := len(s.results)
	switch {
	case key.Matches(msg, m.keys.Back):
		return m.closeSearch()
	case key.Matches(msg, m.keys.Up):
		s.cursor.MoveUp()
	case key.Matches(msg, m.keys.Down):
		s.cursor.MoveDown(n)
	case key.Matches(msg, m.keys.PageUp):
		s.cursor.MovePageUp(n, m.searchVisibleRows())
	case key.Matches(msg, m.keys.PageDown):
		s.cursor.MovePageDown(n, m.searchVisibleRows())
	case key.Matches(msg, m.keys.Home):
		s.cursor.MoveHome()
	case key.Matches(msg, m.keys.End):
		s.cursor.MoveEnd(n)
	case key.Matches(msg, m.keys.Select):
		return m.selectSearchResult()
	case key.Matches(msg, m.keys.Delete), key.Matches(msg, m.keys.HelpOrDelete):
		if s.query.DeleteBackward() {
			m.queryEdited(true)
		}
	default:
		if text, ok := printableText(msg); ok && s.query.Insert(text) {
			m.queryEdited(false)
		}
	}
	s.cursor.EnsureVisible(len(s.results), m.searchVisibleRows())
	return nil
}

func (m *Model) queryEdited(deleted bool) {
	s := m.search
	s.cursor.Reset()
	if s.kind == searchUninstall {
		m.refilterLocal()
		return
	}
	s.debounce.Edit(m.now())
	if deleted {
		s.debounce.Forget()
	}
	if s.query.Empty() {
		s.results = nil
	}
}

// refilterLocal recomputes the uninstall list from the live installed apps.
func (m *Model) refilterLocal() {
	s := m.search
	source := m.installedCandidates()
	s.results = uistate.Cap(uistate.FilterByName(source, s.query.Text), uistate.MaxResults)
	s.cursor.Clamp(len(s.results))
	s.hint = ""
	if len(s.results) == 0 && !s.query.Empty() {
		s.hint = uistate.Suggest(source, s.query.Text)
	}
}

func (m *Model) searchTick() tea.Cmd {
	s := m.search
	if s == nil || s.kind != searchInstall || s.inflight || m.catalog == nil {
		return nil
	}
	query := s.query.Text
	if !s.debounce.Ready(query, m.now()) {
		return nil
	}
	s.debounce.MarkQueried(query)
	s.inflight = true
	events.Search.Query(s.kind.String(), query)
	catalog := m.catalog
	return func() tea.Msg {
		return searchResultsMsg{query: query, packages: catalog.Search(query)}
	}
}

func (m *Model) handleSearchResultsMsg(msg tea.Msg) tea.Cmd {
	res, ok := msg.(searchResultsMsg)
	if !ok || m.search == nil {
		return nil
	}
	s := m.search
	s.inflight = false
	if res.query != s.query.Text {
		return nil
	}
	candidates := make([]uistate.Candidate, len(res.packages))
	for i, pkg := range res.packages {
		candidates[i] = uistate.Candidate{ID: pkg.ID, Name: pkg.Name, Description: pkg.Description}
	}
	s.results = uistate.Cap(uistate.Rerank(candidates, res.query), uistate.MaxResults)
	s.cursor.EnsureVisible(len(s.results), m.searchVisibleRows())
	events.Search.Results(s.kind.String(), res.query, len(s.results))
	return nil
}

func (m *Model) selectSearchResult() tea.Cmd {
	s := m.search
	if len(s.results) == 0 {
		return nil
	}
	s.cursor.Clamp(len(s.results))
	target := s.results[s.cursor.Index]
	kind := s.kind
	events.Search.Select(kind.String(), target.ID)
	verb := "Install"
	if kind == searchUninstall {
		verb = "Uninstall"
	}
	message := fmt.Sprintf("%s package %s (%s)?", verb, target.Name, target.ID)
	return m.openConfirm(message, func(d Decision) tea.Cmd {
		if d != Confirmed {
			return nil
		}
		return m.startSession(kind, target)
	})
}

func (m *Model) searchVisibleRows() int {
	return maxInt(1, m.height-3)
}

func (m *Model) viewSearch() string {
	s := m.search
	if s == nil {
		return ""
	}
	title := "Install package from flathub"
	placeholder := "type to search flathub"
	if s.kind == searchUninstall {
		title = "Uninstall package"
		placeholder = "type to filter installed apps"
	}
	top := applyWidth([]styledLine{
		{text: title + "  (esc to go back)", style: styles.Header},
		{text: m.promptLine("Search: ", s.query.Text, placeholder), raw: true},
		m.searchStatusLine(),
	}, m.width)

	rows := m.searchVisibleRows()
	listWidth := m.width
	if s.kind == searchInstall {
		listWidth = m.width / 2
	}
	list := m.searchListLines(listWidth, rows)
	body := renderColumn(list, listWidth, rows)
	if s.kind == searchInstall && len(s.results) > 0 {
		detail := renderColumn(m.searchDetailLines(m.width-listWidth), m.width-listWidth, rows)
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, detail)
	}
	return renderLines(top) + "\n" + body
}

func (m *Model) searchStatusLine() styledLine {
	s := m.search
	switch {
	case len(s.results) > 0:
		return styledLine{text: fmt.Sprintf("%d results", len(s.results)), style: styles.Info}
	case s.query.Empty():
		return styledLine{}
	case s.kind == searchUninstall:
		if s.hint != "" {
			return styledLine{text: fmt.Sprintf("No installed apps match. Did you mean %s?", s.hint), style: styles.Hint}
		}
		return styledLine{text: "No installed apps match.", style: styles.Info}
	case s.inflight || s.debounce.LastQueried() != s.query.Text:
		return styledLine{text: "Searching…", style: styles.Hint}
	default:
		return styledLine{text: "No packages found.", style: styles.Info}
	}
}

func (m *Model) searchListLines(width, rows int) []styledLine {
	s := m.search
	start, end := s.cursor.Window(len(s.results), rows)
	lines := make([]styledLine, 0, end-start)
	for i := start; i < end; i++ {
		lines = append(lines, buildItemLine(s.results[i].Label(), i == s.cursor.Index, width))
	}
	return lines
}

func (m *Model) searchDetailLines(width int) []styledLine {
	s := m.search
	s.cursor.Clamp(len(s.results))
	selected := s.results[s.cursor.Index]
	w := uint(maxInt(0, width))
	desc := selected.Description
	if desc == "" {
		desc = flatpak.NoDescription
	}
	return []styledLine{
		{text: truncate.String("Package Details:", w), style: styles.DetailTitle},
		{text: truncate.String("Name: "+selected.Name, w), style: styles.DetailBody},
		{text: truncate.String("Package Code: "+selected.ID, w), style: styles.DetailBody},
		{text: truncate.String("Description: "+firstLine(desc), w), style: styles.DetailBody},
	}
}
