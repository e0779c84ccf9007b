package ui

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/atomicstack/flatpak-manager/internal/format/sanitize"
	"github.com/atomicstack/flatpak-manager/internal/logging"
	"github.com/atomicstack/flatpak-manager/internal/logging/events"
	uistate "github.com/atomicstack/flatpak-manager/internal/ui/state"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	sessionReadMax     = 1024
	sessionReadTimeout = 100 * time.Millisecond
	sessionHeaderRows  = 3
)

type sessionState struct {
	kind       searchKind
	target     uistate.Candidate
	command    string
	proc       Session
	transcript bytes.Buffer
	reading    bool
	completed  bool
	exitCode   int
}

type sessionOutputMsg struct {
	proc Session
	data []byte
	err  error
}

// startSession runs the install or uninstall command for target on a
// pseudo-terminal and shows its output.
func (m *Model) startSession(kind searchKind, target uistate.Candidate) tea.Cmd {
	commandLine := ""
	if m.catalog != nil {
		if kind == searchUninstall {
			commandLine = m.catalog.UninstallCommand(target.ID)
		} else {
			commandLine = m.catalog.InstallCommand(target.ID)
		}
	}
	s := &sessionState{kind: kind, target: target, command: commandLine, exitCode: -1}
	m.session = s
	push := m.pushMode(ModeSession)

	events.Session.Spawn(commandLine)
	proc, err := m.spawnSession(commandLine)
	if err != nil {
		events.Session.SpawnFailed(commandLine, err)
		logging.Error(err)
		fmt.Fprintf(&s.transcript, "%v\n", err)
		return tea.Batch(push, m.completeSession())
	}
	s.proc = proc
	return tea.Batch(push, m.readSession())
}

func (m *Model) spawnSession(commandLine string) (Session, error) {
	if m.spawn == nil {
		return nil, errors.New("no terminal available to run commands")
	}
	proc, err := m.spawn(commandLine, m.width, maxInt(1, m.height-sessionHeaderRows))
	if err != nil {
		return nil, fmt.Errorf("run %q: %w", commandLine, err)
	}
	return proc, nil
}

func (m *Model) sessionTick() tea.Cmd {
	return m.readSession()
}

// readSession issues one bounded read unless one is already outstanding.
func (m *Model) readSession() tea.Cmd {
	s := m.session
	if s == nil || s.proc == nil || s.completed || s.reading {
		return nil
	}
	s.reading = true
	proc := s.proc
	return func() tea.Msg {
		data, err := proc.ReadNonblocking(sessionReadMax, sessionReadTimeout)
		return sessionOutputMsg{proc: proc, data: data, err: err}
	}
}

func (m *Model) handleSessionOutputMsg(msg tea.Msg) tea.Cmd {
	out, ok := msg.(sessionOutputMsg)
	if !ok {
		return nil
	}
	s := m.session
	if s == nil || s.proc != out.proc {
		return nil
	}
	s.reading = false
	s.transcript.Write(out.data)
	switch {
	case errors.Is(out.err, io.EOF):
		return m.completeSession()
	case out.err == nil && len(out.data) > 0:
		// more output may already be buffered
		return m.readSession()
	default:
		return nil
	}
}

// completeSession freezes the transcript and waits for q.
func (m *Model) completeSession() tea.Cmd {
	s := m.session
	s.completed = true
	if s.proc != nil {
		s.exitCode = s.proc.ExitCode()
	}
	events.Session.Complete(s.command, s.exitCode, s.transcript.Len())
	return m.setPollTimeout(0)
}

func (m *Model) handleSessionKey(msg tea.KeyMsg) tea.Cmd {
	s := m.session
	if s == nil {
		return m.popMode()
	}
	if s.completed {
		if key.Matches(msg, m.keys.Quit) {
			return m.closeSession()
		}
		return nil
	}
	if s.proc == nil {
		return nil
	}
	if key.Matches(msg, m.keys.Quit) && s.proc.EOF() {
		return m.drainSession()
	}
	switch {
	case key.Matches(msg, m.keys.Select):
		m.sendToSession(func() error { return s.proc.SendLine("") }, 1)
	case key.Matches(msg, m.keys.Delete):
		m.sendToSession(func() error { return s.proc.Send("\x7f") }, 1)
	default:
		if text, ok := printableText(msg); ok {
			m.sendToSession(func() error { return s.proc.Send(text) }, len(text))
		}
	}
	return nil
}

// drainSession collects the output left after the child exited and shows
// the completed transcript. An outstanding read delivers it instead.
func (m *Model) drainSession() tea.Cmd {
	s := m.session
	if s.reading {
		return nil
	}
	for {
		data, err := s.proc.ReadNonblocking(sessionReadMax, 0)
		s.transcript.Write(data)
		if err != nil {
			break
		}
	}
	return m.completeSession()
}

func (m *Model) sendToSession(send func() error, n int) {
	events.Session.Input(n)
	if err := send(); err != nil {
		logging.Error(fmt.Errorf("send to %q: %w", m.session.command, err))
	}
}

// closeSession leaves the viewer and the search that started it.
func (m *Model) closeSession() tea.Cmd {
	if s := m.session; s != nil && s.proc != nil {
		if err := s.proc.Close(); err != nil {
			logging.Error(fmt.Errorf("close %q: %w", s.command, err))
		}
	}
	m.session = nil
	m.refresher.Invalidate()
	cmd := m.popMode()
	if m.Mode() == ModeInstallSearch || m.Mode() == ModeUninstallSearch {
		return m.closeSearch()
	}
	return cmd
}

func (m *Model) viewSession() string {
	s := m.session
	if s == nil {
		return ""
	}
	noun, verb := "installation", "Installing"
	if s.kind == searchUninstall {
		noun, verb = "uninstallation", "Uninstalling"
	}
	label := s.target.Label()
	var lines []styledLine
	if s.completed {
		lines = append(lines,
			styledLine{text: fmt.Sprintf("%s of %s completed.", capitalize(noun), label), style: styles.SessionDone},
			styledLine{text: fmt.Sprintf("Full %s output below. Press 'q' to return.", noun), style: styles.Hint},
		)
	} else {
		lines = append(lines,
			styledLine{text: fmt.Sprintf("%s %s", verb, label), style: styles.SessionHeader},
			styledLine{text: "Type to answer prompts, Enter sends a newline. 'q' returns once the command finishes.", style: styles.Hint},
		)
	}
	lines = append(lines, styledLine{text: strings.Repeat("─", maxInt(0, m.width)), style: styles.Divider})
	for _, line := range transcriptTail(s.transcript.String(), maxInt(0, m.height-sessionHeaderRows)) {
		lines = append(lines, styledLine{text: line, raw: true})
	}
	return m.renderScreen(lines)
}

// transcriptTail returns the last limit displayable lines of raw output.
func transcriptTail(raw string, limit int) []string {
	if limit <= 0 {
		return nil
	}
	text := sanitize.Strip(raw)
	lines := strings.Split(text, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) > limit {
		lines = lines[len(lines)-limit:]
	}
	for i, line := range lines {
		lines[i] = displayLine(line)
	}
	return lines
}

// displayLine applies carriage returns the way a terminal would for
// single-line progress output and drops other control characters.
func displayLine(line string) string {
	line = strings.TrimRight(line, "\r")
	if i := strings.LastIndexByte(line, '\r'); i >= 0 {
		line = line[i+1:]
	}
	return strings.Map(func(r rune) rune {
		if r == '\t' || r >= 0x20 && r != 0x7f {
			return r
		}
		return -1
	}, line)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
