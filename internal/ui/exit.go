package ui

import (
	"fmt"

	"github.com/atomicstack/flatpak-manager/internal/logging/events"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

const exitPrompt = "Do you want to stop all running Flatpak apps before exit? (y/N/c)"

type stopAllDoneMsg struct {
	stopped int
}

func (m *Model) handleExitKey(msg tea.KeyMsg) tea.Cmd {
	if m.quitting {
		return nil
	}
	switch {
	case key.Matches(msg, m.keys.ExitYes):
		m.quitting = true
		return m.stopAll()
	case key.Matches(msg, m.keys.ExitNo):
		m.quitting = true
		events.App.Exit(false, 0)
		return tea.Quit
	case key.Matches(msg, m.keys.ExitCancel):
		m.exitRequested.Store(false)
		return m.popMode()
	}
	return nil
}

// stopAll re-reads the running apps so nothing started since the last
// refresh is missed, then stops every instance.
func (m *Model) stopAll() tea.Cmd {
	catalog := m.catalog
	return func() tea.Msg {
		stopped := 0
		if catalog != nil {
			for _, instance := range catalog.ListRunning() {
				catalog.Stop(instance)
				stopped++
			}
		}
		return stopAllDoneMsg{stopped: stopped}
	}
}

func (m *Model) handleStopAllDoneMsg(msg tea.Msg) tea.Cmd {
	done, ok := msg.(stopAllDoneMsg)
	if !ok {
		return nil
	}
	events.App.Exit(true, done.stopped)
	return tea.Quit
}

func (m *Model) viewExitConfirm() string {
	lines := []styledLine{
		{text: exitPrompt, style: styles.Prompt},
		{text: fmt.Sprintf("%d running. y: stop all and exit  n/Enter: exit  c: cancel", len(m.running.Entries())), style: styles.PromptHint},
	}
	if m.quitting {
		lines = append(lines, styledLine{text: "Stopping…", style: styles.Hint})
	}
	return m.renderScreen(lines)
}
