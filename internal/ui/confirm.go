package ui

import (
	"time"

	"github.com/atomicstack/flatpak-manager/internal/logging/events"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Decision is the outcome of a confirmation prompt.
type Decision int

const (
	Cancelled Decision = iota
	Confirmed
)

func (d Decision) String() string {
	if d == Confirmed {
		return "confirmed"
	}
	return "cancelled"
}

const confirmHint = "Press Enter to confirm, any other key to cancel."

type confirmState struct {
	message     string
	prevTimeout time.Duration
	then        func(Decision) tea.Cmd
}

// openConfirm shows message over the current screen. Input blocks until a
// single key is pressed; then receives the decision once the previous poll
// timeout has been restored.
func (m *Model) openConfirm(message string, then func(Decision) tea.Cmd) tea.Cmd {
	events.Confirm.Prompt(message)
	m.confirm = &confirmState{
		message:     message,
		prevTimeout: m.timeout,
		then:        then,
	}
	return m.setPollTimeout(0)
}

func (m *Model) handleConfirmKey(msg tea.KeyMsg) tea.Cmd {
	prompt := m.confirm
	m.confirm = nil
	decision := Cancelled
	if key.Matches(msg, m.keys.Select) {
		decision = Confirmed
	}
	events.Confirm.Decision(prompt.message, decision == Confirmed)
	restore := m.setPollTimeout(prompt.prevTimeout)
	if prompt.then == nil {
		return restore
	}
	return tea.Batch(restore, prompt.then(decision))
}

func (m *Model) viewConfirm() string {
	lines := []styledLine{
		{text: m.confirm.message, style: styles.Prompt},
		{text: confirmHint, style: styles.PromptHint},
	}
	return m.renderScreen(lines)
}
