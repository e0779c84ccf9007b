package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type keyMap struct {
	Up           key.Binding
	Down         key.Binding
	Left         key.Binding
	Right        key.Binding
	PageUp       key.Binding
	PageDown     key.Binding
	Home         key.Binding
	End          key.Binding
	Select       key.Binding
	Install      key.Binding
	Uninstall    key.Binding
	Help         key.Binding
	HelpOrDelete key.Binding
	Delete       key.Binding
	Exit         key.Binding
	Back         key.Binding
	Quit         key.Binding
	ExitYes      key.Binding
	ExitNo       key.Binding
	ExitCancel   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:        key.NewBinding(key.WithKeys("up")),
		Down:      key.NewBinding(key.WithKeys("down")),
		Left:      key.NewBinding(key.WithKeys("left")),
		Right:     key.NewBinding(key.WithKeys("right")),
		PageUp:    key.NewBinding(key.WithKeys("pgup")),
		PageDown:  key.NewBinding(key.WithKeys("pgdown")),
		Home:      key.NewBinding(key.WithKeys("home")),
		End:       key.NewBinding(key.WithKeys("end")),
		Select:    key.NewBinding(key.WithKeys("enter", "ctrl+j")),
		Install:   key.NewBinding(key.WithKeys("tab")),
		Uninstall: key.NewBinding(key.WithKeys("ctrl+u")),
		Help:      key.NewBinding(key.WithKeys("f1")),
		// Some terminals send ^H for backspace, so it doubles as an editing key.
		HelpOrDelete: key.NewBinding(key.WithKeys("ctrl+h")),
		Delete:       key.NewBinding(key.WithKeys("backspace")),
		Exit:         key.NewBinding(key.WithKeys("esc", "ctrl+c")),
		Back:         key.NewBinding(key.WithKeys("esc")),
		Quit:         key.NewBinding(key.WithKeys("q")),
		ExitYes:      key.NewBinding(key.WithKeys("y", "Y")),
		ExitNo:       key.NewBinding(key.WithKeys("n", "N", "enter", "ctrl+j")),
		ExitCancel:   key.NewBinding(key.WithKeys("c", "C")),
	}
}

// printableText extracts literal text typed by the user, if any.
func printableText(msg tea.KeyMsg) (string, bool) {
	switch msg.Type {
	case tea.KeySpace:
		return " ", true
	case tea.KeyRunes:
		if msg.Alt || len(msg.Runes) == 0 {
			return "", false
		}
		for _, r := range msg.Runes {
			if r < 0x20 || r > 0x7e {
				return "", false
			}
		}
		return string(msg.Runes), true
	}
	return "", false
}
