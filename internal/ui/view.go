package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const itemIndicator = "▌"

type styledLine struct {
	text          string
	style         *lipgloss.Style
	prefixStyle   *lipgloss.Style
	highlightFrom int
	raw           bool // text may carry escapes; truncate ANSI-aware and skip styling
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.confirm != nil {
		return m.viewConfirm()
	}
	switch m.Mode() {
	case ModeInstallSearch, ModeUninstallSearch:
		return m.viewSearch()
	case ModeHelp:
		return m.viewHelp()
	case ModeExitConfirm:
		return m.viewExitConfirm()
	case ModeSession:
		return m.viewSession()
	default:
		return m.viewDashboard()
	}
}

// renderScreen fits lines to the terminal and renders them.
func (m *Model) renderScreen(lines []styledLine) string {
	lines = limitHeight(lines, m.height, m.width)
	lines = applyWidth(lines, m.width)
	return renderLines(lines)
}

// renderColumn renders lines into a block exactly width columns wide.
func renderColumn(lines []styledLine, width, height int) string {
	if width <= 0 {
		return ""
	}
	lines = limitHeight(lines, height, width)
	lines = applyWidth(lines, width)
	return lipgloss.NewStyle().Width(width).Render(renderLines(lines))
}

func buildItemLine(label string, selected bool, width int) styledLine {
	lineStyle := styles.Item
	indicatorStyle := styles.ItemIndicator
	if selected {
		indicatorStyle = styles.SelectedItemIndicator
		lineStyle = styles.SelectedItem
	}
	text := itemIndicator + " " + label
	if width > 0 {
		if pad := width - ansi.StringWidth(text); pad > 0 {
			text += strings.Repeat(" ", pad)
		}
	}
	return styledLine{
		text:          text,
		style:         lineStyle,
		prefixStyle:   indicatorStyle,
		highlightFrom: 1,
	}
}

func limitHeight(lines []styledLine, height, width int) []styledLine {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	if height == 1 {
		return []styledLine{{text: truncateText("…", width)}}
	}
	trimmed := make([]styledLine, 0, height)
	trimmed = append(trimmed, lines[:height-1]...)
	trimmed = append(trimmed, styledLine{text: truncateText("…", width)})
	return trimmed
}

func applyWidth(lines []styledLine, width int) []styledLine {
	if width <= 0 {
		return lines
	}
	result := make([]styledLine, len(lines))
	for i, line := range lines {
		if line.raw {
			line.text = ansi.Truncate(line.text, width, "")
		} else {
			line.text = truncateText(line.text, width)
		}
		result[i] = line
	}
	return result
}

func renderLines(lines []styledLine) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		text := line.text
		if line.raw {
			out[i] = text
			continue
		}
		runes := []rune(text)
		if line.highlightFrom > 0 && line.highlightFrom < len(runes) {
			head := string(runes[:line.highlightFrom])
			tail := string(runes[line.highlightFrom:])
			if line.prefixStyle != nil {
				head = line.prefixStyle.Render(head)
			}
			if line.style != nil {
				tail = line.style.Render(tail)
			}
			text = head + tail
		} else if line.style != nil {
			text = line.style.Render(text)
		}
		out[i] = text
	}
	return strings.Join(out, "\n")
}

func truncateText(text string, width int) string {
	if width <= 0 {
		return text
	}
	return ansi.Truncate(text, width, "…")
}

// promptLine renders an input prompt with the caret after the text.
func (m *Model) promptLine(label, text, placeholder string) string {
	prompt := styles.FilterPrompt.Render(label)
	if text == "" && placeholder != "" {
		return prompt + m.caret.View() + styles.FilterPlaceholder.Render(placeholder)
	}
	return prompt + styles.Filter.Render(text) + m.caret.View()
}
