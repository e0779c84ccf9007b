package ui

import "github.com/atomicstack/flatpak-manager/internal/manual"

const helpTitle = "Flatpak Manager Help"

func (m *Model) viewHelp() string {
	lines := []styledLine{
		{text: helpTitle, style: styles.Header},
		{},
	}
	for _, line := range manual.HelpLines() {
		lines = append(lines, styledLine{text: "  " + line, style: styles.Info})
	}
	lines = append(lines,
		styledLine{},
		styledLine{text: "Press any key to return.", style: styles.Footer},
	)
	return m.renderScreen(lines)
}
