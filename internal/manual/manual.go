// Package manual holds the static documentation printed by --manpage and
// shown on the in-app help screen.
package manual

import (
	"strings"

	"github.com/atomicstack/flatpak-manager/internal/format/table"
)

// Key documents one dashboard key binding.
type Key struct {
	Keys   string
	Action string
}

// Keys lists the dashboard bindings in display order.
var Keys = []Key{
	{Keys: "Up/Down", Action: "Navigate the focused list."},
	{Keys: "PgUp/PgDn Home/End", Action: "Jump through the focused list."},
	{Keys: "Left/Right", Action: "Switch between Installed and Running apps."},
	{Keys: "Enter", Action: "Launch an app, or stop it if it is running."},
	{Keys: "Tab / Ctrl+I", Action: "Search flathub and install a package."},
	{Keys: "Ctrl+U", Action: "Search installed apps and uninstall one."},
	{Keys: "F1", Action: "Display this help page."},
	{Keys: "Ctrl+H", Action: "Help when the search box is empty, else delete a character."},
	{Keys: "Backspace", Action: "Delete the last search character."},
	{Keys: "Letters", Action: "Filter installed apps by name."},
	{Keys: "Esc / Ctrl+C", Action: "Exit, optionally stopping running apps."},
}

// HelpLines renders Keys as an aligned two column table.
func HelpLines() []string {
	rows := make([][]string, len(Keys))
	for i, k := range Keys {
		rows[i] = []string{k.Keys, k.Action}
	}
	return table.Format(rows, []table.Alignment{table.AlignLeft, table.AlignLeft})
}

const header = `FLATPAK-MANAGER(1)                User Commands                FLATPAK-MANAGER(1)

NAME
       flatpak-manager - terminal dashboard for Flatpak applications

SYNOPSIS
       flatpak-manager [--manpage] [--trace] [--log-file PATH]

DESCRIPTION
       flatpak-manager is an interactive terminal application for managing
       Flatpak applications. It lists installed apps, shows which are
       running, launches and stops them, and installs or uninstalls
       packages from flathub.

OPTIONS
       --manpage
              Print this manual page and exit.

       --trace
              Write structured trace events to the log file.

       --log-file PATH
              Write logs to PATH instead of flatpak-manager.log.

KEY BINDINGS
`

const footer = `
PACKAGE INSTALLATION MODE
       Type a search term; results are fetched from flathub once typing
       pauses. Use the arrow keys to select a package and press Enter to
       confirm installation. The installer runs in a terminal view where
       prompts can be answered; press q to return once it finishes.

PACKAGE UNINSTALLATION MODE
       Type to filter the installed apps, select one with the arrow keys
       and press Enter to confirm uninstallation.

EXIT
       On exit you are asked whether running apps should be stopped:
       y stops them all, n or Enter leaves them running, c cancels.
       SIGINT shows the same prompt instead of terminating immediately.
`

// Page returns the full manual page.
func Page() string {
	var b strings.Builder
	b.WriteString(header)
	for _, line := range HelpLines() {
		b.WriteString("       ")
		b.WriteString(strings.TrimRight(line, " "))
		b.WriteByte('\n')
	}
	b.WriteString(footer)
	return b.String()
}
