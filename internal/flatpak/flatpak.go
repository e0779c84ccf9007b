// Package flatpak wraps the flatpak command line tool. Every query degrades
// to an empty or default value when the tool is missing or fails; failures
// are only recorded in the log.
package flatpak

import (
	"fmt"
	"strings"

	"github.com/atomicstack/flatpak-manager/internal/logging"
	"github.com/atomicstack/flatpak-manager/internal/logging/events"
	shellquote "github.com/kballard/go-shellquote"
)

// Client issues flatpak commands.
type Client struct{}

// NewClient returns a client that talks to the flatpak binary on PATH.
func NewClient() *Client {
	return &Client{}
}

// ListInstalled returns the installed applications.
func (c *Client) ListInstalled() []App {
	out, ok := output("list", "--app", "--columns=application,name")
	if !ok {
		return nil
	}
	return parseInstalled(out)
}

// ListRunning returns running applications keyed by application id.
func (c *Client) ListRunning() Running {
	out, ok := output("ps", "--columns=instance,application")
	if !ok {
		return Running{}
	}
	return parseRunning(out)
}

// Launch starts the application without waiting for it.
func (c *Client) Launch(id string) {
	id = strings.TrimSpace(id)
	if id == "" {
		return
	}
	events.Catalog.Launch(id)
	args := []string{"run", id}
	if err := runExecCommand(binary, args...).StartDetached(); err != nil {
		fail(args, fmt.Errorf("flatpak run %s: %w", id, err))
	}
}

// Stop kills a running instance. Failures are ignored.
func (c *Client) Stop(instance string) {
	instance = strings.TrimSpace(instance)
	if instance == "" {
		return
	}
	events.Catalog.Stop(instance)
	args := []string{"kill", instance}
	if err := runExecCommand(binary, args...).Run(); err != nil {
		fail(args, fmt.Errorf("flatpak kill %s: %w", instance, err))
	}
}

// Describe returns the human readable description of an application.
func (c *Client) Describe(id string) string {
	out, ok := output("info", "--show-description", id)
	if !ok {
		return NoDescription
	}
	return strings.TrimSpace(out)
}

// Search queries the configured remotes for term.
func (c *Client) Search(term string) []Package {
	if term == "" {
		return nil
	}
	out, ok := output("search", "--columns=application,name,description", term)
	if !ok {
		return nil
	}
	return parseSearch(out)
}

// InstallCommand returns the interactive command line that installs id.
func (c *Client) InstallCommand(id string) string {
	return shellquote.Join(binary, "install", remote, id)
}

// UninstallCommand returns the interactive command line that removes id.
func (c *Client) UninstallCommand(id string) string {
	return shellquote.Join(binary, "uninstall", id)
}

func output(args ...string) (string, bool) {
	events.Catalog.Exec(args)
	out, err := runExecCommand(binary, args...).Output()
	if err != nil {
		fail(args, fmt.Errorf("flatpak %s: %w", strings.Join(args, " "), err))
		return "", false
	}
	return string(out), true
}

func fail(args []string, err error) {
	events.Catalog.Failure(args, err)
	logging.Error(err)
}
