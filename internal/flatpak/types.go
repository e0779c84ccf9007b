package flatpak

import (
	"os"
	"os/exec"
	"syscall"
)

// App is an installed application as reported by flatpak list.
type App struct {
	ID   string
	Name string
}

// Running maps an application id to the instance handle used to kill it.
type Running map[string]string

// Package is a remote catalog entry returned by flatpak search.
type Package struct {
	ID          string
	Name        string
	Description string
}

const (
	binary = "flatpak"
	remote = "flathub"

	// MaxSearchResults mirrors the practical limit of flatpak search output.
	MaxSearchResults = 150

	// NoDescription is shown when flatpak info cannot describe an app.
	NoDescription = "No description available."
)

var runExecCommand = func(name string, args ...string) commander {
	return realCommander{cmd: exec.Command(name, args...)}
}

type commander interface {
	Run() error
	Output() ([]byte, error)
	StartDetached() error
}

type realCommander struct {
	cmd *exec.Cmd
}

func (r realCommander) Run() error {
	return r.cmd.Run()
}

func (r realCommander) Output() ([]byte, error) {
	return r.cmd.Output()
}

// StartDetached starts the command in its own process group with stdio
// discarded so it survives terminal signals aimed at the dashboard.
func (r realCommander) StartDetached() error {
	devnull, err := os.OpenFile(os.DevNull, os.O_RDWR, 0)
	if err != nil {
		return err
	}
	r.cmd.Stdin = devnull
	r.cmd.Stdout = devnull
	r.cmd.Stderr = devnull
	r.cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	if err := r.cmd.Start(); err != nil {
		devnull.Close()
		return err
	}
	go func() {
		_ = r.cmd.Wait()
		devnull.Close()
	}()
	return nil
}
