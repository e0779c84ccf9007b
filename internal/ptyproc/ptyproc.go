// Package ptyproc runs a command attached to a pseudo-terminal so it behaves
// as if started interactively, and exposes its output through bounded,
// non-blocking reads.
package ptyproc

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"
	"sync/atomic"
	"time"

	"github.com/creack/pty"
	shellquote "github.com/kballard/go-shellquote"
)

// ErrTimeout is returned by ReadNonblocking when no output arrived in time.
var ErrTimeout = errors.New("ptyproc: read timeout")

const chunkSize = 4096

// Session is a child process attached to a pseudo-terminal.
type Session struct {
	cmd  *exec.Cmd
	ptmx *os.File

	chunks  chan []byte
	pending []byte
	eof     atomic.Bool

	waitOnce sync.Once
	exitCode int
	closeMu  sync.Mutex
	closed   bool
}

// Spawn splits commandLine using shell quoting rules and starts it on a new
// pseudo-terminal of the given size. Zero dimensions keep the pty default.
func Spawn(commandLine string, cols, rows int) (*Session, error) {
	argv, err := shellquote.Split(commandLine)
	if err != nil {
		return nil, fmt.Errorf("parse command line %q: %w", commandLine, err)
	}
	if len(argv) == 0 {
		return nil, fmt.Errorf("empty command line")
	}
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Env = append(os.Environ(), "TERM=xterm-256color")
	var ptmx *os.File
	if cols > 0 && rows > 0 {
		ptmx, err = pty.StartWithSize(cmd, &pty.Winsize{Rows: uint16(rows), Cols: uint16(cols)})
	} else {
		ptmx, err = pty.Start(cmd)
	}
	if err != nil {
		return nil, fmt.Errorf("start %s on pty: %w", argv[0], err)
	}
	s := &Session{
		cmd:      cmd,
		ptmx:     ptmx,
		chunks:   make(chan []byte, 64),
		exitCode: -1,
	}
	go s.readLoop()
	return s, nil
}

// readLoop copies pty output into the chunk channel until the child closes
// its side. Linux reports EIO rather than EOF once the child exits, so any
// read error ends the stream.
func (s *Session) readLoop() {
	defer close(s.chunks)
	buf := make([]byte, chunkSize)
	for {
		n, err := s.ptmx.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			s.chunks <- chunk
		}
		if err != nil {
			return
		}
	}
}

// ReadNonblocking returns up to max bytes of output. It waits at most timeout
// for new data and returns ErrTimeout when none arrived. Once the child has
// closed the terminal it returns whatever was still buffered together with
// io.EOF.
func (s *Session) ReadNonblocking(max int, timeout time.Duration) ([]byte, error) {
	if max <= 0 {
		max = chunkSize
	}
	if len(s.pending) > 0 {
		return s.take(max), nil
	}
	if s.eof.Load() {
		return nil, io.EOF
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case chunk, ok := <-s.chunks:
		if !ok {
			return s.finish(), io.EOF
		}
		s.pending = append(s.pending, chunk...)
		return s.take(max), nil
	case <-timer.C:
		return nil, ErrTimeout
	}
}

func (s *Session) take(max int) []byte {
	n := len(s.pending)
	if n > max {
		n = max
	}
	out := make([]byte, n)
	copy(out, s.pending[:n])
	s.pending = s.pending[n:]
	return out
}

// finish marks the end of the stream, drains anything still queued and reaps
// the child so ExitCode is meaningful.
func (s *Session) finish() []byte {
	var rest []byte
	rest = append(rest, s.pending...)
	s.pending = nil
	for chunk := range s.chunks {
		rest = append(rest, chunk...)
	}
	s.wait()
	s.eof.Store(true)
	return rest
}

func (s *Session) wait() {
	s.waitOnce.Do(func() {
		err := s.cmd.Wait()
		if err == nil {
			s.exitCode = 0
			return
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			s.exitCode = exitErr.ExitCode()
		}
	})
}

// EOF reports whether the child has closed its terminal.
func (s *Session) EOF() bool {
	return s.eof.Load()
}

// ExitCode returns the child's exit status, or -1 while it is still running
// or when it was killed by a signal.
func (s *Session) ExitCode() int {
	if !s.eof.Load() {
		return -1
	}
	return s.exitCode
}

// Send writes text to the child's terminal input.
func (s *Session) Send(text string) error {
	if _, err := io.WriteString(s.ptmx, text); err != nil {
		return fmt.Errorf("write to pty: %w", err)
	}
	return nil
}

// SendLine writes text followed by a line feed.
func (s *Session) SendLine(text string) error {
	return s.Send(text + "\n")
}

// Close terminates the child if it is still running and releases the pty.
func (s *Session) Close() error {
	s.closeMu.Lock()
	defer s.closeMu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	running := !s.eof.Load()
	if running && s.cmd.Process != nil {
		_ = s.cmd.Process.Kill()
	}
	err := s.ptmx.Close()
	if running {
		go s.wait()
	}
	return err
}
