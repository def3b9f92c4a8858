package pidfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"
)

// ErrAlreadyRunning is returned by Acquire when a live daemon owns the file
var ErrAlreadyRunning = errors.New("daemon is already running")

// PIDFile guards a single voyage-daemon instance per pid path
type PIDFile struct {
	path string
	pid  int
}

// New creates a PIDFile for path
func New(path string) *PIDFile {
	return &PIDFile{path: path}
}

// Path returns the file location
func (p *PIDFile) Path() string {
	return p.path
}

// Acquire writes the current process ID, replacing a stale or unreadable file.
// It fails with ErrAlreadyRunning when the recorded process is still alive.
func (p *PIDFile) Acquire() error {
	if pid, err := Read(p.path); err == nil {
		if pid != os.Getpid() && Running(pid) {
			return fmt.Errorf("%w (PID %d)", ErrAlreadyRunning, pid)
		}
		_ = os.Remove(p.path)
	} else if !errors.Is(err, os.ErrNotExist) {
		_ = os.Remove(p.path)
	}

	if err := os.MkdirAll(filepath.Dir(p.path), 0o755); err != nil {
		return fmt.Errorf("failed to create PID file directory: %w", err)
	}

	pid := os.Getpid()
	if err := os.WriteFile(p.path, []byte(strconv.Itoa(pid)+"\n"), 0o644); err != nil {
		return fmt.Errorf("failed to write PID file: %w", err)
	}
	p.pid = pid
	return nil
}

// Release removes the file if this process still owns it
func (p *PIDFile) Release() error {
	if p.pid == 0 {
		return nil
	}
	if pid, err := Read(p.path); err == nil && pid != p.pid {
		return nil
	}
	if err := os.Remove(p.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove PID file: %w", err)
	}
	p.pid = 0
	return nil
}

// KillExisting terminates the daemon recorded in the file and waits for it to
// exit. SIGKILL follows if it is still alive after timeout.
func (p *PIDFile) KillExisting(timeout time.Duration) error {
	pid, err := Read(p.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		_ = os.Remove(p.path)
		return nil
	}
	if pid == os.Getpid() || !Running(pid) {
		_ = os.Remove(p.path)
		return nil
	}

	process, err := os.FindProcess(pid)
	if err != nil {
		return fmt.Errorf("failed to find process %d: %w", pid, err)
	}
	if err := process.Signal(syscall.SIGTERM); err != nil && !errors.Is(err, os.ErrProcessDone) {
		return fmt.Errorf("failed to signal process %d: %w", pid, err)
	}

	deadline := time.Now().Add(timeout)
	for Running(pid) {
		if time.Now().After(deadline) {
			if err := process.Signal(syscall.SIGKILL); err != nil && !errors.Is(err, os.ErrProcessDone) {
				return fmt.Errorf("failed to kill process %d: %w", pid, err)
			}
			break
		}
		time.Sleep(100 * time.Millisecond)
	}

	_ = os.Remove(p.path)
	return nil
}

// Read returns the process ID recorded at path
func Read(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || pid <= 0 {
		return 0, fmt.Errorf("invalid PID file %s: %q", path, strings.TrimSpace(string(data)))
	}
	return pid, nil
}

// Running reports whether a process with pid exists.
// Signal 0 performs the existence and permission checks without delivering anything.
func Running(pid int) bool {
	if pid <= 0 {
		return false
	}
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}

	err = process.Signal(syscall.Signal(0))
	switch {
	case err == nil:
		return true
	case errors.Is(err, syscall.EPERM):
		return true
	default:
		return false
	}
}
