package pidfile

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquire_WritesCurrentPID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run", "daemon.pid")
	p := New(path)

	require.NoError(t, p.Acquire())

	pid, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, os.Getpid(), pid)
}

func TestAcquire_ReplacesStaleFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "daemon.pid")
	require.NoError(t, os.WriteFile(path, []byte("not-a-pid\n"), 0o644))

	require.NoError(t, New(path).Acquire())

	pid, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, os.Getpid(), pid)
}

func TestAcquire_FailsWhenOwnerAlive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "daemon.pid")
	// PID 1 always exists on a unix host
	require.NoError(t, os.WriteFile(path, []byte("1\n"), 0o644))

	err := New(path).Acquire()

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAlreadyRunning)
}

func TestRelease_RemovesOwnedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "daemon.pid")
	p := New(path)
	require.NoError(t, p.Acquire())

	require.NoError(t, p.Release())

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestRelease_LeavesForeignFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "daemon.pid")
	p := New(path)
	require.NoError(t, p.Acquire())
	require.NoError(t, os.WriteFile(path, []byte("1\n"), 0o644))

	require.NoError(t, p.Release())

	pid, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, 1, pid)
}

func TestRunning(t *testing.T) {
	assert.True(t, Running(os.Getpid()))
	assert.False(t, Running(0))
	assert.False(t, Running(-4))
}

func TestKillExisting_NoFileIsNoOp(t *testing.T) {
	path := filepath.Join(t.TempDir(), "daemon.pid")

	assert.NoError(t, New(path).KillExisting(time.Second))
}

func TestKillExisting_RemovesFileOfDeadProcess(t *testing.T) {
	path := filepath.Join(t.TempDir(), "daemon.pid")
	// Larger than any pid_max the kernel allows
	require.NoError(t, os.WriteFile(path, []byte("99999999\n"), 0o644))

	require.NoError(t, New(path).KillExisting(time.Second))

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}
