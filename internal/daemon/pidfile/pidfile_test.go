package pidfile

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/hooktools/core/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquireAndRelease(t *testing.T) {
	path := filepath.Join(t.TempDir(), "daemon.pid")

	require.NoError(t, Acquire(path))

	pid, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, os.Getpid(), pid)

	running, pid, err := IsRunning(path)
	require.NoError(t, err)
	assert.True(t, running)
	assert.Equal(t, os.Getpid(), pid)

	require.NoError(t, Release(path))
	_, err = Read(path)
	assert.True(t, os.IsNotExist(err))
}

func TestAcquireRejectsLiveProcess(t *testing.T) {
	path := filepath.Join(t.TempDir(), "daemon.pid")
	require.NoError(t, os.WriteFile(path, []byte(strconv.Itoa(os.Getpid())), 0644))

	err := Acquire(path)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeDaemonAlreadyRunning, errors.GetCode(err))
}

func TestAcquireReplacesStalePidfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "daemon.pid")
	// PID values this large are rejected by the kernel, so the entry is stale
	require.NoError(t, os.WriteFile(path, []byte("99999999"), 0644))

	require.NoError(t, Acquire(path))

	pid, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, os.Getpid(), pid)
}

func TestAcquireIgnoresGarbagePidfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "daemon.pid")
	require.NoError(t, os.WriteFile(path, []byte("not a pid"), 0644))

	require.NoError(t, Acquire(path))
}

func TestIsRunningWithoutPidfile(t *testing.T) {
	running, pid, err := IsRunning(filepath.Join(t.TempDir(), "daemon.pid"))
	require.NoError(t, err)
	assert.False(t, running)
	assert.Zero(t, pid)
}
