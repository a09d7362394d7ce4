package pidfile

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquireWritesCurrentPID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tmbuild.pid")
	p := New(path)

	require.NoError(t, p.Acquire())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	pid, err := strconv.Atoi(string(data[:len(data)-1]))
	require.NoError(t, err)
	assert.Equal(t, os.Getpid(), pid)
}

func TestAcquireFailsWhenAnotherInstanceHoldsIt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tmbuild.pid")
	require.NoError(t, os.WriteFile(path, []byte(strconv.Itoa(os.Getpid())+"\n"), 0o644))

	p := New(path)
	err := p.Acquire()
	require.Error(t, err, "acquiring over a live PID must fail")
}

func TestAcquireReplacesStalePIDFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tmbuild.pid")
	// PID 999999 is extremely unlikely to be a running process.
	require.NoError(t, os.WriteFile(path, []byte("999999\n"), 0o644))

	p := New(path)
	require.NoError(t, p.Acquire())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, strconv.Itoa(os.Getpid())+"\n", string(data))
}

func TestAcquireReplacesMalformedPIDFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tmbuild.pid")
	require.NoError(t, os.WriteFile(path, []byte("not-a-pid\n"), 0o644))

	p := New(path)
	require.NoError(t, p.Acquire())
}

func TestReleaseRemovesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tmbuild.pid")
	p := New(path)
	require.NoError(t, p.Acquire())
	require.NoError(t, p.Release())

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestReleaseIsIdempotentWhenMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tmbuild.pid")
	p := New(path)
	require.NoError(t, p.Release())
}
