//go:build integration && !windows

package rod_test

import (
	"syscall"
	"testing"
	"time"

	"github.com/fwojciec/webseed/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// processAlive probes a PID with signal 0, which tests existence
// without delivering anything. os.FindProcess always succeeds on Unix,
// so it cannot be used for this.
func processAlive(pid int) bool {
	return syscall.Kill(pid, syscall.Signal(0)) == nil
}

func TestFetcher_Close_ReapsLauncher(t *testing.T) {
	t.Parallel()

	fetcher, err := rod.NewFetcher()
	require.NoError(t, err)

	pid := fetcher.LauncherPID()
	require.NotZero(t, pid)
	require.True(t, processAlive(pid), "launcher should be running before Close")

	require.NoError(t, fetcher.Close())

	// The kill is asynchronous from the OS's point of view.
	time.Sleep(100 * time.Millisecond)

	assert.False(t, processAlive(pid), "launcher should be gone after Close")
}
