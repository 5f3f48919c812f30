//go:build !windows

package app

import (
	"fmt"
	"io"
	"os"
	"syscall"
)

var shutdownSignals = []os.Signal{syscall.SIGINT, syscall.SIGTERM}

// stopDaemon sends SIGTERM to the PID recorded by `watch --daemon`.
// A PID file pointing at a dead process is removed.
func stopDaemon(w io.Writer) error {
	pid, err := readPID()
	if err != nil {
		return fmt.Errorf("%w: %v", errNoDaemon, err)
	}
	if !processExists(pid) {
		_ = os.Remove(pidFilePath())
		return fmt.Errorf("%w: removed stale PID file for %d", errNoDaemon, pid)
	}
	if err := syscall.Kill(pid, syscall.SIGTERM); err != nil {
		return fmt.Errorf("signalling watch daemon %d: %w", pid, err)
	}
	_ = os.Remove(pidFilePath())
	fmt.Fprintf(w, "Stopped watch daemon (PID %d)\n", pid)
	return nil
}

// processExists probes pid with signal 0.
func processExists(pid int) bool {
	return syscall.Kill(pid, 0) == nil
}
