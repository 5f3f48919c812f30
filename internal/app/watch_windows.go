//go:build windows

package app

import (
	"fmt"
	"io"
	"os"
)

var shutdownSignals = []os.Signal{os.Interrupt}

// stopDaemon terminates the PID recorded by `watch --daemon`. Windows has no
// SIGTERM, so the process is killed outright.
func stopDaemon(w io.Writer) error {
	pid, err := readPID()
	if err != nil {
		return fmt.Errorf("%w: %v", errNoDaemon, err)
	}
	proc, err := os.FindProcess(pid)
	if err != nil || !processExists(pid) {
		_ = os.Remove(pidFilePath())
		return fmt.Errorf("%w: removed stale PID file for %d", errNoDaemon, pid)
	}
	if err := proc.Kill(); err != nil {
		return fmt.Errorf("stopping watch daemon %d: %w", pid, err)
	}
	_ = os.Remove(pidFilePath())
	fmt.Fprintf(w, "Stopped watch daemon (PID %d)\n", pid)
	return nil
}

// processExists reports whether pid accepts a null signal.
func processExists(pid int) bool {
	proc, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	return proc.Signal(os.Signal(nil)) == nil
}
