package cli

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"time"

	"github.com/easysurf/easysurf/internal/config"
	"github.com/easysurf/easysurf/internal/models"
)

// EnsureDaemon makes sure the daemon is running, starting it if necessary.
func EnsureDaemon() error {
	running, info, err := config.IsDaemonRunning()
	if err != nil {
		return fmt.Errorf("failed to check daemon status: %w", err)
	}

	if running {
		return nil
	}

	// Clean up stale daemon info if it exists
	if info != nil {
		_ = config.RemoveDaemonInfo()
	}

	// Start daemon in background
	return startDaemon()
}

// startDaemon starts the daemon process in the background.
func startDaemon() error {
	// Find the daemon binary
	daemonPath, err := findDaemonBinary()
	if err != nil {
		return err
	}

	// Start daemon in background
	cmd := exec.Command(daemonPath)
	cmd.Stdout = nil
	cmd.Stderr = nil
	cmd.Stdin = nil

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start daemon: %w", err)
	}

	// Wait for daemon to be ready (max 5 seconds)
	for i := 0; i < 50; i++ {
		time.Sleep(100 * time.Millisecond)
		running, _, err := config.IsDaemonRunning()
		if err == nil && running {
			return nil
		}
	}

	return fmt.Errorf("daemon failed to start within timeout")
}

// daemonName is the daemon binary name.
const daemonName = "easysurfd"

// findDaemonBinary locates the easysurfd binary.
func findDaemonBinary() (string, error) {
	name := daemonName
	if runtime.GOOS == "windows" {
		name += ".exe"
	}

	// Try next to the current executable first
	execPath, err := os.Executable()
	if err == nil {
		daemonPath := filepath.Join(filepath.Dir(execPath), name)
		if _, err := os.Stat(daemonPath); err == nil {
			return daemonPath, nil
		}
	}

	// Then PATH
	if path, err := exec.LookPath(daemonName); err == nil {
		return path, nil
	}

	// Try build directory
	if _, err := os.Stat(filepath.Join("build", name)); err == nil {
		return filepath.Join("build", name), nil
	}

	return "", fmt.Errorf("%s not found. Install or build it first", daemonName)
}

// GetDaemonStatus returns the daemon status.
func GetDaemonStatus() (bool, *DaemonStatusInfo, error) {
	running, info, err := config.IsDaemonRunning()
	if err != nil {
		return false, nil, err
	}

	if !running || info == nil {
		return false, nil, nil
	}

	return true, &DaemonStatusInfo{
		Host:         info.Host,
		Port:         info.Port,
		PID:          info.PID,
		StartedAt:    info.StartedAt,
		SettingsFile: info.SettingsFile,
		Polling:      info.Polling,
	}, nil
}

// DaemonStatusInfo contains daemon status information.
type DaemonStatusInfo struct {
	Host         string
	Port         int
	PID          int
	StartedAt    time.Time
	SettingsFile string
	Polling      *models.PollingInfo
}
