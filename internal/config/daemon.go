package config

import (
	"fmt"
	"os"
	"syscall"
	"time"

	"github.com/easysurf/easysurf/internal/models"
)

// LoadDaemonInfo reads ~/.easysurf/daemon.yaml. It returns nil when no daemon
// has advertised itself.
func LoadDaemonInfo() (*models.DaemonInfo, error) {
	path, err := GlobalDaemonFile()
	if err != nil {
		return nil, err
	}
	if !FileExists(path) {
		return nil, nil
	}

	var info models.DaemonInfo
	if err := LoadYAML(path, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// SaveDaemonInfo advertises the running daemon in ~/.easysurf/daemon.yaml.
func SaveDaemonInfo(info *models.DaemonInfo) error {
	if err := EnsureGlobalDir(); err != nil {
		return err
	}
	path, err := GlobalDaemonFile()
	if err != nil {
		return err
	}
	return SaveYAML(path, info)
}

// RecordPolling stores the settings the poller just started with in
// daemon.yaml. Only the process that owns daemon.yaml updates it; for any
// other caller, or when no daemon is advertised, it does nothing.
func RecordPolling(s models.Settings) error {
	info, err := LoadDaemonInfo()
	if err != nil {
		return fmt.Errorf("failed to read daemon info: %w", err)
	}
	if info == nil || info.PID != os.Getpid() {
		return nil
	}
	info.Polling = models.NewPollingInfo(s, time.Now())
	return SaveDaemonInfo(info)
}

// RemoveDaemonInfo removes daemon.yaml.
func RemoveDaemonInfo() error {
	path, err := GlobalDaemonFile()
	if err != nil {
		return err
	}
	if !FileExists(path) {
		return nil
	}
	return os.Remove(path)
}

// IsDaemonRunning reports whether the daemon advertised in daemon.yaml is
// alive. A file left behind by a crashed daemon is removed.
func IsDaemonRunning() (bool, *models.DaemonInfo, error) {
	info, err := LoadDaemonInfo()
	if err != nil {
		return false, nil, err
	}
	if info == nil {
		return false, nil, nil
	}

	process, err := os.FindProcess(info.PID)
	if err != nil {
		return false, info, nil
	}
	// Signal 0 probes the process without affecting it
	if err := process.Signal(syscall.Signal(0)); err != nil {
		_ = RemoveDaemonInfo()
		return false, info, nil
	}
	return true, info, nil
}
