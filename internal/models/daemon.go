package models

import "time"

// DaemonInfo is the content of ~/.easysurf/daemon.yaml. Clients use it to find
// the bridge; the Polling section mirrors what the poller is currently doing.
type DaemonInfo struct {
	Version      int          `yaml:"version"`
	Host         string       `yaml:"host"`
	Port         int          `yaml:"port"`
	PID          int          `yaml:"pid"`
	StartedAt    time.Time    `yaml:"started_at"`
	SettingsFile string       `yaml:"settings_file,omitempty"`
	Polling      *PollingInfo `yaml:"polling,omitempty"`
}

// PollingInfo records the settings the poller last started with.
type PollingInfo struct {
	Latitude  float64   `yaml:"latitude"`
	Longitude float64   `yaml:"longitude"`
	Interval  int       `yaml:"interval"`
	APIURL    string    `yaml:"apiUrl"`
	Since     time.Time `yaml:"since"`
}

// NewDaemonInfo describes a daemon that has just bound its bridge.
func NewDaemonInfo(host string, port, pid int, settingsFile string) *DaemonInfo {
	return &DaemonInfo{
		Version:      2,
		Host:         host,
		Port:         port,
		PID:          pid,
		StartedAt:    time.Now().UTC(),
		SettingsFile: settingsFile,
	}
}

// NewPollingInfo captures the settings a poller was started with.
func NewPollingInfo(s Settings, since time.Time) *PollingInfo {
	return &PollingInfo{
		Latitude:  s.Latitude,
		Longitude: s.Longitude,
		Interval:  s.Interval,
		APIURL:    s.APIURL,
		Since:     since.UTC(),
	}
}
