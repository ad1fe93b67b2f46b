package config

import (
	"log"
	"sync"

	"github.com/easysurf/easysurf/internal/models"
)

// settingsFile mirrors settings.yaml. Pointers distinguish a missing key from
// a zero value so missing keys can fall back to defaults.
type settingsFile struct {
	Latitude  *float64 `yaml:"latitude,omitempty"`
	Longitude *float64 `yaml:"longitude,omitempty"`
	Interval  *float64 `yaml:"interval,omitempty"`
	APIURL    *string  `yaml:"apiUrl,omitempty"`
}

// SettingsStore persists the monitor settings. Writes are validated; a
// rejected write leaves the file untouched.
type SettingsStore struct {
	mu   sync.Mutex
	path string
}

// NewSettingsStore creates a store backed by the YAML file at path.
func NewSettingsStore(path string) *SettingsStore {
	return &SettingsStore{path: path}
}

// OpenSettingsStore creates a store for ~/.easysurf/settings.yaml.
func OpenSettingsStore() (*SettingsStore, error) {
	path, err := GlobalSettingsFile()
	if err != nil {
		return nil, err
	}
	return NewSettingsStore(path), nil
}

// Path returns the backing file path.
func (s *SettingsStore) Path() string {
	return s.path
}

// Read returns the persisted settings merged with defaults. It never fails:
// unreadable files and individually invalid values fall back to defaults.
func (s *SettingsStore) Read() models.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings := *models.NewSettings()
	if !FileExists(s.path) {
		return settings
	}

	var file settingsFile
	if err := LoadYAML(s.path, &file); err != nil {
		log.Printf("[settings] Using defaults: %v", err)
		return settings
	}

	if file.Latitude != nil {
		if m := checkRange("Latitude", *file.Latitude, MinLatitude, MaxLatitude); m == "" {
			settings.Latitude = *file.Latitude
		} else {
			log.Printf("[settings] Ignoring stored latitude: %s", m)
		}
	}
	if file.Longitude != nil {
		if m := checkRange("Longitude", *file.Longitude, MinLongitude, MaxLongitude); m == "" {
			settings.Longitude = *file.Longitude
		} else {
			log.Printf("[settings] Ignoring stored longitude: %s", m)
		}
	}
	if file.Interval != nil {
		if m := checkInterval(*file.Interval); m == "" {
			settings.Interval = int(*file.Interval)
		} else {
			log.Printf("[settings] Ignoring stored interval: %s", m)
		}
	}
	if file.APIURL != nil {
		if m := checkAPIURL(*file.APIURL); m == "" {
			settings.APIURL = *file.APIURL
		} else {
			log.Printf("[settings] Ignoring stored apiUrl: %s", m)
		}
	}

	return settings
}

// Write validates the candidate and persists it. On any violation it returns
// a *ValidationError listing every message and persists nothing.
func (s *SettingsStore) Write(c Candidate) error {
	if verr := Validate(c); verr != nil {
		return verr
	}

	settings := c.Settings()
	interval := float64(settings.Interval)
	file := settingsFile{
		Latitude:  &settings.Latitude,
		Longitude: &settings.Longitude,
		Interval:  &interval,
		APIURL:    &settings.APIURL,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return SaveYAML(s.path, &file)
}
