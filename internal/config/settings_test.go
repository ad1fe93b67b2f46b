package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/easysurf/easysurf/internal/models"
)

func newTestStore(t *testing.T) *SettingsStore {
	t.Helper()
	return NewSettingsStore(filepath.Join(t.TempDir(), SettingsFileName))
}

func TestReadDefaultsWhenMissing(t *testing.T) {
	store := newTestStore(t)

	got := store.Read()
	if got != *models.NewSettings() {
		t.Errorf("Read() = %+v, want defaults", got)
	}
}

func TestReadMergesMissingKeys(t *testing.T) {
	store := newTestStore(t)
	if err := os.WriteFile(store.Path(), []byte("latitude: 12.5\napiUrl: http://surf.local\n"), 0644); err != nil {
		t.Fatal(err)
	}

	got := store.Read()
	want := models.Settings{
		Latitude:  12.5,
		Longitude: models.DefaultLongitude,
		Interval:  models.DefaultInterval,
		APIURL:    "http://surf.local",
	}
	if got != want {
		t.Errorf("Read() = %+v, want %+v", got, want)
	}
}

func TestReadIgnoresInvalidStoredValues(t *testing.T) {
	store := newTestStore(t)
	if err := os.WriteFile(store.Path(), []byte("latitude: 500\ninterval: 10\n"), 0644); err != nil {
		t.Fatal(err)
	}

	got := store.Read()
	if got.Latitude != models.DefaultLatitude {
		t.Errorf("Latitude = %v, want default", got.Latitude)
	}
	if got.Interval != 10 {
		t.Errorf("Interval = %d, want 10", got.Interval)
	}
}

func TestReadCorruptFileFallsBack(t *testing.T) {
	store := newTestStore(t)
	if err := os.WriteFile(store.Path(), []byte(":::not yaml"), 0644); err != nil {
		t.Fatal(err)
	}

	if got := store.Read(); got != *models.NewSettings() {
		t.Errorf("Read() = %+v, want defaults", got)
	}
}

func TestWriteThenRead(t *testing.T) {
	store := newTestStore(t)
	c := Candidate{Latitude: -8.05, Longitude: -34.9, Interval: 15, APIURL: " https://surf.example.com/api "}

	if err := store.Write(c); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	got := store.Read()
	want := models.Settings{Latitude: -8.05, Longitude: -34.9, Interval: 15, APIURL: "https://surf.example.com/api"}
	if got != want {
		t.Errorf("Read() = %+v, want %+v", got, want)
	}
}

func TestWriteRejectsAndKeepsPriorSettings(t *testing.T) {
	store := newTestStore(t)
	prior := Candidate{Latitude: 1, Longitude: 2, Interval: 3, APIURL: "http://prior"}
	if err := store.Write(prior); err != nil {
		t.Fatalf("Write(prior) error = %v", err)
	}

	bad := prior
	bad.Latitude = 91
	err := store.Write(bad)

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Write() error = %v, want *ValidationError", err)
	}
	if len(verr.Messages) != 1 || verr.Messages[0] != "Latitude must be between -90 and 90" {
		t.Errorf("Messages = %q", verr.Messages)
	}
	if got := store.Read(); got != prior.Settings() {
		t.Errorf("Read() after rejected write = %+v, want %+v", got, prior.Settings())
	}
}

func TestWriteReportsOnlyURLWhenOthersValid(t *testing.T) {
	store := newTestStore(t)

	err := store.Write(Candidate{Latitude: 10, Longitude: 20, Interval: 30, APIURL: "not a url"})

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Write() error = %v, want *ValidationError", err)
	}
	if len(verr.Messages) != 1 || verr.Messages[0] != "API URL must be a valid URL" {
		t.Errorf("Messages = %q, want only the URL message", verr.Messages)
	}
	if FileExists(store.Path()) {
		t.Error("rejected write created the settings file")
	}
}

func TestGlobalDirHonoursEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(HomeEnv, dir)

	got, err := GlobalSettingsFile()
	if err != nil {
		t.Fatal(err)
	}
	if got != filepath.Join(dir, SettingsFileName) {
		t.Errorf("GlobalSettingsFile() = %s", got)
	}
}
