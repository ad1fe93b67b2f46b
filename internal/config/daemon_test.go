package config

import (
	"os"
	"testing"

	"github.com/easysurf/easysurf/internal/models"
)

func TestDaemonInfoLifecycle(t *testing.T) {
	t.Setenv(HomeEnv, t.TempDir())

	info, err := LoadDaemonInfo()
	if err != nil || info != nil {
		t.Fatalf("LoadDaemonInfo() = %v, %v; want nil, nil", info, err)
	}

	if err := SaveDaemonInfo(models.NewDaemonInfo("127.0.0.1", 4242, os.Getpid(), "/tmp/settings.yaml")); err != nil {
		t.Fatalf("SaveDaemonInfo() error = %v", err)
	}

	running, info, err := IsDaemonRunning()
	if err != nil {
		t.Fatal(err)
	}
	if !running || info.Port != 4242 || info.SettingsFile != "/tmp/settings.yaml" {
		t.Errorf("IsDaemonRunning() = %v, %+v", running, info)
	}

	if err := RemoveDaemonInfo(); err != nil {
		t.Fatal(err)
	}
	running, _, _ = IsDaemonRunning()
	if running {
		t.Error("daemon still reported running after RemoveDaemonInfo")
	}
}

func TestRecordPolling(t *testing.T) {
	s := models.Settings{Latitude: -8.7, Longitude: 115.2, Interval: 15, APIURL: "http://forecast.local"}

	t.Run("no daemon file", func(t *testing.T) {
		t.Setenv(HomeEnv, t.TempDir())
		if err := RecordPolling(s); err != nil {
			t.Fatalf("RecordPolling() error = %v", err)
		}
		if info, _ := LoadDaemonInfo(); info != nil {
			t.Errorf("RecordPolling() created daemon.yaml: %+v", info)
		}
	})

	t.Run("owned by this process", func(t *testing.T) {
		t.Setenv(HomeEnv, t.TempDir())
		if err := SaveDaemonInfo(models.NewDaemonInfo("127.0.0.1", 4242, os.Getpid(), "")); err != nil {
			t.Fatal(err)
		}
		if err := RecordPolling(s); err != nil {
			t.Fatalf("RecordPolling() error = %v", err)
		}

		info, err := LoadDaemonInfo()
		if err != nil {
			t.Fatal(err)
		}
		p := info.Polling
		if p == nil || p.Interval != 15 || p.APIURL != "http://forecast.local" || p.Latitude != -8.7 || p.Longitude != 115.2 {
			t.Errorf("Polling = %+v", p)
		}
		if info.Port != 4242 {
			t.Errorf("Port = %d, connection info was not preserved", info.Port)
		}
	})

	t.Run("owned by another process", func(t *testing.T) {
		t.Setenv(HomeEnv, t.TempDir())
		if err := SaveDaemonInfo(models.NewDaemonInfo("127.0.0.1", 4242, os.Getpid()+1, "")); err != nil {
			t.Fatal(err)
		}
		if err := RecordPolling(s); err != nil {
			t.Fatalf("RecordPolling() error = %v", err)
		}
		info, _ := LoadDaemonInfo()
		if info.Polling != nil {
			t.Errorf("Polling = %+v, want untouched", info.Polling)
		}
	})
}
