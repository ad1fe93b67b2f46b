package forecast

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/easysurf/easysurf/internal/models"
)

func TestSwellURL(t *testing.T) {
	tests := []struct {
		name   string
		apiURL string
		lat    float64
		lon    float64
		want   string
	}{
		{"defaults", "http://localhost:8080", -23.5505, -46.6333, "http://localhost:8080/swell?lat=-23.5505&lon=-46.6333"},
		{"trailing slash", "http://localhost:8080/", 1, 2, "http://localhost:8080/swell?lat=1&lon=2"},
		{"base path", "https://surf.example.com/api/v1", 0.5, -0.25, "https://surf.example.com/api/v1/swell?lat=0.5&lon=-0.25"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SwellURL(tt.apiURL, tt.lat, tt.lon)
			if err != nil {
				t.Fatalf("SwellURL() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("SwellURL() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestFetchSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/swell" {
			t.Errorf("path = %s, want /swell", r.URL.Path)
		}
		if r.URL.Query().Get("lat") != "-23.55" || r.URL.Query().Get("lon") != "-46.63" {
			t.Errorf("query = %s", r.URL.RawQuery)
		}
		if r.Header.Get("User-Agent") == "" {
			t.Error("User-Agent header not set")
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"forecast":[{"surf_level":"advanced","wave_height":2.1,"peak_wave_period":9,"time":"T"},{"surf_level":"beginner"}]}`))
	}))
	defer server.Close()

	client := NewClient()
	resp, err := client.Fetch(context.Background(), models.Settings{Latitude: -23.55, Longitude: -46.63, APIURL: server.URL})
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	cur := resp.Current()
	if cur == nil {
		t.Fatal("Current() = nil")
	}
	want := models.ForecastEntry{SurfLevel: "advanced", WaveHeight: 2.1, PeakWavePeriod: 9, Time: "T"}
	if *cur != want {
		t.Errorf("Current() = %+v, want %+v", *cur, want)
	}
}

func TestFetchFailures(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantStatus int
	}{
		{"server error", http.StatusInternalServerError, `oops`, http.StatusInternalServerError},
		{"not found", http.StatusNotFound, ``, http.StatusNotFound},
		{"malformed json", http.StatusOK, `{"forecast":[`, 0},
		{"wrong shape", http.StatusOK, `{"forecast":"soon"}`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := NewClient().Fetch(context.Background(), models.Settings{APIURL: server.URL})

			var ferr *FetchError
			if !errors.As(err, &ferr) {
				t.Fatalf("Fetch() error = %v, want *FetchError", err)
			}
			if ferr.StatusCode != tt.wantStatus {
				t.Errorf("StatusCode = %d, want %d", ferr.StatusCode, tt.wantStatus)
			}
		})
	}
}

func TestFetchTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := NewClient().Fetch(context.Background(), models.Settings{APIURL: url})

	var ferr *FetchError
	if !errors.As(err, &ferr) {
		t.Fatalf("Fetch() error = %v, want *FetchError", err)
	}
	if ferr.StatusCode != 0 || ferr.Err == nil {
		t.Errorf("FetchError = %+v, want a transport cause", ferr)
	}
}

func TestEmptyForecastHasNoCurrent(t *testing.T) {
	if (&models.ForecastResponse{}).Current() != nil {
		t.Error("Current() of empty forecast should be nil")
	}
}
