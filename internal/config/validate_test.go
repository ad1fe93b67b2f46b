package config

import (
	"math"
	"reflect"
	"testing"
)

func validCandidate() Candidate {
	return Candidate{Latitude: 10, Longitude: 20, Interval: 30, APIURL: "http://localhost:8080"}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Candidate)
		want   []string
	}{
		{
			name:   "valid",
			mutate: func(c *Candidate) {},
			want:   nil,
		},
		{
			name:   "boundaries are inclusive",
			mutate: func(c *Candidate) { c.Latitude, c.Longitude, c.Interval = -90, 180, 1440 },
			want:   nil,
		},
		{
			name:   "latitude out of range",
			mutate: func(c *Candidate) { c.Latitude = 91 },
			want:   []string{"Latitude must be between -90 and 90"},
		},
		{
			name:   "longitude out of range",
			mutate: func(c *Candidate) { c.Longitude = -180.5 },
			want:   []string{"Longitude must be between -180 and 180"},
		},
		{
			name:   "latitude NaN",
			mutate: func(c *Candidate) { c.Latitude = math.NaN() },
			want:   []string{"Latitude must be a number"},
		},
		{
			name:   "interval zero",
			mutate: func(c *Candidate) { c.Interval = 0 },
			want:   []string{"Interval must be between 1 and 1440 minutes"},
		},
		{
			name:   "interval fractional",
			mutate: func(c *Candidate) { c.Interval = 2.5 },
			want:   []string{"Interval must be a whole number of minutes"},
		},
		{
			name:   "interval NaN",
			mutate: func(c *Candidate) { c.Interval = math.NaN() },
			want:   []string{"Interval must be a number"},
		},
		{
			name:   "url not a url",
			mutate: func(c *Candidate) { c.APIURL = "not a url" },
			want:   []string{"API URL must be a valid URL"},
		},
		{
			name:   "url without scheme",
			mutate: func(c *Candidate) { c.APIURL = "localhost:8080" },
			want:   []string{"API URL must be a valid URL"},
		},
		{
			name:   "url empty",
			mutate: func(c *Candidate) { c.APIURL = "   " },
			want:   []string{"API URL is required"},
		},
		{
			name: "every violation is collected",
			mutate: func(c *Candidate) {
				c.Latitude, c.Longitude, c.Interval, c.APIURL = 100, 200, 5000, ""
			},
			want: []string{
				"Latitude must be between -90 and 90",
				"Longitude must be between -180 and 180",
				"Interval must be between 1 and 1440 minutes",
				"API URL is required",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validCandidate()
			tt.mutate(&c)
			err := Validate(c)
			if tt.want == nil {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() = nil, want %v", tt.want)
			}
			if !reflect.DeepEqual(err.Messages, tt.want) {
				t.Errorf("Validate() messages = %q, want %q", err.Messages, tt.want)
			}
		})
	}
}

func TestParseCandidate(t *testing.T) {
	c := ParseCandidate(" -23.55 ", "abc", "15", "http://x")
	if c.Latitude != -23.55 {
		t.Errorf("Latitude = %v, want -23.55", c.Latitude)
	}
	if !math.IsNaN(c.Longitude) {
		t.Errorf("Longitude = %v, want NaN", c.Longitude)
	}
	err := Validate(c)
	if err == nil || len(err.Messages) != 1 || err.Messages[0] != "Longitude must be a number" {
		t.Errorf("Validate() = %v, want only the longitude message", err)
	}
}
