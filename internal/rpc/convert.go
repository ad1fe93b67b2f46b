package rpc

import (
	"github.com/easysurf/easysurf/internal/config"
	"github.com/easysurf/easysurf/internal/models"
)

// SettingsFromModel converts stored settings to the wire form.
func SettingsFromModel(s models.Settings) *Settings {
	return &Settings{
		Latitude:  s.Latitude,
		Longitude: s.Longitude,
		Interval:  float64(s.Interval),
		APIURL:    s.APIURL,
	}
}

// Candidate converts a wire settings write for validation.
func (s *Settings) Candidate() config.Candidate {
	return config.Candidate{
		Latitude:  s.Latitude,
		Longitude: s.Longitude,
		Interval:  s.Interval,
		APIURL:    s.APIURL,
	}
}
