package config

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/easysurf/easysurf/internal/models"
)

// Limits enforced on settings writes.
const (
	MinLatitude  = -90.0
	MaxLatitude  = 90.0
	MinLongitude = -180.0
	MaxLongitude = 180.0
	MinInterval  = 1
	MaxInterval  = 1440
)

// Candidate is a settings write as submitted by a client. Numbers are kept as
// float64 so NaN and fractional intervals can be rejected before conversion.
type Candidate struct {
	Latitude  float64
	Longitude float64
	Interval  float64
	APIURL    string
}

// CandidateFrom converts stored settings back into a candidate.
func CandidateFrom(s models.Settings) Candidate {
	return Candidate{
		Latitude:  s.Latitude,
		Longitude: s.Longitude,
		Interval:  float64(s.Interval),
		APIURL:    s.APIURL,
	}
}

// Settings converts a candidate that passed Validate.
func (c Candidate) Settings() models.Settings {
	return models.Settings{
		Latitude:  c.Latitude,
		Longitude: c.Longitude,
		Interval:  int(c.Interval),
		APIURL:    strings.TrimSpace(c.APIURL),
	}
}

// ValidationError lists every constraint a settings write violated.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, "; ")
}

// Validate checks all four fields independently and reports every violation.
// It returns nil when the candidate may be persisted.
func Validate(c Candidate) *ValidationError {
	var msgs []string

	if m := checkRange("Latitude", c.Latitude, MinLatitude, MaxLatitude); m != "" {
		msgs = append(msgs, m)
	}
	if m := checkRange("Longitude", c.Longitude, MinLongitude, MaxLongitude); m != "" {
		msgs = append(msgs, m)
	}
	if m := checkInterval(c.Interval); m != "" {
		msgs = append(msgs, m)
	}
	if m := checkAPIURL(c.APIURL); m != "" {
		msgs = append(msgs, m)
	}

	if len(msgs) == 0 {
		return nil
	}
	return &ValidationError{Messages: msgs}
}

func checkRange(field string, v, lo, hi float64) string {
	if math.IsNaN(v) {
		return field + " must be a number"
	}
	if v < lo || v > hi {
		return field + " must be between " + formatFloat(lo) + " and " + formatFloat(hi)
	}
	return ""
}

func checkInterval(v float64) string {
	if math.IsNaN(v) {
		return "Interval must be a number"
	}
	if v < MinInterval || v > MaxInterval {
		return "Interval must be between 1 and 1440 minutes"
	}
	if v != math.Trunc(v) {
		return "Interval must be a whole number of minutes"
	}
	return ""
}

func checkAPIURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "API URL is required"
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return "API URL must be a valid URL"
	}
	return ""
}

// ParseCandidate builds a candidate from form text. Unparseable numbers become
// NaN so Validate reports them alongside every other violation.
func ParseCandidate(lat, lon, interval, apiURL string) Candidate {
	return Candidate{
		Latitude:  parseNumber(lat),
		Longitude: parseNumber(lon),
		Interval:  parseNumber(interval),
		APIURL:    apiURL,
	}
}

func parseNumber(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
