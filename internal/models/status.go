package models

import (
	"time"

	"github.com/easysurf/easysurf/internal/surf"
)

// StatusUpdate is produced by every successful, non-empty poll.
type StatusUpdate struct {
	Color      surf.Color
	Label      string
	Level      string
	WaveHeight float64
	Period     float64
	Time       string // forecast timestamp as sent by the server
	FetchedAt  time.Time
}

// NewStatusUpdate builds the update for a forecast entry.
func NewStatusUpdate(entry ForecastEntry, fetchedAt time.Time) StatusUpdate {
	color := surf.ColorForLevel(entry.SurfLevel)
	return StatusUpdate{
		Color:      color,
		Label:      surf.LabelForColor(color),
		Level:      entry.SurfLevel,
		WaveHeight: entry.WaveHeight,
		Period:     entry.PeakWavePeriod,
		Time:       entry.Time,
		FetchedAt:  fetchedAt,
	}
}
