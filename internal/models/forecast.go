package models

// ForecastEntry is one server-provided record of surf conditions.
type ForecastEntry struct {
	SurfLevel      string  `json:"surf_level"`
	WaveHeight     float64 `json:"wave_height"`
	PeakWavePeriod float64 `json:"peak_wave_period"`
	Time           string  `json:"time"`
}

// ForecastResponse is the body returned by GET {apiUrl}/swell.
type ForecastResponse struct {
	Forecast []ForecastEntry `json:"forecast"`
}

// Current returns the entry the monitor displays, or nil for an empty forecast.
func (r *ForecastResponse) Current() *ForecastEntry {
	if r == nil || len(r.Forecast) == 0 {
		return nil
	}
	return &r.Forecast[0]
}
