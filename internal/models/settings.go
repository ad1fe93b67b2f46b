package models

// Default settings, used for any key missing from settings.yaml.
const (
	DefaultLatitude  = -23.5505
	DefaultLongitude = -46.6333
	DefaultInterval  = 30
	DefaultAPIURL    = "http://localhost:8080"
)

// Settings represents the monitor configuration.
// This corresponds to ~/.easysurf/settings.yaml.
type Settings struct {
	Latitude  float64 `yaml:"latitude" json:"latitude"`
	Longitude float64 `yaml:"longitude" json:"longitude"`
	Interval  int     `yaml:"interval" json:"interval"` // minutes
	APIURL    string  `yaml:"apiUrl" json:"apiUrl"`
}

// NewSettings creates settings with default values.
func NewSettings() *Settings {
	return &Settings{
		Latitude:  DefaultLatitude,
		Longitude: DefaultLongitude,
		Interval:  DefaultInterval,
		APIURL:    DefaultAPIURL,
	}
}
