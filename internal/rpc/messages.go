// Package rpc defines the gRPC bridge between the daemon and its clients:
// the settings window and the CLI.
package rpc

import (
	"google.golang.org/protobuf/types/known/timestamppb"
)

// RequestMeta contains metadata about the client making a request.
type RequestMeta struct {
	Origin   string `json:"origin"` // "window" | "cli"
	ClientID string `json:"client_id"`
	Version  string `json:"version"`
}

// Settings carries the four monitor settings.
type Settings struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Interval  float64 `json:"interval"` // minutes
	APIURL    string  `json:"api_url"`
}

// SaveSettingsRequest submits a settings write.
type SaveSettingsRequest struct {
	Meta     *RequestMeta `json:"meta,omitempty"`
	Settings *Settings    `json:"settings"`
}

// SaveSettingsResponse reports the outcome of a settings write.
type SaveSettingsResponse struct {
	Success bool     `json:"success"`
	Error   string   `json:"error,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

// StatusUpdate describes the latest successful poll.
type StatusUpdate struct {
	Color      string                 `json:"color"`
	Label      string                 `json:"label"`
	Level      string                 `json:"level"`
	WaveHeight float64                `json:"wave_height"`
	Period     float64                `json:"period"`
	Time       string                 `json:"time"`
	FetchedAt  *timestamppb.Timestamp `json:"fetched_at,omitempty"`
}

// CurrentStatus is the answer to GetCurrentStatus and Refresh.
type CurrentStatus struct {
	Color      string        `json:"color"`
	Label      string        `json:"label"`
	LastUpdate *StatusUpdate `json:"last_update,omitempty"`
	Error      string        `json:"error,omitempty"` // set by Refresh when the fetch failed
}

// SubscribeRequest attaches a settings window to the push channel.
type SubscribeRequest struct {
	Meta *RequestMeta `json:"meta"`
}

// Event kinds carried by StatusEvent.
const (
	EventStatus = "status"
	EventFocus  = "focus"
)

// StatusEvent is pushed to the attached settings window.
type StatusEvent struct {
	Kind   string        `json:"kind"`
	Update *StatusUpdate `json:"update,omitempty"`
}

// DaemonStatus describes the running daemon.
type DaemonStatus struct {
	Host       string                 `json:"host"`
	Port       int32                  `json:"port"`
	Pid        int32                  `json:"pid"`
	StartedAt  *timestamppb.Timestamp `json:"started_at"`
	PollerMode string                 `json:"poller_mode"`
	Interval   int32                  `json:"interval"` // minutes
	WindowOpen bool                   `json:"window_open"`
}
