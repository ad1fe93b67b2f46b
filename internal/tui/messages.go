package tui

import (
	"google.golang.org/grpc"

	"github.com/easysurf/easysurf/internal/rpc"
)

// DaemonConnectedMsg signals a successful gRPC connection.
type DaemonConnectedMsg struct {
	Conn *grpc.ClientConn
}

// SettingsLoadedMsg carries the persisted settings.
type SettingsLoadedMsg struct {
	Settings *rpc.Settings
}

// StatusLoadedMsg carries the current status from GetCurrentStatus or Refresh.
type StatusLoadedMsg struct {
	Status *rpc.CurrentStatus
}

// StatusUpdateMsg carries a pushed status update.
type StatusUpdateMsg struct {
	Update *rpc.StatusUpdate
}

// FocusMsg signals the tray asked this window to come forward.
type FocusMsg struct{}

// SavedMsg carries the outcome of SaveSettings.
type SavedMsg struct {
	Result *rpc.SaveSettingsResponse
}

// AlreadyOpenMsg signals another settings window is attached.
type AlreadyOpenMsg struct{}

// StreamEndedMsg signals the push stream closed.
type StreamEndedMsg struct {
	Err error
}

// ErrorMsg carries an error to display.
type ErrorMsg struct {
	Err error
}

// ClearSavedMsg clears the "Saved" indicator.
type ClearSavedMsg struct{}

// ClearFocusMsg ends the focus highlight.
type ClearFocusMsg struct{}
