// Package tray implements the system tray icon and menu for the daemon.
package tray

// Actions are the handlers behind the tray menu items.
type Actions interface {
	OpenSettings()
	Refresh()
	Quit()
}
