package tray

import (
	"log"
	"sync"

	"github.com/getlantern/systray"

	"github.com/easysurf/easysurf/internal/daemon/presenter"
	"github.com/easysurf/easysurf/internal/surf"
)

var (
	actions Actions
	onStart func()
	onExit  func()

	menuMu       sync.Mutex
	headerItem   *systray.MenuItem
	settingsItem *systray.MenuItem
	refreshItem  *systray.MenuItem
	quitItem     *systray.MenuItem
)

// Run starts the system tray. This blocks the calling goroutine (must be main).
// onStartFn is called once the menu exists (start the poller and server here).
// onExitFn is called when the tray exits (cleanup here).
func Run(a Actions, onStartFn, onExitFn func()) {
	actions = a
	onStart = onStartFn
	onExit = onExitFn
	systray.Run(onReady, onQuit)
}

// Quit signals the tray to exit.
func Quit() {
	systray.Quit()
}

func onReady() {
	systray.SetTitle(surf.Emoji(surf.Gray))
	systray.SetTooltip(surf.Tooltip(surf.Gray))

	menuMu.Lock()
	headerItem = systray.AddMenuItem(presenter.HeaderTitle(surf.Gray), "")
	headerItem.Disable()

	systray.AddSeparator()

	settingsItem = systray.AddMenuItem("Settings", "Configure location, interval and API URL")
	refreshItem = systray.AddMenuItem("Refresh Now", "Fetch the forecast now")

	systray.AddSeparator()

	quitItem = systray.AddMenuItem("Quit", "Quit easysurf")
	menuMu.Unlock()

	if onStart != nil {
		onStart()
	}

	go handleClicks()
}

func onQuit() {
	if onExit != nil {
		onExit()
	}
}

func handleClicks() {
	for {
		select {
		case <-settingsItem.ClickedCh:
			log.Println("[tray] Settings clicked")
			go actions.OpenSettings()

		case <-refreshItem.ClickedCh:
			log.Println("[tray] Refresh Now clicked")
			go actions.Refresh()

		case <-quitItem.ClickedCh:
			log.Println("[tray] Quit clicked")
			actions.Quit()
			return
		}
	}
}

// Surface draws on the system tray. It satisfies presenter.Surface.
type Surface struct{}

// SetIcon sets the tray icon.
func (Surface) SetIcon(icon []byte) {
	systray.SetIcon(icon)
}

// SetTitle sets the text shown next to the icon.
func (Surface) SetTitle(title string) {
	systray.SetTitle(title)
}

// SetTooltip sets the hover text.
func (Surface) SetTooltip(tooltip string) {
	systray.SetTooltip(tooltip)
}

// SetHeader updates the disabled header item.
func (Surface) SetHeader(title string) {
	menuMu.Lock()
	defer menuMu.Unlock()
	if headerItem != nil {
		headerItem.SetTitle(title)
	}
}
