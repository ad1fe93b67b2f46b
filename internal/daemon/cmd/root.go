// Package cmd implements the easysurfd command line.
package cmd

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/easysurf/easysurf/internal/config"
	"github.com/easysurf/easysurf/internal/daemon"
	"github.com/easysurf/easysurf/internal/daemon/server"
	"github.com/easysurf/easysurf/internal/daemon/tray"
	"github.com/easysurf/easysurf/internal/models"
)

var (
	foreground bool
	port       int
)

var rootCmd = &cobra.Command{
	Use:   "easysurfd",
	Short: "Surf conditions in your menu bar",
	Long: `easysurfd polls a surf-forecast service and shows the current
conditions as a colored icon in the system tray.`,
	SilenceUsage: true,
	RunE:         runDaemon,
}

// Execute runs the daemon command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.Flags().BoolVar(&foreground, "foreground", false, "Run in foreground without a system tray")
	rootCmd.Flags().IntVar(&port, "port", 0, "Port to listen on (0 for dynamic allocation)")
}

func runDaemon(cmd *cobra.Command, args []string) error {
	log.SetPrefix("[easysurfd] ")
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	if err := config.EnsureGlobalDir(); err != nil {
		return fmt.Errorf("failed to create global directory: %w", err)
	}

	running, info, err := config.IsDaemonRunning()
	if err != nil {
		return fmt.Errorf("failed to check daemon status: %w", err)
	}
	if running {
		return fmt.Errorf("daemon already running on port %d (PID %d)", info.Port, info.PID)
	}

	if foreground {
		log.Println("Running in foreground mode (no system tray)")
		return runForeground()
	}
	log.Println("Running in background mode (with system tray)")
	return runWithTray()
}

// runForeground runs the daemon without a system tray, blocking on signals.
func runForeground() error {
	quitCh := make(chan struct{})
	var quitOnce sync.Once

	d, err := daemon.New(daemon.Options{
		Port:          port,
		OnQuit:        func() { quitOnce.Do(func() { close(quitCh) }) },
		OnPollerStart: recordPolling,
	})
	if err != nil {
		return err
	}

	if err := writeDaemonInfo(d); err != nil {
		d.Stop()
		return err
	}
	d.Start()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Printf("Received signal %v, shutting down...", sig)
		d.Quit()
	case <-quitCh:
	case err := <-d.ServeErr():
		log.Printf("Server error: %v", err)
		d.Quit()
	}

	shutdown(d)
	return nil
}

// runWithTray runs the daemon with a system tray icon on the main goroutine.
// systray.Run must occupy the main goroutine on macOS (Cocoa requirement).
func runWithTray() error {
	d, err := daemon.New(daemon.Options{
		Port:          port,
		Surface:       tray.Surface{},
		OnQuit:        tray.Quit,
		OnPollerStart: recordPolling,
	})
	if err != nil {
		return err
	}

	onStart := func() {
		if err := writeDaemonInfo(d); err != nil {
			log.Printf("Failed to write daemon info: %v", err)
			d.Quit()
			return
		}
		d.Start()

		go func() {
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			select {
			case sig := <-sigCh:
				log.Printf("Received signal %v, shutting down...", sig)
			case err := <-d.ServeErr():
				log.Printf("Server error: %v", err)
			}
			d.Quit()
		}()
	}

	onExit := func() {
		shutdown(d)
	}

	// This blocks the main goroutine until tray exits.
	tray.Run(d, onStart, onExit)
	return nil
}

func writeDaemonInfo(d *daemon.Daemon) error {
	info := models.NewDaemonInfo(server.Host, d.Port(), os.Getpid(), d.SettingsPath())
	if err := config.SaveDaemonInfo(info); err != nil {
		return fmt.Errorf("failed to write daemon info: %w", err)
	}
	log.Printf("Daemon started on port %d (PID %d)", d.Port(), os.Getpid())
	return nil
}

// recordPolling keeps the polling section of daemon.yaml in step with the
// poller.
func recordPolling(s models.Settings) {
	if err := config.RecordPolling(s); err != nil {
		log.Printf("Failed to record polling settings: %v", err)
	}
}

func shutdown(d *daemon.Daemon) {
	d.Stop()
	if err := config.RemoveDaemonInfo(); err != nil {
		log.Printf("Failed to remove daemon info: %v", err)
	}
	fmt.Println("Daemon stopped")
}
