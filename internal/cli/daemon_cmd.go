package cli

import (
	"context"
	"fmt"
	"os"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/easysurf/easysurf/internal/config"
	"github.com/easysurf/easysurf/internal/rpc"
)

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Manage the easysurf daemon",
	Long:  `Manage the easysurfd tray process.`,
}

var daemonStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show daemon status",
	RunE:  runDaemonStatus,
}

var daemonStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the daemon",
	RunE:  runDaemonStart,
}

var daemonStopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the daemon",
	RunE:  runDaemonStop,
}

func init() {
	daemonCmd.AddCommand(daemonStartCmd)
	daemonCmd.AddCommand(daemonStatusCmd)
	daemonCmd.AddCommand(daemonStopCmd)
}

func runDaemonStart(cmd *cobra.Command, args []string) error {
	running, info, err := config.IsDaemonRunning()
	if err != nil {
		return fmt.Errorf("failed to check daemon status: %w", err)
	}

	if running && info != nil {
		fmt.Printf("Daemon is already running (PID %d, port %d).\n", info.PID, info.Port)
		return nil
	}

	// Clean up stale daemon info if it exists
	if info != nil {
		_ = config.RemoveDaemonInfo()
	}

	fmt.Print("Starting daemon...")
	if startErr := startDaemon(); startErr != nil {
		fmt.Println()
		return startErr
	}

	// Fetch fresh status to display
	_, freshInfo, err := GetDaemonStatus()
	if err != nil || freshInfo == nil {
		fmt.Println(" started.")
		return nil
	}

	fmt.Printf(" started (PID %d, port %d).\n", freshInfo.PID, freshInfo.Port)
	return nil
}

func runDaemonStatus(cmd *cobra.Command, args []string) error {
	running, info, err := GetDaemonStatus()
	if err != nil {
		return err
	}

	if !running || info == nil {
		fmt.Println("Daemon is not running.")
		return nil
	}

	uptime := time.Since(info.StartedAt).Truncate(time.Second)

	fmt.Println("Daemon is running.")
	fmt.Printf("  Host:       %s\n", info.Host)
	fmt.Printf("  Port:       %d\n", info.Port)
	fmt.Printf("  PID:        %d\n", info.PID)
	fmt.Printf("  Uptime:     %s\n", uptime)
	if info.SettingsFile != "" {
		fmt.Printf("  File:       %s\n", info.SettingsFile)
	}
	if p := info.Polling; p != nil {
		fmt.Printf("  Location:   %.4f, %.4f\n", p.Latitude, p.Longitude)
		fmt.Printf("  API:        %s\n", p.APIURL)
		fmt.Printf("  Since:      %s\n", p.Since.Local().Format("2006-01-02 15:04:05"))
	}

	// Poller details come from the daemon itself
	return withDaemon(func(ctx context.Context, client *rpc.Client) error {
		st, err := client.GetDaemonStatus(ctx)
		if err != nil {
			return nil // Non-fatal: just skip poller display
		}
		fmt.Printf("  Poller:     %s (every %d min)\n", st.PollerMode, st.Interval)
		window := "closed"
		if st.WindowOpen {
			window = "open"
		}
		fmt.Printf("  Settings:   %s\n", window)
		return nil
	})
}

func runDaemonStop(cmd *cobra.Command, args []string) error {
	running, info, err := config.IsDaemonRunning()
	if err != nil {
		return fmt.Errorf("failed to check daemon status: %w", err)
	}

	if !running || info == nil {
		fmt.Println("Daemon is not running.")
		return nil
	}

	// Ask politely over the bridge, then fall back to SIGTERM
	shutdownErr := withDaemon(func(ctx context.Context, client *rpc.Client) error {
		return client.Shutdown(ctx)
	})
	if shutdownErr != nil {
		process, err := os.FindProcess(info.PID)
		if err != nil {
			return fmt.Errorf("failed to find daemon process: %w", err)
		}
		if err := process.Signal(syscall.SIGTERM); err != nil {
			return fmt.Errorf("failed to send stop signal: %w", err)
		}
	}

	// Poll for shutdown (max 5 seconds)
	for i := 0; i < 50; i++ {
		time.Sleep(100 * time.Millisecond)
		stillRunning, _, err := config.IsDaemonRunning()
		if err == nil && !stillRunning {
			fmt.Println("Daemon stopped.")
			return nil
		}
	}

	return fmt.Errorf("daemon did not stop within timeout")
}
