package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/easysurf/easysurf/internal/rpc"
	"github.com/easysurf/easysurf/internal/surf"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current surf conditions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDaemon(func(ctx context.Context, client *rpc.Client) error {
			st, err := client.GetCurrentStatus(ctx)
			if err != nil {
				return fmt.Errorf("failed to get status: %w", err)
			}
			printStatus(st)
			return nil
		})
	},
}

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Fetch the forecast now",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		conn, err := rpc.Connect()
		if err != nil {
			return err
		}
		defer conn.Close()

		// No deadline: the fetch takes as long as the forecast service does.
		st, err := rpc.NewClient(conn).Refresh(context.Background())
		if err != nil {
			return fmt.Errorf("refresh failed: %w", err)
		}
		printStatus(st)
		if st.Error != "" {
			fmt.Println(styleError.Render("Fetch failed: ") + st.Error)
		}
		return nil
	},
}

func printStatus(st *rpc.CurrentStatus) {
	c := surf.ParseColor(st.Color)
	fmt.Printf("%s %s\n", surf.Emoji(c), statusBadge(c).Render(surf.Tooltip(c)))

	u := st.LastUpdate
	if u == nil {
		fmt.Println(styleHint.Render("  No forecast received yet."))
		return
	}
	fmt.Printf("  %s  %.1f m\n", styleLabel.Render("Waves "), u.WaveHeight)
	fmt.Printf("  %s  %.0f s\n", styleLabel.Render("Period"), u.Period)
	if u.Time != "" {
		fmt.Printf("  %s  %s\n", styleLabel.Render("For   "), u.Time)
	}
	if u.FetchedAt != nil {
		fmt.Printf("  %s  %s\n", styleLabel.Render("Polled"), u.FetchedAt.AsTime().Local().Format("2006-01-02 15:04:05"))
	}
}
