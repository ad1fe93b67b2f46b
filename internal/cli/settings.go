package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/easysurf/easysurf/internal/config"
	"github.com/easysurf/easysurf/internal/rpc"
	"github.com/easysurf/easysurf/internal/tui"
)

var settingsCmd = &cobra.Command{
	Use:     "settings",
	Aliases: []string{"config"},
	Short:   "Open the settings window",
	Long: `Open the settings window to edit the location, polling interval and
forecast API URL. Only one settings window can be open at a time; running
this again brings the open one forward.

The daemon is started if it is not already running.`,
	Args: cobra.NoArgs,
	RunE: runSettingsWindow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the current settings",
	Args:  cobra.NoArgs,
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change settings without opening the window",
	Long: `Change one or more settings. Unspecified settings keep their current
value. The new values are validated exactly as the settings window does.`,
	Args: cobra.NoArgs,
	RunE: runSettingsSet,
}

// settingsFlags holds the values of the flags given to `settings set`.
// A nil field was not given.
type settingsFlags struct {
	latitude  *float64
	longitude *float64
	interval  *float64
	apiURL    *string
}

var (
	flagLat      float64
	flagLon      float64
	flagInterval float64
	flagAPIURL   string
)

func init() {
	settingsSetCmd.Flags().Float64Var(&flagLat, "lat", 0, "Latitude (-90 to 90)")
	settingsSetCmd.Flags().Float64Var(&flagLon, "lon", 0, "Longitude (-180 to 180)")
	settingsSetCmd.Flags().Float64Var(&flagInterval, "interval", 0, "Polling interval in minutes (1 to 1440)")
	settingsSetCmd.Flags().StringVar(&flagAPIURL, "api-url", "", "Forecast API base URL")

	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
}

func runSettingsWindow(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("the settings window needs a terminal; use %s instead",
			styleCommand.Render("easysurf settings set"))
	}

	if err := EnsureDaemon(); err != nil {
		return err
	}

	err := tui.Run()
	if errors.Is(err, tui.ErrAlreadyOpen) {
		fmt.Println("Settings window is already open.")
		return nil
	}
	return err
}

func runSettingsShow(cmd *cobra.Command, args []string) error {
	s, err := currentSettings()
	if err != nil {
		return err
	}
	printSettings(s)
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	var f settingsFlags
	if cmd.Flags().Changed("lat") {
		f.latitude = &flagLat
	}
	if cmd.Flags().Changed("lon") {
		f.longitude = &flagLon
	}
	if cmd.Flags().Changed("interval") {
		f.interval = &flagInterval
	}
	if cmd.Flags().Changed("api-url") {
		f.apiURL = &flagAPIURL
	}
	if f == (settingsFlags{}) {
		return fmt.Errorf("nothing to change; pass at least one of --lat, --lon, --interval, --api-url")
	}

	current, err := currentSettings()
	if err != nil {
		return err
	}
	next := mergeSettings(current, f)

	violations, err := saveSettings(next)
	if err != nil {
		return err
	}
	if len(violations) > 0 {
		for _, v := range violations {
			fmt.Println(styleError.Render("✗ " + v))
		}
		return fmt.Errorf("settings not saved")
	}

	fmt.Println(styleSuccess.Render("Settings saved."))
	printSettings(next)
	return nil
}

// mergeSettings applies the given flags on top of the current settings.
func mergeSettings(current *rpc.Settings, f settingsFlags) *rpc.Settings {
	next := *current
	if f.latitude != nil {
		next.Latitude = *f.latitude
	}
	if f.longitude != nil {
		next.Longitude = *f.longitude
	}
	if f.interval != nil {
		next.Interval = *f.interval
	}
	if f.apiURL != nil {
		next.APIURL = *f.apiURL
	}
	return &next
}

// currentSettings asks the daemon, or reads settings.yaml when it is not
// running.
func currentSettings() (*rpc.Settings, error) {
	running, _, err := config.IsDaemonRunning()
	if err != nil {
		return nil, fmt.Errorf("failed to check daemon status: %w", err)
	}
	if running {
		var out *rpc.Settings
		err := withDaemon(func(ctx context.Context, client *rpc.Client) error {
			s, err := client.GetSettings(ctx)
			out = s
			return err
		})
		if err == nil {
			return out, nil
		}
	}

	store, err := config.OpenSettingsStore()
	if err != nil {
		return nil, err
	}
	return rpc.SettingsFromModel(store.Read()), nil
}

// saveSettings saves through the daemon so the poller restarts, or writes
// settings.yaml directly when it is not running. Validation failures are
// returned as messages, not as an error.
func saveSettings(s *rpc.Settings) ([]string, error) {
	// NaN cannot cross the JSON bridge, so reject bad input before sending
	if verr := config.Validate(s.Candidate()); verr != nil {
		return verr.Messages, nil
	}

	running, _, err := config.IsDaemonRunning()
	if err != nil {
		return nil, fmt.Errorf("failed to check daemon status: %w", err)
	}

	if running {
		var res *rpc.SaveSettingsResponse
		err := withDaemon(func(ctx context.Context, client *rpc.Client) error {
			r, err := client.SaveSettings(ctx, &rpc.SaveSettingsRequest{Meta: cliMeta(), Settings: s})
			res = r
			return err
		})
		if err != nil {
			return nil, fmt.Errorf("failed to save settings: %w", err)
		}
		if !res.Success {
			if len(res.Errors) > 0 {
				return res.Errors, nil
			}
			return nil, errors.New(res.Error)
		}
		return nil, nil
	}

	store, err := config.OpenSettingsStore()
	if err != nil {
		return nil, err
	}
	if err := store.Write(s.Candidate()); err != nil {
		var verr *config.ValidationError
		if errors.As(err, &verr) {
			return verr.Messages, nil
		}
		return nil, err
	}
	return nil, nil
}

func printSettings(s *rpc.Settings) {
	fmt.Printf("  %s  %s\n", styleLabel.Render("Latitude "), styleValue.Render(strconv.FormatFloat(s.Latitude, 'f', -1, 64)))
	fmt.Printf("  %s  %s\n", styleLabel.Render("Longitude"), styleValue.Render(strconv.FormatFloat(s.Longitude, 'f', -1, 64)))
	fmt.Printf("  %s  %s\n", styleLabel.Render("Interval "), styleValue.Render(strconv.FormatFloat(s.Interval, 'f', -1, 64)+" min"))
	fmt.Printf("  %s  %s\n", styleLabel.Render("API URL  "), styleValue.Render(s.APIURL))
}
