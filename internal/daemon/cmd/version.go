package cmd

import (
	"fmt"
	"runtime"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/easysurf/easysurf/internal/buildinfo"
	"github.com/easysurf/easysurf/internal/config"
	"github.com/easysurf/easysurf/internal/models"
)

var (
	versionBrand = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "30", Dark: "45"})
	versionMuted = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "242", Dark: "240"})
	versionValue = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "0", Dark: "15"})
)

var versionCmd = &cobra.Command{
	Use:     "version",
	Aliases: []string{"v"},
	Short:   "Show version and forecast source information",
	Run:     runVersion,
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

func runVersion(cmd *cobra.Command, args []string) {
	fmt.Printf("  %s %s %s\n",
		versionBrand.Render("easysurfd"),
		versionValue.Render(buildinfo.Version),
		versionMuted.Render("("+buildinfo.Codename+")"),
	)

	settingsFile, err := config.GlobalSettingsFile()
	if err != nil {
		settingsFile = "unavailable: " + err.Error()
	}

	rows := [][2]string{
		{"Commit", buildinfo.CommitHash},
		{"Built", buildinfo.BuildDate},
		{"Platform", runtime.GOOS + "/" + runtime.GOARCH + " " + runtime.Version()},
		{"User-Agent", buildinfo.UserAgent()},
		{"Settings", settingsFile},
		{"Default API", models.DefaultAPIURL},
	}
	for _, r := range rows {
		fmt.Printf("    %s %s\n", versionMuted.Render(fmt.Sprintf("%-11s", r[0])), versionValue.Render(r[1]))
	}
}
