package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"xpeak/internal/ui"
)

const Version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:           "xpeak",
	Short:         "Local-first gamified task tracker",
	Long:          "XPeak turns task completion into progression: XP, levels, habit streaks, and quest completion bonuses.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var configPath string

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.xpeak.yaml)")

	rootCmd.AddCommand(
		newAddCmd(),
		newDoCmd(),
		newRmCmd(),
		newQuestCmd(),
		newGoalCmd(),
		newStatusCmd(),
		newHistoryCmd(),
		newBoardCmd(),
		newWatchCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
