// Package cmd builds the scoresight command tree.
package cmd

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"scoresight/internal/config"
	"scoresight/internal/logger"
)

// state carries what every subcommand needs, assembled once in the root
// command's PersistentPreRunE.
type state struct {
	settings *config.Settings
	log      zerolog.Logger
}

// RootCommand creates the root command with all subcommands attached.
func RootCommand(version string) *cobra.Command {
	st := &state{}

	rootCmd := &cobra.Command{
		Use:   "scoresight",
		Short: "Detect and annotate music symbols in sheet music images",
		Long: "scoresight wraps the Audiveris optical music recognizer: it upscales\n" +
			"low-resolution scans, runs recognition, and draws color-coded bounding\n" +
			"boxes around detected noteheads, sharps, flats, and naturals.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug output")
	if err := viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug")); err != nil {
		cobra.CheckErr(err)
	}

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		settings, err := config.Load()
		if err != nil {
			return err
		}
		// Re-sync so command line flags win over file and env values.
		config.Sync(settings)
		if err := settings.Validate(); err != nil {
			return err
		}
		st.settings = settings
		st.log = logger.Setup(settings.Debug)
		return nil
	}

	rootCmd.AddCommand(
		detectCommand(st),
		upscaleCommand(st),
		previewCommand(st),
		serveCommand(st),
		versionCommand(version),
	)

	return rootCmd
}
