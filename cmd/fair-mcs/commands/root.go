package commands

import (
	"fair-mcs/internal/config"
	"fair-mcs/internal/logging"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	// Version, Commit, and BuildDate are set at build time via ldflags.
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"

	verbose bool
	cfg     *config.AppConfig
)

// newRootCmd builds the command tree. Flags bind fresh values on every call.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "fair-mcs",
		Short: "FAIR-MCS estimates cyber-risk loss exposure with Monte-Carlo simulation",
		Long: `A FAIR (Factor Analysis of Information Risk) simulation engine that turns three-point
estimates of threat frequency, vulnerability and loss magnitude into an Annualized
Loss Expectancy distribution. Usable as a CLI or as an MCP server.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !verbose {
				zerolog.SetGlobalLevel(zerolog.InfoLevel)
			}

			var err error
			cfg, err = config.Load()
			if err != nil {
				return err
			}

			if err := logging.Init(verbose, cfg.LogDir); err != nil {
				return err
			}

			log.Debug().
				Str("version", Version).
				Str("commit", Commit).
				Str("buildDate", BuildDate).
				Str("dataPath", cfg.DataPath).
				Msg("FAIR-MCS starting")
			return nil
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.AddCommand(newRunCmd(), newServeCmd(), newSchemaCmd())
	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	return newRootCmd().Execute()
}
