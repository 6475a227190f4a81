package main

import (
	"fmt"

	"github.com/drakos74/granulo/infra/config"
	"github.com/drakos74/granulo/internal/pipeline"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const (
	version   = "v0.1.0"
	configKey = "pipeline"
)

var (
	cfgFile string
	level   string
)

var rootCmd = &cobra.Command{
	Use:   "granulo",
	Short: "Fuzzy granulation and quantification of numeric properties",
	Long: `granulo discovers prototypes of numeric observations with fuzzy c-means,
builds a strong fuzzy partition over them, granulates every observation and
quantifies every granule with linguistic quantifiers.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		lvl, err := zerolog.ParseLevel(level)
		if err != nil {
			return fmt.Errorf("invalid log level '%s': %w", level, err)
		}
		zerolog.SetGlobalLevel(lvl)
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "granulo %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: infra/config/pipeline.json under the working directory, built-in defaults if absent)")
	rootCmd.PersistentFlags().StringVar(&level, "log-level", zerolog.InfoLevel.String(), "log level")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig reads the pipeline config on top of the defaults.
// Without --config a missing default document leaves the defaults in place.
func loadConfig() (pipeline.Config, error) {
	c := pipeline.DefaultConfig()
	var err error
	if cfgFile != "" {
		err = config.LoadFile(cfgFile, &c)
	} else if err = config.Load(configKey, &c); config.NotFound(err) {
		log.Warn().Err(err).Msg("using default config")
		c, err = pipeline.DefaultConfig(), nil
	}
	if err != nil {
		return c, err
	}
	return c, c.Validate()
}
