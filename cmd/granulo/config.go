package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect the pipeline configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Long: `Display the configuration after applying the config file
and the GRANULO_* environment variables on top of the defaults.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadConfig()
		if err != nil {
			return err
		}
		bb, err := yaml.Marshal(c)
		if err != nil {
			return fmt.Errorf("could not marshal config: %w", err)
		}
		_, err = cmd.OutOrStdout().Write(bb)
		return err
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
}
