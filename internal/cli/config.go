package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/LeJamon/goMarketd/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration helpers",
}

var configExampleCmd = &cobra.Command{
	Use:   "example <path>",
	Short: "Write an example configuration file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.SaveExampleConfig(args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", args[0])
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(configFile)
		if err != nil {
			return err
		}
		return printJSON(cmd, cfg)
	},
}

func init() {
	configCmd.AddCommand(configExampleCmd, configShowCmd)
	rootCmd.AddCommand(configCmd)
}
