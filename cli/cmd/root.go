package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/telhawk-systems/ocsf-mcp/cli/internal/config"
)

var (
	cfgFile string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "ocsfctl",
	Short: "OCSF tool server CLI",
	Long: `ocsfctl is the command-line client for the OCSF tool server.

Browse schema versions, build and validate OCSF events, map custom logs,
generate logging code and read the bundled guides from your terminal.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("output")
		if !validFormat(format) {
			return fmt.Errorf("unknown output format %q (use table, json or yaml)", format)
		}
		return nil
	},
}

func Execute() error {
	defer closeClients()
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.ocsfctl/config.yaml)")
	rootCmd.PersistentFlags().String("profile", "", "profile to use (default: current profile)")
	rootCmd.PersistentFlags().StringP("output", "o", "table", "output format: table, json, yaml")
	rootCmd.PersistentFlags().String("url", "", "server URL (overrides the profile)")
	rootCmd.PersistentFlags().String("token", "", "bearer token (overrides the profile)")
	rootCmd.PersistentFlags().String("nats", "", "NATS URL; call tools over the message broker instead of HTTP")
}

func initConfig() {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not load config: %v\n", err)
		cfg = config.Default()
	}
}
