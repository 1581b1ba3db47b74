package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/telhawk-systems/ocsf-mcp/cli/pkg/output"
)

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List the tools the server exposes",
	RunE: func(cmd *cobra.Command, args []string) error {
		defs, err := newClient(cmd).ListTools(commandContext(cmd))
		if err != nil {
			return fmt.Errorf("list tools failed: %w", err)
		}

		if handled, err := output.Structured(outputFormat(cmd), defs); handled {
			return err
		}

		table := output.NewTable([]string{"NAME", "DESCRIPTION"})
		for _, d := range defs {
			table.AddRow([]string{d.Name, truncate(d.Description, 80)})
		}
		table.RenderTo(cmd.OutOrStdout())
		return nil
	},
}

var callCmd = &cobra.Command{
	Use:   "call <tool> [arguments-json|@file|-]",
	Short: "Call any tool with a raw JSON argument object",
	Example: `  ocsfctl call list_ocsf_versions
  ocsfctl call browse_ocsf_schema '{"category":"iam"}'
  echo '{"topic":"versions"}' | ocsfctl call read_ocsf_docs -`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw := "{}"
		if len(args) == 2 {
			text, err := readInput(cmd, args[1])
			if err != nil {
				return err
			}
			raw = text
		}
		if !json.Valid([]byte(raw)) {
			return fmt.Errorf("arguments are not valid JSON")
		}

		res, err := newClient(cmd).Call(commandContext(cmd), args[0], json.RawMessage(raw))
		if err != nil {
			return err
		}

		if handled, err := output.Structured(outputFormat(cmd), res); handled {
			return err
		}
		printText(cmd, res.Text())
		return nil
	},
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Show server health",
	RunE: func(cmd *cobra.Command, args []string) error {
		health, err := newClient(cmd).Health(commandContext(cmd))
		if err != nil {
			return fmt.Errorf("health check failed: %w", err)
		}

		if handled, err := output.Structured(outputFormat(cmd), health); handled {
			return err
		}

		if health.Status == "healthy" {
			output.Success("Server is healthy")
		} else {
			output.Warn("Server is %s", health.Status)
		}
		if health.DefaultVersion != "" {
			output.Info("Default version: %s", health.DefaultVersion)
		}
		output.Info("Schema versions: %d", health.Versions)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(toolsCmd)
	rootCmd.AddCommand(callCmd)
	rootCmd.AddCommand(healthCmd)
}
