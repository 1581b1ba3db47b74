package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/telhawk-systems/ocsf-mcp/cli/pkg/output"
)

func profileName(cmd *cobra.Command) string {
	name, _ := cmd.Flags().GetString("profile")
	if name == "" {
		name = "default"
	}
	return name
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Save a server URL and token as a profile",
	Example: `  ocsfctl login --url https://ocsf.example.com --token "$OCSF_TOKEN"
  ocsfctl login --profile staging --url https://ocsf.staging.example.com`,
	RunE: func(cmd *cobra.Command, args []string) error {
		serverURL, _ := cmd.Flags().GetString("url")
		token, _ := cmd.Flags().GetString("token")
		if serverURL == "" {
			serverURL = cfg.Defaults.ServerURL
		}

		name := profileName(cmd)

		health, err := newClientFor(serverURL, token).Health(commandContext(cmd))
		if err != nil {
			return fmt.Errorf("server not reachable: %w", err)
		}

		if err := cfg.SaveProfile(name, serverURL, token); err != nil {
			return fmt.Errorf("failed to save profile: %w", err)
		}

		output.Success("Logged in to %s (%s)", serverURL, health.Status)
		output.Info("Profile '%s' saved to %s", name, cfg.Path())
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove a saved profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		name := profileName(cmd)
		if err := cfg.RemoveProfile(name); err != nil {
			return err
		}
		output.Success("Removed profile '%s'", name)
		return nil
	},
}

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage saved profiles",
}

var profileListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved profiles",
	RunE: func(cmd *cobra.Command, args []string) error {
		names := make([]string, 0, len(cfg.Profiles))
		for name := range cfg.Profiles {
			names = append(names, name)
		}
		sort.Strings(names)

		if handled, err := output.Structured(outputFormat(cmd), cfg.Profiles); handled {
			return err
		}

		table := output.NewTable([]string{"CURRENT", "NAME", "SERVER", "TOKEN"})
		for _, name := range names {
			p := cfg.Profiles[name]
			current, token := "", "no"
			if name == cfg.CurrentProfile {
				current = "*"
			}
			if p.Token != "" {
				token = "yes"
			}
			table.AddRow([]string{current, name, p.ServerURL, token})
		}
		table.RenderTo(cmd.OutOrStdout())
		return nil
	},
}

var profileUseCmd = &cobra.Command{
	Use:   "use <name>",
	Short: "Switch the current profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.UseProfile(args[0]); err != nil {
			return err
		}
		output.Success("Now using profile '%s'", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(profileCmd)
	profileCmd.AddCommand(profileListCmd)
	profileCmd.AddCommand(profileUseCmd)
}
