package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/telhawk-systems/ocsf-mcp/cli/pkg/output"
	"github.com/telhawk-systems/ocsf-mcp/internal/models"
	"github.com/telhawk-systems/ocsf-mcp/internal/tools"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse schema categories, event classes and attributes",
	Example: `  ocsfctl browse
  ocsfctl browse --category iam
  ocsfctl browse --event-class authentication --attributes
  ocsfctl browse --all --version 1.6.0`,
	RunE: func(cmd *cobra.Command, args []string) error {
		req := models.BrowseSchemaRequest{}
		req.Version, _ = cmd.Flags().GetString("version")
		req.Category, _ = cmd.Flags().GetString("category")
		req.EventClass, _ = cmd.Flags().GetString("event-class")
		req.ShowAttributes, _ = cmd.Flags().GetBool("attributes")
		req.AllClasses, _ = cmd.Flags().GetBool("all")

		var info models.SchemaInfo
		if err := newClient(cmd).CallJSON(commandContext(cmd), tools.BrowseSchema, req, &info); err != nil {
			return err
		}

		if handled, err := output.Structured(outputFormat(cmd), info); handled {
			return err
		}

		output.Info("%s", info.Summary)
		w := cmd.OutOrStdout()
		switch {
		case info.Categories != nil:
			table := output.NewTable([]string{"CATEGORY", "CLASSES", "DESCRIPTION"})
			for _, c := range info.Categories {
				table.AddRow([]string{c.Name, strconv.Itoa(c.EventCount), truncate(c.Description, 60)})
			}
			table.RenderTo(w)
		case info.EventClasses != nil:
			table := output.NewTable([]string{"NAME", "UID", "CATEGORY", "CAPTION"})
			for _, c := range info.EventClasses {
				table.AddRow([]string{c.Name, strconv.Itoa(c.UID), c.Category, c.Caption})
			}
			table.RenderTo(w)
		case info.Attributes != nil:
			table := output.NewTable([]string{"ATTRIBUTE", "TYPE", "REQUIRED", "DESCRIPTION"})
			for _, a := range info.Attributes {
				table.AddRow([]string{a.Name, a.DataType, strconv.FormatBool(a.Required), truncate(a.Description, 60)})
			}
			table.RenderTo(w)
		}
		return nil
	},
}

var versionsCmd = &cobra.Command{
	Use:   "versions",
	Short: "List available schema versions",
	RunE: func(cmd *cobra.Command, args []string) error {
		var resp models.VersionsResponse
		if err := newClient(cmd).CallJSON(commandContext(cmd), tools.ListVersions, nil, &resp); err != nil {
			return err
		}

		if handled, err := output.Structured(outputFormat(cmd), resp); handled {
			return err
		}

		for _, v := range resp.Versions {
			fmt.Fprintln(cmd.OutOrStdout(), v)
		}
		return nil
	},
}

var newestCmd = &cobra.Command{
	Use:   "newest",
	Short: "Show the newest stable schema version",
	RunE: func(cmd *cobra.Command, args []string) error {
		var resp models.NewestVersionResponse
		if err := newClient(cmd).CallJSON(commandContext(cmd), tools.NewestVersion, nil, &resp); err != nil {
			return err
		}

		if handled, err := output.Structured(outputFormat(cmd), resp); handled {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), resp.Version)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(versionsCmd)
	rootCmd.AddCommand(newestCmd)

	browseCmd.Flags().String("version", "", "Schema version (default: server default)")
	browseCmd.Flags().String("category", "", "List event classes in a category")
	browseCmd.Flags().String("event-class", "", "Show one event class")
	browseCmd.Flags().Bool("attributes", false, "Show the required attributes of --event-class")
	browseCmd.Flags().Bool("all", false, "List every event class")
}
