package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/telhawk-systems/ocsf-mcp/cli/pkg/output"
	"github.com/telhawk-systems/ocsf-mcp/internal/examples"
	"github.com/telhawk-systems/ocsf-mcp/internal/mapper"
	"github.com/telhawk-systems/ocsf-mcp/internal/models"
	"github.com/telhawk-systems/ocsf-mcp/internal/tools"
	"github.com/telhawk-systems/ocsf-mcp/internal/validator"
)

var generateCmd = &cobra.Command{
	Use:   "generate <event-class>",
	Short: "Generate an OCSF event",
	Example: `  ocsfctl generate authentication --required activity_id,severity_id
  ocsfctl generate authentication --required '{"user":{"name":"alice"}}' --optional message
  ocsfctl generate network_activity --sample`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req := models.GenerateEventRequest{EventClass: args[0]}
		req.Version, _ = cmd.Flags().GetString("version")
		req.RequiredFields, _ = cmd.Flags().GetString("required")
		req.OptionalFields, _ = cmd.Flags().GetString("optional")

		if sample, _ := cmd.Flags().GetBool("sample"); sample {
			seed, _ := cmd.Flags().GetInt64("seed")
			data, err := json.Marshal(newSampler(seed).Sample(args[0]))
			if err != nil {
				return err
			}
			req.RequiredFields = string(data)
		}

		res, err := newClient(cmd).Call(commandContext(cmd), tools.GenerateEvent, req)
		if err != nil {
			return err
		}
		return printEventText(cmd, res.Text())
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate [event-json|@file|-]",
	Short: "Validate an OCSF event",
	Example: `  ocsfctl validate @event.json
  ocsfctl generate authentication --sample -o json | ocsfctl validate -`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		arg := ""
		if len(args) == 1 {
			arg = args[0]
		}
		text, err := readInput(cmd, arg)
		if err != nil {
			return err
		}

		var report validator.Report
		err = newClient(cmd).CallJSON(commandContext(cmd), tools.ValidateEvent, models.ValidateEventRequest{EventJSON: text}, &report)
		if err != nil {
			return err
		}

		if handled, err := output.Structured(outputFormat(cmd), report); handled {
			return err
		}

		if report.IsValid {
			output.Success("%s", report.Summary)
		} else {
			output.Error("%s", report.Summary)
		}
		for _, e := range report.Errors {
			fmt.Fprintf(cmd.OutOrStdout(), "  error   %s: %s\n", e.Field, e.Message)
		}
		for _, w := range report.Warnings {
			fmt.Fprintf(cmd.OutOrStdout(), "  warning %s: %s\n", w.Field, w.Message)
		}
		if !report.IsValid {
			return fmt.Errorf("event is not valid")
		}
		return nil
	},
}

var mapCmd = &cobra.Command{
	Use:   "map [sample-log|@file|-]",
	Short: "Suggest an OCSF mapping for a custom log line",
	Example: `  ocsfctl map '{"user":"bob","action":"login","src_ip":"10.0.0.5"}'
  ocsfctl map @firewall.log --hint network_activity`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		arg := ""
		if len(args) == 1 {
			arg = args[0]
		}
		sample, err := readInput(cmd, arg)
		if err != nil {
			return err
		}
		req := models.MapCustomRequest{SampleLog: sample}
		if cmd.Flags().Changed("hint") {
			hint, _ := cmd.Flags().GetString("hint")
			req.SuggestedClass = &hint
		}

		var rec mapper.Recommendation
		err = newClient(cmd).CallJSON(commandContext(cmd), tools.MapCustom, req, &rec)
		if err != nil {
			return err
		}

		if handled, err := output.Structured(outputFormat(cmd), rec); handled {
			return err
		}

		output.Info("Suggested class: %s (%s confidence)", rec.SuggestedEventClass, rec.Confidence)
		table := output.NewTable([]string{"SOURCE", "OCSF", "TRANSFORMATION"})
		for _, m := range rec.FieldMappings {
			transform := ""
			if m.Transformation != nil {
				transform = *m.Transformation
			}
			table.AddRow([]string{m.SourceField, m.OCSFField, transform})
		}
		table.RenderTo(cmd.OutOrStdout())
		fmt.Fprintln(cmd.OutOrStdout(), rec.Explanation)
		return nil
	},
}

var examplesCmd = &cobra.Command{
	Use:   "examples <event-class>",
	Short: "List example events for a class",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		scenario, _ := cmd.Flags().GetString("scenario")

		var list []examples.Example
		err := newClient(cmd).CallJSON(commandContext(cmd), tools.ListExamples, models.ListExamplesRequest{EventClass: args[0], Scenario: scenario}, &list)
		if err != nil {
			return err
		}

		if handled, err := output.Structured(outputFormat(cmd), list); handled {
			return err
		}

		if len(list) == 0 {
			output.Warn("No examples for scenario '%s'", scenario)
			return nil
		}
		for i, ex := range list {
			if i > 0 {
				fmt.Fprintln(cmd.OutOrStdout())
			}
			output.Info("%s: %s", ex.Scenario, ex.Description)
			printText(cmd, ex.JSON)
		}
		return nil
	},
}

// printEventText prints a generated event, re-encoding it for --output yaml.
func printEventText(cmd *cobra.Command, text string) error {
	if outputFormat(cmd) == output.FormatYAML {
		var doc any
		if err := json.NewDecoder(strings.NewReader(text)).Decode(&doc); err != nil {
			return fmt.Errorf("decode event: %w", err)
		}
		return output.YAML(doc)
	}
	printText(cmd, text)
	return nil
}

func init() {
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(mapCmd)
	rootCmd.AddCommand(examplesCmd)

	generateCmd.Flags().String("version", "", "Schema version (default: server default)")
	generateCmd.Flags().String("required", "", "Required fields: JSON object or comma-separated names")
	generateCmd.Flags().String("optional", "", "Optional fields: JSON object or comma-separated names")
	generateCmd.Flags().Bool("sample", false, "Fill required fields with realistic sample values")
	generateCmd.Flags().Int64("seed", 0, "Sample seed (0 picks a random seed)")

	mapCmd.Flags().String("hint", "", "Suggested event class")

	examplesCmd.Flags().String("scenario", "", "Only show this scenario")
}
