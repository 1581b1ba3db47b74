package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/telhawk-systems/ocsf-mcp/cli/pkg/output"
	"github.com/telhawk-systems/ocsf-mcp/internal/codegen"
	"github.com/telhawk-systems/ocsf-mcp/internal/models"
	"github.com/telhawk-systems/ocsf-mcp/internal/tools"
)

var codegenCmd = &cobra.Command{
	Use:   "codegen",
	Short: "Generate OCSF logging code",
	Example: `  ocsfctl codegen --language python --classes authentication,network_activity
  ocsfctl codegen --language go --classes '["process_activity"]' --out-dir ./ocsf
  ocsfctl codegen --language javascript --classes file_activity --framework express --no-helpers`,
	RunE: func(cmd *cobra.Command, args []string) error {
		req := models.GenerateCodeRequest{IncludeHelpers: true}
		req.Language, _ = cmd.Flags().GetString("language")
		req.EventClasses, _ = cmd.Flags().GetString("classes")
		req.Framework, _ = cmd.Flags().GetString("framework")
		if noHelpers, _ := cmd.Flags().GetBool("no-helpers"); noHelpers {
			req.IncludeHelpers = false
		}

		var artifacts codegen.Artifacts
		if err := newClient(cmd).CallJSON(commandContext(cmd), tools.GenerateCode, req, &artifacts); err != nil {
			return err
		}

		outDir, _ := cmd.Flags().GetString("out-dir")
		if outDir != "" {
			if err := writeArtifacts(outDir, artifacts.Files); err != nil {
				return err
			}
			output.Success("%s", artifacts.Summary)
			output.Info("Files written to %s", outDir)
			return nil
		}

		if handled, err := output.Structured(outputFormat(cmd), artifacts); handled {
			return err
		}

		output.Info("%s", artifacts.Summary)
		table := output.NewTable([]string{"FILE", "DESCRIPTION"})
		for _, f := range artifacts.Files {
			table.AddRow([]string{f.Filename, f.Description})
		}
		table.RenderTo(cmd.OutOrStdout())
		return nil
	},
}

func writeArtifacts(dir string, files []codegen.File) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	for _, f := range files {
		// Generated filenames are flat; refuse anything that would escape dir.
		name := filepath.Base(f.Filename)
		if name != f.Filename {
			return fmt.Errorf("refusing to write %q outside %s", f.Filename, dir)
		}
		if err := os.WriteFile(filepath.Join(dir, name), []byte(f.Content), 0644); err != nil {
			return err
		}
	}
	return nil
}

func init() {
	rootCmd.AddCommand(codegenCmd)

	codegenCmd.Flags().StringP("language", "l", "", "Target language: rust, python, javascript, go")
	codegenCmd.Flags().StringP("classes", "c", "", "Event classes: JSON array or comma-separated names")
	codegenCmd.Flags().String("framework", "", "Framework hint, e.g. express")
	codegenCmd.Flags().Bool("no-helpers", false, "Skip the event builder helpers")
	codegenCmd.Flags().String("out-dir", "", "Write the generated files to this directory")
	codegenCmd.MarkFlagRequired("language")
	codegenCmd.MarkFlagRequired("classes")
}
