package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/telhawk-systems/ocsf-mcp/cli/pkg/output"
	"github.com/telhawk-systems/ocsf-mcp/internal/docs"
	"github.com/telhawk-systems/ocsf-mcp/internal/models"
	"github.com/telhawk-systems/ocsf-mcp/internal/tools"
)

var docsCmd = &cobra.Command{
	Use:   "docs [topic]",
	Short: "Read the bundled OCSF guides",
	Long: `Read one of the bundled OCSF guides. Without a topic the available
topics are listed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			catalog := docs.Catalog()
			if handled, err := output.Structured(outputFormat(cmd), catalog); handled {
				return err
			}
			table := output.NewTable([]string{"TOPIC", "ALIASES", "DESCRIPTION"})
			for _, t := range catalog {
				table.AddRow([]string{t.Name, strings.Join(t.Aliases, ", "), t.Description})
			}
			table.RenderTo(cmd.OutOrStdout())
			return nil
		}

		res, err := newClient(cmd).Call(commandContext(cmd), tools.ReadDocs, models.ReadDocsRequest{Topic: args[0]})
		if err != nil {
			return err
		}
		printText(cmd, res.Text())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(docsCmd)
}
