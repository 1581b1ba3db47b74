package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/telhawk-systems/ocsf-mcp/cli/internal/client"
	"github.com/telhawk-systems/ocsf-mcp/cli/internal/config"
	"github.com/telhawk-systems/ocsf-mcp/cli/pkg/output"
)

func validFormat(f string) bool {
	return output.ValidFormat(f)
}

func outputFormat(cmd *cobra.Command) string {
	f, _ := cmd.Flags().GetString("output")
	return f
}

const natsCallTimeout = 30 * time.Second

// natsClients are closed when the command finishes.
var natsClients []*client.Client

// newClient resolves the server from flags first, then the profile. --nats
// switches every tool call to the message broker.
func newClient(cmd *cobra.Command) *client.Client {
	if u, _ := cmd.Flags().GetString("nats"); u != "" {
		c := client.NewNATS(u, natsCallTimeout)
		natsClients = append(natsClients, c)
		return c
	}

	if cfg == nil {
		cfg = config.Default()
	}
	profile, _ := cmd.Flags().GetString("profile")
	serverURL, token := cfg.Resolve(profile)

	if u, _ := cmd.Flags().GetString("url"); u != "" {
		serverURL = u
	}
	if t, _ := cmd.Flags().GetString("token"); t != "" {
		token = t
	}
	return client.New(serverURL, token)
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// readInput returns arg as-is, the contents of a file for "@path", or stdin
// for "-" and an empty arg.
func readInput(cmd *cobra.Command, arg string) (string, error) {
	switch {
	case arg == "" || arg == "-":
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		if len(strings.TrimSpace(string(data))) == 0 {
			return "", fmt.Errorf("no input provided on stdin")
		}
		return string(data), nil
	case strings.HasPrefix(arg, "@"):
		data, err := os.ReadFile(arg[1:])
		if err != nil {
			return "", err
		}
		return string(data), nil
	default:
		return arg, nil
	}
}

// printText writes tool output that is already formatted text.
func printText(cmd *cobra.Command, text string) {
	fmt.Fprintln(cmd.OutOrStdout(), strings.TrimRight(text, "\n"))
}

func truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}

func newClientFor(serverURL, token string) *client.Client {
	return client.New(serverURL, token)
}

func closeClients() {
	for _, c := range natsClients {
		_ = c.Close()
	}
	natsClients = nil
}
