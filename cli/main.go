package main

import (
	"os"

	"github.com/telhawk-systems/ocsf-mcp/cli/cmd"
	"github.com/telhawk-systems/ocsf-mcp/cli/pkg/output"
)

func main() {
	if err := cmd.Execute(); err != nil {
		output.Error("%v", err)
		os.Exit(1)
	}
}
