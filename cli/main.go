package main

import (
	"fmt"
	"os"

	"github.com/trebuchet-org/crowdfund-cli/internal/cli"
	"github.com/trebuchet-org/crowdfund-cli/internal/config"
)

// Set by the release build
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	config.SetBuildFlags(version, commit, date)

	rootCmd := cli.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		if !cli.IsReported(err) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
