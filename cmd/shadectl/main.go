package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "shadectl",
		Short: "Inspect and manage storefront snapshots",
		Long: `shadectl works against the snapshot storage configured for the
storefront server (STORAGE_DRIVER and friends, read from the environment
or CONFIG_FILE).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
	}

	rootCmd.AddCommand(
		snapshotCmd(),
		deviceCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
