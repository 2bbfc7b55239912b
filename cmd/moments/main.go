package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "moments",
		Short:         "Planned moments, photo vault and notifications over HTTP",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(newServeCommand(), newResetCommand())
	return rootCmd
}

func defaultDBPath() string {
	if value := os.Getenv("MOMENTS_DB_PATH"); value != "" {
		return value
	}
	return filepath.Join("data", "moments.db")
}
