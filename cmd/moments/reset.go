package main

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/terraincognita07/moments/internal/cli"
	"github.com/terraincognita07/moments/internal/db"
)

func newResetCommand() *cobra.Command {
	var dbPath string
	cmd := &cobra.Command{
		Use:       "reset TARGET",
		Short:     "Remove stored data (" + strings.Join(cli.ResetTargets(), "|") + ")",
		Args:      cobra.ExactArgs(1),
		ValidArgs: cli.ResetTargets(),
		RunE: func(cmd *cobra.Command, args []string) error {
			database, err := db.OpenSQLite(dbPath, zerolog.Nop())
			if err != nil {
				return fmt.Errorf("database init failed: %w", err)
			}
			repositories := db.NewRepositories(database, 0)
			return cli.RunResetCommand(repositories.Durable, args[0], cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", defaultDBPath(), "Path to the SQLite database")
	return cmd
}
