package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/schoolportal/portal/internal/fixtures"
	"github.com/schoolportal/portal/internal/models"
	"github.com/schoolportal/portal/internal/store/sqlite"
)

func newSeedCommand(opts *rootOptions) *cobra.Command {
	var dbPath, fixturesPath string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create and seed a SQLite database",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := opts.load()
			if err != nil {
				return err
			}
			if dbPath == "" {
				dbPath = cfg.DatabasePath
			}

			ds := fixtures.Default()
			if fixturesPath != "" {
				if ds, err = fixtures.LoadFile(fixturesPath); err != nil {
					return fmt.Errorf("load fixtures: %w", err)
				}
			}

			if err := seedDatabase(cmd, dbPath, ds); err != nil {
				return err
			}

			logger.Info().Str("db_path", dbPath).Msg("database seeded")
			green := color.New(color.FgGreen)
			_, _ = green.Fprintf(cmd.OutOrStdout(), "Seeded %s: %d users, %d conversations, %d messages\n",
				dbPath, len(ds.Users), len(ds.Conversations), len(ds.Messages))
			return nil
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite database path (defaults to database_path)")
	cmd.Flags().StringVar(&fixturesPath, "fixtures", "", "YAML dataset to load instead of the demo data")
	return cmd
}

func seedDatabase(cmd *cobra.Command, dbPath string, ds models.Dataset) error {
	st, err := sqlite.New(dbPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer st.Close()

	if err := st.Seed(cmd.Context(), ds); err != nil {
		return fmt.Errorf("seed database: %w", err)
	}
	return nil
}
