package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	sqliteadapter "github.com/Vishal-AsthraMedtech/daily-task-tracker/internal/adapters/sqlite"
	"github.com/Vishal-AsthraMedtech/daily-task-tracker/internal/config"
)

type rootOptions struct {
	dbPath string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "tasklog",
		Short: "Log daily tasks and hours worked",
		Long: `tasklog submits a day's tasks to the configured record sink and keeps a
local journal of every submission.

Configuration comes from the environment or a .env file in the working
directory (SINK_KIND, SINK_URL, SHEETS_*, DB_PATH, ...).

EXAMPLES:
  # Submit two tasks for today
  tasklog submit --name "Jane Doe" -t "Standup=0.5" -t "Code review=2"

  # Show the last submissions
  tasklog history

  # Export the journal
  tasklog export --format xlsx --out tasklog.xlsx`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.dbPath, "db", "", "journal database path (default: DB_PATH or tasklog.db)")

	cmd.AddCommand(
		newSubmitCmd(opts),
		newHistoryCmd(opts),
		newExportCmd(opts),
		newMigrateCmd(opts),
		newVersionCmd(),
	)
	return cmd
}

// Execute runs the root command
func Execute() error {
	return newRootCmd().Execute()
}

// loadConfig reads the environment and applies flag overrides.
func (o *rootOptions) loadConfig() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, err
	}
	if o.dbPath != "" {
		cfg.DBPath = o.dbPath
	}
	return cfg, nil
}

// openJournal opens and migrates the journal database.
func openJournal(ctx context.Context, path string) (*sqliteadapter.Repository, error) {
	repo, err := sqliteadapter.New(path)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	if err := repo.Migrate(ctx); err != nil {
		repo.Close()
		return nil, fmt.Errorf("migrate journal: %w", err)
	}
	return repo, nil
}
