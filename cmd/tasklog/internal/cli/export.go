package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Vishal-AsthraMedtech/daily-task-tracker/internal/adapters/pdf"
	"github.com/Vishal-AsthraMedtech/daily-task-tracker/internal/adapters/xlsx"
	"github.com/Vishal-AsthraMedtech/daily-task-tracker/internal/domain"
	"github.com/Vishal-AsthraMedtech/daily-task-tracker/internal/ports"
)

type exportOptions struct {
	format string
	out    string
	batch  string
}

func newExportCmd(root *rootOptions) *cobra.Command {
	opts := &exportOptions{}
	cmd := &cobra.Command{
		Use:   "export --format pdf|xlsx --out FILE [--batch ID]",
		Short: "Export the journal as a timesheet PDF or a workbook",
		Long: `Export journalled submissions.

  pdf   timesheet for one batch (the newest one unless --batch is given)
  xlsx  workbook with every batch, or only --batch

EXAMPLES:
  tasklog export --format pdf --out today.pdf
  tasklog export --format xlsx --out tasklog.xlsx`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, root, opts)
		},
	}
	cmd.Flags().StringVar(&opts.format, "format", "xlsx", "pdf or xlsx")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "output file")
	cmd.Flags().StringVar(&opts.batch, "batch", "", "batch id")
	cmd.MarkFlagRequired("out")
	return cmd
}

func runExport(cmd *cobra.Command, root *rootOptions, opts *exportOptions) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	repo, err := openJournal(ctx, cfg.DBPath)
	if err != nil {
		return err
	}
	defer repo.Close()

	var buf bytes.Buffer
	switch opts.format {
	case "pdf":
		e, err := findBatch(ctx, repo, opts.batch)
		if err != nil {
			return err
		}
		if err := pdf.GenerateTimesheet(e, &buf); err != nil {
			return err
		}
	case "xlsx":
		if opts.batch == "" {
			err = xlsx.ExportJournal(ctx, repo, &buf)
		} else {
			var e *domain.JournalEntry
			if e, err = findBatch(ctx, repo, opts.batch); err == nil {
				err = xlsx.Export([]domain.JournalEntry{*e}, &buf)
			}
		}
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown format %q (want pdf or xlsx)", opts.format)
	}

	if err := os.WriteFile(opts.out, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", opts.out, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", opts.out)
	return nil
}

// findBatch loads the batch with id, or the newest one when id is empty.
func findBatch(ctx context.Context, journal ports.JournalRepository, id string) (*domain.JournalEntry, error) {
	if id == "" {
		newest, err := journal.ListCycles(ctx, 1)
		if err != nil {
			return nil, err
		}
		if len(newest) == 0 {
			return nil, errors.New("journal is empty")
		}
		id = newest[0].BatchID
	}
	return journal.GetCycle(ctx, id)
}
