package cli

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Vishal-AsthraMedtech/daily-task-tracker/internal/domain"
)

func newHistoryCmd(root *rootOptions) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List journalled submissions, newest first",
		Long: `List the submission journal.

A "success" row means every record was sent without a local error. The sink
does not confirm receipt, so it is not proof the rows were written.

EXAMPLES:
  tasklog history
  tasklog history --limit 0   # everything`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}
			repo, err := openJournal(cmd.Context(), cfg.DBPath)
			if err != nil {
				return err
			}
			defer repo.Close()

			entries, err := repo.ListCycles(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No submissions yet.")
				return nil
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "BATCH\tEMPLOYEE\tDATE\tTASKS\tHOURS\tOUTCOME\tSUBMITTED\tERROR")
			for _, e := range entries {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t%s\t%s\t%s\n",
					e.BatchID,
					e.Employee.EmployeeName,
					e.Employee.Date,
					e.RecordCount,
					strconv.FormatFloat(e.TotalHours, 'f', -1, 64),
					e.Outcome,
					e.SubmittedAt.UTC().Format(domain.TimestampLayout),
					e.Error,
				)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of submissions shown (0 = all)")
	return cmd
}
