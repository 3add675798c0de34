package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Vishal-AsthraMedtech/daily-task-tracker/internal/adapters"
	"github.com/Vishal-AsthraMedtech/daily-task-tracker/internal/domain"
	"github.com/Vishal-AsthraMedtech/daily-task-tracker/internal/form"
	"github.com/Vishal-AsthraMedtech/daily-task-tracker/internal/submit"
)

type submitOptions struct {
	name  string
	date  string
	tasks []string
}

func newSubmitCmd(root *rootOptions) *cobra.Command {
	opts := &submitOptions{}
	cmd := &cobra.Command{
		Use:   "submit --name NAME [--date YYYY-MM-DD] --task DESCRIPTION=HOURS...",
		Short: "Submit the day's tasks",
		Long: `Submit one record per task to the configured sink.

Every task is sent concurrently and the command waits for all of them. It
exits non-zero if any send failed; the journal keeps the error text.

EXAMPLES:
  tasklog submit --name "Jane Doe" --date 2024-05-01 -t "Standup=0.5" -t "Release notes=3"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSubmit(cmd, root, opts)
		},
	}
	cmd.Flags().StringVar(&opts.name, "name", "", "employee name")
	cmd.Flags().StringVar(&opts.date, "date", time.Now().Format("2006-01-02"), "date worked")
	cmd.Flags().StringArrayVarP(&opts.tasks, "task", "t", nil, `task as "description=hours" (repeatable)`)
	return cmd
}

func runSubmit(cmd *cobra.Command, root *rootOptions, opts *submitOptions) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	store, err := buildStore(opts)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	log := cfg.Logger()
	repo, err := openJournal(ctx, cfg.DBPath)
	if err != nil {
		return err
	}
	defer repo.Close()

	sink, err := adapters.NewSink(ctx, cfg, log)
	if err != nil {
		return err
	}
	coord := submit.NewCoordinator(sink, store,
		submit.WithLogger(log),
		submit.WithJournal(repo),
		submit.WithDispatchTimeout(cfg.DispatchTimeout),
	)
	v := form.Validator{Strict: cfg.StrictHours}
	session := submit.NewSession(store, coord, v)

	emp, tasks := store.Snapshot()
	outcome, err := session.Submit(ctx)
	if errors.Is(err, domain.ErrInvalidForm) {
		for _, p := range v.Problems(emp, tasks) {
			fmt.Fprintln(cmd.ErrOrStderr(), "  -", p)
		}
		return err
	}
	if err != nil {
		return err
	}

	if outcome != domain.OutcomeSuccess {
		return fmt.Errorf("submission failed for %s on %s; see 'tasklog history'", emp.EmployeeName, emp.Date)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Submitted %d task(s) for %s on %s (%s hours)\n",
		len(tasks), emp.EmployeeName, emp.Date, strconv.FormatFloat(form.TotalHours(tasks), 'f', -1, 64))
	return nil
}

// buildStore fills a fresh form from the flags. The first task reuses the
// store's initial entry.
func buildStore(opts *submitOptions) (*form.Store, error) {
	store := form.NewStore()
	if err := store.SetEmployeeField(domain.FieldEmployeeName, opts.name); err != nil {
		return nil, err
	}
	if err := store.SetEmployeeField(domain.FieldDate, opts.date); err != nil {
		return nil, err
	}
	_, initial := store.Snapshot()
	for i, raw := range opts.tasks {
		desc, hours, err := parseTask(raw)
		if err != nil {
			return nil, err
		}
		id := initial[0].ID
		if i > 0 {
			id = store.AddTask().ID
		}
		if err := store.SetTaskField(id, domain.FieldDescription, desc); err != nil {
			return nil, err
		}
		if err := store.SetTaskField(id, domain.FieldHoursWorked, hours); err != nil {
			return nil, err
		}
	}
	return store, nil
}

// parseTask splits "description=hours" at the last '=' so descriptions may
// contain one.
func parseTask(s string) (desc, hours string, err error) {
	i := strings.LastIndex(s, "=")
	if i < 0 {
		return "", "", fmt.Errorf("task %q: want \"description=hours\"", s)
	}
	return strings.TrimSpace(s[:i]), strings.TrimSpace(s[i+1:]), nil
}
