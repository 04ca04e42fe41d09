package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/hireflow/resume-ranker/internal/export"
)

var (
	flagMinFit   float64
	flagMinYears float64
	flagSearch   string
	flagForce    bool

	jobsCmd = &cobra.Command{
		Use:   "jobs",
		Short: "Browse and manage stored analysis jobs",
	}

	jobsListCmd = &cobra.Command{
		Use:   "list",
		Short: "List stored jobs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runJobsList(cmd.Context())
		},
	}

	jobsShowCmd = &cobra.Command{
		Use:   "show <name>",
		Short: "Show a job's ranked candidates",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJobsShow(cmd.Context(), args[0])
		},
	}

	jobsDeleteCmd = &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a job and all of its candidates",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJobsDelete(cmd.Context(), args[0])
		},
	}
)

func init() {
	rootCmd.AddCommand(jobsCmd)
	jobsCmd.AddCommand(jobsListCmd, jobsShowCmd, jobsDeleteCmd)

	jobsShowCmd.Flags().Float64Var(&flagMinFit, "min-fit", 0, "minimum fit score")
	jobsShowCmd.Flags().Float64Var(&flagMinYears, "min-years", 0, "minimum years of experience")
	jobsShowCmd.Flags().StringVar(&flagSearch, "search", "", "match on name, email or skills")

	jobsDeleteCmd.Flags().BoolVarP(&flagForce, "force", "y", false, "delete without confirmation")
}

func runJobsList(ctx context.Context) error {
	app, err := newApp(flagDebug, flagJSONLogs)
	if err != nil {
		return err
	}

	jobs, err := app.Jobs.List(ctx)
	if err != nil {
		return err
	}

	counts := make(map[string]int, len(jobs))
	for _, j := range jobs {
		cands, err := app.Candidates.ListByJob(ctx, j.ID)
		if err != nil {
			return err
		}
		counts[j.ID.String()] = len(cands)
	}

	renderJobs(os.Stdout, jobs, counts)
	return nil
}

func runJobsShow(ctx context.Context, name string) error {
	app, err := newApp(flagDebug, flagJSONLogs)
	if err != nil {
		return err
	}

	job, err := app.Jobs.GetByName(ctx, name)
	if err != nil {
		return err
	}
	cands, err := app.Candidates.ListByJob(ctx, job.ID)
	if err != nil {
		return err
	}

	filter := export.Filter{MinFitScore: flagMinFit, MinYears: flagMinYears, Search: flagSearch}
	filtered := filter.Apply(cands)

	fmt.Printf("Job %q  (%s, created %s)\n", job.Name, job.PDFFilename, job.CreatedAt.Format("2006-01-02 15:04"))
	if len(filtered) != len(cands) {
		fmt.Printf("Showing %d of %d candidates.\n", len(filtered), len(cands))
	}
	fmt.Println()
	renderCandidates(os.Stdout, filtered)
	return nil
}

func runJobsDelete(ctx context.Context, name string) error {
	app, err := newApp(flagDebug, flagJSONLogs)
	if err != nil {
		return err
	}

	job, err := app.Jobs.GetByName(ctx, name)
	if err != nil {
		return err
	}
	cands, err := app.Candidates.ListByJob(ctx, job.ID)
	if err != nil {
		return err
	}

	if !flagForce {
		confirm := promptui.Prompt{
			Label:     fmt.Sprintf("Delete job %q and its %d candidate(s)", job.Name, len(cands)),
			IsConfirm: true,
		}
		if _, err := confirm.Run(); err != nil {
			fmt.Println("Aborted.")
			return nil
		}
	}

	if err := app.Jobs.Delete(ctx, job.ID); err != nil {
		return err
	}
	fmt.Printf("Deleted job %q (%d candidate(s) removed).\n", job.Name, len(cands))
	return nil
}
