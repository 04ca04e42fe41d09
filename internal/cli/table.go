package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/hireflow/resume-ranker/internal/entity"
)

// renderCandidates prints a ranked candidate table. The list is assumed to be
// in rank order already.
func renderCandidates(w io.Writer, cands []*entity.Candidate) {
	if len(cands) == 0 {
		fmt.Fprintln(w, "no candidates match")
		return
	}

	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tPAGES\tNAME\tEMAIL\tYEARS\tFIT\tQUALITY\tMATCHED SKILLS")
	for i, c := range cands {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%.1f\t%s\t%.0f\t%s\n",
			i+1,
			c.PageRange,
			orDash(c.Name),
			orDash(c.Email),
			c.YearsExperience,
			colorScore(c.FitScore),
			c.QualityScore,
			clipList(c.MatchedSkills, 4),
		)
	}
	_ = tw.Flush()
}

// renderJobs prints the stored jobs with their candidate counts.
func renderJobs(w io.Writer, jobs []*entity.Job, counts map[string]int) {
	if len(jobs) == 0 {
		fmt.Fprintln(w, "no jobs stored yet")
		return
	}

	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tPDF\tCANDIDATES\tCREATED")
	for _, j := range jobs {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n",
			j.Name, j.PDFFilename, counts[j.ID.String()], j.CreatedAt.Format("2006-01-02 15:04"))
	}
	_ = tw.Flush()
}

func colorScore(score float64) string {
	s := fmt.Sprintf("%.0f", score)
	switch {
	case score >= 75:
		return color.GreenString(s)
	case score >= 50:
		return color.YellowString(s)
	default:
		return color.RedString(s)
	}
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func clipList(items []string, max int) string {
	if len(items) == 0 {
		return "-"
	}
	if len(items) > max {
		return strings.Join(items[:max], ", ") + fmt.Sprintf(" (+%d)", len(items)-max)
	}
	return strings.Join(items, ", ")
}
