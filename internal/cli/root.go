package cli

import (
	"github.com/spf13/cobra"
)

var (
	flagDebug    bool
	flagJSONLogs bool

	rootCmd = &cobra.Command{
		Use:   "resume-ranker",
		Short: "Analyze multi-resume PDFs and rank candidates against a job description",
		Long: `resume-ranker takes a single PDF containing many resumes, OCRs it page by
page, lets you mark where each resume starts and ends, then extracts and
scores every candidate against a job description. Results are stored per job
and can be listed, filtered and exported as CSV or XLSX.`,
		SilenceUsage:  true,
		SilenceErrors: false,
	}
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagDebug, "debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolVarP(&flagJSONLogs, "json-logs", "j", false, "json format for logging")
}
