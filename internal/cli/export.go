package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/hireflow/resume-ranker/internal/common"
	"github.com/hireflow/resume-ranker/internal/export"
)

var (
	flagFormat string
	flagOut    string

	exportCmd = &cobra.Command{
		Use:   "export <name>",
		Short: "Export a job's ranked candidates as CSV or XLSX",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd.Context(), args[0])
		},
	}
)

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVar(&flagFormat, "format", "csv", "output format: csv or xlsx")
	exportCmd.Flags().StringVarP(&flagOut, "out", "o", "", "output file (default <job>_<timestamp>.<format> in EXPORT_DIR)")
	exportCmd.Flags().Float64Var(&flagMinFit, "min-fit", 0, "minimum fit score")
	exportCmd.Flags().Float64Var(&flagMinYears, "min-years", 0, "minimum years of experience")
	exportCmd.Flags().StringVar(&flagSearch, "search", "", "match on name, email or skills")
}

func runExport(ctx context.Context, name string) error {
	app, err := newApp(flagDebug, flagJSONLogs)
	if err != nil {
		return err
	}

	job, err := app.Jobs.GetByName(ctx, name)
	if err != nil {
		return err
	}

	filter := export.Filter{MinFitScore: flagMinFit, MinYears: flagMinYears, Search: flagSearch}
	format := strings.ToLower(flagFormat)

	var data []byte
	switch format {
	case "csv":
		data, err = app.Exports.ExportCSV(ctx, job.ID, filter)
	case "xlsx":
		data, err = app.Exports.ExportXLSX(ctx, job.ID, filter)
	default:
		return common.NewAppError("EXPORT_FORMAT",
			fmt.Sprintf("unsupported format %q, use csv or xlsx", flagFormat), common.ErrInvalidInput)
	}
	if err != nil {
		return err
	}

	out := flagOut
	if out == "" {
		filename := fmt.Sprintf("%s_%s.%s", job.Name, time.Now().Format("20060102_1504"), format)
		out = filepath.Join(app.Config.Export.OutputDir, filename)
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("write export: %w", err)
	}

	fmt.Printf("Exported job %q to %s\n", job.Name, out)
	return nil
}
