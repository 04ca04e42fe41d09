package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/hireflow/resume-ranker/constants"
	"github.com/hireflow/resume-ranker/internal/common"
	"github.com/hireflow/resume-ranker/internal/ocr"
	"github.com/hireflow/resume-ranker/internal/pagestore"
	"github.com/hireflow/resume-ranker/internal/pipeline"
)

var (
	flagJobName  string
	flagJDText   string
	flagJDFile   string
	flagLocalOCR bool

	processCmd = &cobra.Command{
		Use:   "process <pdf>",
		Short: "OCR a multi-resume PDF, define resume boundaries and rank candidates",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProcess(cmd.Context(), args[0])
		},
	}
)

func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().StringVarP(&flagJobName, "name", "n", "", "job name (default <pdf-stem>_<timestamp>)")
	processCmd.Flags().StringVar(&flagJDText, "job-description", "", "job description text")
	processCmd.Flags().StringVarP(&flagJDFile, "job-description-file", "f", "", "file containing the job description")
	processCmd.Flags().BoolVar(&flagLocalOCR, "local-text", false, "use embedded PDF text instead of the OCR service (scanned pages will come out empty)")
}

func runProcess(ctx context.Context, pdfPath string) error {
	app, err := newApp(flagDebug, flagJSONLogs)
	if err != nil {
		return err
	}
	if !flagLocalOCR {
		if app.Config.OCR.APIKey == "" {
			return common.NewAppError("CONFIG_ERROR", "MISTRAL_API_KEY is required (or pass --local-text)", common.ErrInvalidInput)
		}
	}
	if err := validateAIKey(app); err != nil {
		return err
	}

	raw, err := os.ReadFile(pdfPath)
	if err != nil {
		return fmt.Errorf("read pdf: %w", err)
	}
	doc, err := pagestore.LoadDocument(filepath.Base(pdfPath), raw)
	if err != nil {
		return err
	}
	fmt.Printf("Loaded %s: %d pages\n", doc.Filename, doc.PageCount)

	texts, err := ocrPages(ctx, app, doc, raw)
	if err != nil {
		return err
	}
	if err := doc.SetOCRText(texts); err != nil {
		return err
	}

	previews := pagestore.NewPreviewCache(50, func(d *pagestore.Document, page int) (string, error) {
		if p, ok := d.Page(page); ok && strings.TrimSpace(p.Markdown) != "" {
			return p.Markdown, nil
		}
		return d.LocalPageText(page)
	})

	groups, skipped, err := runStepper(doc, previews)
	if err != nil {
		return err
	}
	if len(groups) == 0 {
		fmt.Println("No resume groups defined, nothing to analyze.")
		return nil
	}
	fmt.Printf("\nDefined %d resume(s), skipped %d page(s).\n", len(groups), len(skipped))

	name, err := resolveJobName(doc.Filename)
	if err != nil {
		return err
	}
	jd, err := resolveJobDescription()
	if err != nil {
		return err
	}

	job, err := app.Jobs.Create(ctx, name, doc.Filename, jd)
	if err != nil {
		return err
	}

	extractor, scorer, err := app.newAssistants(ctx)
	if err != nil {
		return err
	}
	orch := pipeline.NewOrchestrator(extractor, scorer, app.Candidates, app.Logger)

	bar := newProgressBar(len(groups), "Analyzing resumes")
	summary, err := orch.Run(ctx, job, groups, doc.Texts(), func(completed, total int, last pipeline.GroupResult) {
		_ = bar.Add(1)
	})
	if err != nil {
		return err
	}
	fmt.Println()

	printSummary(summary)

	ranked, err := app.Candidates.ListByJob(ctx, job.ID)
	if err != nil {
		return err
	}
	fmt.Println()
	renderCandidates(os.Stdout, ranked)
	fmt.Printf("\nStored under job %q. Use 'resume-ranker export %s' to export.\n", job.Name, job.Name)
	return nil
}

// ocrPages produces per-page markdown, either via the OCR service or from
// the PDF's embedded text layer.
func ocrPages(ctx context.Context, app *App, doc *pagestore.Document, raw []byte) ([]string, error) {
	if flagLocalOCR {
		texts := make([]string, doc.PageCount)
		for i := 0; i < doc.PageCount; i++ {
			t, err := doc.LocalPageText(i)
			if err != nil {
				return nil, err
			}
			texts[i] = t
		}
		return texts, nil
	}

	client := ocr.NewMistralClient(ocr.MistralConfig{
		APIKey:  app.Config.OCR.APIKey,
		BaseURL: app.Config.OCR.BaseURL,
		Model:   app.Config.OCR.Model,
		Timeout: app.Config.OCR.Timeout,
	}, app.Logger)

	stop := make(chan struct{})
	go spin(newSpinner("Running OCR"), stop)
	texts, err := client.ProcessPDF(ctx, doc.Filename, raw)
	close(stop)
	fmt.Println()
	if err != nil {
		return nil, err
	}
	return texts, nil
}

func validateAIKey(app *App) error {
	ai := app.Config.AI
	if ai.Provider == constants.ProviderGemini && ai.GeminiKey == "" {
		return common.NewAppError("CONFIG_ERROR", "GEMINI_API_KEY is required", common.ErrInvalidInput)
	}
	if ai.Provider != constants.ProviderGemini && ai.OpenAIKey == "" {
		return common.NewAppError("CONFIG_ERROR", "OPENAI_API_KEY is required", common.ErrInvalidInput)
	}
	return nil
}

func resolveJobName(pdfFilename string) (string, error) {
	if flagJobName != "" {
		return flagJobName, nil
	}
	prompt := promptui.Prompt{
		Label:   "Job name",
		Default: defaultJobName(pdfFilename, time.Now()),
	}
	name, err := prompt.Run()
	if err != nil {
		return "", fmt.Errorf("job name prompt: %w", err)
	}
	return strings.TrimSpace(name), nil
}

func resolveJobDescription() (string, error) {
	if flagJDText != "" {
		return flagJDText, nil
	}
	if flagJDFile != "" {
		b, err := os.ReadFile(flagJDFile)
		if err != nil {
			return "", fmt.Errorf("read job description file: %w", err)
		}
		return string(b), nil
	}
	prompt := promptui.Prompt{Label: "Job description (one line, or use --job-description-file)"}
	jd, err := prompt.Run()
	if err != nil {
		return "", fmt.Errorf("job description prompt: %w", err)
	}
	return strings.TrimSpace(jd), nil
}

// defaultJobName derives a job name from the PDF filename and a timestamp.
func defaultJobName(pdfFilename string, now time.Time) string {
	stem := strings.TrimSuffix(pdfFilename, filepath.Ext(pdfFilename))
	stem = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, stem)
	return fmt.Sprintf("%s_%s", stem, now.Format("20060102_1504"))
}

func printSummary(summary *pipeline.Summary) {
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)

	fmt.Println()
	_, _ = green.Printf("✔ %d succeeded", summary.Succeeded)
	if summary.Failed > 0 {
		fmt.Print("   ")
		_, _ = red.Printf("✘ %d failed", summary.Failed)
	}
	fmt.Println()

	for _, r := range summary.Results {
		if r.Status != constants.GroupStatusFailed {
			continue
		}
		_, _ = red.Printf("  pages %s failed at %s: %v\n", r.PageRange, r.Step, r.Err)
	}
}
