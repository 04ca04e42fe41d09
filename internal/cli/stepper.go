package cli

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"

	"github.com/hireflow/resume-ranker/internal/boundary"
	"github.com/hireflow/resume-ranker/internal/pagestore"
)

const (
	stepInclude = "Include this page in the current resume"
	stepEndHere = "End the current resume at this page"
	stepSkip    = "Skip this page (cover letter, blank, separator)"
	stepBack    = "Back (undo last decision)"
	stepPreview = "Show full page text"

	previewLines = 12
	previewWidth = 100
)

// runStepper walks the user through every page of the document and returns
// the finalized resume groups plus the skipped pages.
func runStepper(doc *pagestore.Document, previews *pagestore.PreviewCache) ([]boundary.ResumeGroup, []int, error) {
	session, err := boundary.NewSession(doc.PageCount)
	if err != nil {
		return nil, nil, err
	}

	bold := color.New(color.Bold)
	faint := color.New(color.Faint)

	for !session.Done() {
		page := session.Cursor()

		_, _ = bold.Printf("\nPage %d of %d", page+1, doc.PageCount)
		if n := session.PendingPages(); n > 0 {
			fmt.Printf("  (current resume so far: pages %d-%d)", session.PendingStart()+1, page)
		}
		fmt.Println()

		preview, err := previews.Get(doc, page)
		if err != nil {
			_, _ = faint.Printf("  [preview unavailable: %v]\n", err)
		} else {
			_, _ = faint.Println(clipPreview(preview, previewLines))
		}

		prompt := promptui.Select{
			Label: fmt.Sprintf("Page %d", page+1),
			Items: []string{stepInclude, stepEndHere, stepSkip, stepBack, stepPreview},
			Size:  5,
		}
		_, choice, err := prompt.Run()
		if err != nil {
			return nil, nil, fmt.Errorf("boundary prompt: %w", err)
		}

		switch choice {
		case stepInclude:
			err = session.Include()
		case stepEndHere:
			err = session.EndHere()
		case stepSkip:
			err = session.Skip()
		case stepBack:
			session.Back()
		case stepPreview:
			if full, pErr := previews.Get(doc, page); pErr == nil {
				fmt.Println(full)
			}
		}
		if err != nil {
			return nil, nil, err
		}
	}

	groups, err := session.Finalize()
	if err != nil {
		return nil, nil, err
	}
	return groups, session.SkippedPages(), nil
}

// clipPreview keeps the first lines of a page preview, trimming long lines.
func clipPreview(text string, maxLines int) string {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	clipped := false
	if len(lines) > maxLines {
		lines = lines[:maxLines]
		clipped = true
	}
	for i, l := range lines {
		if len(l) > previewWidth {
			lines[i] = l[:previewWidth-1] + "…"
		}
		lines[i] = "  " + lines[i]
	}
	if clipped {
		lines = append(lines, "  …")
	}
	return strings.Join(lines, "\n")
}
