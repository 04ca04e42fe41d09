package boundary

import (
	"fmt"
	"strings"
)

// GroupText joins the OCR markdown of the group's member pages in ascending
// page order, framing each page with 1-based markers so the assistants can
// tell page breaks apart. texts is indexed by page; missing or empty pages
// contribute a warning marker instead of silently vanishing.
func GroupText(g ResumeGroup, texts []string) string {
	parts := make([]string, 0, len(g.Pages))
	for _, p := range g.Pages {
		num := p + 1
		if p < 0 || p >= len(texts) {
			parts = append(parts, fmt.Sprintf("--- Error: Page %d not found ---", num))
			continue
		}
		content := strings.TrimSpace(texts[p])
		if content == "" {
			parts = append(parts, fmt.Sprintf("--- Warning: Page %d content is empty ---", num))
			continue
		}
		parts = append(parts, fmt.Sprintf("--- Start Page %d ---\n%s\n--- End Page %d ---", num, content, num))
	}
	return strings.Join(parts, "\n\n")
}
