package ocr

import (
	"regexp"
	"strings"
)

// OCR output embeds image tags for figures and photos; they carry no text
// and confuse the extraction assistant, so they are stripped per page.
var reImagePlaceholder = regexp.MustCompile(`!\[.*?\]\(.*?\)`)

// StripImagePlaceholders removes markdown image tags ![alt](url) from s.
func StripImagePlaceholders(s string) string {
	return strings.TrimSpace(reImagePlaceholder.ReplaceAllString(s, ""))
}
