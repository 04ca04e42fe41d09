// Package pagestore owns the per-document page state for one processing
// session: raw PDF bytes, per-page OCR markdown, and memoized page previews.
// A document's pages are immutable once OCR text is attached; uploading a
// new PDF replaces the whole document and invalidates the preview cache.
package pagestore

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/hireflow/resume-ranker/internal/common"
)

// Page is one PDF page after OCR. Markdown is the cleaned OCR text.
type Page struct {
	Index    int
	Markdown string
}

// Document is the processing session's source PDF plus its OCR'd pages.
type Document struct {
	Filename  string
	Hash      string // sha256 of the raw bytes, hex
	PageCount int

	raw   []byte
	pages []Page
}

// LoadDocument parses the PDF enough to count pages and fingerprints the
// bytes. OCR text is attached separately once the OCR service returns.
func LoadDocument(filename string, raw []byte) (*Document, error) {
	if filename == "" || len(raw) == 0 {
		return nil, common.NewAppError("DOC_EMPTY", "pdf name or bytes missing", common.ErrInvalidInput)
	}
	r, err := pdf.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return nil, common.NewAppError("DOC_PARSE", "failed to load pdf", err)
	}
	n := r.NumPage()
	if n == 0 {
		return nil, common.NewAppError("DOC_NO_PAGES", "pdf has 0 pages", common.ErrInvalidInput)
	}
	return NewDocument(filename, raw, n), nil
}

// NewDocument builds a document with a known page count.
func NewDocument(filename string, raw []byte, pageCount int) *Document {
	sum := sha256.Sum256(raw)
	return &Document{
		Filename:  filename,
		Hash:      hex.EncodeToString(sum[:]),
		PageCount: pageCount,
		raw:       raw,
	}
}

// SetOCRText attaches per-page OCR markdown. The page list length must match
// the document's page count; pages are immutable afterwards.
func (d *Document) SetOCRText(texts []string) error {
	if len(d.pages) > 0 {
		return common.NewAppError("DOC_IMMUTABLE", "ocr text already attached", common.ErrInvalidInput)
	}
	if len(texts) != d.PageCount {
		return common.NewAppError("DOC_PAGE_MISMATCH",
			fmt.Sprintf("ocr returned %d pages, document has %d", len(texts), d.PageCount),
			common.ErrValidation)
	}
	d.pages = make([]Page, len(texts))
	for i, t := range texts {
		d.pages[i] = Page{Index: i, Markdown: t}
	}
	return nil
}

// HasOCRText reports whether OCR output has been attached.
func (d *Document) HasOCRText() bool { return len(d.pages) > 0 }

// Page returns the OCR'd page at index.
func (d *Document) Page(index int) (Page, bool) {
	if index < 0 || index >= len(d.pages) {
		return Page{}, false
	}
	return d.pages[index], true
}

// Texts returns all pages' markdown in page order.
func (d *Document) Texts() []string {
	out := make([]string, len(d.pages))
	for i, p := range d.pages {
		out[i] = p.Markdown
	}
	return out
}

// LocalPageText extracts a page's text locally, without the OCR service.
// Used for stepper previews and as a degraded fallback when the service is
// unreachable. Index is 0-based.
func (d *Document) LocalPageText(index int) (string, error) {
	if index < 0 || index >= d.PageCount {
		return "", common.NewAppError("DOC_PAGE_OOB",
			fmt.Sprintf("page %d out of range", index), common.ErrInvalidInput)
	}
	r, err := pdf.NewReader(bytes.NewReader(d.raw), int64(len(d.raw)))
	if err != nil {
		return "", common.NewAppError("DOC_PARSE", "failed to load pdf", err)
	}
	p := r.Page(index + 1) // ledongthuc pages are 1-based
	if p.V.IsNull() {
		return "", nil
	}
	text, err := p.GetPlainText(nil)
	if err != nil {
		return "", common.NewAppError("DOC_PAGE_TEXT", "failed to extract page text", err)
	}
	return strings.TrimSpace(text), nil
}
