// Package ocr turns an uploaded PDF into per-page markdown via an external
// OCR service. The service is treated as a black box behind the Client
// interface; the concrete implementation speaks the Mistral OCR API.
package ocr

import "context"

// Client extracts text from a whole PDF document, one markdown string per
// page in page order.
type Client interface {
	ProcessPDF(ctx context.Context, filename string, pdf []byte) ([]string, error)
}
