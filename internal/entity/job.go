package entity

import (
	"time"

	"github.com/google/uuid"
)

// Job represents one processing run over one document + one job description.
// Jobs are created once at the start of processing and never mutated.
type Job struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	PDFFilename    string    `json:"pdf_filename"`
	JobDescription string    `json:"job_description"`
	CreatedAt      time.Time `json:"created_at"`
}
