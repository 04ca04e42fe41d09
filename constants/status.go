package constants

// GroupStatus is the canonical outcome for one resume group in a batch run.
type GroupStatus string

// Stable values (reported in summaries and stored in logs).
const (
	GroupStatusPending   GroupStatus = "PENDING"   // not yet processed
	GroupStatusSucceeded GroupStatus = "SUCCEEDED" // extraction + scoring + persistence completed
	GroupStatusFailed    GroupStatus = "FAILED"    // terminal failure at any step
)

// PipelineStep identifies the step a group failure is attributed to.
type PipelineStep string

const (
	StepOCR         PipelineStep = "OCR"
	StepExtraction  PipelineStep = "EXTRACTION"
	StepScoring     PipelineStep = "SCORING"
	StepPersistence PipelineStep = "PERSISTENCE"
)
