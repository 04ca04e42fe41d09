package assistant

import "strings"

// BuildExtractionSystemPrompt composes the extraction instruction context.
func BuildExtractionSystemPrompt() string {
	parts := []string{
		"You are a resume parser. Return ONLY JSON that matches the provided JSON Schema.",
		"The input is OCR markdown of one candidate's resume, possibly spanning several pages.",
		"Extract the candidate's name, email, phone, a short professional summary,",
		"total years of professional experience as a number,",
		"work experience entries (title, company, start, end, description),",
		"education entries (degree, institution, year), skills, and certifications.",
		"Use empty lists for sections the resume does not contain.",
		"Never output null. If a field is not present, omit it.",
	}
	return strings.Join(parts, " ")
}

// BuildScoringSystemPrompt composes the scoring instruction context.
func BuildScoringSystemPrompt() string {
	parts := []string{
		"You are a recruiting assistant. Return ONLY JSON that matches the provided JSON Schema.",
		"Rate the candidate against the job description:",
		"'fit_score' (0-100) for how well the candidate matches the role,",
		"'quality_score' (0-100) for overall resume strength independent of the role,",
		"'matched_skills' and 'missing_skills' relative to the job description,",
		"and a concise 'reasoning' of a few sentences.",
		"Use the provided current date when judging recency and durations.",
	}
	return strings.Join(parts, " ")
}

// BuildScoringUserPrompt packages the extracted resume, job description and
// current-date context for the scorer.
func BuildScoringUserPrompt(req ScoreRequest) string {
	var b strings.Builder
	b.WriteString("Current Date: ")
	b.WriteString(req.CurrentDate)
	b.WriteString("\n\nCandidate Data:\n```json\n")
	b.WriteString(MustJSON(req.Resume))
	b.WriteString("\n```\n\nJob Description:\n```\n")
	b.WriteString(req.JobDescription)
	b.WriteString("\n```")
	return b.String()
}
