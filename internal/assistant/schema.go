package assistant

// BuildResumeJSONSchema returns the JSON-Schema (draft 2020-12 subset) for
// the extraction response, as a generic map. It is sent to the assistant as
// a structured-output constraint and used locally to validate the reply.
func BuildResumeJSONSchema() map[string]any {
	experience := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title":       map[string]any{"type": "string"},
			"company":     map[string]any{"type": "string"},
			"start":       map[string]any{"type": "string"},
			"end":         map[string]any{"type": "string"},
			"description": map[string]any{"type": "string"},
		},
		"required": []string{"title", "company"},
	}
	education := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"degree":      map[string]any{"type": "string"},
			"institution": map[string]any{"type": "string"},
			"year":        map[string]any{"type": "string"},
		},
		"required": []string{"degree", "institution"},
	}

	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"name":             map[string]any{"type": "string"},
			"email":            map[string]any{"type": "string"},
			"phone":            map[string]any{"type": "string"},
			"summary":          map[string]any{"type": "string"},
			"years_experience": map[string]any{"type": "number", "minimum": 0.0},
			"experience":       map[string]any{"type": "array", "items": experience},
			"education":        map[string]any{"type": "array", "items": education},
			"skills":           map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			"certifications":   map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
		},
		"required": []string{"name", "email", "experience", "education", "skills"},
	}
}

// BuildScoreJSONSchema returns the JSON-Schema for the scoring response.
// Fit score is bounded to 0..100.
func BuildScoreJSONSchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"fit_score":      map[string]any{"type": "number", "minimum": 0.0, "maximum": 100.0},
			"quality_score":  map[string]any{"type": "number", "minimum": 0.0, "maximum": 100.0},
			"matched_skills": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			"missing_skills": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			"reasoning":      map[string]any{"type": "string"},
		},
		"required": []string{"fit_score", "quality_score", "matched_skills", "missing_skills", "reasoning"},
	}
}
