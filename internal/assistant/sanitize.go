package assistant

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// StripCodeFence removes a surrounding markdown code fence (```json ... ```)
// from an assistant reply. Models wrap JSON this way often enough that the
// strip runs unconditionally before parsing.
func StripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// resume keys the schema knows; anything else is dropped by the sanitizer.
var resumeKeys = map[string]struct{}{
	"name": {}, "email": {}, "phone": {}, "summary": {}, "years_experience": {},
	"experience": {}, "education": {}, "skills": {}, "certifications": {},
}

// SanitizeResumeJSON applies a lenient cleanup pass so a near-miss reply can
// still validate: unknown top-level keys are removed, null optionals dropped,
// numeric strings for years_experience coerced, and required list fields
// defaulted to empty lists when absent. Returns the cleaned JSON and the
// keys that were touched.
func SanitizeResumeJSON(raw []byte) ([]byte, []string, error) {
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, nil, err
	}

	var touched []string
	for k, v := range m {
		if _, ok := resumeKeys[k]; !ok {
			delete(m, k)
			touched = append(touched, k+"(unknown)")
			continue
		}
		if v == nil {
			delete(m, k)
			touched = append(touched, k+"(null)")
		}
	}

	if v, ok := m["years_experience"].(string); ok {
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			m["years_experience"] = f
			touched = append(touched, "years_experience(coerced)")
		} else {
			delete(m, "years_experience")
			touched = append(touched, "years_experience(dropped)")
		}
	}

	for _, k := range []string{"experience", "education", "skills"} {
		if _, ok := m[k]; !ok {
			m[k] = []any{}
			touched = append(touched, k+"(defaulted)")
		}
	}

	out, err := json.Marshal(m)
	if err != nil {
		return nil, touched, err
	}
	return out, touched, nil
}

// SanitizeScoreJSON cleans a scoring reply: unknown keys removed, numeric
// strings coerced, scores clamped into 0..100, list fields defaulted.
func SanitizeScoreJSON(raw []byte) ([]byte, []string, error) {
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, nil, err
	}

	allowed := map[string]struct{}{
		"fit_score": {}, "quality_score": {}, "matched_skills": {}, "missing_skills": {}, "reasoning": {},
	}

	var touched []string
	for k := range m {
		if _, ok := allowed[k]; !ok {
			delete(m, k)
			touched = append(touched, k+"(unknown)")
		}
	}

	coerceScore := func(k string) {
		switch t := m[k].(type) {
		case string:
			if f, err := strconv.ParseFloat(strings.TrimSpace(t), 64); err == nil {
				m[k] = clamp(f)
				touched = append(touched, k+"(coerced)")
			} else {
				delete(m, k)
				touched = append(touched, k+"(dropped)")
			}
		case float64:
			if t < 0 || t > 100 {
				m[k] = clamp(t)
				touched = append(touched, k+"(clamped)")
			}
		case nil:
			delete(m, k)
			touched = append(touched, k+"(null)")
		}
	}
	coerceScore("fit_score")
	coerceScore("quality_score")

	for _, k := range []string{"matched_skills", "missing_skills"} {
		if _, ok := m[k]; !ok {
			m[k] = []any{}
			touched = append(touched, k+"(defaulted)")
		}
	}
	if _, ok := m["reasoning"]; !ok {
		m["reasoning"] = ""
		touched = append(touched, "reasoning(defaulted)")
	}

	out, err := json.Marshal(m)
	if err != nil {
		return nil, touched, err
	}
	return out, touched, nil
}

func clamp(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 100 {
		return 100
	}
	return f
}

// MustJSON renders v for embedding into a prompt.
func MustJSON(v any) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}
