package assistant

import (
	"fmt"

	"github.com/hireflow/resume-ranker/internal/common"
)

// ValidateOrSanitize validates raw against the schema, and on mismatch runs
// the lenient sanitize pass once and validates again. Returns the JSON that
// validated and the keys the sanitizer touched (nil when the strict pass
// already passed).
func ValidateOrSanitize(schemaMap map[string]any, raw []byte, sanitize func([]byte) ([]byte, []string, error)) ([]byte, []string, error) {
	if err := ValidateJSONAgainstSchema(schemaMap, raw); err == nil {
		return raw, nil, nil
	}
	cleaned, touched, err := sanitize(raw)
	if err != nil {
		return nil, touched, common.StepError(common.ErrValidation, fmt.Errorf("sanitize: %w", err))
	}
	if err := ValidateJSONAgainstSchema(schemaMap, cleaned); err != nil {
		return nil, touched, err
	}
	return cleaned, touched, nil
}
