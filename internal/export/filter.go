package export

import (
	"strings"

	"github.com/hireflow/resume-ranker/internal/entity"
)

// Filter narrows a ranked candidate list before rendering or export.
// Zero values mean "no constraint".
type Filter struct {
	MinFitScore float64
	MinYears    float64
	Search      string // case-insensitive match on name, email and skills
}

// Apply returns the candidates passing the filter, preserving order.
func (f Filter) Apply(in []*entity.Candidate) []*entity.Candidate {
	needle := strings.ToLower(strings.TrimSpace(f.Search))
	out := make([]*entity.Candidate, 0, len(in))
	for _, c := range in {
		if c.FitScore < f.MinFitScore {
			continue
		}
		if c.YearsExperience < f.MinYears {
			continue
		}
		if needle != "" && !matches(c, needle) {
			continue
		}
		out = append(out, c)
	}
	return out
}

func matches(c *entity.Candidate, needle string) bool {
	if strings.Contains(strings.ToLower(c.Name), needle) {
		return true
	}
	if strings.Contains(strings.ToLower(c.Email), needle) {
		return true
	}
	for _, s := range c.Skills {
		if strings.Contains(strings.ToLower(s), needle) {
			return true
		}
	}
	return false
}
