package analysis

import "context"

// Analysis is the structured verdict for one resume against one job.
type Analysis struct {
	MatchScore    int
	ATSScore      int
	SkillsMatched []string
	MissingSkills []string
	Strengths     []string
	Weaknesses    []string
	Suggestions   []string
}

// Provider analyzes resume text against a job. Implementations: the Gemini
// client and the deterministic fallback. The screening pipeline only ever
// sees the Resilient wrapper, which never returns an error.
type Provider interface {
	AnalyzeResume(ctx context.Context, resumeText, jobText string, requiredSkills []string) (Analysis, error)
}
