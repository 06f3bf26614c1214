package scoring

import (
	"strings"
)

// Version tags the score formula. Stored alongside every computed score so a
// formula change can invalidate cached values lazily.
const Version = 1

// Fixed point weights. They sum to exactly 100 (10+10+10+10 plus twelve
// optional fields at 5 each), so the earned sum is the final percentage and
// the breakdown always adds up to the total.
const (
	pointsFullName = 10
	pointsEmail    = 10
	pointsSkills   = 10
	pointsSummary  = 10
	pointsOptional = 5 // each optional field
)

// ProfileInput is the scorable slice of a candidate profile.
type ProfileInput struct {
	FullName string
	Email    string
	Phone    string
	Location string
	Title    string
	Summary  string

	ExperienceLevel string
	Industry        string

	Degree       string
	FieldOfStudy string
	Institution  string

	PortfolioURL string
	LinkedInURL  string
	GitHubURL    string

	Skills []string

	// nil means never provided; zero years is a valid, scorable value.
	YearsExperience *int
}

type ProfileScore struct {
	Total     int
	Breakdown map[string]int
}

// ComputeProfileScore maps profile completeness to a 0-100 score with a
// per-category breakdown. Pure and deterministic: equal input yields an
// identical result on every call. No field can contribute negative points;
// empty or whitespace-only values earn zero for that field.
func ComputeProfileScore(in ProfileInput) ProfileScore {
	breakdown := map[string]int{
		"identity":   0,
		"contact":    0,
		"skills":     0,
		"summary":    0,
		"experience": 0,
		"education":  0,
		"links":      0,
	}

	if filled(in.FullName) {
		breakdown["identity"] += pointsFullName
	}
	if filled(in.Email) {
		breakdown["identity"] += pointsEmail
	}

	if filled(in.Phone) {
		breakdown["contact"] += pointsOptional
	}
	if filled(in.Location) {
		breakdown["contact"] += pointsOptional
	}

	if hasAnySkill(in.Skills) {
		breakdown["skills"] += pointsSkills
	}

	if filled(in.Summary) {
		breakdown["summary"] += pointsSummary
	}

	if filled(in.Title) {
		breakdown["experience"] += pointsOptional
	}
	if filled(in.ExperienceLevel) {
		breakdown["experience"] += pointsOptional
	}
	if filled(in.Industry) {
		breakdown["experience"] += pointsOptional
	}
	if in.YearsExperience != nil && *in.YearsExperience >= 0 {
		breakdown["experience"] += pointsOptional
	}

	if filled(in.Degree) {
		breakdown["education"] += pointsOptional
	}
	if filled(in.FieldOfStudy) {
		breakdown["education"] += pointsOptional
	}
	if filled(in.Institution) {
		breakdown["education"] += pointsOptional
	}

	if filled(in.PortfolioURL) {
		breakdown["links"] += pointsOptional
	}
	if filled(in.LinkedInURL) {
		breakdown["links"] += pointsOptional
	}
	if filled(in.GitHubURL) {
		breakdown["links"] += pointsOptional
	}

	earned := 0
	for _, v := range breakdown {
		earned += v
	}

	return ProfileScore{Total: earned, Breakdown: breakdown}
}

func filled(s string) bool {
	return strings.TrimSpace(s) != ""
}

func hasAnySkill(skills []string) bool {
	for _, s := range skills {
		if filled(s) {
			return true
		}
	}
	return false
}
