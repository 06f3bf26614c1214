package dto

import (
	"time"

	"talent-screen/internal/domain/candidate"

	"github.com/google/uuid"
)

type ProfileResponse struct {
	ID     uuid.UUID `json:"id"`
	UserID uuid.UUID `json:"user_id"`

	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Location string `json:"location,omitempty"`
	Title    string `json:"title,omitempty"`
	Summary  string `json:"summary,omitempty"`

	ExperienceLevel string `json:"experience_level,omitempty"`
	Industry        string `json:"industry,omitempty"`

	Degree       string `json:"degree,omitempty"`
	FieldOfStudy string `json:"field_of_study,omitempty"`
	Institution  string `json:"institution,omitempty"`

	PortfolioURL string `json:"portfolio_url,omitempty"`
	LinkedInURL  string `json:"linkedin_url,omitempty"`
	GitHubURL    string `json:"github_url,omitempty"`

	Skills          []string `json:"skills"`
	YearsExperience *int     `json:"years_experience,omitempty"`

	ProfileScore        int            `json:"profile_score"`
	ScoreBreakdown      map[string]int `json:"score_breakdown"`
	LastScoreComputedAt *time.Time     `json:"last_score_computed_at,omitempty"`
}

func NewProfileResponse(p candidate.Profile) ProfileResponse {
	out := ProfileResponse{
		ID:              p.ID,
		UserID:          p.UserID,
		FullName:        p.FullName,
		Email:           p.Email,
		Phone:           p.Phone,
		Location:        p.Location,
		Title:           p.Title,
		Summary:         p.Summary,
		ExperienceLevel: p.ExperienceLevel,
		Industry:        p.Industry,
		Degree:          p.Degree,
		FieldOfStudy:    p.FieldOfStudy,
		Institution:     p.Institution,
		PortfolioURL:    p.PortfolioURL,
		LinkedInURL:     p.LinkedInURL,
		GitHubURL:       p.GitHubURL,
		Skills:          p.Skills,
		YearsExperience: p.YearsExperience,
		ProfileScore:    p.ProfileScore,
		ScoreBreakdown:  p.ScoreBreakdown,
	}
	if out.Skills == nil {
		out.Skills = []string{}
	}
	if !p.LastScoreComputedAt.IsZero() {
		t := p.LastScoreComputedAt
		out.LastScoreComputedAt = &t
	}
	return out
}
