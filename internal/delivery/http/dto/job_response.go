package dto

import (
	"time"

	"talent-screen/internal/domain/job"

	"github.com/google/uuid"
)

type JobResponse struct {
	ID          uuid.UUID `json:"id"`
	RecruiterID uuid.UUID `json:"recruiter_id"`

	Title        string `json:"title"`
	Description  string `json:"description"`
	Requirements string `json:"requirements,omitempty"`

	RequiredSkills     []string `json:"required_skills"`
	ExperienceRequired string   `json:"experience_required,omitempty"`
	ResumeRequired     bool     `json:"resume_required"`

	AIShortlistThreshold *int `json:"ai_shortlist_threshold,omitempty"`
	AIMinATSScore        *int `json:"ai_min_ats_score,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func NewJobResponse(p job.Posting) JobResponse {
	out := JobResponse{
		ID:                   p.ID,
		RecruiterID:          p.RecruiterID,
		Title:                p.Title,
		Description:          p.Description,
		Requirements:         p.Requirements,
		RequiredSkills:       p.RequiredSkills,
		ExperienceRequired:   p.ExperienceRequired,
		ResumeRequired:       p.ResumeRequired,
		AIShortlistThreshold: p.AIShortlistThreshold,
		AIMinATSScore:        p.AIMinATSScore,
		CreatedAt:            p.CreatedAt,
	}
	if out.RequiredSkills == nil {
		out.RequiredSkills = []string{}
	}
	return out
}

func NewJobListResponse(postings []job.Posting) []JobResponse {
	out := make([]JobResponse, 0, len(postings))
	for _, p := range postings {
		out = append(out, NewJobResponse(p))
	}
	return out
}
