package dto

import (
	"time"

	"talent-screen/internal/domain/application"

	"github.com/google/uuid"
)

type ApplicationResponse struct {
	ID          uuid.UUID  `json:"id"`
	JobID       uuid.UUID  `json:"job_id"`
	CandidateID uuid.UUID  `json:"candidate_id"`
	ResumeID    *uuid.UUID `json:"resume_id,omitempty"`

	Status      string `json:"status"`
	Shortlisted bool   `json:"shortlisted"`

	AIMatchScore  int      `json:"ai_match_score"`
	ATSScore      int      `json:"ats_score"`
	SkillsMatched []string `json:"skills_matched"`
	MissingSkills []string `json:"missing_skills"`

	AIExplanation   string `json:"ai_explanation,omitempty"`
	RejectionReason string `json:"rejection_reason,omitempty"`

	AppliedAt time.Time `json:"applied_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewApplicationResponse(a application.Application) ApplicationResponse {
	out := ApplicationResponse{
		ID:              a.ID,
		JobID:           a.JobID,
		CandidateID:     a.CandidateID,
		ResumeID:        a.ResumeID,
		Status:          string(a.Status),
		Shortlisted:     a.Shortlisted,
		AIMatchScore:    a.AIMatchScore,
		ATSScore:        a.ATSScore,
		SkillsMatched:   a.SkillsMatched,
		MissingSkills:   a.MissingSkills,
		AIExplanation:   a.AIExplanation,
		RejectionReason: a.RejectionReason,
		AppliedAt:       a.AppliedAt,
		UpdatedAt:       a.UpdatedAt,
	}
	if out.SkillsMatched == nil {
		out.SkillsMatched = []string{}
	}
	if out.MissingSkills == nil {
		out.MissingSkills = []string{}
	}
	return out
}

func NewApplicationListResponse(apps []application.Application) []ApplicationResponse {
	out := make([]ApplicationResponse, 0, len(apps))
	for _, a := range apps {
		out = append(out, NewApplicationResponse(a))
	}
	return out
}
