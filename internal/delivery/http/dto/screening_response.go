package dto

import (
	"talent-screen/internal/usecase"

	"github.com/google/uuid"
)

type ScreeningPreviewResponse struct {
	ApplicationID uuid.UUID `json:"application_id"`
	CandidateID   uuid.UUID `json:"candidate_id"`
	Status        string    `json:"status"`
	Shortlisted   bool      `json:"shortlisted"`
	AIMatchScore  int       `json:"ai_match_score"`
	ATSScore      int       `json:"ats_score"`
}

type ScreeningSummaryResponse struct {
	Total       int  `json:"total"`
	Processed   int  `json:"processed"`
	Shortlisted int  `json:"shortlisted"`
	Rejected    int  `json:"rejected"`
	DryRun      bool `json:"dry_run"`

	Preview []ScreeningPreviewResponse `json:"preview,omitempty"`
}

func NewScreeningSummaryResponse(s usecase.ScreeningSummary) ScreeningSummaryResponse {
	out := ScreeningSummaryResponse{
		Total:       s.Total,
		Processed:   s.Processed,
		Shortlisted: s.Shortlisted,
		Rejected:    s.Rejected,
		DryRun:      s.DryRun,
	}
	for _, p := range s.Preview {
		out.Preview = append(out.Preview, ScreeningPreviewResponse{
			ApplicationID: p.ApplicationID,
			CandidateID:   p.CandidateID,
			Status:        string(p.Status),
			Shortlisted:   p.Shortlisted,
			AIMatchScore:  p.AIMatchScore,
			ATSScore:      p.ATSScore,
		})
	}
	return out
}

type ScreeningResultResponse struct {
	ApplicationID uuid.UUID `json:"application_id"`
	Status        string    `json:"status"`
	Shortlisted   bool      `json:"shortlisted"`
	AIMatchScore  int       `json:"ai_match_score"`
	ATSScore      int       `json:"ats_score"`
	SkillsMatched []string  `json:"skills_matched"`
	MissingSkills []string  `json:"missing_skills"`
	Explanation   string    `json:"explanation,omitempty"`
}

func NewScreeningResultResponse(r usecase.ScreeningResult) ScreeningResultResponse {
	out := ScreeningResultResponse{
		ApplicationID: r.ApplicationID,
		Status:        string(r.Status),
		Shortlisted:   r.Shortlisted,
		AIMatchScore:  r.AIMatchScore,
		ATSScore:      r.ATSScore,
		SkillsMatched: r.SkillsMatched,
		MissingSkills: r.MissingSkills,
		Explanation:   r.Explanation,
	}
	if out.SkillsMatched == nil {
		out.SkillsMatched = []string{}
	}
	if out.MissingSkills == nil {
		out.MissingSkills = []string{}
	}
	return out
}
