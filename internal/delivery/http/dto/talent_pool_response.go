package dto

import "talent-screen/internal/usecase"

type TalentPoolItemResponse struct {
	Profile ProfileResponse `json:"profile"`

	JobMatchScore  *int `json:"job_match_score,omitempty"`
	CompositeScore *int `json:"composite_score,omitempty"`
}

type TalentPoolResponse struct {
	Candidates []TalentPoolItemResponse `json:"candidates"`
	Total      int                      `json:"total"`
	Page       int                      `json:"page"`
	Limit      int                      `json:"limit"`
}

func NewTalentPoolResponse(items []usecase.TalentPoolItem, total, page, limit int) TalentPoolResponse {
	out := TalentPoolResponse{
		Candidates: make([]TalentPoolItemResponse, 0, len(items)),
		Total:      total,
		Page:       page,
		Limit:      limit,
	}
	for _, it := range items {
		out.Candidates = append(out.Candidates, TalentPoolItemResponse{
			Profile:        NewProfileResponse(it.Profile),
			JobMatchScore:  it.JobMatchScore,
			CompositeScore: it.CompositeScore,
		})
	}
	return out
}
