package dto

import (
	"time"

	"talent-screen/internal/domain/resume"

	"github.com/google/uuid"
)

type ResumeResponse struct {
	ID          uuid.UUID `json:"id"`
	CandidateID uuid.UUID `json:"candidate_id"`

	ExtractedText string   `json:"extracted_text"`
	Skills        []string `json:"skills"`
	ATSScore      int      `json:"ats_score"`

	UploadedAt time.Time `json:"uploaded_at"`
}

func NewResumeResponse(doc resume.Resume) ResumeResponse {
	out := ResumeResponse{
		ID:            doc.ID,
		CandidateID:   doc.CandidateID,
		ExtractedText: doc.ExtractedText,
		Skills:        doc.Skills,
		ATSScore:      doc.ATSScore,
		UploadedAt:    doc.UploadedAt,
	}
	if out.Skills == nil {
		out.Skills = []string{}
	}
	return out
}
