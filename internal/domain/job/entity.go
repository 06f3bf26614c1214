package job

import (
	"time"

	"github.com/google/uuid"
)

type Posting struct {
	ID          uuid.UUID
	RecruiterID uuid.UUID

	Title        string
	Description  string
	Requirements string

	RequiredSkills []string

	// ExperienceRequired is free text ("3+ years", "senior"); the first
	// integer token is taken as the required years, absent means 0.
	ExperienceRequired string

	ResumeRequired bool

	// Per-job screening threshold overrides, 0-100 when present.
	AIShortlistThreshold *int
	AIMinATSScore        *int

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (p Posting) JobText() string {
	if p.Requirements == "" {
		return p.Description
	}
	return p.Description + "\n" + p.Requirements
}
