package application

import (
	"time"

	"github.com/google/uuid"
)

// Status is the fixed application lifecycle vocabulary. Applications are
// never hard-deleted; they only move between these states.
type Status string

const (
	StatusPending             Status = "Pending"
	StatusUnderReview         Status = "Under Review"
	StatusShortlisted         Status = "Shortlisted"
	StatusRejected            Status = "Rejected"
	StatusTestAssigned        Status = "Test Assigned"
	StatusAssessmentCompleted Status = "Assessment Completed"
	StatusInterviewScheduled  Status = "Interview Scheduled"
	StatusHired               Status = "Hired"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusUnderReview, StatusShortlisted, StatusRejected,
		StatusTestAssigned, StatusAssessmentCompleted, StatusInterviewScheduled, StatusHired:
		return true
	}
	return false
}

type Application struct {
	ID          uuid.UUID
	JobID       uuid.UUID
	CandidateID uuid.UUID
	ResumeID    *uuid.UUID

	Status      Status
	Shortlisted bool

	AIMatchScore    int
	ATSScore        int
	SkillsMatched   []string
	MissingSkills   []string
	AIExplanation   string
	RejectionReason string

	AppliedAt time.Time
	UpdatedAt time.Time
}
