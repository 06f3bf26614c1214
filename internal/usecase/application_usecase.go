package usecase

import (
	"context"
	"errors"
	"time"

	"talent-screen/internal/domain/application"
	"talent-screen/internal/repository"

	"github.com/google/uuid"
)

type ApplicationUsecase interface {
	Submit(ctx context.Context, candidateID, jobID uuid.UUID, resumeID *uuid.UUID) (application.Application, error)
	ListForJob(ctx context.Context, recruiterID, jobID uuid.UUID, limit, offset int) ([]application.Application, error)
	UpdateStatus(ctx context.Context, recruiterID, applicationID uuid.UUID, status application.Status, rejectionReason string) error
}

type Applications struct {
	apps    repository.ApplicationRepository
	jobs    repository.JobRepository
	resumes repository.ResumeRepository
}

func NewApplicationUsecase(apps repository.ApplicationRepository, jobs repository.JobRepository, resumes repository.ResumeRepository) *Applications {
	return &Applications{apps: apps, jobs: jobs, resumes: resumes}
}

func (u *Applications) Submit(ctx context.Context, candidateID, jobID uuid.UUID, resumeID *uuid.UUID) (application.Application, error) {
	if candidateID == uuid.Nil {
		return application.Application{}, ErrUnauthorized
	}

	posting, err := u.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return application.Application{}, ErrJobNotFound
		}
		return application.Application{}, ErrInternal
	}

	if posting.ResumeRequired && resumeID == nil {
		return application.Application{}, ErrResumeRequired
	}
	if resumeID != nil {
		if _, err := u.resumes.GetByID(ctx, *resumeID); err != nil {
			if errors.Is(err, repository.ErrResumeNotFound) {
				return application.Application{}, ErrInvalidInput
			}
			return application.Application{}, ErrInternal
		}
	}

	a := application.Application{
		ID:          uuid.New(),
		JobID:       jobID,
		CandidateID: candidateID,
		ResumeID:    resumeID,
		Status:      application.StatusPending,
		AppliedAt:   time.Now().UTC(),
	}
	if err := u.apps.Create(ctx, a); err != nil {
		return application.Application{}, ErrInternal
	}
	return a, nil
}

func (u *Applications) ListForJob(ctx context.Context, recruiterID, jobID uuid.UUID, limit, offset int) ([]application.Application, error) {
	posting, err := u.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, ErrInternal
	}
	if recruiterID != uuid.Nil && posting.RecruiterID != recruiterID {
		return nil, ErrForbidden
	}

	out, err := u.apps.ListByJob(ctx, jobID, limit, offset)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

// UpdateStatus applies a recruiter-driven transition. The shortlisted flag
// tracks the status on every write so the two can never disagree.
func (u *Applications) UpdateStatus(ctx context.Context, recruiterID, applicationID uuid.UUID, status application.Status, rejectionReason string) error {
	if !status.Valid() {
		return ErrInvalidStatus
	}

	app, err := u.apps.GetByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, repository.ErrApplicationNotFound) {
			return ErrApplicationNotFound
		}
		return ErrInternal
	}

	posting, err := u.jobs.GetByID(ctx, app.JobID)
	if err != nil {
		return ErrInternal
	}
	if recruiterID != uuid.Nil && posting.RecruiterID != recruiterID {
		return ErrForbidden
	}

	shortlisted := status == application.StatusShortlisted
	if shortlisted {
		rejectionReason = ""
	}

	if err := u.apps.UpdateStatus(ctx, applicationID, status, shortlisted, rejectionReason); err != nil {
		return ErrInternal
	}
	return nil
}
