package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"talent-screen/internal/domain/job"
	"talent-screen/internal/domain/scoring"
	"talent-screen/internal/repository"

	"github.com/google/uuid"
)

type JobCreateInput struct {
	Title        string
	Description  string
	Requirements string

	RequiredSkills     []string
	ExperienceRequired string
	ResumeRequired     bool

	AIShortlistThreshold *int
	AIMinATSScore        *int
}

type JobUsecase interface {
	Create(ctx context.Context, recruiterID uuid.UUID, in JobCreateInput) (job.Posting, error)
	Get(ctx context.Context, id uuid.UUID) (job.Posting, error)
	List(ctx context.Context, limit, offset int) ([]job.Posting, error)
}

type Jobs struct {
	jobs repository.JobRepository
}

func NewJobUsecase(jobs repository.JobRepository) *Jobs {
	return &Jobs{jobs: jobs}
}

func (u *Jobs) Create(ctx context.Context, recruiterID uuid.UUID, in JobCreateInput) (job.Posting, error) {
	if recruiterID == uuid.Nil {
		return job.Posting{}, ErrUnauthorized
	}
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Description) == "" {
		return job.Posting{}, ErrInvalidInput
	}
	if !validScorePtr(in.AIShortlistThreshold) || !validScorePtr(in.AIMinATSScore) {
		return job.Posting{}, ErrInvalidInput
	}

	p := job.Posting{
		ID:                   uuid.New(),
		RecruiterID:          recruiterID,
		Title:                strings.TrimSpace(in.Title),
		Description:          in.Description,
		Requirements:         in.Requirements,
		RequiredSkills:       scoring.NormalizeSkills(in.RequiredSkills),
		ExperienceRequired:   strings.TrimSpace(in.ExperienceRequired),
		ResumeRequired:       in.ResumeRequired,
		AIShortlistThreshold: in.AIShortlistThreshold,
		AIMinATSScore:        in.AIMinATSScore,
		CreatedAt:            time.Now().UTC(),
	}
	if err := u.jobs.Create(ctx, p); err != nil {
		return job.Posting{}, ErrInternal
	}
	return p, nil
}

func (u *Jobs) Get(ctx context.Context, id uuid.UUID) (job.Posting, error) {
	p, err := u.jobs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return job.Posting{}, ErrJobNotFound
		}
		return job.Posting{}, ErrInternal
	}
	return p, nil
}

func (u *Jobs) List(ctx context.Context, limit, offset int) ([]job.Posting, error) {
	out, err := u.jobs.List(ctx, limit, offset)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

func validScorePtr(v *int) bool {
	return v == nil || (*v >= 0 && *v <= 100)
}
