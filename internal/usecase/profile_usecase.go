package usecase

import (
	"context"
	"errors"
	"time"

	"talent-screen/internal/domain/candidate"
	"talent-screen/internal/domain/scoring"
	"talent-screen/internal/domain/user"
	"talent-screen/internal/repository"

	"github.com/google/uuid"
)

type ProfileUpdateInput struct {
	FullName string
	Phone    string
	Location string
	Title    string
	Summary  string

	ExperienceLevel string
	Industry        string

	Degree       string
	FieldOfStudy string
	Institution  string

	PortfolioURL string
	LinkedInURL  string
	GitHubURL    string

	Skills          []string
	YearsExperience *int
}

type ProfileUsecase interface {
	Get(ctx context.Context, userID uuid.UUID) (candidate.Profile, error)
	Update(ctx context.Context, userID uuid.UUID, in ProfileUpdateInput) (candidate.Profile, error)
}

type Profile struct {
	profiles repository.CandidateRepository
	users    user.Repository
	now      func() time.Time
}

func NewProfileUsecase(profiles repository.CandidateRepository, users user.Repository) *Profile {
	return &Profile{profiles: profiles, users: users, now: time.Now}
}

// Get returns the candidate's profile, creating an empty scored one on first
// access.
func (u *Profile) Get(ctx context.Context, userID uuid.UUID) (candidate.Profile, error) {
	if userID == uuid.Nil {
		return candidate.Profile{}, ErrUnauthorized
	}

	p, err := u.profiles.GetByUserID(ctx, userID)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, repository.ErrProfileNotFound) {
		return candidate.Profile{}, ErrInternal
	}

	usr, err := u.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return candidate.Profile{}, ErrUnauthorized
		}
		return candidate.Profile{}, ErrInternal
	}

	p = candidate.Profile{
		ID:       uuid.New(),
		UserID:   userID,
		FullName: usr.FullName,
		Email:    usr.Email,
		Skills:   []string{},
	}
	u.rescore(&p)

	if err := u.profiles.Upsert(ctx, p); err != nil {
		return candidate.Profile{}, ErrInternal
	}
	return p, nil
}

// Update applies the mutation and recomputes the materialized score in the
// same write, so the stored score is never stale beyond one mutation.
func (u *Profile) Update(ctx context.Context, userID uuid.UUID, in ProfileUpdateInput) (candidate.Profile, error) {
	if userID == uuid.Nil {
		return candidate.Profile{}, ErrUnauthorized
	}
	if in.YearsExperience != nil && *in.YearsExperience < 0 {
		return candidate.Profile{}, ErrInvalidInput
	}

	p, err := u.Get(ctx, userID)
	if err != nil {
		return candidate.Profile{}, err
	}

	p.FullName = in.FullName
	p.Phone = in.Phone
	p.Location = in.Location
	p.Title = in.Title
	p.Summary = in.Summary
	p.ExperienceLevel = in.ExperienceLevel
	p.Industry = in.Industry
	p.Degree = in.Degree
	p.FieldOfStudy = in.FieldOfStudy
	p.Institution = in.Institution
	p.PortfolioURL = in.PortfolioURL
	p.LinkedInURL = in.LinkedInURL
	p.GitHubURL = in.GitHubURL
	p.Skills = scoring.NormalizeSkills(in.Skills)
	p.YearsExperience = in.YearsExperience

	u.rescore(&p)

	if err := u.profiles.Upsert(ctx, p); err != nil {
		return candidate.Profile{}, ErrInternal
	}
	return p, nil
}

func (u *Profile) rescore(p *candidate.Profile) {
	score := scoring.ComputeProfileScore(profileScoreInput(*p))
	p.ProfileScore = score.Total
	p.ScoreBreakdown = score.Breakdown
	p.ScoreVersion = scoring.Version
	p.LastScoreComputedAt = u.now().UTC()
}
