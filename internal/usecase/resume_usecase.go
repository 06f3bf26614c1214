package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"talent-screen/internal/domain/resume"
	"talent-screen/internal/domain/scoring"
	"talent-screen/internal/repository"

	"github.com/google/uuid"
)

var ErrResumeNotFound = errors.New("resume not found")

type ResumeUploadInput struct {
	ExtractedText string
	Skills        []string
}

type ResumeUsecase interface {
	Upload(ctx context.Context, candidateID uuid.UUID, in ResumeUploadInput) (resume.Resume, error)
	Latest(ctx context.Context, candidateID uuid.UUID) (resume.Resume, error)
}

type Resumes struct {
	resumes repository.ResumeRepository
}

func NewResumeUsecase(resumes repository.ResumeRepository) *Resumes {
	return &Resumes{resumes: resumes}
}

func (u *Resumes) Upload(ctx context.Context, candidateID uuid.UUID, in ResumeUploadInput) (resume.Resume, error) {
	if candidateID == uuid.Nil {
		return resume.Resume{}, ErrUnauthorized
	}
	if strings.TrimSpace(in.ExtractedText) == "" {
		return resume.Resume{}, ErrInvalidInput
	}

	doc := resume.Resume{
		ID:            uuid.New(),
		CandidateID:   candidateID,
		ExtractedText: in.ExtractedText,
		Skills:        scoring.NormalizeSkills(in.Skills),
		UploadedAt:    time.Now().UTC(),
	}
	if err := u.resumes.Create(ctx, doc); err != nil {
		return resume.Resume{}, ErrInternal
	}
	return doc, nil
}

func (u *Resumes) Latest(ctx context.Context, candidateID uuid.UUID) (resume.Resume, error) {
	if candidateID == uuid.Nil {
		return resume.Resume{}, ErrUnauthorized
	}

	doc, err := u.resumes.GetLatestByCandidate(ctx, candidateID)
	if err != nil {
		if errors.Is(err, repository.ErrResumeNotFound) {
			return resume.Resume{}, ErrResumeNotFound
		}
		return resume.Resume{}, ErrInternal
	}
	return doc, nil
}
