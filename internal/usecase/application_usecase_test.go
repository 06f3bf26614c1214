package usecase

import (
	"context"
	"errors"
	"testing"

	"talent-screen/internal/domain/application"
	"talent-screen/internal/domain/job"
	"talent-screen/internal/domain/resume"

	"github.com/google/uuid"
)

func TestSubmitRequiresResumeWhenJobDemandsIt(t *testing.T) {
	jobID := uuid.New()
	posting := job.Posting{ID: jobID, ResumeRequired: true}

	uc := NewApplicationUsecase(
		&fakeAppRepo{failApply: map[uuid.UUID]bool{}},
		&fakeJobRepo{posting: posting},
		&fakeResumeRepo{resumes: map[uuid.UUID]resume.Resume{}},
	)

	_, err := uc.Submit(context.Background(), uuid.New(), jobID, nil)
	if !errors.Is(err, ErrResumeRequired) {
		t.Fatalf("expected ErrResumeRequired, got %v", err)
	}
}

func TestSubmitRejectsUnknownResume(t *testing.T) {
	jobID := uuid.New()
	posting := job.Posting{ID: jobID}
	unknown := uuid.New()

	uc := NewApplicationUsecase(
		&fakeAppRepo{failApply: map[uuid.UUID]bool{}},
		&fakeJobRepo{posting: posting},
		&fakeResumeRepo{resumes: map[uuid.UUID]resume.Resume{}},
	)

	_, err := uc.Submit(context.Background(), uuid.New(), jobID, &unknown)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for dangling resume ref, got %v", err)
	}
}

func TestSubmitCreatesPendingApplication(t *testing.T) {
	jobID := uuid.New()
	posting := job.Posting{ID: jobID}

	uc := NewApplicationUsecase(
		&fakeAppRepo{failApply: map[uuid.UUID]bool{}},
		&fakeJobRepo{posting: posting},
		&fakeResumeRepo{resumes: map[uuid.UUID]resume.Resume{}},
	)

	app, err := uc.Submit(context.Background(), uuid.New(), jobID, nil)
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if app.Status != application.StatusPending {
		t.Fatalf("new applications must start Pending, got %q", app.Status)
	}
	if app.Shortlisted {
		t.Fatal("new applications must not be shortlisted")
	}
}

func TestUpdateStatusRejectsUnknownVocabulary(t *testing.T) {
	uc := NewApplicationUsecase(
		&fakeAppRepo{failApply: map[uuid.UUID]bool{}},
		&fakeJobRepo{},
		&fakeResumeRepo{resumes: map[uuid.UUID]resume.Resume{}},
	)

	err := uc.UpdateStatus(context.Background(), uuid.Nil, uuid.New(), application.Status("Ghosted"), "")
	if !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestUpdateStatusForbiddenForOtherRecruiter(t *testing.T) {
	jobID := uuid.New()
	posting := job.Posting{ID: jobID, RecruiterID: uuid.New()}
	apps := pendingApps(jobID, 1)

	uc := NewApplicationUsecase(
		&fakeAppRepo{apps: apps, failApply: map[uuid.UUID]bool{}},
		&fakeJobRepo{posting: posting},
		&fakeResumeRepo{resumes: map[uuid.UUID]resume.Resume{}},
	)

	err := uc.UpdateStatus(context.Background(), uuid.New(), apps[0].ID, application.StatusShortlisted, "")
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}
