package usecase

import "errors"

var (
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrInvalidInput        = errors.New("invalid input")
	ErrInternal            = errors.New("internal error")
	ErrJobNotFound         = errors.New("job not found")
	ErrApplicationNotFound = errors.New("application not found")
	ErrProfileNotFound     = errors.New("candidate profile not found")
	ErrScreeningInProgress = errors.New("screening already in progress for this job")
	ErrResumeRequired      = errors.New("job requires a resume")
	ErrInvalidStatus       = errors.New("invalid application status")
)
