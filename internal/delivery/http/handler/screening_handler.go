package handler

import (
	"errors"

	"talent-screen/internal/delivery/http/dto"
	"talent-screen/internal/delivery/http/middleware"
	"talent-screen/internal/domain/application"
	"talent-screen/internal/pkg/response"
	"talent-screen/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ScreeningHandler struct {
	uc usecase.ScreeningUsecase
}

type screeningRequest struct {
	BatchSize  int `json:"batch_size"`
	MaxBatches int `json:"max_batches"`

	ShortlistThreshold *int `json:"shortlist_threshold"`
	MinATSScore        *int `json:"min_ats_score"`

	DryRun         bool     `json:"dry_run"`
	TargetStatuses []string `json:"target_statuses"`
}

func NewScreeningHandler(uc usecase.ScreeningUsecase) *ScreeningHandler {
	return &ScreeningHandler{uc: uc}
}

func (h *ScreeningHandler) RegisterRoutes(jobs, apps fiber.Router) {
	if jobs != nil {
		jobs.Post("/:job_id/screen", h.ScreenJob)
	}
	if apps != nil {
		apps.Post("/:application_id/screen", h.ScreenApplication)
	}
}

func (h *ScreeningHandler) ScreenJob(c fiber.Ctx) error {
	recruiterID, err := currentUserID(c)
	if err != nil {
		return err
	}
	jobID, err := pathUUID(c, "job_id")
	if err != nil {
		return err
	}

	params, err := screeningParamsFromRequest(c)
	if err != nil {
		return err
	}

	summary, err := h.uc.AutoScreen(c.Context(), recruiterID, jobID, params)
	if err != nil {
		return mapScreeningUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewScreeningSummaryResponse(summary))
}

func (h *ScreeningHandler) ScreenApplication(c fiber.Ctx) error {
	recruiterID, err := currentUserID(c)
	if err != nil {
		return err
	}
	applicationID, err := pathUUID(c, "application_id")
	if err != nil {
		return err
	}

	params, err := screeningParamsFromRequest(c)
	if err != nil {
		return err
	}

	res, err := h.uc.ScreenApplication(c.Context(), recruiterID, applicationID, params)
	if err != nil {
		return mapScreeningUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewScreeningResultResponse(res))
}

func screeningParamsFromRequest(c fiber.Ctx) (usecase.ScreeningParams, error) {
	var req screeningRequest
	if len(c.Body()) > 0 {
		if err := c.Bind().Body(&req); err != nil {
			return usecase.ScreeningParams{}, middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
		}
	}

	params := usecase.ScreeningParams{
		BatchSize:          req.BatchSize,
		MaxBatches:         req.MaxBatches,
		ShortlistThreshold: req.ShortlistThreshold,
		MinATSScore:        req.MinATSScore,
		DryRun:             req.DryRun,
	}
	for _, s := range req.TargetStatuses {
		st := application.Status(s)
		if !st.Valid() {
			return usecase.ScreeningParams{}, middleware.NewAppError(fiber.StatusBadRequest, "Invalid target status", nil, nil)
		}
		params.TargetStatuses = append(params.TargetStatuses, st)
	}

	return params, nil
}

func mapScreeningUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrJobNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Job not found", nil, err)
	case errors.Is(err, usecase.ErrApplicationNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Application not found", nil, err)
	case errors.Is(err, usecase.ErrScreeningInProgress):
		return middleware.NewAppError(fiber.StatusConflict, "Screening already in progress", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, usecase.ErrForbidden):
		return middleware.NewAppError(fiber.StatusForbidden, "Forbidden", nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
