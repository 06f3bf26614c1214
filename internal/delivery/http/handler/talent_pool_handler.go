package handler

import (
	"errors"
	"strings"

	"talent-screen/internal/delivery/http/dto"
	"talent-screen/internal/delivery/http/middleware"
	"talent-screen/internal/pkg/response"
	"talent-screen/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type TalentPoolHandler struct {
	uc usecase.TalentPoolUsecase
}

func NewTalentPoolHandler(uc usecase.TalentPoolUsecase) *TalentPoolHandler {
	return &TalentPoolHandler{uc: uc}
}

func (h *TalentPoolHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/", h.List)
}

func (h *TalentPoolHandler) List(c fiber.Ctx) error {
	params := usecase.TalentPoolParams{
		Search:   c.Query("search"),
		MinScore: queryInt(c, "min_score", 0),
		MinYears: queryInt(c, "min_years", 0),
		Sort:     c.Query("sort"),
		Page:     queryInt(c, "page", 1),
		Limit:    queryInt(c, "limit", 0),
	}

	if skills := strings.TrimSpace(c.Query("skills")); skills != "" {
		params.Skills = strings.Split(skills, ",")
	}

	if raw := c.Query("job_id"); raw != "" {
		jobID, err := uuid.Parse(raw)
		if err != nil {
			return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
		}
		params.JobID = &jobID
	}

	items, total, err := h.uc.ListCandidates(c.Context(), params)
	if err != nil {
		return mapTalentPoolUsecaseError(err)
	}

	page := params.Page
	if page < 1 {
		page = 1
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewTalentPoolResponse(items, total, page, len(items)))
}

func mapTalentPoolUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrJobNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Job not found", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
