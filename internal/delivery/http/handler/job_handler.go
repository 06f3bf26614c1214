package handler

import (
	"errors"
	"strconv"

	"talent-screen/internal/delivery/http/dto"
	"talent-screen/internal/delivery/http/middleware"
	"talent-screen/internal/pkg/response"
	"talent-screen/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type JobHandler struct {
	uc usecase.JobUsecase
}

type createJobRequest struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Requirements string `json:"requirements"`

	RequiredSkills     []string `json:"required_skills"`
	ExperienceRequired string   `json:"experience_required"`
	ResumeRequired     bool     `json:"resume_required"`

	AIShortlistThreshold *int `json:"ai_shortlist_threshold"`
	AIMinATSScore        *int `json:"ai_min_ats_score"`
}

func NewJobHandler(uc usecase.JobUsecase) *JobHandler {
	return &JobHandler{uc: uc}
}

func (h *JobHandler) RegisterPublicRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/", h.List)
	r.Get("/:job_id", h.Get)
}

func (h *JobHandler) RegisterRecruiterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/", h.Create)
}

func (h *JobHandler) Create(c fiber.Ctx) error {
	recruiterID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req createJobRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	posting, err := h.uc.Create(c.Context(), recruiterID, usecase.JobCreateInput{
		Title:                req.Title,
		Description:          req.Description,
		Requirements:         req.Requirements,
		RequiredSkills:       req.RequiredSkills,
		ExperienceRequired:   req.ExperienceRequired,
		ResumeRequired:       req.ResumeRequired,
		AIShortlistThreshold: req.AIShortlistThreshold,
		AIMinATSScore:        req.AIMinATSScore,
	})
	if err != nil {
		return mapJobUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobResponse(posting))
}

func (h *JobHandler) Get(c fiber.Ctx) error {
	jobID, err := pathUUID(c, "job_id")
	if err != nil {
		return err
	}

	posting, err := h.uc.Get(c.Context(), jobID)
	if err != nil {
		return mapJobUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobResponse(posting))
}

func (h *JobHandler) List(c fiber.Ctx) error {
	limit := queryInt(c, "limit", 20)
	offset := queryInt(c, "offset", 0)

	postings, err := h.uc.List(c.Context(), limit, offset)
	if err != nil {
		return mapJobUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobListResponse(postings))
}

func queryInt(c fiber.Ctx, name string, def int) int {
	raw := c.Query(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}

func mapJobUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrJobNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Job not found", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
