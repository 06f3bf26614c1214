package handler

import (
	"errors"

	"talent-screen/internal/delivery/http/dto"
	"talent-screen/internal/delivery/http/middleware"
	"talent-screen/internal/pkg/response"
	"talent-screen/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ResumeHandler struct {
	uc usecase.ResumeUsecase
}

type uploadResumeRequest struct {
	ExtractedText string   `json:"extracted_text"`
	Skills        []string `json:"skills"`
}

func NewResumeHandler(uc usecase.ResumeUsecase) *ResumeHandler {
	return &ResumeHandler{uc: uc}
}

func (h *ResumeHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/", h.Upload)
	r.Get("/latest", h.Latest)
}

func (h *ResumeHandler) Upload(c fiber.Ctx) error {
	candidateID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req uploadResumeRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	doc, err := h.uc.Upload(c.Context(), candidateID, usecase.ResumeUploadInput{
		ExtractedText: req.ExtractedText,
		Skills:        req.Skills,
	})
	if err != nil {
		return mapResumeUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewResumeResponse(doc))
}

func (h *ResumeHandler) Latest(c fiber.Ctx) error {
	candidateID, err := currentUserID(c)
	if err != nil {
		return err
	}

	doc, err := h.uc.Latest(c.Context(), candidateID)
	if err != nil {
		return mapResumeUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewResumeResponse(doc))
}

func mapResumeUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrResumeNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Resume not found", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
