package handler

import (
	"errors"

	"pitchbridge/internal/delivery/http/dto"
	"pitchbridge/internal/delivery/http/middleware"
	"pitchbridge/internal/domain/match"
	"pitchbridge/internal/pkg/response"
	"pitchbridge/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type MatchHandler struct {
	generation usecase.MatchGenerationUsecase
	outreach   usecase.OutreachUsecase
}

type outreachRequest struct {
	OutreachStatus string `json:"outreach_status"`
	ResponseNotes  string `json:"response_notes"`
}

func NewMatchHandler(generation usecase.MatchGenerationUsecase, outreach usecase.OutreachUsecase) *MatchHandler {
	return &MatchHandler{generation: generation, outreach: outreach}
}

func (h *MatchHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/matches")
	grp.Post("/generate", h.Generate)
	grp.Get("/", h.List)
	grp.Get("/:match_id", h.Get)
	grp.Patch("/:match_id/outreach", h.SetOutreach)
}

// Generate runs one synchronous generation cycle for the caller. The side
// of the pipeline follows the caller's stored role, so a role switch never
// leaves a stale token claim driving the wrong branch.
func (h *MatchHandler) Generate(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	res, err := h.generation.GenerateMatches(c.Context(), userID)
	if err != nil {
		return mapGenerationUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, "Matches generated", dto.GenerationResponse{
		MatchCount:    res.Returned,
		InsertedCount: res.Inserted,
	})
}

func (h *MatchHandler) List(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	matches, err := h.outreach.ListMatches(c.Context(), userID)
	if err != nil {
		return mapOutreachUsecaseError(err)
	}

	out := make([]dto.MatchResponse, 0, len(matches))
	for _, m := range matches {
		out = append(out, dto.NewMatchResponse(m))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *MatchHandler) Get(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	matchID, err := uuid.Parse(c.Params("match_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	m, err := h.outreach.GetMatch(c.Context(), matchID, userID)
	if err != nil {
		return mapOutreachUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewMatchResponse(m))
}

func (h *MatchHandler) SetOutreach(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	matchID, err := uuid.Parse(c.Params("match_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	var req outreachRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	m, err := h.outreach.SetOutreachStatus(c.Context(), matchID, userID, match.OutreachStatus(req.OutreachStatus), req.ResponseNotes)
	if err != nil {
		return mapOutreachUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, map[string]any{
		"id":                   m.ID,
		"outreach_status":      m.OutreachStatus,
		"outreach_sent_at":     m.OutreachSentAt,
		"response_received_at": m.ResponseReceivedAt,
		"response_notes":       m.ResponseNotes,
	})
}

func mapGenerationUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrProfileNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Investor profile not found", nil, err)
	case errors.Is(err, usecase.ErrPitchNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Published pitch not found", nil, err)
	case errors.Is(err, usecase.ErrGenerationBusy):
		return middleware.NewAppError(fiber.StatusConflict, "Generation already in progress", nil, err)
	case errors.Is(err, usecase.ErrOracleMalformed):
		return middleware.NewAppError(fiber.StatusBadGateway, "Matching service returned an unusable response", nil, err)
	case errors.Is(err, usecase.ErrOracleFailed):
		return middleware.NewAppError(fiber.StatusBadGateway, "Matching service unavailable", nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}

func mapOutreachUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrMatchNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Match not found", nil, err)
	case errors.Is(err, usecase.ErrNotParticipant):
		return middleware.NewAppError(fiber.StatusForbidden, "Forbidden", nil, err)
	case errors.Is(err, usecase.ErrInvalidOutreach):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid outreach status", nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
