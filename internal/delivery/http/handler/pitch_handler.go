package handler

import (
	"errors"

	"pitchbridge/internal/delivery/http/dto"
	"pitchbridge/internal/delivery/http/middleware"
	"pitchbridge/internal/pkg/response"
	"pitchbridge/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type PitchHandler struct {
	uc usecase.PitchUsecase
}

type pitchRequest struct {
	StartupName  string `json:"startup_name"`
	Category     string `json:"category"`
	ProductStage string `json:"product_stage"`
	OneLiner     string `json:"one_liner"`
	Problem      string `json:"problem"`
}

type publishRequest struct {
	Published bool `json:"published"`
}

func NewPitchHandler(uc usecase.PitchUsecase) *PitchHandler {
	return &PitchHandler{uc: uc}
}

func (h *PitchHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/pitches")
	grp.Post("/", h.Create)
	grp.Get("/", h.ListPublished)
	grp.Get("/mine", h.ListOwn)
	grp.Get("/:pitch_id", h.Get)
	grp.Put("/:pitch_id", h.Update)
	grp.Patch("/:pitch_id/publish", h.SetPublished)
}

func (h *PitchHandler) Create(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req pitchRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	p, err := h.uc.CreatePitch(c.Context(), userID, pitchInputFromRequest(req))
	if err != nil {
		return mapPitchUsecaseError(err)
	}

	return response.Success(c, fiber.StatusCreated, "Pitch created", dto.NewPitchResponse(p))
}

func (h *PitchHandler) Update(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	pitchID, err := uuid.Parse(c.Params("pitch_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	var req pitchRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	p, err := h.uc.UpdatePitch(c.Context(), pitchID, userID, pitchInputFromRequest(req))
	if err != nil {
		return mapPitchUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewPitchResponse(p))
}

func (h *PitchHandler) SetPublished(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	pitchID, err := uuid.Parse(c.Params("pitch_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	var req publishRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	if err := h.uc.SetPublished(c.Context(), pitchID, userID, req.Published); err != nil {
		return mapPitchUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, map[string]any{"published": req.Published})
}

func (h *PitchHandler) Get(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	pitchID, err := uuid.Parse(c.Params("pitch_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	p, err := h.uc.GetPitch(c.Context(), pitchID, userID)
	if err != nil {
		return mapPitchUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewPitchResponse(p))
}

func (h *PitchHandler) ListOwn(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	out, err := h.uc.ListOwn(c.Context(), userID)
	if err != nil {
		return mapPitchUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewPitchListResponse(out))
}

func (h *PitchHandler) ListPublished(c fiber.Ctx) error {
	out, err := h.uc.ListPublished(c.Context())
	if err != nil {
		return mapPitchUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewPitchListResponse(out))
}

func pitchInputFromRequest(req pitchRequest) usecase.PitchInput {
	return usecase.PitchInput{
		StartupName:  req.StartupName,
		Category:     req.Category,
		ProductStage: req.ProductStage,
		OneLiner:     req.OneLiner,
		Problem:      req.Problem,
	}
}

func mapPitchUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrPitchNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Pitch not found", nil, err)
	case errors.Is(err, usecase.ErrNotPitchOwner):
		return middleware.NewAppError(fiber.StatusForbidden, "Forbidden", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
