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

type ProfileHandler struct {
	uc usecase.InvestorProfileUsecase
}

type profileRequest struct {
	InvestorType        string   `json:"investor_type"`
	InvestmentThesis    string   `json:"investment_thesis"`
	PreferredCategories []string `json:"preferred_categories"`
	PreferredStages     []string `json:"preferred_stages"`
	TicketSizeMin       int64    `json:"ticket_size_min"`
	TicketSizeMax       int64    `json:"ticket_size_max"`
	LookingFor          string   `json:"looking_for"`
}

type switchRoleRequest struct {
	Role string `json:"role"`
}

func NewProfileHandler(uc usecase.InvestorProfileUsecase) *ProfileHandler {
	return &ProfileHandler{uc: uc}
}

func (h *ProfileHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/investor-profile")
	grp.Put("/", h.Upsert)
	grp.Get("/", h.GetOwn)

	r.Post("/users/role", h.SwitchRole)
}

func (h *ProfileHandler) Upsert(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req profileRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	p, err := h.uc.UpsertProfile(c.Context(), userID, usecase.ProfileInput{
		InvestorType:        req.InvestorType,
		InvestmentThesis:    req.InvestmentThesis,
		PreferredCategories: req.PreferredCategories,
		PreferredStages:     req.PreferredStages,
		TicketSizeMin:       req.TicketSizeMin,
		TicketSizeMax:       req.TicketSizeMax,
		LookingFor:          req.LookingFor,
	})
	if err != nil {
		return mapProfileUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewProfileResponse(p))
}

func (h *ProfileHandler) GetOwn(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	p, err := h.uc.GetOwnProfile(c.Context(), userID)
	if err != nil {
		return mapProfileUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewProfileResponse(p))
}

func (h *ProfileHandler) SwitchRole(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req switchRoleRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	usr, err := h.uc.SwitchRole(c.Context(), userID, req.Role)
	if err != nil {
		return mapProfileUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewUserResponse(usr))
}

func mapProfileUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrProfileNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Investor profile not found", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
