package handler

import (
	"pitchbridge/internal/database"
	"pitchbridge/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type HealthHandler struct {
	db database.DB
}

func NewHealthHandler(db database.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/health", h.Health)
}

func (h *HealthHandler) Health(c fiber.Ctx) error {
	dbStatus := "ok"
	if h.db == nil || h.db.Ping(c.Context()) != nil {
		dbStatus = "unavailable"
	}

	status := fiber.StatusOK
	msg := response.MessageOK
	if dbStatus != "ok" {
		status = fiber.StatusServiceUnavailable
		msg = "service unavailable"
	}

	return response.Success(c, status, msg, map[string]any{
		"database": dbStatus,
	})
}
