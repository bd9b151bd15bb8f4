package routes

import (
	"pitchbridge/internal/config"
	"pitchbridge/internal/database"
	"pitchbridge/internal/delivery/http/handler"
	"pitchbridge/internal/infrastructure/cache"
	"pitchbridge/internal/oracle"
	"pitchbridge/internal/ws"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

// Deps carries the shared infrastructure the route tree wires handlers to.
type Deps struct {
	Config config.Config
	DB     database.DB
	Cache  *cache.Redis
	Ranker oracle.Ranker
	Hub    *ws.Hub
	Logger *zap.Logger
}

type Registry struct {
	deps   Deps
	health *handler.HealthHandler
}

func NewRegistry(deps Deps) *Registry {
	return &Registry{deps: deps, health: handler.NewHealthHandler(deps.DB)}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerHealth(app)
	r.registerAPI(app)
}

func (r *Registry) registerHealth(app *fiber.App) {
	r.health.RegisterRoutes(app)
}

func (r *Registry) registerAPI(app *fiber.App) {
	api := app.Group("/api")
	RegisterV1(api.Group("/v1"), r.deps)
}
