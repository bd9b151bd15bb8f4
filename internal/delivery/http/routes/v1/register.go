package v1

import (
	"pitchbridge/internal/config"
	"pitchbridge/internal/database"
	"pitchbridge/internal/delivery/http/handler"
	"pitchbridge/internal/delivery/http/middleware"
	"pitchbridge/internal/infrastructure/cache"
	"pitchbridge/internal/oracle"
	"pitchbridge/internal/pkg/jwt"
	"pitchbridge/internal/repository"
	"pitchbridge/internal/usecase"
	"pitchbridge/internal/ws"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

type Deps struct {
	Config config.Config
	DB     database.DB
	Cache  *cache.Redis
	Ranker oracle.Ranker
	Hub    *ws.Hub
	Logger *zap.Logger
}

func Register(r fiber.Router, deps Deps) {
	if r == nil {
		return
	}

	cfg := deps.Config
	jwtSvc := jwt.NewHMACService(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiresIn,
		cfg.JWT.RefreshExpiresIn,
	)

	authMw := middleware.NewAuthMiddleware(jwtSvc)

	userRepo := repository.NewPostgresUserRepository(deps.DB)
	profileRepo := repository.NewPostgresInvestorProfileRepository(deps.DB)
	pitchRepo := repository.NewPostgresPitchRepository(deps.DB)
	matchRepo := repository.NewPostgresMatchRepository(deps.DB)

	authUC := usecase.NewAuthUsecase(userRepo, jwtSvc)
	profileUC := usecase.NewInvestorProfileUsecase(profileRepo, userRepo)
	pitchUC := usecase.NewPitchUsecase(pitchRepo)
	generationUC := usecase.NewMatchGenerationUsecase(
		userRepo, profileRepo, pitchRepo, matchRepo,
		deps.Ranker, deps.Cache, deps.Cache, deps.Logger,
	)
	outreachUC := usecase.NewOutreachUsecase(matchRepo, userRepo, pitchRepo, profileRepo, deps.Cache)

	authHandler := handler.NewAuthHandler(authUC)
	profileHandler := handler.NewProfileHandler(profileUC)
	pitchHandler := handler.NewPitchHandler(pitchUC)
	matchHandler := handler.NewMatchHandler(generationUC, outreachUC)
	wsHandler := ws.NewHandler(deps.Hub, deps.Logger)

	authGroup := r.Group("/auth")
	authHandler.RegisterRoutes(authGroup)

	protected := r.Group("", authMw.Middleware())
	profileHandler.RegisterRoutes(protected)
	pitchHandler.RegisterRoutes(protected)
	matchHandler.RegisterRoutes(protected)
	protected.Get("/ws/matches", wsHandler.HandleMatchEvents)
}
