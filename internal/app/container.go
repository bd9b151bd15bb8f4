package app

import (
	"context"
	"fmt"
	"time"

	"pitchbridge/internal/config"
	"pitchbridge/internal/database"
	dbpostgres "pitchbridge/internal/database/postgres"
	"pitchbridge/internal/infrastructure/cache"
	"pitchbridge/internal/oracle"
	"pitchbridge/internal/ws"

	"go.uber.org/zap"
)

// Container owns the process-wide infrastructure: logger, database pool,
// redis cache, oracle client and the websocket hub.
type Container struct {
	Config config.Config
	Logger *zap.Logger
	DB     database.DB
	Cache  *cache.Redis
	Ranker oracle.Ranker
	Hub    *ws.Hub
}

func NewContainer(cfg config.Config) (*Container, error) {
	logger, err := newLogger(cfg)
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	oracleClient, err := oracle.NewClient(oracle.ClientConfig{
		APIKey:      cfg.Oracle.APIKey,
		BaseURL:     cfg.Oracle.BaseURL,
		Model:       cfg.Oracle.Model,
		Timeout:     cfg.Oracle.Timeout,
		Temperature: cfg.Oracle.Temperature,
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("build oracle client: %w", err)
	}

	c := &Container{
		Config: cfg,
		Logger: logger,
		DB:     db,
		Cache:  cache.NewRedis(cfg.Redis, logger),
		Ranker: oracle.NewLLMRanker(oracleClient, logger),
		Hub:    ws.NewHub(logger),
	}
	ws.SetDefaultHub(c.Hub)

	return c, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Cache != nil {
		_ = c.Cache.Close()
	}
	if c.Logger != nil {
		_ = c.Logger.Sync()
	}
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	if cfg.App.Environment == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
