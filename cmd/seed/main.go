package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"pitchbridge/internal/config"
	"pitchbridge/internal/database/migration"
	dbpostgres "pitchbridge/internal/database/postgres"
	"pitchbridge/internal/database/seeder"
	"pitchbridge/internal/repository"
)

func main() {
	founders := flag.Int("founders", 20, "number of demo founders (each with one published pitch)")
	investors := flag.Int("investors", 10, "number of demo investors (each with an active profile)")
	seed := flag.Int64("seed", 1, "deterministic faker seed")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	defer func() { _ = db.Close() }()

	runner := migration.Runner{Dir: cfg.App.MigrationsDir}
	if err := runner.Run(ctx, db.SQLDB()); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	s := seeder.New(
		repository.NewPostgresUserRepository(db),
		repository.NewPostgresInvestorProfileRepository(db),
		repository.NewPostgresPitchRepository(db),
		logger,
	)
	if err := s.Run(ctx, *founders, *investors, *seed); err != nil {
		log.Fatalf("seed failed: %v", err)
	}
}
