// Package main provides a CLI tool for seeding the database with demo data.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"stylos/internal/infrastructure/storage/postgres"
	"stylos/internal/seed"
	"stylos/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	if err := postgres.RunMigrations(dbURL); err != nil {
		log.Fatalw("failed to run migrations", "error", err)
	}

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(dbURL))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	log.Info("connected to database")

	ds, err := seed.Demo()
	if err != nil {
		log.Fatalw("failed to build demo dataset", "error", err)
	}

	txManager := postgres.NewTxManager(pool)
	writers := seed.Writers{
		Users:    postgres.NewUserRepo(txManager),
		Clients:  postgres.NewClientRepo(txManager),
		Products: postgres.NewProductRepo(txManager),
		Orders:   postgres.NewOrderRepo(txManager),
		Expenses: postgres.NewExpenseRepo(txManager),
	}

	res, err := seed.Load(ctx, txManager, writers, ds)
	if err != nil {
		log.Fatalw("failed to seed database", "error", err)
	}

	log.Infow("database seeded", "created", res.Created, "skipped", res.Skipped)
	log.Infow("demo credentials", "email", "admin@stylos.com", "password", seed.DemoPassword)
}
