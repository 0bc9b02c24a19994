// Package main is the entry point for the stylos API server.
//
// Storage backend selection: with DATABASE_URL set the server runs on
// PostgreSQL; otherwise it falls back to an embedded sqlite store so the
// shop can run fully offline on a single machine.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"stylos/internal/core/tx"
	"stylos/internal/domain/auth"
	"stylos/internal/domain/catalog/client"
	"stylos/internal/domain/catalog/product"
	"stylos/internal/domain/finance"
	"stylos/internal/domain/orders"
	"stylos/internal/domain/reports"
	"stylos/internal/domain/stock"
	v1 "stylos/internal/infrastructure/http/v1"
	"stylos/internal/infrastructure/http/v1/handlers"
	"stylos/internal/infrastructure/storage/localstore"
	"stylos/internal/infrastructure/storage/postgres"
	"stylos/pkg/logger"
)

const version = "0.1.0"

// Config holds server configuration, loaded from the environment.
type Config struct {
	Port        string `env:"APP_PORT" envDefault:"8080"`
	Env         string `env:"APP_ENV" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	DatabaseURL string `env:"DATABASE_URL"`
	LocalStore  string `env:"LOCAL_STORE_PATH" envDefault:"stylos.db"`
	JWTSecret   string `env:"JWT_SECRET" envDefault:"dev-secret-change-in-production"`
	SeedDemo    bool   `env:"SEED_DEMO" envDefault:"true"`

	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:","`

	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`
}

// repos groups the persistence interfaces the services consume, so both
// backends wire through the same path.
type repos struct {
	products product.Repository
	clients  client.Repository
	orders   orders.Repository
	stock    stock.Repository
	expenses finance.Repository
	users    auth.Repository

	auditor   product.Auditor
	txManager tx.Manager
	store     handlers.Pinger
	backend   string
	close     func()
}

func main() {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		fmt.Printf("failed to parse configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Development: cfg.Env == "development",
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	log.Info("starting stylos server")

	storage, err := setupStorage(ctx, cfg, log)
	if err != nil {
		log.Fatalw("failed to initialize storage", "error", err)
	}
	defer storage.close()

	// --- JWT + Auth ---
	jwtService := auth.NewJWTService(auth.DefaultJWTConfig(cfg.JWTSecret))
	authService := auth.NewService(storage.users, storage.txManager, jwtService, storage.auditor, auth.DefaultServiceConfig())

	// --- Domain services ---
	productService := product.NewService(storage.products, storage.txManager, storage.auditor)
	clientService := client.NewService(storage.clients, storage.txManager)
	stockService := stock.NewService(storage.products, storage.stock, storage.txManager)
	orderService := orders.NewService(storage.orders, storage.products, clientService, stockService, storage.txManager)
	financeService := finance.NewService(storage.expenses, storage.orders, storage.txManager)
	reportsService := reports.NewService(storage.orders, storage.products)

	router := v1.NewRouter(v1.RouterConfig{
		Logger:         log,
		Store:          storage.store,
		StorageBackend: storage.backend,
		Version:        version,
		AllowedOrigins: cfg.AllowedOrigins,
		JWTValidator:   jwtService,
		AuthService:    authService,
		ProductService: productService,
		ClientService:  clientService,
		OrderService:   orderService,
		StockService:   stockService,
		FinanceService: financeService,
		ReportsService: reportsService,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting", "port", cfg.Port, "storage", storage.backend)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}

// setupStorage connects to PostgreSQL when configured and reachable,
// otherwise opens the embedded store.
func setupStorage(ctx context.Context, cfg Config, log *logger.Logger) (*repos, error) {
	if cfg.DatabaseURL != "" {
		storage, err := setupPostgres(ctx, cfg)
		if err == nil {
			log.Info("postgres storage initialized")
			return storage, nil
		}
		log.Warnw("postgres unavailable, falling back to local store", "error", err)
	}
	return setupLocalStore(ctx, cfg, log)
}

func setupPostgres(ctx context.Context, cfg Config) (*repos, error) {
	if err := postgres.RunMigrations(cfg.DatabaseURL); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(cfg.DatabaseURL))
	if err != nil {
		return nil, err
	}

	txManager := postgres.NewTxManager(pool)
	auditService, err := postgres.NewAuditService(txManager)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("init audit service: %w", err)
	}

	return &repos{
		products:  postgres.NewProductRepo(txManager),
		clients:   postgres.NewClientRepo(txManager),
		orders:    postgres.NewOrderRepo(txManager),
		stock:     postgres.NewStockRepo(txManager),
		expenses:  postgres.NewExpenseRepo(txManager),
		users:     postgres.NewUserRepo(txManager),
		auditor:   auditService,
		txManager: txManager,
		store:     pool,
		backend:   "postgres",
		close:     pool.Close,
	}, nil
}

func setupLocalStore(ctx context.Context, cfg Config, log *logger.Logger) (*repos, error) {
	store, err := localstore.Open(cfg.LocalStore)
	if err != nil {
		return nil, fmt.Errorf("open local store: %w", err)
	}

	if cfg.SeedDemo {
		if err := store.Seed(ctx); err != nil {
			store.Close()
			return nil, fmt.Errorf("seed local store: %w", err)
		}
	}
	log.Infow("local store initialized", "path", cfg.LocalStore)

	return &repos{
		products:  localstore.NewProductRepo(store),
		clients:   localstore.NewClientRepo(store),
		orders:    localstore.NewOrderRepo(store),
		stock:     localstore.NewStockRepo(store),
		expenses:  localstore.NewExpenseRepo(store),
		users:     localstore.NewUserRepo(store),
		auditor:   nil,
		txManager: tx.Noop{},
		store:     store,
		backend:   "sqlite",
		close:     func() { _ = store.Close() },
	}, nil
}
