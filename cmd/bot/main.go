package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ggfinance/internal/config"
	"ggfinance/internal/engine"
	"ggfinance/internal/nlu"
	"ggfinance/internal/repository/postgres"
	"ggfinance/internal/scheduler"
	"ggfinance/internal/sender"
	"ggfinance/internal/webhook"

	"github.com/golang-migrate/migrate/v4"
	postgresdb "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

func main() {
	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting GG Finance Bot")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	logger.Info("Configuration loaded successfully")

	// Connect to database with retries
	db, err := connectDatabase(cfg.DSN(), logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connection established")

	// Run migrations
	if err := runMigrations(db, logger); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	logger.Info("Database migrations completed")

	// Initialize repositories
	userRepo := postgres.NewUserRepo(db)
	contextRepo := postgres.NewContextRepo(db)
	categoryRepo := postgres.NewCategoryRepo(db)
	transactionRepo := postgres.NewTransactionRepo(db)
	reminderRepo := postgres.NewReminderRepo(db)
	recurrenceRepo := postgres.NewRecurrenceRepo(db)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize Gemini client
	gemini, err := nlu.NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, logger)
	if err != nil {
		logger.Fatal("Failed to create Gemini client", zap.Error(err))
	}

	logger.Info("Gemini client initialized", zap.String("model", cfg.GeminiModel))

	// Initialize WhatsApp sender
	whatsapp := sender.NewWhatsApp(cfg.GraphBaseURL, cfg.WhatsAppPhoneID, cfg.WhatsAppToken, logger)

	// Initialize conversation engine
	eng := engine.New(engine.Params{
		Users:        userRepo,
		Contexts:     contextRepo,
		Categories:   categoryRepo,
		Transactions: transactionRepo,
		Reminders:    reminderRepo,
		Recurrences:  recurrenceRepo,
		Sender:       whatsapp,
		Interpreter:  gemini,
		Responder:    gemini,
		Limiter:      engine.NewRateLimiter(10, time.Minute),
		Clock:        engine.SystemClock(),
		Logger:       logger,
	})

	// Start reminder/recurrence scheduler in background
	sched := scheduler.New(userRepo, reminderRepo, transactionRepo, recurrenceRepo, whatsapp, engine.SystemClock(), logger)
	go sched.Run(ctx)

	logger.Info("Scheduler started")

	// Initialize HTTP server
	h := webhook.NewHandler(eng, logger)
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      h.Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan

	logger.Info("Shutdown signal received, stopping server...")

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", zap.Error(err))
	}
	cancel()

	logger.Info("Bot stopped gracefully")
}

// connectDatabase connects to PostgreSQL with retries
func connectDatabase(dsn string, logger *zap.Logger) (*sql.DB, error) {
	var db *sql.DB
	var err error

	maxRetries := 30
	retryDelay := 2 * time.Second

	for i := 0; i < maxRetries; i++ {
		db, err = sql.Open("postgres", dsn)
		if err != nil {
			logger.Warn("Failed to open database connection",
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			time.Sleep(retryDelay)
			continue
		}

		// Test connection
		if err = db.Ping(); err != nil {
			logger.Warn("Failed to ping database",
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			db.Close()
			time.Sleep(retryDelay)
			continue
		}

		// Connection successful
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)

		return db, nil
	}

	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", maxRetries, err)
}

// runMigrations runs database migrations
func runMigrations(db *sql.DB, logger *zap.Logger) error {
	driver, err := postgresdb.WithInstance(db, &postgresdb.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres",
		driver,
	)
	if err != nil {
		return fmt.Errorf("failed to create migration instance: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("Migrations applied")

	return nil
}
