package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"opportunity_followup_reminders/internal/app"
	"opportunity_followup_reminders/internal/infra/config"
	idb "opportunity_followup_reminders/internal/infra/database"
	iemail "opportunity_followup_reminders/internal/infra/email"
	"opportunity_followup_reminders/internal/infra/httpserver"
	"opportunity_followup_reminders/internal/infra/logger"
	"opportunity_followup_reminders/internal/infra/scheduler"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Get().Fatalf("FATAL: Could not load application configuration: %v", err)
	}

	logger.Init(cfg)
	log := logger.Get()
	log.Infof("Configuration loaded. LogLevel: %s, Environment: %s, LedgerPolicy: %s", cfg.LogLevel, cfg.Environment, cfg.LedgerWritePolicy)

	// Initialize Database Connection
	db, err := idb.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("FATAL: Could not connect to database: %v", err)
	}
	defer db.Close()
	log.Info("Database connection established successfully.")

	// Initialize Repositories
	oppRepo := idb.NewPostgresOpportunityRepository(db)
	profileRepo := idb.NewPostgresProfileRepository(db)
	reminderRepo := idb.NewPostgresReminderRepository(db)

	// Initialize Email Client
	emailClient := iemail.NewResendClient(cfg.ResendAPIKey, cfg.EmailFrom)

	// Initialize ReminderService
	reminderService := app.NewReminderService(
		oppRepo,
		profileRepo,
		reminderRepo,
		emailClient,
		log,
		cfg.AppBaseURL,
		cfg.LedgerWritePolicy,
	)
	log.Info("Reminder service initialized.")

	// Initialize ReminderScheduler
	reminderScheduler := scheduler.NewReminderScheduler(reminderService, log, cfg.CronSpecReminderSweep)
	if err := reminderScheduler.Start(); err != nil {
		log.Fatalf("FATAL: Could not start reminder scheduler: %v", err)
	}

	// Internal HTTP surface (health + manual sweep trigger)
	srv := httpserver.New(cfg.HTTPListenAddr, reminderService, db, log)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("FATAL: Internal HTTP surface failed: %v", err)
		}
	}()

	log.Info("Application setup complete. Scheduler and HTTP surface are running.")

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit // Block until a signal is received

	log.Info("Shutting down application...")
	reminderScheduler.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("HTTP surface shutdown error: %v", err)
	}
	log.Info("Application shut down gracefully.")
}
