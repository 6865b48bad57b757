package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"familyservices/internal/config"
	"familyservices/internal/db"
	"familyservices/internal/email"
	"familyservices/internal/jobs"
	"familyservices/internal/metrics"
	"familyservices/internal/server"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := config.Load()

	siteCfg, err := config.LoadSiteConfig()
	if err != nil {
		log.Fatalf("Failed to load site config: %v", err)
	}
	cfg.Site = siteCfg

	database, err := db.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Migrations completed successfully")

	metrics.Init(database)

	notifier := email.NewNotifier(cfg)
	if !cfg.IsEmailEnabled() {
		log.Println("SMTP is not configured; notification emails are disabled")
	}

	srv := server.New(cfg)
	srv.RegisterRoutes(database, notifier)

	tokenCleaner := jobs.NewTokenCleaner(database, time.Hour)
	go tokenCleaner.Start(ctx)

	go func() {
		if err := srv.Start(); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	cancel()
	if err := srv.Shutdown(); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exited")
}
