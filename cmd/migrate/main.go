package main

import (
	"log"

	"ai-journaling-be/internal/config"
	"ai-journaling-be/internal/model"
	"ai-journaling-be/pkg/database"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()
	if cfg.Database.Connection == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	// 2. Connect to Database using existing GORM helpers
	db, err := database.NewGormDBFromDSN(cfg.Database.Connection, cfg.Database.Debug)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Starting GORM migration...")

	// 3. Pre-Migration: gen_random_uuid() lives in pgcrypto on older Postgres.
	log.Println("Step 1: Setting up extensions...")
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto;`).Error; err != nil {
		log.Printf("Warn: Failed to create pgcrypto extension: %v. Continuing...", err)
	}

	// 4. AutoMigrate All Models
	models := []interface{}{
		&model.User{},
		&model.Journal{},
		&model.Goal{},
		&model.ChatSession{},
		&model.ChatMessage{},
		&model.ChatHistory{},
		&model.JournalSummary{},
		&model.ChatSummary{},
		&model.UserProfile{},
		&model.TherapistInsight{},
	}
	log.Printf("Step 2: Running AutoMigrate for %d tables...", len(models))

	if err := db.AutoMigrate(models...); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	log.Println("Success: Database migration completed.")
}
