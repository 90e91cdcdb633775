package main

import (
	"log"
	"os"
	"strings"

	"bandoxanh-be/internal/model"
	"bandoxanh-be/pkg/database"

	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	// 2. Connect to Database using existing GORM helpers
	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Starting Authoritative GORM Migration...")

	// 3. Pre-Migration: Extensions (gen_random_uuid lives in pgcrypto)
	log.Println("Step 1: Setting up Extensions...")

	setupSQL := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto;`,
		`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	}

	for _, sql := range setupSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute setup SQL: %v. Continuing...", err)
		}
	}

	// 4. AutoMigrate All Models
	log.Println("Step 2: Running AutoMigrate...")

	models := []interface{}{
		// Accounts
		&model.User{},
		&model.UserProvider{},

		// Community feed
		&model.Post{},
		&model.Comment{},
		&model.Like{},
		&model.Reaction{},
		&model.Poll{},
		&model.PollOption{},
		&model.PollVote{},
		&model.Follow{},

		// Gamification & AI
		&model.Badge{},
		&model.UserBadge{},
		&model.Analysis{},

		// Payments
		&model.ProUpgrade{},

		// Notifications
		&model.NotificationType{},
		&model.Notification{},

		// Map content
		&model.Station{},
		&model.Event{},
		&model.News{},
		&model.DonationPoint{},
		&model.BikeRental{},
		&model.Restaurant{},
		&model.DiyIdea{},
	}

	if err := db.AutoMigrate(models...); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	// 5. Post-Migration: promote configured admin accounts
	promoteAdmins(db)

	log.Println("✅ Success: Database migration completed successfully via GORM.")
}

// promoteAdmins flips Role to admin for every email in ADMIN_EMAILS
// (comma separated). Accounts that do not exist yet are skipped; the
// promotion re-runs on the next migrate after they register.
func promoteAdmins(db *gorm.DB) {
	raw := os.Getenv("ADMIN_EMAILS")
	if raw == "" {
		return
	}

	log.Println("Step 3: Promoting configured admin accounts...")
	for _, email := range strings.Split(raw, ",") {
		email = strings.TrimSpace(email)
		if email == "" {
			continue
		}
		res := db.Model(&model.User{}).Where("email = ?", email).Update("role", "admin")
		if res.Error != nil {
			log.Printf("Warn: Failed to promote %s: %v", email, res.Error)
			continue
		}
		if res.RowsAffected > 0 {
			log.Printf("Promoted %s to admin", email)
		}
	}
}
