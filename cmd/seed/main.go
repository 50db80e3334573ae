package main

import (
	"context"
	"errors"
	"log"
	"os"
	"strings"

	"siscav/internal/auth"
	"siscav/internal/config"
	"siscav/internal/db"
	apperrors "siscav/internal/errors"
	"siscav/internal/model"
	"siscav/internal/plate"
	"siscav/internal/repository"
)

// Seed script: creates the admin user from ADMIN_EMAIL / ADMIN_PASSWORD and
// optionally preloads whitelist plates from SEED_PLATES (comma-separated).
// There is no registration endpoint; this is the only way users are created.
func main() {
	log.Println("Starting seed script...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.AuthorizedPlate{}, &model.AccessLog{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()

	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Fatal("ADMIN_EMAIL and ADMIN_PASSWORD must be set")
	}

	userRepo := repository.NewUserRepository(gormDB)
	hash, err := auth.HashPassword(password)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	err = userRepo.Create(ctx, &model.User{Email: email, PasswordHash: hash})
	switch {
	case err == nil:
		log.Printf("Created admin user %s", email)
	case errors.Is(err, apperrors.ErrDuplicateEmail):
		log.Printf("Admin user %s already exists, skipping", email)
	default:
		log.Fatalf("Failed to create admin user: %v", err)
	}

	seedPlates(ctx, repository.NewPlateRepository(gormDB))

	log.Println("Seed completed")
}

func seedPlates(ctx context.Context, plateRepo repository.PlateRepository) {
	raw := os.Getenv("SEED_PLATES")
	if raw == "" {
		return
	}

	for _, p := range strings.Split(raw, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if !plate.ValidateFormat(p) {
			log.Printf("Skipping %q: not a valid plate format", p)
			continue
		}
		normalized, err := plate.Normalize(p)
		if err != nil {
			log.Printf("Skipping %q: %v", p, err)
			continue
		}

		err = plateRepo.Create(ctx, &model.AuthorizedPlate{
			Plate:           p,
			NormalizedPlate: normalized,
			Description:     "seeded",
		})
		switch {
		case err == nil:
			log.Printf("Whitelisted plate %s", normalized)
		case errors.Is(err, apperrors.ErrDuplicatePlate):
			log.Printf("Plate %s already whitelisted, skipping", normalized)
		default:
			log.Fatalf("Failed to whitelist plate %s: %v", normalized, err)
		}
	}
}
