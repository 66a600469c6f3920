package main

import (
	"context"
	"log"

	"github.com/SuryaKTiwari11/Lost-FoundPortal-sub002/internal/router"
	"github.com/SuryaKTiwari11/Lost-FoundPortal-sub002/pkg/config"
	"github.com/SuryaKTiwari11/Lost-FoundPortal-sub002/pkg/firebase"
	"github.com/SuryaKTiwari11/Lost-FoundPortal-sub002/validators"
	"github.com/labstack/echo/v4"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database connections
	db, err := config.InitDB()
	if err != nil {
		log.Fatalf("Failed to initialize databases: %v", err)
	}
	defer db.CloseDB() // Ensure database connections are closed when main exits

	// Initialize Firebase (optional: firebase-login and /upload need it)
	ctx := context.Background()
	firebaseApp, err := firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath, cfg.StorageBucket)
	if err != nil {
		log.Printf("Firebase not available: %v", err)
		firebaseApp = nil
	}

	// Create Echo instance
	e := echo.New()

	// Validator
	e.Validator = validators.NewValidator()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Setup routes and dependencies
	router.SetupRoutes(e, db.Postgres, db.Mongo, firebaseApp, cfg)

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
