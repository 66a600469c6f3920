package router

import (
	"log"
	"net/http"

	fbauth "firebase.google.com/go/v4/auth"
	fbstorage "firebase.google.com/go/v4/storage"
	"github.com/SuryaKTiwari11/Lost-FoundPortal-sub002/internal/handlers"
	"github.com/SuryaKTiwari11/Lost-FoundPortal-sub002/internal/middleware"
	"github.com/SuryaKTiwari11/Lost-FoundPortal-sub002/internal/models"
	"github.com/SuryaKTiwari11/Lost-FoundPortal-sub002/internal/repositories"
	"github.com/SuryaKTiwari11/Lost-FoundPortal-sub002/pkg/config"
	"github.com/SuryaKTiwari11/Lost-FoundPortal-sub002/pkg/firebase"
	"github.com/SuryaKTiwari11/Lost-FoundPortal-sub002/pkg/mailer"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	e.HTTPErrorHandler = envelopeErrorHandler
	log.Println("Global middleware configured.")
}

// envelopeErrorHandler renders every error in the API envelope:
// {success: false, error: ..., details?: ...}.
func envelopeErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	message := "Internal server error"
	var details interface{}

	if he, ok := err.(*echo.HTTPError); ok {
		status = he.Code
		switch m := he.Message.(type) {
		case string:
			message = m
		default:
			message = http.StatusText(status)
			details = he.Message
		}
	} else {
		message = err.Error()
	}

	if jsonErr := c.JSON(status, models.APIResponse{Success: false, Error: message, Details: details}); jsonErr != nil {
		log.Printf("Failed to write error response: %v\n", jsonErr)
	}
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, pgdb *gorm.DB, mgClient *mongo.Client, firebaseApp *firebase.App, cfg *config.Config) {
	// AutoMigrate PostgreSQL models
	if err := pgdb.AutoMigrate(&models.User{}); err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed.")

	mongoDB := mgClient.Database(cfg.MongoDatabase)

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(pgdb)
	itemRepo := repositories.NewMongoItemRepository(mongoDB)
	claimRepo := repositories.NewMongoClaimRepository(mongoDB)
	matchRepo := repositories.NewMongoMatchRepository(mongoDB)
	commRepo := repositories.NewMongoCommunicationRepository(mongoDB)

	// --- Outbound email ---
	var mail mailer.Mailer = mailer.NoopMailer{}
	if cfg.SMTPHost != "" {
		mail = mailer.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom)
		log.Println("SMTP mailer configured.")
	} else {
		log.Println("No SMTP relay configured; outbound mail is logged only.")
	}

	// --- Unprotected routes ---
	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(userRepo, firebaseAuthOrNil(firebaseApp), cfg.JWTSecret)
	authHandler.RegisterAuthRoutes(authGroup)
	log.Println("Auth routes configured.")

	public := e.Group("/api/v1")
	itemHandler := handlers.NewItemHandler(itemRepo)
	itemHandler.RegisterPublicRoutes(public)

	uploadHandler := handlers.NewUploadHandler(firebaseStorageOrNil(firebaseApp), cfg.StorageBucket)
	uploadHandler.RegisterUploadRoutes(public)
	log.Println("Public item and upload routes configured.")

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware())
	log.Println("JWT authentication middleware applied to /api/v1 group.")

	userHandler := handlers.NewUserHandler(userRepo)
	userHandler.RegisterProfileRoutes(api)
	log.Println("User profile routes configured.")

	itemHandler.RegisterItemRoutes(api)
	log.Println("Item report routes configured.")

	claimHandler := handlers.NewClaimHandler(claimRepo, itemRepo, userRepo, commRepo, mail)
	claimHandler.RegisterClaimRoutes(api)
	log.Println("Claim routes configured.")

	matchHandler := handlers.NewMatchHandler(matchRepo, itemRepo, userRepo, commRepo, mail)
	matchHandler.RegisterMatchRoutes(api)
	log.Println("Match routes configured.")

	notificationHandler := handlers.NewNotificationHandler(commRepo, userRepo, mail)
	notificationHandler.RegisterNotificationRoutes(api)
	log.Println("Notification routes configured.")

	// --- Admin routes (require JWT + admin role) ---
	admin := e.Group("/api/v1/admin")
	admin.Use(middleware.JWTAuthMiddleware())
	admin.Use(middleware.AdminOnly())

	adminHandler := handlers.NewAdminHandler(itemRepo, claimRepo, matchRepo, userRepo, commRepo)
	adminHandler.RegisterAdminRoutes(admin)

	verificationHandler := handlers.NewVerificationHandler(itemRepo)
	verificationHandler.RegisterAdminVerificationRoutes(admin)

	claimHandler.RegisterAdminClaimRoutes(admin)
	matchHandler.RegisterAdminMatchRoutes(admin)
	log.Println("Admin routes configured.")

	log.Println("All routes configured.")
}

// firebaseAuthOrNil and firebaseStorageOrNil unwrap an optional firebase app;
// handlers degrade to 503 on the affected routes when it is absent.
func firebaseAuthOrNil(app *firebase.App) *fbauth.Client {
	if app == nil {
		return nil
	}
	return app.AuthClient
}

func firebaseStorageOrNil(app *firebase.App) *fbstorage.Client {
	if app == nil {
		return nil
	}
	return app.StorageClient
}
