package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fitsync/backend/internal/api"
	"fitsync/backend/internal/auth"
	"fitsync/backend/internal/config"
	"fitsync/backend/internal/events"
	"fitsync/backend/internal/generation"
	"fitsync/backend/internal/prompt"
	"fitsync/backend/internal/repository"
	"fitsync/backend/internal/repository/memory"
	"fitsync/backend/internal/repository/mongo"
	"fitsync/backend/internal/service"
	"fitsync/backend/internal/storage"

	"github.com/gin-gonic/gin"
)

type repositories struct {
	profiles     repository.ProfileRepository
	mealPlans    repository.MealPlanRepository
	workoutPlans repository.WorkoutPlanRepository
	progress     repository.ProgressRepository
	close        func()
}

// @title FitSync API
// @version 1.0
// @description Meal plans, workout programmes and coaching for the FitSync app.
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	log.Println("Starting FitSync API server...")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}
	log.Println("Configuration loaded.")
	gin.SetMode(cfg.Server.Mode)

	// --- Repositories ---
	repos, err := openRepositories(cfg.Database)
	if err != nil {
		log.Fatalf("FATAL: Could not open %s repositories: %v", cfg.Database.Driver, err)
	}
	defer repos.close()

	// --- Generation provider ---
	ctx := context.Background()
	provider, err := generation.NewVertexProvider(ctx, generation.VertexConfig{
		ProjectID:       cfg.Generation.ProjectID,
		Location:        cfg.Generation.Location,
		Model:           cfg.Generation.Model,
		CredentialsFile: cfg.Generation.CredentialsFile,
	})
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize Vertex AI provider: %v", err)
	}
	defer provider.Close()

	// --- Storage ---
	var exportStorage storage.ObjectStorage = storage.NoopStorage{}
	if cfg.S3.Enabled() {
		log.Println("Initializing plan export storage...")
		exportStorage, err = storage.NewS3Storage(ctx, cfg.S3)
		if err != nil {
			log.Fatalf("FATAL: Failed to initialize S3 storage: %v", err)
		}
	} else {
		log.Println("WARN: s3.bucket_name not set, plan export disabled")
	}

	// --- Events ---
	var publisher events.Publisher = events.NoopPublisher{}
	if cfg.Kafka.Enabled() {
		log.Printf("Publishing events to Kafka topic %s", cfg.Kafka.Topic)
		publisher = events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			log.Printf("ERROR: Failed to close event publisher: %v", err)
		}
	}()

	// --- Services ---
	log.Println("Initializing services...")
	entitlements := service.NewEntitlements(repos.profiles)
	generator := service.NewGenerator(provider, prompt.Default(), cfg.Generation.Timeout)
	services := api.Services{
		Plans: service.NewPlanService(service.PlanServiceDeps{
			Entitlements:    entitlements,
			MealPlans:       repos.mealPlans,
			WorkoutPlans:    repos.workoutPlans,
			Generator:       generator,
			Storage:         exportStorage,
			Events:          publisher,
			ExportURLExpiry: cfg.Export.URLExpiry,
		}),
		Coach:    service.NewCoachService(entitlements, repos.progress, generator),
		Progress: service.NewProgressService(repos.progress, publisher, nil),
		Profiles: service.NewProfileService(repos.profiles, publisher),
	}

	router := gin.Default() // Includes Logger and Recovery middleware
	api.SetupRoutes(router, auth.NewJWTVerifier(cfg.JWT.Secret, cfg.JWT.Issuer), services)

	// --- Start HTTP Server ---
	// Plan generation can take most of the provider timeout.
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.Generation.Timeout + 10*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Server starting on %s", cfg.Server.Address)

	// --- Graceful Shutdown ---
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("FATAL: ListenAndServe Error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Printf("ERROR: Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting.")
}

func openRepositories(cfg config.DatabaseConfig) (*repositories, error) {
	if cfg.Driver == config.DriverMemory {
		log.Println("WARN: Using in-memory repositories, data is lost on restart")
		return &repositories{
			profiles:     memory.NewProfileRepository(),
			mealPlans:    memory.NewMealPlanRepository(),
			workoutPlans: memory.NewWorkoutPlanRepository(),
			progress:     memory.NewProgressRepository(),
			close:        func() {},
		}, nil
	}

	dbClient, err := mongo.ConnectDB(cfg.URI)
	if err != nil {
		return nil, err
	}
	appDB := dbClient.Database(cfg.Name)
	log.Println("Database connection established.")

	go func() { // Run index creation in background
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		mongo.EnsureIndexes(ctx, appDB)
		log.Println("Index creation process completed.")
	}()

	return &repositories{
		profiles:     mongo.NewMongoProfileRepository(appDB),
		mealPlans:    mongo.NewMongoMealPlanRepository(appDB),
		workoutPlans: mongo.NewMongoWorkoutPlanRepository(appDB),
		progress:     mongo.NewMongoProgressRepository(appDB),
		close: func() {
			log.Println("Disconnecting MongoDB...")
			if err := mongo.DisconnectDB(dbClient); err != nil {
				log.Printf("ERROR: Failed to disconnect MongoDB: %v", err)
			}
		},
	}, nil
}
