package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/color-studio/api/api"
	"github.com/color-studio/api/datastore"
	"github.com/color-studio/api/migrations"
	"github.com/color-studio/api/scheduler"
	"github.com/color-studio/api/studio"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	// Get configuration from environment
	config := api.Config{
		HTTPPort:           getEnv("HTTP_PORT", ":8080"),
		DatabaseType:       getEnv("DB_TYPE", "postgres"),
		DatabaseHost:       getEnv("DB_HOST", "localhost"),
		DatabaseUser:       getEnv("DB_USER", "postgres"),
		DatabasePassword:   getEnv("DB_PASSWORD", ""),
		DatabaseName:       getEnv("DB_NAME", "colorstudio"),
		SSLMode:            getEnv("SSL_MODE", "disable"),
		JwtSecret:          getEnv("JWT_SECRET", "your-secret-key-change-this"),
		JwtAccessDuration:  getEnvInt("JWT_ACCESS_DURATION", 900),     // 15 minutes
		JwtRefreshDuration: getEnvInt("JWT_REFRESH_DURATION", 604800), // 7 days
		JwtDomain:          getEnv("JWT_DOMAIN", ""),
		AllowedOrigins:     getEnvSlice("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173"),
		DevMode:            getEnvBool("DEV_MODE", true),
		MaxUploadBytes:     int64(getEnvInt("MAX_UPLOAD_BYTES", 10<<20)),
		MaxImagePixels:     int64(getEnvInt("MAX_IMAGE_PIXELS", 4096*4096)),
		SessionIdle:        time.Duration(getEnvInt("SESSION_IDLE_MINUTES", 60)) * time.Minute,
		PublicURL:          strings.TrimSuffix(getEnv("PUBLIC_URL", "http://localhost:8080"), "/"),
	}

	// Create database connection
	connStr := datastore.BuildDBConnStr(
		config.DatabaseHost,
		config.DatabasePassword,
		config.DatabaseUser,
		config.DatabaseName,
		config.SSLMode,
	)

	dbConn, dbErr := datastore.NewDB(config.DatabaseType, connStr)
	if dbErr != nil {
		log.Fatalf("Failed to connect to database: %v", dbErr)
	}
	defer dbConn.Close()

	// Run database migrations
	fmt.Println("Running database migrations...")
	if err := migrations.RunMigrations(dbConn); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Create user repository
	userRepo, userRepoErr := datastore.NewUserDatabase(dbConn)
	if userRepoErr != nil {
		log.Fatalf("Failed to create user repository: %v", userRepoErr)
	}

	// Create daily color repository
	dailyColorRepo, dailyColorRepoErr := datastore.NewDailyColorDatabase(dbConn)
	if dailyColorRepoErr != nil {
		log.Fatalf("Failed to create daily color repository: %v", dailyColorRepoErr)
	}

	// Create library repository
	libraryRepo, libraryRepoErr := datastore.NewLibraryDatabase(dbConn)
	if libraryRepoErr != nil {
		log.Fatalf("Failed to create library repository: %v", libraryRepoErr)
	}

	// Start scheduler for daily color generation
	colorScheduler := scheduler.NewScheduler(dailyColorRepo, nil)
	colorScheduler.Start()

	// Create application
	app := &api.Application{
		Config:         config,
		UserRepo:       userRepo,
		DailyColorRepo: dailyColorRepo,
		LibraryRepo:    libraryRepo,
		Scheduler:      colorScheduler,
		Studio:         studio.NewRegistry(libraryRepo),
		Extractions:    studio.NewExtractions(),
		Rand:           rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	// Drop studio sessions nobody has touched for a while
	expiryCtx, stopExpiry := context.WithCancel(context.Background())
	defer stopExpiry()
	go app.Studio.ExpireEvery(expiryCtx, time.Minute, config.SessionIdle)

	// Create and start server
	mux := http.NewServeMux()

	fmt.Println("Color Studio API Starting...")
	if err := app.Serve(mux); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intVal, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return intVal
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	boolVal, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return boolVal
}

func getEnvSlice(key, defaultValue string) []string {
	value := os.Getenv(key)
	if value == "" {
		value = defaultValue
	}
	return strings.Split(value, ",")
}
