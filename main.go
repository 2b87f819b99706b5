package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/Dineshmiriyam/AssetManagementApp-sub000/cmd"
	"github.com/Dineshmiriyam/AssetManagementApp-sub000/internal/container"
	"github.com/Dineshmiriyam/AssetManagementApp-sub000/internal/core/logger"
	"github.com/Dineshmiriyam/AssetManagementApp-sub000/internal/database"
	"github.com/Dineshmiriyam/AssetManagementApp-sub000/internal/middleware"
	"github.com/Dineshmiriyam/AssetManagementApp-sub000/internal/routes"
)

func init() {
	// Load .env file, but don't overwrite system environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: No .env file found, falling back to system environment variables.")
	}

	if len(os.Args) > 1 {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		cmd.Execute(ctx)
	}
}

func main() {
	appLogger := logger.NewLogger()
	defer appLogger.Sync()

	driver := os.Getenv("DB_DRIVER")
	if driver == "" {
		driver = database.DriverPostgres
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		appLogger.Fatal("DATABASE_URL is not set")
	}

	db, err := database.NewConnection(driver, dbURL)
	if err != nil {
		appLogger.Fatal("Could not connect to the database", zap.Error(err))
	}
	defer db.Close()

	appLogger.Info("Connected to the database", zap.String("driver", driver))

	c := container.NewAppContainer(db, driver, appLogger)

	if os.Getenv("APP_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(middleware.RecoveryMiddleware(appLogger))
	router.Use(middleware.TimeoutMiddleware(30 * time.Second))

	routes.RegisterPublicRoutes(router, c)
	routes.RegisterProtectedRoutes(router, c)
	routes.RegisterUtilityRoutes(router)

	host := os.Getenv("APP_HOST")
	if host == "" {
		host = ":8080"
	}

	appLogger.Info("Starting server", zap.String("host", host))
	if err := router.Run(host); err != nil {
		appLogger.Fatal("Server exited", zap.Error(err))
	}
}
