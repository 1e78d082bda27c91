package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"dispatch/cmd"
	_ "dispatch/docs"
	"dispatch/internal/adapters/in/http"
	"dispatch/internal/adapters/out/postgres/driverrepo"
	"dispatch/internal/adapters/out/postgres/orderrepo"
	"dispatch/internal/adapters/out/postgres/requestrepo"
	"dispatch/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := connectDB(configs)

	app := cmd.NewCompositionRoot(configs, gormDB, logger)

	jobManager := jobs.NewJobManager(
		app.CreateSweepOrdersCommandHandler(),
		configs.SweepSchedule,
		logger,
	)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs)
}

func getConfigs() cmd.Config {
	// Environment variables may come from the process environment instead
	_ = godotenv.Load(".env")

	return cmd.Config{
		HTTPPort:   requiredEnv("HTTP_PORT"),
		DBHost:     requiredEnv("DB_HOST"),
		DBPort:     requiredEnv("DB_PORT"),
		DBUser:     requiredEnv("DB_USER"),
		DBPassword: requiredEnv("DB_PASSWORD"),
		DBName:     requiredEnv("DB_NAME"),
		DBSslMode:  requiredEnv("DB_SSLMODE"),

		NotificationServiceURL: requiredEnv("NOTIFICATION_SERVICE_URL"),
		PaymentServiceURL:      requiredEnv("PAYMENT_SERVICE_URL"),
		CollaboratorTimeout:    durationEnv("COLLABORATOR_TIMEOUT", 10*time.Second),

		DispatchInitialRadiusKm: floatEnv("DISPATCH_INITIAL_RADIUS_KM", 5),
		DispatchMaxRadiusKm:     floatEnv("DISPATCH_MAX_RADIUS_KM", 20),
		PendingMaxAge:           durationEnv("DISPATCH_PENDING_MAX_AGE", 30*time.Minute),
		EscalationThreshold:     durationEnv("DISPATCH_ESCALATION_THRESHOLD", 25*time.Minute),
		HardTimeout:             durationEnv("DISPATCH_HARD_TIMEOUT", 30*time.Minute),
		SweepSchedule:           envOrDefault("DISPATCH_SWEEP_SCHEDULE", "0 */5 * * * *"),
	}
}

func requiredEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		log.Fatalf("Missing required environment variable %s", key)
	}
	return value
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}

	parsed, err := time.ParseDuration(value)
	if err != nil {
		log.Fatalf("Invalid duration in %s: %v", key, err)
	}
	return parsed
}

func floatEnv(key string, fallback float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}

	var parsed float64
	if _, err := fmt.Sscanf(value, "%f", &parsed); err != nil {
		log.Fatalf("Invalid number in %s: %v", key, err)
	}
	return parsed
}

func connectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	// TranslateError turns unique index violations into gorm.ErrDuplicatedKey,
	// which the delivery request repository relies on
	gormDB, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = gormDB.AutoMigrate(
		&orderrepo.OrderDTO{},
		&driverrepo.DriverDTO{},
		&requestrepo.DeliveryRequestDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}

	return gormDB
}

func startWebServer(app *cmd.CompositionRoot, configs cmd.Config) {
	server := http.NewServer(
		app.CreateStartDriverSearchCommandHandler(),
		app.CreateAcceptDeliveryRequestCommandHandler(),
		app.CreateRejectDeliveryRequestCommandHandler(),
		app.CreateUpdateDeliveryStatusCommandHandler(),
		app.CreateGetDriverDeliveryRequestsQueryHandler(),
		app.CreateGetOrdersInSearchQueryHandler(),
		configs.DispatchInitialRadiusKm,
	)

	e := echo.New()
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)))
}
