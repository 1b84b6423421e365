package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"restaurant/cmd"
	httpin "restaurant/internal/adapters/in/http"
	"restaurant/internal/adapters/out/postgres/menusource"
	"restaurant/internal/adapters/out/postgres/orderrepo"
	"restaurant/internal/adapters/out/postgres/staffrepo"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	configs := getConfigs(logger)

	gormDB, err := gorm.Open(postgres.Open(configs.DSN()), &gorm.Config{})
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err := gormDB.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.ItemDTO{},
		&orderrepo.CommandDTO{},
		&orderrepo.SnapshotDTO{},
		&staffrepo.StaffDTO{},
		&menusource.ProductDTO{},
	); err != nil {
		logger.Error("Failed to migrate database schema", "error", err)
		os.Exit(1)
	}

	root, err := cmd.NewCompositionRoot(configs, gormDB, logger)
	if err != nil {
		logger.Error("Failed to build application", "error", err)
		os.Exit(1)
	}
	defer root.Close()

	jobManager := root.CreateJobManager(logger)
	if err := jobManager.StartAll(); err != nil {
		logger.Error("Failed to start background jobs", "error", err)
		os.Exit(1)
	}
	defer jobManager.StopAll()

	startWebServer(root, configs)
}

func getConfigs(logger *slog.Logger) cmd.Config {
	if err := godotenv.Load(".env"); err != nil {
		logger.Info("No .env file found, using process environment")
	}

	return cmd.Config{
		HTTPPort:      envOrDefault("HTTP_PORT", "8080"),
		DBHost:        envOrDefault("DB_HOST", "localhost"),
		DBPort:        envOrDefault("DB_PORT", "5432"),
		DBUser:        os.Getenv("DB_USER"),
		DBPassword:    os.Getenv("DB_PASSWORD"),
		DBName:        os.Getenv("DB_NAME"),
		DBSslMode:     envOrDefault("DB_SSLMODE", "disable"),
		StationsJSON:  envOrDefault("KITCHEN_STATIONS", defaultStations),
		MenuTTL:       envDuration("MENU_TTL", 5*time.Minute),
		NotifyTimeout: envDuration("NOTIFY_TIMEOUT", 5*time.Second),
		WebhookURL:    os.Getenv("NOTIFY_WEBHOOK_URL"),
		AmqpURL:       os.Getenv("AMQP_URL"),
		AmqpExchange:  envOrDefault("AMQP_EXCHANGE", "restaurant.orders"),
	}
}

const defaultStations = `[
	{"name":"bar","categories":["BEBIDAS"],"capacity":8},
	{"name":"cocina","categories":["COMIDAS"],"capacity":12},
	{"name":"reposteria","categories":["POSTRES"],"capacity":6},
	{"name":"overflow","capacity":16,"overflow":true}
]`

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func startWebServer(root *cmd.CompositionRoot, configs cmd.Config) {
	settings := httpin.NewSettings(map[string]string{
		"http_port":        configs.HTTPPort,
		"kitchen_stations": configs.StationsJSON,
		"menu_ttl":         configs.MenuTTL.String(),
		"notify_timeout":   configs.NotifyTimeout.String(),
		"webhook_url":      configs.WebhookURL,
	})

	server := httpin.NewServer(root.CreateHTTPHandlers(), root.MenuProvider(), settings)

	e := echo.New()
	e.Logger.SetLevel(log.INFO)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)))
}
