package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"pharmaflow/cmd"
	_ "pharmaflow/docs"
	"pharmaflow/internal/generated/servers"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	_ "github.com/lib/pq"
	echoSwagger "github.com/swaggo/echo-swagger"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := mustConnectDB(configs)

	app := cmd.NewCompositionRoot(configs, gormDB, logger)

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("cannot start scheduled jobs: %v", err)
	}

	e := newWebServer(&app)

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)); err != nil && err != http.ErrServerClosed {
			e.Logger.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		e.Logger.Error(err)
	}

	jobManager.StopAll()
	app.Dispatcher().Wait()
}

func newWebServer(app *cmd.CompositionRoot) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	gate := app.CreateAccessGate()
	e.Use(gate.Middleware())

	servers.RegisterHandlers(e, app.CreateServer())
	e.POST("/webhooks/payment", app.CreatePaymentWebhookHandler().Handle)
	e.GET("/orders/stream", app.CreateStreamHandler().Handle)

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// mustConnectDB opens the pool through lib/pq and hands it to GORM. The
// repositories inspect pq.Error codes on unique violations, which only works
// when lib/pq is the driver underneath.
func mustConnectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser, configs.DBPassword, configs.DBName, configs.DBSslMode)

	sqlDB, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatalf("cannot open database: %v", err)
	}
	if err := sqlDB.Ping(); err != nil {
		log.Fatalf("cannot reach database: %v", err)
	}

	gormDB, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: sqlDB}), &gorm.Config{})
	if err != nil {
		log.Fatalf("cannot initialize gorm: %v", err)
	}
	return gormDB
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:             goDotEnvVariable("HTTP_PORT"),
		DBHost:               goDotEnvVariable("DB_HOST"),
		DBPort:               goDotEnvVariable("DB_PORT"),
		DBUser:               goDotEnvVariable("DB_USER"),
		DBPassword:           goDotEnvVariable("DB_PASSWORD"),
		DBName:               goDotEnvVariable("DB_NAME"),
		DBSslMode:            goDotEnvVariable("DB_SSLMODE"),
		PaymentWebhookSecret: goDotEnvVariable("PAYMENT_WEBHOOK_SECRET"),
		SMSGatewayURL:        goDotEnvVariable("SMS_GATEWAY_URL"),
		SMSGatewayAPIKey:     goDotEnvVariable("SMS_GATEWAY_API_KEY"),
		SMSSenderName:        goDotEnvVariable("SMS_SENDER_NAME"),
		AdminEmails:          splitList(goDotEnvVariable("ADMIN_EMAILS")),
		StreamHeartbeat:      durationVariable("STREAM_HEARTBEAT", 15*time.Second),
		StreamRetry:          durationVariable("STREAM_RETRY", 3*time.Second),
		AckReminderThreshold: durationVariable("ACK_REMINDER_THRESHOLD", 15*time.Minute),
		InboxMaxAttempts:     intVariable("INBOX_MAX_ATTEMPTS", 10),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func durationVariable(key string, fallback time.Duration) time.Duration {
	raw := goDotEnvVariable(key)
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		log.Fatalf("invalid duration for %s: %v", key, err)
	}
	return d
}

func intVariable(key string, fallback int) int {
	raw := goDotEnvVariable(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		log.Fatalf("invalid integer for %s: %v", key, err)
	}
	return n
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	var items []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
