package main

import (
	"context"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/salespilot/backoffice/internal/auth"
	"github.com/salespilot/backoffice/internal/cache"
	"github.com/salespilot/backoffice/internal/config"
	"github.com/salespilot/backoffice/internal/db"
	api "github.com/salespilot/backoffice/internal/http"
	"github.com/salespilot/backoffice/internal/http/handlers"
	rl "github.com/salespilot/backoffice/internal/http/rate_limiter"
	"github.com/salespilot/backoffice/internal/notifier"
	"github.com/salespilot/backoffice/internal/payment"
	"github.com/salespilot/backoffice/internal/report"
	"github.com/salespilot/backoffice/internal/repo"
)

// @title SalesPilot Back Office API
// @version 1.0
// @description REST API for sales, expenses, invoicing and the metrics reporting engine.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	auth.Configure(cfg.JWTSecret)

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		logger.Fatal("could not connect to redis", zap.Error(err))
	}
	defer rdb.Close()

	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("could not connect to database", zap.Error(err))
	}
	defer database.Close()

	repo.SetQueryTimeout(cfg.QueryTimeout)
	analyticsRepo := repo.NewPostgresAnalyticsRepository(database)
	reportRepo := repo.NewPostgresReportRepository(database)
	inventoryRepo := repo.NewPostgresInventoryRepository(database)
	reportCache := cache.NewReportCache(rdb)

	reportService := report.NewService(analyticsRepo, reportRepo, inventoryRepo, reportCache, cfg.Thresholds, logger)

	handlers.SetLogger(logger)
	handlers.SetProductRepo(repo.NewPostgresProductRepository(database))
	handlers.SetSaleRepo(repo.NewPostgresSaleRepository(database))
	handlers.SetExpenseRepo(repo.NewPostgresExpenseRepository(database))
	handlers.SetInvoiceRepo(repo.NewPostgresInvoiceRepository(database))
	handlers.SetUserRepo(repo.NewPostgresUserRepository(database))
	handlers.SetPersonRepo(repo.NewPostgresPersonRepository(database))
	handlers.SetReportRepo(reportRepo)
	handlers.SetInventoryRepo(inventoryRepo)
	handlers.SetReportService(reportService)
	handlers.SetRefreshTokenStore(auth.NewRefreshTokenStore(rdb))
	handlers.SetPayPalClient(payment.NewPayPalClient(cfg.PayPal.ClientID, cfg.PayPal.Secret, cfg.PayPal.Mode))

	mailer := notifier.NewMailer(cfg.SMTP, logger)

	go rl.StartVisitorCleanupLoop()
	go startDailyReportLoop(reportService, logger)
	if mailer.Enabled() {
		go notifier.StartDailyAlertSummary(mailer, reportService, logger)
	}

	r := api.NewRouter()
	logger.Info("server listening", zap.String("addr", cfg.HTTPAddr))
	if err := http.ListenAndServe(cfg.HTTPAddr, r); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

// startDailyReportLoop recomputes the month-to-date report and refreshes the
// inventory snapshots once a day, shortly before midnight.
func startDailyReportLoop(svc *report.Service, logger *zap.Logger) {
	for {
		now := time.Now()
		next := time.Date(now.Year(), now.Month(), now.Day(), 23, 55, 0, 0, now.Location())
		if now.After(next) {
			next = next.Add(24 * time.Hour)
		}
		time.Sleep(time.Until(next))

		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		if err := svc.RefreshInventorySnapshots(ctx); err != nil {
			logger.Error("scheduled inventory refresh failed", zap.Error(err))
		}
		rng := report.ResolveRange("monthly", time.Now())
		if _, err := svc.ComputeReport(ctx, rng); err != nil {
			logger.Error("scheduled report computation failed", zap.Error(err))
		}
		cancel()
	}
}
