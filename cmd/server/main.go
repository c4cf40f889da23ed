package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"billtrack/internal/config"
	"billtrack/internal/handler"
	"billtrack/internal/infra"
	"billtrack/internal/repository"
	"billtrack/internal/router"
	"billtrack/internal/service"
	"billtrack/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if cfg.Env == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	mailer := infra.NewMailer(cfg)
	broadcaster := infra.NewRedisBroadcaster(rdb)
	dispatcher := worker.NewDispatcher(rdb)

	// Repositories
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	soldProductRepo := repository.NewSoldProductRepository(db)
	cashBillRepo := repository.NewCashBillRepository(db)
	creditBillRepo := repository.NewCreditBillRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	staffRepo := repository.NewStaffRepository(db)
	reminderRepo := repository.NewReminderRepository(db)

	// Services
	authSvc := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTExpirationHours, cfg.JWTRefreshHours)
	productSvc := service.NewProductService(productRepo, rdb)
	soldProductSvc := service.NewSoldProductService(soldProductRepo)
	billSvc := service.NewBillService(cashBillRepo, creditBillRepo, dispatcher)
	customerSvc := service.NewCustomerService(customerRepo)
	staffSvc := service.NewStaffService(staffRepo)
	reminderSvc := service.NewReminderService(reminderRepo)
	inventorySvc := service.NewInventoryService(
		productRepo, soldProductRepo, cashBillRepo, creditBillRepo,
		dispatcher, broadcaster, cfg.AlertRecipient, cfg.VelocityWindowDays,
	)

	// Background workers
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	worker.StartWorkerPool(ctx, rdb, &worker.WorkerHandlers{
		Email:   worker.NewEmailWorker(mailer),
		Invoice: worker.NewInvoiceWorker(cfg, cashBillRepo, creditBillRepo, dispatcher),
	}, cfg.WorkerPoolSize)
	worker.StartReminderCron(ctx, reminderRepo, dispatcher)

	engine := router.New(cfg, router.Handlers{
		Health:       handler.NewHealthHandler(db, rdb, mailer),
		Auth:         handler.NewAuthHandler(authSvc),
		Users:        handler.NewUsersHandler(authSvc),
		Products:     handler.NewProductsHandler(productSvc),
		SoldProducts: handler.NewSoldProductsHandler(soldProductSvc),
		Bills:        handler.NewBillsHandler(billSvc, cfg),
		Customers:    handler.NewCustomersHandler(customerSvc),
		Staff:        handler.NewStaffHandler(staffSvc),
		Reminders:    handler.NewRemindersHandler(reminderSvc),
		Inventory:    handler.NewInventoryHandler(inventorySvc),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Int("port", cfg.Port).Str("env", cfg.Env).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	if err := rdb.Close(); err != nil {
		log.Warn().Err(err).Msg("redis close failed")
	}
	log.Info().Msg("server stopped")
}
