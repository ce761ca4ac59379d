package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"backoffice/internal/config"
	"backoffice/internal/db"
	"backoffice/internal/handlers"
	"backoffice/internal/logging"
	"backoffice/internal/services"
	"backoffice/internal/store"
	"backoffice/internal/websocket"

	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()
	logger := logging.New(cfg.LogLevel)
	defer func() { _ = logger.Sync() }()

	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("database connect", zap.Error(err))
	}
	defer database.Close()

	ledger := store.NewLedgerStore(database)
	donations := store.NewDonationStore(database)
	donors := store.NewDonorStore(database)
	projects := store.NewProjectStore(database)
	activities := store.NewActivityStore(database)
	approvals := store.NewApprovalStore(database)
	employees := store.NewEmployeeStore(database)
	payments := store.NewPaymentStore(database)
	notifications := store.NewNotificationStore(database)
	reports := store.NewReportStore(database)
	files := store.NewFileStore(database)
	savings := store.NewSavingsStore(database)
	abstinence := store.NewAbstinenceStore(database)

	txRunner := db.NewTxRunner(database)
	hub := websocket.NewHub()

	donationService := services.NewDonationService(txRunner, donations, ledger, notifications, hub, logger)
	approvalService := services.NewApprovalService(txRunner, activities, approvals, projects, logger)
	budgetService := services.NewBudgetService(txRunner, approvals, activities, ledger, hub, logger)
	paymentService := services.NewPaymentService(txRunner, payments, employees, logger)
	savingsService := services.NewSavingsService(txRunner, savings, logger)
	abstinenceService := services.NewAbstinenceService(txRunner, abstinence, logger)

	handler := handlers.New(cfg, logger, handlers.Deps{
		TxRunner:      txRunner,
		Donations:     donationService,
		Approvals:     approvalService,
		Budgets:       budgetService,
		Payments:      paymentService,
		Savings:       savingsService,
		Abstinence:    abstinenceService,
		Ledger:        ledger,
		DonationRows:  donations,
		Donors:        donors,
		Projects:      projects,
		Activities:    activities,
		ApprovalRows:  approvals,
		Employees:     employees,
		PaymentRows:   payments,
		Notifications: notifications,
		Reports:       reports,
		Files:         files,
		ServeWS: func(w http.ResponseWriter, r *http.Request) {
			websocket.ServeWS(w, r, hub)
		},
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler.Routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("back-office API listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)
	<-shutdown

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("shutdown error", zap.Error(err))
	}
	logger.Info("server stopped")
}
