// Package main is the entry point for the sactpaper API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Alejoxd70/sactpaper-stationery/internal/config"
	"github.com/Alejoxd70/sactpaper-stationery/internal/domain/auth"
	"github.com/Alejoxd70/sactpaper-stationery/internal/domain/customer"
	"github.com/Alejoxd70/sactpaper-stationery/internal/domain/inventory"
	"github.com/Alejoxd70/sactpaper-stationery/internal/domain/ledger"
	"github.com/Alejoxd70/sactpaper-stationery/internal/domain/reports"
	"github.com/Alejoxd70/sactpaper-stationery/internal/domain/sale"
	v1 "github.com/Alejoxd70/sactpaper-stationery/internal/infrastructure/http/v1"
	"github.com/Alejoxd70/sactpaper-stationery/internal/infrastructure/storage/postgres"
	"github.com/Alejoxd70/sactpaper-stationery/pkg/logger"
	"github.com/Alejoxd70/sactpaper-stationery/pkg/sequence"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.App.LogLevel,
		Development: cfg.IsDevelopment(),
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	log.Infow("starting sactpaper server", "env", cfg.App.Env)

	// --- Database ---
	pool, err := postgres.NewPool(ctx, postgres.PoolConfigFrom(cfg.DB))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()
	log.Info("database connection established")

	txm := postgres.NewTxManager(pool)

	// --- Repositories ---
	ledgerRepo := postgres.NewLedgerRepo(txm)
	inventoryRepo := postgres.NewInventoryRepo(txm)
	customerRepo := postgres.NewCustomerRepo(txm)
	invoiceRepo := postgres.NewInvoiceRepo(txm)
	reportRepo := postgres.NewReportRepo(txm)
	authRepo := postgres.NewAuthRepo(txm)

	// --- Services ---
	vatRate, err := cfg.Accounting.VATRateDecimal()
	if err != nil {
		log.Fatalw("invalid accounting configuration", "error", err)
	}

	ledgerService := ledger.NewService(ledgerRepo)
	inventoryService := inventory.NewService(inventoryRepo, txm)
	customerService := customer.NewService(customerRepo)
	reportService := reports.NewService(reportRepo, txm, cfg.App.CompanyName)

	issuer := auth.NewTokenIssuer(cfg.JWT.Secret, cfg.JWT.TTL)
	authService := auth.NewService(authRepo, issuer)

	// Invoice numbers are allocated on the sale's own transaction, a
	// rolled-back sale releases its number slot together with everything else.
	numbers := sequence.New(postgres.NewSequenceQuerier(txm))

	saleService := sale.NewService(
		invoiceRepo,
		inventoryRepo,
		customerRepo,
		ledgerService,
		numbers,
		txm,
		sale.Config{
			VATRate: vatRate,
			AccountCodes: ledger.AccountCodes{
				Cash:        cfg.Accounting.CashCode,
				Receivable:  cfg.Accounting.ReceivableCode,
				VATPayable:  cfg.Accounting.VATCode,
				SalesIncome: cfg.Accounting.SalesCode,
				CostOfGoods: cfg.Accounting.COGSCode,
				Inventory:   cfg.Accounting.InventoryCode,
			},
		},
	)

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Pool:             pool,
		Logger:           log,
		Development:      cfg.IsDevelopment(),
		AuthService:      authService,
		InventoryService: inventoryService,
		CustomerService:  customerService,
		LedgerService:    ledgerService,
		SaleService:      saleService,
		ReportService:    reportService,
	})

	// --- HTTP Server ---
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting", "port", cfg.App.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}
