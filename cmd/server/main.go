package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	billingapp "github.com/freightline/backend/internal/application/billing"
	consignmentapp "github.com/freightline/backend/internal/application/consignment"
	ledgerapp "github.com/freightline/backend/internal/application/ledger"
	numberingapp "github.com/freightline/backend/internal/application/numbering"
	partnerapp "github.com/freightline/backend/internal/application/partner"
	"github.com/freightline/backend/internal/domain/ledger"
	"github.com/freightline/backend/internal/domain/numbering"
	"github.com/freightline/backend/internal/infrastructure/auth"
	"github.com/freightline/backend/internal/infrastructure/config"
	"github.com/freightline/backend/internal/infrastructure/logger"
	"github.com/freightline/backend/internal/infrastructure/persistence"
	"github.com/freightline/backend/internal/interfaces/http/handler"
	"github.com/freightline/backend/internal/interfaces/http/middleware"
	"github.com/freightline/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting freightline backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Database connection with zap-backed GORM logging
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Repositories
	clientRepo := persistence.NewGormClientRepository(db.DB)
	receiptRepo := persistence.NewGormLorryReceiptRepository(db.DB)
	noteRepo := persistence.NewGormTruckHiringNoteRepository(db.DB)
	invoiceRepo := persistence.NewGormInvoiceRepository(db.DB)
	paymentRepo := persistence.NewGormPaymentRepository(db.DB)
	numberingRepo := persistence.NewGormNumberingRepository(db.DB)

	// Numbering allocator seeded from configuration
	numberingService := numberingapp.NewService(numberingRepo, map[string]numberingapp.Defaults{
		numbering.DocTypeLorryReceipt:    sequenceDefaults(cfg.Numbering.LorryReceipt),
		numbering.DocTypeInvoice:         sequenceDefaults(cfg.Numbering.Invoice),
		numbering.DocTypeTruckHiringNote: sequenceDefaults(cfg.Numbering.TruckHiringNote),
	})

	// Application services
	clientService := partnerapp.NewClientService(clientRepo)
	receiptService := consignmentapp.NewLorryReceiptService(receiptRepo, clientRepo, numberingService)
	noteService := consignmentapp.NewTruckHiringNoteService(noteRepo, numberingService)
	invoiceService := billingapp.NewInvoiceService(invoiceRepo, receiptRepo, clientRepo, numberingService)
	paymentService := billingapp.NewPaymentService(paymentRepo, invoiceRepo, noteRepo)
	ledgerService := ledgerapp.NewService(ledger.NewEngine(), clientRepo, invoiceRepo, paymentRepo, noteRepo)

	// Manual numbers must also be unique among documents already issued
	numberingService.RegisterUniquenessCheck(numbering.DocTypeLorryReceipt, receiptService.ExistsByNumber)
	numberingService.RegisterUniquenessCheck(numbering.DocTypeInvoice, invoiceService.ExistsByNumber)
	numberingService.RegisterUniquenessCheck(numbering.DocTypeTruckHiringNote, noteService.ExistsByNumber)

	// Auth
	jwtService := auth.NewJWTService(cfg.JWT)
	credentials := auth.NewCredentialChecker(cfg.Auth)

	// HTTP engine
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	if err := middleware.SetupValidator(); err != nil {
		log.Fatal("Failed to register validators", zap.Error(err))
	}

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Fatal("Failed to set trusted proxies", zap.Error(err))
	}

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsCfg.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsCfg.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}

	engine.Use(
		middleware.RequestID(),
		logger.GinMiddleware(log),
		logger.Recovery(log),
		middleware.CORSWithConfig(corsCfg),
	)

	// Routes
	r := router.NewRouter(engine).
		WithAuth(middleware.JWTAuth(jwtService)).
		Public(
			handler.NewSystemHandler(db),
			handler.NewAuthHandler(credentials, jwtService),
		).
		Protected(
			handler.NewClientHandler(clientService),
			handler.NewLorryReceiptHandler(receiptService),
			handler.NewTruckHiringNoteHandler(noteService),
			handler.NewInvoiceHandler(invoiceService, paymentService),
			handler.NewPaymentHandler(paymentService),
			handler.NewNumberingHandler(numberingService),
			handler.NewLedgerHandler(ledgerService),
		)
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}
	log.Info("Server stopped")
}

func sequenceDefaults(sc config.SequenceConfig) numberingapp.Defaults {
	return numberingapp.Defaults{
		Prefix:           sc.Prefix,
		StartNumber:      sc.StartNumber,
		EndNumber:        sc.EndNumber,
		AllowManualEntry: sc.AllowManualEntry,
	}
}
