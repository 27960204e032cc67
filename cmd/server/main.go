package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	leasingapp "github.com/rentledger/backend/internal/application/leasing"
	ledgerapp "github.com/rentledger/backend/internal/application/ledger"
	"github.com/rentledger/backend/internal/infrastructure/cache"
	"github.com/rentledger/backend/internal/infrastructure/config"
	"github.com/rentledger/backend/internal/infrastructure/logger"
	"github.com/rentledger/backend/internal/infrastructure/persistence"
	"github.com/rentledger/backend/internal/interfaces/http/handler"
	"github.com/rentledger/backend/internal/interfaces/http/middleware"
	"github.com/rentledger/backend/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(cfg.Log)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting Rent Ledger Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Database connection with a GORM logger backed by zap
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
	log.Info("Database connected successfully")

	// Idempotency store: Redis when enabled, in-memory otherwise
	idempotencyStore := cache.NewIdempotencyStore(cfg.Redis, log)
	defer func() {
		if err := idempotencyStore.Close(); err != nil {
			log.Error("Error closing idempotency store", zap.Error(err))
		}
	}()

	// Repositories
	tenantRepo := persistence.NewGormTenantRepository(db.DB)
	propertyRepo := persistence.NewGormPropertyRepository(db.DB)
	furnitureRepo := persistence.NewGormFurnitureRepository(db.DB)
	recordRepo := persistence.NewGormPaymentRecordRepository(db.DB)
	creditRepo := persistence.NewGormCreditBalanceRepository(db.DB)
	commissionRepo := persistence.NewGormCommissionRepository(db.DB)

	// Application services
	tenantService := leasingapp.NewTenantService(tenantRepo, propertyRepo, log)
	propertyService := leasingapp.NewPropertyService(propertyRepo, log)
	furnitureService := leasingapp.NewFurnitureService(furnitureRepo, tenantRepo, log)
	creditService := ledgerapp.NewCreditService(creditRepo, recordRepo, log)
	paymentService := ledgerapp.NewPaymentService(
		recordRepo, tenantRepo, propertyRepo, furnitureRepo,
		creditService, idempotencyStore, log,
	)
	paymentService.SetIdempotencyTTL(cfg.Ledger.IdempotencyTTL)
	arrearsService := ledgerapp.NewArrearsService(tenantRepo, propertyRepo, furnitureRepo, recordRepo, log)
	commissionService := ledgerapp.NewCommissionService(recordRepo, commissionRepo, tenantRepo, propertyRepo, log)

	// Handlers
	tenantHandler := handler.NewTenantHandler(tenantService)
	propertyHandler := handler.NewPropertyHandler(propertyService)
	furnitureHandler := handler.NewFurnitureHandler(furnitureService)
	paymentHandler := handler.NewPaymentHandler(paymentService)
	creditHandler := handler.NewCreditHandler(creditService)
	commissionHandler := handler.NewCommissionHandler(commissionService)
	arrearsHandler := handler.NewArrearsHandler(arrearsService)
	systemHandler := handler.NewSystemHandler()

	// Gin engine
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Failed to set trusted proxies", zap.Error(err))
		}
	} else {
		_ = engine.SetTrustedProxies(nil)
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.CORS())
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Health check outside the versioned API
	engine.GET("/healthz", healthHandler(db))

	// Routes
	r := router.NewRouter(engine)

	leasingRoutes := router.NewDomainGroup("leasing", "")
	leasingRoutes.POST("/tenants", tenantHandler.Register)
	leasingRoutes.GET("/tenants", tenantHandler.List)
	leasingRoutes.GET("/tenants/:id", tenantHandler.GetByID)
	leasingRoutes.POST("/tenants/:id/vacate", tenantHandler.Vacate)
	leasingRoutes.PUT("/tenants/:id/occupancy-start", tenantHandler.ChangeOccupancyStart)
	leasingRoutes.PUT("/tenants/:id/services", tenantHandler.SetService)
	leasingRoutes.DELETE("/tenants/:id/services/:type", tenantHandler.RemoveService)

	leasingRoutes.POST("/properties", propertyHandler.Create)
	leasingRoutes.GET("/properties", propertyHandler.List)
	leasingRoutes.GET("/properties/:id", propertyHandler.GetByID)
	leasingRoutes.PUT("/properties/:id/rent", propertyHandler.SetMonthlyRent)
	leasingRoutes.POST("/properties/:id/maintenance", propertyHandler.StartMaintenance)
	leasingRoutes.DELETE("/properties/:id/maintenance", propertyHandler.EndMaintenance)

	leasingRoutes.POST("/furniture", furnitureHandler.Create)
	leasingRoutes.GET("/furniture", furnitureHandler.List)
	leasingRoutes.POST("/furniture/:id/assignments", furnitureHandler.Assign)
	leasingRoutes.DELETE("/furniture/:id/assignments/:tenantID", furnitureHandler.Unassign)
	leasingRoutes.GET("/furniture/costs/:tenantID", furnitureHandler.MonthlyCostFor)

	ledgerRoutes := router.NewDomainGroup("ledger", "")
	ledgerRoutes.POST("/payments", paymentHandler.Register)
	ledgerRoutes.GET("/payments", paymentHandler.List)
	ledgerRoutes.GET("/payments/:id", paymentHandler.GetByID)
	ledgerRoutes.PUT("/payments/:id/services", paymentHandler.MarkServicePaid)
	ledgerRoutes.PUT("/payments/:id/furniture", paymentHandler.MarkFurniturePaid)
	ledgerRoutes.POST("/payments/refresh-overdue", paymentHandler.RefreshOverdue)

	ledgerRoutes.POST("/credits", creditHandler.Create)
	ledgerRoutes.GET("/credits/:tenantID", creditHandler.ListForTenant)
	ledgerRoutes.POST("/credits/:tenantID/apply", creditHandler.ApplyToOutstanding)

	ledgerRoutes.GET("/commissions/:year", commissionHandler.YearOverview)
	ledgerRoutes.GET("/commissions/:year/:month", commissionHandler.ComputeMonthly)
	ledgerRoutes.PUT("/commissions/:year/:month/collected", commissionHandler.SetCollected)

	ledgerRoutes.GET("/arrears", arrearsHandler.ComputeAll)
	ledgerRoutes.GET("/arrears/:tenantID", arrearsHandler.ComputeForTenant)

	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)
	systemRoutes.GET("/ping", systemHandler.Ping)

	r.Register(leasingRoutes).
		Register(ledgerRoutes).
		Register(systemRoutes)
	r.Setup()

	// HTTP server
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthHandler reports liveness plus database reachability
func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
