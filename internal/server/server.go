package server

import (
	"fmt"
	"net/http"
	"time"

	"comercio/internal/config"
	"comercio/internal/database"
	custommiddleware "comercio/internal/middleware"
	"comercio/internal/repository"
	"comercio/internal/service"
	"comercio/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct {
	*http.Server
	config      *config.Config
	logger      *zap.Logger
	db          *database.Service
	redisClient *redis.Client
}

func NewServer(cfg *config.Config, logger *zap.Logger, db *database.Service, redisClient *redis.Client) *Server {
	// Create router
	router := chi.NewRouter()

	// Add basic middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))
	router.Use(custommiddleware.CORSMiddleware(nil, cfg.Server.Env == "development"))

	// Health check endpoint
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		health := db.Health(r.Context())
		status := http.StatusOK
		if health["status"] != "up" {
			status = http.StatusServiceUnavailable
		}
		custommiddleware.RespondWithJSON(w, status, health)
	})

	// Initialize repositories
	sqlDB := db.DB()
	txRunner := repository.NewTxRunner(sqlDB)
	productRepo := repository.NewProductRepository(sqlDB)
	clientRepo := repository.NewClientRepository(sqlDB)
	supplierRepo := repository.NewSupplierRepository(sqlDB)
	invoiceRepo := repository.NewInvoiceRepository(sqlDB)
	purchaseRepo := repository.NewPurchaseRepository(sqlDB)
	categoryRepo := repository.NewCategoryRepository(sqlDB)
	storeRepo := repository.NewStoreRepository(sqlDB)
	taxRepo := repository.NewTaxRepository(sqlDB)
	currencyRepo := repository.NewCurrencyRepository(sqlDB)
	paymentMethodRepo := repository.NewPaymentMethodRepository(sqlDB)
	userRepo := repository.NewUserRepository(sqlDB)
	refreshTokenRepo := repository.NewRefreshTokenRepository(sqlDB)

	// Initialize services
	documentService := service.NewDocumentService(txRunner, productRepo, clientRepo, supplierRepo, invoiceRepo, purchaseRepo)
	reportService := service.NewReportService(documentService)
	authService := service.NewAuthService(userRepo, refreshTokenRepo, cfg.JWT.Secret)

	// Initialize handlers
	documentHandler := transport.NewDocumentHandler(documentService, reportService, logger)
	productHandler := transport.NewProductHandler(productRepo, logger)
	partyHandler := transport.NewPartyHandler(clientRepo, supplierRepo, logger)
	catalogHandler := transport.NewCatalogHandler(categoryRepo, storeRepo, taxRepo, currencyRepo, paymentMethodRepo, logger)
	authHandler := transport.NewAuthHandler(authService, logger)

	// Create middleware
	authMiddleware := custommiddleware.AuthMiddleware(cfg.JWT.Secret, logger)
	adminMiddleware := custommiddleware.RequireAdmin(logger)
	authRateLimit := custommiddleware.RateLimitMiddleware(redisClient, custommiddleware.RateLimitConfig{
		RequestsPerWindow: 10,
		Window:            time.Minute,
		KeyPrefix:         "ratelimit:auth",
	}, logger)

	// Register routes
	documentHandler.RegisterRoutes(router, authMiddleware)
	productHandler.RegisterRoutes(router, authMiddleware)
	partyHandler.RegisterRoutes(router, authMiddleware)
	catalogHandler.RegisterRoutes(router, authMiddleware, adminMiddleware)
	authHandler.RegisterRoutes(router, authMiddleware, authRateLimit)

	server := &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      router,
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		config:      cfg,
		logger:      logger,
		db:          db,
		redisClient: redisClient,
	}

	return server
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.logger.Error("Failed to close database connection", zap.Error(err))
		}
	}

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			s.logger.Error("Failed to close redis connection", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}
