package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/domain"
	custommiddleware "storefront/internal/middleware"
	"storefront/internal/repository"
	"storefront/internal/service"
	"storefront/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Server struct {
	*http.Server
	config      *config.Config
	logger      *zap.Logger
	db          database.Service
	redisClient *redis.Client
	stopBanners context.CancelFunc
}

// NewServer wires the storefront API. db is required for the postgres catalog
// source; redisClient is required when rate limiting is enabled.
func NewServer(cfg *config.Config, logger *zap.Logger, db database.Service, redisClient *redis.Client) (*Server, error) {
	ctx := context.Background()

	// Initialize repositories
	categoryRepo, productRepo, err := catalogRepositories(cfg.Catalog, db)
	if err != nil {
		return nil, err
	}
	if err := service.LoadAndValidateCatalog(ctx, categoryRepo, productRepo); err != nil {
		return nil, fmt.Errorf("catalog failed validation: %w", err)
	}

	shippingFee, err := decimal.NewFromString(cfg.Cart.ShippingFee)
	if err != nil {
		return nil, fmt.Errorf("invalid cart shipping fee %q: %w", cfg.Cart.ShippingFee, err)
	}

	var seedCart func() []domain.CartLine
	var seedOrders func() []domain.Order
	if cfg.Cart.SeedFixture {
		seedCart = repository.FixtureCartLines
		seedOrders = repository.FixtureOrders
	}

	cartRepo := repository.NewCartRepository(seedCart)
	orderRepo := repository.NewOrderRepository(seedOrders)
	userRepo := repository.NewUserRepository()
	refreshTokenRepo := repository.NewRefreshTokenRepository()
	resetRepo := repository.NewPasswordResetRepository()

	// Initialize services
	catalogService := service.NewCatalogService(categoryRepo, productRepo)
	cartService := service.NewCartService(cartRepo, orderRepo, shippingFee)
	authService := service.NewAuthService(userRepo, refreshTokenRepo, resetRepo, service.TokenSettings{
		Secret:        cfg.JWT.Secret,
		AccessExpiry:  time.Duration(cfg.JWT.AccessExpiry) * time.Minute,
		RefreshExpiry: time.Duration(cfg.JWT.RefreshExpiry) * 24 * time.Hour,
	}, logger)

	rotator := service.NewBannerRotator(repository.FixtureBanners(), cfg.Banner.RotationInterval, logger)
	bannerCtx, stopBanners := context.WithCancel(context.Background())
	go rotator.Run(bannerCtx)

	// Initialize handlers
	catalogHandler := transport.NewCatalogHandler(catalogService, logger)
	cartHandler := transport.NewCartHandler(cartService, catalogService, logger)
	bannerHandler := transport.NewBannerHandler(rotator)
	userHandler := transport.NewUserHandler(authService, cartService, cfg.Server.IsDevelopment(), logger)

	authMiddleware := custommiddleware.AuthMiddleware(cfg.JWT.Secret, logger)
	formMiddleware := passthrough
	if cfg.RateLimit.Enabled {
		if redisClient == nil {
			stopBanners()
			return nil, errors.New("rate limiting is enabled but no redis client was provided")
		}
		formMiddleware = custommiddleware.RateLimitMiddleware(redisClient, custommiddleware.RateLimitConfig{
			RequestsPerWindow: cfg.RateLimit.RequestsPerWindow,
			Window:            cfg.RateLimit.Window,
			KeyPrefix:         "storefront_auth",
		}, logger)
	}

	// Create router
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))
	router.Use(custommiddleware.CORSMiddleware(cfg.CORS.AllowedOrigins, cfg.Server.IsDevelopment()))
	router.Use(middleware.Compress(5))

	router.Get("/health", healthHandler(db))

	catalogHandler.RegisterRoutes(router)
	bannerHandler.RegisterRoutes(router)
	userHandler.RegisterRoutes(router, authMiddleware, formMiddleware)
	cartHandler.RegisterRoutes(router,
		authMiddleware,
		custommiddleware.RequireRole([]string{service.RoleCustomer}, logger),
	)

	return &Server{
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
		stopBanners: stopBanners,
	}, nil
}

func catalogRepositories(cfg config.CatalogConfig, db database.Service) (repository.CategoryRepository, repository.ProductRepository, error) {
	switch cfg.Source {
	case config.CatalogSourceFixture, "":
		return repository.NewFixtureCategoryRepository(repository.FixtureCategories()),
			repository.NewFixtureProductRepository(repository.FixtureProducts()),
			nil
	case config.CatalogSourcePostgres:
		if db == nil {
			return nil, nil, errors.New("postgres catalog source requires a database connection")
		}
		return repository.NewCategoryRepository(db.DB()), repository.NewProductRepository(db.DB()), nil
	default:
		return nil, nil, fmt.Errorf("unknown catalog source %q", cfg.Source)
	}
}

func passthrough(next http.Handler) http.Handler {
	return next
}

func healthHandler(db database.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body := map[string]interface{}{"status": "ok"}
		if db != nil {
			health := db.Health()
			body["database"] = health
			if health["status"] != "up" {
				body["status"] = "degraded"
			}
		}
		custommiddleware.RespondWithJSON(w, http.StatusOK, body)
	}
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	s.stopBanners()

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			s.logger.Error("Failed to close redis client", zap.Error(err))
		}
	}

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.logger.Error("Failed to close database connection", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}
