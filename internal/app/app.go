package app

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sm8ta/webike_rental_service/internal/adapter/handler/http"
	"github.com/sm8ta/webike_rental_service/internal/adapter/hasher"
	"github.com/sm8ta/webike_rental_service/internal/adapter/logger"
	"github.com/sm8ta/webike_rental_service/internal/adapter/memory"
	"github.com/sm8ta/webike_rental_service/internal/adapter/postgres"
	"github.com/sm8ta/webike_rental_service/internal/adapter/prometheus"
	"github.com/sm8ta/webike_rental_service/internal/adapter/redis"
	"github.com/sm8ta/webike_rental_service/internal/config"
	"github.com/sm8ta/webike_rental_service/internal/core/ports"
	"github.com/sm8ta/webike_rental_service/internal/core/services"

	"github.com/go-playground/validator/v10"
	_ "github.com/lib/pq"
	"github.com/pressly/goose"
	prom "github.com/prometheus/client_golang/prometheus"
	redisClient "github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
)

type App struct {
	Config       *config.Container
	Logger       ports.LoggerPort
	DB           *sql.DB
	RedisClient  *redisClient.Client
	RedisAdapter ports.CachePort
	HTTPRouter   *http.Router
}

type repositories struct {
	bikes     ports.BikeRepository
	bookings  ports.BookingRepository
	users     ports.UserRepository
	favorites ports.FavoriteRepository
}

func New(ctx context.Context, cfg *config.Container) (*App, error) {
	// Set logger
	loggerAdapter := logger.NewLoggerAdapter(cfg.App.Env, cfg.App.LogLevel)
	loggerAdapter.Info("Starting the application", map[string]interface{}{
		"app":     cfg.App.Name,
		"env":     cfg.App.Env,
		"storage": cfg.Storage.Driver,
	})

	// Set redis
	redisConn := redisClient.NewClient(&redisClient.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       0,
	})
	if _, err := redisConn.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	cacheAdapter := redis.NewRedisAdapter(redisConn)

	// Storage
	var (
		db    *sql.DB
		repos repositories
	)
	switch cfg.Storage.Driver {
	case config.StorageMemory:
		store := memory.NewStore()
		repos = repositories{bikes: store, bookings: store, users: store, favorites: store}
	default:
		var err error
		db, err = openPostgres(ctx, cfg.DB)
		if err != nil {
			redisConn.Close()
			return nil, err
		}
		repos = repositories{
			bikes:     postgres.NewBikeRepository(db),
			bookings:  postgres.NewBookingRepository(db),
			users:     postgres.NewUserRepository(db),
			favorites: postgres.NewFavoriteRepository(db),
		}
	}

	// Validate
	validate := validator.New()

	// Observability
	metrics := prometheus.NewPrometheusAdapter(prom.DefaultRegisterer)

	// Services
	tokenService := http.NewJWTTokenService(cfg.Token.Secret, cfg.Token.Duration, loggerAdapter)
	bikeService := services.NewBikeService(repos.bikes, loggerAdapter, validate, cacheAdapter)
	bookingService := services.NewBookingService(repos.bookings, bikeService, loggerAdapter, validate, metrics)
	authService := services.NewAuthService(repos.users, hasher.NewBcryptHasher(bcrypt.DefaultCost), tokenService, loggerAdapter, validate)
	userService := services.NewUserService(repos.users, loggerAdapter, validate)
	favoriteService := services.NewFavoriteService(repos.favorites, bikeService, loggerAdapter)
	dashboardService := services.NewDashboardService(repos.users, repos.bikes, repos.bookings, loggerAdapter)

	if cfg.Seed.AdminEmail != "" {
		if err := authService.EnsureAdmin(ctx, cfg.Seed.AdminEmail, cfg.Seed.AdminPassword); err != nil {
			loggerAdapter.Error("Failed to seed admin", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	// HTTP Handlers
	handlers := http.Handlers{
		Bike:      http.NewBikeHandler(bikeService, loggerAdapter, metrics),
		Booking:   http.NewBookingHandler(bookingService, loggerAdapter, metrics),
		Auth:      http.NewAuthHandler(authService, loggerAdapter, metrics),
		User:      http.NewUserHandler(userService, loggerAdapter, metrics),
		Favorite:  http.NewFavoriteHandler(favoriteService, loggerAdapter, metrics),
		Dashboard: http.NewDashboardHandler(dashboardService, metrics),
	}

	// Init HTTP router
	router, err := http.NewRouter(cfg.HTTP, loggerAdapter, tokenService, handlers)
	if err != nil {
		if db != nil {
			db.Close()
		}
		redisConn.Close()
		return nil, fmt.Errorf("failed to initialize router: %w", err)
	}

	return &App{
		Config:       cfg,
		Logger:       loggerAdapter,
		DB:           db,
		RedisClient:  redisConn,
		RedisAdapter: cacheAdapter,
		HTTPRouter:   router,
	}, nil
}

func openPostgres(ctx context.Context, cfg *config.DB) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// Migrate DB
	if err := goose.SetDialect("postgres"); err != nil {
		db.Close()
		return nil, err
	}
	if err := goose.Up(db, cfg.MigrationsDir); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return db, nil
}

// Runs all services
func (a *App) Run() error {
	listenAddr := fmt.Sprintf("%s:%s", a.Config.HTTP.URL, a.Config.HTTP.Port)
	a.Logger.Info("Starting HTTP server", map[string]interface{}{
		"addr": listenAddr,
	})

	if err := a.HTTPRouter.Serve(listenAddr); err != nil {
		a.Logger.Error("HTTP server error", map[string]interface{}{
			"error": err.Error(),
		})
		return err
	}
	return nil
}

// Stops all services
func (a *App) Stop(ctx context.Context) error {
	a.Logger.Info("Shutting down gracefully...", nil)

	if err := a.HTTPRouter.Shutdown(ctx); err != nil {
		a.Logger.Error("HTTP shutdown error", map[string]interface{}{
			"error": err.Error(),
		})
	}

	// Close database
	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			a.Logger.Error("Database close error", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	// Close Redis
	if err := a.RedisClient.Close(); err != nil {
		a.Logger.Error("Redis close error", map[string]interface{}{
			"error": err.Error(),
		})
	}

	a.Logger.Info("Application stopped successfully", nil)
	return nil
}
