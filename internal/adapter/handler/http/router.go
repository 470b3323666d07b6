package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/sm8ta/webike_rental_service/internal/config"
	"github.com/sm8ta/webike_rental_service/internal/core/domain"
	"github.com/sm8ta/webike_rental_service/internal/core/ports"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type Router struct {
	router *gin.Engine
	server *http.Server
}

type Handlers struct {
	Bike      *BikeHandler
	Booking   *BookingHandler
	Auth      *AuthHandler
	User      *UserHandler
	Favorite  *FavoriteHandler
	Dashboard *DashboardHandler
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
	}
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}

func NewRouter(
	cfg *config.HTTP,
	logger ports.LoggerPort,
	tokenService ports.TokenService,
	h Handlers,
) (*Router, error) {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	if len(cfg.AllowedOrigins) == 0 {
		return nil, errors.New("at least one allowed origin is required")
	}

	router := gin.Default()

	// CORS
	router.Use(cors.New(corsConfig(cfg.AllowedOrigins)))

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	auth := AuthMiddleware(tokenService)
	adminOnly := RoleMiddleware(domain.Admin)

	api := router.Group("/api")

	// Auth routes
	authGroup := api.Group("/auth")
	authGroup.Use(RateLimit(cfg.AuthRateLimit, logger))
	{
		authGroup.POST("/register", h.Auth.Register)
		authGroup.POST("/login", h.Auth.Login)
	}

	// Catalog routes
	api.GET("/home", h.Bike.GetAllBikes)
	api.GET("/detailBike", h.Bike.GetBike)
	api.POST("/addBike", auth, adminOnly, h.Bike.CreateBike)
	api.PUT("/updateBike/:id", auth, adminOnly, h.Bike.UpdateBike)
	api.DELETE("/deleteBike/:id", auth, adminOnly, h.Bike.DeleteBike)

	// Booking routes
	bookings := api.Group("/booking")
	bookings.Use(auth)
	{
		bookings.POST("/book", h.Booking.CreateBooking)
		bookings.GET("/myBooking", h.Booking.GetMyBookings)
		bookings.DELETE("/:id", h.Booking.CancelBooking)
		bookings.GET("/all", adminOnly, h.Booking.GetAllBookings)
		bookings.PUT("/:id/status", adminOnly, h.Booking.UpdateBookingStatus)
	}

	// Favorite routes
	favorites := api.Group("/favorite")
	favorites.Use(auth)
	{
		favorites.GET("/all", h.Favorite.GetFavorites)
		favorites.POST("/add", h.Favorite.AddFavorite)
		favorites.POST("/remove", h.Favorite.RemoveFavorite)
	}

	// User routes
	users := api.Group("/users")
	users.Use(auth)
	{
		users.GET("/me", h.User.GetMe)
		users.GET("", adminOnly, h.User.GetAllUsers)
		users.GET("/:id", adminOnly, h.User.GetUser)
		users.PUT("/:id", adminOnly, h.User.UpdateUser)
		users.DELETE("/:id", adminOnly, h.User.DeleteUser)
	}

	// Admin routes
	admin := api.Group("/admin")
	admin.Use(auth, adminOnly)
	{
		admin.GET("/stats", h.Dashboard.GetStats)
	}

	return &Router{
		router: router,
		server: &http.Server{Handler: router},
	}, nil
}

func (r *Router) Serve(addr string) error {
	r.server.Addr = addr
	if err := r.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (r *Router) Shutdown(ctx context.Context) error {
	return r.server.Shutdown(ctx)
}

func (r *Router) Engine() *gin.Engine {
	return r.router
}
