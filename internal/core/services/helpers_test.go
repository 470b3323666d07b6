package services

import (
	"context"
	"testing"
	"time"

	"github.com/sm8ta/webike_rental_service/internal/adapter/hasher"
	"github.com/sm8ta/webike_rental_service/internal/adapter/logger"
	"github.com/sm8ta/webike_rental_service/internal/adapter/memory"
	"github.com/sm8ta/webike_rental_service/internal/adapter/prometheus"
	"github.com/sm8ta/webike_rental_service/internal/adapter/redis"
	"github.com/sm8ta/webike_rental_service/internal/core/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	prom "github.com/prometheus/client_golang/prometheus"
	redisClient "github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
)

type stubTokens struct{}

func (stubTokens) CreateToken(user *domain.User) (string, error) {
	return "token-" + user.UserID.String(), nil
}

func (stubTokens) VerifyToken(string) (*domain.TokenPayload, error) {
	return nil, domain.ErrUnauthorized
}

type fixture struct {
	store     *memory.Store
	redis     *miniredis.Miniredis
	bikes     *BikeService
	bookings  *BookingService
	auth      *AuthService
	users     *UserService
	favorites *FavoriteService
	dashboard *DashboardService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redisClient.NewClient(&redisClient.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	store := memory.NewStore()
	log := logger.NewLoggerAdapter("test", "error")
	validate := validator.New()
	metrics := prometheus.NewPrometheusAdapter(prom.NewRegistry())

	bikes := NewBikeService(store, log, validate, redis.NewRedisAdapter(client))
	return &fixture{
		store:     store,
		redis:     mr,
		bikes:     bikes,
		bookings:  NewBookingService(store, bikes, log, validate, metrics),
		auth:      NewAuthService(store, hasher.NewBcryptHasher(bcrypt.MinCost), stubTokens{}, log, validate),
		users:     NewUserService(store, log, validate),
		favorites: NewFavoriteService(store, bikes, log),
		dashboard: NewDashboardService(store, store, store, log),
	}
}

func (f *fixture) user(t *testing.T, email string) *domain.User {
	t.Helper()
	u, _, err := f.auth.Register(context.Background(), RegisterInput{
		Name:     "Rider",
		Email:    email,
		Password: "secret1",
		Age:      25,
		Gender:   "female",
	})
	if err != nil {
		t.Fatalf("register %s: %v", email, err)
	}
	return u
}

func (f *fixture) bike(t *testing.T, available bool) *domain.Bike {
	t.Helper()
	b, err := f.bikes.CreateBike(context.Background(), &domain.Bike{
		Name:      "Vélo de ville",
		Size:      domain.Medium,
		Type:      domain.City,
		Price:     15,
		Available: available,
	})
	if err != nil {
		t.Fatalf("create bike: %v", err)
	}
	return b
}

func (f *fixture) availability(t *testing.T, bikeID uuid.UUID) bool {
	t.Helper()
	b, err := f.store.GetBikeByID(context.Background(), bikeID)
	if err != nil {
		t.Fatalf("get bike: %v", err)
	}
	return b.Available
}

func day(offset int) time.Time {
	return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, offset)
}
