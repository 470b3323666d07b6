package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sm8ta/webike_rental_service/internal/adapter/hasher"
	"github.com/sm8ta/webike_rental_service/internal/adapter/logger"
	"github.com/sm8ta/webike_rental_service/internal/adapter/memory"
	"github.com/sm8ta/webike_rental_service/internal/adapter/prometheus"
	"github.com/sm8ta/webike_rental_service/internal/adapter/redis"
	"github.com/sm8ta/webike_rental_service/internal/config"
	"github.com/sm8ta/webike_rental_service/internal/core/domain"
	"github.com/sm8ta/webike_rental_service/internal/core/services"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	prom "github.com/prometheus/client_golang/prometheus"
	redisClient "github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
)

const (
	adminEmail    = "admin@example.com"
	adminPassword = "adminpass"
)

type testServer struct {
	engine *gin.Engine
	store  *memory.Store
	tokens *JWTTokenService
}

func newTestServer(t *testing.T, authRateLimit int) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mr := miniredis.RunT(t)
	client := redisClient.NewClient(&redisClient.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	store := memory.NewStore()
	log := logger.NewLoggerAdapter("test", "error")
	validate := validator.New()
	metrics := prometheus.NewPrometheusAdapter(prom.NewRegistry())
	tokens := NewJWTTokenService("test-secret", time.Hour, log)

	bikeService := services.NewBikeService(store, log, validate, redis.NewRedisAdapter(client))
	authService := services.NewAuthService(store, hasher.NewBcryptHasher(bcrypt.MinCost), tokens, log, validate)
	if err := authService.EnsureAdmin(context.Background(), adminEmail, adminPassword); err != nil {
		t.Fatalf("seed admin: %v", err)
	}

	handlers := Handlers{
		Bike:      NewBikeHandler(bikeService, log, metrics),
		Booking:   NewBookingHandler(services.NewBookingService(store, bikeService, log, validate, metrics), log, metrics),
		Auth:      NewAuthHandler(authService, log, metrics),
		User:      NewUserHandler(services.NewUserService(store, log, validate), log, metrics),
		Favorite:  NewFavoriteHandler(services.NewFavoriteService(store, bikeService, log), log, metrics),
		Dashboard: NewDashboardHandler(services.NewDashboardService(store, store, store, log), metrics),
	}

	router, err := NewRouter(&config.HTTP{
		Env:            "test",
		AllowedOrigins: []string{"http://localhost:3000"},
		AuthRateLimit:  authRateLimit,
	}, log, tokens, handlers)
	if err != nil {
		t.Fatalf("new router: %v", err)
	}

	return &testServer{engine: router.Engine(), store: store, tokens: tokens}
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return v
}

func expectStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("expected status %d, got %d: %s", want, w.Code, w.Body.String())
	}
}

func (s *testServer) register(t *testing.T, email string) (string, *domain.User) {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/auth/register", "", RegisterRequest{
		Name: "Rider", Email: email, Password: "secret1", Age: 25, Gender: "female",
	})
	expectStatus(t, w, http.StatusCreated)
	resp := decode[AuthResponse](t, w)
	return resp.Token, resp.User
}

func (s *testServer) adminToken(t *testing.T) string {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/auth/login", "", LoginRequest{Email: adminEmail, Password: adminPassword})
	expectStatus(t, w, http.StatusOK)
	return decode[AuthResponse](t, w).Token
}

func (s *testServer) seedBike(t *testing.T, available bool) *domain.Bike {
	t.Helper()
	b, err := s.store.CreateBike(context.Background(), &domain.Bike{
		BikeID:    uuid.New(),
		Name:      "VTT Rockrider",
		Size:      domain.Large,
		Type:      domain.VTT,
		Price:     20,
		Images:    []string{"rockrider.jpg"},
		Available: available,
	})
	if err != nil {
		t.Fatalf("seed bike: %v", err)
	}
	return b
}

func (s *testServer) bikeAvailable(t *testing.T, bikeID uuid.UUID) bool {
	t.Helper()
	w := s.do(t, http.MethodGet, "/api/detailBike?id="+bikeID.String(), "", nil)
	expectStatus(t, w, http.StatusOK)
	return decode[domain.Bike](t, w).Available
}
