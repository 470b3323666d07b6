package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

type (
	Container struct {
		App     *App
		Token   *Token
		DB      *DB
		HTTP    *HTTP
		Redis   *Redis
		Storage *Storage
		Seed    *Seed
	}

	App struct {
		Name     string
		Env      string
		LogLevel string
	}

	Token struct {
		Secret   string
		Duration time.Duration
	}

	DB struct {
		URL           string
		Host          string
		Port          string
		User          string
		Password      string
		Name          string
		MigrationsDir string
	}

	HTTP struct {
		Env            string
		Port           string
		AllowedOrigins []string
		URL            string
		AuthRateLimit  int
	}

	Redis struct {
		Address  string
		Password string
	}

	Storage struct {
		Driver string
	}

	// Seed is the optional bootstrap admin account.
	Seed struct {
		AdminEmail    string
		AdminPassword string
	}
)

func New() (*Container, error) {
	if os.Getenv("APP_ENV") != "production" {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	app := &App{
		Name:     getEnv("APP_NAME", "bike-rental"),
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	duration, err := time.ParseDuration(getEnv("TOKEN_DURATION", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid TOKEN_DURATION: %w", err)
	}
	token := &Token{
		Secret:   os.Getenv("TOKEN_SECRET"),
		Duration: duration,
	}
	if token.Secret == "" {
		return nil, errors.New("TOKEN_SECRET is required")
	}

	db := &DB{
		URL:           os.Getenv("DATABASE_URL"),
		Host:          getEnv("DB_HOST", "localhost"),
		Port:          getEnv("DB_PORT", "5432"),
		User:          os.Getenv("DB_USER"),
		Password:      os.Getenv("DB_PASSWORD"),
		Name:          os.Getenv("DB_NAME"),
		MigrationsDir: getEnv("MIGRATIONS_DIR", "./internal/adapter/postgres/migrations"),
	}

	rateLimit, err := strconv.Atoi(getEnv("AUTH_RATE_LIMIT", "20"))
	if err != nil || rateLimit <= 0 {
		return nil, fmt.Errorf("invalid AUTH_RATE_LIMIT %q", os.Getenv("AUTH_RATE_LIMIT"))
	}

	http := &HTTP{
		Port:           getEnv("HTTP_PORT", "8080"),
		AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
		URL:            os.Getenv("HTTP_URL"),
		Env:            app.Env,
		AuthRateLimit:  rateLimit,
	}

	redis := &Redis{
		Address:  getEnv("REDIS_ADDRESS", "localhost:6379"),
		Password: os.Getenv("REDIS_PASSWORD"),
	}

	storage := &Storage{
		Driver: strings.ToLower(getEnv("STORAGE_DRIVER", StoragePostgres)),
	}
	if storage.Driver != StoragePostgres && storage.Driver != StorageMemory {
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q", storage.Driver)
	}

	seed := &Seed{
		AdminEmail:    os.Getenv("SEED_ADMIN_EMAIL"),
		AdminPassword: os.Getenv("SEED_ADMIN_PASSWORD"),
	}

	return &Container{
		App:     app,
		Token:   token,
		DB:      db,
		HTTP:    http,
		Redis:   redis,
		Storage: storage,
		Seed:    seed,
	}, nil
}

// DSN prefers DATABASE_URL over the individual parts.
func (d *DB) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		d.Host, d.Port, d.User, d.Password, d.Name)
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
