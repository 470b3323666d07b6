package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sm8ta/webike_rental_service/internal/core/domain"
	"github.com/sm8ta/webike_rental_service/internal/core/ports"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type RegisterInput struct {
	Name     string `validate:"required,max=100"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6,max=72"`
	Age      int    `validate:"required,min=1,max=150"`
	Gender   string `validate:"required,max=20"`
}

type AuthService struct {
	userRepo ports.UserRepository
	hasher   ports.PasswordHasher
	tokens   ports.TokenService
	logger   ports.LoggerPort
	validate *validator.Validate
}

func NewAuthService(
	userRepo ports.UserRepository,
	hasher ports.PasswordHasher,
	tokens ports.TokenService,
	logger ports.LoggerPort,
	validate *validator.Validate,
) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
		logger:   logger,
		validate: validate,
	}
}

// Register creates a regular user and returns it with a fresh token.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*domain.User, string, error) {
	in.Email = normalizeEmail(in.Email)
	in.Name = strings.TrimSpace(in.Name)
	if err := s.validate.Struct(in); err != nil {
		return nil, "", fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}

	user, err := s.createUser(ctx, in, domain.AppUser)
	if err != nil {
		return nil, "", err
	}

	token, err := s.tokens.CreateToken(user)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create token: %w", err)
	}

	s.logger.Info("User registered", map[string]interface{}{
		"user_id": user.UserID,
	})
	return user, token, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Warn("Login for unknown email", nil)
			return nil, "", domain.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if !s.hasher.Compare(user.PasswordHash, password) {
		s.logger.Warn("Login with wrong password", map[string]interface{}{
			"user_id": user.UserID,
		})
		return nil, "", domain.ErrInvalidCredentials
	}

	token, err := s.tokens.CreateToken(user)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create token: %w", err)
	}

	s.logger.Info("User logged in", map[string]interface{}{
		"user_id": user.UserID,
		"role":    user.Role,
	})
	return user, token, nil
}

// EnsureAdmin creates the bootstrap admin account unless the email is taken.
func (s *AuthService) EnsureAdmin(ctx context.Context, email, password string) error {
	email = normalizeEmail(email)
	if _, err := s.userRepo.GetUserByEmail(ctx, email); err == nil {
		return nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		return err
	}

	in := RegisterInput{Name: "Administrator", Email: email, Password: password, Age: 30, Gender: "other"}
	if err := s.validate.Struct(in); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}
	user, err := s.createUser(ctx, in, domain.Admin)
	if err != nil {
		return err
	}

	s.logger.Info("Bootstrap admin created", map[string]interface{}{
		"user_id": user.UserID,
	})
	return nil
}

func (s *AuthService) createUser(ctx context.Context, in RegisterInput, role domain.UserRole) (*domain.User, error) {
	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		UserID:       uuid.New(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         role,
		Age:          in.Age,
		Gender:       in.Gender,
	}

	created, err := s.userRepo.CreateUser(ctx, user)
	if err != nil {
		s.logger.Warn("Failed to create user", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, err
	}
	return created, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
