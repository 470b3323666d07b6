package services

import (
	"context"
	"fmt"

	"github.com/sm8ta/webike_rental_service/internal/core/domain"
	"github.com/sm8ta/webike_rental_service/internal/core/ports"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type UserService struct {
	userRepo ports.UserRepository
	logger   ports.LoggerPort
	validate *validator.Validate
}

func NewUserService(userRepo ports.UserRepository, logger ports.LoggerPort, validate *validator.Validate) *UserService {
	return &UserService{
		userRepo: userRepo,
		logger:   logger,
		validate: validate,
	}
}

func (s *UserService) GetAllUsers(ctx context.Context) ([]*domain.User, error) {
	users, err := s.userRepo.GetAllUsers(ctx)
	if err != nil {
		s.logger.Error("Failed to list users", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, err
	}
	return users, nil
}

func (s *UserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	return s.userRepo.GetUserByID(ctx, id)
}

func (s *UserService) UpdateUser(ctx context.Context, userID string, patch domain.UserPatch) (*domain.User, error) {
	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	patch.Apply(user)
	if err := s.validate.Struct(user); err != nil {
		s.logger.Warn("User validation failed", map[string]interface{}{
			"error":   err.Error(),
			"user_id": userID,
		})
		return nil, fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}

	updated, err := s.userRepo.UpdateUser(ctx, user)
	if err != nil {
		s.logger.Error("Failed to update user", map[string]interface{}{
			"error":   err.Error(),
			"user_id": userID,
		})
		return nil, err
	}

	s.logger.Info("User updated", map[string]interface{}{
		"user_id": userID,
	})
	return updated, nil
}

// DeleteUser removes a regular account. Admin accounts are protected.
func (s *UserService) DeleteUser(ctx context.Context, userID string) error {
	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.IsAdmin() {
		s.logger.Warn("Attempt to delete admin account", map[string]interface{}{
			"user_id": userID,
		})
		return domain.ErrAdminProtected
	}

	if err := s.userRepo.DeleteUser(ctx, user.UserID); err != nil {
		s.logger.Error("Failed to delete user", map[string]interface{}{
			"error":   err.Error(),
			"user_id": userID,
		})
		return err
	}

	s.logger.Info("User deleted", map[string]interface{}{
		"user_id": userID,
	})
	return nil
}
