package services

import (
	"context"

	"github.com/sm8ta/webike_rental_service/internal/core/domain"
	"github.com/sm8ta/webike_rental_service/internal/core/ports"

	"github.com/google/uuid"
)

type FavoriteService struct {
	favoriteRepo ports.FavoriteRepository
	bikes        *BikeService
	logger       ports.LoggerPort
}

func NewFavoriteService(favoriteRepo ports.FavoriteRepository, bikes *BikeService, logger ports.LoggerPort) *FavoriteService {
	return &FavoriteService{
		favoriteRepo: favoriteRepo,
		bikes:        bikes,
		logger:       logger,
	}
}

func (s *FavoriteService) GetFavorites(ctx context.Context, userID uuid.UUID) ([]*domain.Bike, error) {
	bikes, err := s.favoriteRepo.GetFavoriteBikes(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to get favorites", map[string]interface{}{
			"error":   err.Error(),
			"user_id": userID,
		})
		return nil, err
	}
	return bikes, nil
}

func (s *FavoriteService) AddFavorite(ctx context.Context, userID uuid.UUID, bikeID string) error {
	bike, err := s.bikes.GetBikeByID(ctx, bikeID)
	if err != nil {
		return err
	}

	if err := s.favoriteRepo.AddFavorite(ctx, userID, bike.BikeID); err != nil {
		s.logger.Error("Failed to add favorite", map[string]interface{}{
			"error":   err.Error(),
			"user_id": userID,
			"bike_id": bikeID,
		})
		return err
	}

	s.logger.Debug("Favorite added", map[string]interface{}{
		"user_id": userID,
		"bike_id": bikeID,
	})
	return nil
}

// RemoveFavorite succeeds even when the bike was never a favorite.
func (s *FavoriteService) RemoveFavorite(ctx context.Context, userID uuid.UUID, bikeID string) error {
	bikeUUID, err := uuid.Parse(bikeID)
	if err != nil {
		return domain.ErrBikeNotFound
	}

	if err := s.favoriteRepo.RemoveFavorite(ctx, userID, bikeUUID); err != nil {
		s.logger.Error("Failed to remove favorite", map[string]interface{}{
			"error":   err.Error(),
			"user_id": userID,
			"bike_id": bikeID,
		})
		return err
	}
	return nil
}
