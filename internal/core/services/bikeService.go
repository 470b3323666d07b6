package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sm8ta/webike_rental_service/internal/core/domain"
	"github.com/sm8ta/webike_rental_service/internal/core/ports"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const bikeCacheTTL = 15 * time.Minute

// bikeCacheKey uses the canonical uuid form so every spelling of an id shares one entry.
func bikeCacheKey(bikeID uuid.UUID) string {
	return fmt.Sprintf("bike:%s", bikeID.String())
}

type BikeService struct {
	bikeRepo ports.BikeRepository
	logger   ports.LoggerPort
	validate *validator.Validate
	cache    ports.CachePort
}

func NewBikeService(
	bikeRepo ports.BikeRepository,
	logger ports.LoggerPort,
	validate *validator.Validate,
	cache ports.CachePort,
) *BikeService {
	return &BikeService{
		bikeRepo: bikeRepo,
		logger:   logger,
		validate: validate,
		cache:    cache,
	}
}

func (s *BikeService) CreateBike(ctx context.Context, bike *domain.Bike) (*domain.Bike, error) {
	if err := s.validate.Struct(bike); err != nil {
		s.logger.Error("Bike validation failed", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}

	if bike.BikeID == uuid.Nil {
		bike.BikeID = uuid.New()
	}
	if bike.Images == nil {
		bike.Images = []string{}
	}

	createdBike, err := s.bikeRepo.CreateBike(ctx, bike)
	if err != nil {
		s.logger.Error("Failed to create bike", map[string]interface{}{
			"error": err.Error(),
			"name":  bike.Name,
		})
		return nil, err
	}

	s.logger.Info("Bike created successfully", map[string]interface{}{
		"bike_id": createdBike.BikeID,
	})

	return createdBike, nil
}

func (s *BikeService) GetAllBikes(ctx context.Context) ([]*domain.Bike, error) {
	bikes, err := s.bikeRepo.GetAllBikes(ctx)
	if err != nil {
		s.logger.Error("Failed to list bikes", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, err
	}
	return bikes, nil
}

func (s *BikeService) GetBikeByID(ctx context.Context, bikeID string) (*domain.Bike, error) {
	bikeUUID, err := uuid.Parse(bikeID)
	if err != nil {
		s.logger.Warn("Invalid UUID format", map[string]interface{}{
			"bike_id": bikeID,
			"error":   err.Error(),
		})
		return nil, domain.ErrBikeNotFound
	}

	cacheKey := bikeCacheKey(bikeUUID)
	cachedData, err := s.cache.Get(cacheKey)
	if err == nil {
		var cachedBike domain.Bike
		if err := json.Unmarshal(cachedData, &cachedBike); err == nil {
			s.logger.Debug("Bike found in cache", map[string]interface{}{
				"bike_id": bikeID,
			})
			return &cachedBike, nil
		}
	}

	bike, err := s.bikeRepo.GetBikeByID(ctx, bikeUUID)
	if err != nil {
		s.logger.Error("Failed to get bike", map[string]interface{}{
			"error":   err.Error(),
			"bike_id": bikeID,
		})
		return nil, err
	}

	bikeData, err := json.Marshal(bike)
	if err != nil {
		s.logger.Warn("Failed to marshal bike for cache", map[string]interface{}{
			"error":   err.Error(),
			"bike_id": bikeID,
		})
	} else {
		if err := s.cache.Set(cacheKey, bikeData, bikeCacheTTL); err != nil {
			s.logger.Warn("Failed to cache bike", map[string]interface{}{
				"error":   err.Error(),
				"bike_id": bikeID,
			})
		}
	}

	return bike, nil
}

// GetBikeFresh bypasses the cache. Booking decisions read availability here.
func (s *BikeService) GetBikeFresh(ctx context.Context, bikeID uuid.UUID) (*domain.Bike, error) {
	return s.bikeRepo.GetBikeByID(ctx, bikeID)
}

func (s *BikeService) UpdateBike(ctx context.Context, bikeID string, patch domain.BikePatch) (*domain.Bike, error) {
	bikeUUID, err := uuid.Parse(bikeID)
	if err != nil {
		return nil, domain.ErrBikeNotFound
	}

	bike, err := s.bikeRepo.GetBikeByID(ctx, bikeUUID)
	if err != nil {
		s.logger.Error("Failed to get bike for update", map[string]interface{}{
			"error":   err.Error(),
			"bike_id": bikeID,
		})
		return nil, err
	}

	patch.Apply(bike)
	if err := s.validate.Struct(bike); err != nil {
		s.logger.Error("Bike validation failed", map[string]interface{}{
			"error":   err.Error(),
			"bike_id": bikeID,
		})
		return nil, fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}

	updatedBike, err := s.bikeRepo.UpdateBike(ctx, bike)
	if err != nil {
		s.logger.Error("Failed to update bike", map[string]interface{}{
			"error":   err.Error(),
			"bike_id": bikeID,
		})
		return nil, err
	}

	s.invalidate(bikeUUID)

	s.logger.Info("Bike updated successfully", map[string]interface{}{
		"bike_id": bikeID,
	})

	return updatedBike, nil
}

func (s *BikeService) DeleteBike(ctx context.Context, bikeID string) error {
	bikeUUID, err := uuid.Parse(bikeID)
	if err != nil {
		s.logger.Warn("Invalid UUID format", map[string]interface{}{
			"bike_id": bikeID,
			"error":   err.Error(),
		})
		return domain.ErrBikeNotFound
	}

	err = s.bikeRepo.DeleteBike(ctx, bikeUUID)
	if err != nil {
		s.logger.Error("Failed to delete bike", map[string]interface{}{
			"error":   err.Error(),
			"bike_id": bikeID,
		})
		return err
	}

	s.invalidate(bikeUUID)

	s.logger.Info("Bike deleted successfully", map[string]interface{}{
		"bike_id": bikeID,
	})

	return nil
}

func (s *BikeService) invalidate(bikeID uuid.UUID) {
	if err := s.cache.Delete(bikeCacheKey(bikeID)); err != nil {
		s.logger.Warn("Failed to invalidate bike cache", map[string]interface{}{
			"error":   err.Error(),
			"bike_id": bikeID,
		})
	}
}
