package services

import (
	"context"
	"fmt"
	"time"

	"github.com/sm8ta/webike_rental_service/internal/core/domain"
	"github.com/sm8ta/webike_rental_service/internal/core/ports"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type BookingService struct {
	bookingRepo ports.BookingRepository
	bikes       *BikeService
	logger      ports.LoggerPort
	validate    *validator.Validate
	metrics     ports.MetricsPort
}

func NewBookingService(
	bookingRepo ports.BookingRepository,
	bikes *BikeService,
	logger ports.LoggerPort,
	validate *validator.Validate,
	metrics ports.MetricsPort,
) *BookingService {
	return &BookingService{
		bookingRepo: bookingRepo,
		bikes:       bikes,
		logger:      logger,
		validate:    validate,
		metrics:     metrics,
	}
}

// CreateBooking books an available bike. The new booking is pending and the
// bike stays available until an admin confirms it.
func (s *BookingService) CreateBooking(ctx context.Context, userID uuid.UUID, bikeID string, start, end time.Time) (*domain.Booking, error) {
	bikeUUID, err := uuid.Parse(bikeID)
	if err != nil {
		s.logger.Warn("Booking requested for malformed bike id", map[string]interface{}{
			"bike_id": bikeID,
			"user_id": userID,
		})
		return nil, domain.ErrBikeNotFound
	}

	bike, err := s.bikes.GetBikeFresh(ctx, bikeUUID)
	if err != nil {
		s.logger.Warn("Failed to load bike for booking", map[string]interface{}{
			"error":   err.Error(),
			"bike_id": bikeID,
		})
		return nil, err
	}

	if !bike.Available {
		s.logger.Info("Booking rejected, bike unavailable", map[string]interface{}{
			"bike_id": bikeID,
			"user_id": userID,
		})
		return nil, domain.ErrBikeUnavailable
	}

	owner := userID
	booking := &domain.Booking{
		BookingID: uuid.New(),
		UserID:    &owner,
		BikeID:    &bike.BikeID,
		StartDate: start,
		EndDate:   end,
		Status:    domain.BookingPending,
	}
	if err := s.validate.Struct(booking); err != nil {
		s.logger.Error("Booking validation failed", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}

	created, err := s.bookingRepo.CreateBooking(ctx, booking)
	if err != nil {
		s.logger.Error("Failed to create booking", map[string]interface{}{
			"error":   err.Error(),
			"bike_id": bikeID,
			"user_id": userID,
		})
		return nil, err
	}

	s.logger.Info("Booking created successfully", map[string]interface{}{
		"booking_id": created.BookingID,
		"bike_id":    bikeID,
		"user_id":    userID,
	})

	return created, nil
}

func (s *BookingService) GetMyBookings(ctx context.Context, userID uuid.UUID) ([]*domain.Booking, error) {
	bookings, err := s.bookingRepo.GetBookingsByUserID(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to get user bookings", map[string]interface{}{
			"error":   err.Error(),
			"user_id": userID,
		})
		return nil, err
	}

	s.logger.Debug("Retrieved bookings for user", map[string]interface{}{
		"user_id":        userID,
		"bookings_count": len(bookings),
	})

	return bookings, nil
}

func (s *BookingService) CancelBooking(ctx context.Context, requesterID uuid.UUID, bookingID string) error {
	booking, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return err
	}

	if !booking.OwnedBy(requesterID) {
		s.logger.Warn("Cancel attempt on foreign booking", map[string]interface{}{
			"booking_id":   bookingID,
			"requester_id": requesterID,
		})
		return domain.ErrNotBookingOwner
	}

	_, err = s.transition(ctx, booking, domain.BookingCancelled)
	return err
}

func (s *BookingService) GetAllBookings(ctx context.Context) ([]*domain.Booking, error) {
	bookings, err := s.bookingRepo.GetAllBookings(ctx)
	if err != nil {
		s.logger.Error("Failed to list bookings", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, err
	}
	return bookings, nil
}

func (s *BookingService) UpdateBookingStatus(ctx context.Context, bookingID string, status domain.BookingStatus) (*domain.Booking, error) {
	if !status.Valid() {
		s.logger.Warn("Rejected booking status", map[string]interface{}{
			"booking_id": bookingID,
			"status":     status,
		})
		return nil, domain.ErrInvalidStatus
	}

	booking, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	return s.transition(ctx, booking, status)
}

// transition is the only path that changes a booking status. The bike flag is
// derived from the target status and written together with it.
func (s *BookingService) transition(ctx context.Context, booking *domain.Booking, status domain.BookingStatus) (*domain.Booking, error) {
	var setAvailable *bool
	if available, changes := domain.AvailabilityAfter(status); changes && booking.BikeID != nil {
		setAvailable = &available
	}

	updated, err := s.bookingRepo.TransitionStatus(ctx, booking.BookingID, status, setAvailable)
	if err != nil {
		s.logger.Error("Failed to transition booking", map[string]interface{}{
			"error":      err.Error(),
			"booking_id": booking.BookingID,
			"from":       booking.Status,
			"to":         status,
		})
		return nil, err
	}

	if setAvailable != nil {
		s.bikes.invalidate(*booking.BikeID)
	}
	s.metrics.RecordBookingTransition(string(status))

	s.logger.Info("Booking status changed", map[string]interface{}{
		"booking_id": booking.BookingID,
		"from":       booking.Status,
		"to":         status,
	})

	return updated, nil
}

func (s *BookingService) getBooking(ctx context.Context, bookingID string) (*domain.Booking, error) {
	bookingUUID, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, domain.ErrBookingNotFound
	}

	booking, err := s.bookingRepo.GetBookingByID(ctx, bookingUUID)
	if err != nil {
		s.logger.Warn("Failed to get booking", map[string]interface{}{
			"error":      err.Error(),
			"booking_id": bookingID,
		})
		return nil, err
	}
	return booking, nil
}
