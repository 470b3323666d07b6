package memory

import (
	"context"

	"github.com/sm8ta/webike_rental_service/internal/core/domain"

	"github.com/google/uuid"
)

func (s *Store) CreateBooking(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if booking.BikeID == nil {
		return nil, domain.ErrBikeNotFound
	}
	if _, ok := s.bikes[*booking.BikeID]; !ok {
		return nil, domain.ErrBikeNotFound
	}
	if booking.UserID != nil {
		if _, ok := s.users[*booking.UserID]; !ok {
			return nil, domain.ErrUserNotFound
		}
	}

	now := s.now()
	stored := *booking
	stored.Bike, stored.User = nil, nil
	stored.CreatedAt, stored.UpdatedAt = now, now
	s.bookings[stored.BookingID] = stored
	s.bookingOrder = append(s.bookingOrder, stored.BookingID)

	out := stored
	return &out, nil
}

func (s *Store) GetBookingByID(_ context.Context, bookingID uuid.UUID) (*domain.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.bookings[bookingID]
	if !ok {
		return nil, domain.ErrBookingNotFound
	}
	return &b, nil
}

func (s *Store) GetBookingsByUserID(_ context.Context, userID uuid.UUID) ([]*domain.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res := make([]*domain.Booking, 0)
	for _, id := range s.bookingOrder {
		b := s.bookings[id]
		if !b.OwnedBy(userID) {
			continue
		}
		b.Bike = s.bikeOf(b)
		res = append(res, &b)
	}
	return res, nil
}

// GetAllBookings returns bookings newest first with owner and bike attached.
func (s *Store) GetAllBookings(_ context.Context) ([]*domain.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res := make([]*domain.Booking, 0, len(s.bookingOrder))
	for i := len(s.bookingOrder) - 1; i >= 0; i-- {
		b := s.bookings[s.bookingOrder[i]]
		b.Bike = s.bikeOf(b)
		if b.UserID != nil {
			if u, ok := s.users[*b.UserID]; ok {
				b.User = &domain.UserSummary{UserID: u.UserID, Name: u.Name, Email: u.Email}
			}
		}
		res = append(res, &b)
	}
	return res, nil
}

// TransitionStatus holds the write lock across both writes, so readers never
// observe the status without the matching availability.
func (s *Store) TransitionStatus(_ context.Context, bookingID uuid.UUID, status domain.BookingStatus, setAvailable *bool) (*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookings[bookingID]
	if !ok {
		return nil, domain.ErrBookingNotFound
	}
	now := s.now()
	b.Status = status
	b.UpdatedAt = now
	s.bookings[bookingID] = b

	if setAvailable != nil && b.BikeID != nil {
		if bike, ok := s.bikes[*b.BikeID]; ok {
			bike.Available = *setAvailable
			bike.UpdatedAt = now
			s.bikes[bike.BikeID] = bike
		}
	}

	out := b
	return &out, nil
}

func (s *Store) CountBookings(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.bookings), nil
}

func (s *Store) CountBookingsByStatus(_ context.Context, status domain.BookingStatus) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, b := range s.bookings {
		if b.Status == status {
			n++
		}
	}
	return n, nil
}

// bikeOf must be called with the lock held.
func (s *Store) bikeOf(b domain.Booking) *domain.Bike {
	if b.BikeID == nil {
		return nil
	}
	bike, ok := s.bikes[*b.BikeID]
	if !ok {
		return nil
	}
	return copyBike(bike)
}
