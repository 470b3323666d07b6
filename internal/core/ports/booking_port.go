package ports

import (
	"context"

	"github.com/sm8ta/webike_rental_service/internal/core/domain"

	"github.com/google/uuid"
)

type BookingRepository interface {
	CreateBooking(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetBookingByID(ctx context.Context, bookingID uuid.UUID) (*domain.Booking, error)
	// GetBookingsByUserID attaches the bike to every booking.
	GetBookingsByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Booking, error)
	// GetAllBookings attaches owner and bike, newest first.
	GetAllBookings(ctx context.Context) ([]*domain.Booking, error)
	// TransitionStatus writes the new status and, when setAvailable is non-nil,
	// the booked bike's available flag in one atomic step.
	TransitionStatus(ctx context.Context, bookingID uuid.UUID, status domain.BookingStatus, setAvailable *bool) (*domain.Booking, error)
	CountBookings(ctx context.Context) (int, error)
	CountBookingsByStatus(ctx context.Context, status domain.BookingStatus) (int, error)
}
