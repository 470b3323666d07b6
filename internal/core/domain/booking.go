package domain

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCancelled:
		return true
	}
	return false
}

// AvailabilityAfter is the one rule linking booking status to the bike's
// available flag. The second result is false when the flag must be left as is.
func AvailabilityAfter(status BookingStatus) (available bool, changes bool) {
	switch status {
	case BookingCancelled:
		return true, true
	case BookingConfirmed:
		return false, true
	}
	return false, false
}

// swagger:model domain.Booking
type Booking struct {
	BookingID uuid.UUID     `json:"booking_id"`
	UserID    *uuid.UUID    `json:"user_id"`
	BikeID    *uuid.UUID    `json:"bike_id"`
	StartDate time.Time     `json:"start_date" validate:"required"`
	EndDate   time.Time     `json:"end_date" validate:"required,gtefield=StartDate"`
	Status    BookingStatus `json:"status"`
	Bike      *Bike         `json:"bike,omitempty"`
	User      *UserSummary  `json:"user,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// OwnedBy reports whether userID owns the booking. Bookings whose owner was
// deleted belong to nobody.
func (b *Booking) OwnedBy(userID uuid.UUID) bool {
	return b.UserID != nil && *b.UserID == userID
}

// UserSummary is the owner view attached to admin booking listings.
type UserSummary struct {
	UserID uuid.UUID `json:"user_id"`
	Name   string    `json:"name"`
	Email  string    `json:"email"`
}
