package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/sm8ta/webike_rental_service/internal/core/domain"

	"github.com/google/uuid"
)

func TestCreateBookingRejectsUnavailableBike(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.user(t, "a@example.com")
	b := f.bike(t, false)

	_, err := f.bookings.CreateBooking(ctx, u.UserID, b.BikeID.String(), day(0), day(2))
	if !errors.Is(err, domain.ErrBikeUnavailable) {
		t.Fatalf("expected ErrBikeUnavailable, got %v", err)
	}
	if n, _ := f.store.CountBookings(ctx); n != 0 {
		t.Fatalf("expected no booking record, got %d", n)
	}
}

func TestCreateBookingUnknownBike(t *testing.T) {
	f := newFixture(t)
	u := f.user(t, "a@example.com")

	for _, id := range []string{uuid.NewString(), "not-a-uuid"} {
		_, err := f.bookings.CreateBooking(context.Background(), u.UserID, id, day(0), day(1))
		if !errors.Is(err, domain.ErrBikeNotFound) {
			t.Fatalf("bike %q: expected ErrBikeNotFound, got %v", id, err)
		}
	}
}

func TestCreateBookingRejectsEndBeforeStart(t *testing.T) {
	f := newFixture(t)
	u := f.user(t, "a@example.com")
	b := f.bike(t, true)

	_, err := f.bookings.CreateBooking(context.Background(), u.UserID, b.BikeID.String(), day(3), day(1))
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestCreateBookingIsPendingAndKeepsBikeAvailable(t *testing.T) {
	f := newFixture(t)
	u := f.user(t, "a@example.com")
	b := f.bike(t, true)

	booking, err := f.bookings.CreateBooking(context.Background(), u.UserID, b.BikeID.String(), day(0), day(0))
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}
	if booking.Status != domain.BookingPending {
		t.Fatalf("expected pending, got %q", booking.Status)
	}
	if !f.availability(t, b.BikeID) {
		t.Fatal("booking creation must not flip availability")
	}
}

func TestCancelForeignBookingIsForbidden(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.user(t, "owner@example.com")
	other := f.user(t, "other@example.com")
	b := f.bike(t, true)

	booking, err := f.bookings.CreateBooking(ctx, owner.UserID, b.BikeID.String(), day(0), day(1))
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}

	err = f.bookings.CancelBooking(ctx, other.UserID, booking.BookingID.String())
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}

	stored, _ := f.store.GetBookingByID(ctx, booking.BookingID)
	if stored.Status != domain.BookingPending {
		t.Fatalf("status changed to %q", stored.Status)
	}
}

func TestCancelMissingBooking(t *testing.T) {
	f := newFixture(t)
	u := f.user(t, "a@example.com")

	err := f.bookings.CancelBooking(context.Background(), u.UserID, uuid.NewString())
	if !errors.Is(err, domain.ErrBookingNotFound) {
		t.Fatalf("expected ErrBookingNotFound, got %v", err)
	}
}

func TestStatusTransitionsDriveAvailability(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.user(t, "a@example.com")
	b := f.bike(t, true)

	booking, err := f.bookings.CreateBooking(ctx, u.UserID, b.BikeID.String(), day(0), day(1))
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}
	id := booking.BookingID.String()

	steps := []struct {
		status    domain.BookingStatus
		available bool
	}{
		{domain.BookingConfirmed, false},
		{domain.BookingPending, false},
		{domain.BookingCancelled, true},
		{domain.BookingPending, true},
		{domain.BookingConfirmed, false},
	}
	for _, step := range steps {
		updated, err := f.bookings.UpdateBookingStatus(ctx, id, step.status)
		if err != nil {
			t.Fatalf("update to %q: %v", step.status, err)
		}
		if updated.Status != step.status {
			t.Fatalf("expected status %q, got %q", step.status, updated.Status)
		}
		if got := f.availability(t, b.BikeID); got != step.available {
			t.Fatalf("after %q expected available=%v, got %v", step.status, step.available, got)
		}
	}
}

func TestCancelAlwaysFreesBike(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.user(t, "a@example.com")
	b := f.bike(t, true)

	booking, err := f.bookings.CreateBooking(ctx, u.UserID, b.BikeID.String(), day(0), day(1))
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}

	// The bike is taken out of service independently of this booking.
	unavailable := false
	if _, err := f.bikes.UpdateBike(ctx, b.BikeID.String(), domain.BikePatch{Available: &unavailable}); err != nil {
		t.Fatalf("update bike: %v", err)
	}

	if err := f.bookings.CancelBooking(ctx, u.UserID, booking.BookingID.String()); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if !f.availability(t, b.BikeID) {
		t.Fatal("expected cancel to set available=true")
	}
}

func TestInvalidStatusChangesNothing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.user(t, "a@example.com")
	b := f.bike(t, true)

	booking, err := f.bookings.CreateBooking(ctx, u.UserID, b.BikeID.String(), day(0), day(1))
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}

	_, err = f.bookings.UpdateBookingStatus(ctx, booking.BookingID.String(), "returned")
	if !errors.Is(err, domain.ErrInvalidStatus) || !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}

	stored, _ := f.store.GetBookingByID(ctx, booking.BookingID)
	if stored.Status != domain.BookingPending || !f.availability(t, b.BikeID) {
		t.Fatalf("unexpected mutation: status=%q", stored.Status)
	}
}

func TestTransitionInvalidatesCachedBike(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.user(t, "a@example.com")
	b := f.bike(t, true)
	key := bikeCacheKey(b.BikeID)

	if _, err := f.bikes.GetBikeByID(ctx, b.BikeID.String()); err != nil {
		t.Fatalf("warm cache: %v", err)
	}
	if !f.redis.Exists(key) {
		t.Fatal("expected bike to be cached")
	}

	booking, err := f.bookings.CreateBooking(ctx, u.UserID, b.BikeID.String(), day(0), day(1))
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}
	if _, err := f.bookings.UpdateBookingStatus(ctx, booking.BookingID.String(), domain.BookingConfirmed); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if f.redis.Exists(key) {
		t.Fatal("expected cache entry to be dropped after confirm")
	}

	got, err := f.bikes.GetBikeByID(ctx, b.BikeID.String())
	if err != nil {
		t.Fatalf("get bike: %v", err)
	}
	if got.Available {
		t.Fatal("expected fresh read to show available=false")
	}
}

func TestMyBookingsOnlyListsOwnBookings(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.user(t, "alice@example.com")
	bob := f.user(t, "bob@example.com")
	b := f.bike(t, true)

	for _, u := range []*domain.User{alice, bob, alice} {
		if _, err := f.bookings.CreateBooking(ctx, u.UserID, b.BikeID.String(), day(0), day(1)); err != nil {
			t.Fatalf("create booking: %v", err)
		}
	}

	mine, err := f.bookings.GetMyBookings(ctx, alice.UserID)
	if err != nil {
		t.Fatalf("my bookings: %v", err)
	}
	if len(mine) != 2 {
		t.Fatalf("expected 2 bookings, got %d", len(mine))
	}
	for _, booking := range mine {
		if !booking.OwnedBy(alice.UserID) {
			t.Fatalf("listing contains foreign booking %s", booking.BookingID)
		}
		if booking.Bike == nil || booking.Bike.BikeID != b.BikeID {
			t.Fatal("expected bike attached")
		}
	}
}

func TestTransitionInvalidatesBikeCachedUnderUppercaseID(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.user(t, "a@example.com")
	b := f.bike(t, true)
	upper := strings.ToUpper(b.BikeID.String())

	if _, err := f.bikes.GetBikeByID(ctx, upper); err != nil {
		t.Fatalf("warm cache: %v", err)
	}

	booking, err := f.bookings.CreateBooking(ctx, u.UserID, upper, day(0), day(1))
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}
	if _, err := f.bookings.UpdateBookingStatus(ctx, booking.BookingID.String(), domain.BookingConfirmed); err != nil {
		t.Fatalf("confirm: %v", err)
	}

	got, err := f.bikes.GetBikeByID(ctx, upper)
	if err != nil {
		t.Fatalf("get bike: %v", err)
	}
	if got.Available {
		t.Fatal("detail served stale availability after confirm")
	}
}
