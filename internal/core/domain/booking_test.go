package domain

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestAvailabilityAfter(t *testing.T) {
	cases := []struct {
		status    BookingStatus
		available bool
		changes   bool
	}{
		{BookingPending, false, false},
		{BookingConfirmed, false, true},
		{BookingCancelled, true, true},
	}
	for _, tc := range cases {
		available, changes := AvailabilityAfter(tc.status)
		if available != tc.available || changes != tc.changes {
			t.Fatalf("AvailabilityAfter(%q) = (%v, %v), want (%v, %v)",
				tc.status, available, changes, tc.available, tc.changes)
		}
	}
}

func TestBookingStatusValid(t *testing.T) {
	for _, s := range []BookingStatus{BookingPending, BookingConfirmed, BookingCancelled} {
		if !s.Valid() {
			t.Fatalf("%q should be valid", s)
		}
	}
	for _, s := range []BookingStatus{"", "done", "CONFIRMED"} {
		if s.Valid() {
			t.Fatalf("%q should be invalid", s)
		}
	}
}

func TestBookingOwnedBy(t *testing.T) {
	owner := uuid.New()
	b := &Booking{UserID: &owner}
	if !b.OwnedBy(owner) {
		t.Fatalf("owner not recognized")
	}
	if b.OwnedBy(uuid.New()) {
		t.Fatalf("stranger recognized as owner")
	}
	orphan := &Booking{}
	if orphan.OwnedBy(owner) {
		t.Fatalf("booking without owner claimed")
	}
}

func TestParseBikeType(t *testing.T) {
	cases := map[string]BikeType{
		"City":       City,
		"normal":     City,
		"electrique": Electric,
		" Electric ": Electric,
		"vtt":        VTT,
	}
	for in, want := range cases {
		got, ok := ParseBikeType(in)
		if !ok || got != want {
			t.Fatalf("ParseBikeType(%q) = (%q, %v), want %q", in, got, ok, want)
		}
	}
	if _, ok := ParseBikeType("tandem"); ok {
		t.Fatalf("unknown type accepted")
	}
}

func TestDomainErrorsWrapSentinels(t *testing.T) {
	if !errors.Is(ErrBikeNotFound, ErrNotFound) {
		t.Fatalf("ErrBikeNotFound must wrap ErrNotFound")
	}
	if !errors.Is(ErrInvalidStatus, ErrValidation) {
		t.Fatalf("ErrInvalidStatus must wrap ErrValidation")
	}
	if !errors.Is(ErrAdminProtected, ErrForbidden) {
		t.Fatalf("ErrAdminProtected must wrap ErrForbidden")
	}
	if !errors.Is(ErrEmailTaken, ErrConflict) {
		t.Fatalf("ErrEmailTaken must wrap ErrConflict")
	}
}

func TestBikePatchApply(t *testing.T) {
	b := &Bike{Name: "Old", Price: 10, Available: true}
	name := "New"
	avail := false
	BikePatch{Name: &name, Available: &avail}.Apply(b)
	if b.Name != "New" || b.Available || b.Price != 10 {
		t.Fatalf("unexpected bike after patch: %+v", b)
	}
}
