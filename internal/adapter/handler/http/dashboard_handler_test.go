package http

import (
	"net/http"
	"testing"

	"github.com/sm8ta/webike_rental_service/internal/core/domain"
)

func TestAdminStats(t *testing.T) {
	s := newTestServer(t, 100)
	userToken, _ := s.register(t, "rider@example.com")
	admin := s.adminToken(t)
	bike := s.seedBike(t, true)
	s.seedBike(t, true)

	created := book(s, t, userToken, bike.BikeID.String())
	w := s.do(t, http.MethodPut, "/api/booking/"+created.Booking.BookingID.String()+"/status", admin, UpdateBookingStatusRequest{Status: "confirmed"})
	expectStatus(t, w, http.StatusOK)

	w = s.do(t, http.MethodGet, "/api/admin/stats", userToken, nil)
	expectStatus(t, w, http.StatusForbidden)

	w = s.do(t, http.MethodGet, "/api/admin/stats", admin, nil)
	expectStatus(t, w, http.StatusOK)
	want := domain.DashboardStats{TotalUsers: 2, TotalBikes: 2, TotalBookings: 1, ActiveBookings: 1}
	if got := decode[domain.DashboardStats](t, w); got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, 100)

	w := s.do(t, http.MethodGet, "/health", "", nil)
	expectStatus(t, w, http.StatusOK)
}
