package http

import (
	"net/http"
	"testing"

	"github.com/sm8ta/webike_rental_service/internal/core/domain"

	"github.com/google/uuid"
)

func TestCatalogIsPublic(t *testing.T) {
	s := newTestServer(t, 100)
	bike := s.seedBike(t, true)
	s.seedBike(t, false)

	w := s.do(t, http.MethodGet, "/api/home", "", nil)
	expectStatus(t, w, http.StatusOK)
	if bikes := decode[[]domain.Bike](t, w); len(bikes) != 2 {
		t.Fatalf("expected 2 bikes, got %d", len(bikes))
	}

	w = s.do(t, http.MethodGet, "/api/detailBike?id="+bike.BikeID.String(), "", nil)
	expectStatus(t, w, http.StatusOK)
	if got := decode[domain.Bike](t, w); got.Name != bike.Name || len(got.Images) != 1 {
		t.Fatalf("unexpected bike %+v", got)
	}

	for _, q := range []string{"?id=" + uuid.NewString(), "?id=abc", ""} {
		w = s.do(t, http.MethodGet, "/api/detailBike"+q, "", nil)
		expectStatus(t, w, http.StatusNotFound)
	}
}

func TestBikeMutationsRequireAdmin(t *testing.T) {
	s := newTestServer(t, 100)
	userToken, _ := s.register(t, "rider@example.com")
	bike := s.seedBike(t, true)
	req := BikeRequest{Name: "City", Size: "Moyenne", Type: "City", Price: 10}

	w := s.do(t, http.MethodPost, "/api/addBike", "", req)
	expectStatus(t, w, http.StatusUnauthorized)
	w = s.do(t, http.MethodPost, "/api/addBike", userToken, req)
	expectStatus(t, w, http.StatusForbidden)
	w = s.do(t, http.MethodPut, "/api/updateBike/"+bike.BikeID.String(), userToken, UpdateBikeRequest{})
	expectStatus(t, w, http.StatusForbidden)
	w = s.do(t, http.MethodDelete, "/api/deleteBike/"+bike.BikeID.String(), userToken, nil)
	expectStatus(t, w, http.StatusForbidden)
}

func TestAdminBikeLifecycle(t *testing.T) {
	s := newTestServer(t, 100)
	admin := s.adminToken(t)

	w := s.do(t, http.MethodPost, "/api/addBike", admin, BikeRequest{
		ExternalID: 7, Name: "Vélo électrique", Size: "Grand", Type: "electrique", Price: 25,
	})
	expectStatus(t, w, http.StatusCreated)
	created := decode[domain.Bike](t, w)
	if created.Type != domain.Electric || !created.Available || created.Images == nil {
		t.Fatalf("unexpected created bike %+v", created)
	}
	id := created.BikeID.String()

	// Warm the cache so the update has something to invalidate.
	s.bikeAvailable(t, created.BikeID)

	price := 30.0
	off := false
	w = s.do(t, http.MethodPut, "/api/updateBike/"+id, admin, UpdateBikeRequest{Price: &price, Available: &off})
	expectStatus(t, w, http.StatusOK)
	updated := decode[domain.Bike](t, w)
	if updated.Price != 30 || updated.Available || updated.Name != "Vélo électrique" {
		t.Fatalf("unexpected updated bike %+v", updated)
	}
	if s.bikeAvailable(t, created.BikeID) {
		t.Fatal("detail still served the stale cached bike")
	}

	w = s.do(t, http.MethodDelete, "/api/deleteBike/"+id, admin, nil)
	expectStatus(t, w, http.StatusOK)
	w = s.do(t, http.MethodGet, "/api/detailBike?id="+id, "", nil)
	expectStatus(t, w, http.StatusNotFound)
	w = s.do(t, http.MethodDelete, "/api/deleteBike/"+id, admin, nil)
	expectStatus(t, w, http.StatusNotFound)
}

func TestAddBikeValidation(t *testing.T) {
	s := newTestServer(t, 100)
	admin := s.adminToken(t)

	w := s.do(t, http.MethodPost, "/api/addBike", admin, BikeRequest{Name: "Odd", Size: "XXL", Type: "Tandem"})
	expectStatus(t, w, http.StatusBadRequest)
	body := decode[errorResponse](t, w)
	if len(body.Errors) != 2 {
		t.Fatalf("expected size and type errors, got %+v", body.Errors)
	}

	w = s.do(t, http.MethodPost, "/api/addBike", admin, map[string]any{"size": "Grand"})
	expectStatus(t, w, http.StatusBadRequest)
}
