package http

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/sm8ta/webike_rental_service/internal/core/domain"

	"github.com/google/uuid"
)

func TestUserAdministration(t *testing.T) {
	s := newTestServer(t, 100)
	userToken, user := s.register(t, "rider@example.com")
	admin := s.adminToken(t)

	w := s.do(t, http.MethodGet, "/api/users", userToken, nil)
	expectStatus(t, w, http.StatusForbidden)

	w = s.do(t, http.MethodGet, "/api/users", admin, nil)
	expectStatus(t, w, http.StatusOK)
	if strings.Contains(w.Body.String(), "password") {
		t.Fatalf("password hash leaked: %s", w.Body.String())
	}
	if users := decode[[]domain.User](t, w); len(users) != 2 {
		t.Fatalf("expected admin and rider, got %d", len(users))
	}

	w = s.do(t, http.MethodGet, "/api/users/"+user.UserID.String(), admin, nil)
	expectStatus(t, w, http.StatusOK)

	age := 40
	w = s.do(t, http.MethodPut, "/api/users/"+user.UserID.String(), admin, UpdateUserRequest{Age: &age})
	expectStatus(t, w, http.StatusOK)
	if got := decode[domain.User](t, w); got.Age != 40 || got.Name != user.Name {
		t.Fatalf("unexpected user %+v", got)
	}

	w = s.do(t, http.MethodDelete, "/api/users/"+user.UserID.String(), admin, nil)
	expectStatus(t, w, http.StatusOK)
	w = s.do(t, http.MethodGet, "/api/users/"+user.UserID.String(), admin, nil)
	expectStatus(t, w, http.StatusNotFound)
	w = s.do(t, http.MethodGet, "/api/users/"+uuid.NewString(), admin, nil)
	expectStatus(t, w, http.StatusNotFound)
}

func TestDeleteAdminForbidden(t *testing.T) {
	s := newTestServer(t, 100)
	admin := s.adminToken(t)
	stored, err := s.store.GetUserByEmail(context.Background(), adminEmail)
	if err != nil {
		t.Fatalf("get admin: %v", err)
	}

	w := s.do(t, http.MethodDelete, "/api/users/"+stored.UserID.String(), admin, nil)
	expectStatus(t, w, http.StatusForbidden)
}

func TestGetMe(t *testing.T) {
	s := newTestServer(t, 100)
	token, user := s.register(t, "me@example.com")

	w := s.do(t, http.MethodGet, "/api/users/me", token, nil)
	expectStatus(t, w, http.StatusOK)
	if got := decode[domain.User](t, w); got.UserID != user.UserID || got.Email != "me@example.com" {
		t.Fatalf("unexpected profile %+v", got)
	}

	w = s.do(t, http.MethodGet, "/api/users/me", "", nil)
	expectStatus(t, w, http.StatusUnauthorized)
}
