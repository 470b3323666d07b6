// Package memory keeps every record in-process. It backs STORAGE_DRIVER=memory
// for local runs and the handler and service tests.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/sm8ta/webike_rental_service/internal/core/domain"

	"github.com/google/uuid"
)

// Store implements the bike, user, booking and favorite repositories.
type Store struct {
	mu           sync.RWMutex
	bikes        map[uuid.UUID]domain.Bike
	bikeOrder    []uuid.UUID
	users        map[uuid.UUID]domain.User
	userOrder    []uuid.UUID
	emails       map[string]uuid.UUID
	bookings     map[uuid.UUID]domain.Booking
	bookingOrder []uuid.UUID
	favorites    map[uuid.UUID][]uuid.UUID
	now          func() time.Time
}

func NewStore() *Store {
	return &Store{
		bikes:     make(map[uuid.UUID]domain.Bike),
		users:     make(map[uuid.UUID]domain.User),
		emails:    make(map[string]uuid.UUID),
		bookings:  make(map[uuid.UUID]domain.Booking),
		favorites: make(map[uuid.UUID][]uuid.UUID),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func copyBike(b domain.Bike) *domain.Bike {
	b.Images = append([]string{}, b.Images...)
	return &b
}

// Bikes

func (s *Store) CreateBike(_ context.Context, bike *domain.Bike) (*domain.Bike, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	stored := *copyBike(*bike)
	stored.CreatedAt, stored.UpdatedAt = now, now
	if _, exists := s.bikes[stored.BikeID]; !exists {
		s.bikeOrder = append(s.bikeOrder, stored.BikeID)
	}
	s.bikes[stored.BikeID] = stored
	return copyBike(stored), nil
}

func (s *Store) GetBikeByID(_ context.Context, bikeID uuid.UUID) (*domain.Bike, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bike, ok := s.bikes[bikeID]
	if !ok {
		return nil, domain.ErrBikeNotFound
	}
	return copyBike(bike), nil
}

func (s *Store) GetAllBikes(_ context.Context) ([]*domain.Bike, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res := make([]*domain.Bike, 0, len(s.bikeOrder))
	for _, id := range s.bikeOrder {
		if b, ok := s.bikes[id]; ok {
			res = append(res, copyBike(b))
		}
	}
	return res, nil
}

func (s *Store) UpdateBike(_ context.Context, bike *domain.Bike) (*domain.Bike, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.bikes[bike.BikeID]
	if !ok {
		return nil, domain.ErrBikeNotFound
	}
	stored := *copyBike(*bike)
	stored.CreatedAt = existing.CreatedAt
	stored.UpdatedAt = s.now()
	s.bikes[stored.BikeID] = stored
	return copyBike(stored), nil
}

// DeleteBike drops the bike and its favorites. Bookings keep a null bike.
func (s *Store) DeleteBike(_ context.Context, bikeID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.bikes[bikeID]; !ok {
		return domain.ErrBikeNotFound
	}
	delete(s.bikes, bikeID)
	s.bikeOrder = without(s.bikeOrder, bikeID)

	for id, b := range s.bookings {
		if b.BikeID != nil && *b.BikeID == bikeID {
			b.BikeID = nil
			s.bookings[id] = b
		}
	}
	for userID, favs := range s.favorites {
		s.favorites[userID] = without(favs, bikeID)
	}
	return nil
}

func (s *Store) CountBikes(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.bikes), nil
}

// Users

func (s *Store) CreateUser(_ context.Context, user *domain.User) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.emails[user.Email]; taken {
		return nil, domain.ErrEmailTaken
	}
	now := s.now()
	stored := *user
	stored.CreatedAt, stored.UpdatedAt = now, now
	s.users[stored.UserID] = stored
	s.userOrder = append(s.userOrder, stored.UserID)
	s.emails[stored.Email] = stored.UserID
	return &stored, nil
}

func (s *Store) GetUserByID(_ context.Context, userID uuid.UUID) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &u, nil
}

func (s *Store) GetUserByEmail(_ context.Context, email string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.emails[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u := s.users[id]
	return &u, nil
}

func (s *Store) GetAllUsers(_ context.Context) ([]*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res := make([]*domain.User, 0, len(s.userOrder))
	for _, id := range s.userOrder {
		if u, ok := s.users[id]; ok {
			res = append(res, &u)
		}
	}
	return res, nil
}

func (s *Store) UpdateUser(_ context.Context, user *domain.User) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.users[user.UserID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	existing.Name = user.Name
	existing.Age = user.Age
	existing.Gender = user.Gender
	existing.Role = user.Role
	existing.UpdatedAt = s.now()
	s.users[user.UserID] = existing
	return &existing, nil
}

// DeleteUser drops the account and its favorites. Bookings keep a null owner.
func (s *Store) DeleteUser(_ context.Context, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	delete(s.users, userID)
	delete(s.emails, u.Email)
	delete(s.favorites, userID)
	s.userOrder = without(s.userOrder, userID)

	for id, b := range s.bookings {
		if b.UserID != nil && *b.UserID == userID {
			b.UserID = nil
			s.bookings[id] = b
		}
	}
	return nil
}

func (s *Store) CountUsers(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users), nil
}

// Favorites

func (s *Store) AddFavorite(_ context.Context, userID, bikeID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.bikes[bikeID]; !ok {
		return domain.ErrBikeNotFound
	}
	for _, id := range s.favorites[userID] {
		if id == bikeID {
			return nil
		}
	}
	s.favorites[userID] = append(s.favorites[userID], bikeID)
	return nil
}

func (s *Store) RemoveFavorite(_ context.Context, userID, bikeID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.favorites[userID] = without(s.favorites[userID], bikeID)
	return nil
}

func (s *Store) GetFavoriteBikes(_ context.Context, userID uuid.UUID) ([]*domain.Bike, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res := make([]*domain.Bike, 0, len(s.favorites[userID]))
	for _, id := range s.favorites[userID] {
		if b, ok := s.bikes[id]; ok {
			res = append(res, copyBike(b))
		}
	}
	return res, nil
}

func without(ids []uuid.UUID, target uuid.UUID) []uuid.UUID {
	out := ids[:0]
	for _, id := range ids {
		if id != target {
			out = append(out, id)
		}
	}
	return out
}
