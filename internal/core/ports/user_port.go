package ports

import (
	"context"

	"github.com/sm8ta/webike_rental_service/internal/core/domain"

	"github.com/google/uuid"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *domain.User) (*domain.User, error)
	GetUserByID(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	GetAllUsers(ctx context.Context) ([]*domain.User, error)
	UpdateUser(ctx context.Context, user *domain.User) (*domain.User, error)
	DeleteUser(ctx context.Context, userID uuid.UUID) error
	CountUsers(ctx context.Context) (int, error)
}

type FavoriteRepository interface {
	// AddFavorite is a no-op when the pair already exists.
	AddFavorite(ctx context.Context, userID, bikeID uuid.UUID) error
	RemoveFavorite(ctx context.Context, userID, bikeID uuid.UUID) error
	GetFavoriteBikes(ctx context.Context, userID uuid.UUID) ([]*domain.Bike, error)
}
