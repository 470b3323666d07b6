package postgres

import (
	"context"
	"database/sql"

	"github.com/sm8ta/webike_rental_service/internal/core/domain"

	"github.com/google/uuid"
)

type FavoriteRepository struct {
	db *sql.DB
}

func NewFavoriteRepository(db *sql.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

func (r *FavoriteRepository) AddFavorite(ctx context.Context, userID, bikeID uuid.UUID) error {
	query := `INSERT INTO user_favorites (user_id, bike_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, bike_id) DO NOTHING`

	if _, err := r.db.ExecContext(ctx, query, userID, bikeID); err != nil {
		return translate(err, domain.ErrBikeNotFound)
	}
	return nil
}

func (r *FavoriteRepository) RemoveFavorite(ctx context.Context, userID, bikeID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM user_favorites WHERE user_id = $1 AND bike_id = $2`, userID, bikeID)
	return err
}

func (r *FavoriteRepository) GetFavoriteBikes(ctx context.Context, userID uuid.UUID) ([]*domain.Bike, error) {
	query := `SELECT b.bike_id, b.external_id, b.name, b.size, b.type, b.price, b.images, b.available, b.created_at, b.updated_at
		FROM user_favorites f
		JOIN bikes b ON b.bike_id = f.bike_id
		WHERE f.user_id = $1
		ORDER BY f.created_at`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bikes := []*domain.Bike{}
	for rows.Next() {
		bike, err := scanBike(rows)
		if err != nil {
			return nil, err
		}
		bikes = append(bikes, bike)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return bikes, nil
}
