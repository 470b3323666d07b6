package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sm8ta/webike_rental_service/internal/core/domain"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const bikeColumns = `bike_id, external_id, name, size, type, price, images, available, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBike(row rowScanner) (*domain.Bike, error) {
	bike := &domain.Bike{}
	var images pq.StringArray
	err := row.Scan(
		&bike.BikeID,
		&bike.ExternalID,
		&bike.Name,
		&bike.Size,
		&bike.Type,
		&bike.Price,
		&images,
		&bike.Available,
		&bike.CreatedAt,
		&bike.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	bike.Images = []string(images)
	if bike.Images == nil {
		bike.Images = []string{}
	}
	return bike, nil
}

type BikeRepository struct {
	db *sql.DB
}

func NewBikeRepository(db *sql.DB) *BikeRepository {
	return &BikeRepository{
		db,
	}
}

func (r *BikeRepository) CreateBike(ctx context.Context, bike *domain.Bike) (*domain.Bike, error) {
	query := `INSERT INTO bikes (bike_id, external_id, name, size, type, price, images, available)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
    RETURNING ` + bikeColumns

	created, err := scanBike(r.db.QueryRowContext(ctx, query,
		bike.BikeID,
		bike.ExternalID,
		bike.Name,
		bike.Size,
		bike.Type,
		bike.Price,
		pq.Array(bike.Images),
		bike.Available,
	))
	if err != nil {
		return nil, translate(err, domain.ErrBikeNotFound)
	}
	return created, nil
}

func (r *BikeRepository) GetBikeByID(ctx context.Context, bikeID uuid.UUID) (*domain.Bike, error) {
	query := `SELECT ` + bikeColumns + ` FROM bikes WHERE bike_id = $1`

	bike, err := scanBike(r.db.QueryRowContext(ctx, query, bikeID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrBikeNotFound
	}
	if err != nil {
		return nil, err
	}

	return bike, nil
}

func (r *BikeRepository) GetAllBikes(ctx context.Context) ([]*domain.Bike, error) {
	query := `SELECT ` + bikeColumns + ` FROM bikes ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, query)
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

func (r *BikeRepository) DeleteBike(ctx context.Context, bikeID uuid.UUID) error {
	query := `DELETE FROM bikes WHERE bike_id = $1`

	result, err := r.db.ExecContext(ctx, query, bikeID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return domain.ErrBikeNotFound
	}

	return nil
}

// UpdateBike writes the full record. Partial edits are merged by the service.
func (r *BikeRepository) UpdateBike(ctx context.Context, bike *domain.Bike) (*domain.Bike, error) {
	query := `UPDATE bikes
		SET
			external_id = $1,
			name = $2,
			size = $3,
			type = $4,
			price = $5,
			images = $6,
			available = $7,
			updated_at = CURRENT_TIMESTAMP
		WHERE bike_id = $8
		RETURNING ` + bikeColumns

	updated, err := scanBike(r.db.QueryRowContext(ctx, query,
		bike.ExternalID,
		bike.Name,
		bike.Size,
		bike.Type,
		bike.Price,
		pq.Array(bike.Images),
		bike.Available,
		bike.BikeID,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrBikeNotFound
		}
		return nil, fmt.Errorf("error updating bike: %w", translate(err, domain.ErrBikeNotFound))
	}

	return updated, nil
}

func (r *BikeRepository) CountBikes(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM bikes`).Scan(&n)
	return n, err
}
