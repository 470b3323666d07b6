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

const bookingColumns = `booking_id, user_id, bike_id, start_date, end_date, status, created_at, updated_at`

func scanBooking(row rowScanner) (*domain.Booking, error) {
	booking := &domain.Booking{}
	var userID, bikeID uuid.NullUUID
	err := row.Scan(
		&booking.BookingID,
		&userID,
		&bikeID,
		&booking.StartDate,
		&booking.EndDate,
		&booking.Status,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if userID.Valid {
		booking.UserID = &userID.UUID
	}
	if bikeID.Valid {
		booking.BikeID = &bikeID.UUID
	}
	return booking, nil
}

type BookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) CreateBooking(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	query := `INSERT INTO bookings (booking_id, user_id, bike_id, start_date, end_date, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + bookingColumns

	created, err := scanBooking(r.db.QueryRowContext(ctx, query,
		booking.BookingID,
		booking.UserID,
		booking.BikeID,
		booking.StartDate,
		booking.EndDate,
		booking.Status,
	))
	if err != nil {
		return nil, translate(err, domain.ErrBikeNotFound)
	}
	return created, nil
}

func (r *BookingRepository) GetBookingByID(ctx context.Context, bookingID uuid.UUID) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE booking_id = $1`

	booking, err := scanBooking(r.db.QueryRowContext(ctx, query, bookingID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return booking, nil
}

func (r *BookingRepository) GetBookingsByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE user_id = $1 ORDER BY created_at`

	bookings, err := r.list(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	if err := r.attachBikes(ctx, bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *BookingRepository) GetAllBookings(ctx context.Context) ([]*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings ORDER BY created_at DESC`

	bookings, err := r.list(ctx, query)
	if err != nil {
		return nil, err
	}
	if err := r.attachBikes(ctx, bookings); err != nil {
		return nil, err
	}
	if err := r.attachUsers(ctx, bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// TransitionStatus runs both writes in one transaction.
func (r *BookingRepository) TransitionStatus(ctx context.Context, bookingID uuid.UUID, status domain.BookingStatus, setAvailable *bool) (*domain.Booking, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	query := `UPDATE bookings
		SET status = $1, updated_at = CURRENT_TIMESTAMP
		WHERE booking_id = $2
		RETURNING ` + bookingColumns

	booking, err := scanBooking(tx.QueryRowContext(ctx, query, status, bookingID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, translate(err, domain.ErrBookingNotFound)
	}

	if setAvailable != nil && booking.BikeID != nil {
		_, err := tx.ExecContext(ctx,
			`UPDATE bikes SET available = $1, updated_at = CURRENT_TIMESTAMP WHERE bike_id = $2`,
			*setAvailable, *booking.BikeID)
		if err != nil {
			return nil, fmt.Errorf("failed to update bike availability: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return booking, nil
}

func (r *BookingRepository) CountBookings(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM bookings`).Scan(&n)
	return n, err
}

func (r *BookingRepository) CountBookingsByStatus(ctx context.Context, status domain.BookingStatus) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM bookings WHERE status = $1`, status).Scan(&n)
	return n, err
}

func (r *BookingRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Booking, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := []*domain.Booking{}
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, booking)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *BookingRepository) attachBikes(ctx context.Context, bookings []*domain.Booking) error {
	ids := make([]string, 0, len(bookings))
	for _, b := range bookings {
		if b.BikeID != nil {
			ids = append(ids, b.BikeID.String())
		}
	}
	if len(ids) == 0 {
		return nil
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+bikeColumns+` FROM bikes WHERE bike_id = ANY($1::uuid[])`, pq.Array(ids))
	if err != nil {
		return err
	}
	defer rows.Close()

	byID := make(map[uuid.UUID]*domain.Bike, len(ids))
	for rows.Next() {
		bike, err := scanBike(rows)
		if err != nil {
			return err
		}
		byID[bike.BikeID] = bike
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for _, b := range bookings {
		if b.BikeID != nil {
			b.Bike = byID[*b.BikeID]
		}
	}
	return nil
}

func (r *BookingRepository) attachUsers(ctx context.Context, bookings []*domain.Booking) error {
	ids := make([]string, 0, len(bookings))
	for _, b := range bookings {
		if b.UserID != nil {
			ids = append(ids, b.UserID.String())
		}
	}
	if len(ids) == 0 {
		return nil
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT user_id, name, email FROM users WHERE user_id = ANY($1::uuid[])`, pq.Array(ids))
	if err != nil {
		return err
	}
	defer rows.Close()

	byID := make(map[uuid.UUID]*domain.UserSummary, len(ids))
	for rows.Next() {
		u := &domain.UserSummary{}
		if err := rows.Scan(&u.UserID, &u.Name, &u.Email); err != nil {
			return err
		}
		byID[u.UserID] = u
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for _, b := range bookings {
		if b.UserID != nil {
			b.User = byID[*b.UserID]
		}
	}
	return nil
}
