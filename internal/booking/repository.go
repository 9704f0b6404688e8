// Package booking persists committed sell transactions so completed
// purchases survive a restart and stay queryable.
package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cx-tal-miterani/fare-workflow/internal/model"
)

var (
	ErrNotFound = errors.New("not found")
)

// Repository handles all database operations for bookings
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new repository
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// SaveBooking inserts a committed booking. A re-sell of the same record
// locator (modify flows) replaces the previous row.
func (r *Repository) SaveBooking(ctx context.Context, data *model.BookingData) error {
	id := data.BookingID
	if id == "" {
		id = uuid.New().String()
	}
	createdAt := data.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := r.pool.Exec(ctx, `
		INSERT INTO bookings (id, record_locator, total_amount, points_redeemed, points_cash_mode, seat_remapping_needed, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (record_locator) DO UPDATE SET
			total_amount = EXCLUDED.total_amount,
			points_redeemed = EXCLUDED.points_redeemed,
			points_cash_mode = EXCLUDED.points_cash_mode,
			seat_remapping_needed = EXCLUDED.seat_remapping_needed
	`, id, data.RecordLocator, data.TotalAmount, data.PointsRedeemed, string(data.Mode), data.SeatRemappingNeeded, createdAt)
	if err != nil {
		return fmt.Errorf("failed to save booking: %w", err)
	}
	return nil
}

// GetBooking returns a booking by record locator
func (r *Repository) GetBooking(ctx context.Context, recordLocator string) (*model.BookingData, error) {
	query := `
		SELECT id, record_locator, total_amount, points_redeemed, points_cash_mode, seat_remapping_needed, created_at
		FROM bookings
		WHERE record_locator = $1
	`

	var b model.BookingData
	var mode string
	err := r.pool.QueryRow(ctx, query, recordLocator).Scan(
		&b.BookingID, &b.RecordLocator, &b.TotalAmount, &b.PointsRedeemed,
		&mode, &b.SeatRemappingNeeded, &b.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	b.Mode = model.PointsCashMode(mode)
	return &b, nil
}

// ListRecentBookings returns the most recent bookings, newest first
func (r *Repository) ListRecentBookings(ctx context.Context, limit int) ([]model.BookingData, error) {
	query := `
		SELECT id, record_locator, total_amount, points_redeemed, points_cash_mode, seat_remapping_needed, created_at
		FROM bookings
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer rows.Close()

	var bookings []model.BookingData
	for rows.Next() {
		var b model.BookingData
		var mode string
		err := rows.Scan(
			&b.BookingID, &b.RecordLocator, &b.TotalAmount, &b.PointsRedeemed,
			&mode, &b.SeatRemappingNeeded, &b.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		b.Mode = model.PointsCashMode(mode)
		bookings = append(bookings, b)
	}

	return bookings, nil
}
