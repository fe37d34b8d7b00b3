package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/srgjo27/rail_ticket/internal/core/domain"
)

type BookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) CreateAttempt(ctx context.Context, a *domain.ReservationAttempt) error {
	query := `
	INSERT INTO reservation_attempts (
		id, username, train_type, train_number, departure_station, arrival_station,
		departure_date, departure_time, passenger_count, seat_preference,
		reservation_number, status, message, created_at, payment_deadline
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	var deadline *time.Time
	if !a.PaymentDeadline.IsZero() {
		deadline = &a.PaymentDeadline
	}

	_, err := r.db.ExecContext(ctx, query,
		a.ID,
		a.Username,
		a.TrainType,
		a.TrainNumber,
		a.DepartureStation,
		a.ArrivalStation,
		a.DepartureDate,
		a.DepartureTime,
		a.PassengerCount,
		a.SeatPreference,
		a.ReservationNumber,
		a.Status,
		a.Message,
		a.CreatedAt,
		deadline,
	)
	if err != nil {
		return fmt.Errorf("failed to insert reservation attempt: %w", err)
	}

	return nil
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, attemptID uuid.UUID, status domain.AttemptStatus, message string) error {
	query := `
	UPDATE reservation_attempts
	SET status = $1, message = $2
	WHERE id = $3
	`

	return r.execOne(ctx, query, status, message, attemptID)
}

func (r *BookingRepository) MarkPaid(ctx context.Context, attemptID uuid.UUID, paidAt time.Time) error {
	query := `
	UPDATE reservation_attempts
	SET status = $1, paid_at = $2, message = $3
	WHERE id = $4
	`

	return r.execOne(ctx, query, domain.AttemptPaid, paidAt, domain.MsgPaymentCompleted, attemptID)
}

func (r *BookingRepository) ListByUsername(ctx context.Context, username string, limit int) ([]domain.ReservationAttempt, error) {
	query := `
	SELECT id, username, train_type, train_number, departure_station, arrival_station,
		departure_date, departure_time, passenger_count, seat_preference,
		reservation_number, status, message, created_at, payment_deadline, paid_at
	FROM reservation_attempts
	WHERE username = $1
	ORDER BY created_at DESC
	LIMIT $2
	`

	rows, err := r.db.QueryContext(ctx, query, username, limit)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var attempts []domain.ReservationAttempt
	for rows.Next() {
		var a domain.ReservationAttempt
		var deadline sql.NullTime
		var paidAt sql.NullTime

		if err := rows.Scan(
			&a.ID,
			&a.Username,
			&a.TrainType,
			&a.TrainNumber,
			&a.DepartureStation,
			&a.ArrivalStation,
			&a.DepartureDate,
			&a.DepartureTime,
			&a.PassengerCount,
			&a.SeatPreference,
			&a.ReservationNumber,
			&a.Status,
			&a.Message,
			&a.CreatedAt,
			&deadline,
			&paidAt,
		); err != nil {
			return nil, err
		}

		if deadline.Valid {
			a.PaymentDeadline = deadline.Time
		}

		if paidAt.Valid {
			t := paidAt.Time
			a.PaidAt = &t
		}

		attempts = append(attempts, a)
	}

	return attempts, rows.Err()
}

func (r *BookingRepository) GetExpiredAttempts(ctx context.Context, now time.Time) ([]uuid.UUID, error) {
	query := `
	SELECT id FROM reservation_attempts
	WHERE status = 'RESERVED' AND payment_deadline < $1
	LIMIT 100
	`

	rows, err := r.db.QueryContext(ctx, query, now)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}

		ids = append(ids, id)
	}

	return ids, rows.Err()
}

// ExpireAttempt only touches attempts that are still unpaid, so a payment
// recorded between listing and expiring wins.
func (r *BookingRepository) ExpireAttempt(ctx context.Context, attemptID uuid.UUID) error {
	query := `
	UPDATE reservation_attempts
	SET status = 'EXPIRED', message = 'Payment deadline passed'
	WHERE id = $1 AND status = 'RESERVED'
	`

	return r.execOne(ctx, query, attemptID)
}

func (r *BookingRepository) execOne(ctx context.Context, query string, args ...any) error {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return domain.ErrAttemptNotFound
	}

	return nil
}
