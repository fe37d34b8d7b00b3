package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/srgjo27/rail_ticket/internal/adapter/repository/postgres"
	"github.com/srgjo27/rail_ticket/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepo(t *testing.T) (*postgres.BookingRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return postgres.NewBookingRepository(db), mock
}

func TestCreateAttempt(t *testing.T) {
	repo, mock := newRepo(t)
	now := time.Date(2025, 1, 14, 9, 0, 0, 0, time.UTC)

	attempt := &domain.ReservationAttempt{
		ID:                uuid.New(),
		Username:          "test_user",
		TrainType:         domain.TrainKTX,
		TrainNumber:       "001",
		DepartureStation:  "서울",
		ArrivalStation:    "부산",
		DepartureDate:     "20250115",
		DepartureTime:     "100000",
		PassengerCount:    3,
		SeatPreference:    domain.SeatSpecialFirst,
		ReservationNumber: "R123456",
		Status:            domain.AttemptReserved,
		Message:           "Success",
		CreatedAt:         now,
		PaymentDeadline:   now.Add(10 * time.Minute),
	}

	mock.ExpectExec("INSERT INTO reservation_attempts").
		WithArgs(attempt.ID, "test_user", "ktx", "001", "서울", "부산", "20250115", "100000", 3,
			"special_first", "R123456", "RESERVED", "Success", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, repo.CreateAttempt(context.Background(), attempt))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateAttempt_Error(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectExec("INSERT INTO reservation_attempts").WillReturnError(errors.New("duplicate key"))

	err := repo.CreateAttempt(context.Background(), &domain.ReservationAttempt{ID: uuid.New(), Status: domain.AttemptFailed})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to insert reservation attempt")
}

func TestUpdateStatus(t *testing.T) {
	repo, mock := newRepo(t)
	id := uuid.New()

	mock.ExpectExec("UPDATE reservation_attempts").
		WithArgs("RESERVED", "Payment rejected", id).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.UpdateStatus(context.Background(), id, domain.AttemptReserved, "Payment rejected"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkPaid_NotFound(t *testing.T) {
	repo, mock := newRepo(t)
	id := uuid.New()

	mock.ExpectExec("UPDATE reservation_attempts").
		WithArgs("PAID", sqlmock.AnyArg(), "Payment completed", id).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.MarkPaid(context.Background(), id, time.Now())

	assert.ErrorIs(t, err, domain.ErrAttemptNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListByUsername(t *testing.T) {
	repo, mock := newRepo(t)
	id := uuid.New()
	created := time.Date(2025, 1, 14, 9, 0, 0, 0, time.UTC)
	paid := created.Add(2 * time.Minute)

	rows := sqlmock.NewRows([]string{
		"id", "username", "train_type", "train_number", "departure_station", "arrival_station",
		"departure_date", "departure_time", "passenger_count", "seat_preference",
		"reservation_number", "status", "message", "created_at", "payment_deadline", "paid_at",
	}).
		AddRow(id.String(), "test_user", "ktx", "001", "서울", "부산", "20250115", "100000", 3,
			"special_first", "R123456", "PAID", "Payment completed", created, created.Add(10*time.Minute), paid).
		AddRow(uuid.New().String(), "test_user", "srt", "305", "수서", "부산", "20250116", "080000", 1,
			"", "", "FAILED", "Train not found", created, nil, nil)

	mock.ExpectQuery("SELECT (.+) FROM reservation_attempts").
		WithArgs("test_user", 20).
		WillReturnRows(rows)

	attempts, err := repo.ListByUsername(context.Background(), "test_user", 20)

	require.NoError(t, err)
	require.Len(t, attempts, 2)

	assert.Equal(t, id, attempts[0].ID)
	assert.Equal(t, domain.TrainKTX, attempts[0].TrainType)
	assert.Equal(t, domain.AttemptPaid, attempts[0].Status)
	require.NotNil(t, attempts[0].PaidAt)
	assert.True(t, paid.Equal(*attempts[0].PaidAt))

	assert.Equal(t, domain.AttemptFailed, attempts[1].Status)
	assert.True(t, attempts[1].PaymentDeadline.IsZero())
	assert.Nil(t, attempts[1].PaidAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetExpiredAttempts(t *testing.T) {
	repo, mock := newRepo(t)
	a, b := uuid.New(), uuid.New()
	now := time.Now()

	mock.ExpectQuery("SELECT id FROM reservation_attempts").
		WithArgs(now).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(a.String()).AddRow(b.String()))

	ids, err := repo.GetExpiredAttempts(context.Background(), now)

	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{a, b}, ids)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExpireAttempt(t *testing.T) {
	repo, mock := newRepo(t)
	id := uuid.New()

	mock.ExpectExec("UPDATE reservation_attempts").
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE reservation_attempts").
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.ExpireAttempt(context.Background(), id))
	assert.ErrorIs(t, repo.ExpireAttempt(context.Background(), id), domain.ErrAttemptNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
