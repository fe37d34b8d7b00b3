package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/srgjo27/rail_ticket/internal/core/domain"
)

type ReservationRepository interface {
	CreateAttempt(ctx context.Context, attempt *domain.ReservationAttempt) error
	UpdateStatus(ctx context.Context, attemptID uuid.UUID, status domain.AttemptStatus, message string) error
	MarkPaid(ctx context.Context, attemptID uuid.UUID, paidAt time.Time) error
	ListByUsername(ctx context.Context, username string, limit int) ([]domain.ReservationAttempt, error)
	GetExpiredAttempts(ctx context.Context, now time.Time) ([]uuid.UUID, error)
	ExpireAttempt(ctx context.Context, attemptID uuid.UUID) error
}

// SessionLocker guards a provider account so that only one process drives it
// at a time. Release only removes the lock while owner still holds it.
type SessionLocker interface {
	Acquire(ctx context.Context, key, owner string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key, owner string) error
}
