package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/srgjo27/rail_ticket/internal/core/domain"
	"github.com/srgjo27/rail_ticket/internal/core/ports"
)

// SessionFactory opens a fresh, unauthenticated provider session for the
// given service.
type SessionFactory func(trainType domain.TrainType) (ports.ProviderSession, error)

const DefaultCleanupInterval = 30 * time.Second

type Options struct {
	PaymentWindow time.Duration
	LockTTL       time.Duration
}

type CreateReservationRequest struct {
	Username    string
	Password    string
	Request     domain.ReservationRequest
	TrainNumber string
	Card        *domain.CreditCard
}

type CreateReservationResponse struct {
	AttemptID         string    `json:"attempt_id"`
	TrainNumber       string    `json:"train_number"`
	DepartureDate     string    `json:"departure_date"`
	DepartureTime     string    `json:"departure_time"`
	ReservationNumber string    `json:"reservation_number"`
	Status            string    `json:"status"`
	Paid              bool      `json:"paid"`
	Message           string    `json:"message"`
	PaymentDeadline   time.Time `json:"payment_deadline"`
}

type BookingService struct {
	sessions    SessionFactory
	bookingRepo ports.ReservationRepository
	locker      ports.SessionLocker
	opts        Options
	now         func() time.Time
}

func NewBookingService(sessions SessionFactory, bookingRepo ports.ReservationRepository, locker ports.SessionLocker, opts Options) *BookingService {
	if opts.PaymentWindow <= 0 {
		opts.PaymentWindow = 10 * time.Minute
	}
	if opts.LockTTL <= 0 {
		opts.LockTTL = 2 * time.Minute
	}

	return &BookingService{
		sessions:    sessions,
		bookingRepo: bookingRepo,
		locker:      locker,
		opts:        opts,
		now:         time.Now,
	}
}

func LockKey(trainType domain.TrainType, username string) string {
	return fmt.Sprintf("rail:session:%s:%s", trainType, username)
}

func (s *BookingService) CreateReservation(ctx context.Context, req CreateReservationRequest) (*CreateReservationResponse, error) {
	if strings.TrimSpace(req.Username) == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: username and password are required", domain.ErrInvalidRequest)
	}

	if err := req.Request.Validate(); err != nil {
		return nil, err
	}

	attemptID := uuid.New()
	lockKey := LockKey(req.Request.TrainType, req.Username)

	owner := attemptID.String()
	acquired, err := s.locker.Acquire(ctx, lockKey, owner, s.opts.LockTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to lock session: %w", err)
	}

	if !acquired {
		return nil, domain.ErrSessionBusy
	}

	defer func() {
		if err := s.locker.Release(context.WithoutCancel(ctx), lockKey, owner); err != nil {
			logrus.WithError(err).WithField("key", lockKey).Warn("failed to release session lock")
		}
	}()

	provider, err := s.sessions(req.Request.TrainType)
	if err != nil {
		return nil, fmt.Errorf("failed to open provider session: %w", err)
	}

	session := NewBookingSession(provider)
	if !session.Login(ctx, req.Username, req.Password) {
		return nil, domain.ErrLoginFailed
	}

	defer session.Logout(context.WithoutCancel(ctx))

	schedules := session.SearchTrains(ctx, req.Request)

	schedule, ok := pickSchedule(schedules, req.TrainNumber)
	if !ok {
		return nil, domain.ErrTrainNotFound
	}

	log := logrus.WithFields(logrus.Fields{
		"attempt_id": attemptID,
		"username":   req.Username,
		"train_no":   schedule.TrainNumber,
	})

	attempt := &domain.ReservationAttempt{
		ID:               attemptID,
		Username:         req.Username,
		TrainType:        req.Request.TrainType,
		TrainNumber:      schedule.TrainNumber,
		DepartureStation: req.Request.DepartureStation,
		ArrivalStation:   req.Request.ArrivalStation,
		DepartureDate:    schedule.DepartureDate,
		DepartureTime:    schedule.DepartureTime,
		PassengerCount:   req.Request.TotalPassengers(),
		SeatPreference:   req.Request.SeatPreference,
		CreatedAt:        s.now(),
	}

	result := session.ReserveTrain(ctx, schedule, req.Request)
	if !result.Success {
		attempt.Status = domain.AttemptFailed
		attempt.Message = result.Message
		s.saveAttempt(ctx, log, attempt)

		if result.Kind == domain.KindNotFound {
			return nil, fmt.Errorf("%w: %s", domain.ErrTrainNotFound, result.Message)
		}

		return nil, fmt.Errorf("%w: %s", domain.ErrReservationFailed, result.Message)
	}

	attempt.Status = domain.AttemptReserved
	attempt.ReservationNumber = result.ReservationNumber
	attempt.Message = result.Message
	attempt.PaymentDeadline = attempt.CreatedAt.Add(s.opts.PaymentWindow)
	s.saveAttempt(ctx, log, attempt)

	resp := &CreateReservationResponse{
		AttemptID:         attemptID.String(),
		TrainNumber:       schedule.TrainNumber,
		DepartureDate:     schedule.DepartureDate,
		DepartureTime:     schedule.DepartureTime,
		ReservationNumber: result.ReservationNumber,
		Status:            string(domain.AttemptReserved),
		Message:           result.Message,
		PaymentDeadline:   attempt.PaymentDeadline,
	}

	if req.Card == nil {
		return resp, nil
	}

	payment := session.PaymentReservation(ctx, result, *req.Card)
	resp.Message = payment.Message

	if !payment.Success {
		log.WithField("reason", payment.Message).Warn("payment failed, reservation kept unpaid")
		if err := s.bookingRepo.UpdateStatus(ctx, attemptID, domain.AttemptReserved, payment.Message); err != nil {
			log.WithError(err).Error("failed to record payment failure")
		}
		return resp, nil
	}

	resp.Paid = true
	resp.Status = string(domain.AttemptPaid)

	if err := s.bookingRepo.MarkPaid(ctx, attemptID, s.now()); err != nil {
		log.WithError(err).Error("failed to mark attempt as paid")
	}

	return resp, nil
}

func (s *BookingService) ListReservations(ctx context.Context, username string, limit int) ([]domain.ReservationAttempt, error) {
	if strings.TrimSpace(username) == "" {
		return nil, fmt.Errorf("%w: username is required", domain.ErrInvalidRequest)
	}

	if limit <= 0 || limit > 100 {
		limit = 20
	}

	return s.bookingRepo.ListByUsername(ctx, username, limit)
}

// pickSchedule returns the requested train, or the first one with seats left,
// or the first one at all.
func pickSchedule(schedules []domain.TrainSchedule, trainNumber string) (domain.TrainSchedule, bool) {
	if len(schedules) == 0 {
		return domain.TrainSchedule{}, false
	}

	if trainNumber != "" {
		for _, sc := range schedules {
			if sc.TrainNumber == trainNumber {
				return sc, true
			}
		}
		return domain.TrainSchedule{}, false
	}

	for _, sc := range schedules {
		if sc.SeatCount > 0 {
			return sc, true
		}
	}

	return schedules[0], true
}

// saveAttempt never fails the caller: the provider already holds the outcome.
func (s *BookingService) saveAttempt(ctx context.Context, log *logrus.Entry, attempt *domain.ReservationAttempt) {
	if err := s.bookingRepo.CreateAttempt(ctx, attempt); err != nil {
		log.WithError(err).Error("failed to record reservation attempt")
	}
}

func (s *BookingService) RunBackgroundCleanup(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultCleanupInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logrus.WithField("interval", interval).Info("cleanup worker started")

	for {
		select {
		case <-ctx.Done():
			logrus.Info("cleanup worker stopped")
			return
		case <-ticker.C:
			s.processExpiredAttempts(ctx)
		}
	}
}

func (s *BookingService) processExpiredAttempts(ctx context.Context) {
	ids, err := s.bookingRepo.GetExpiredAttempts(ctx, s.now())
	if err != nil {
		logrus.WithError(err).Error("failed to fetch expired reservation attempts")
		return
	}

	if len(ids) == 0 {
		return
	}

	logrus.Infof("found %d unpaid reservations past their payment deadline", len(ids))

	for _, id := range ids {
		if err := s.bookingRepo.ExpireAttempt(ctx, id); err != nil {
			if errors.Is(err, domain.ErrAttemptNotFound) {
				continue
			}
			logrus.WithError(err).WithField("attempt_id", id).Error("failed to expire attempt")
		} else {
			logrus.WithField("attempt_id", id).Info("reservation attempt expired")
		}
	}
}
