package services

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/srgjo27/rail_ticket/internal/core/domain"
	"github.com/srgjo27/rail_ticket/internal/core/ports"
)

// BookingSession wraps a single provider session and tracks whether it is
// authenticated. Provider failures never escape: every method returns a
// value covering both success and failure. A BookingSession is not safe for
// concurrent use.
type BookingSession struct {
	provider ports.ProviderSession
	loggedIn bool
}

func NewBookingSession(provider ports.ProviderSession) *BookingSession {
	return &BookingSession{provider: provider}
}

func (s *BookingSession) Login(ctx context.Context, username, password string) bool {
	ok, err := s.provider.Login(ctx, username, password)
	if err != nil {
		logrus.WithError(err).WithField("username", username).Warn("provider login failed")
		s.loggedIn = false
		return false
	}

	s.loggedIn = ok
	if !ok {
		logrus.WithField("username", username).Warn("provider rejected credentials")
	}

	return ok
}

func (s *BookingSession) Logout(ctx context.Context) bool {
	if err := s.provider.Logout(ctx); err != nil {
		logrus.WithError(err).Debug("provider logout returned an error")
	}

	s.loggedIn = false
	return true
}

func (s *BookingSession) IsLoggedIn() bool {
	return s.loggedIn
}

func (s *BookingSession) SearchTrains(ctx context.Context, req domain.ReservationRequest) []domain.TrainSchedule {
	if !s.loggedIn {
		return []domain.TrainSchedule{}
	}

	trains, err := s.queryTrains(ctx, req)
	if err != nil {
		logrus.WithError(err).WithFields(searchFields(req)).Warn("train search failed")
		return []domain.TrainSchedule{}
	}

	schedules := make([]domain.TrainSchedule, 0, len(trains))
	for _, t := range trains {
		schedules = append(schedules, toSchedule(t, req.TrainType))
	}

	return schedules
}

func (s *BookingSession) ReserveTrain(ctx context.Context, schedule domain.TrainSchedule, req domain.ReservationRequest) domain.ReservationResult {
	if !s.loggedIn {
		return domain.Failure(domain.KindNotAuthenticated, domain.MsgNotLoggedIn)
	}

	// The schedule may be stale; look the train up again right before reserving.
	trains, err := s.queryTrains(ctx, req)
	if err != nil {
		logrus.WithError(err).WithFields(searchFields(req)).Warn("train re-query failed")
		return domain.Failure(domain.KindProviderFault, err.Error())
	}

	var target *ports.ProviderTrain
	for i := range trains {
		if trains[i].TrainNo == schedule.TrainNumber && trains[i].HasSeat() {
			target = &trains[i]
			break
		}
	}

	if target == nil {
		return domain.Failure(domain.KindNotFound, domain.MsgTrainNotFound)
	}

	option := ToProviderOption(req.SeatPreference)

	rsv, err := s.provider.Reserve(ctx, *target, req.Passengers, option)
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"train_no": target.TrainNo,
			"option":   option,
		}).Warn("provider reserve failed")
		return domain.Failure(failureKind(err), err.Error())
	}

	if rsv.ID == "" {
		return domain.Failure(domain.KindRejected, domain.MsgReservationFailed)
	}

	logrus.WithFields(logrus.Fields{
		"train_no":       target.TrainNo,
		"reservation_no": rsv.ID,
		"option":         option,
	}).Info("train reserved")

	return domain.ReservationResult{
		Success:           true,
		ReservationNumber: rsv.ID,
		Message:           domain.MsgSuccess,
	}
}

// PaymentReservation pays for a reservation made earlier in this session.
// A failed payment keeps the reservation number of the input result.
func (s *BookingSession) PaymentReservation(ctx context.Context, reservation domain.ReservationResult, card domain.CreditCard) domain.ReservationResult {
	failed := func(kind domain.FailureKind, message string) domain.ReservationResult {
		return domain.ReservationResult{
			Success:           false,
			ReservationNumber: reservation.ReservationNumber,
			Message:           message,
			Kind:              kind,
		}
	}

	if !s.loggedIn {
		return failed(domain.KindNotAuthenticated, domain.MsgNotLoggedIn)
	}

	records, err := s.provider.Reservations(ctx)
	if err != nil {
		logrus.WithError(err).Warn("listing provider reservations failed")
		return failed(domain.KindProviderFault, err.Error())
	}

	var target *ports.ProviderReservation
	for i := range records {
		if records[i].ID == reservation.ReservationNumber {
			target = &records[i]
			break
		}
	}

	if target == nil {
		return failed(domain.KindNotFound, domain.MsgReservationNotFound)
	}

	paid, err := s.provider.Pay(ctx, *target, card)
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"reservation_no": target.ID,
			"card":           card.Masked(),
		}).Warn("provider payment failed")
		return failed(failureKind(err), err.Error())
	}

	if !paid {
		return failed(domain.KindRejected, domain.MsgPaymentRejected)
	}

	logrus.WithField("reservation_no", target.ID).Info("reservation paid")

	return domain.ReservationResult{
		Success:           true,
		ReservationNumber: target.ID,
		Message:           domain.MsgPaymentCompleted,
	}
}

func (s *BookingSession) queryTrains(ctx context.Context, req domain.ReservationRequest) ([]ports.ProviderTrain, error) {
	return s.provider.SearchTrain(ctx, ports.TrainQuery{
		Departure:      req.DepartureStation,
		Arrival:        req.ArrivalStation,
		Date:           req.ProviderDate(),
		Time:           req.DepartureTime,
		Passengers:     req.Passengers,
		IncludeSoldOut: true,
	})
}

// failureKind tells a provider refusal apart from a transport fault.
func failureKind(err error) domain.FailureKind {
	var pe *ports.ProviderError
	if errors.As(err, &pe) {
		return domain.KindRejected
	}
	return domain.KindProviderFault
}

func toSchedule(t ports.ProviderTrain, fallback domain.TrainType) domain.TrainSchedule {
	return domain.TrainSchedule{
		TrainNumber:   t.TrainNo,
		DepartureDate: t.DepDate,
		DepartureTime: t.DepTime,
		ArrivalDate:   t.ArrDate,
		ArrivalTime:   t.ArrTime,
		TrainType:     parseTrainTag(t.TrainType, fallback),
		AdultFare:     parseFare(t.AdultCharge),
		SeatCount:     t.SeatCount,
	}
}

// parseTrainTag reads provider tags such as "KTX", "KTX-산천" or "SRT".
func parseTrainTag(tag string, fallback domain.TrainType) domain.TrainType {
	upper := strings.ToUpper(strings.TrimSpace(tag))
	switch {
	case strings.HasPrefix(upper, "KTX"):
		return domain.TrainKTX
	case strings.HasPrefix(upper, "SRT"):
		return domain.TrainSRT
	}
	return fallback
}

func parseFare(charge string) int {
	fare, err := strconv.Atoi(strings.ReplaceAll(strings.TrimSpace(charge), ",", ""))
	if err != nil {
		return 0
	}
	return fare
}

func searchFields(req domain.ReservationRequest) logrus.Fields {
	return logrus.Fields{
		"departure": req.DepartureStation,
		"arrival":   req.ArrivalStation,
		"date":      req.ProviderDate(),
		"time":      req.DepartureTime,
	}
}
