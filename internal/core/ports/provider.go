package ports

import (
	"context"
	"time"

	"github.com/srgjo27/rail_ticket/internal/core/domain"
)

// ReserveOption is the provider's vocabulary for seat class policy.
type ReserveOption string

const (
	OptionGeneralFirst ReserveOption = "GENERAL_FIRST"
	OptionSpecialFirst ReserveOption = "SPECIAL_FIRST"
	OptionGeneralOnly  ReserveOption = "GENERAL_ONLY"
	OptionSpecialOnly  ReserveOption = "SPECIAL_ONLY"
)

// TrainQuery carries search parameters verbatim to the provider.
// Date is YYYYMMDD and Time is HHMMSS.
type TrainQuery struct {
	Departure      string
	Arrival        string
	Date           string
	Time           string
	Passengers     []domain.Passenger
	IncludeSoldOut bool
}

// ProviderTrain is a raw train record as the provider returns it.
type ProviderTrain struct {
	TrainNo              string
	TrainType            string
	DepDate              string
	DepTime              string
	ArrDate              string
	ArrTime              string
	AdultCharge          string
	SeatCount            int
	GeneralSeatAvailable bool
	SpecialSeatAvailable bool
}

func (t ProviderTrain) HasSeat() bool {
	return t.GeneralSeatAvailable || t.SpecialSeatAvailable
}

// ProviderReservation is a raw reservation record as the provider returns it.
type ProviderReservation struct {
	ID        string
	TrainNo   string
	DepDate   string
	DepTime   string
	SeatCount int
	Price     int
	BuyLimit  time.Time
	Paid      bool
}

// ProviderSession is one stateful, authenticated conversation with the booking
// provider. Implementations are not expected to be safe for concurrent use.
type ProviderSession interface {
	Login(ctx context.Context, username, password string) (bool, error)
	Logout(ctx context.Context) error
	SearchTrain(ctx context.Context, query TrainQuery) ([]ProviderTrain, error)
	Reserve(ctx context.Context, train ProviderTrain, passengers []domain.Passenger, option ReserveOption) (ProviderReservation, error)
	Reservations(ctx context.Context) ([]ProviderReservation, error)
	Pay(ctx context.Context, reservation ProviderReservation, card domain.CreditCard) (bool, error)
}

// ProviderError is returned by a ProviderSession when the provider answered
// but refused the request. Transport failures are returned as plain errors.
type ProviderError struct {
	Code    string
	Message string
}

func (e *ProviderError) Error() string {
	if e.Message == "" {
		return e.Code
	}
	return e.Message
}
