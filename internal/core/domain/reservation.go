package domain

import (
	"fmt"
	"strings"
	"time"
)

const (
	DateLayout = "20060102"
	TimeLayout = "150405"
)

// KST is the zone every provider date and time is expressed in.
var KST = time.FixedZone("KST", 9*60*60)

type Passenger struct {
	Type  PassengerType
	Count int
}

type ReservationRequest struct {
	DepartureStation string
	ArrivalStation   string
	DepartureDate    time.Time
	DepartureTime    string // HHMMSS
	Passengers       []Passenger
	TrainType        TrainType
	SeatPreference   SeatPreference
}

func (r ReservationRequest) TotalPassengers() int {
	total := 0
	for _, p := range r.Passengers {
		total += p.Count
	}
	return total
}

// ProviderDate is the departure date as the provider's 8-digit query value.
func (r ReservationRequest) ProviderDate() string {
	return r.DepartureDate.Format(DateLayout)
}

func (r ReservationRequest) Validate() error {
	if strings.TrimSpace(r.DepartureStation) == "" || strings.TrimSpace(r.ArrivalStation) == "" {
		return fmt.Errorf("%w: departure and arrival stations are required", ErrInvalidRequest)
	}
	if r.DepartureDate.IsZero() {
		return fmt.Errorf("%w: departure date is required", ErrInvalidRequest)
	}
	if len(r.DepartureTime) != 6 {
		return fmt.Errorf("%w: departure time must be HHMMSS", ErrInvalidRequest)
	}
	if _, err := time.Parse(TimeLayout, r.DepartureTime); err != nil {
		return fmt.Errorf("%w: departure time must be HHMMSS", ErrInvalidRequest)
	}
	if len(r.Passengers) == 0 {
		return fmt.Errorf("%w: at least one passenger is required", ErrInvalidRequest)
	}
	for _, p := range r.Passengers {
		if !p.Type.Valid() {
			return fmt.Errorf("%w: unknown passenger type %q", ErrInvalidRequest, p.Type)
		}
		if p.Count < 1 {
			return fmt.Errorf("%w: passenger count for %s must be at least 1", ErrInvalidRequest, p.Type)
		}
	}
	if !r.TrainType.Valid() {
		return fmt.Errorf("%w: unknown train type %q", ErrInvalidRequest, r.TrainType)
	}
	if r.SeatPreference != "" && !r.SeatPreference.Valid() {
		return fmt.Errorf("%w: unknown seat preference %q", ErrInvalidRequest, r.SeatPreference)
	}
	return nil
}

// TrainSchedule is one normalized search result.
type TrainSchedule struct {
	TrainNumber   string
	DepartureDate string
	DepartureTime string
	ArrivalDate   string
	ArrivalTime   string
	TrainType     TrainType
	AdultFare     int
	SeatCount     int
}

func (s TrainSchedule) Departure() (time.Time, error) {
	return time.ParseInLocation(DateLayout+TimeLayout, s.DepartureDate+s.DepartureTime, KST)
}

func (s TrainSchedule) Arrival() (time.Time, error) {
	return time.ParseInLocation(DateLayout+TimeLayout, s.ArrivalDate+s.ArrivalTime, KST)
}

type ReservationResult struct {
	Success           bool
	ReservationNumber string
	Message           string
	Kind              FailureKind
}

func Failure(kind FailureKind, message string) ReservationResult {
	return ReservationResult{Success: false, Message: message, Kind: kind}
}

type CreditCard struct {
	Number           string
	Password         string // first two digits of the card PIN
	ValidationNumber string // birth date (YYMMDD) or business registration number
	Expire           string // YYMM
	IsCorporate      bool
}

func (c CreditCard) Masked() string {
	n := len(c.Number)
	if n <= 4 {
		return strings.Repeat("*", n)
	}
	return strings.Repeat("*", n-4) + c.Number[n-4:]
}

func (c CreditCard) String() string {
	return fmt.Sprintf("card(%s, corporate=%t)", c.Masked(), c.IsCorporate)
}
