package domain

import (
	"time"

	"github.com/google/uuid"
)

type AttemptStatus string

const (
	AttemptReserved AttemptStatus = "RESERVED"
	AttemptPaid     AttemptStatus = "PAID"
	AttemptFailed   AttemptStatus = "FAILED"
	AttemptExpired  AttemptStatus = "EXPIRED"
)

// ReservationAttempt is the ledger entry written for every reservation the
// service tries to make on behalf of an account.
type ReservationAttempt struct {
	ID                uuid.UUID
	Username          string
	TrainType         TrainType
	TrainNumber       string
	DepartureStation  string
	ArrivalStation    string
	DepartureDate     string
	DepartureTime     string
	PassengerCount    int
	SeatPreference    SeatPreference
	ReservationNumber string
	Status            AttemptStatus
	Message           string
	CreatedAt         time.Time
	PaymentDeadline   time.Time
	PaidAt            *time.Time
}

func (a *ReservationAttempt) IsUnpaid() bool {
	return a.Status == AttemptReserved
}
