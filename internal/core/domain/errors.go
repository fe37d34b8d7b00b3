package domain

import "errors"

var (
	ErrInvalidRequest    = errors.New("invalid reservation request")
	ErrLoginFailed       = errors.New("provider login failed")
	ErrTrainNotFound     = errors.New("train not found")
	ErrReservationFailed = errors.New("reservation failed")
	ErrSessionBusy       = errors.New("session is busy")
	ErrAttemptNotFound   = errors.New("reservation attempt not found")
)

// FailureKind classifies an unsuccessful ReservationResult. Callers that only
// look at Message keep working; Kind lets them branch without string matching.
type FailureKind string

const (
	KindNone             FailureKind = ""
	KindNotAuthenticated FailureKind = "not_authenticated"
	KindNotFound         FailureKind = "not_found"
	KindProviderFault    FailureKind = "provider_fault"
	KindRejected         FailureKind = "rejected"
)

const (
	MsgSuccess             = "Success"
	MsgNotLoggedIn         = "Not logged in"
	MsgTrainNotFound       = "Train not found"
	MsgReservationNotFound = "Reservation not found"
	MsgReservationFailed   = "Reservation failed"
	MsgPaymentCompleted    = "Payment completed"
	MsgPaymentRejected     = "Payment rejected"
)
