package gateway

import (
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/srgjo27/rail_ticket/internal/core/domain"
	"github.com/srgjo27/rail_ticket/internal/core/ports"
)

type resultDTO struct {
	Success bool   `json:"success"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

type loginDTO struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type passengerDTO struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

type searchDTO struct {
	Departure      string         `json:"dep"`
	Arrival        string         `json:"arr"`
	Date           string         `json:"date"`
	Time           string         `json:"time"`
	Passengers     []passengerDTO `json:"passengers"`
	IncludeNoSeats bool           `json:"include_no_seats"`
}

type trainDTO struct {
	TrainNo      string `json:"train_no"`
	TrainType    string `json:"train_type"`
	DepDate      string `json:"dep_date"`
	DepTime      string `json:"dep_time"`
	ArrDate      string `json:"arr_date"`
	ArrTime      string `json:"arr_time"`
	AdultCharge  string `json:"adult_charge"`
	SeatCount    int    `json:"seat_count"`
	GeneralSeats bool   `json:"general_seat_available"`
	SpecialSeats bool   `json:"special_seat_available"`
}

type reserveDTO struct {
	Train      trainDTO       `json:"train"`
	Passengers []passengerDTO `json:"passengers"`
	Option     string         `json:"option"`
}

type reservationDTO struct {
	ID        string `json:"rsv_id"`
	TrainNo   string `json:"train_no"`
	DepDate   string `json:"dep_date"`
	DepTime   string `json:"dep_time"`
	SeatCount int    `json:"seat_count"`
	Price     int    `json:"price"`
	BuyLimit  string `json:"buy_limit"`
	Paid      bool   `json:"paid"`
}

type cardDTO struct {
	Number           string `json:"number"`
	Password         string `json:"password"`
	ValidationNumber string `json:"validation_number"`
	Expire           string `json:"expire"`
	IsCorporate      bool   `json:"is_corporate"`
}

func toPassengerDTOs(passengers []domain.Passenger) []passengerDTO {
	out := make([]passengerDTO, 0, len(passengers))
	for _, p := range passengers {
		out = append(out, passengerDTO{Type: string(p.Type), Count: p.Count})
	}
	return out
}

func (t trainDTO) toPort() ports.ProviderTrain {
	return ports.ProviderTrain{
		TrainNo:              t.TrainNo,
		TrainType:            t.TrainType,
		DepDate:              t.DepDate,
		DepTime:              t.DepTime,
		ArrDate:              t.ArrDate,
		ArrTime:              t.ArrTime,
		AdultCharge:          t.AdultCharge,
		SeatCount:            t.SeatCount,
		GeneralSeatAvailable: t.GeneralSeats,
		SpecialSeatAvailable: t.SpecialSeats,
	}
}

func fromPortTrain(t ports.ProviderTrain) trainDTO {
	return trainDTO{
		TrainNo:      t.TrainNo,
		TrainType:    t.TrainType,
		DepDate:      t.DepDate,
		DepTime:      t.DepTime,
		ArrDate:      t.ArrDate,
		ArrTime:      t.ArrTime,
		AdultCharge:  t.AdultCharge,
		SeatCount:    t.SeatCount,
		GeneralSeats: t.GeneralSeatAvailable,
		SpecialSeats: t.SpecialSeatAvailable,
	}
}

func (r reservationDTO) toPort() ports.ProviderReservation {
	return ports.ProviderReservation{
		ID:        r.ID,
		TrainNo:   r.TrainNo,
		DepDate:   r.DepDate,
		DepTime:   r.DepTime,
		SeatCount: r.SeatCount,
		Price:     r.Price,
		BuyLimit:  parseBuyLimit(r.BuyLimit),
		Paid:      r.Paid,
	}
}

var buyLimitLayouts = []string{
	time.RFC3339,
	domain.DateLayout + domain.TimeLayout,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// parseBuyLimit accepts the layouts the gateway has been seen to send.
// Anything else yields the zero time rather than failing the whole listing.
func parseBuyLimit(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}

	for _, layout := range buyLimitLayouts {
		if t, err := time.ParseInLocation(layout, s, domain.KST); err == nil {
			return t
		}
	}

	logrus.WithField("buy_limit", s).Debug("unrecognised buy limit")
	return time.Time{}
}
