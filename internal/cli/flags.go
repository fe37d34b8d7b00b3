package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/srgjo27/rail_ticket/internal/core/domain"
)

// tripFlags are shared by search and reserve.
type tripFlags struct {
	username  string
	password  string
	from      string
	to        string
	date      string
	time      string
	trainType string
	seat      string
	adult     int
	child     int
	senior    int
}

func (f *tripFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVarP(&f.username, "username", "u", "", "provider account (default $RAIL_PROVIDER_USERNAME)")
	fs.StringVarP(&f.password, "password", "p", "", "provider password (default $RAIL_PROVIDER_PASSWORD)")
	fs.StringVarP(&f.from, "from", "f", "", "departure station")
	fs.StringVarP(&f.to, "to", "t", "", "arrival station")
	fs.StringVarP(&f.date, "date", "d", "", "departure date YYYY-MM-DD (default today)")
	fs.StringVar(&f.time, "time", "000000", "earliest departure time HHMMSS")
	fs.StringVar(&f.trainType, "train", string(domain.TrainKTX), "service: ktx or srt")
	fs.StringVar(&f.seat, "seat", "", "general_first, special_first, general_only or special_only")
	fs.IntVar(&f.adult, "adult", 1, "adult passengers")
	fs.IntVar(&f.child, "child", 0, "child passengers")
	fs.IntVar(&f.senior, "senior", 0, "senior passengers")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
}

func (f *tripFlags) credentials(a *app) (string, string, error) {
	username, password := f.username, f.password
	if username == "" {
		username = a.cfg.Provider.Username
	}
	if password == "" {
		password = a.cfg.Provider.Password
	}
	if username == "" || password == "" {
		return "", "", fmt.Errorf("%w: provider username and password are required", domain.ErrInvalidRequest)
	}
	return username, password, nil
}

func (f *tripFlags) request(now time.Time) (domain.ReservationRequest, error) {
	if f.adult < 0 || f.child < 0 || f.senior < 0 {
		return domain.ReservationRequest{}, fmt.Errorf("%w: passenger counts must not be negative", domain.ErrInvalidRequest)
	}

	date, err := parseDate(f.date, now)
	if err != nil {
		return domain.ReservationRequest{}, err
	}

	trainType, err := domain.ParseTrainType(f.trainType)
	if err != nil {
		return domain.ReservationRequest{}, err
	}

	seat, err := domain.ParseSeatPreference(f.seat)
	if err != nil {
		return domain.ReservationRequest{}, err
	}

	req := domain.ReservationRequest{
		DepartureStation: f.from,
		ArrivalStation:   f.to,
		DepartureDate:    date,
		DepartureTime:    f.time,
		Passengers:       passengers(f.adult, f.child, f.senior),
		TrainType:        trainType,
		SeatPreference:   seat,
	}

	return req, req.Validate()
}

func parseDate(s string, now time.Time) (time.Time, error) {
	if s == "" {
		y, m, d := now.In(domain.KST).Date()
		return time.Date(y, m, d, 0, 0, 0, 0, domain.KST), nil
	}

	date, err := time.ParseInLocation("2006-01-02", s, domain.KST)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q must be YYYY-MM-DD", domain.ErrInvalidRequest, s)
	}
	return date, nil
}

func passengers(adult, child, senior int) []domain.Passenger {
	var out []domain.Passenger
	for _, p := range []domain.Passenger{
		{Type: domain.PassengerAdult, Count: adult},
		{Type: domain.PassengerChild, Count: child},
		{Type: domain.PassengerSenior, Count: senior},
	} {
		if p.Count > 0 {
			out = append(out, p)
		}
	}
	return out
}
