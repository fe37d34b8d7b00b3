package domain

import (
	"fmt"
	"strings"
)

type PassengerType string

const (
	PassengerAdult  PassengerType = "adult"
	PassengerChild  PassengerType = "child"
	PassengerSenior PassengerType = "senior"
)

func (p PassengerType) Valid() bool {
	switch p {
	case PassengerAdult, PassengerChild, PassengerSenior:
		return true
	}
	return false
}

func (p PassengerType) String() string { return string(p) }

func ParsePassengerType(s string) (PassengerType, error) {
	p := PassengerType(strings.ToLower(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", fmt.Errorf("%w: unknown passenger type %q", ErrInvalidRequest, s)
	}
	return p, nil
}

// TrainType selects which provider service a session talks to.
type TrainType string

const (
	TrainKTX TrainType = "ktx"
	TrainSRT TrainType = "srt"
)

func (t TrainType) Valid() bool {
	return t == TrainKTX || t == TrainSRT
}

func (t TrainType) String() string { return string(t) }

func ParseTrainType(s string) (TrainType, error) {
	t := TrainType(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("%w: unknown train type %q", ErrInvalidRequest, s)
	}
	return t, nil
}

// SeatPreference orders or restricts the seat classes a reservation may use.
// The zero value means no preference was given.
type SeatPreference string

const (
	SeatGeneralFirst SeatPreference = "general_first"
	SeatSpecialFirst SeatPreference = "special_first"
	SeatGeneralOnly  SeatPreference = "general_only"
	SeatSpecialOnly  SeatPreference = "special_only"
)

const DefaultSeatPreference = SeatGeneralFirst

func (s SeatPreference) Valid() bool {
	switch s {
	case SeatGeneralFirst, SeatSpecialFirst, SeatGeneralOnly, SeatSpecialOnly:
		return true
	}
	return false
}

func (s SeatPreference) String() string { return string(s) }

// ParseSeatPreference accepts both "special_first" and "SPECIAL-FIRST" forms.
// An empty input yields the zero value.
func ParseSeatPreference(s string) (SeatPreference, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}
	p := SeatPreference(strings.ReplaceAll(strings.ToLower(s), "-", "_"))
	if !p.Valid() {
		return "", fmt.Errorf("%w: unknown seat preference %q", ErrInvalidRequest, s)
	}
	return p, nil
}
