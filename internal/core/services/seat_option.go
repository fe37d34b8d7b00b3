package services

import (
	"github.com/srgjo27/rail_ticket/internal/core/domain"
	"github.com/srgjo27/rail_ticket/internal/core/ports"
)

var seatOptions = map[domain.SeatPreference]ports.ReserveOption{
	domain.SeatGeneralFirst: ports.OptionGeneralFirst,
	domain.SeatSpecialFirst: ports.OptionSpecialFirst,
	domain.SeatGeneralOnly:  ports.OptionGeneralOnly,
	domain.SeatSpecialOnly:  ports.OptionSpecialOnly,
}

// ToProviderOption maps a seat preference to the provider's option code.
// Missing or unknown preferences fall back to GENERAL_FIRST.
func ToProviderOption(pref domain.SeatPreference) ports.ReserveOption {
	if opt, ok := seatOptions[pref]; ok {
		return opt
	}
	return seatOptions[domain.DefaultSeatPreference]
}
