package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/srgjo27/rail_ticket/internal/core/domain"
	"github.com/srgjo27/rail_ticket/internal/core/services"
)

type cardFlags struct {
	number     string
	password   string
	validation string
	expire     string
	corporate  bool
}

// card returns nil when no card number was given, which reserves without
// paying.
func (c cardFlags) card() (*domain.CreditCard, error) {
	if c.number == "" {
		return nil, nil
	}
	if c.password == "" || c.validation == "" || c.expire == "" {
		return nil, fmt.Errorf("%w: --card-password, --card-validation and --card-expire are required with --card-number", domain.ErrInvalidRequest)
	}
	return &domain.CreditCard{
		Number:           c.number,
		Password:         c.password,
		ValidationNumber: c.validation,
		Expire:           c.expire,
		IsCorporate:      c.corporate,
	}, nil
}

func newReserveCmd(a *app) *cobra.Command {
	var (
		f           tripFlags
		c           cardFlags
		trainNumber string
	)

	cmd := &cobra.Command{
		Use:   "reserve",
		Short: "Reserve a train and optionally pay for it",
		RunE: func(cmd *cobra.Command, _ []string) error {
			username, password, err := f.credentials(a)
			if err != nil {
				return err
			}

			req, err := f.request(time.Now())
			if err != nil {
				return err
			}

			card, err := c.card()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			b, err := newBackend(ctx, a.cfg)
			if err != nil {
				return err
			}
			defer b.Close()

			resp, err := b.service.CreateReservation(ctx, services.CreateReservationRequest{
				Username:    username,
				Password:    password,
				Request:     req,
				TrainNumber: trainNumber,
				Card:        card,
			})
			if err != nil {
				return err
			}

			printReservation(cmd.OutOrStdout(), resp)
			return nil
		},
	}

	f.register(cmd)
	fs := cmd.Flags()
	fs.StringVar(&trainNumber, "train-number", "", "reserve this train instead of the first one with seats")
	fs.StringVar(&c.number, "card-number", "", "pay immediately with this card")
	fs.StringVar(&c.password, "card-password", "", "first two digits of the card password")
	fs.StringVar(&c.validation, "card-validation", "", "birth date (YYMMDD) or business number")
	fs.StringVar(&c.expire, "card-expire", "", "card expiry YYMM")
	fs.BoolVar(&c.corporate, "card-corporate", false, "corporate card")

	return cmd
}

func printReservation(out io.Writer, resp *services.CreateReservationResponse) {
	fmt.Fprintf(out, "reservation %s on train %s (%s %s)\n",
		resp.ReservationNumber, resp.TrainNumber, resp.DepartureDate, resp.DepartureTime)
	fmt.Fprintf(out, "status: %s, %s\n", resp.Status, resp.Message)
	if !resp.Paid {
		fmt.Fprintf(out, "pay before %s\n", resp.PaymentDeadline.In(domain.KST).Format("2006-01-02 15:04"))
	}
}
