package cli

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/srgjo27/rail_ticket/internal/core/domain"
	"github.com/srgjo27/rail_ticket/internal/core/services"
)

func newSearchCmd(a *app) *cobra.Command {
	var f tripFlags

	cmd := &cobra.Command{
		Use:   "search",
		Short: "List trains for a route and date",
		RunE: func(cmd *cobra.Command, _ []string) error {
			username, password, err := f.credentials(a)
			if err != nil {
				return err
			}

			req, err := f.request(time.Now())
			if err != nil {
				return err
			}

			provider, err := sessionFactory(a.cfg.Provider)(req.TrainType)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			session := services.NewBookingSession(provider)
			if !session.Login(ctx, username, password) {
				return domain.ErrLoginFailed
			}
			defer session.Logout(ctx)

			schedules := session.SearchTrains(ctx, req)
			if len(schedules) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no trains found")
				return nil
			}

			return printSchedules(cmd.OutOrStdout(), schedules)
		},
	}

	f.register(cmd)
	return cmd
}

func printSchedules(out io.Writer, schedules []domain.TrainSchedule) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TRAIN\tTYPE\tDEPART\tARRIVE\tFARE\tSEATS")
	for _, s := range schedules {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\n",
			s.TrainNumber,
			s.TrainType,
			clock(s.Departure()),
			clock(s.Arrival()),
			s.AdultFare,
			s.SeatCount,
		)
	}
	return w.Flush()
}

func clock(t time.Time, err error) string {
	if err != nil {
		return "-"
	}
	return t.Format("01-02 15:04")
}
