package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"tripplanner/internal/client"
	"tripplanner/internal/utils"
)

func newSession(cmd *cobra.Command) *client.Session {
	base, _ := cmd.Flags().GetString("api")
	return client.NewSession(client.New(base))
}

func newTripsCmd() *cobra.Command {
	trips := &cobra.Command{
		Use:   "trips",
		Short: "List and remove trips on a running server",
	}

	ls := &cobra.Command{
		Use:   "ls",
		Short: "List trips",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := newSession(cmd).Load(cmd.Context())
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "could not load trips: %v\n", err)
			}
			out := cmd.OutOrStdout()
			if len(st.Trips) == 0 {
				fmt.Fprintln(out, "No trips.")
				return nil
			}
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tCITIES\tDATES")
			for _, t := range st.Trips {
				dates := "-"
				if n := len(t.Cities); n > 0 {
					dates = utils.DateRangeLabel(t.Cities[0].StartDate, t.Cities[n-1].EndDate)
				}
				fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", t.ID, utils.Safe(t.Name, client.DefaultTripName), len(t.Cities), dates)
			}
			return tw.Flush()
		},
	}

	rm := &cobra.Command{
		Use:   "rm <trip-id>",
		Short: "Delete a trip with its cities and activities",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := newSession(cmd).DeleteTrip(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			return nil
		},
	}

	trips.AddCommand(ls, rm)
	return trips
}
