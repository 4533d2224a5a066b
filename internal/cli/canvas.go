package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"tripplanner/internal/render"
)

func newCanvasCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "canvas <trip-id>",
		Short: "Print a trip's city canvas as SVG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := newSession(cmd)
			if _, err := s.Load(cmd.Context()); err != nil {
				return err
			}
			st := s.SelectTrip(args[0])
			if st.CurrentTripID != args[0] {
				return fmt.Errorf("trip %s not found", args[0])
			}
			frame := render.Build(st)
			return render.WriteCanvasSVG(cmd.OutOrStdout(), *frame.Canvas)
		},
	}
}
