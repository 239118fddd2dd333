package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/akovalenko/fitterm/internal/api"
	"github.com/akovalenko/fitterm/internal/cli/formatter"
)

func newTrackCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "track",
		Short: "Log and review exercise sets",
	}

	cmd.AddCommand(
		newTrackSetCmd(app),
		newTrackStatsCmd(app),
		newTrackHistoryCmd(app),
	)

	return cmd
}

func newTrackSetCmd(app *App) *cobra.Command {
	var weight, rpe float64
	var reps int

	cmd := &cobra.Command{
		Use:   "set EXERCISE",
		Short: "Log one performed set",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := api.LogSetRequest{Weight: weight, Reps: reps}
			if cmd.Flags().Changed("rpe") {
				req.RPE = &rpe
			}
			if err := app.Tracking.LogSet(cmd.Context(), args[0], req); err != nil {
				return err
			}
			fmt.Printf("Logged %d × %.1f kg\n", reps, weight)
			return nil
		},
	}

	cmd.Flags().Float64Var(&weight, "weight", 0, "Weight (kg)")
	cmd.Flags().IntVar(&reps, "reps", 0, "Repetitions performed")
	cmd.Flags().Float64Var(&rpe, "rpe", 0, "Perceived exertion 1-10 (optional)")
	_ = cmd.MarkFlagRequired("weight")
	_ = cmd.MarkFlagRequired("reps")

	return cmd
}

func newTrackStatsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stats EXERCISE",
		Short: "Show an exercise's record and volume",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			stats, err := app.Tracking.Stats(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Println(formatter.FormatStats(stats))
			return nil
		},
	}
}

func newTrackHistoryCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "history EXERCISE",
		Short: "List an exercise's logged sets",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sets, err := app.Tracking.History(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if len(sets) == 0 {
				fmt.Println(formatter.Dim("No sets logged."))
				return nil
			}
			for _, s := range sets {
				rpe := ""
				if s.RPE > 0 {
					rpe = formatter.Dim(fmt.Sprintf("  @%.1f", s.RPE))
				}
				fmt.Printf("%s  %2d × %5.1f kg  %s%s\n",
					formatter.Dim(s.CreatedAt.Format("2006-01-02 15:04")),
					s.Reps, s.Weight,
					formatter.Dim(fmt.Sprintf("vol %.0f", s.Volume)),
					rpe,
				)
			}
			return nil
		},
	}
}
