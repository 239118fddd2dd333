package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/akovalenko/fitterm/internal/cli/formatter"
	"github.com/akovalenko/fitterm/internal/domain"
)

func newMeasureCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "measure",
		Short: "Track body measurements",
	}

	cmd.AddCommand(
		newMeasureLogCmd(app),
		newMeasureChartCmd(app),
		newMeasureProgressCmd(app),
	)

	return cmd
}

func newMeasureLogCmd(app *App) *cobra.Command {
	var key, unit, date string
	var value float64

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Record a measurement",
		RunE: func(cmd *cobra.Command, args []string) error {
			m := domain.Measurement{Key: key, Value: value, Unit: unit}
			if date != "" {
				d, err := domain.ParseDate(date)
				if err != nil {
					return err
				}
				m.Date = d
			}
			if err := app.Measurements.Create(cmd.Context(), m); err != nil {
				return err
			}
			fmt.Printf("Logged %s = %.1f %s\n", key, value, unit)
			return nil
		},
	}

	cmd.Flags().StringVar(&key, "key", "", "Measurement key (e.g. Weight, Waist)")
	cmd.Flags().Float64Var(&value, "value", 0, "Measured value")
	cmd.Flags().StringVar(&unit, "unit", "", "Unit (e.g. kg, cm)")
	cmd.Flags().StringVar(&date, "date", "", "Date (YYYY-MM-DD, defaults to today)")
	_ = cmd.MarkFlagRequired("key")
	_ = cmd.MarkFlagRequired("value")

	return cmd
}

func newMeasureChartCmd(app *App) *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "chart KEY",
		Short: "Show a measurement's history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			points, err := app.Measurements.ChartData(cmd.Context(), args[0], from, to)
			if err != nil {
				return err
			}
			if len(points) == 0 {
				fmt.Println(formatter.Dim("No measurements recorded."))
				return nil
			}
			fmt.Println(formatter.Header(args[0]))
			for _, p := range points {
				fmt.Printf("  %s  %.1f\n", p.Date.Format(domain.DateLayout), p.Value)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Range start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "Range end (YYYY-MM-DD)")

	return cmd
}

func newMeasureProgressCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "progress KEY",
		Short: "Show the latest value and change",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.Measurements.LatestProgress(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Println(formatter.FormatProgress(p))
			return nil
		},
	}
}
