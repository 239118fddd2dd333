package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/akovalenko/fitterm/internal/cli/formatter"
	"github.com/akovalenko/fitterm/internal/domain"
)

func newMealCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "meal",
		Short: "Log meals and review nutrition",
	}

	cmd.AddCommand(
		newMealLogCmd(app),
		newMealSummaryCmd(app),
	)

	return cmd
}

func newMealLogCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "log DESCRIPTION...",
		Short: "Log a meal from a free-text description",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			entry, err := app.Nutrition.LogMeal(cmd.Context(), text)
			if err != nil {
				return err
			}
			fmt.Printf("Logged %q — %.0f kcal (P %.0fg / C %.0fg / F %.0fg)\n",
				entry.Description, entry.Calories, entry.Protein, entry.Carbs, entry.Fat)
			return nil
		},
	}
}

func newMealSummaryCmd(app *App) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show one day's nutrition totals",
		RunE: func(cmd *cobra.Command, args []string) error {
			day := date
			if day == "" {
				day = time.Now().Format(domain.DateLayout)
			} else if _, err := domain.ParseDate(day); err != nil {
				return err
			}
			summary, err := app.Nutrition.DailySummary(cmd.Context(), day)
			if err != nil {
				return err
			}
			fmt.Print(formatter.FormatDailySummary(summary))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Date (YYYY-MM-DD, defaults to today)")

	return cmd
}
