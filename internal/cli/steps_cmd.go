package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/akovalenko/fitterm/internal/cli/formatter"
	"github.com/akovalenko/fitterm/internal/domain"
)

func newStepsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "steps",
		Short: "Manage an exercise's instruction steps",
	}

	cmd.AddCommand(
		newStepsListCmd(app),
		newStepsSetCmd(app),
		newStepsAddCmd(app),
		newStepsRemoveCmd(app),
	)

	return cmd
}

func newStepsListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list EXERCISE",
		Short: "Show an exercise's steps in order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			steps, err := app.Steps.ByExercise(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Println(formatter.FormatSteps(steps))
			return nil
		},
	}
}

func newStepsSetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set EXERCISE STEP...",
		Short: "Replace the exercise's step list",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			steps := make([]domain.Step, 0, len(args)-1)
			for _, desc := range args[1:] {
				steps = append(steps, domain.Step{Description: desc})
			}
			if err := app.Steps.SaveMany(cmd.Context(), args[0], steps); err != nil {
				return err
			}
			fmt.Printf("Saved %d steps\n", len(steps))
			return nil
		},
	}
}

func newStepsAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add EXERCISE STEP",
		Short: "Append one step to the exercise",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			steps, err := app.Steps.ByExercise(ctx, args[0])
			if err != nil {
				return err
			}
			steps = append(steps, domain.Step{Description: args[1]})
			if err := app.Steps.SaveMany(ctx, args[0], steps); err != nil {
				return err
			}
			fmt.Printf("Added step %d\n", len(steps))
			return nil
		},
	}
}

func newStepsRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove STEP_ID",
		Short: "Delete one step",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Steps.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Removed step %s\n", args[0])
			return nil
		},
	}
}
