package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/akovalenko/fitterm/internal/api"
	"github.com/akovalenko/fitterm/internal/controller"
	"github.com/akovalenko/fitterm/internal/domain"
)

func newExerciseCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exercise",
		Short: "Manage exercises within a plan",
	}

	cmd.AddCommand(
		newExerciseAddCmd(app),
		newExerciseUpdateCmd(app),
		newExerciseRemoveCmd(app),
		newExerciseUploadCmd(app),
	)

	return cmd
}

func exerciseFlags(cmd *cobra.Command, p *api.ExercisePayload) {
	cmd.Flags().StringVar(&p.Name, "name", "", "Exercise name")
	cmd.Flags().StringVar(&p.MuscleGroup, "muscle", "", "Muscle group (Chest, Back, ...)")
	cmd.Flags().IntVar(&p.NumberOfSets, "sets", 3, "Number of sets")
	cmd.Flags().IntVar(&p.Repetitions, "reps", 10, "Repetitions per set")
	cmd.Flags().IntVar(&p.RestTime, "rest", 60, "Rest between sets (seconds)")
	cmd.Flags().IntVar(&p.Duration, "duration", 0, "Estimated duration (seconds)")
	cmd.Flags().StringVar(&p.Note, "note", "", "Free-form note")
}

func newExerciseAddCmd(app *App) *cobra.Command {
	var payload api.ExercisePayload
	var media, mediaType string

	cmd := &cobra.Command{
		Use:   "add PLAN",
		Short: "Add an exercise to a plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			planID, err := resolvePlanID(ctx, app, args[0])
			if err != nil {
				return err
			}

			ctrl := controller.NewDetail(planID, app.Plans, app.Exercises, app.Steps, app.Log)
			ex, err := ctrl.CreateExercise(ctx, payload, media, domain.MediaType(mediaType))
			if err != nil {
				var uploadErr *controller.MediaUploadError
				if errors.As(err, &uploadErr) {
					// The exercise exists; only its media is missing.
					fmt.Printf("Created exercise %s, but the media upload failed: %v\n",
						uploadErr.Exercise.Name, uploadErr.Err)
					fmt.Printf("Retry with: fitterm exercise upload %s --file %s --type %s\n",
						uploadErr.Exercise.ID, media, mediaType)
					return nil
				}
				return err
			}
			fmt.Printf("Created exercise %s\n", ex.Name)
			return nil
		},
	}

	exerciseFlags(cmd, &payload)
	cmd.Flags().StringVar(&media, "file", "", "Media file to attach (optional)")
	cmd.Flags().StringVar(&mediaType, "type", "video", "Media type (video|thumbnail)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("muscle")

	return cmd
}

func newExerciseUpdateCmd(app *App) *cobra.Command {
	var payload api.ExercisePayload

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update an exercise",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ex, err := app.Exercises.Update(cmd.Context(), args[0], payload)
			if err != nil {
				return err
			}
			fmt.Printf("Updated exercise %s\n", ex.Name)
			return nil
		},
	}

	exerciseFlags(cmd, &payload)
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("muscle")

	return cmd
}

func newExerciseRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Delete an exercise",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Exercises.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Removed exercise %s\n", args[0])
			return nil
		},
	}
}

func newExerciseUploadCmd(app *App) *cobra.Command {
	var file, mediaType string

	cmd := &cobra.Command{
		Use:   "upload ID",
		Short: "Attach media to an exercise",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mt := domain.MediaType(mediaType)
			if mt != domain.MediaVideo && mt != domain.MediaThumbnail {
				return fmt.Errorf("media type must be video or thumbnail, got %q", mediaType)
			}
			if err := app.Exercises.UploadMedia(cmd.Context(), args[0], file, mt); err != nil {
				return err
			}
			fmt.Printf("Uploaded %s for exercise %s\n", mediaType, args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "Media file path")
	cmd.Flags().StringVar(&mediaType, "type", "video", "Media type (video|thumbnail)")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}
