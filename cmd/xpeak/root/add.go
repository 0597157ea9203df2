package root

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"xpeak/internal/engine"
	"xpeak/internal/ui"
)

func newAddCmd() *cobra.Command {
	var diff string
	var skill string
	var isHabit bool
	var saveAs string
	var fromTemplate string

	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Add a task (or habit)",
		Args: func(cmd *cobra.Command, args []string) error {
			if fromTemplate == "" && len(args) != 1 {
				return errors.New("title is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, _, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if fromTemplate != "" {
				id, err := svc.ApplyTemplate(ctx, fromTemplate)
				if err != nil {
					return err
				}
				if id == "" {
					return fmt.Errorf("unknown template: %s", fromTemplate)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.Good.Render("Created from template"), ui.Muted.Render(id))
				return nil
			}

			title := strings.TrimSpace(args[0])
			if title == "" {
				return errors.New("title is required")
			}

			in := engine.AddTaskInput{
				Title:      title,
				Difficulty: engine.Difficulty(strings.ToLower(diff)),
				Skill:      engine.Skill(strings.ToLower(skill)),
				IsHabit:    isHabit,
			}
			id, err := svc.AddTask(ctx, in)
			if err != nil {
				return err
			}

			icon := ui.IconBolt
			if isHabit {
				icon = ui.IconLoop
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", ui.Good.Render(icon+" Added"), title, ui.Muted.Render(id))

			if saveAs != "" {
				err := svc.SaveTemplate(ctx, engine.TaskTemplate{
					Name:       saveAs,
					Title:      title,
					Difficulty: in.Difficulty,
					Skill:      in.Skill,
					IsHabit:    isHabit,
				})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.Muted.Render("Saved as template"), saveAs)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&diff, "diff", "d", "medium", "Difficulty (easy|medium|hard|epic)")
	cmd.Flags().StringVarP(&skill, "skill", "s", "default", "Skill category (mind|body|craft|work|social|default)")
	cmd.Flags().BoolVar(&isHabit, "habit", false, "Create a recurring daily habit with a streak")
	cmd.Flags().StringVar(&saveAs, "save-as", "", "Also save as a reusable template with this name")
	cmd.Flags().StringVar(&fromTemplate, "from", "", "Instantiate a saved template instead of a new title")

	return cmd
}
