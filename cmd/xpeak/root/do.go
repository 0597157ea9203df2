package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"xpeak/internal/ui"
)

func newDoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "do <task-id>",
		Short: "Toggle a flat task or habit",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("task id is required")
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

			res, err := svc.ToggleTask(ctx, args[0])
			if err != nil {
				return err
			}
			if !res.Found {
				return fmt.Errorf("task %s not found", args[0])
			}

			if res.Completing {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.Good.Render(ui.IconDone+" Completed"), ui.XPText(res.XPDelta))
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.Warn.Render(ui.IconUndo+" Uncompleted"), ui.XPText(res.XPDelta))
			}
			if res.LevelUp {
				fmt.Fprintf(cmd.OutOrStdout(), "%s Level %d → %d\n", ui.BadgeLevelUp, res.LevelBefore, res.LevelAfter)
			}
			return nil
		},
	}

	return cmd
}

func newRmCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rm <task-id>",
		Short: "Delete a flat task",
		Long: `Delete a flat task.

XP the task already earned stays on the ledger; its history entry remains.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("task id is required")
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

			found, err := svc.DeleteTask(ctx, args[0])
			if err != nil {
				return err
			}
			if !found {
				return fmt.Errorf("task %s not found", args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Warn.Render("Deleted "+args[0]))
			return nil
		},
	}

	return cmd
}
