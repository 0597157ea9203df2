package root

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"xpeak/internal/ui"
)

func newGoalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goal",
		Short: "Manage personal goals",
	}

	add := &cobra.Command{
		Use:   "add <text>",
		Short: "Add a personal goal",
		Args:  exactArgs(1, "goal text is required"),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, _, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			id, err := svc.AddGoal(ctx, strings.TrimSpace(args[0]))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", ui.Good.Render("🎯 Added"), args[0], ui.Muted.Render(id))
			return nil
		},
	}

	done := &cobra.Command{
		Use:   "done <goal-id>",
		Short: "Toggle a goal done/undone",
		Args:  exactArgs(1, "goal id is required"),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, _, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			found, err := svc.ToggleGoal(ctx, args[0])
			if err != nil {
				return err
			}
			if !found {
				return fmt.Errorf("goal %s not found", args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render("Toggled "+args[0]))
			return nil
		},
	}

	cmd.AddCommand(add, done)
	return cmd
}
