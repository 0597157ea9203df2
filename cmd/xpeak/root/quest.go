package root

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"xpeak/internal/engine"
	"xpeak/internal/ui"
)

func newQuestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quest",
		Short: "Manage quests, their phases, and their tasks",
	}

	cmd.AddCommand(
		newQuestNewCmd(),
		newQuestRmCmd(),
		newQuestCatCmd(),
		newQuestCatRmCmd(),
		newQuestTaskCmd(),
		newQuestTaskRmCmd(),
		newQuestDoCmd(),
		newQuestConfirmCmd(),
		newQuestBreakdownCmd(),
	)
	return cmd
}

func newQuestNewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "new <title>",
		Short: "Create an empty quest",
		Args:  exactArgs(1, "title is required"),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, _, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			id, err := svc.CreateQuest(ctx, strings.TrimSpace(args[0]))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", ui.Good.Render(ui.IconQuest+" Created"), args[0], ui.Muted.Render(id))
			return nil
		},
	}
}

func newQuestRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <quest-id>",
		Short: "Delete a quest",
		Args:  exactArgs(1, "quest id is required"),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, _, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			found, err := svc.DeleteQuest(ctx, args[0])
			if err != nil {
				return err
			}
			if !found {
				return fmt.Errorf("quest %s not found", args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Warn.Render("Deleted quest "+args[0]))
			return nil
		},
	}
}

func newQuestCatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cat <quest-id> <title>",
		Short: "Add a phase (category) to a quest",
		Args:  exactArgs(2, "quest id and title are required"),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, _, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := svc.AddCategory(ctx, args[0], engine.QuestCategory{Title: strings.TrimSpace(args[1])})
			if err != nil {
				return err
			}
			if !res.Found {
				return fmt.Errorf("quest %s not found", args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.Good.Render("Added phase"), args[1])
			reportBonusFallout(cmd, res)
			return nil
		},
	}
}

func newQuestCatRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cat-rm <quest-id> <category-id>",
		Short: "Delete a phase from a quest",
		Args:  exactArgs(2, "quest id and category id are required"),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, _, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := svc.DeleteCategory(ctx, args[0], args[1])
			if err != nil {
				return err
			}
			if !res.Found {
				return fmt.Errorf("category %s not found in quest %s", args[1], args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Warn.Render("Deleted phase "+args[1]))
			reportBonusFallout(cmd, res)
			return nil
		},
	}
}

func newQuestTaskCmd() *cobra.Command {
	var diff string
	var skill string
	var desc string

	cmd := &cobra.Command{
		Use:   "task <quest-id> <category-id> <name>",
		Short: "Add a task to a quest phase",
		Args:  exactArgs(3, "quest id, category id and name are required"),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, _, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			t := engine.QuestTask{
				Name:        strings.TrimSpace(args[2]),
				Difficulty:  engine.Difficulty(strings.ToLower(diff)),
				Skill:       engine.Skill(strings.ToLower(skill)),
				Description: strings.TrimSpace(desc),
			}
			res, err := svc.AddQuestTask(ctx, args[0], args[1], t)
			if err != nil {
				return err
			}
			if !res.Found {
				return fmt.Errorf("category %s not found in quest %s", args[1], args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.Good.Render("Added task"), args[2])
			reportBonusFallout(cmd, res)
			return nil
		},
	}

	cmd.Flags().StringVarP(&diff, "diff", "d", "medium", "Difficulty (easy|medium|hard|epic)")
	cmd.Flags().StringVarP(&skill, "skill", "s", "default", "Skill category")
	cmd.Flags().StringVar(&desc, "desc", "", "Optional description")
	return cmd
}

func newQuestTaskRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "task-rm <quest-id> <task-id>",
		Short: "Delete a task from a quest",
		Long: `Delete a task from a quest.

Deletion can retroactively complete the owning phase or the whole quest;
any resulting bonuses are applied immediately, without a confirmation step.`,
		Args: exactArgs(2, "quest id and task id are required"),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, _, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := svc.DeleteQuestTask(ctx, args[0], args[1])
			if err != nil {
				return err
			}
			if !res.Found {
				return fmt.Errorf("task %s not found in quest %s", args[1], args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Warn.Render("Deleted task "+args[1]))
			reportBonusFallout(cmd, res)
			return nil
		},
	}
}

func newQuestDoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "do <quest-id> <task-id>",
		Short: "Toggle a quest task",
		Args:  exactArgs(2, "quest id and task id are required"),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, _, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := svc.ToggleQuestTask(ctx, args[0], args[1])
			if err != nil {
				return err
			}
			if !res.Found {
				return fmt.Errorf("task %s not found in quest %s", args[1], args[0])
			}

			if res.Completing {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.Good.Render(ui.IconDone+" Completed"), ui.XPText(res.XPDelta))
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.Warn.Render(ui.IconUndo+" Uncompleted"), ui.XPText(res.XPDelta))
			}
			if res.SectionBonus > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "%s Phase complete %s\n", ui.Gold.Render(ui.IconDone), ui.XPText(res.SectionBonus))
			}
			if res.PendingCreated {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Gold.Render(ui.IconTrophy+" Quest complete! Run 'xpeak quest confirm' to claim the bonus."))
			}
			if res.LevelUp {
				fmt.Fprintf(cmd.OutOrStdout(), "%s Level %d → %d\n", ui.BadgeLevelUp, res.LevelBefore, res.LevelAfter)
			}
			return nil
		},
	}
}

func newQuestConfirmCmd() *cobra.Command {
	var decline bool

	cmd := &cobra.Command{
		Use:   "confirm",
		Short: "Claim (or skip) the pending quest-completion bonus",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, _, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := svc.ConfirmQuestBonus(ctx, !decline)
			if err != nil {
				return err
			}
			if !res.Found {
				return errors.New("no quest bonus is pending")
			}
			if res.Accepted {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.Gold.Render(ui.IconTrophy+" Quest bonus claimed"), ui.XPText(res.XPDelta))
				if res.LevelUp {
					fmt.Fprintf(cmd.OutOrStdout(), "%s Level %d → %d\n", ui.BadgeLevelUp, res.LevelBefore, res.LevelAfter)
				}
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Quest bonus skipped."))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&decline, "no", false, "Decline the bonus instead of claiming it")
	return cmd
}

func newQuestBreakdownCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "breakdown <quest-id>",
		Short: "Replace a quest's phases from a breakdown descriptor",
		Long: `Replace a quest's phases wholesale from a JSON breakdown descriptor
(as produced by an external breakdown generator). The quest's previous
completion state is discarded; the batch is applied atomically or not at all.`,
		Args: exactArgs(1, "quest id is required"),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			var data []byte
			var err error
			if file == "" || file == "-" {
				data, err = io.ReadAll(cmd.InOrStdin())
			} else {
				data, err = os.ReadFile(file)
			}
			if err != nil {
				return fmt.Errorf("read breakdown: %w", err)
			}

			cats, err := engine.ParseBreakdown(data)
			if err != nil {
				return err
			}

			svc, _, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			found, err := svc.ReplaceQuestCategories(ctx, args[0], cats)
			if err != nil {
				return err
			}
			if !found {
				return fmt.Errorf("quest %s not found", args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s applied %d phases\n", ui.Good.Render(ui.IconScroll+" Breakdown"), len(cats))
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Descriptor JSON file ('-' for stdin)")
	return cmd
}

func reportBonusFallout(cmd *cobra.Command, res engine.EditResult) {
	if res.SectionBonus != 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "%s Phase bonus %s\n", ui.Gold.Render(ui.IconDone), ui.XPText(res.SectionBonus))
	}
	if res.QuestBonus != 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "%s Quest bonus %s\n", ui.Gold.Render(ui.IconTrophy), ui.XPText(res.QuestBonus))
	}
}

func exactArgs(n int, msg string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return errors.New(msg)
		}
		return nil
	}
}
