package root

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"xpeak/internal/engine"
	"xpeak/internal/ui"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show level, XP progress, skills, and quests",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, _, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			st, err := svc.Snapshot(ctx)
			if err != nil {
				return err
			}

			p := st.Profile
			prog := engine.GetLevelProgress(p.TotalXP)

			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconSparkle, "XPeak Status"))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Level", p.Level))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Total XP", fmt.Sprintf("%d (%d/%d in level, %.0f%%)", p.TotalXP, prog.Current, prog.Max, prog.Percentage)))
			fmt.Fprintln(cmd.OutOrStdout(), "  "+ui.ProgressBar(prog.Percentage, 30))
			fmt.Fprintln(cmd.OutOrStdout(), "")

			if len(p.Skills) > 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.H2.Render("📊 Skills"))
				skills := make([]engine.Skill, 0, len(p.Skills))
				for s := range p.Skills {
					skills = append(skills, s)
				}
				sort.Slice(skills, func(i, j int) bool { return skills[i] < skills[j] })
				for _, s := range skills {
					sp := p.Skills[s]
					fmt.Fprintf(cmd.OutOrStdout(), "- %s: lvl %d (xp %d)\n", s, sp.Level, sp.XP)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "")
			}

			if st.Pending != nil {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Gold.Render(fmt.Sprintf("%s Quest bonus +%d XP pending, run 'xpeak quest confirm'", ui.IconTrophy, st.Pending.Amount)))
				fmt.Fprintln(cmd.OutOrStdout(), "")
			}

			if len(st.Quests) > 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.H2.Render(ui.IconQuest+" Quests"))
				for _, q := range st.Quests {
					done := 0
					for _, c := range q.Categories {
						if c.Complete() {
							done++
						}
					}
					mark := ui.Warn.Render("in progress")
					if q.Complete() {
						mark = ui.Good.Render("complete")
					}
					fmt.Fprintf(cmd.OutOrStdout(), "- %s %s %s\n", q.Title, ui.Muted.Render(fmt.Sprintf("(%d/%d phases, id %s)", done, len(q.Categories), q.ID)), mark)
					for _, c := range q.Categories {
						doneTasks := 0
						for _, t := range c.Tasks {
							if t.Completed() {
								doneTasks++
							}
						}
						fmt.Fprintf(cmd.OutOrStdout(), "    %s %s\n", c.Title, ui.Muted.Render(fmt.Sprintf("%d/%d (id %s)", doneTasks, len(c.Tasks), c.ID)))
					}
				}
				fmt.Fprintln(cmd.OutOrStdout(), "")
			}

			if len(st.Tasks) > 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.H2.Render(ui.IconBolt+" Tasks"))
				for _, t := range st.Tasks {
					box := "[ ]"
					if t.Completed {
						box = "[x]"
					}
					line := fmt.Sprintf("- %s %s %s", box, t.Title, ui.Muted.Render(fmt.Sprintf("(%s, id %s)", t.Difficulty, t.ID)))
					if t.IsHabit && t.Streak > 0 {
						line += fmt.Sprintf(" %s%d", ui.IconFlame, t.Streak)
					}
					fmt.Fprintln(cmd.OutOrStdout(), line)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "")
			}

			if len(p.Goals) > 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.H2.Render("🎯 Goals"))
				for _, g := range p.Goals {
					box := "[ ]"
					if g.Done {
						box = "[x]"
					}
					fmt.Fprintf(cmd.OutOrStdout(), "- %s %s %s\n", box, g.Text, ui.Muted.Render("(id "+g.ID+")"))
				}
			}

			return nil
		},
	}

	return cmd
}
