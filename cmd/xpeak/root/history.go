package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"xpeak/internal/ui"
)

func newHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent XP events, newest first",
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

			entries := st.Profile.History
			if limit > 0 && len(entries) > limit {
				entries = entries[:limit]
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconScroll, "XP History"))
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("No XP earned yet."))
				return nil
			}
			for _, e := range entries {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %s\n",
					ui.Muted.Render(e.Date.Local().Format("2006-01-02 15:04")),
					ui.XPText(e.XPGained),
					e.TaskID,
				)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Max entries to show (0 for all)")
	return cmd
}
