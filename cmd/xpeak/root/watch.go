package root

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"xpeak/internal/engine"
)

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Run the habit streak clock in the foreground",
		Long: `Run the habit streak clock: a recurring check that clears yesterday's
habit completions and breaks streaks after a missed day. Each command also
runs the check once on startup, so this daemon is only needed when xpeak
should keep up with day boundaries while no commands are being run.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			svc, cfg, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			level, err := zerolog.ParseLevel(cfg.LogLevel)
			if err != nil {
				level = zerolog.InfoLevel
			}
			log := zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr()}).
				Level(level).
				With().Timestamp().Logger()

			log.Info().Dur("tick", cfg.StreakTick).Msg("streak clock running")
			engine.NewStreakClock(svc, cfg.StreakTick, log).Run(ctx)
			return nil
		},
	}

	return cmd
}
