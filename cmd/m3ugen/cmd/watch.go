package cmd

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tvheadless/m3ugen/internal/playlist"
	"github.com/tvheadless/m3ugen/internal/scheduler"
)

var watchImmediate bool

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Regenerate the playlist on a schedule",
	Long: `Run playlist generation on the configured cron schedule
(watch.schedule, default every 6 hours) until interrupted.`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().BoolVar(&watchImmediate, "immediate", true, "run one generation immediately on start")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}

	g := playlist.NewGenerator(cfg, logger)
	job := func(ctx context.Context) error {
		_, err := g.Run(ctx)
		return err
	}

	sched, err := scheduler.New(cfg.Watch.Schedule, job)
	if err != nil {
		return err
	}
	sched = sched.WithLogger(logger).WithRunOnStart(watchImmediate)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := sched.Run(ctx); !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
