package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/promptcraft/internal/app"
	sess "github.com/abhisek/promptcraft/internal/chat"
	"github.com/abhisek/promptcraft/internal/config"
	"github.com/abhisek/promptcraft/internal/logging"
)

// runApp loads configuration and the script, builds the logger, and
// launches the TUI.
func runApp(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	sc, err := loadScript(cmd, cfg)
	if err != nil {
		return err
	}
	logger, err := newLogger(cmd, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	delays, err := deliveryDelays(cfg.Delivery)
	if err != nil {
		return err
	}

	logger.Info("starting tui", zap.Int("steps", sc.StepCount()))
	return app.Run(app.Options{
		Script: sc,
		Session: []sess.Option{
			sess.WithDelays(delays),
			sess.WithLogger(logger),
		},
	})
}

func newLogger(cmd *cobra.Command, cfg *config.Config) (*zap.Logger, error) {
	verbose, _ := cmd.Flags().GetBool("verbose")
	logger, err := logging.New(logging.Options{
		File:    cfg.Log.File,
		Level:   cfg.Log.Level,
		Verbose: verbose,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return logger, nil
}

// deliveryDelays converts the delivery settings into controller pacing.
func deliveryDelays(dc config.DeliveryConfig) (sess.Delays, error) {
	d := sess.Delays{
		Short:     dc.Short,
		Medium:    dc.Medium,
		Jitter:    dc.Jitter,
		Long:      dc.Long,
		Sentinels: make(map[string]sess.Profile, len(dc.Sentinels)),
	}
	for _, s := range dc.Sentinels {
		d.Sentinels[s.Content] = sess.Profile(s.Profile)
	}
	if dc.Instant {
		d.Short, d.Medium, d.Jitter, d.Long = 0, 0, 0, 0
	}
	if err := d.Validate(); err != nil {
		return sess.Delays{}, fmt.Errorf("delivery: %w", err)
	}
	return d, nil
}
