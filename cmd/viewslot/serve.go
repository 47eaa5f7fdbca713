package main

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/vango-dev/viewslot/internal/config"
	"github.com/vango-dev/viewslot/internal/inspector"
	"github.com/vango-dev/viewslot/pkg/animation"
	"github.com/vango-dev/viewslot/pkg/scenario"
)

func serveCmd(g *globalOptions) *cobra.Command {
	var (
		addr      string
		stepDelay time.Duration
		once      bool
	)

	cmd := &cobra.Command{
		Use:   "serve <scenario>",
		Short: "Replay a scenario behind a live inspector",
		Long: `Replay a scenario with timed transitions and serve an inspector.

The inspector page follows the scenario over a websocket. Transition
counters and durations are exported at /metrics.

Examples:
  viewslot serve list.yaml
  viewslot serve --addr=0.0.0.0:8080 --step-delay=2s list.yaml`,
		Args: scenarioArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := g.load(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.InspectorAddress()
			}
			sc, err := scenario.Load(args[0])
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serveScenario(ctx, cfg, logger, sc, addr, stepDelay, once)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Listen address (default from "+config.ConfigFileName+")")
	cmd.Flags().DurationVar(&stepDelay, "step-delay", time.Second, "Pause between steps")
	cmd.Flags().BoolVar(&once, "once", false, "Stop serving when the scenario finishes")

	return cmd
}

func serveScenario(ctx context.Context, cfg *config.Config, logger *slog.Logger, sc *scenario.Scenario, addr string, stepDelay time.Duration, once bool) error {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())

	hub := inspector.NewHub()
	r, err := scenario.NewRunner(sc,
		scenario.WithLogger(logger),
		scenario.WithStepDelay(stepDelay),
		scenario.WithObserver(hub.Publish),
		scenario.WithTimedAnimator(func(after scenario.AfterFunc) animation.Animator {
			return animation.Instrument(cssAnimator(cfg, logger, after),
				animation.WithNamespace(cfg.Metrics.Namespace),
				animation.WithSubsystem(cfg.Metrics.Subsystem),
				animation.WithRegistry(registry),
				animation.WithTracerName(cfg.Tracing.TracerName),
				animation.WithInstrumentLogger(logger),
			)
		}),
	)
	if err != nil {
		return err
	}

	srv := inspector.NewServer(inspector.Options{
		Addr:     addr,
		Document: r.HTML,
		Gatherer: registry,
		Hub:      hub,
		Logger:   logger,
	})

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	runErr := make(chan error, 1)
	go func() {
		err := r.Run(ctx)
		if ctx.Err() != nil {
			runErr <- nil
			return
		}
		hub.Done(err)
		if err != nil {
			logger.Error("scenario failed", "error", err)
		} else {
			logger.Info("scenario finished", "steps", len(sc.Steps))
		}
		runErr <- err
		if once {
			cancel()
		}
	}()

	if err := srv.Start(ctx); err != nil {
		return err
	}
	if once {
		return <-runErr
	}
	return nil
}
