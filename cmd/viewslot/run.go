package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vango-dev/viewslot/internal/config"
	"github.com/vango-dev/viewslot/pkg/animation"
	"github.com/vango-dev/viewslot/pkg/scenario"
)

func runCmd(g *globalOptions) *cobra.Command {
	var (
		trace   bool
		instant bool
	)

	cmd := &cobra.Command{
		Use:   "run <scenario>",
		Short: "Run a scenario and print the document",
		Long: `Run every step of a scenario against a fresh document and print the
rendered HTML. Removal steps wait for their leave transitions, which use the
durations from the configuration unless --instant is set.

Examples:
  viewslot run list.yaml
  viewslot run --trace --instant card.json`,
		Args: scenarioArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := g.load(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			sc, err := scenario.Load(args[0])
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runScenario(ctx, cmd.OutOrStdout(), cfg, logger, sc, trace, instant)
		},
	}

	cmd.Flags().BoolVarP(&trace, "trace", "t", false, "Print the document after every step")
	cmd.Flags().BoolVar(&instant, "instant", false, "Complete transitions immediately")

	return cmd
}

func runScenario(ctx context.Context, out io.Writer, cfg *config.Config, logger *slog.Logger, sc *scenario.Scenario, trace, instant bool) error {
	opts := []scenario.Option{scenario.WithLogger(logger)}
	if instant {
		opts = append(opts, scenario.WithAnimator(animation.None))
	} else {
		opts = append(opts, scenario.WithTimedAnimator(func(after scenario.AfterFunc) animation.Animator {
			return cssAnimator(cfg, logger, after)
		}))
	}
	if trace {
		opts = append(opts, scenario.WithObserver(func(s scenario.Snapshot) {
			printSnapshot(out, s)
		}))
	}

	r, err := scenario.NewRunner(sc, opts...)
	if err != nil {
		return err
	}
	if err := r.Run(ctx); err != nil {
		return err
	}
	if !trace {
		fmt.Fprintln(out, r.HTML())
	}
	return nil
}

// cssAnimator builds the CSS animator described by cfg.
func cssAnimator(cfg *config.Config, logger *slog.Logger, after scenario.AfterFunc) *animation.CSS {
	enter, leave := cfg.Animation.Enter, cfg.Animation.Leave
	return animation.NewCSS(
		animation.WithEnterClasses(enter.Class, enter.ActiveClass),
		animation.WithLeaveClasses(leave.Class, leave.ActiveClass),
		animation.WithDurations(cfg.EnterDuration(), cfg.LeaveDuration()),
		animation.WithAfterFunc(after),
		animation.WithCSSLogger(logger),
	)
}

func printSnapshot(w io.Writer, s scenario.Snapshot) {
	fmt.Fprintf(w, "step %d %s [%s]\n", s.Step, s.Op, strings.Join(s.Children, " "))
	if len(s.Events) > 0 {
		fmt.Fprintf(w, "  events: %s\n", strings.Join(s.Events, " "))
	}
	if s.Error != "" {
		fmt.Fprintf(w, "  error: %s\n", s.Error)
	}
	fmt.Fprintf(w, "  %s\n", s.HTML)
}
