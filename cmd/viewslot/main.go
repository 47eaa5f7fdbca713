package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/viewslot/internal/config"
	"github.com/vango-dev/viewslot/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// globalOptions are the persistent flags shared by every command.
type globalOptions struct {
	configPath string
	verbose    bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		errors.PrintError(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "viewslot",
		Short: "Run and inspect view slot scenarios",
		Long: `viewslot drives a view slot from a scenario file.

A scenario declares views and a list of steps (add, insert, remove,
removeAt, removeAll, swap, bind, unbind, attached, detached, project).
"run" prints the resulting document; "serve" replays the scenario with
timed transitions behind a live inspector.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Path to "+config.ConfigFileName+" (default: ./"+config.ConfigFileName+" if present)")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log at debug level")

	rootCmd.AddCommand(
		runCmd(opts),
		serveCmd(opts),
		versionCmd(),
	)
	return rootCmd
}

// load reads the configuration and builds the logger it asks for.
func (o *globalOptions) load(w io.Writer) (*config.Config, *slog.Logger, error) {
	cfg, err := config.LoadOrDefault(o.configPath)
	if err != nil {
		return nil, nil, err
	}
	level := cfg.Level()
	if o.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	return cfg, logger, nil
}

// scenarioArg checks that exactly one scenario path was given.
func scenarioArg(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return errors.New("E140").
			WithDetail(fmt.Sprintf("%s expects one scenario file, got %d arguments", cmd.Name(), len(args))).
			WithSuggestion("Usage: viewslot " + cmd.Name() + " <scenario.yaml>")
	}
	return nil
}
