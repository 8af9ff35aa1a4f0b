package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"basecaller/internal/backend"
	"basecaller/internal/config"
	"basecaller/internal/httpapi"
	"basecaller/internal/signal"
	"basecaller/internal/worker"
)

type rootOptions struct {
	configPath  string
	logLevel    string
	logJSON     bool
	metricsAddr string
	devices     []string
	numProc     int

	cfg config.Config
	log zerolog.Logger
}

// buildRootCmd constructs the command tree. Results go to stdout, logs to
// stderr.
func buildRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &rootOptions{log: zerolog.Nop()}
	root := &cobra.Command{
		Use:           "basecaller",
		Short:         "Run flip-flop basecalling networks over raw nanopore reads",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	pf := root.PersistentFlags()
	pf.StringVarP(&opts.configPath, "config", "c", "", "Config file (.yaml, .yml, .json or .toml)")
	pf.StringVar(&opts.logLevel, "log-level", "", "Log level: debug|info|warn|error (defaults BASECALLER_LOG_LEVEL or info)")
	pf.BoolVar(&opts.logJSON, "log-json", false, "Emit JSON logs instead of console output")
	pf.StringVar(&opts.metricsAddr, "metrics-addr", "", "Serve /metrics and /status on this address")
	pf.StringSliceVar(&opts.devices, "devices", nil, "Comma separated devices (cpu, 0, cuda:1)")
	pf.IntVar(&opts.numProc, "num-proc", 0, "Number of worker slots")

	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if opts.configPath != "" {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			opts.cfg = cfg
		}
		if err := config.ApplyEnv(&opts.cfg); err != nil {
			return err
		}
		flags := cmd.Flags()
		if flags.Changed("log-level") {
			opts.cfg.LogLevel = opts.logLevel
		}
		if flags.Changed("metrics-addr") {
			opts.cfg.MetricsAddr = opts.metricsAddr
		}
		if flags.Changed("devices") {
			opts.cfg.Devices = opts.devices
		}
		if flags.Changed("num-proc") {
			opts.cfg.NumProc = opts.numProc
		}
		l, err := newLogger(stderr, opts.cfg.LogLevel, opts.logJSON)
		if err != nil {
			return err
		}
		opts.log = l
		installLogger(l)
		return nil
	}

	root.AddCommand(newInfoCmd(opts), newCallCmd(opts), newServeCmd(opts))
	return root
}

func newLogger(w io.Writer, level string, json bool) (zerolog.Logger, error) {
	if level == "" {
		level = "info"
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level %q", level)
	}
	out := w
	if !json {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	return zerolog.New(out).Level(lvl).With().Timestamp().Logger(), nil
}

func installLogger(l zerolog.Logger) {
	signal.SetLogger(l.With().Str("component", "signal").Logger())
	backend.SetLogger(l.With().Str("component", "backend").Logger())
	worker.SetLogger(l.With().Str("component", "worker").Logger())
	httpapi.SetLogger(l.With().Str("component", "http").Logger())
}

// buildBackend converts the loaded config into a Backend on the registered
// runtimes.
func buildBackend(cfg config.Config) (backend.Backend, error) {
	spec, err := cfg.ModelSpec()
	if err != nil {
		return nil, err
	}
	return backend.New(spec, backend.Runtimes{})
}

func readLoader(cfg config.Config) worker.Loader {
	return func(path string) (signal.Sample, error) {
		return signal.Load(path, signal.WithScaling(!cfg.NoScale))
	}
}
