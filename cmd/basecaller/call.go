package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	ossignal "os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"basecaller/internal/httpapi"
	"basecaller/internal/registry"
	"basecaller/internal/worker"
)

func newCallCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "call [read.fast5...]",
		Short: "Run the network over reads and print one JSON summary per read",
		Long: "Run the network over the given read containers, or over every *.fast5 under\n" +
			"reads_dir when no paths are given. Failed reads are reported and skipped.",
		Example: "  basecaller call -c basecaller.yaml\n  basecaller call -c basecaller.toml --devices 0,1 --num-proc 4 reads/*.fast5",
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := readPaths(opts, args)
			if err != nil {
				return err
			}
			b, err := buildBackend(opts.cfg)
			if err != nil {
				return err
			}
			ctx, stop := ossignal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			pool := worker.New(b,
				worker.WithLoader(readLoader(opts.cfg)),
				worker.WithCanonicalStates(opts.cfg.ModSplit),
			)
			if addr := opts.cfg.MetricsAddr; addr != "" {
				go func() {
					if err := httpapi.ListenAndServe(ctx, addr, httpapi.NewMux(&service{b: b, pool: pool})); err != nil {
						opts.log.Error().Err(err).Str("addr", addr).Msg("metrics server")
					}
				}()
			}

			start := time.Now()
			out := make(chan worker.Result)
			errc := make(chan error, 1)
			go func() {
				errc <- pool.Run(ctx, worker.Feed(ctx.Done(), paths), out)
				close(out)
			}()
			enc := json.NewEncoder(cmd.OutOrStdout())
			var n, failed int
			for r := range out {
				n++
				if r.Err != nil {
					failed++
				}
				if err := enc.Encode(r.Summary()); err != nil {
					opts.log.Error().Err(err).Msg("write result")
				}
			}
			runErr := <-errc
			opts.log.Info().
				Int("reads", n).
				Int("failed", failed).
				Dur("elapsed", time.Since(start)).
				Msg("call finished")
			if runErr != nil && !errors.Is(runErr, context.Canceled) {
				return runErr
			}
			return nil
		},
	}
}

func readPaths(opts *rootOptions, args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	root, err := opts.cfg.ReadsRoot()
	if err != nil {
		return nil, err
	}
	if root == "" {
		return nil, fmt.Errorf("no reads: pass read paths or set reads_dir")
	}
	paths, err := registry.LoadDir(root, opts.cfg.Recursive)
	if err != nil {
		return nil, fmt.Errorf("discover reads: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no *.fast5 files under %s", root)
	}
	opts.log.Info().Str("dir", root).Int("reads", len(paths)).Msg("discovered reads")
	return paths, nil
}
