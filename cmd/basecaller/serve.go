package main

import (
	"os"
	ossignal "os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"basecaller/internal/httpapi"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	var addr string
	var corsOrigins []string
	cmd := &cobra.Command{
		Use:     "serve",
		Short:   "Serve model info, health and metrics over HTTP until interrupted",
		Example: "  basecaller serve -c basecaller.yaml --addr :8080",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = opts.cfg.MetricsAddr
			}
			if addr == "" {
				addr = ":8080"
			}
			svc := &service{}
			svc.b, svc.err = buildBackend(opts.cfg)
			if svc.err != nil {
				opts.log.Error().Err(svc.err).Msg("backend unavailable")
			}
			if len(corsOrigins) > 0 {
				httpapi.SetCORSOptions(true, corsOrigins, nil, nil)
			}
			ctx, stop := ossignal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return httpapi.ListenAndServe(ctx, addr, httpapi.NewMux(svc))
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "HTTP listen address (defaults metrics_addr or :8080)")
	cmd.Flags().StringSliceVar(&corsOrigins, "cors-origins", nil, "Enable CORS for these origins")
	return cmd
}
