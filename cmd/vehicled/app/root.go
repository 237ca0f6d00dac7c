// Package app holds the vehicled command tree.
package app

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"vehicle-status-backend/config"
	"vehicle-status-backend/internal/adapter"
	"vehicle-status-backend/internal/demo"
	"vehicle-status-backend/internal/upstream"
)

// NewRootCommand builds the vehicled command. Without a subcommand it serves
// the HTTP API.
func NewRootCommand() *cobra.Command {
	opts := NewOptions()
	cmd := &cobra.Command{
		Use:           "vehicled",
		Short:         "Vehicle status and remote command service",
		Long:          "vehicled exposes the state of a connected-car fleet as flat JSON records and forwards a fixed set of remote commands to the vendor backend.",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), opts)
		},
	}
	opts.AddFlags(cmd.PersistentFlags())

	cmd.AddCommand(
		newServeCommand(opts),
		newVehiclesCommand(opts),
		newStatusCommand(opts),
		newCommandCommand(opts),
	)
	return cmd
}

func newServeCommand(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), opts)
		},
	}
}

// newSource returns the configured vehicle backend.
func newSource(cfg *config.Config, logger *zap.Logger) (adapter.Source, error) {
	switch cfg.Backend {
	case config.BackendDemo:
		return demo.NewSource(time.Now()), nil
	case config.BackendUpstream:
		if cfg.Upstream.URL == "" {
			return nil, fmt.Errorf("upstream.url is required for the %q backend", config.BackendUpstream)
		}
		return upstream.NewClient(&cfg.Upstream, logger), nil
	}
	return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
}

func newAdapter(cfg *config.Config, logger *zap.Logger) (*adapter.VehicleAdapter, error) {
	source, err := newSource(cfg, logger)
	if err != nil {
		return nil, err
	}
	return adapter.New(source, adapter.WithTTL(cfg.Cache.TTL), adapter.WithLogger(logger)), nil
}
