package reconciler

import (
	"context"
	"fmt"

	"github.com/oshokin/alarm-reconciler/internal/config"
	domain "github.com/oshokin/alarm-reconciler/internal/domain/alarm"
	"github.com/oshokin/alarm-reconciler/internal/logger"
	"github.com/oshokin/alarm-reconciler/internal/provider"
)

// Options carries everything a single reconciliation run needs.
type Options struct {
	// ConfigPath specifies the path to the settings YAML file.
	ConfigPath string
	// Overrides are connection values taken from command-line flags.
	Overrides *config.Overrides
	// Spec is the alarm descriptor to converge on.
	Spec *domain.Spec
}

// Run performs one reconciliation: it validates the descriptor, resolves the
// connection configuration, connects to the provider and converges the alarm.
// The returned Result feeds the output payload; errors are returned for the
// caller to report and are not logged here.
func Run(ctx context.Context, opts *Options) (*Result, error) {
	ctx = logger.WithName(ctx, "alarm-reconciler")

	if err := opts.Spec.Validate(); err != nil {
		return nil, fmt.Errorf("invalid alarm descriptor: %w", err)
	}

	cfg, err := config.Resolve(opts.ConfigPath, opts.Overrides)
	if err != nil {
		return nil, fmt.Errorf("resolve configuration: %w", err)
	}

	logger.InfoKV(ctx, "Connecting to provider",
		"region", cfg.Region, "endpoint_url", cfg.EndpointURL, "profile", cfg.Profile)

	client, err := provider.Connect(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to provider: %w", err)
	}

	result, err := New(client).Reconcile(ctx, opts.Spec)
	if err != nil {
		return nil, err
	}

	logger.InfoKV(ctx, "Reconciliation finished", "changed", result.Changed)

	return result, nil
}
