package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jsamuelsen/viewlink/internal/ports"
)

// HostChecker verifies that the host configured for one stage composes valid links.
type HostChecker struct {
	Stage string
	Host  string
}

var _ ports.Checker = HostChecker{}

// Name returns the stage name.
func (c HostChecker) Name() string {
	return c.Stage
}

// Check composes a sample browse link against the host.
func (c HostChecker) Check(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	_, err := ComposeURL(c.Host, browseSegments("service", "entity"), nil)

	return err
}

// CheckHosts loads the configuration and checks the host of every stage,
// not just the current one.
func (s *Service) CheckHosts(ctx context.Context) (*ports.CheckReport, error) {
	cfg, err := s.cache.Config(ctx)
	if err != nil {
		return nil, err
	}

	registry := ports.NewCheckRegistry()

	for stage, host := range cfg.Hosts {
		if err := registry.Register(HostChecker{Stage: stage, Host: host}); err != nil {
			return nil, fmt.Errorf("registering host check: %w", err)
		}
	}

	report := registry.CheckAll(ctx)

	s.logger.DebugContext(ctx, "host checks finished",
		slog.String("status", string(report.Status)),
		slog.Int("stages", len(report.Checks)),
	)

	return report, nil
}
