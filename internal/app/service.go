// Package app contains the view link use cases.
//
// A Service resolves the host of the current stage through a ConfigCache,
// validates the inputs of each link shape and composes the final URL.
// Every failure is a *domain.ViewLinkError returned to the caller as is.
package app

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/viewlink/internal/domain"
	"github.com/jsamuelsen/viewlink/internal/platform/logging"
	"github.com/jsamuelsen/viewlink/internal/platform/telemetry"
	"github.com/jsamuelsen/viewlink/internal/ports"
)

// Service builds view links for the host of the current stage.
//
// Example usage:
//
//	settings := settings.NewFileProvider(".janiscommercerc.json", logger)
//	svc := app.NewService(settings, settings.NewEnvStage("JANIS_ENV"), &app.ServiceConfig{Logger: logger})
//
//	link, err := svc.Browse(ctx, "oms", "order", map[string]any{"status": "pending"})
type Service struct {
	cache   *ConfigCache
	logger  *slog.Logger
	metrics *telemetry.Metrics
	tracer  trace.Tracer
}

// ServiceConfig holds optional configuration for the service.
type ServiceConfig struct {
	SettingsKey    string
	Logger         *slog.Logger
	Metrics        *telemetry.Metrics
	TracerProvider trace.TracerProvider
}

// NewService creates a service reading its configuration from settings and
// its stage from stages.
func NewService(settings ports.SettingsProvider, stages ports.StageSource, cfg *ServiceConfig) *Service {
	if cfg == nil {
		cfg = &ServiceConfig{}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Service{
		cache: NewConfigCache(settings, stages, &CacheConfig{
			SettingsKey: cfg.SettingsKey,
			Logger:      logger,
			Metrics:     cfg.Metrics,
		}),
		logger:  logger.With(slog.String("component", "app.Service")),
		metrics: cfg.Metrics,
		tracer:  telemetry.Tracer(cfg.TracerProvider),
	}
}

// Browse returns {host}/{service}/{entity}/browse with params appended.
func (s *Service) Browse(ctx context.Context, service, entity, params any) (string, error) {
	return s.build(ctx, domain.KindBrowse, func() ([]string, domain.Params, error) {
		if err := ValidateBasicParams(service, entity, params); err != nil {
			return nil, nil, err
		}

		svc, _ := asString(service)
		ent, _ := asString(entity)
		p, _ := toParams(params)

		return browseSegments(svc, ent), p, nil
	})
}

// Edit returns {host}/{service}/{entity}/edit/{entityID} with params appended.
// The entity ID is checked after service, entity and params.
func (s *Service) Edit(ctx context.Context, service, entity, entityID, params any) (string, error) {
	return s.build(ctx, domain.KindEdit, func() ([]string, domain.Params, error) {
		if err := ValidateBasicParams(service, entity, params); err != nil {
			return nil, nil, err
		}

		if err := ValidateEntityID(entityID); err != nil {
			return nil, nil, err
		}

		svc, _ := asString(service)
		ent, _ := asString(entity)
		id, _ := asString(entityID)
		p, _ := toParams(params)

		return editSegments(svc, ent, id), p, nil
	})
}

// Get returns {host}/{entries joined by "/"} with params appended.
// Entries are checked before params.
func (s *Service) Get(ctx context.Context, entries, params any) (string, error) {
	return s.build(ctx, domain.KindGeneric, func() ([]string, domain.Params, error) {
		if err := ValidateEntries(entries); err != nil {
			return nil, nil, err
		}

		p, err := toParams(params)
		if err != nil {
			return nil, nil, err
		}

		return toEntries(entries), p, nil
	})
}

// Link dispatches req to Browse, Edit or Get according to its kind.
func (s *Service) Link(ctx context.Context, req domain.LinkRequest) (string, error) {
	switch req.Kind {
	case domain.KindBrowse:
		return s.Browse(ctx, req.Service, req.Entity, req.Params)
	case domain.KindEdit:
		return s.Edit(ctx, req.Service, req.Entity, req.EntityID, req.Params)
	case domain.KindGeneric, "":
		return s.Get(ctx, req.Entries, req.Params)
	default:
		// An unknown kind has no path shape to validate against.
		return "", domain.NewError(domain.CodeInvalidEntries, "Invalid link kind: "+string(req.Kind))
	}
}

// Host returns the resolved host of the current stage.
func (s *Service) Host(ctx context.Context) (string, error) {
	return s.cache.Host(ctx)
}

// Stage returns the stage of the resolved host, if any.
func (s *Service) Stage() (string, bool) {
	return s.cache.Stage()
}

// Configuration returns the loaded view link configuration.
func (s *Service) Configuration(ctx context.Context) (*domain.Configuration, error) {
	return s.cache.Config(ctx)
}

// Reset clears the cached configuration and host. Intended for tests.
func (s *Service) Reset() {
	s.cache.Reset()
}

func (s *Service) build(
	ctx context.Context,
	kind domain.Kind,
	prepare func() ([]string, domain.Params, error),
) (string, error) {
	ctx, span := s.tracer.Start(ctx, "viewlink."+string(kind),
		trace.WithAttributes(attribute.String("viewlink.kind", string(kind))),
	)
	defer span.End()

	if _, ok := logging.Lookup(ctx); !ok {
		ctx = logging.WithContext(ctx, s.logger)
	}

	ctx = logging.WithLinkKind(ctx, string(kind))

	link, err := s.compose(ctx, prepare)

	// The stage is known once the host has been resolved.
	if stage, ok := s.cache.Stage(); ok {
		ctx = logging.WithStage(ctx, stage)
		span.SetAttributes(attribute.String("viewlink.stage", stage))
	}

	logger := logging.FromContext(ctx)

	if err != nil {
		code, _ := domain.CodeOf(err)

		span.RecordError(err)
		span.SetStatus(codes.Error, code.String())
		s.metrics.LinkFailed(string(kind), code.String())

		logger.WarnContext(ctx, "view link failed",
			slog.String("code", code.String()),
			slog.String("error", err.Error()),
		)

		return "", err
	}

	span.SetAttributes(attribute.String("viewlink.url", link))
	s.metrics.LinkBuilt(string(kind))

	logger.DebugContext(ctx, "view link built", slog.String("url", link))

	return link, nil
}

func (s *Service) compose(ctx context.Context, prepare func() ([]string, domain.Params, error)) (string, error) {
	host, err := s.cache.Host(ctx)
	if err != nil {
		return "", err
	}

	segments, params, err := prepare()
	if err != nil {
		return "", err
	}

	return ComposeURL(host, segments, params)
}
