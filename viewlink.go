// Package viewlink builds navigable URLs ("view links") for the services of a
// multi-service application.
//
// The host of every deployment stage comes from the "view-link" entry of a
// settings file and the current stage from an environment variable:
//
//	{"view-link": {"hosts": {"local": "http://localhost:8080", "qa": "https://app.janisqa.in"}}}
//
// With JANIS_ENV=local:
//
//	viewlink.GetBrowse("oms", "order", nil)                       // http://localhost:8080/oms/order/browse
//	viewlink.GetEdit("oms", "order", "42", nil)                   // http://localhost:8080/oms/order/edit/42
//	viewlink.Get([]string{"oms", "dashboard"}, map[string]any{"foo": "bar"}) // http://localhost:8080/oms/dashboard?foo=bar
//
// Every failure is an *Error carrying one Code.
package viewlink

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/viewlink/internal/adapters/settings"
	"github.com/jsamuelsen/viewlink/internal/app"
	"github.com/jsamuelsen/viewlink/internal/domain"
	"github.com/jsamuelsen/viewlink/internal/platform/telemetry"
	"github.com/jsamuelsen/viewlink/internal/ports"
)

// Defaults of the collaborators used when no option overrides them.
const (
	DefaultSettingsFile  = ".janiscommercerc.json"
	DefaultSettingsKey   = app.DefaultSettingsKey
	DefaultStageVariable = "JANIS_ENV"
)

type (
	// Error is the error returned by every operation.
	Error = domain.ViewLinkError
	// Code identifies the failure category of an Error.
	Code = domain.Code
	// Kind names a link shape.
	Kind = domain.Kind
	// Param is one query-string pair.
	Param = domain.Param
	// Params is an ordered list of query-string pairs that may repeat keys.
	Params = domain.Params
	// LinkRequest describes one link to build.
	LinkRequest = domain.LinkRequest
	// Configuration is the validated stage to host mapping.
	Configuration = domain.Configuration
	// SettingsProvider looks up the raw view link configuration.
	SettingsProvider = ports.SettingsProvider
	// StageSource reads the current deployment stage.
	StageSource = ports.StageSource
	// CheckReport holds the result of checking every configured host.
	CheckReport = ports.CheckReport
	// CheckResult is the result for one stage.
	CheckResult = ports.CheckResult
)

// Error codes.
const (
	CodeConfigNotFound       = domain.CodeConfigNotFound
	CodeInvalidConfig        = domain.CodeInvalidConfig
	CodeInvalidService       = domain.CodeInvalidService
	CodeInvalidEntity        = domain.CodeInvalidEntity
	CodeInvalidEntityID      = domain.CodeInvalidEntityID
	CodeInvalidParams        = domain.CodeInvalidParams
	CodeInvalidEntries       = domain.CodeInvalidEntries
	CodeNoStageName          = domain.CodeNoStageName
	CodeInvalidHostsInConfig = domain.CodeInvalidHostsInConfig
	CodeHostNotFound         = domain.CodeHostNotFound
	CodeURLError             = domain.CodeURLError
)

// Link kinds.
const (
	KindBrowse  = domain.KindBrowse
	KindEdit    = domain.KindEdit
	KindGeneric = domain.KindGeneric
)

// CodeOf extracts the code of a view link error.
func CodeOf(err error) (Code, bool) {
	return domain.CodeOf(err)
}

type options struct {
	settings       ports.SettingsProvider
	settingsFile   string
	stages         ports.StageSource
	settingsKey    string
	logger         *slog.Logger
	registerer     prometheus.Registerer
	tracerProvider trace.TracerProvider
}

// Option configures a Linker.
type Option func(*options)

// WithSettings sets the settings provider. Defaults to the JSON file DefaultSettingsFile.
func WithSettings(p SettingsProvider) Option {
	return func(o *options) {
		o.settings = p
		o.settingsFile = ""
	}
}

// WithSettingsFile reads settings from a JSON or YAML file.
func WithSettingsFile(path string) Option {
	return func(o *options) {
		o.settings = nil
		o.settingsFile = path
	}
}

// WithSettingsMap serves settings from an in-memory map.
func WithSettingsMap(values map[string]any) Option {
	return WithSettings(settings.NewStaticProvider(values))
}

// WithSettingsKey overrides DefaultSettingsKey.
func WithSettingsKey(key string) Option {
	return func(o *options) { o.settingsKey = key }
}

// WithStage sets the stage source. Defaults to the DefaultStageVariable environment variable.
func WithStage(s StageSource) Option {
	return func(o *options) { o.stages = s }
}

// WithStageVariable reads the stage from the named environment variable.
func WithStageVariable(name string) Option {
	return func(o *options) { o.stages = settings.NewEnvStage(name) }
}

// WithFixedStage always resolves the given stage.
func WithFixedStage(stage string) Option {
	return func(o *options) { o.stages = settings.FixedStage(stage) }
}

// WithLogger sets the structured logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithMetrics registers link counters with reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(o *options) { o.registerer = reg }
}

// WithTracerProvider sets the tracer provider. Defaults to the global provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *options) { o.tracerProvider = tp }
}

// Linker builds view links. It caches the configuration and the host of the
// current stage after the first successful resolution.
type Linker struct {
	svc *app.Service
}

// New creates a Linker.
func New(opts ...Option) (*Linker, error) {
	o := &options{settingsFile: DefaultSettingsFile}
	for _, opt := range opts {
		opt(o)
	}

	if o.logger == nil {
		o.logger = slog.Default()
	}

	if o.settings == nil {
		o.settings = settings.NewFileProvider(o.settingsFile, o.logger)
	}

	if o.stages == nil {
		o.stages = settings.NewEnvStage(DefaultStageVariable)
	}

	var metrics *telemetry.Metrics

	if o.registerer != nil {
		m, err := telemetry.NewMetrics(o.registerer)
		if err != nil {
			return nil, fmt.Errorf("creating metrics: %w", err)
		}

		metrics = m
	}

	svc := app.NewService(o.settings, o.stages, &app.ServiceConfig{
		SettingsKey:    o.settingsKey,
		Logger:         o.logger,
		Metrics:        metrics,
		TracerProvider: o.tracerProvider,
	})

	return &Linker{svc: svc}, nil
}

// GetBrowse returns {host}/{service}/{entity}/browse with params appended.
func (l *Linker) GetBrowse(service, entity, params any) (string, error) {
	return l.svc.Browse(context.Background(), service, entity, params)
}

// GetEdit returns {host}/{service}/{entity}/edit/{entityID} with params appended.
func (l *Linker) GetEdit(service, entity, entityID, params any) (string, error) {
	return l.svc.Edit(context.Background(), service, entity, entityID, params)
}

// Get returns {host}/{entries joined by "/"} with params appended.
func (l *Linker) Get(entries, params any) (string, error) {
	return l.svc.Get(context.Background(), entries, params)
}

// Link builds the link described by req.
func (l *Linker) Link(ctx context.Context, req LinkRequest) (string, error) {
	return l.svc.Link(ctx, req)
}

// Host returns the host of the current stage.
func (l *Linker) Host(ctx context.Context) (string, error) {
	return l.svc.Host(ctx)
}

// Stage returns the stage the host was resolved for.
func (l *Linker) Stage() (string, bool) {
	return l.svc.Stage()
}

// Configuration returns the validated configuration.
func (l *Linker) Configuration(ctx context.Context) (*Configuration, error) {
	return l.svc.Configuration(ctx)
}

// CheckHosts checks the host of every configured stage.
func (l *Linker) CheckHosts(ctx context.Context) (*CheckReport, error) {
	return l.svc.CheckHosts(ctx)
}

// Reset clears the cached configuration and host. Intended for tests.
func (l *Linker) Reset() {
	l.svc.Reset()
}

var (
	defaultMu     sync.Mutex
	defaultLinker *Linker
)

// Default returns the process-wide Linker, creating it on first use with the
// default settings file and stage variable.
func Default() *Linker {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	if defaultLinker == nil {
		// New only fails when a metrics registerer is given.
		defaultLinker, _ = New()
	}

	return defaultLinker
}

// SetDefault replaces the process-wide Linker.
func SetDefault(l *Linker) {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	defaultLinker = l
}

// ResetDefault drops the process-wide Linker and its cache. Intended for tests.
func ResetDefault() {
	SetDefault(nil)
}

// GetBrowse builds a browse link with the default Linker.
func GetBrowse(service, entity, params any) (string, error) {
	return Default().GetBrowse(service, entity, params)
}

// GetEdit builds an edit link with the default Linker.
func GetEdit(service, entity, entityID, params any) (string, error) {
	return Default().GetEdit(service, entity, entityID, params)
}

// Get builds a generic link with the default Linker.
func Get(entries, params any) (string, error) {
	return Default().Get(entries, params)
}
