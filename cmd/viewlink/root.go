package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/jsamuelsen/viewlink/internal/adapters/settings"
	"github.com/jsamuelsen/viewlink/internal/app"
	"github.com/jsamuelsen/viewlink/internal/platform/config"
	"github.com/jsamuelsen/viewlink/internal/platform/logging"
	"github.com/jsamuelsen/viewlink/internal/platform/telemetry"
	"github.com/jsamuelsen/viewlink/internal/ports"
)

// cli holds the state shared by every command.
type cli struct {
	configDir    string
	profile      string
	settingsFile string
	stageVar     string
	stage        string

	cfg      *config.Config
	logger   *slog.Logger
	tel      *telemetry.Provider
	registry *prometheus.Registry
	svc      *app.Service
}

func newRootCmd(c *cli) *cobra.Command {
	root := &cobra.Command{
		Use:   "viewlink",
		Short: "Build view links for the services of the current stage",
		Long: `viewlink builds browse, edit and generic view links from the "view-link"
entry of the settings file, using the host of the stage named by JANIS_ENV.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&c.configDir, "config-dir", config.DefaultConfigDir, "directory holding base.yaml and profile files")
	flags.StringVarP(&c.profile, "profile", "p", "", "configuration profile to load on top of base.yaml")
	flags.StringVarP(&c.settingsFile, "settings", "s", "", "settings file holding the view link configuration")
	flags.StringVar(&c.stageVar, "stage-var", "", "environment variable naming the current stage")
	flags.StringVar(&c.stage, "stage", "", "stage to resolve instead of reading the environment")

	root.AddCommand(
		newBrowseCmd(c),
		newEditCmd(c),
		newGetCmd(c),
		newCheckCmd(c),
		newVersionCmd(),
	)

	return root
}

// setup loads the configuration and wires the link service.
func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadFrom(c.configDir, c.profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if c.settingsFile != "" {
		cfg.Links.SettingsFile = c.settingsFile
	}

	if c.stageVar != "" {
		cfg.Links.StageVariable = c.stageVar
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	c.cfg = cfg

	c.logger = logging.NewWithWriter(&logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.App.Name,
		Version: Version,
		File: logging.FileConfig{
			Enabled:    cfg.Log.File.Enabled,
			Path:       cfg.Log.File.Path,
			MaxSizeMB:  cfg.Log.File.MaxSizeMB,
			MaxBackups: cfg.Log.File.MaxBackups,
			MaxAgeDays: cfg.Log.File.MaxAgeDays,
			Compress:   cfg.Log.File.Compress,
		},
	}, cmd.ErrOrStderr())
	logging.SetDefault(c.logger)

	c.tel, err = telemetry.New(&telemetry.Config{
		Enabled:     cfg.Telemetry.Tracing,
		ServiceName: cfg.App.Name,
		Version:     Version,
		Environment: cfg.App.Environment,
		Logger:      c.logger,
	})
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}

	var metrics *telemetry.Metrics

	if cfg.Telemetry.Metrics {
		c.registry = prometheus.NewRegistry()

		metrics, err = telemetry.NewMetrics(c.registry)
		if err != nil {
			return fmt.Errorf("initializing metrics: %w", err)
		}
	}

	var stages ports.StageSource = settings.NewEnvStage(cfg.Links.StageVariable)
	if c.stage != "" {
		stages = settings.FixedStage(c.stage)
	}

	c.svc = app.NewService(
		settings.NewFileProvider(cfg.Links.SettingsFile, c.logger),
		stages,
		&app.ServiceConfig{
			SettingsKey:    cfg.Links.SettingsKey,
			Logger:         c.logger,
			Metrics:        metrics,
			TracerProvider: c.tel.TracerProvider(),
		},
	)

	cmd.SetContext(logging.WithCommand(logging.WithContext(cmd.Context(), c.logger), cmd.Name()))

	c.logger.Debug("configuration loaded",
		slog.String("profile", c.profile),
		slog.String("settings_file", cfg.Links.SettingsFile),
		slog.String("stage_variable", cfg.Links.StageVariable),
	)

	return nil
}

// teardown flushes spans and writes the metrics file. It runs after failed commands too.
func (c *cli) teardown(ctx context.Context) error {
	if c.cfg == nil {
		return nil
	}

	if err := c.tel.Shutdown(ctx); err != nil {
		c.logger.Error("telemetry shutdown error", slog.Any("error", err))
	}

	if c.registry != nil {
		if err := telemetry.WriteTextfile(c.cfg.Telemetry.MetricsFile, c.registry); err != nil {
			return err
		}
	}

	return nil
}
