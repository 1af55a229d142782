// Package web parses web command flags and launches the roster service.
package web

import (
	"context"
	"flag"
	"fmt"
	"net"
	"strconv"
	"time"

	entrypoint "github.com/abroxchat/abrox/internal/platform/cmd"
	"github.com/abroxchat/abrox/internal/platform/logging"
	"github.com/abroxchat/abrox/internal/platform/timeouts"
	"github.com/abroxchat/abrox/internal/services/fingerprint/fingerprintdb"
	"github.com/abroxchat/abrox/internal/services/web/app"
	"github.com/abroxchat/abrox/internal/services/web/ui"
	"go.uber.org/zap"
)

// Config holds web command configuration.
type Config struct {
	Host               string        `env:"ABROX_WEB_HOST"                 envDefault:"127.0.0.1"`
	Port               int           `env:"ABROX_WEB_PORT"                 envDefault:"8080"`
	DBPath             string        `env:"ABROX_FINGERPRINT_DB_PATH"      envDefault:"data/abrox-fingerprints.db"`
	LucideEnabled      bool          `env:"ABROX_WEB_LUCIDE_ENABLED"       envDefault:"true"`
	Locale             string        `env:"ABROX_WEB_LOCALE"               envDefault:"en"`
	AvatarProbeTimeout time.Duration `env:"ABROX_WEB_AVATAR_PROBE_TIMEOUT" envDefault:"2s"`
	LogLevel           string        `env:"ABROX_LOG_LEVEL"                envDefault:"info"`
}

// Addr returns the listen address.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	return entrypoint.LoadConfig(fs, args, func(fs *flag.FlagSet, cfg *Config) {
		fs.StringVar(&cfg.Host, "host", cfg.Host, "The web server host")
		fs.IntVar(&cfg.Port, "port", cfg.Port, "The web server port")
		fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "Path to the fingerprint SQLite database")
		fs.BoolVar(&cfg.LucideEnabled, "lucide", cfg.LucideEnabled, "Render icons from the embedded Lucide sprite")
		fs.StringVar(&cfg.Locale, "locale", cfg.Locale, "UI language (en, pt-BR)")
		fs.DurationVar(&cfg.AvatarProbeTimeout, "avatar-probe-timeout", cfg.AvatarProbeTimeout, "Timeout for server-side avatar checks")
		fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	})
}

// Run starts the web service and blocks until ctx ends.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceWeb, func(ctx context.Context) error {
		logger, err := logging.New(cfg.LogLevel)
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		db := fingerprintdb.New(fingerprintdb.Config{Path: cfg.DBPath}, fingerprintdb.WithLogger(logger))
		defer func() {
			if err := db.Close(); err != nil {
				logger.Warn("close fingerprint db", zap.Error(err))
			}
		}()
		initCtx, cancel := context.WithTimeout(ctx, timeouts.StorageOpen)
		err = db.Init(initCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("init fingerprint db: %w", err)
		}

		server, err := app.NewServer(cfg.Addr(), app.NewHandler(newDeps(cfg, db, logger)), logger)
		if err != nil {
			return err
		}
		return server.ListenAndServe(ctx)
	})
}

func newDeps(cfg Config, fingerprints app.Lister, logger *zap.Logger) app.Deps {
	kitOpts := []ui.KitOption{
		ui.WithLogger(logger),
		ui.WithLocale(ui.ParseLocale(cfg.Locale)),
	}
	if cfg.LucideEnabled {
		kitOpts = append(kitOpts, ui.WithIconRenderer(ui.NewLucideRenderer()))
	}
	return app.Deps{
		Fingerprints: fingerprints,
		Kit:          ui.NewKit(kitOpts...),
		Probe:        ui.NewHTTPAvatarProbe(nil, cfg.AvatarProbeTimeout),
		Logger:       logger,
	}
}
