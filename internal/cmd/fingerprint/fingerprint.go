// Package fingerprint parses fingerprint command flags and records one
// device fingerprint.
package fingerprint

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	entrypoint "github.com/abroxchat/abrox/internal/platform/cmd"
	"github.com/abroxchat/abrox/internal/platform/id"
	"github.com/abroxchat/abrox/internal/platform/logging"
	"github.com/abroxchat/abrox/internal/platform/timeouts"
	"github.com/abroxchat/abrox/internal/services/fingerprint/fingerprintdb"
	"github.com/abroxchat/abrox/internal/services/fingerprint/storage"
	"go.uber.org/zap"
)

// Config holds fingerprint command configuration.
type Config struct {
	DBPath   string `env:"ABROX_FINGERPRINT_DB_PATH" envDefault:"data/abrox-fingerprints.db"`
	Device   string `env:"ABROX_FINGERPRINT_DEVICE"`
	LogLevel string `env:"ABROX_LOG_LEVEL"           envDefault:"info"`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	return entrypoint.LoadConfig(fs, args, func(fs *flag.FlagSet, cfg *Config) {
		fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "Path to the fingerprint SQLite database")
		fs.StringVar(&cfg.Device, "device", cfg.Device, "Device descriptor to record (defaults to the host platform)")
		fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	})
}

// Run records a fingerprint for this host and logs every stored record.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceFingerprint, func(ctx context.Context) error {
		logger, err := logging.New(cfg.LogLevel)
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()
		return record(ctx, cfg, logger)
	})
}

func record(ctx context.Context, cfg Config, logger *zap.Logger) error {
	db := fingerprintdb.New(fingerprintdb.Config{Path: cfg.DBPath}, fingerprintdb.WithLogger(logger))
	defer func() {
		if err := db.Close(); err != nil {
			logger.Warn("close fingerprint db", zap.Error(err))
		}
	}()

	initCtx, cancel := context.WithTimeout(ctx, timeouts.StorageOpen)
	err := db.Init(initCtx)
	cancel()
	if err != nil {
		logger.Warn("fingerprint db init failed", zap.String("path", cfg.DBPath), zap.Error(err))
		return fmt.Errorf("init fingerprint db: %w", err)
	}

	fingerprintID, err := id.NewFingerprintID()
	if err != nil {
		return fmt.Errorf("generate fingerprint id: %w", err)
	}
	fp := storage.Fingerprint{
		ID:     fingerprintID,
		Device: deviceDescriptor(cfg.Device),
		Time:   time.Now().UnixMilli(),
		Attributes: map[string]any{
			"os":   runtime.GOOS,
			"arch": runtime.GOARCH,
			"cpus": runtime.NumCPU(),
		},
	}

	saveCtx, cancel := context.WithTimeout(ctx, timeouts.StorageOperation)
	err = db.Save(saveCtx, fp)
	cancel()
	if err != nil {
		logger.Warn("fingerprint save failed", zap.String("id", fp.ID), zap.Error(err))
		return fmt.Errorf("save fingerprint: %w", err)
	}

	listCtx, cancel := context.WithTimeout(ctx, timeouts.StorageOperation)
	fingerprints, err := db.GetAll(listCtx)
	cancel()
	if err != nil {
		logger.Warn("fingerprint list failed", zap.Error(err))
		return fmt.Errorf("list fingerprints: %w", err)
	}

	for _, stored := range fingerprints {
		logger.Info("fingerprint",
			zap.String("id", stored.ID),
			zap.String("device", stored.Device),
			zap.Time("captured_at", stored.CapturedAt()),
			zap.Any("attributes", stored.Attributes),
		)
	}
	logger.Info("fingerprint recorded", zap.String("id", fp.ID), zap.Int("total", len(fingerprints)))
	return nil
}

func deviceDescriptor(override string) string {
	if device := strings.TrimSpace(override); device != "" {
		return device
	}
	host, err := os.Hostname()
	if err != nil || host == "" {
		host = "unknown-host"
	}
	return fmt.Sprintf("%s/%s (%s; %s)", runtime.GOOS, runtime.GOARCH, host, runtime.Version())
}
