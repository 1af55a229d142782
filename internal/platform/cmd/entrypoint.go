package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/abroxchat/abrox/internal/platform/config"
	"github.com/abroxchat/abrox/internal/platform/otel"
)

const otelShutdownTimeout = 5 * time.Second

// Service names used for telemetry resources and log prefixes.
const (
	ServiceFingerprint = "fingerprint"
	ServiceWeb         = "web"
)

// LoadConfig builds a command config in three layers: the optional .env
// file, then ABROX_* environment variables, then the flags registered by bind.
// bind sees the env-derived values and should use them as flag defaults.
func LoadConfig[T any](fs *flag.FlagSet, args []string, bind func(fs *flag.FlagSet, cfg *T)) (T, error) {
	var cfg, zero T
	if fs == nil {
		return zero, errors.New("flag parser is required")
	}
	if err := config.LoadDotEnv(config.DefaultDotEnvFile); err != nil {
		return zero, err
	}
	if err := config.ParseEnv(&cfg); err != nil {
		return zero, err
	}
	if bind != nil {
		bind(fs, &cfg)
	}
	if args == nil {
		args = []string{}
	}
	if err := fs.Parse(args); err != nil {
		return zero, err
	}
	return cfg, nil
}

// RunWithTelemetry sets up tracing for service, runs run, and flushes spans
// before returning run's error.
func RunWithTelemetry(ctx context.Context, service string, run func(context.Context) error) error {
	service = strings.TrimSpace(service)
	if service == "" {
		return fmt.Errorf("service name is required")
	}
	if run == nil {
		return fmt.Errorf("run function is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	shutdown, err := otel.Setup(ctx, service)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), otelShutdownTimeout)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			log.Printf("%s otel shutdown: %v", service, err)
		}
	}()
	return run(ctx)
}
