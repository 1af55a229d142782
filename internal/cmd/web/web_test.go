package web

import (
	"context"
	"flag"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/abroxchat/abrox/internal/services/fingerprint/storage"
	"github.com/abroxchat/abrox/internal/services/web/app"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

type staticLister []storage.Fingerprint

func (l staticLister) GetAll(context.Context) ([]storage.Fingerprint, error) {
	return l, nil
}

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("web", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Addr() != "127.0.0.1:8080" {
		t.Fatalf("expected default addr, got %q", cfg.Addr())
	}
	if !cfg.LucideEnabled {
		t.Fatal("expected lucide enabled by default")
	}
	if cfg.AvatarProbeTimeout != 2*time.Second {
		t.Fatalf("expected default probe timeout, got %v", cfg.AvatarProbeTimeout)
	}
}

func TestParseConfigOverrides(t *testing.T) {
	t.Setenv("ABROX_WEB_PORT", "9000")
	t.Setenv("ABROX_WEB_LUCIDE_ENABLED", "false")

	fs := flag.NewFlagSet("web", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-port", "9100", "-locale", "pt-BR"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Port != 9100 {
		t.Fatalf("expected flag port, got %d", cfg.Port)
	}
	if cfg.LucideEnabled {
		t.Fatal("expected env to disable lucide")
	}
	if cfg.Locale != "pt-BR" {
		t.Fatalf("expected flag locale, got %q", cfg.Locale)
	}
}

func TestParseConfigRejectsBadEnv(t *testing.T) {
	t.Setenv("ABROX_WEB_PORT", "not-a-port")
	fs := flag.NewFlagSet("web", flag.ContinueOnError)
	if _, err := ParseConfig(fs, nil); err == nil {
		t.Fatal("expected env parse error")
	}
}

func TestNewDepsHonorsIconAndLocaleSettings(t *testing.T) {
	lister := staticLister{{ID: "fp_abc12345", Device: "Mozilla/5.0", Time: 1700000000000}}

	deps := newDeps(Config{LucideEnabled: true, Locale: "pt-BR"}, lister, zap.NewNop())
	if deps.Kit.Locale() != language.MustParse("pt-BR") {
		t.Fatalf("expected pt-BR kit, got %s", deps.Kit.Locale())
	}

	rec := httptest.NewRecorder()
	app.NewHandler(deps).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	body := rec.Body.String()
	if !strings.Contains(body, `<use href="#lucide-clock">`) {
		t.Fatal("expected lucide clock icon")
	}
	if !strings.Contains(body, "Verificado") {
		t.Fatal("expected localized verified badge")
	}

	deps = newDeps(Config{}, lister, zap.NewNop())
	rec = httptest.NewRecorder()
	app.NewHandler(deps).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if !strings.Contains(rec.Body.String(), `<i class="icon icon-clock" aria-hidden="true"></i>`) {
		t.Fatal("expected placeholder clock icon")
	}
}
