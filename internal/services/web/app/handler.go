package app

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/a-h/templ"
	apperrors "github.com/abroxchat/abrox/internal/platform/errors"
	"github.com/abroxchat/abrox/internal/platform/icons"
	"github.com/abroxchat/abrox/internal/services/fingerprint/storage"
	"github.com/abroxchat/abrox/internal/services/web/ui"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Lister reads every stored fingerprint.
type Lister interface {
	GetAll(ctx context.Context) ([]storage.Fingerprint, error)
}

// Deps wires the handler to its collaborators. Kit and Logger default to
// a placeholder-only kit and a no-op logger; Probe may be nil to skip
// server-side avatar checks.
type Deps struct {
	Fingerprints Lister
	Kit          *ui.Kit
	Probe        ui.AvatarProbe
	Logger       *zap.Logger
}

type handler struct {
	fingerprints Lister
	kit          *ui.Kit
	probe        ui.AvatarProbe
	logger       *zap.Logger
}

// NewHandler builds the HTTP routes.
func NewHandler(deps Deps) http.Handler {
	h := &handler{
		fingerprints: deps.Fingerprints,
		kit:          deps.Kit,
		probe:        deps.Probe,
		logger:       deps.Logger,
	}
	if h.kit == nil {
		h.kit = ui.NewKit()
	}
	if h.logger == nil {
		h.logger = zap.NewNop()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger(h.logger))
	r.Use(middleware.Recoverer)

	r.Get("/", h.handleRoster)
	r.Get("/healthz", h.handleHealth)
	r.Get("/icons", h.handleIcons)
	r.Get("/icons.md", h.handleIconsMarkdown)
	r.Get("/fragments/avatar", h.handleAvatar)
	r.Get("/fragments/icon/{name}", h.handleIcon)
	return r
}

func (h *handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

func (h *handler) handleRoster(w http.ResponseWriter, r *http.Request) {
	if h.fingerprints == nil {
		h.fail(w, r, apperrors.New(apperrors.CodeStoreUninitialized, "fingerprint db not configured"))
		return
	}
	fingerprints, err := h.fingerprints.GetAll(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.render(w, r, page(h.kit, h.kit.Message("web.roster.title"), h.roster(fingerprints)))
}

func (h *handler) handleIcons(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, page(h.kit, h.kit.Message("web.icons.title"), h.iconCatalog(icons.Catalog())))
}

func (h *handler) handleIconsMarkdown(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	_, _ = w.Write([]byte(icons.CatalogMarkdown()))
}

func (h *handler) handleAvatar(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	opts := ui.AvatarOptions{Status: strings.TrimSpace(query.Get("status"))}
	if raw := strings.TrimSpace(query.Get("size")); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil || size <= 0 {
			h.fail(w, r, apperrors.WithMetadata(apperrors.CodeInvalidRequest, "size must be a positive integer", map[string]string{"Size": raw}))
			return
		}
		opts.Size = size
	}
	if raw := strings.TrimSpace(query.Get("verified")); raw != "" {
		verified, err := strconv.ParseBool(raw)
		if err != nil {
			h.fail(w, r, apperrors.WithMetadata(apperrors.CodeInvalidRequest, "verified must be a boolean", map[string]string{"Verified": raw}))
			return
		}
		opts.Verified = verified
	}
	avatar := h.kit.ResolveAvatar(r.Context(), h.probe, strings.TrimSpace(query.Get("url")), opts)
	h.render(w, r, ui.Component(avatar))
}

func (h *handler) handleIcon(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	var attrs map[string]string
	if label := strings.TrimSpace(r.URL.Query().Get("label")); label != "" {
		attrs = map[string]string{"aria-label": label}
	}
	h.render(w, r, ui.Component(h.kit.Icon(name, attrs)))
}

func (h *handler) render(w http.ResponseWriter, r *http.Request, component templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := component.Render(r.Context(), w); err != nil {
		h.logger.Warn("render response", zap.String("path", r.URL.Path), zap.Error(err))
	}
}

func (h *handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := apperrors.HTTPStatusOf(err)
	h.logger.Warn("request failed",
		zap.String("path", r.URL.Path),
		zap.String("code", string(apperrors.CodeOf(err))),
		zap.Int("status", status),
		zap.Error(err),
	)
	message := http.StatusText(status)
	if status == http.StatusBadRequest {
		message = err.Error()
	}
	http.Error(w, message, status)
}

func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			defer func() {
				logger.Info("http request",
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Int("status", ww.Status()),
					zap.Int("bytes", ww.BytesWritten()),
					zap.Duration("duration", time.Since(start)),
					zap.String("request_id", middleware.GetReqID(r.Context())),
				)
			}()
			next.ServeHTTP(ww, r)
		})
	}
}
