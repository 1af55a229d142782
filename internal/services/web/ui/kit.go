package ui

import (
	"github.com/a-h/templ"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Kit renders UI pieces with a configured icon strategy, locale, and logger.
// A nil *Kit behaves like NewKit().
type Kit struct {
	icons  IconRenderer
	logger *zap.Logger
	locale language.Tag
}

// KitOption configures a Kit.
type KitOption func(*Kit)

// WithIconRenderer enables the rich icon variant.
func WithIconRenderer(renderer IconRenderer) KitOption {
	return func(k *Kit) {
		k.icons = renderer
	}
}

// WithLogger sets the logger used for rendering fallbacks.
func WithLogger(logger *zap.Logger) KitOption {
	return func(k *Kit) {
		if logger != nil {
			k.logger = logger
		}
	}
}

// WithLocale sets the language used for captions and month names.
func WithLocale(tag language.Tag) KitOption {
	return func(k *Kit) {
		k.locale = tag
	}
}

// NewKit builds a Kit. Without WithIconRenderer every icon uses the
// placeholder variant.
func NewKit(opts ...KitOption) *Kit {
	k := &Kit{
		logger: zap.NewNop(),
		locale: DefaultLocale(),
	}
	for _, opt := range opts {
		opt(k)
	}
	return k
}

// Locale returns the kit's language tag.
func (k *Kit) Locale() language.Tag {
	if k == nil {
		return DefaultLocale()
	}
	return k.locale
}

// InitIcons returns the sprite markup to embed once per page when the rich
// icon variant is active. Otherwise it renders nothing.
func (k *Kit) InitIcons() templ.Component {
	if k == nil || k.icons == nil {
		return templ.NopComponent
	}
	sprited, ok := k.icons.(interface{ Sprite() string })
	if !ok {
		return templ.NopComponent
	}
	return templ.Raw(sprited.Sprite())
}

func (k *Kit) log() *zap.Logger {
	if k == nil || k.logger == nil {
		return zap.NewNop()
	}
	return k.logger
}

func (k *Kit) printer() *message.Printer {
	return message.NewPrinter(k.Locale())
}
