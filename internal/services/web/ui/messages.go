package ui

import (
	"strings"

	"github.com/abroxchat/abrox/internal/platform/i18n/catalog"
	"golang.org/x/text/language"
)

var supportedLocales = catalog.Default().Tags()

var localeMatcher = language.NewMatcher(supportedLocales)

// DefaultLocale returns the language used when none is configured.
func DefaultLocale() language.Tag {
	return supportedLocales[0]
}

// SupportedLocales returns the languages with translated UI strings.
func SupportedLocales() []language.Tag {
	tags := make([]language.Tag, len(supportedLocales))
	copy(tags, supportedLocales)
	return tags
}

// ParseLocale matches value against the supported languages, falling back to
// the default for empty or unknown values.
func ParseLocale(value string) language.Tag {
	value = strings.TrimSpace(value)
	if value == "" {
		return DefaultLocale()
	}
	parsed, err := language.Parse(value)
	if err != nil {
		return DefaultLocale()
	}
	_, index, confidence := localeMatcher.Match(parsed)
	if confidence == language.No {
		return DefaultLocale()
	}
	return supportedLocales[index]
}

// Message returns the catalog message for key in the kit's locale, falling
// back to the base locale and then to key itself.
func (k *Kit) Message(key string) string {
	if msg := k.printer().Sprintf(key); msg != key {
		return msg
	}
	if msg, ok := catalog.Default().Message(catalog.BaseLocale, key); ok {
		return msg
	}
	return key
}
