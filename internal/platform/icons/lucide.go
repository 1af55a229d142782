package icons

import (
	"sort"
	"strings"
)

const lucideSymbolPrefix = "lucide-"

// DefaultLucideName is used when an icon name is unknown.
const DefaultLucideName = "circle"

// aliases maps chat-level intents to Lucide icon names.
var aliases = map[string]string{
	"attachment":   "paperclip",
	"avatar":       "circle-user",
	"chat":         "message-circle",
	"close":        "x",
	"delivered":    "check",
	"device":       "monitor",
	"emoji":        "smile",
	"fingerprint":  "monitor",
	"group":        "users",
	"menu":         "ellipsis-vertical",
	"message":      "message-circle",
	"notification": "bell",
	"profile":      "circle-user",
	"read":         "check-check",
	"sign-out":     "log-out",
	"time":         "clock",
	"trusted":      "shield-check",
	"verified":     "badge-check",
}

// LucideName resolves an icon name or alias to a cataloged Lucide icon name.
func LucideName(name string) (string, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return "", false
	}
	if target, ok := aliases[key]; ok {
		return target, true
	}
	if isCataloged(key) {
		return key, true
	}
	return "", false
}

// LucideNameOrDefault provides a stable Lucide name even when the name is unknown.
func LucideNameOrDefault(name string) string {
	if resolved, ok := LucideName(name); ok {
		return resolved
	}
	return DefaultLucideName
}

// LucideSymbolID returns the sprite symbol ID for a Lucide icon name.
func LucideSymbolID(name string) string {
	return lucideSymbolPrefix + name
}

// HasSymbol reports whether the embedded sprite defines the Lucide icon.
func HasSymbol(name string) bool {
	_, ok := symbolBodies[name]
	return ok
}

// LucideSprite returns the SVG sprite markup for core Lucide icons.
func LucideSprite() string {
	return lucideSprite
}

func aliasesFor(name string) []string {
	var result []string
	for alias, target := range aliases {
		if target == name {
			result = append(result, alias)
		}
	}
	sort.Strings(result)
	return result
}
