package icons

import (
	"strings"
)

// Definition describes a core icon entry.
type Definition struct {
	// Name is the Lucide icon name, e.g. "message-circle".
	Name        string
	Description string
}

var catalog = []Definition{
	{Name: "badge-check", Description: "Verified accounts and devices."},
	{Name: "bell", Description: "Notifications."},
	{Name: "check", Description: "Delivered messages."},
	{Name: "check-check", Description: "Read messages."},
	{Name: "circle", Description: "Default icon for uncategorized entries."},
	{Name: "circle-user", Description: "Profiles."},
	{Name: "clock", Description: "Message and fingerprint timestamps."},
	{Name: "ellipsis-vertical", Description: "Overflow menus."},
	{Name: "image", Description: "Image attachments."},
	{Name: "log-out", Description: "Sign out."},
	{Name: "message-circle", Description: "Chats and conversations."},
	{Name: "monitor", Description: "Devices and fingerprints."},
	{Name: "paperclip", Description: "File attachments."},
	{Name: "search", Description: "Search."},
	{Name: "send", Description: "Send message."},
	{Name: "shield-check", Description: "Trusted devices."},
	{Name: "smile", Description: "Emoji picker."},
	{Name: "user", Description: "Single user."},
	{Name: "users", Description: "Groups and rosters."},
	{Name: "x", Description: "Close and dismiss."},
}

// Catalog returns a copy of the icon catalog definitions.
func Catalog() []Definition {
	result := make([]Definition, len(catalog))
	copy(result, catalog)
	return result
}

// CatalogMarkdown renders the icon catalog as markdown.
func CatalogMarkdown() string {
	var builder strings.Builder
	builder.WriteString("# Icon Catalog\n\n")
	builder.WriteString("| Lucide name | Aliases | Description |\n")
	builder.WriteString("| --- | --- | --- |\n")
	for _, def := range catalog {
		builder.WriteString("| ")
		builder.WriteString(def.Name)
		builder.WriteString(" | ")
		builder.WriteString(strings.Join(aliasesFor(def.Name), ", "))
		builder.WriteString(" | ")
		builder.WriteString(def.Description)
		builder.WriteString(" |\n")
	}
	return builder.String()
}

func isCataloged(name string) bool {
	for _, def := range catalog {
		if def.Name == name {
			return true
		}
	}
	return false
}
