// Package branding holds product naming shared by every surface.
package branding

// AppName is the user-facing product name.
const AppName = "Abrox"

// PageTitle formats a page title with the product name suffix.
func PageTitle(title string) string {
	if title == "" {
		return AppName
	}
	return title + " | " + AppName
}
