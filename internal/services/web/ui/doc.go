// Package ui builds the small presentational pieces of the chat client:
// icons, avatars, the verified badge, and compact timestamps.
//
// Builders return *html.Node trees so callers can inspect or adjust them
// before rendering. Component adapts any tree to a templ.Component. None of
// the builders return errors; failures degrade to a plainer rendering and are
// logged as warnings.
package ui
