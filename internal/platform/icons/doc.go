// Package icons defines the chat icon catalog and its Lucide sprite.
//
// The catalog maps stable icon names to human-readable descriptions so that
// rendering code can ask for intent ("chat", "verified") without knowing the
// Lucide glyph behind it. Only icons with a sprite symbol are cataloged.
package icons
