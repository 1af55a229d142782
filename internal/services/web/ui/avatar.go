package ui

import (
	"strconv"

	"go.uber.org/zap"
	"golang.org/x/net/html"
)

const (
	// DefaultAvatarSize is the avatar edge length in pixels when none is set.
	DefaultAvatarSize = 40
	// PlaceholderGlyph stands in for a missing or broken avatar image.
	PlaceholderGlyph = "👤"
)

// Presence values understood by the avatar status indicator.
const (
	StatusOnline = "online"
	StatusIdle   = "idle"
)

// AvatarOptions adjusts an avatar rendering.
type AvatarOptions struct {
	// Size is the edge length in pixels; values <= 0 use DefaultAvatarSize.
	Size     int
	Verified bool
	// Status adds a presence indicator when non-empty.
	Status string
}

// Avatar returns a circular avatar wrapper. Without a URL the wrapper holds
// only the placeholder glyph and ignores the overlays.
func (k *Kit) Avatar(url string, opts AvatarOptions) *html.Node {
	size := opts.Size
	if size <= 0 {
		size = DefaultAvatarSize
	}
	px := strconv.Itoa(size) + "px"
	wrapper := Element("div",
		Attr("class", "avatar"),
		Attr("data-size", strconv.Itoa(size)),
		Attr("style", styleOf(
			"width:"+px,
			"height:"+px,
			"min-width:"+px,
			"border-radius:999px",
			"overflow:hidden",
			"display:inline-block",
			"background:linear-gradient(180deg,#0b1220,#071226)",
			"box-shadow:0 1px 2px rgba(0,0,0,0.4)",
			"vertical-align:middle",
		)),
	)

	if url == "" {
		return Append(wrapper, avatarPlaceholder(size))
	}

	img := Element("img",
		Attr("src", url),
		Attr("alt", "avatar"),
		Attr("style", "width:100%;height:100%;object-fit:cover"),
		Attr("onerror", "this.onerror=null;this.parentNode.innerHTML="+strconv.Quote(RenderString(avatarPlaceholder(size)))),
	)
	Append(wrapper, img)

	indicator := strconv.Itoa(max(8, size/5)) + "px"
	if opts.Verified {
		badge := Element("span",
			Attr("class", "avatar-badge verified"),
			Attr("title", k.Message("ui.verified")),
			Attr("style", styleOf(
				"position:absolute",
				"transform:translate(30%, 30%)",
				"right:-6px",
				"bottom:-6px",
				"background:#10b981",
				"width:"+indicator,
				"height:"+indicator,
				"border-radius:999px",
				"border:2px solid rgba(8,10,12,0.6)",
			)),
		)
		Append(wrapper, badge)
	}
	if opts.Status != "" {
		status := Element("span",
			Attr("class", "avatar-status"),
			Attr("title", opts.Status),
			Attr("style", styleOf(
				"position:absolute",
				"left:6px",
				"bottom:-4px",
				"width:"+indicator,
				"height:"+indicator,
				"border-radius:999px",
				"border:2px solid rgba(8,10,12,0.6)",
				"background:"+statusColor(opts.Status),
			)),
		)
		Append(wrapper, status)
	}
	if opts.Verified || opts.Status != "" {
		style, _ := GetAttr(wrapper, "style")
		SetAttr(wrapper, "style", style+";position:relative")
	}
	return wrapper
}

// MarkAvatarLoadFailed replaces the contents of an avatar wrapper with the
// placeholder glyph. Overlays are removed along with the image. Nodes that
// are not avatar wrappers are left untouched.
func MarkAvatarLoadFailed(avatar *html.Node) {
	if avatar == nil || !HasClass(avatar, "avatar") {
		return
	}
	size := DefaultAvatarSize
	if raw, ok := GetAttr(avatar, "data-size"); ok {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			size = parsed
		}
	}
	RemoveChildren(avatar)
	Append(avatar, avatarPlaceholder(size))
}

func (k *Kit) markAvatarFailed(avatar *html.Node, url string) {
	k.log().Warn("avatar image failed to load", zap.String("url", url))
	MarkAvatarLoadFailed(avatar)
}

func avatarPlaceholder(size int) *html.Node {
	placeholder := Element("div",
		Attr("class", "avatar-placeholder"),
		Attr("style", styleOf(
			"width:100%",
			"height:100%",
			"display:flex",
			"align-items:center",
			"justify-content:center",
			"color:#9aa4b2",
			"font-size:"+strconv.Itoa(max(10, size/3))+"px",
		)),
	)
	return Append(placeholder, Text(PlaceholderGlyph))
}

func statusColor(status string) string {
	switch status {
	case StatusOnline:
		return "#34d399"
	case StatusIdle:
		return "#f59e0b"
	default:
		return "#9aa4b2"
	}
}
