package ui

import "golang.org/x/net/html"

// VerifiedBadge returns an inline badge with a green dot and a localized
// "Verified" caption.
func (k *Kit) VerifiedBadge() *html.Node {
	badge := Element("span",
		Attr("class", "verified-badge"),
		Attr("style", styleOf(
			"display:inline-flex",
			"align-items:center",
			"gap:6px",
			"color:#a7f3d0",
			"font-size:12px",
		)),
	)
	dot := Element("span",
		Attr("class", "verified-dot"),
		Attr("style", styleOf(
			"width:8px",
			"height:8px",
			"border-radius:999px",
			"background:#10b981",
			"display:inline-block",
			"box-shadow:0 0 6px rgba(16,185,129,0.3)",
		)),
	)
	caption := Append(Element("span"), Text(k.Message("ui.verified")))
	return Append(badge, dot, caption)
}
