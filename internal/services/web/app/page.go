package app

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"
	"github.com/abroxchat/abrox/internal/platform/branding"
	"github.com/abroxchat/abrox/internal/platform/icons"
	"github.com/abroxchat/abrox/internal/services/fingerprint/storage"
	"github.com/abroxchat/abrox/internal/services/web/ui"
	"golang.org/x/net/html"
)

// page wraps body in a minimal HTML document and embeds the icon sprite
// ahead of the content.
func page(kit *ui.Kit, title string, body *html.Node) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		head := `<!DOCTYPE html><html lang="` + html.EscapeString(kit.Locale().String()) + `">` +
			`<head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1">` +
			`<title>` + html.EscapeString(branding.PageTitle(title)) + `</title></head><body>`
		if _, err := io.WriteString(w, head); err != nil {
			return err
		}
		if err := kit.InitIcons().Render(ctx, w); err != nil {
			return err
		}
		if err := ui.Component(body).Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, "</body></html>")
		return err
	})
}

// roster lists every fingerprint. The most recently captured record is marked
// as the online, verified device.
func (h *handler) roster(fingerprints []storage.Fingerprint) *html.Node {
	root := ui.Element("main", ui.Attr("class", "roster"))
	ui.Append(root, ui.Append(ui.Element("h1"), h.kit.Icon("device", nil), ui.Text(" "+h.kit.Message("web.roster.title"))))

	if len(fingerprints) == 0 {
		return ui.Append(root, ui.Append(ui.Element("p", ui.Attr("class", "roster-empty")), ui.Text(h.kit.Message("web.roster.empty"))))
	}

	newest := 0
	for i, fp := range fingerprints {
		if fp.Time > fingerprints[newest].Time {
			newest = i
		}
	}

	list := ui.Element("ul", ui.Attr("class", "roster-list"))
	for i, fp := range fingerprints {
		isNewest := i == newest

		device := fp.Device
		if device == "" {
			device = h.kit.Message("web.roster.unknown_device")
		}
		details := ui.Append(ui.Element("div", ui.Attr("class", "roster-details")),
			ui.Append(ui.Element("span", ui.Attr("class", "roster-device")), ui.Text(device)),
			ui.Append(ui.Element("code", ui.Attr("class", "roster-id")), ui.Text(fp.ID)),
		)
		if isNewest {
			ui.Append(details, h.kit.VerifiedBadge())
		}
		when := ui.Append(ui.Element("time",
			ui.Attr("class", "roster-time"),
			ui.Attr("datetime", fp.CapturedAt().Format("2006-01-02T15:04:05.000Z07:00")),
			ui.Attr("data-ms", strconv.FormatInt(fp.Time, 10)),
		),
			h.kit.Icon("clock", map[string]string{"aria-hidden": "true"}),
			ui.Text(" "+h.kit.FormatTimestamp(fp.Time)),
		)

		item := ui.Element("li", ui.Attr("class", "roster-row"), ui.Attr("data-id", fp.ID))
		if isNewest {
			ui.SetAttr(item, "data-presence", ui.StatusOnline)
		}
		ui.Append(item, h.kit.Avatar("", ui.AvatarOptions{}), details, when)
		ui.Append(list, item)
	}
	return ui.Append(root, list)
}

// iconCatalog renders one table row per cataloged icon with the glyph the kit
// produces for it and the sprite symbol it resolves to.
func (h *handler) iconCatalog(definitions []icons.Definition) *html.Node {
	root := ui.Element("main", ui.Attr("class", "icon-catalog"))
	ui.Append(root, ui.Append(ui.Element("h1"), ui.Text(h.kit.Message("web.icons.title"))))

	header := ui.Element("tr")
	for _, key := range []string{"web.icons.name", "web.icons.symbol", "web.icons.description"} {
		ui.Append(header, ui.Append(ui.Element("th", ui.Attr("scope", "col")), ui.Text(h.kit.Message(key))))
	}
	body := ui.Element("tbody")
	for _, def := range definitions {
		row := ui.Element("tr", ui.Attr("data-icon", def.Name))
		ui.Append(row,
			ui.Append(ui.Element("td"),
				h.kit.Icon(def.Name, map[string]string{"aria-hidden": "true"}),
				ui.Text(" "),
				ui.Append(ui.Element("code"), ui.Text(def.Name)),
			),
			ui.Append(ui.Element("td"),
				ui.Append(ui.Element("code"), ui.Text(icons.LucideSymbolID(icons.LucideNameOrDefault(def.Name)))),
			),
			ui.Append(ui.Element("td"), ui.Text(def.Description)),
		)
		ui.Append(body, row)
	}
	table := ui.Append(ui.Element("table", ui.Attr("class", "icon-table")),
		ui.Append(ui.Element("thead"), header),
		body,
	)
	return ui.Append(root, table)
}
