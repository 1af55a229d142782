package ui

import (
	"fmt"
	"sort"

	apperrors "github.com/abroxchat/abrox/internal/platform/errors"
	"github.com/abroxchat/abrox/internal/platform/icons"
	"go.uber.org/zap"
	"golang.org/x/net/html"
)

// IconRenderer produces the rich variant of an icon.
type IconRenderer interface {
	RenderIcon(name string) (*html.Node, error)
}

// LucideRenderer renders icons as references into the embedded Lucide sprite.
type LucideRenderer struct{}

// NewLucideRenderer returns a renderer backed by the embedded sprite.
func NewLucideRenderer() LucideRenderer {
	return LucideRenderer{}
}

// RenderIcon returns an svg element that uses the sprite symbol for name.
func (LucideRenderer) RenderIcon(name string) (*html.Node, error) {
	resolved, ok := icons.LucideName(name)
	if !ok || !icons.HasSymbol(resolved) {
		return nil, apperrors.WithMetadata(
			apperrors.CodeIconUnavailable,
			fmt.Sprintf("icon %q is not in the sprite", name),
			map[string]string{"Name": name},
		)
	}
	svg := Element("svg",
		Attr("class", "lucide lucide-"+resolved),
		Attr("width", "24"),
		Attr("height", "24"),
		Attr("aria-hidden", "true"),
	)
	use := Element("use", Attr("href", "#"+icons.LucideSymbolID(resolved)))
	return Append(svg, use), nil
}

// Sprite returns the sprite markup referenced by RenderIcon.
func (LucideRenderer) Sprite() string {
	return icons.LucideSprite()
}

// Icon returns the rich icon when a renderer is configured and succeeds,
// otherwise an <i class="icon icon-NAME"> placeholder. attrs are applied to
// whichever element is produced.
func (k *Kit) Icon(name string, attrs map[string]string) *html.Node {
	node := k.richIcon(name)
	if node == nil {
		node = Element("i", Attr("class", "icon icon-"+name))
	}
	applyAttrs(node, attrs)
	return node
}

func (k *Kit) richIcon(name string) (node *html.Node) {
	if k == nil || k.icons == nil {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			k.log().Warn("icon renderer panicked", zap.String("icon", name), zap.Any("panic", r))
			node = nil
		}
	}()
	rendered, err := k.icons.RenderIcon(name)
	if err != nil {
		k.log().Warn("icon fell back to placeholder", zap.String("icon", name), zap.Error(err))
		return nil
	}
	return rendered
}

func applyAttrs(node *html.Node, attrs map[string]string) {
	if len(attrs) == 0 {
		return
	}
	keys := make([]string, 0, len(attrs))
	for key := range attrs {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		SetAttr(node, key, attrs[key])
	}
}
