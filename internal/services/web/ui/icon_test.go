package ui

import (
	"errors"
	"testing"

	"github.com/sebdah/goldie/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/net/html"
)

type panickingRenderer struct{}

func (panickingRenderer) RenderIcon(string) (*html.Node, error) {
	panic("renderer exploded")
}

type failingRenderer struct{}

func (failingRenderer) RenderIcon(string) (*html.Node, error) {
	return nil, errors.New("boom")
}

func TestIconPlaceholderGolden(t *testing.T) {
	kit := NewKit()
	got := RenderString(kit.Icon("send", map[string]string{"aria-label": "Send"}))

	g := goldie.New(t)
	g.Assert(t, "icon_placeholder", []byte(got))
}

func TestIconLucideGolden(t *testing.T) {
	kit := NewKit(WithIconRenderer(NewLucideRenderer()))
	got := RenderString(kit.Icon("chat", map[string]string{"aria-label": "Chat"}))

	g := goldie.New(t)
	g.Assert(t, "icon_lucide", []byte(got))
}

func TestIconFallsBackAndLogs(t *testing.T) {
	tests := []struct {
		name     string
		renderer IconRenderer
		icon     string
		message  string
	}{
		{name: "unknown lucide icon", renderer: NewLucideRenderer(), icon: "rocket", message: "icon fell back to placeholder"},
		{name: "renderer error", renderer: failingRenderer{}, icon: "send", message: "icon fell back to placeholder"},
		{name: "renderer panic", renderer: panickingRenderer{}, icon: "send", message: "icon renderer panicked"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.WarnLevel)
			kit := NewKit(WithIconRenderer(tc.renderer), WithLogger(zap.New(core)))

			node := kit.Icon(tc.icon, nil)
			if node.Data != "i" {
				t.Fatalf("expected placeholder <i>, got <%s>", node.Data)
			}
			if class, _ := GetAttr(node, "class"); class != "icon icon-"+tc.icon {
				t.Fatalf("class = %q", class)
			}
			entries := logs.FilterMessage(tc.message).All()
			if len(entries) != 1 {
				t.Fatalf("expected one %q warning, got %d", tc.message, len(entries))
			}
		})
	}
}

func TestIconAttributesAppliedInSortedOrder(t *testing.T) {
	kit := NewKit()
	node := kit.Icon("bell", map[string]string{
		"title":      "Alerts",
		"aria-label": "Alerts",
		"data-count": "3",
	})

	want := []string{"class", "aria-label", "data-count", "title"}
	if len(node.Attr) != len(want) {
		t.Fatalf("expected %d attributes, got %d", len(want), len(node.Attr))
	}
	for i, key := range want {
		if node.Attr[i].Key != key {
			t.Fatalf("attr[%d] = %q, want %q", i, node.Attr[i].Key, key)
		}
	}
}

func TestIconAttributeOverridesClass(t *testing.T) {
	kit := NewKit(WithIconRenderer(NewLucideRenderer()))
	node := kit.Icon("send", map[string]string{"class": "btn-icon"})
	if class, _ := GetAttr(node, "class"); class != "btn-icon" {
		t.Fatalf("class = %q, want btn-icon", class)
	}
}

func TestNilKitIconUsesPlaceholder(t *testing.T) {
	var kit *Kit
	if got := RenderString(kit.Icon("x", nil)); got != `<i class="icon icon-x"></i>` {
		t.Fatalf("unexpected icon: %s", got)
	}
}

func TestLucideRendererUnknownIconCode(t *testing.T) {
	_, err := NewLucideRenderer().RenderIcon("rocket")
	if err == nil {
		t.Fatal("expected error for unknown icon")
	}
}
