package ui

import (
	"context"
	"strings"
	"testing"

	"golang.org/x/text/language"
)

func renderComponent(t *testing.T, kit *Kit) string {
	t.Helper()
	var b strings.Builder
	if err := kit.InitIcons().Render(context.Background(), &b); err != nil {
		t.Fatalf("InitIcons render: %v", err)
	}
	return b.String()
}

func TestInitIconsWithoutRendererIsEmpty(t *testing.T) {
	if got := renderComponent(t, NewKit()); got != "" {
		t.Fatalf("expected empty init output, got %q", got)
	}
}

func TestInitIconsEmbedsSprite(t *testing.T) {
	got := renderComponent(t, NewKit(WithIconRenderer(NewLucideRenderer())))
	if !strings.Contains(got, `<symbol id="lucide-send"`) {
		t.Fatalf("expected sprite markup, got %.120q", got)
	}
}

func TestInitIconsIgnoresRenderersWithoutSprite(t *testing.T) {
	if got := renderComponent(t, NewKit(WithIconRenderer(failingRenderer{}))); got != "" {
		t.Fatalf("expected empty init output, got %q", got)
	}
}

func TestParseLocale(t *testing.T) {
	tests := []struct {
		input string
		want  language.Tag
	}{
		{input: "", want: language.AmericanEnglish},
		{input: "en", want: language.AmericanEnglish},
		{input: "pt-BR", want: language.MustParse("pt-BR")},
		{input: "pt", want: language.MustParse("pt-BR")},
		{input: "not a tag!", want: language.AmericanEnglish},
	}
	for _, tc := range tests {
		if got := ParseLocale(tc.input); got != tc.want {
			t.Errorf("ParseLocale(%q) = %s, want %s", tc.input, got, tc.want)
		}
	}
}

func TestComponentRendersNode(t *testing.T) {
	var b strings.Builder
	node := Append(Element("p"), Text("hi & bye"))
	if err := Component(node).Render(context.Background(), &b); err != nil {
		t.Fatalf("render: %v", err)
	}
	if b.String() != "<p>hi &amp; bye</p>" {
		t.Fatalf("unexpected render: %s", b.String())
	}
	b.Reset()
	if err := Component(nil).Render(context.Background(), &b); err != nil || b.Len() != 0 {
		t.Fatalf("expected nil node to render nothing, got %q, %v", b.String(), err)
	}
}

func TestKitMessageFallsBack(t *testing.T) {
	kit := NewKit(WithLocale(language.Japanese))
	if got := kit.Message("ui.verified"); got != "Verified" {
		t.Fatalf("expected base locale fallback, got %q", got)
	}
	if got := kit.Message("ui.not_defined"); got != "ui.not_defined" {
		t.Fatalf("expected key fallback, got %q", got)
	}
}
