package icons

import (
	"strings"
	"testing"
)

func TestLucideName(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   string
		wantOK bool
	}{
		{name: "catalog name", input: "send", want: "send", wantOK: true},
		{name: "alias", input: "chat", want: "message-circle", wantOK: true},
		{name: "case and space", input: "  Verified ", want: "badge-check", wantOK: true},
		{name: "unknown", input: "rocket", wantOK: false},
		{name: "empty", input: "   ", wantOK: false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := LucideName(tc.input)
			if ok != tc.wantOK || got != tc.want {
				t.Fatalf("LucideName(%q) = %q, %v; want %q, %v", tc.input, got, ok, tc.want, tc.wantOK)
			}
		})
	}
}

func TestLucideNameOrDefault(t *testing.T) {
	if got := LucideNameOrDefault("rocket"); got != DefaultLucideName {
		t.Fatalf("expected default %q, got %q", DefaultLucideName, got)
	}
	if got := LucideNameOrDefault("time"); got != "clock" {
		t.Fatalf("expected clock, got %q", got)
	}
}

func TestLucideSymbolID(t *testing.T) {
	if got := LucideSymbolID("send"); got != "lucide-send" {
		t.Fatalf("LucideSymbolID = %q", got)
	}
}

func TestLucideSpriteDefinesEverySymbol(t *testing.T) {
	sprite := LucideSprite()
	if !strings.HasPrefix(sprite, `<svg xmlns="http://www.w3.org/2000/svg" style="display:none"`) {
		t.Fatalf("unexpected sprite prefix: %.80s", sprite)
	}
	if !strings.HasSuffix(sprite, "</svg>") {
		t.Fatal("expected sprite to close its svg element")
	}
	for name := range symbolBodies {
		if !strings.Contains(sprite, `<symbol id="`+LucideSymbolID(name)+`"`) {
			t.Errorf("sprite missing symbol %s", name)
		}
	}
	if got := strings.Count(sprite, "<symbol "); got != len(symbolBodies) {
		t.Fatalf("expected %d symbols, got %d", len(symbolBodies), got)
	}
}

func TestHasSymbol(t *testing.T) {
	if !HasSymbol("circle") {
		t.Fatal("expected default icon to have a symbol")
	}
	if HasSymbol("chat") {
		t.Fatal("aliases are not sprite symbols")
	}
}
