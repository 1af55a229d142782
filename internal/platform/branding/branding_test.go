package branding

import "testing"

func TestAppName(t *testing.T) {
	if AppName != "Abrox" {
		t.Fatalf("AppName = %q, want %q", AppName, "Abrox")
	}
}

func TestPageTitle(t *testing.T) {
	if got := PageTitle("Devices"); got != "Devices | Abrox" {
		t.Fatalf("PageTitle = %q", got)
	}
	if got := PageTitle(""); got != "Abrox" {
		t.Fatalf("PageTitle(\"\") = %q", got)
	}
}
