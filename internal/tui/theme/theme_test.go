package theme

import (
	"testing"
)

func TestLoad(t *testing.T) {
	for _, name := range Available() {
		t.Run(name, func(t *testing.T) {
			th, err := Load(name)
			if err != nil {
				t.Fatalf("Load(%q): %v", name, err)
			}
			if th.Name != name {
				t.Errorf("name = %q, want %q", th.Name, name)
			}
			if th.Bg == "" || th.Fg == "" || th.Accent == "" {
				t.Errorf("theme %q missing base colors: %+v", name, th)
			}
			if th.Occupied == "" || th.Drag == "" || th.Warning == "" {
				t.Errorf("theme %q missing seat colors: %+v", name, th)
			}
		})
	}
}

func TestLoad_FallsBackToFrappe(t *testing.T) {
	th, err := Load("no-such-theme")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if th.Name != "frappe" {
		t.Errorf("fallback theme = %q, want frappe", th.Name)
	}
}

func TestLoad_EmptyName(t *testing.T) {
	th, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if th.Name != "frappe" {
		t.Errorf("default theme = %q, want frappe", th.Name)
	}
}

func TestIsAvailable(t *testing.T) {
	if !IsAvailable("Latte") {
		t.Error("latte should be available (case-insensitive)")
	}
	if IsAvailable("dracula") {
		t.Error("dracula is not shipped")
	}
}
