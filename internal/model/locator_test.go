package model

import (
	"testing"
)

func TestLocatorString(t *testing.T) {
	tests := []struct {
		name string
		loc  Locator
		want string
	}{
		{"empty", nil, ""},
		{"single", Locator{{Role: "panel", Index: 0}}, "/panel[0]"},
		{"nested", Locator{{Role: "panel", Index: 0}, {Role: "button", Index: 2}}, "/panel[0]/button[2]"},
		{"unknown role", Locator{{Role: "", Index: 1}}, "/unknown[1]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.loc.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseLocator_RoundTrip(t *testing.T) {
	inputs := []string{
		"/panel[0]",
		"/panel[0]/button[2]",
		"/window[1]/group[0]/list[3]/listitem[12]",
		"/unknown[0]",
	}
	for _, in := range inputs {
		loc, err := ParseLocator(in)
		if err != nil {
			t.Fatalf("ParseLocator(%q): %v", in, err)
		}
		if got := loc.String(); got != in {
			t.Errorf("round trip of %q = %q", in, got)
		}
	}
}

func TestParseLocator_Invalid(t *testing.T) {
	inputs := []string{
		"",
		"panel[0]",
		"/panel",
		"/panel[]",
		"/panel[x]",
		"/panel[-1]",
		"/[0]",
		"//button[0]",
	}
	for _, in := range inputs {
		if _, err := ParseLocator(in); err == nil {
			t.Errorf("ParseLocator(%q) succeeded, want error", in)
		}
	}
}

func TestRect(t *testing.T) {
	r := Rect{Left: 90, Top: 40, Right: 160, Bottom: 70}
	if r.Width() != 70 || r.Height() != 30 {
		t.Errorf("Width/Height = %d/%d, want 70/30", r.Width(), r.Height())
	}
	if !r.Contains(100, 50) {
		t.Error("Contains(100,50) = false, want true")
	}
	if r.Contains(160, 50) {
		t.Error("right edge should be exclusive")
	}
	if r.Contains(5, 5) {
		t.Error("Contains(5,5) = true, want false")
	}
	if !(Rect{}).IsZero() {
		t.Error("zero rect should report IsZero")
	}
	want := "{left:90 top:40 right:160 bottom:70}"
	if r.String() != want {
		t.Errorf("String() = %q, want %q", r.String(), want)
	}
}
