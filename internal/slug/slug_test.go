package slug

import (
	"strings"
	"testing"
)

func TestMake(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"The Dragon's Keep", "the-dragons-keep"},
		{"  Mira   the Smith ", "mira-the-smith"},
		{"Cities", "cities"},
		{"UPPER lower", "upper-lower"},
		{"dash--run---here", "dash-run-here"},
		{"tabs\tand\nnewlines", "tabs-and-newlines"},
		{"trailing punctuation!!!", "trailing-punctuation"},
		{"---", "article"},
		{"", "article"},
		{"日本語", "article"},
		{"42 Dwarves", "42-dwarves"},
	}
	for _, c := range cases {
		if got := Make(c.in, FallbackArticle); got != c.want {
			t.Errorf("Make(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestMakeFallbackPerKind(t *testing.T) {
	if got := Make("!!!", FallbackProject); got != "project" {
		t.Fatalf("project fallback: got %q", got)
	}
	if got := Make("", FallbackFolder); got != "folder" {
		t.Fatalf("folder fallback: got %q", got)
	}
}

func TestMakeOutputShape(t *testing.T) {
	inputs := []string{
		"Hello, World!", "a--b__c", "  spaces  everywhere  ",
		"MiXeD CaSe 123", "-lead and trail-", "éclair café",
	}
	for _, in := range inputs {
		got := Make(in, FallbackArticle)
		if got == "" {
			t.Fatalf("Make(%q) produced empty slug", in)
		}
		if strings.HasPrefix(got, "-") || strings.HasSuffix(got, "-") {
			t.Errorf("Make(%q) = %q has leading/trailing hyphen", in, got)
		}
		if strings.Contains(got, "--") {
			t.Errorf("Make(%q) = %q has repeated hyphen", in, got)
		}
		for _, r := range got {
			if !(r >= 'a' && r <= 'z') && !(r >= '0' && r <= '9') && r != '-' {
				t.Errorf("Make(%q) = %q contains %q", in, got, r)
			}
		}
	}
}
