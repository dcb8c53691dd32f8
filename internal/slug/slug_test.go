package slug

import (
	"strings"
	"testing"
)

func TestGenerate(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Hello World", "hello-world"},
		{"  Hello,   World!!  ", "hello-world"},
		{"Go 1.22 Released", "go-1-22-released"},
		{"---already-slugged---", "already-slugged"},
		{"UPPER_and_lower", "upper-and-lower"},
		{"Café déjà vu", "caf-d-j-vu"},
		{"C++ & Rust: a comparison", "c-rust-a-comparison"},
		{"", Fallback},
		{"!!!", Fallback},
		{"日本語", Fallback},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			got := Generate(tt.title)
			if got != tt.want {
				t.Errorf("Generate(%q) = %q, want %q", tt.title, got, tt.want)
			}
			if !Valid(got) {
				t.Errorf("Generate(%q) produced invalid slug %q", tt.title, got)
			}
		})
	}
}

func TestGenerate_CapsLength(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  int
	}{
		{"single word", strings.Repeat("a", 500), MaxLength},
		{"cut at word boundary", strings.Repeat("word ", 100), 479},
		{"hyphen at the cut", strings.Repeat("a", 479) + " " + strings.Repeat("b", 20), 479},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Generate(tt.title)
			if len(got) != tt.want {
				t.Errorf("Generate() length = %d, want %d", len(got), tt.want)
			}
			if !Valid(got) {
				t.Errorf("Generate() produced invalid slug %q", got)
			}
			resolved := Resolve(got, []string{got})
			if len(resolved) > 500 {
				t.Errorf("Resolve() length = %d, exceeds column width", len(resolved))
			}
		})
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		base     string
		existing []string
		want     string
	}{
		{"no collisions", "x", nil, "x"},
		{"only prefix matches", "x", []string{"x-ray", "xylophone"}, "x"},
		{"base taken", "x", []string{"x"}, "x-1"},
		{"sequence taken", "x", []string{"x", "x-1", "x-2"}, "x-3"},
		{"gap is reused", "x", []string{"x", "x-2", "x-3"}, "x-1"},
		{"suffix without base", "x", []string{"x-1", "x-2"}, "x"},
		{"unordered input", "post", []string{"post-2", "post", "post-1", "post-4"}, "post-3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Resolve(tt.base, tt.existing); got != tt.want {
				t.Errorf("Resolve(%q, %v) = %q, want %q", tt.base, tt.existing, got, tt.want)
			}
		})
	}
}

func TestResolve_AlwaysUnique(t *testing.T) {
	existing := []string{}
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		s := Resolve("same-title", existing)
		if seen[s] {
			t.Fatalf("Resolve returned duplicate %q after %d inserts", s, i)
		}
		seen[s] = true
		existing = append(existing, s)
	}
	if !seen["same-title-49"] {
		t.Errorf("expected linear probing to reach same-title-49, saw %d slugs", len(seen))
	}
}
