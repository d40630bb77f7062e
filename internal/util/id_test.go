package util

import (
	"regexp"
	"testing"
)

func TestGenerateShortID(t *testing.T) {
	t.Run("length is always 6", func(t *testing.T) {
		for i := 0; i < 100; i++ {
			id, err := GenerateShortID()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(id) != 6 {
				t.Errorf("expected length 6, got %d for id %q", len(id), id)
			}
		}
	})

	t.Run("contains only alphanumeric characters", func(t *testing.T) {
		pattern := regexp.MustCompile(`^[a-zA-Z0-9]+$`)
		for i := 0; i < 100; i++ {
			id, err := GenerateShortID()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !pattern.MatchString(id) {
				t.Errorf("id %q contains non-alphanumeric characters", id)
			}
		}
	})
}

func TestToKebabCase(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Intro to Fractions", "intro-to-fractions"},
		{"photo_synthesis", "photo-synthesis"},
		{"Week 3 --- Review", "week-3-review"},
		{"  Algebra  ", "algebra"},
		{"Poetry: Haiku!", "poetry-haiku"},
		{"", ""},
		{"already-kebab", "already-kebab"},
		{"Über Geometrie", "über-geometrie"},
		{"---leading-trailing---", "leading-trailing"},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			result := ToKebabCase(tc.input)
			if result != tc.expected {
				t.Errorf("ToKebabCase(%q) = %q, want %q", tc.input, result, tc.expected)
			}
		})
	}
}
