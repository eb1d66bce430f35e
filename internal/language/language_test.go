package language

import (
	"reflect"
	"testing"
)

func TestCanonical(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"English", "English"},
		{"english", "English"},
		{"  GERMAN ", "German"},
		{"en", "English"},
		{"DE", "German"},
		{"fre", "French"},
		{"jpn", "Japanese"},
		{"brazilian  portuguese", "Brazilian Portuguese"},
		{"KLINGON", "Klingon"},
		{"", ""},
		{"   ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Canonical(tt.input); got != tt.expected {
				t.Errorf("Canonical(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestParseList(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"English,German", []string{"English", "German"}},
		{" english , de ,English,, ", []string{"English", "German"}},
		{"japanese,klingon", []string{"Japanese", "Klingon"}},
		{"", nil},
		{" , ", nil},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseList(tt.input); !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("ParseList(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}
