// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package crossref

import "testing"

func TestCanonical(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"10.1145/3297280.3297641", "10.1145/3297280.3297641"},
		{"10.1002/ABC.123", "10.1002/abc.123"},
		{"  10.1/a \n", "10.1/a"},
		{"https://doi.org/10.1/a", "10.1/a"},
		{"http://doi.org/10.1/a", "10.1/a"},
		{"https://dx.doi.org/10.1/a", "10.1/a"},
		{"HTTPS://DOI.ORG/10.1/A", "10.1/a"},
		{"doi:10.1/a", "10.1/a"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Canonical(tt.input); got != tt.want {
				t.Errorf("Canonical(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestCanonicalIdempotent(t *testing.T) {
	inputs := []string{"https://doi.org/10.1/A", "10.5555/X/Y", "doi:10.99/z"}
	for _, in := range inputs {
		once := Canonical(in)
		if twice := Canonical(once); twice != once {
			t.Errorf("Canonical not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestIsDOI(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"10.1145/3297280.3297641", true},
		{"10.48550/arXiv.2303.08774", true},
		{"10.5555/12345678", true},
		{"https://doi.org/10.1145/3297280", false},
		{"10.1/a", false}, // registrant prefixes carry at least four digits
		{"2301.07041", false},
		{"10.1145/a b", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := IsDOI(tt.input); got != tt.want {
				t.Errorf("IsDOI(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
