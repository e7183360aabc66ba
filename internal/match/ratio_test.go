package match

import (
	"testing"
)

func TestRatio(t *testing.T) {
	tests := []struct {
		a        string
		b        string
		expected float64
	}{
		{"", "", 1.0},
		{"lambda", "lambda", 1.0},
		{"abc", "xyz", 0.0},
		{"abcde", "abcxy", 0.6},
		{"lamda", "lambda", 10.0 / 11.0},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			result := Ratio(tt.a, tt.b)
			if diff := result - tt.expected; diff < -0.001 || diff > 0.001 {
				t.Errorf("Ratio(%q, %q) = %f, want %f", tt.a, tt.b, result, tt.expected)
			}
		})
	}
}

func TestMeetsCutoff(t *testing.T) {
	if !MeetsCutoff(Ratio("abcde", "abcxy"), DefaultSimilarityCutoff) {
		t.Error("a score of exactly 0.6 should meet the 0.6 cutoff")
	}

	if MeetsCutoff(0.59, DefaultSimilarityCutoff) {
		t.Error("0.59 should not meet the 0.6 cutoff")
	}
}

func TestParseMatcher(t *testing.T) {
	tests := []struct {
		name     string
		expected string
		wantErr  bool
	}{
		{"", MatcherRatio, false},
		{"ratio", MatcherRatio, false},
		{"levenshtein", MatcherLevenshtein, false},
		{"jaro", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := ParseMatcher(tt.name)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseMatcher(%q) expected error", tt.name)
				}

				return
			}

			if err != nil {
				t.Fatalf("ParseMatcher(%q) unexpected error: %v", tt.name, err)
			}

			if m.Name() != tt.expected {
				t.Errorf("ParseMatcher(%q).Name() = %q, want %q", tt.name, m.Name(), tt.expected)
			}
		})
	}
}
