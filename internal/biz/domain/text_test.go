package domain

import (
	"reflect"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercases", "How Do I Get A Badge?", "how do i get a badge?"},
		{"trims", "  hello world  ", "hello world"},
		{"empty", "", ""},
		{"whitespace only", "   \t ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestQualifyingTokens(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "filters short tokens",
			input: "need new vpn access",
			want:  []string{"need", "new", "vpn", "access"},
		},
		{
			name:  "drops one and two letter words",
			input: "how do I get a badge",
			want:  []string{"how", "get", "badge"},
		},
		{
			name:  "all short tokens",
			input: "is it ok",
			want:  nil,
		},
		{
			name:  "empty input",
			input: "",
			want:  nil,
		},
		{
			name:  "normalizes before splitting",
			input: "  VPN Access  ",
			want:  []string{"vpn", "access"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := QualifyingTokens(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("QualifyingTokens(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
