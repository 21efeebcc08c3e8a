package logic

import (
	"testing"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"00:42:30", 2550},
		{"1:02:03", 3723},
		{"05:09", 309},
		{"01:12:09", 4329},
		{"90", 90},
		{"0", 0},
		{" 05:09 ", 309},
		{":30", 30},
		{"1::", 3600},
		{"", 0},
		{"abc", 0},
		{"12:xx", 0},
		{"1:2:3:4", 0},
		{"-5", 0},
		{"-1:30", 0},
		// values that would wrap past math.MaxInt
		{"5124095576030432:00:00", 0},
		{"5124095576030431:59:59", 0},
		{"153722867280912931:00", 0},
		{"9223372036854775807:00", 0},
		{"99999999999999999999", 0},
		{"-9223372036854775808:00:00", 0},
	}

	for _, tt := range tests {
		if got := ParseDuration(tt.input); got != tt.want {
			t.Errorf("ParseDuration(%q) = %d; expected %d", tt.input, got, tt.want)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{2550, "42:30"},
		{3723, "1:02:03"},
		{0, "00:00"},
		{59, "00:59"},
		{3599, "59:59"},
		{3600, "1:00:00"},
		{36000 + 61, "10:01:01"},
		{-10, "00:00"},
	}

	for _, tt := range tests {
		if got := FormatDuration(tt.seconds); got != tt.want {
			t.Errorf("FormatDuration(%d) = %q; expected %q", tt.seconds, got, tt.want)
		}
	}
}

func TestDuration_RoundTrip(t *testing.T) {
	// well-formed input and its zero-padding normalization
	tests := []struct {
		input      string
		normalized string
	}{
		{"00:42:30", "42:30"},
		{"1:02:03", "1:02:03"},
		{"01:02:03", "1:02:03"},
		{"05:09", "05:09"},
		{"5:09", "05:09"},
		{"00:00:00", "00:00"},
		{"12:00:59", "12:00:59"},
	}

	for _, tt := range tests {
		if got := FormatDuration(ParseDuration(tt.input)); got != tt.normalized {
			t.Errorf("FormatDuration(ParseDuration(%q)) = %q; expected %q", tt.input, got, tt.normalized)
		}
	}

	for s := 0; s < 3*3600; s += 37 {
		if got := ParseDuration(FormatDuration(s)); got != s {
			t.Fatalf("ParseDuration(FormatDuration(%d)) = %d", s, got)
		}
	}
}
