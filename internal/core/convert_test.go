package core

import (
	"math"
	"testing"
)

func TestParseDecimal(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"", 0},
		{"   ", 0},
		{"1.5", 1.5},
		{" 2.25 ", 2.25},
		{"-3", -3},
		{".5", 0.5},
		{"1e2", 100},
		{"N/A", 0},
		{"abc", 0},
		{"12.5h", 12.5},
		{"$1,234.50", 1234.5},
		{"€99", 99},
		{"(12.50)", -12.5},
		{"1e999", 0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := ParseDecimal(tt.input)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("ParseDecimal(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseClockDuration(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"01:30:00", 1.5},
		{"0:45", 0.75},
		{"2:00:36", 2.01},
		{"10:00:00", 10},
		{"1.25", 1.25},
		{"", 0},
		{"1:xx:00", 0},
		{"1:2:3:4", 0},
		{"-1:00", 0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := ParseClockDuration(tt.input)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("ParseClockDuration(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
