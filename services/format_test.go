package services

import "testing"

func TestFormatRs(t *testing.T) {
	tests := []struct {
		amount int
		expect string
	}{
		{0, "Rs 0"},
		{5, "Rs 5"},
		{999, "Rs 999"},
		{1000, "Rs 1,000"},
		{99999, "Rs 99,999"},
		{100000, "Rs 1,00,000"},
		{123456, "Rs 1,23,456"},
		{12345678, "Rs 1,23,45,678"},
		{-7740, "-Rs 7,740"},
	}

	for _, tt := range tests {
		if got := FormatRs(tt.amount); got != tt.expect {
			t.Errorf("FormatRs(%d) = %q, want %q", tt.amount, got, tt.expect)
		}
	}
}

func TestFormatPercent(t *testing.T) {
	tests := []struct {
		p      float64
		expect string
	}{
		{10, "10 %"},
		{2.5, "2.5 %"},
		{0, "0 %"},
	}

	for _, tt := range tests {
		if got := FormatPercent(tt.p); got != tt.expect {
			t.Errorf("FormatPercent(%v) = %q, want %q", tt.p, got, tt.expect)
		}
	}
}
