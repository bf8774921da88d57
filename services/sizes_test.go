package services

import (
	"reflect"
	"testing"
)

func TestEncodeSizes(t *testing.T) {
	tests := []struct {
		name   string
		sizes  []SizeCount
		expect string
	}{
		{"single size", []SizeCount{{"S", 2}}, "S-2"},
		{"two sizes", []SizeCount{{"S", 2}, {"M", 1}}, "S-2, M-1"},
		{"input order does not matter", []SizeCount{{"M", 1}, {"S", 2}}, "S-2, M-1"},
		{"zero boxes skipped", []SizeCount{{"S", 2}, {"L", 0}}, "S-2"},
		{"unknown label skipped", []SizeCount{{"S", 2}, {"XXL", 3}}, "S-2"},
		{"duplicate labels merged", []SizeCount{{"S", 2}, {"S", 1}}, "S-3"},
		{"empty", nil, ""},
		{"extended sizes", []SizeCount{{"4XL", 1}, {"2XL", 2}}, "2XL-2, 4XL-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EncodeSizes(tt.sizes)
			if got != tt.expect {
				t.Errorf("EncodeSizes(%v) = %q, want %q", tt.sizes, got, tt.expect)
			}
		})
	}
}

func TestParseSizes(t *testing.T) {
	tests := []struct {
		name    string
		encoded string
		expect  []SizeCount
	}{
		{"two sizes", "S-2, M-1", []SizeCount{{"S", 2}, {"M", 1}}},
		{"whitespace tolerated", "  S - 2 ,M-1 ", []SizeCount{{"S", 2}, {"M", 1}}},
		{"malformed token dropped", "S-2, M", []SizeCount{{"S", 2}}},
		{"non-numeric qty dropped", "S-2, M-x", []SizeCount{{"S", 2}}},
		{"unknown label dropped", "S-2, XXL-3", []SizeCount{{"S", 2}}},
		{"empty string", "", nil},
		{"only garbage", "hello world", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseSizes(tt.encoded)
			if !reflect.DeepEqual(got, tt.expect) {
				t.Errorf("ParseSizes(%q) = %v, want %v", tt.encoded, got, tt.expect)
			}
		})
	}
}

func TestEncodeParseRoundTrip(t *testing.T) {
	sizes := []SizeCount{{"S", 2}, {"XL", 1}, {"4XL", 5}}
	got := ParseSizes(EncodeSizes(sizes))
	if !reflect.DeepEqual(got, sizes) {
		t.Errorf("round trip = %v, want %v", got, sizes)
	}
}

func TestTotalBoxes(t *testing.T) {
	if got := TotalBoxes([]SizeCount{{"S", 2}, {"M", 1}}); got != 3 {
		t.Errorf("TotalBoxes = %d, want 3", got)
	}
	if got := TotalBoxes(nil); got != 0 {
		t.Errorf("TotalBoxes(nil) = %d, want 0", got)
	}
}

func TestSizeBoxMap(t *testing.T) {
	m := SizeBoxMap([]SizeCount{{"S", 2}, {"3XL", 1}})
	if len(m) != len(SizeLabels) {
		t.Fatalf("expected %d entries, got %d", len(SizeLabels), len(m))
	}
	if m["S"] != 2 || m["3XL"] != 1 || m["M"] != 0 {
		t.Errorf("unexpected map contents: %v", m)
	}
}
