package services

import (
	"strconv"
	"strings"
)

// SizeLabels is the fixed size run for every catalog item, in the order
// the quotation table prints them.
var SizeLabels = []string{"S", "M", "L", "XL", "2XL", "3XL", "4XL"}

// SizeCount is one (size, box count) pair of a breakdown.
type SizeCount struct {
	Label string
	Boxes int
}

// ValidSizeLabel reports whether label is part of the fixed size run.
func ValidSizeLabel(label string) bool {
	for _, s := range SizeLabels {
		if s == label {
			return true
		}
	}
	return false
}

// TotalBoxes sums the box counts of a breakdown.
func TotalBoxes(sizes []SizeCount) int {
	total := 0
	for _, sc := range sizes {
		total += sc.Boxes
	}
	return total
}

// EncodeSizes renders a breakdown in the persisted "S-2, M-1" form.
// Entries with zero boxes or labels outside the fixed run are skipped,
// and the fixed run order is enforced regardless of input order.
func EncodeSizes(sizes []SizeCount) string {
	byLabel := make(map[string]int, len(sizes))
	for _, sc := range sizes {
		if sc.Boxes > 0 {
			byLabel[sc.Label] += sc.Boxes
		}
	}

	var parts []string
	for _, label := range SizeLabels {
		if n, ok := byLabel[label]; ok {
			parts = append(parts, label+"-"+strconv.Itoa(n))
		}
	}
	return strings.Join(parts, ", ")
}

// ParseSizes parses the persisted "S-2, M-1" form back into a breakdown.
// Malformed tokens and unknown size labels are silently dropped.
func ParseSizes(encoded string) []SizeCount {
	if strings.TrimSpace(encoded) == "" {
		return nil
	}

	byLabel := make(map[string]int)
	for _, part := range strings.Split(encoded, ",") {
		label, qty, ok := strings.Cut(strings.TrimSpace(part), "-")
		if !ok {
			continue
		}
		label = strings.TrimSpace(label)
		if !ValidSizeLabel(label) {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(qty))
		if err != nil {
			continue
		}
		byLabel[label] += n
	}

	var sizes []SizeCount
	for _, label := range SizeLabels {
		if n, ok := byLabel[label]; ok {
			sizes = append(sizes, SizeCount{Label: label, Boxes: n})
		}
	}
	return sizes
}

// SizeBoxMap expands a breakdown into a label->boxes map covering the whole
// fixed run, for rendering one table column per size.
func SizeBoxMap(sizes []SizeCount) map[string]int {
	m := make(map[string]int, len(SizeLabels))
	for _, label := range SizeLabels {
		m[label] = 0
	}
	for _, sc := range sizes {
		if ValidSizeLabel(sc.Label) {
			m[sc.Label] += sc.Boxes
		}
	}
	return m
}
