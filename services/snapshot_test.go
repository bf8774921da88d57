package services

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func snapshotFixture(t *testing.T) *Quotation {
	t.Helper()

	q := NewQuotation()
	q.Header.Party = "Mega Sports"
	q.Header.Phone = "9876543210"
	q.Header.Address = "Karol Bagh, Delhi"
	q.Header.SalesPerson = "Ravi"
	q.Header.RateDiscount = 57
	q.Header.SPDiscount = 10
	q.Header.Shipping = "TO PAY"
	q.Header.BillDiscount = "500"
	q.Header.Advance = "1000"
	q.Header.Date = "15-08-2026"

	cat := fakeCatalog{"AB12": {MRP: 1000, PcsPerBox: 6}}
	if err := q.AddItem(cat, "AB12", []SizeCount{{"S", 2}, {"M", 1}}, nil); err != nil {
		t.Fatalf("AddItem error: %v", err)
	}
	if err := q.AddSampleItem("Printed Jersey", "5", "120"); err != nil {
		t.Fatalf("AddSampleItem error: %v", err)
	}
	return q
}

func TestSnapshotRoundTrip(t *testing.T) {
	q := snapshotFixture(t)

	data, err := MarshalSnapshot(q)
	if err != nil {
		t.Fatalf("MarshalSnapshot error: %v", err)
	}

	loaded, err := UnmarshalSnapshot(data)
	if err != nil {
		t.Fatalf("UnmarshalSnapshot error: %v", err)
	}

	if loaded.Header.Party != q.Header.Party || loaded.Header.Shipping != "TO PAY" {
		t.Errorf("header did not survive: %+v", loaded.Header)
	}
	if loaded.Header.RateDiscount != 57 || loaded.Header.SPDiscount != 10 {
		t.Errorf("discounts did not survive: %+v", loaded.Header)
	}
	if len(loaded.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(loaded.Items))
	}
	if loaded.Items[0].Mode != PricingAuto || loaded.Items[1].Mode != PricingSample {
		t.Errorf("modes did not survive: %q, %q", loaded.Items[0].Mode, loaded.Items[1].Mode)
	}
	if loaded.Items[1].Description != "Printed Jersey" {
		t.Errorf("sample marker must be stripped on load, got %q", loaded.Items[1].Description)
	}

	if got, want := loaded.Totals(), q.Totals(); got != want {
		t.Errorf("totals after round trip = %+v, want %+v", got, want)
	}
}

func TestSnapshotWireFormat(t *testing.T) {
	data, err := MarshalSnapshot(snapshotFixture(t))
	if err != nil {
		t.Fatalf("MarshalSnapshot error: %v", err)
	}

	var doc struct {
		Meta map[string]any   `json:"meta"`
		Items []map[string]any `json:"items"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("snapshot is not valid JSON: %v", err)
	}

	for _, key := range []string{"party", "rate_discount", "sp_discount", "total_discount_text", "bill_discount_type", "shipping", "date"} {
		if _, ok := doc.Meta[key]; !ok {
			t.Errorf("meta is missing key %q", key)
		}
	}
	if doc.Meta["sp_discount"] != "10" {
		t.Errorf("sp_discount = %v, want the string \"10\"", doc.Meta["sp_discount"])
	}
	if doc.Meta["total_discount_text"] != "67 %" {
		t.Errorf("total_discount_text = %v, want \"67 %%\"", doc.Meta["total_discount_text"])
	}

	if len(doc.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(doc.Items))
	}
	if desc, _ := doc.Items[1]["desc"].(string); !strings.HasSuffix(desc, " (SMPL)") {
		t.Errorf("sample desc on disk = %q, want the (SMPL) suffix", desc)
	}
	if manual, _ := doc.Items[1]["is_manual"].(bool); !manual {
		t.Error("sample items must persist with is_manual true")
	}
	if manual, _ := doc.Items[0]["is_manual"].(bool); manual {
		t.Error("auto items must persist with is_manual false")
	}
}

func TestSnapshotFilename(t *testing.T) {
	got := SnapshotFilename("Mega Sports Traders", "15-08-2026")
	want := "Quotation_Mega_Sports_Traders_15-08-2026.json"
	if got != want {
		t.Errorf("SnapshotFilename = %q, want %q", got, want)
	}
}

func TestWriteAndReadSnapshot(t *testing.T) {
	dir := t.TempDir()
	q := snapshotFixture(t)

	path, err := WriteSnapshot(q, dir)
	if err != nil {
		t.Fatalf("WriteSnapshot error: %v", err)
	}
	if filepath.Base(path) != "Quotation_Mega_Sports_15-08-2026.json" {
		t.Errorf("unexpected snapshot name: %s", path)
	}

	loaded, err := ReadSnapshot(path)
	if err != nil {
		t.Fatalf("ReadSnapshot error: %v", err)
	}
	if loaded.Header.Party != "Mega Sports" || len(loaded.Items) != 2 {
		t.Errorf("unexpected loaded quotation: %+v", loaded)
	}

	// No temp files left behind
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir error: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected exactly the snapshot file in %s, found %d entries", dir, len(entries))
	}
}

func TestReadSnapshotErrors(t *testing.T) {
	if _, err := ReadSnapshot(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("not json"), 0o644); err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}
	if _, err := ReadSnapshot(path); err == nil {
		t.Error("expected error for malformed file")
	}
}

func TestUnmarshalSnapshotSanitizes(t *testing.T) {
	raw := `{"meta":{"party":"P","rate_discount":50,"sp_discount":"x","bill_discount_type":""},"items":[]}`
	q, err := UnmarshalSnapshot([]byte(raw))
	if err != nil {
		t.Fatalf("UnmarshalSnapshot error: %v", err)
	}
	if q.Header.RateDiscount != 0 {
		t.Errorf("invalid rate discount must load as 0, got %d", q.Header.RateDiscount)
	}
	if q.Header.SPDiscount != 0 {
		t.Errorf("unparseable sp discount must load as 0, got %v", q.Header.SPDiscount)
	}
	if q.Header.BillDiscountType != BillDiscountAmount {
		t.Errorf("blank bill discount type must default to AMOUNT, got %q", q.Header.BillDiscountType)
	}
}
