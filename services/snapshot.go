package services

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// sampleMarker is how sample rows were tagged inside the description in
// previously saved files. The in-memory ledger uses PricingSample instead;
// the marker survives only on disk so old files keep loading.
const sampleMarker = " (SMPL)"

type snapshotMeta struct {
	Party             string `json:"party"`
	Phone             string `json:"phone"`
	Address           string `json:"address"`
	SalesPerson       string `json:"sales_person"`
	RateDiscount      int    `json:"rate_discount"`
	SPDiscount        string `json:"sp_discount"`
	TotalDiscountText string `json:"total_discount_text"`
	BillDiscount      string `json:"bill_discount"`
	BillDiscountType  string `json:"bill_discount_type"`
	Shipping          string `json:"shipping"`
	Advance           string `json:"advance"`
	Remark            string `json:"remark"`
	PaymentImage      string `json:"payment_image"`
	Date              string `json:"date"`
}

type snapshotItem struct {
	Desc     string `json:"desc"`
	Size     string `json:"size"`
	Pcs      int    `json:"pcs"`
	Rate     int    `json:"rate"`
	Amount   int    `json:"amount"`
	IsManual bool   `json:"is_manual"`
}

type snapshot struct {
	Meta  snapshotMeta   `json:"meta"`
	Items []snapshotItem `json:"items"`
}

// MarshalSnapshot encodes the quotation in the persisted record form.
// Rates and amounts are stored as-is; loading them back and recomputing
// totals never consults the catalog.
func MarshalSnapshot(q *Quotation) ([]byte, error) {
	h := q.Header

	spText := ""
	if h.SPDiscount > 0 {
		spText = trimFloat(h.SPDiscount)
	}

	date := h.Date
	if date == "" {
		date = time.Now().Format("02-01-2006")
	}

	snap := snapshot{
		Meta: snapshotMeta{
			Party:             h.Party,
			Phone:             h.Phone,
			Address:           h.Address,
			SalesPerson:       h.SalesPerson,
			RateDiscount:      h.RateDiscount,
			SPDiscount:        spText,
			TotalDiscountText: q.TotalDiscountText(),
			BillDiscount:      h.BillDiscount,
			BillDiscountType:  h.BillDiscountType,
			Shipping:          h.Shipping,
			Advance:           h.Advance,
			Remark:            h.Remark,
			PaymentImage:      h.PaymentImage,
			Date:              date,
		},
		Items: make([]snapshotItem, 0, len(q.Items)),
	}

	for _, item := range q.Items {
		si := snapshotItem{
			Desc:     item.Description,
			Size:     EncodeSizes(item.Sizes),
			Pcs:      item.Pcs,
			Rate:     item.Rate,
			Amount:   item.Amount,
			IsManual: item.Mode != PricingAuto,
		}
		if item.Mode == PricingSample {
			si.Desc = item.Description + sampleMarker
		}
		snap.Items = append(snap.Items, si)
	}

	return json.MarshalIndent(snap, "", "    ")
}

// UnmarshalSnapshot decodes a persisted record into a fresh quotation.
// The stored rate and amount values are authoritative.
func UnmarshalSnapshot(data []byte) (*Quotation, error) {
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSnapshotRead, err)
	}

	q := NewQuotation()
	q.Header = Header{
		Party:            snap.Meta.Party,
		Phone:            snap.Meta.Phone,
		Address:          snap.Meta.Address,
		SalesPerson:      snap.Meta.SalesPerson,
		BillDiscount:     snap.Meta.BillDiscount,
		BillDiscountType: snap.Meta.BillDiscountType,
		Shipping:         snap.Meta.Shipping,
		Advance:          snap.Meta.Advance,
		Remark:           snap.Meta.Remark,
		PaymentImage:     snap.Meta.PaymentImage,
		Date:             snap.Meta.Date,
	}
	if q.Header.BillDiscountType == "" {
		q.Header.BillDiscountType = BillDiscountAmount
	}
	if ValidRateDiscount(snap.Meta.RateDiscount) {
		q.Header.RateDiscount = snap.Meta.RateDiscount
	}
	if sp := strings.TrimSpace(snap.Meta.SPDiscount); sp != "" {
		var f float64
		if _, err := fmt.Sscanf(sp, "%g", &f); err == nil && f > 0 {
			q.Header.SPDiscount = f
		}
	}

	for _, si := range snap.Items {
		item := LineItem{
			Description: si.Desc,
			Sizes:       ParseSizes(si.Size),
			Pcs:         si.Pcs,
			Rate:        si.Rate,
			Amount:      si.Amount,
			Mode:        PricingAuto,
		}
		if strings.HasSuffix(si.Desc, sampleMarker) {
			item.Description = strings.TrimSuffix(si.Desc, sampleMarker)
			item.Mode = PricingSample
		} else if si.IsManual {
			item.Mode = PricingManual
		}
		q.Items = append(q.Items, item)
	}

	return q, nil
}

// SnapshotFilename builds the on-disk name for a quotation saved on the
// given date: Quotation_<party>_<dd-mm-yyyy>.json.
func SnapshotFilename(party, date string) string {
	return fmt.Sprintf("Quotation_%s_%s.json", strings.ReplaceAll(party, " ", "_"), date)
}

// WriteSnapshot persists the quotation into dir. The file is written to a
// temporary name first and renamed into place, so a failed write never
// leaves a half-written record behind.
func WriteSnapshot(q *Quotation, dir string) (string, error) {
	if q.Header.Date == "" {
		q.Header.Date = time.Now().Format("02-01-2006")
	}

	data, err := MarshalSnapshot(q)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSnapshotWrite, err)
	}

	path := filepath.Join(dir, SnapshotFilename(q.Header.Party, q.Header.Date))

	tmp, err := os.CreateTemp(dir, ".quotation-*.json")
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSnapshotWrite, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", fmt.Errorf("%w: %v", ErrSnapshotWrite, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("%w: %v", ErrSnapshotWrite, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("%w: %v", ErrSnapshotWrite, err)
	}

	return path, nil
}

// ReadSnapshot loads a previously written quotation file.
func ReadSnapshot(path string) (*Quotation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSnapshotRead, err)
	}
	return UnmarshalSnapshot(data)
}
