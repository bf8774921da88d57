package services

import (
	"fmt"
	"strconv"
	"strings"
)

// PricingMode says how a line item's rate was determined.
type PricingMode string

const (
	PricingAuto   PricingMode = "auto"
	PricingManual PricingMode = "manual"
	PricingSample PricingMode = "sample"
)

// CatalogEntry is the per-SKU data the ledger needs from the catalog.
type CatalogEntry struct {
	MRP       float64
	PcsPerBox int
}

// Catalog is the read-only lookup the ledger prices items against.
type Catalog interface {
	Lookup(sku string) (CatalogEntry, bool)
}

// LineItem is one row of a quotation. Amount is always Pcs*Rate as of the
// last write; it is snapshotted here and does not follow later catalog
// changes.
type LineItem struct {
	Description string
	Sizes       []SizeCount
	Pcs         int
	Rate        int
	Amount      int
	Mode        PricingMode
}

// BillDiscountType selects how the header's bill discount is interpreted.
const (
	BillDiscountAmount  = "AMOUNT"
	BillDiscountPercent = "PERCENT"
)

// Header carries the quotation-level fields. Shipping, BillDiscount and
// Advance are kept as the raw entered text; non-numeric input counts as
// zero but still prints as typed (e.g. shipping "TO PAY").
type Header struct {
	Party            string
	Address          string
	Phone            string
	SalesPerson      string
	RateDiscount     int     // 55, 57, or 0 when not selected
	SPDiscount       float64 // sales person discount percent, 0 = none
	Shipping         string
	BillDiscount     string
	BillDiscountType string // AMOUNT or PERCENT
	Advance          string
	Remark           string
	PaymentImage     string // path reference, empty = none
	Date             string // dd-mm-yyyy, set when persisted
}

// Quotation is the ledger: header metadata plus an ordered list of line
// items. It is mutated by a single caller at a time; operations that fail
// leave it unchanged.
type Quotation struct {
	Header Header
	Items  []LineItem
}

// NewQuotation returns an empty quotation with the default bill discount
// mode.
func NewQuotation() *Quotation {
	return &Quotation{
		Header: Header{BillDiscountType: BillDiscountAmount},
	}
}

// Reset clears all items and header fields, keeping only the default
// bill discount mode. Used by the "new quotation" operation.
func (q *Quotation) Reset() {
	*q = *NewQuotation()
}

// buildCatalogItem validates and prices one catalog-backed line item
// without touching the ledger.
func (q *Quotation) buildCatalogItem(cat Catalog, sku string, sizes []SizeCount, manualRate *int) (LineItem, error) {
	sku = strings.ToUpper(strings.TrimSpace(sku))

	entry, ok := cat.Lookup(sku)
	if !ok {
		return LineItem{}, fmt.Errorf("sku %q: %w", sku, ErrUnknownSKU)
	}

	var kept []SizeCount
	for _, sc := range sizes {
		if sc.Boxes > 0 && ValidSizeLabel(sc.Label) {
			kept = append(kept, sc)
		}
	}
	boxes := TotalBoxes(kept)
	if boxes == 0 {
		return LineItem{}, fmt.Errorf("sku %q: %w", sku, ErrEmptySizeBreakdown)
	}

	pcs := boxes * entry.PcsPerBox

	item := LineItem{
		Description: sku,
		Sizes:       kept,
		Pcs:         pcs,
		Mode:        PricingAuto,
	}

	if manualRate != nil {
		item.Rate = *manualRate
		item.Mode = PricingManual
	} else {
		rate, err := AutoRate(entry.MRP, q.Header.RateDiscount, q.Header.SPDiscount)
		if err != nil {
			return LineItem{}, err
		}
		item.Rate = rate
	}

	item.Amount = item.Pcs * item.Rate
	return item, nil
}

// AddItem appends a catalog-backed line item. A nil manualRate prices the
// item automatically from the catalog MRP and the header discounts; a
// non-nil manualRate pins the rate and marks the item manual.
func (q *Quotation) AddItem(cat Catalog, sku string, sizes []SizeCount, manualRate *int) error {
	item, err := q.buildCatalogItem(cat, sku, sizes, manualRate)
	if err != nil {
		return err
	}
	q.Items = append(q.Items, item)
	return nil
}

// AddSampleItem appends a sample row. Pcs and rate arrive as the raw
// entered text and must both parse as whole numbers. Samples never take
// part in catalog pricing.
func (q *Quotation) AddSampleItem(description, pcsText, rateText string) error {
	pcs, err := strconv.Atoi(strings.TrimSpace(pcsText))
	if err != nil {
		return fmt.Errorf("pcs %q: %w", pcsText, ErrInvalidSampleInput)
	}
	rate, err := strconv.Atoi(strings.TrimSpace(rateText))
	if err != nil {
		return fmt.Errorf("rate %q: %w", rateText, ErrInvalidSampleInput)
	}

	description = strings.TrimSpace(description)
	if description == "" {
		description = "SAMPLE ITEM"
	}

	q.Items = append(q.Items, LineItem{
		Description: description,
		Pcs:         pcs,
		Rate:        rate,
		Amount:      pcs * rate,
		Mode:        PricingSample,
	})
	return nil
}

// UpdateItem replaces the catalog-backed item at index with a freshly
// validated and priced one, keeping its position. On any validation
// failure the existing item stays as it was.
func (q *Quotation) UpdateItem(cat Catalog, index int, sku string, sizes []SizeCount, manualRate *int) error {
	if index < 0 || index >= len(q.Items) {
		return fmt.Errorf("index %d of %d items: %w", index, len(q.Items), ErrIndexOutOfRange)
	}
	item, err := q.buildCatalogItem(cat, sku, sizes, manualRate)
	if err != nil {
		return err
	}
	q.Items[index] = item
	return nil
}

// DeleteItem removes the item at index.
func (q *Quotation) DeleteItem(index int) error {
	if index < 0 || index >= len(q.Items) {
		return fmt.Errorf("index %d of %d items: %w", index, len(q.Items), ErrIndexOutOfRange)
	}
	q.Items = append(q.Items[:index], q.Items[index+1:]...)
	return nil
}

// BulkReprice recomputes the rate of every auto-priced item from the
// catalog using the given discounts, records the discounts in the header,
// and returns how many items changed. Manual and sample items are never
// touched. Items whose SKU has dropped out of the catalog are skipped.
func (q *Quotation) BulkReprice(cat Catalog, rateDiscount int, spDiscount float64) (int, error) {
	if !ValidRateDiscount(rateDiscount) {
		return 0, fmt.Errorf("rate discount %d: %w", rateDiscount, ErrMissingDiscountSelection)
	}

	q.Header.RateDiscount = rateDiscount
	q.Header.SPDiscount = spDiscount

	updated := 0
	for i := range q.Items {
		item := &q.Items[i]
		if item.Mode != PricingAuto {
			continue
		}
		entry, ok := cat.Lookup(item.Description)
		if !ok {
			continue
		}
		rate, err := AutoRate(entry.MRP, rateDiscount, spDiscount)
		if err != nil {
			return updated, err
		}
		item.Rate = rate
		item.Amount = item.Pcs * rate
		updated++
	}
	return updated, nil
}

// Totals is the derived money summary of a quotation.
type Totals struct {
	TotalPcs     int
	TotalAmount  int
	Shipping     int
	BillDiscount int // resolved to rupees whatever the input mode
	Advance      int
	NetPayable   int

	// Display forms: shipping keeps non-numeric text ("TO PAY"), the bill
	// discount shows "N %" in percent mode.
	ShippingDisplay     string
	BillDiscountDisplay string
}

// Totals derives the money summary. Calling it twice without mutation
// yields identical results. A percent bill discount truncates to whole
// rupees (999 at 10% discounts 99, not 100) - unlike item rates, which
// round half-up. Both behaviors are long-standing and must not be unified,
// or totals of previously saved quotations would change.
func (q *Quotation) Totals() Totals {
	var t Totals
	for _, item := range q.Items {
		t.TotalPcs += item.Pcs
		t.TotalAmount += item.Amount
	}

	t.Shipping = digitsOrZero(q.Header.Shipping)
	t.Advance = digitsOrZero(q.Header.Advance)
	billInput := digitsOrZero(q.Header.BillDiscount)

	if q.Header.BillDiscountType == BillDiscountPercent {
		t.BillDiscount = t.TotalAmount * billInput / 100
		t.BillDiscountDisplay = fmt.Sprintf("%d %%", billInput)
	} else {
		t.BillDiscount = billInput
		t.BillDiscountDisplay = fmt.Sprintf("Rs %d", t.BillDiscount)
	}

	shippingRaw := strings.TrimSpace(q.Header.Shipping)
	switch {
	case t.Shipping > 0 || isAllDigits(shippingRaw):
		t.ShippingDisplay = fmt.Sprintf("Rs %d", t.Shipping)
	case shippingRaw != "":
		t.ShippingDisplay = shippingRaw
	default:
		t.ShippingDisplay = "-"
	}

	t.NetPayable = t.TotalAmount + t.Shipping - t.BillDiscount - t.Advance
	return t
}

// TotalDiscountText is the combined discount shown on the printed
// quotation: rate discount plus sales-person discount when one is set.
func (q *Quotation) TotalDiscountText() string {
	rateDisc := q.Header.RateDiscount
	if !ValidRateDiscount(rateDisc) {
		rateDisc = 0
	}
	if q.Header.SPDiscount > 0 {
		return trimFloat(float64(rateDisc)+q.Header.SPDiscount) + " %"
	}
	return strconv.Itoa(rateDisc) + " %"
}

// digitsOrZero mirrors the coercion applied to header money fields: the
// trimmed text must be all digits, anything else counts as zero.
func digitsOrZero(s string) int {
	s = strings.TrimSpace(s)
	if !isAllDigits(s) {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// trimFloat formats a float without trailing zeros (67 not 67.000000).
func trimFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
