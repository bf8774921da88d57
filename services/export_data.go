package services

import "strconv"

// ExportCompany is the seller identity block printed on every document.
type ExportCompany struct {
	Name    string
	Address string
	Phone   string
	Email   string
	GSTIN   string
	State   string
}

// QuotationExportData holds everything the PDF and Excel renderers need,
// already formatted for display.
type QuotationExportData struct {
	Company ExportCompany

	Party             string
	Phone             string
	Address           string
	SalesPerson       string
	Date              string
	RateDiscountText  string
	SPDiscountText    string // empty when no SP discount
	TotalDiscountText string
	Remark            string

	Items []QuotationExportItem

	TotalPcs            int
	TotalAmount         int
	ShippingDisplay     string
	BillDiscountDisplay string
	Advance             int
	NetPayable          int
	NetPayableWords     string

	PaymentImagePath string
}

// QuotationExportItem is one printed row: the size run expanded into one
// cell per label plus the display-only MRP and packing columns looked up
// from the catalog ("-" for SKUs no longer listed).
type QuotationExportItem struct {
	Description string
	SizeBoxes   []string // aligned with SizeLabels
	Pcs         int
	Rate        int
	Amount      int
	MRPDisplay  string
	Packing     string
}

// BuildQuotationExportData flattens a quotation for rendering. The
// catalog supplies only the display columns; rates and amounts come from
// the ledger as stored.
func BuildQuotationExportData(q *Quotation, cat Catalog, company ExportCompany) *QuotationExportData {
	totals := q.Totals()

	data := &QuotationExportData{
		Company:             company,
		Party:               q.Header.Party,
		Phone:               q.Header.Phone,
		Address:             q.Header.Address,
		SalesPerson:         q.Header.SalesPerson,
		Date:                q.Header.Date,
		TotalDiscountText:   q.TotalDiscountText(),
		Remark:              q.Header.Remark,
		TotalPcs:            totals.TotalPcs,
		TotalAmount:         totals.TotalAmount,
		ShippingDisplay:     totals.ShippingDisplay,
		BillDiscountDisplay: totals.BillDiscountDisplay,
		Advance:             totals.Advance,
		NetPayable:          totals.NetPayable,
		NetPayableWords:     AmountInWords(totals.NetPayable),
		PaymentImagePath:    q.Header.PaymentImage,
	}

	rateDisc := q.Header.RateDiscount
	if !ValidRateDiscount(rateDisc) {
		rateDisc = 0
	}
	data.RateDiscountText = strconv.Itoa(rateDisc) + " %"
	if q.Header.SPDiscount > 0 {
		data.SPDiscountText = FormatPercent(q.Header.SPDiscount)
	}

	for _, item := range q.Items {
		row := QuotationExportItem{
			Description: item.Description,
			Pcs:         item.Pcs,
			Rate:        item.Rate,
			Amount:      item.Amount,
			MRPDisplay:  "-",
			Packing:     "-",
		}

		boxes := SizeBoxMap(item.Sizes)
		for _, label := range SizeLabels {
			val := ""
			if n := boxes[label]; n > 0 {
				val = strconv.Itoa(n)
			}
			row.SizeBoxes = append(row.SizeBoxes, val)
		}

		if item.Mode != PricingSample {
			if entry, ok := cat.Lookup(item.Description); ok {
				row.MRPDisplay = trimFloat(entry.MRP)
				row.Packing = strconv.Itoa(entry.PcsPerBox)
			}
		}

		data.Items = append(data.Items, row)
	}

	return data
}
