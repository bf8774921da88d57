package collections

import (
	"fmt"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quotationdesk/services"
)

// SaveQuotation writes the ledger into the given quotation record and
// replaces its item records. Existing header values are overwritten
// wholesale; item sort_order follows ledger order.
func SaveQuotation(app *pocketbase.PocketBase, record *core.Record, q *services.Quotation) error {
	h := q.Header
	record.Set("party", h.Party)
	record.Set("phone", h.Phone)
	record.Set("address", h.Address)
	record.Set("sales_person", h.SalesPerson)
	record.Set("rate_discount", h.RateDiscount)
	record.Set("sp_discount", h.SPDiscount)
	record.Set("total_discount_text", q.TotalDiscountText())
	record.Set("bill_discount", h.BillDiscount)
	record.Set("bill_discount_type", h.BillDiscountType)
	record.Set("shipping", h.Shipping)
	record.Set("advance", h.Advance)
	record.Set("remark", h.Remark)
	record.Set("payment_image", h.PaymentImage)
	record.Set("date", h.Date)

	if err := app.Save(record); err != nil {
		return fmt.Errorf("save quotation record: %w", err)
	}

	existing, err := app.FindRecordsByFilter(
		"quotation_items",
		"quotation = {:quotationId}",
		"sort_order",
		0,
		0,
		map[string]any{"quotationId": record.Id},
	)
	if err != nil {
		return fmt.Errorf("load existing items: %w", err)
	}
	for _, item := range existing {
		if err := app.Delete(item); err != nil {
			return fmt.Errorf("delete stale item record: %w", err)
		}
	}

	itemsCol, err := app.FindCollectionByNameOrId("quotation_items")
	if err != nil {
		return fmt.Errorf("find quotation_items collection: %w", err)
	}

	for i, item := range q.Items {
		rec := core.NewRecord(itemsCol)
		rec.Set("quotation", record.Id)
		rec.Set("sort_order", i+1)
		rec.Set("description", item.Description)
		rec.Set("size", services.EncodeSizes(item.Sizes))
		rec.Set("pcs", item.Pcs)
		rec.Set("rate", item.Rate)
		rec.Set("amount", item.Amount)
		rec.Set("pricing_mode", string(item.Mode))
		if err := app.Save(rec); err != nil {
			return fmt.Errorf("save item record %d: %w", i, err)
		}
	}

	return nil
}

// LoadQuotation rebuilds the ledger from a quotation record and its item
// records. The stored rates and amounts are taken as-is; totals computed
// on the result never consult the catalog.
func LoadQuotation(app *pocketbase.PocketBase, quotationID string) (*services.Quotation, error) {
	record, err := app.FindRecordById("quotations", quotationID)
	if err != nil {
		return nil, fmt.Errorf("quotation %s not found: %w", quotationID, err)
	}

	q := services.NewQuotation()
	q.Header = services.Header{
		Party:            record.GetString("party"),
		Phone:            record.GetString("phone"),
		Address:          record.GetString("address"),
		SalesPerson:      record.GetString("sales_person"),
		SPDiscount:       record.GetFloat("sp_discount"),
		BillDiscount:     record.GetString("bill_discount"),
		BillDiscountType: record.GetString("bill_discount_type"),
		Shipping:         record.GetString("shipping"),
		Advance:          record.GetString("advance"),
		Remark:           record.GetString("remark"),
		PaymentImage:     record.GetString("payment_image"),
		Date:             record.GetString("date"),
	}
	if q.Header.BillDiscountType == "" {
		q.Header.BillDiscountType = services.BillDiscountAmount
	}
	if d := record.GetInt("rate_discount"); services.ValidRateDiscount(d) {
		q.Header.RateDiscount = d
	}

	items, err := app.FindRecordsByFilter(
		"quotation_items",
		"quotation = {:quotationId}",
		"sort_order",
		0,
		0,
		map[string]any{"quotationId": quotationID},
	)
	if err != nil {
		return nil, fmt.Errorf("load items of quotation %s: %w", quotationID, err)
	}

	for _, rec := range items {
		mode := services.PricingMode(rec.GetString("pricing_mode"))
		switch mode {
		case services.PricingAuto, services.PricingManual, services.PricingSample:
		default:
			mode = services.PricingAuto
		}
		q.Items = append(q.Items, services.LineItem{
			Description: rec.GetString("description"),
			Sizes:       services.ParseSizes(rec.GetString("size")),
			Pcs:         rec.GetInt("pcs"),
			Rate:        rec.GetInt("rate"),
			Amount:      rec.GetInt("amount"),
			Mode:        mode,
		})
	}

	return q, nil
}
