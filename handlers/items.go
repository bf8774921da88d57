package handlers

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quotationdesk/collections"
	"quotationdesk/services"
)

// itemForm reads the catalog-item fields shared by the add and update
// endpoints. The size run arrives in its text encoding ("S-2, M-1") and a
// digits-only rate field switches the item to manual pricing.
func itemForm(e *core.RequestEvent) (sku string, sizes []services.SizeCount, manualRate *int) {
	sku = strings.TrimSpace(e.Request.FormValue("sku"))
	sizes = services.ParseSizes(e.Request.FormValue("sizes"))

	rateText := strings.TrimSpace(e.Request.FormValue("rate"))
	if rateText != "" {
		if rate, err := strconv.Atoi(rateText); err == nil {
			manualRate = &rate
		}
	}
	return sku, sizes, manualRate
}

// totalsPayload is the JSON body returned after every mutation, so the
// caller's totals panel never goes stale.
func totalsPayload(q *services.Quotation) map[string]any {
	t := q.Totals()
	return map[string]any{
		"item_count":            len(q.Items),
		"total_pcs":             t.TotalPcs,
		"total_amount":          t.TotalAmount,
		"shipping":              t.Shipping,
		"shipping_display":      t.ShippingDisplay,
		"bill_discount":         t.BillDiscount,
		"bill_discount_display": t.BillDiscountDisplay,
		"advance":               t.Advance,
		"net_payable":           t.NetPayable,
		"net_payable_formatted": services.FormatRs(t.NetPayable),
		"total_discount_text":   q.TotalDiscountText(),
	}
}

// withQuotation loads the ledger for the {id} path value, runs fn on it,
// and persists the result when fn succeeds. fn errors surface with their
// mapped status and nothing is written.
func withQuotation(app *pocketbase.PocketBase, e *core.RequestEvent, fn func(q *services.Quotation) error) error {
	id := e.Request.PathValue("id")
	record, err := app.FindRecordById("quotations", id)
	if err != nil {
		return jsonError(e, http.StatusNotFound, "Quotation not found")
	}

	q, err := collections.LoadQuotation(app, id)
	if err != nil {
		log.Printf("items: could not load quotation %s: %v", id, err)
		return jsonError(e, http.StatusInternalServerError, "Could not load quotation")
	}

	if err := fn(q); err != nil {
		return jsonError(e, errorStatus(err), err.Error())
	}

	if err := collections.SaveQuotation(app, record, q); err != nil {
		log.Printf("items: could not save quotation %s: %v", id, err)
		return jsonError(e, http.StatusInternalServerError, "Could not save quotation")
	}

	return e.JSON(http.StatusOK, totalsPayload(q))
}

// HandleItemAdd returns a handler that appends a catalog-backed item.
func HandleItemAdd(app *pocketbase.PocketBase, cat services.Catalog) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseForm(); err != nil {
			return jsonError(e, http.StatusBadRequest, "Invalid form data")
		}
		sku, sizes, manualRate := itemForm(e)
		return withQuotation(app, e, func(q *services.Quotation) error {
			return q.AddItem(cat, sku, sizes, manualRate)
		})
	}
}

// HandleSampleItemAdd returns a handler that appends a free-form sample
// row. Pcs and rate pass through as entered text so their validation
// matches the ledger's.
func HandleSampleItemAdd(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseForm(); err != nil {
			return jsonError(e, http.StatusBadRequest, "Invalid form data")
		}
		desc := e.Request.FormValue("description")
		pcs := e.Request.FormValue("pcs")
		rate := e.Request.FormValue("rate")
		return withQuotation(app, e, func(q *services.Quotation) error {
			return q.AddSampleItem(desc, pcs, rate)
		})
	}
}

// HandleItemUpdate returns a handler that replaces the item at the given
// position, revalidating and repricing it.
func HandleItemUpdate(app *pocketbase.PocketBase, cat services.Catalog) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		index, err := strconv.Atoi(e.Request.PathValue("index"))
		if err != nil {
			return jsonError(e, http.StatusBadRequest, "Invalid item index")
		}
		if err := e.Request.ParseForm(); err != nil {
			return jsonError(e, http.StatusBadRequest, "Invalid form data")
		}
		sku, sizes, manualRate := itemForm(e)
		return withQuotation(app, e, func(q *services.Quotation) error {
			return q.UpdateItem(cat, index, sku, sizes, manualRate)
		})
	}
}

// HandleItemDelete returns a handler that removes the item at the given
// position.
func HandleItemDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		index, err := strconv.Atoi(e.Request.PathValue("index"))
		if err != nil {
			return jsonError(e, http.StatusBadRequest, "Invalid item index")
		}
		return withQuotation(app, e, func(q *services.Quotation) error {
			return q.DeleteItem(index)
		})
	}
}

// HandleBulkReprice returns a handler that reprices every auto item from
// the catalog with the submitted discounts.
func HandleBulkReprice(app *pocketbase.PocketBase, cat services.Catalog) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseForm(); err != nil {
			return jsonError(e, http.StatusBadRequest, "Invalid form data")
		}

		rateDiscount, _ := strconv.Atoi(strings.TrimSpace(e.Request.FormValue("rate_discount")))
		spDiscount, _ := strconv.ParseFloat(strings.TrimSpace(e.Request.FormValue("sp_discount")), 64)

		var updated int
		return withQuotation(app, e, func(q *services.Quotation) error {
			var err error
			updated, err = q.BulkReprice(cat, rateDiscount, spDiscount)
			if err != nil {
				return err
			}
			log.Printf("items: HandleBulkReprice: repriced %d items at %d%% + %g%%", updated, rateDiscount, spDiscount)
			return nil
		})
	}
}

// HandleTotals returns a handler that recomputes the totals block without
// mutating anything.
func HandleTotals(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		q, err := collections.LoadQuotation(app, id)
		if err != nil {
			return jsonError(e, http.StatusNotFound, "Quotation not found")
		}
		return e.JSON(http.StatusOK, totalsPayload(q))
	}
}
