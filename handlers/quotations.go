package handlers

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quotationdesk/collections"
	"quotationdesk/services"
)

// quotationSummary is the list-page projection of a quotation record.
type quotationSummary struct {
	ID          string `json:"id"`
	Party       string `json:"party"`
	SalesPerson string `json:"sales_person"`
	Date        string `json:"date"`
	TotalPcs    int    `json:"total_pcs"`
	NetPayable  int    `json:"net_payable"`
}

// HandleQuotationCreate returns a handler that opens a new quotation.
// Header fields arrive as form values; items are added through the item
// endpoints afterwards.
func HandleQuotationCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseForm(); err != nil {
			log.Printf("quotations: HandleQuotationCreate: could not parse form: %v", err)
			return jsonError(e, http.StatusBadRequest, "Invalid form data")
		}

		q := services.NewQuotation()
		applyHeaderForm(q, e)
		if q.Header.Date == "" {
			q.Header.Date = time.Now().Format("02-01-2006")
		}

		col, err := app.FindCollectionByNameOrId("quotations")
		if err != nil {
			log.Printf("quotations: HandleQuotationCreate: collection missing: %v", err)
			return jsonError(e, http.StatusInternalServerError, "Internal error")
		}

		record := core.NewRecord(col)
		if err := collections.SaveQuotation(app, record, q); err != nil {
			log.Printf("quotations: HandleQuotationCreate: save failed: %v", err)
			return jsonError(e, http.StatusInternalServerError, "Could not save quotation")
		}

		return e.JSON(http.StatusCreated, map[string]string{"id": record.Id})
	}
}

// HandleQuotationList returns a handler that lists saved quotations,
// newest first.
func HandleQuotationList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		records, err := app.FindRecordsByFilter("quotations", "id != ''", "-created", 0, 0, nil)
		if err != nil {
			log.Printf("quotations: HandleQuotationList: query failed: %v", err)
			return jsonError(e, http.StatusInternalServerError, "Could not list quotations")
		}

		summaries := make([]quotationSummary, 0, len(records))
		for _, rec := range records {
			q, err := collections.LoadQuotation(app, rec.Id)
			if err != nil {
				log.Printf("quotations: HandleQuotationList: load %s failed: %v", rec.Id, err)
				continue
			}
			totals := q.Totals()
			summaries = append(summaries, quotationSummary{
				ID:          rec.Id,
				Party:       rec.GetString("party"),
				SalesPerson: rec.GetString("sales_person"),
				Date:        rec.GetString("date"),
				TotalPcs:    totals.TotalPcs,
				NetPayable:  totals.NetPayable,
			})
		}

		return e.JSON(http.StatusOK, summaries)
	}
}

// HandleQuotationView returns a handler that serves one quotation in its
// snapshot form.
func HandleQuotationView(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		q, err := collections.LoadQuotation(app, id)
		if err != nil {
			log.Printf("quotations: HandleQuotationView: %v", err)
			return jsonError(e, http.StatusNotFound, "Quotation not found")
		}

		body, err := services.MarshalSnapshot(q)
		if err != nil {
			log.Printf("quotations: HandleQuotationView: marshal failed: %v", err)
			return jsonError(e, http.StatusInternalServerError, "Could not render quotation")
		}

		e.Response.Header().Set("Content-Type", "application/json")
		e.Response.WriteHeader(http.StatusOK)
		_, err = e.Response.Write(body)
		return err
	}
}

// HandleQuotationDelete returns a handler that deletes a quotation and,
// through the relation cascade, its item records.
func HandleQuotationDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		record, err := app.FindRecordById("quotations", id)
		if err != nil {
			return jsonError(e, http.StatusNotFound, "Quotation not found")
		}

		if err := app.Delete(record); err != nil {
			log.Printf("quotations: HandleQuotationDelete: %v", err)
			return jsonError(e, http.StatusInternalServerError, "Could not delete quotation")
		}

		return e.JSON(http.StatusOK, map[string]string{"deleted": id})
	}
}

// HandleQuotationMetaUpdate returns a handler that rewrites the header
// fields of an existing quotation. Only fields present in the form are
// touched; items stay as they are.
func HandleQuotationMetaUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		record, err := app.FindRecordById("quotations", id)
		if err != nil {
			return jsonError(e, http.StatusNotFound, "Quotation not found")
		}

		q, err := collections.LoadQuotation(app, id)
		if err != nil {
			log.Printf("quotations: HandleQuotationMetaUpdate: load failed: %v", err)
			return jsonError(e, http.StatusInternalServerError, "Could not load quotation")
		}

		if err := e.Request.ParseForm(); err != nil {
			return jsonError(e, http.StatusBadRequest, "Invalid form data")
		}
		applyHeaderForm(q, e)

		if err := collections.SaveQuotation(app, record, q); err != nil {
			log.Printf("quotations: HandleQuotationMetaUpdate: save failed: %v", err)
			return jsonError(e, http.StatusInternalServerError, "Could not save quotation")
		}

		return e.JSON(http.StatusOK, totalsPayload(q))
	}
}

// applyHeaderForm copies the header form fields that were submitted onto
// the ledger. Money fields keep their raw entered text.
func applyHeaderForm(q *services.Quotation, e *core.RequestEvent) {
	set := func(key string, dst *string) {
		if _, ok := e.Request.Form[key]; ok {
			*dst = strings.TrimSpace(e.Request.FormValue(key))
		}
	}

	set("party", &q.Header.Party)
	set("phone", &q.Header.Phone)
	set("address", &q.Header.Address)
	set("sales_person", &q.Header.SalesPerson)
	set("shipping", &q.Header.Shipping)
	set("bill_discount", &q.Header.BillDiscount)
	set("advance", &q.Header.Advance)
	set("remark", &q.Header.Remark)
	set("date", &q.Header.Date)

	if _, ok := e.Request.Form["bill_discount_type"]; ok {
		if e.Request.FormValue("bill_discount_type") == services.BillDiscountPercent {
			q.Header.BillDiscountType = services.BillDiscountPercent
		} else {
			q.Header.BillDiscountType = services.BillDiscountAmount
		}
	}
}
