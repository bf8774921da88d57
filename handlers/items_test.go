package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quotationdesk/collections"
	"quotationdesk/services"
	"quotationdesk/testhelpers"
)

func testCatalog() testhelpers.FakeCatalog {
	return testhelpers.FakeCatalog{
		"AB12": {MRP: 1000, PcsPerBox: 6},
		"CD34": {MRP: 999, PcsPerBox: 4},
	}
}

// newPricedQuotation creates a quotation record whose header already has a
// rate discount selected.
func newPricedQuotation(t *testing.T, app *pocketbase.PocketBase) *core.Record {
	t.Helper()
	quote := testhelpers.CreateTestQuotation(t, app, "Item Party")
	quote.Set("rate_discount", 57)
	if err := app.Save(quote); err != nil {
		t.Fatalf("failed to set rate discount: %v", err)
	}
	return quote
}

func decodeTotals(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var totals map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &totals); err != nil {
		t.Fatalf("response is not JSON: %v (%s)", err, rec.Body.String())
	}
	return totals
}

func TestHandleItemAdd(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	quote := newPricedQuotation(t, app)
	handler := HandleItemAdd(app, testCatalog())

	form := url.Values{}
	form.Set("sku", "ab12")
	form.Set("sizes", "S-2, M-1")
	req := newFormRequest(http.MethodPost, fmt.Sprintf("/quotations/%s/items", quote.Id), form)
	req.SetPathValue("id", quote.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	totals := decodeTotals(t, rec)
	if totals["total_pcs"] != float64(18) || totals["total_amount"] != float64(7740) {
		t.Errorf("totals = %v, want pcs 18 amount 7740", totals)
	}

	loaded, err := collections.LoadQuotation(app, quote.Id)
	if err != nil {
		t.Fatalf("LoadQuotation error: %v", err)
	}
	if len(loaded.Items) != 1 || loaded.Items[0].Rate != 430 {
		t.Errorf("persisted items = %+v", loaded.Items)
	}
}

func TestHandleItemAddUnknownSKU(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	quote := newPricedQuotation(t, app)
	handler := HandleItemAdd(app, testCatalog())

	form := url.Values{}
	form.Set("sku", "ZZ99")
	form.Set("sizes", "S-1")
	req := newFormRequest(http.MethodPost, fmt.Sprintf("/quotations/%s/items", quote.Id), form)
	req.SetPathValue("id", quote.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}

	loaded, _ := collections.LoadQuotation(app, quote.Id)
	if len(loaded.Items) != 0 {
		t.Error("failed add must not persist anything")
	}
}

func TestHandleItemAddManualRate(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	quote := testhelpers.CreateTestQuotation(t, app, "Manual Party")
	handler := HandleItemAdd(app, testCatalog())

	// No rate discount selected, but a manual rate bypasses auto pricing
	form := url.Values{}
	form.Set("sku", "AB12")
	form.Set("sizes", "L-1")
	form.Set("rate", "400")
	req := newFormRequest(http.MethodPost, fmt.Sprintf("/quotations/%s/items", quote.Id), form)
	req.SetPathValue("id", quote.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	loaded, _ := collections.LoadQuotation(app, quote.Id)
	if loaded.Items[0].Mode != services.PricingManual || loaded.Items[0].Rate != 400 {
		t.Errorf("item = %+v, want manual at 400", loaded.Items[0])
	}
}

func TestHandleSampleItemAdd(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	quote := testhelpers.CreateTestQuotation(t, app, "Sample Party")
	handler := HandleSampleItemAdd(app)

	form := url.Values{}
	form.Set("description", "Printed Jersey")
	form.Set("pcs", "5")
	form.Set("rate", "120")
	req := newFormRequest(http.MethodPost, fmt.Sprintf("/quotations/%s/items/sample", quote.Id), form)
	req.SetPathValue("id", quote.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	loaded, _ := collections.LoadQuotation(app, quote.Id)
	if loaded.Items[0].Mode != services.PricingSample || loaded.Items[0].Amount != 600 {
		t.Errorf("item = %+v", loaded.Items[0])
	}
}

func TestHandleSampleItemAddBadInput(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	quote := testhelpers.CreateTestQuotation(t, app, "Sample Party")
	handler := HandleSampleItemAdd(app)

	form := url.Values{}
	form.Set("description", "X")
	form.Set("pcs", "five")
	form.Set("rate", "120")
	req := newFormRequest(http.MethodPost, fmt.Sprintf("/quotations/%s/items/sample", quote.Id), form)
	req.SetPathValue("id", quote.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestHandleItemDelete(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	quote := testhelpers.CreateTestQuotation(t, app, "Delete Party")
	testhelpers.CreateTestQuotationItem(t, app, quote.Id, "AB12", 6, 430)

	handler := HandleItemDelete(app)
	req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/quotations/%s/items/0", quote.Id), nil)
	req.SetPathValue("id", quote.Id)
	req.SetPathValue("index", "0")
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	loaded, _ := collections.LoadQuotation(app, quote.Id)
	if len(loaded.Items) != 0 {
		t.Errorf("expected no items, got %d", len(loaded.Items))
	}
}

func TestHandleItemDeleteOutOfRange(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	quote := testhelpers.CreateTestQuotation(t, app, "Delete Party")

	handler := HandleItemDelete(app)
	req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/quotations/%s/items/3", quote.Id), nil)
	req.SetPathValue("id", quote.Id)
	req.SetPathValue("index", "3")
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestHandleItemUpdate(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	quote := newPricedQuotation(t, app)
	cat := testCatalog()

	addHandler := HandleItemAdd(app, cat)
	form := url.Values{}
	form.Set("sku", "AB12")
	form.Set("sizes", "S-1")
	req := newFormRequest(http.MethodPost, fmt.Sprintf("/quotations/%s/items", quote.Id), form)
	req.SetPathValue("id", quote.Id)
	rec := httptest.NewRecorder()
	if err := addHandler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("add handler error: %v", err)
	}

	handler := HandleItemUpdate(app, cat)
	form = url.Values{}
	form.Set("sku", "CD34")
	form.Set("sizes", "M-2")
	req = newFormRequest(http.MethodPatch, fmt.Sprintf("/quotations/%s/items/0", quote.Id), form)
	req.SetPathValue("id", quote.Id)
	req.SetPathValue("index", "0")
	rec = httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	loaded, _ := collections.LoadQuotation(app, quote.Id)
	if len(loaded.Items) != 1 || loaded.Items[0].Description != "CD34" || loaded.Items[0].Pcs != 8 {
		t.Errorf("item after update = %+v", loaded.Items)
	}
}

func TestHandleBulkReprice(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	quote := newPricedQuotation(t, app)
	cat := testCatalog()

	addHandler := HandleItemAdd(app, cat)
	form := url.Values{}
	form.Set("sku", "AB12")
	form.Set("sizes", "S-1")
	req := newFormRequest(http.MethodPost, fmt.Sprintf("/quotations/%s/items", quote.Id), form)
	req.SetPathValue("id", quote.Id)
	if err := addHandler(newTestRequestEvent(app, req, httptest.NewRecorder())); err != nil {
		t.Fatalf("add handler error: %v", err)
	}

	handler := HandleBulkReprice(app, cat)
	form = url.Values{}
	form.Set("rate_discount", "55")
	req = newFormRequest(http.MethodPost, fmt.Sprintf("/quotations/%s/reprice", quote.Id), form)
	req.SetPathValue("id", quote.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	loaded, _ := collections.LoadQuotation(app, quote.Id)
	if loaded.Items[0].Rate != 450 {
		t.Errorf("rate after reprice = %d, want 450", loaded.Items[0].Rate)
	}
	if loaded.Header.RateDiscount != 55 {
		t.Errorf("header discount = %d, want 55", loaded.Header.RateDiscount)
	}
}

func TestHandleBulkRepriceInvalidDiscount(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	quote := newPricedQuotation(t, app)

	handler := HandleBulkReprice(app, testCatalog())
	form := url.Values{}
	form.Set("rate_discount", "50")
	req := newFormRequest(http.MethodPost, fmt.Sprintf("/quotations/%s/reprice", quote.Id), form)
	req.SetPathValue("id", quote.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestHandleTotals(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	quote := testhelpers.CreateTestQuotation(t, app, "Totals Party")
	testhelpers.CreateTestQuotationItem(t, app, quote.Id, "AB12", 18, 430)

	handler := HandleTotals(app)
	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/quotations/%s/totals", quote.Id), nil)
	req.SetPathValue("id", quote.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	totals := decodeTotals(t, rec)
	if totals["total_amount"] != float64(7740) || totals["net_payable"] != float64(7740) {
		t.Errorf("totals = %v", totals)
	}
	if totals["net_payable_formatted"] != "Rs 7,740" {
		t.Errorf("net_payable_formatted = %v", totals["net_payable_formatted"])
	}
}
