package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quotationdesk/collections"
	"quotationdesk/services"
	"quotationdesk/templates"
)

// HandleQuotationPreview returns a handler that renders the quotation as
// a print-friendly HTML page.
func HandleQuotationPreview(app *pocketbase.PocketBase, cat services.Catalog, company services.ExportCompany) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		q, err := collections.LoadQuotation(app, id)
		if err != nil {
			log.Printf("preview: quotation not found %s: %v", id, err)
			return e.String(http.StatusNotFound, "Quotation not found")
		}

		data := services.BuildQuotationExportData(q, cat, company)
		component := templates.QuotationPreviewPage(data)
		return component.Render(e.Request.Context(), e.Response)
	}
}
