package main

import (
	"context"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quotationdesk/catalog"
	"quotationdesk/collections"
	"quotationdesk/config"
	"quotationdesk/handlers"
	"quotationdesk/services"
)

func main() {
	cfg := config.Load()

	app := pocketbase.New()

	catalogStore := catalog.NewStore(cfg.Catalog.SheetURL, cfg.Catalog.FetchTimeout)
	stockStore := catalog.NewStockStore(cfg.Catalog.StockSheetURL, cfg.Catalog.FetchTimeout)

	company := services.ExportCompany{
		Name:    cfg.Company.Name,
		Address: cfg.Company.Address,
		Phone:   cfg.Company.Phone,
		Email:   cfg.Company.Email,
		GSTIN:   cfg.Company.GSTIN,
		State:   cfg.Company.State,
	}

	// Create collections and load the price sheets on startup. A failed
	// sheet fetch is not fatal; the stores stay empty until a manual
	// refresh succeeds.
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		collections.Setup(app)
		if err := catalogStore.Refresh(context.Background()); err != nil {
			log.Printf("Warning: initial catalog fetch failed: %v", err)
		}
		if err := stockStore.Refresh(context.Background()); err != nil {
			log.Printf("Warning: initial stock fetch failed: %v", err)
		}
		return se.Next()
	})

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		// ── Quotation CRUD ───────────────────────────────────────
		se.Router.POST("/quotations", handlers.HandleQuotationCreate(app))
		se.Router.GET("/quotations", handlers.HandleQuotationList(app))
		se.Router.GET("/quotations/{id}", handlers.HandleQuotationView(app))
		se.Router.DELETE("/quotations/{id}", handlers.HandleQuotationDelete(app))
		se.Router.PATCH("/quotations/{id}/meta", handlers.HandleQuotationMetaUpdate(app))

		// ── Line items ───────────────────────────────────────────
		se.Router.POST("/quotations/{id}/items", handlers.HandleItemAdd(app, catalogStore))
		se.Router.POST("/quotations/{id}/items/sample", handlers.HandleSampleItemAdd(app))
		se.Router.PATCH("/quotations/{id}/items/{index}", handlers.HandleItemUpdate(app, catalogStore))
		se.Router.DELETE("/quotations/{id}/items/{index}", handlers.HandleItemDelete(app))

		// ── Pricing and totals ───────────────────────────────────
		se.Router.POST("/quotations/{id}/reprice", handlers.HandleBulkReprice(app, catalogStore))
		se.Router.GET("/quotations/{id}/totals", handlers.HandleTotals(app))

		// ── Exports ──────────────────────────────────────────────
		se.Router.GET("/quotations/{id}/export/pdf", handlers.HandleQuotationExportPDF(app, catalogStore, company))
		se.Router.GET("/quotations/{id}/export/excel", handlers.HandleQuotationExportExcel(app, catalogStore, company))
		se.Router.GET("/quotations/{id}/export/json", handlers.HandleQuotationExportJSON(app, cfg.Export.Dir))
		se.Router.POST("/quotations/import", handlers.HandleQuotationImportJSON(app))
		se.Router.GET("/quotations/{id}/preview", handlers.HandleQuotationPreview(app, catalogStore, company))

		// ── Payment image ────────────────────────────────────────
		se.Router.POST("/quotations/{id}/payment-image", handlers.HandlePaymentImageUpload(app, cfg.Export.Dir))
		se.Router.DELETE("/quotations/{id}/payment-image", handlers.HandlePaymentImageDelete(app))

		// ── Catalog and stock sheets ─────────────────────────────
		se.Router.POST("/catalog/refresh", handlers.HandleCatalogRefresh(catalogStore))
		se.Router.GET("/catalog/suggest", handlers.HandleCatalogSuggest(catalogStore))
		se.Router.POST("/stock/refresh", handlers.HandleStockRefresh(stockStore))
		se.Router.GET("/stock/{sku}", handlers.HandleStockLookup(stockStore))

		// Redirect home to the quotation list
		se.Router.GET("/", func(e *core.RequestEvent) error {
			return e.Redirect(http.StatusFound, "/quotations")
		})

		return se.Next()
	})

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
