package handlers

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quotationdesk/collections"
	"quotationdesk/services"
)

// sanitizeFilename removes characters that are unsafe for filenames.
func sanitizeFilename(s string) string {
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "/", "-")
	s = strings.ReplaceAll(s, "\\", "-")
	s = strings.ReplaceAll(s, ":", "-")
	return s
}

// exportBasename names the download after the party and date, falling back
// to the record id when the party is blank.
func exportBasename(q *services.Quotation, id string) string {
	party := strings.TrimSpace(q.Header.Party)
	if party == "" {
		party = id
	}
	return sanitizeFilename(fmt.Sprintf("Quotation_%s_%s", party, q.Header.Date))
}

// HandleQuotationExportPDF returns a handler that generates and downloads
// the printable PDF for a quotation.
func HandleQuotationExportPDF(app *pocketbase.PocketBase, cat services.Catalog, company services.ExportCompany) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		q, err := collections.LoadQuotation(app, id)
		if err != nil {
			log.Printf("export: quotation not found %s: %v", id, err)
			return jsonError(e, http.StatusNotFound, "Quotation not found")
		}

		data := services.BuildQuotationExportData(q, cat, company)

		pdfBytes, err := services.GenerateQuotationPDF(data)
		if err != nil {
			log.Printf("export: failed to generate PDF for %s: %v", id, err)
			return jsonError(e, http.StatusInternalServerError, "Failed to generate PDF")
		}

		filename := exportBasename(q, id) + ".pdf"
		e.Response.Header().Set("Content-Type", "application/pdf")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		_, err = e.Response.Write(pdfBytes)
		return err
	}
}

// HandleQuotationExportExcel returns a handler that generates and
// downloads the Excel workbook for a quotation.
func HandleQuotationExportExcel(app *pocketbase.PocketBase, cat services.Catalog, company services.ExportCompany) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		q, err := collections.LoadQuotation(app, id)
		if err != nil {
			log.Printf("export: quotation not found %s: %v", id, err)
			return jsonError(e, http.StatusNotFound, "Quotation not found")
		}

		data := services.BuildQuotationExportData(q, cat, company)

		xlsxBytes, err := services.GenerateQuotationExcel(data)
		if err != nil {
			log.Printf("export: failed to generate Excel for %s: %v", id, err)
			return jsonError(e, http.StatusInternalServerError, "Failed to generate Excel file")
		}

		filename := exportBasename(q, id) + ".xlsx"
		e.Response.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		_, err = e.Response.Write(xlsxBytes)
		return err
	}
}

// HandleQuotationExportJSON returns a handler that writes the snapshot
// file into the export directory and serves it as a download. The file on
// disk is what a later import reads back.
func HandleQuotationExportJSON(app *pocketbase.PocketBase, exportDir string) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		q, err := collections.LoadQuotation(app, id)
		if err != nil {
			log.Printf("export: quotation not found %s: %v", id, err)
			return jsonError(e, http.StatusNotFound, "Quotation not found")
		}

		path, err := services.WriteSnapshot(q, exportDir)
		if err != nil {
			log.Printf("export: failed to write snapshot for %s: %v", id, err)
			return jsonError(e, http.StatusInternalServerError, "Failed to write snapshot")
		}

		body, err := services.MarshalSnapshot(q)
		if err != nil {
			log.Printf("export: failed to marshal snapshot for %s: %v", id, err)
			return jsonError(e, http.StatusInternalServerError, "Failed to render snapshot")
		}

		e.Response.Header().Set("Content-Type", "application/json")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filepath.Base(path)))
		_, err = e.Response.Write(body)
		return err
	}
}

// HandleQuotationImportJSON returns a handler that reads an uploaded
// snapshot and stores it as a new quotation.
func HandleQuotationImportJSON(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		file, _, err := e.Request.FormFile("snapshot")
		if err != nil {
			return jsonError(e, http.StatusBadRequest, "Missing snapshot file")
		}
		defer file.Close()

		body, err := io.ReadAll(io.LimitReader(file, 4<<20))
		if err != nil {
			return jsonError(e, http.StatusBadRequest, "Could not read snapshot file")
		}

		q, err := services.UnmarshalSnapshot(body)
		if err != nil {
			log.Printf("export: snapshot import failed: %v", err)
			return jsonError(e, http.StatusBadRequest, "Invalid snapshot file")
		}

		col, err := app.FindCollectionByNameOrId("quotations")
		if err != nil {
			return jsonError(e, http.StatusInternalServerError, "Internal error")
		}
		record := core.NewRecord(col)
		if err := collections.SaveQuotation(app, record, q); err != nil {
			log.Printf("export: could not save imported quotation: %v", err)
			return jsonError(e, http.StatusInternalServerError, "Could not save quotation")
		}

		return e.JSON(http.StatusCreated, map[string]string{"id": record.Id})
	}
}
