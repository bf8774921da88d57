package handlers

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quotationdesk/collections"
)

// HandlePaymentImageUpload returns a handler that stores an uploaded
// payment screenshot on disk and records its path on the quotation. A
// quotation with a payment image prints the extra payment page and the
// cancellation notice.
func HandlePaymentImageUpload(app *pocketbase.PocketBase, uploadDir string) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		record, err := app.FindRecordById("quotations", id)
		if err != nil {
			return jsonError(e, http.StatusNotFound, "Quotation not found")
		}

		file, header, err := e.Request.FormFile("image")
		if err != nil {
			return jsonError(e, http.StatusBadRequest, "Missing image file")
		}
		defer file.Close()

		ext := filepath.Ext(header.Filename)
		switch ext {
		case ".png", ".jpg", ".jpeg":
		default:
			return jsonError(e, http.StatusBadRequest, "Payment image must be PNG or JPEG")
		}

		if err := os.MkdirAll(uploadDir, 0o755); err != nil {
			log.Printf("payment_image: could not create upload dir: %v", err)
			return jsonError(e, http.StatusInternalServerError, "Could not store image")
		}

		path := filepath.Join(uploadDir, fmt.Sprintf("payment_%s%s", id, ext))
		dst, err := os.Create(path)
		if err != nil {
			log.Printf("payment_image: could not create %s: %v", path, err)
			return jsonError(e, http.StatusInternalServerError, "Could not store image")
		}
		if _, err := io.Copy(dst, io.LimitReader(file, 16<<20)); err != nil {
			dst.Close()
			os.Remove(path)
			log.Printf("payment_image: could not write %s: %v", path, err)
			return jsonError(e, http.StatusInternalServerError, "Could not store image")
		}
		if err := dst.Close(); err != nil {
			os.Remove(path)
			return jsonError(e, http.StatusInternalServerError, "Could not store image")
		}

		q, err := collections.LoadQuotation(app, id)
		if err != nil {
			return jsonError(e, http.StatusInternalServerError, "Could not load quotation")
		}
		q.Header.PaymentImage = path
		if err := collections.SaveQuotation(app, record, q); err != nil {
			log.Printf("payment_image: could not save quotation %s: %v", id, err)
			return jsonError(e, http.StatusInternalServerError, "Could not save quotation")
		}

		return e.JSON(http.StatusOK, map[string]string{"payment_image": path})
	}
}

// HandlePaymentImageDelete returns a handler that clears the payment
// image reference and removes the stored file.
func HandlePaymentImageDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		record, err := app.FindRecordById("quotations", id)
		if err != nil {
			return jsonError(e, http.StatusNotFound, "Quotation not found")
		}

		q, err := collections.LoadQuotation(app, id)
		if err != nil {
			return jsonError(e, http.StatusInternalServerError, "Could not load quotation")
		}

		if q.Header.PaymentImage != "" {
			if err := os.Remove(q.Header.PaymentImage); err != nil && !os.IsNotExist(err) {
				log.Printf("payment_image: could not remove %s: %v", q.Header.PaymentImage, err)
			}
		}

		q.Header.PaymentImage = ""
		if err := collections.SaveQuotation(app, record, q); err != nil {
			log.Printf("payment_image: could not save quotation %s: %v", id, err)
			return jsonError(e, http.StatusInternalServerError, "Could not save quotation")
		}

		return e.JSON(http.StatusOK, map[string]string{"payment_image": ""})
	}
}
