package handlers

import (
	"errors"
	"net/http"

	"github.com/pocketbase/pocketbase/core"

	"quotationdesk/catalog"
	"quotationdesk/services"
)

// errorStatus maps ledger and store errors onto HTTP status codes.
// Validation failures are the caller's fault, fetch failures are the
// upstream sheet's.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrIndexOutOfRange):
		return http.StatusNotFound
	case errors.Is(err, services.ErrUnknownSKU),
		errors.Is(err, services.ErrEmptySizeBreakdown),
		errors.Is(err, services.ErrMissingDiscountSelection),
		errors.Is(err, services.ErrInvalidSampleInput):
		return http.StatusBadRequest
	case errors.Is(err, catalog.ErrCatalogFetchFailed),
		errors.Is(err, catalog.ErrStockFetchFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// jsonError writes the standard error envelope.
func jsonError(e *core.RequestEvent, status int, message string) error {
	return e.JSON(status, map[string]string{"error": message})
}
