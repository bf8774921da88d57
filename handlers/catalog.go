package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase/core"

	"quotationdesk/catalog"
)

// HandleCatalogRefresh returns a handler that re-fetches the price list.
// A failed fetch leaves the previously loaded entries untouched.
func HandleCatalogRefresh(store *catalog.Store) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := store.Refresh(e.Request.Context()); err != nil {
			log.Printf("catalog: HandleCatalogRefresh: %v", err)
			return jsonError(e, errorStatus(err), "Could not refresh catalog")
		}
		return e.JSON(http.StatusOK, map[string]int{"entries": store.Len()})
	}
}

// HandleCatalogSuggest returns a handler that serves SKU completions for
// the q query parameter.
func HandleCatalogSuggest(store *catalog.Store) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		fragment := strings.TrimSpace(e.Request.URL.Query().Get("q"))
		matches := store.Suggest(fragment)
		if matches == nil {
			matches = []string{}
		}
		return e.JSON(http.StatusOK, matches)
	}
}

// HandleStockRefresh returns a handler that re-fetches the stock sheet.
func HandleStockRefresh(store *catalog.StockStore) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := store.Refresh(e.Request.Context()); err != nil {
			log.Printf("catalog: HandleStockRefresh: %v", err)
			return jsonError(e, errorStatus(err), "Could not refresh stock")
		}
		return e.JSON(http.StatusOK, map[string]string{"status": "ok"})
	}
}

// HandleStockLookup returns a handler that serves the stock count for one
// SKU. Unknown SKUs are reported as such rather than as zero so the
// caller can tell "out of stock" from "not tracked".
func HandleStockLookup(store *catalog.StockStore) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		sku := e.Request.PathValue("sku")
		count, ok := store.Lookup(sku)
		if !ok {
			return jsonError(e, http.StatusNotFound, "SKU not tracked in stock sheet")
		}
		return e.JSON(http.StatusOK, map[string]any{"sku": strings.ToUpper(strings.TrimSpace(sku)), "stock": count})
	}
}
