package catalog

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"
)

// StockStore maps uppercased SKUs to available units. It refreshes
// independently of the catalog and follows the same swap-on-success
// contract; before the first successful refresh every lookup misses.
type StockStore struct {
	url    string
	client *http.Client

	mu    sync.RWMutex
	units map[string]int
}

// NewStockStore returns an empty stock store that refreshes from url.
func NewStockStore(url string, timeout time.Duration) *StockStore {
	return &StockStore{
		url:    url,
		client: &http.Client{Timeout: timeout},
		units:  map[string]int{},
	}
}

// Refresh fetches the stock sheet (columns SKU and STOCK) and rebuilds
// the mapping.
func (s *StockStore) Refresh(ctx context.Context) error {
	headers, rows, err := fetchTable(ctx, s.client, s.url)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStockFetchFailed, err)
	}

	skuCol := columnIndex(headers, "SKU")
	stockCol := columnIndex(headers, "STOCK")
	if skuCol < 0 || stockCol < 0 {
		return fmt.Errorf("%w: missing SKU/STOCK columns in %v", ErrStockFetchFailed, headers)
	}

	units := make(map[string]int, len(rows))
	for _, row := range rows {
		sku := strings.ToUpper(cell(row, skuCol))
		if sku == "" {
			continue
		}
		units[sku] = intOrZero(cell(row, stockCol))
	}

	s.mu.Lock()
	s.units = units
	s.mu.Unlock()
	return nil
}

// Lookup returns the available units for a SKU. The second return value
// distinguishes "not in the sheet" from a genuine zero stock.
func (s *StockStore) Lookup(sku string) (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	units, ok := s.units[strings.ToUpper(strings.TrimSpace(sku))]
	return units, ok
}

// Suggest returns all stocked SKUs containing the typed fragment, sorted.
func (s *StockStore) Suggest(fragment string) []string {
	fragment = strings.ToUpper(strings.TrimSpace(fragment))
	if fragment == "" {
		return nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var matches []string
	for sku := range s.units {
		if strings.Contains(sku, fragment) {
			matches = append(matches, sku)
		}
	}
	sort.Strings(matches)
	return matches
}
