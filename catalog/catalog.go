package catalog

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"quotationdesk/services"
)

// Fetch failures. The store keeps serving whatever it last loaded.
var (
	ErrCatalogFetchFailed = errors.New("catalog sheet could not be loaded")
	ErrStockFetchFailed   = errors.New("stock sheet could not be loaded")
)

// Entry is the catalog value for one SKU.
type Entry = services.CatalogEntry

// Store maps uppercased SKUs to their list price and packing size. The
// whole mapping is replaced on every successful refresh; a failed refresh
// leaves the previous mapping (possibly empty) untouched.
type Store struct {
	url    string
	client *http.Client

	mu      sync.RWMutex
	entries map[string]Entry
}

// NewStore returns an empty store that refreshes from url.
func NewStore(url string, timeout time.Duration) *Store {
	return &Store{
		url:     url,
		client:  &http.Client{Timeout: timeout},
		entries: map[string]Entry{},
	}
}

// Refresh fetches the sheet and rebuilds the mapping. The columns SKU,
// MRP and PCS are located case/whitespace-insensitively; rows with a
// blank SKU are skipped and non-numeric prices or packing sizes coerce
// to zero. The new mapping is swapped in only after the whole fetch and
// parse succeeded.
func (s *Store) Refresh(ctx context.Context) error {
	headers, rows, err := fetchTable(ctx, s.client, s.url)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCatalogFetchFailed, err)
	}

	skuCol := columnIndex(headers, "SKU")
	mrpCol := columnIndex(headers, "MRP")
	pcsCol := columnIndex(headers, "PCS")
	if skuCol < 0 || mrpCol < 0 {
		return fmt.Errorf("%w: missing SKU/MRP columns in %v", ErrCatalogFetchFailed, headers)
	}

	entries := make(map[string]Entry, len(rows))
	for _, row := range rows {
		sku := strings.ToUpper(cell(row, skuCol))
		if sku == "" {
			continue
		}
		entries[sku] = Entry{
			MRP:       floatOrZero(cell(row, mrpCol)),
			PcsPerBox: intOrZero(cell(row, pcsCol)),
		}
	}

	s.mu.Lock()
	s.entries = entries
	s.mu.Unlock()
	return nil
}

// Lookup returns the entry for a SKU, matching case-insensitively.
func (s *Store) Lookup(sku string) (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.entries[strings.ToUpper(strings.TrimSpace(sku))]
	return entry, ok
}

// Suggest returns all SKUs containing the typed fragment, sorted, for
// the autosuggest box. An empty fragment suggests nothing.
func (s *Store) Suggest(fragment string) []string {
	fragment = strings.ToUpper(strings.TrimSpace(fragment))
	if fragment == "" {
		return nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var matches []string
	for sku := range s.entries {
		if strings.Contains(sku, fragment) {
			matches = append(matches, sku)
		}
	}
	sort.Strings(matches)
	return matches
}

// Len reports how many SKUs are currently loaded.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
