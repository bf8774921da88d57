// Package catalog holds the process-wide SKU catalog and stock caches,
// each rebuilt wholesale from a remote sheet.
package catalog

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// fetchTable downloads a tabular resource and returns its header row and
// data rows. The body is sniffed: a zip signature means an xlsx workbook
// (first sheet), anything else is parsed as CSV.
func fetchTable(ctx context.Context, client *http.Client, url string) ([]string, [][]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, nil, fmt.Errorf("fetch %s: unexpected status %s", url, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("read body: %w", err)
	}

	if bytes.HasPrefix(body, []byte("PK")) {
		return parseXLSX(body)
	}
	return parseCSV(body)
}

func parseCSV(body []byte) ([]string, [][]string, error) {
	reader := csv.NewReader(bytes.NewReader(body))
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	allRows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(allRows) < 1 {
		return nil, nil, fmt.Errorf("sheet is empty")
	}
	return allRows[0], allRows[1:], nil
}

func parseXLSX(body []byte) ([]string, [][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(body))
	if err != nil {
		return nil, nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, nil, fmt.Errorf("read sheet: %w", err)
	}
	if len(rows) < 1 {
		return nil, nil, fmt.Errorf("sheet is empty")
	}
	return rows[0], rows[1:], nil
}

// columnIndex finds a column by name, matching case-insensitively after
// trimming whitespace. Returns -1 when the column is absent.
func columnIndex(headers []string, name string) int {
	for i, h := range headers {
		if strings.EqualFold(strings.TrimSpace(h), name) {
			return i
		}
	}
	return -1
}

// cell returns the trimmed value at column idx, tolerating short rows.
func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// floatOrZero coerces a sheet cell to a float; blanks and junk become 0.
func floatOrZero(s string) float64 {
	f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return 0
	}
	return f
}

// intOrZero coerces a sheet cell to a whole number; "6.0" counts as 6,
// blanks and junk become 0.
func intOrZero(s string) int {
	f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return 0
	}
	return int(f)
}
