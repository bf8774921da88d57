package services

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// GenerateQuotationExcel writes the quotation to a single styled
// worksheet and returns the file contents.
func GenerateQuotationExcel(data *QuotationExportData) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Quotation"
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	// DESC, S..4XL, PCS, RATE, AMOUNT, MRP, PACKING
	columns := []string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J", "K", "L", "M"}
	widths := []float64{24, 6, 6, 6, 6, 6, 6, 6, 8, 10, 14, 8, 9}
	for i, colRef := range columns {
		if err := f.SetColWidth(sheet, colRef, colRef, widths[i]); err != nil {
			return nil, fmt.Errorf("set col width %s: %w", colRef, err)
		}
	}
	lastCol := columns[len(columns)-1]

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 16},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("create title style: %w", err)
	}
	metaStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Size: 10},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create meta style: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 10},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#212529"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
		Border:    thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}
	bodyStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Size: 10},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create body style: %w", err)
	}
	totalStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true, Size: 10},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create total style: %w", err)
	}

	rowNum := 1
	set := func(colRef string, value any) {
		f.SetCellValue(sheet, fmt.Sprintf("%s%d", colRef, rowNum), value)
	}

	// Title block
	f.MergeCell(sheet, fmt.Sprintf("A%d", rowNum), fmt.Sprintf("%s%d", lastCol, rowNum))
	set("A", data.Company.Name)
	f.SetCellStyle(sheet, fmt.Sprintf("A%d", rowNum), fmt.Sprintf("%s%d", lastCol, rowNum), titleStyle)
	rowNum++

	f.MergeCell(sheet, fmt.Sprintf("A%d", rowNum), fmt.Sprintf("%s%d", lastCol, rowNum))
	set("A", "QUOTATION")
	f.SetCellStyle(sheet, fmt.Sprintf("A%d", rowNum), fmt.Sprintf("%s%d", lastCol, rowNum), titleStyle)
	rowNum += 2

	// Meta block
	meta := []struct{ label, value string }{
		{"Party Name", data.Party},
		{"Phone", data.Phone},
		{"Address", data.Address},
		{"Sales Person", data.SalesPerson},
		{"Date", data.Date},
		{"Rate Discount", data.RateDiscountText},
		{"SP Discount", data.SPDiscountText},
		{"Total Discount", data.TotalDiscountText},
		{"Remark", data.Remark},
	}
	for _, mrow := range meta {
		if mrow.value == "" {
			continue
		}
		set("A", mrow.label)
		set("B", mrow.value)
		f.MergeCell(sheet, fmt.Sprintf("B%d", rowNum), fmt.Sprintf("%s%d", lastCol, rowNum))
		f.SetCellStyle(sheet, fmt.Sprintf("A%d", rowNum), fmt.Sprintf("%s%d", lastCol, rowNum), metaStyle)
		rowNum++
	}
	rowNum++

	// Item table header
	headers := append([]string{"DESC"}, SizeLabels...)
	headers = append(headers, "PCS", "RATE", "AMOUNT", "MRP", "PACKING")
	for i, h := range headers {
		set(columns[i], h)
	}
	f.SetCellStyle(sheet, fmt.Sprintf("A%d", rowNum), fmt.Sprintf("%s%d", lastCol, rowNum), headerStyle)
	rowNum++

	// Item rows
	for _, item := range data.Items {
		set("A", item.Description)
		for i, boxes := range item.SizeBoxes {
			if boxes != "" {
				set(columns[i+1], boxes)
			}
		}
		set("I", item.Pcs)
		set("J", item.Rate)
		set("K", item.Amount)
		set("L", item.MRPDisplay)
		set("M", item.Packing)
		f.SetCellStyle(sheet, fmt.Sprintf("A%d", rowNum), fmt.Sprintf("%s%d", lastCol, rowNum), bodyStyle)
		rowNum++
	}
	rowNum++

	// Totals block
	totals := []struct {
		label string
		value any
	}{
		{"TOTAL PCS", data.TotalPcs},
		{"AMOUNT", data.TotalAmount},
		{"SHIPPING", data.ShippingDisplay},
		{"BILL DISCOUNT", data.BillDiscountDisplay},
		{"ADVANCE", data.Advance},
		{"NET PAYABLE", data.NetPayable},
	}
	for _, trow := range totals {
		set("J", trow.label)
		f.MergeCell(sheet, fmt.Sprintf("J%d", rowNum), fmt.Sprintf("K%d", rowNum))
		set("L", trow.value)
		f.MergeCell(sheet, fmt.Sprintf("L%d", rowNum), fmt.Sprintf("M%d", rowNum))
		f.SetCellStyle(sheet, fmt.Sprintf("J%d", rowNum), fmt.Sprintf("M%d", rowNum), totalStyle)
		rowNum++
	}

	set("A", fmt.Sprintf("Amount in Words: %s", data.NetPayableWords))
	f.MergeCell(sheet, fmt.Sprintf("A%d", rowNum), fmt.Sprintf("%s%d", lastCol, rowNum))

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// thinBorders returns the thin black border set used by every bordered
// cell style.
func thinBorders() []excelize.Border {
	return []excelize.Border{
		{Type: "left", Color: "#000000", Style: 1},
		{Type: "right", Color: "#000000", Style: 1},
		{Type: "top", Color: "#000000", Style: 1},
		{Type: "bottom", Color: "#000000", Style: 1},
	}
}
