package services

import (
	"testing"

	"github.com/xuri/excelize/v2"
)

func exportFixture() *QuotationExportData {
	cat := fakeCatalog{"AB12": {MRP: 1000, PcsPerBox: 6}}
	q := NewQuotation()
	q.Header.Party = "Mega Sports"
	q.Header.Phone = "9876543210"
	q.Header.SalesPerson = "Ravi"
	q.Header.RateDiscount = 57
	q.Header.Date = "15-08-2026"
	q.Header.Shipping = "TO PAY"
	_ = q.AddItem(cat, "AB12", []SizeCount{{"S", 2}, {"M", 1}}, nil)
	_ = q.AddSampleItem("Printed Jersey", "5", "120")

	company := ExportCompany{
		Name:    "ASTRIKE SPORTSWEAR PVT LTD",
		Address: "Uttam Nagar, New Delhi",
		Phone:   "7838000995",
		Email:   "info@astrikesports.com",
		GSTIN:   "07ABCCA4620J1ZV",
		State:   "07-Delhi",
	}
	return BuildQuotationExportData(q, cat, company)
}

func TestGenerateQuotationExcel(t *testing.T) {
	result, err := GenerateQuotationExcel(exportFixture())
	if err != nil {
		t.Fatalf("GenerateQuotationExcel() error = %v", err)
	}
	if len(result) == 0 {
		t.Fatal("GenerateQuotationExcel() returned empty bytes")
	}

	f, err := excelize.OpenReader(bytesReader(result))
	if err != nil {
		t.Fatalf("result is not valid Excel: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 || sheets[0] != "Quotation" {
		t.Errorf("expected sheet name 'Quotation', got %v", sheets)
	}

	title, _ := f.GetCellValue("Quotation", "A1")
	if title != "ASTRIKE SPORTSWEAR PVT LTD" {
		t.Errorf("expected company name in A1, got %q", title)
	}

	// The item table header must carry one column per size
	rows, err := f.GetRows("Quotation")
	if err != nil {
		t.Fatalf("GetRows error: %v", err)
	}
	foundHeader := false
	for _, row := range rows {
		if len(row) >= 13 && row[0] == "DESC" && row[1] == "S" && row[7] == "4XL" && row[8] == "PCS" {
			foundHeader = true
			break
		}
	}
	if !foundHeader {
		t.Error("item table header row with size columns not found")
	}
}

func TestGenerateQuotationExcel_EmptyItems(t *testing.T) {
	data := &QuotationExportData{
		Company: ExportCompany{Name: "ASTRIKE SPORTSWEAR PVT LTD"},
		Party:   "Empty Quote",
		Date:    "15-08-2026",
	}
	result, err := GenerateQuotationExcel(data)
	if err != nil {
		t.Fatalf("GenerateQuotationExcel() error = %v", err)
	}
	if len(result) == 0 {
		t.Fatal("GenerateQuotationExcel() returned empty bytes")
	}
}
