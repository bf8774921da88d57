package services

import (
	"fmt"
	"os"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/page"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// itemTableGrid is the column grid of the quotation page. The default
// 12-unit grid cannot fit the seven size columns next to the money
// columns, so the whole document uses a 16-unit grid.
const itemTableGrid = 16

// GenerateQuotationPDF renders the printable quotation and returns the
// raw PDF bytes.
func GenerateQuotationPDF(data *QuotationExportData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithOrientation(orientation.Vertical).
		WithPageSize(pagesize.A4).
		WithMaxGridSize(itemTableGrid).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	addQuotationHeader(m, data)
	addPartyBlock(m, data)
	addItemsTable(m, data)
	addTotalsAndFooter(m, data)

	if data.PaymentImagePath != "" {
		addPaymentImagePage(m, data.PaymentImagePath)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate quotation PDF: %w", err)
	}
	return doc.GetBytes(), nil
}

// addQuotationHeader adds the company block and the QUOTATION title.
func addQuotationHeader(m core.Maroto, data *QuotationExportData) {
	m.AddRows(
		row.New(10).Add(
			col.New(itemTableGrid).Add(
				text.New(data.Company.Name, props.Text{
					Size:  16,
					Style: fontstyle.Bold,
					Align: align.Center,
				}),
			),
		),
		row.New(5).Add(
			col.New(itemTableGrid).Add(
				text.New(data.Company.Address, props.Text{
					Size:  8,
					Align: align.Center,
					Color: &props.Color{Red: 100, Green: 100, Blue: 100},
				}),
			),
		),
		row.New(5).Add(
			col.New(itemTableGrid).Add(
				text.New(fmt.Sprintf("Phone: %s | Email: %s", data.Company.Phone, data.Company.Email), props.Text{
					Size:  8,
					Align: align.Center,
					Color: &props.Color{Red: 100, Green: 100, Blue: 100},
				}),
			),
		),
		row.New(5).Add(
			col.New(itemTableGrid).Add(
				text.New(fmt.Sprintf("GSTIN: %s | State: %s", data.Company.GSTIN, data.Company.State), props.Text{
					Size:  8,
					Align: align.Center,
					Color: &props.Color{Red: 100, Green: 100, Blue: 100},
				}),
			),
		),
		row.New(4),
		row.New(9).Add(
			col.New(itemTableGrid).Add(
				text.New("QUOTATION", props.Text{
					Size:  13,
					Style: fontstyle.Bold,
					Align: align.Center,
				}),
			),
		),
		row.New(3),
	)
}

// addPartyBlock adds the customer/discount details table.
func addPartyBlock(m core.Maroto, data *QuotationExportData) {
	labelValue := func(label, value string) string {
		return fmt.Sprintf("%s : %s", label, value)
	}

	cellText := props.Text{Size: 8, Align: align.Left}
	cellBg := &props.Cell{BackgroundColor: &props.Color{Red: 245, Green: 243, Blue: 239}}

	third := itemTableGrid / 3 // 16 does not divide evenly; last col takes the rest
	rest := itemTableGrid - 2*third

	spText := data.SPDiscountText
	if spText == "" {
		spText = "-"
	}

	m.AddRows(
		row.New(7).Add(
			col.New(third).Add(text.New(labelValue("Party Name", data.Party), cellText)).WithStyle(cellBg),
			col.New(third).Add(text.New(labelValue("Phone", data.Phone), cellText)).WithStyle(cellBg),
			col.New(rest).Add(text.New(labelValue("Date", data.Date), cellText)).WithStyle(cellBg),
		),
		row.New(7).Add(
			col.New(third).Add(text.New(labelValue("Sales Person", data.SalesPerson), cellText)).WithStyle(cellBg),
			col.New(third).Add(text.New(labelValue("Rate Discount", data.RateDiscountText), cellText)).WithStyle(cellBg),
			col.New(rest).Add(text.New(labelValue("SP Discount", spText), cellText)).WithStyle(cellBg),
		),
		row.New(7).Add(
			col.New(itemTableGrid).Add(text.New(labelValue("Address", data.Address), cellText)).WithStyle(cellBg),
		),
		row.New(7).Add(
			col.New(itemTableGrid).Add(text.New(labelValue("Total Discount", data.TotalDiscountText), cellText)).WithStyle(cellBg),
		),
		row.New(7).Add(
			col.New(itemTableGrid).Add(text.New(labelValue("Remark", data.Remark), cellText)).WithStyle(cellBg),
		),
		row.New(3),
	)
}

// addItemsTable adds the line item table: description, one column per
// size, then pcs, rate, amount and the display-only MRP/packing columns.
func addItemsTable(m core.Maroto, data *QuotationExportData) {
	headerText := props.Text{
		Size:  7,
		Style: fontstyle.Bold,
		Align: align.Center,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
	}
	headerCell := &props.Cell{BackgroundColor: &props.Color{Red: 33, Green: 37, Blue: 41}}

	headerCols := []core.Col{
		col.New(3).Add(text.New("DESC", headerText)).WithStyle(headerCell),
	}
	for _, label := range SizeLabels {
		headerCols = append(headerCols, col.New(1).Add(text.New(label, headerText)).WithStyle(headerCell))
	}
	headerCols = append(headerCols,
		col.New(1).Add(text.New("PCS", headerText)).WithStyle(headerCell),
		col.New(1).Add(text.New("RATE", headerText)).WithStyle(headerCell),
		col.New(2).Add(text.New("AMOUNT", headerText)).WithStyle(headerCell),
		col.New(1).Add(text.New("MRP", headerText)).WithStyle(headerCell),
		col.New(1).Add(text.New("PACKING", headerText)).WithStyle(headerCell),
	)
	m.AddRows(row.New(8).Add(headerCols...))

	altBg := &props.Color{Red: 248, Green: 249, Blue: 250}

	for i, item := range data.Items {
		bodyText := props.Text{Size: 7, Align: align.Center}
		bodyTextLeft := props.Text{Size: 7, Align: align.Left}
		bodyTextRight := props.Text{Size: 7, Align: align.Right}

		var cellStyle *props.Cell
		if i%2 == 1 {
			cellStyle = &props.Cell{BackgroundColor: altBg}
		}

		cols := []core.Col{
			col.New(3).Add(text.New(item.Description, bodyTextLeft)),
		}
		for _, boxes := range item.SizeBoxes {
			cols = append(cols, col.New(1).Add(text.New(boxes, bodyText)))
		}
		cols = append(cols,
			col.New(1).Add(text.New(fmt.Sprintf("%d", item.Pcs), bodyText)),
			col.New(1).Add(text.New(fmt.Sprintf("Rs %d", item.Rate), bodyTextRight)),
			col.New(2).Add(text.New(FormatRs(item.Amount), bodyTextRight)),
			col.New(1).Add(text.New(item.MRPDisplay, bodyText)),
			col.New(1).Add(text.New(item.Packing, bodyText)),
		)

		if cellStyle != nil {
			for j := range cols {
				cols[j] = cols[j].WithStyle(cellStyle)
			}
		}

		m.AddRows(row.New(7).Add(cols...))
	}

	m.AddRows(row.New(3))
}

// addTotalsAndFooter adds the money summary, the amount in words, the
// dispatch footer and - only when a payment proof is attached - the
// cancel-item block the packing team fills in by hand.
func addTotalsAndFooter(m core.Maroto, data *QuotationExportData) {
	labelStyle := props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Right}
	valueStyle := props.Text{Size: 8, Align: align.Right}
	summaryCell := &props.Cell{BackgroundColor: &props.Color{Red: 245, Green: 245, Blue: 245}}

	summary := []struct{ label, value string }{
		{"AMOUNT", FormatRs(data.TotalAmount)},
		{"SHIPPING", data.ShippingDisplay},
		{"BILL DISCOUNT", data.BillDiscountDisplay},
		{"ADVANCE", FormatRs(data.Advance)},
	}

	for _, s := range summary {
		m.AddRows(
			row.New(7).Add(
				col.New(itemTableGrid-4).Add(text.New(s.label, labelStyle)).WithStyle(summaryCell),
				col.New(4).Add(text.New(s.value, valueStyle)).WithStyle(summaryCell),
			),
		)
	}

	grandCell := &props.Cell{BackgroundColor: &props.Color{Red: 33, Green: 37, Blue: 41}}
	white := &props.Color{Red: 255, Green: 255, Blue: 255}
	m.AddRows(
		row.New(8).Add(
			col.New(itemTableGrid-4).Add(text.New("NET PAYABLE", props.Text{
				Size: 9, Style: fontstyle.Bold, Align: align.Right, Color: white,
			})).WithStyle(grandCell),
			col.New(4).Add(text.New(FormatRs(data.NetPayable), props.Text{
				Size: 9, Style: fontstyle.Bold, Align: align.Right, Color: white,
			})).WithStyle(grandCell),
		),
		row.New(3),
		row.New(8).Add(
			col.New(itemTableGrid).Add(
				text.New(fmt.Sprintf("Amount in Words: %s", data.NetPayableWords), props.Text{
					Size:  8,
					Style: fontstyle.BoldItalic,
					Align: align.Left,
				}),
			),
		),
		row.New(3),
	)

	if data.PaymentImagePath != "" {
		addCancelBlock(m)
	}

	dispatchLabel := props.Text{Size: 8, Align: align.Left}
	dispatchCell := &props.Cell{BackgroundColor: &props.Color{Red: 248, Green: 249, Blue: 250}}
	for _, label := range []string{"DATE", "TIME", "DIMENSION", "WEIGHT", "SIGN"} {
		m.AddRows(
			row.New(7).Add(
				col.New(4).Add(text.New(label, dispatchLabel)).WithStyle(dispatchCell),
				col.New(itemTableGrid-4),
			),
		)
	}
}

// addCancelBlock adds the blank "cancel item from bill" grid.
func addCancelBlock(m core.Maroto) {
	titleCell := &props.Cell{BackgroundColor: &props.Color{Red: 33, Green: 37, Blue: 41}}
	m.AddRows(
		row.New(7).Add(
			col.New(itemTableGrid).Add(text.New("CANCEL ITEM FROM BILL", props.Text{
				Size:  8,
				Style: fontstyle.Bold,
				Align: align.Center,
				Color: &props.Color{Red: 255, Green: 255, Blue: 255},
			})).WithStyle(titleCell),
		),
	)

	headText := props.Text{Size: 7, Style: fontstyle.Bold, Align: align.Center}
	headCell := &props.Cell{BackgroundColor: &props.Color{Red: 245, Green: 245, Blue: 245}}
	m.AddRows(
		row.New(6).Add(
			col.New(5).Add(text.New("SKU", headText)).WithStyle(headCell),
			col.New(5).Add(text.New("SIZE", headText)).WithStyle(headCell),
			col.New(6).Add(text.New("REMARK", headText)).WithStyle(headCell),
		),
	)
	for i := 0; i < 8; i++ {
		m.AddRows(row.New(6))
	}
	m.AddRows(row.New(3))
}

// addPaymentImagePage appends a separate page embedding the payment
// proof image. A missing file is skipped rather than failing the export.
func addPaymentImagePage(m core.Maroto, path string) {
	if _, err := os.Stat(path); err != nil {
		return
	}

	m.AddPages(
		page.New().Add(
			row.New(12).Add(
				col.New(itemTableGrid).Add(
					text.New("PAYMENT DETAILS", props.Text{
						Size:  14,
						Style: fontstyle.Bold,
						Align: align.Center,
					}),
				),
			),
			row.New(6),
			row.New(180).Add(
				col.New(itemTableGrid).Add(
					image.NewFromFile(path, props.Rect{
						Center:  true,
						Percent: 90,
					}),
				),
			),
		),
	)
}
