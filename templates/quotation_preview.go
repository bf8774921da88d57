// Package templates renders the read-only HTML views of a quotation.
package templates

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"quotationdesk/services"
)

// QuotationPreviewPage renders a print-friendly view of the quotation.
// Layout mirrors the PDF: company block, party block, item table with one
// column per size, then the totals summary.
func QuotationPreviewPage(data *services.QuotationExportData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := &pageWriter{w: w}

		p.raw(`<!DOCTYPE html><html><head><meta charset="utf-8"><title>Quotation</title>`)
		p.raw(`<style>
body { font-family: Arial, sans-serif; margin: 24px; color: #111; }
h1 { font-size: 20px; margin-bottom: 2px; }
.company { margin-bottom: 16px; font-size: 13px; }
.party { margin-bottom: 16px; font-size: 13px; }
.party span { display: inline-block; min-width: 120px; font-weight: bold; }
table { border-collapse: collapse; width: 100%; font-size: 12px; }
th, td { border: 1px solid #999; padding: 4px 6px; text-align: center; }
th { background: #2c3e50; color: #fff; }
td.desc { text-align: left; }
tr:nth-child(even) td { background: #f4f6f8; }
.totals { margin-top: 16px; font-size: 13px; width: 320px; margin-left: auto; }
.totals td { border: none; text-align: right; padding: 2px 6px; }
.totals tr.net td { font-weight: bold; border-top: 2px solid #111; }
.words { margin-top: 8px; font-size: 12px; font-style: italic; text-align: right; }
.notice { margin-top: 24px; font-size: 11px; color: #a00; }
</style></head><body>`)

		p.raw(`<div class="company"><h1>`)
		p.text(data.Company.Name)
		p.raw(`</h1>`)
		p.text(data.Company.Address)
		p.raw(`<br>Phone: `)
		p.text(data.Company.Phone)
		p.raw(` | Email: `)
		p.text(data.Company.Email)
		p.raw(`<br>GSTIN: `)
		p.text(data.Company.GSTIN)
		p.raw(` | State: `)
		p.text(data.Company.State)
		p.raw(`</div>`)

		p.raw(`<div class="party">`)
		partyRow(p, "Party", data.Party)
		partyRow(p, "Phone", data.Phone)
		partyRow(p, "Address", data.Address)
		partyRow(p, "Sales Person", data.SalesPerson)
		partyRow(p, "Date", data.Date)
		partyRow(p, "Total Discount", data.TotalDiscountText)
		p.raw(`</div>`)

		p.raw(`<table><thead><tr><th>DESC</th>`)
		for _, label := range services.SizeLabels {
			p.raw(`<th>`)
			p.text(label)
			p.raw(`</th>`)
		}
		p.raw(`<th>PCS</th><th>RATE</th><th>AMOUNT</th><th>MRP</th><th>PACKING</th></tr></thead><tbody>`)

		for _, item := range data.Items {
			p.raw(`<tr><td class="desc">`)
			p.text(item.Description)
			p.raw(`</td>`)
			for _, boxes := range item.SizeBoxes {
				p.raw(`<td>`)
				p.text(boxes)
				p.raw(`</td>`)
			}
			p.raw(`<td>`)
			p.text(strconv.Itoa(item.Pcs))
			p.raw(`</td><td>`)
			p.text(strconv.Itoa(item.Rate))
			p.raw(`</td><td>`)
			p.text(strconv.Itoa(item.Amount))
			p.raw(`</td><td>`)
			p.text(item.MRPDisplay)
			p.raw(`</td><td>`)
			p.text(item.Packing)
			p.raw(`</td></tr>`)
		}
		p.raw(`</tbody></table>`)

		p.raw(`<table class="totals">`)
		totalsRow(p, "TOTAL PCS", strconv.Itoa(data.TotalPcs))
		totalsRow(p, "AMOUNT", services.FormatRs(data.TotalAmount))
		totalsRow(p, "SHIPPING", data.ShippingDisplay)
		totalsRow(p, "BILL DISCOUNT", data.BillDiscountDisplay)
		totalsRow(p, "ADVANCE", services.FormatRs(data.Advance))
		p.raw(`<tr class="net"><td>NET PAYABLE</td><td>`)
		p.text(services.FormatRs(data.NetPayable))
		p.raw(`</td></tr></table>`)

		p.raw(`<div class="words">`)
		p.text(data.NetPayableWords)
		p.raw(`</div>`)

		if data.PaymentImagePath != "" {
			p.raw(`<div class="notice">Payment received. This order cannot be cancelled or modified once confirmed.</div>`)
		}

		p.raw(`</body></html>`)
		return p.err
	})
}

// pageWriter accumulates the first write error so render code stays flat.
type pageWriter struct {
	w   io.Writer
	err error
}

func (p *pageWriter) raw(s string) {
	if p.err != nil {
		return
	}
	_, p.err = io.WriteString(p.w, s)
}

func (p *pageWriter) text(s string) {
	p.raw(templ.EscapeString(s))
}

func partyRow(p *pageWriter, label, value string) {
	if value == "" {
		return
	}
	p.raw(`<div><span>`)
	p.text(label)
	p.raw(`</span> `)
	p.text(value)
	p.raw(`</div>`)
}

func totalsRow(p *pageWriter, label, value string) {
	p.raw(fmt.Sprintf(`<tr><td>%s</td><td>%s</td></tr>`, templ.EscapeString(label), templ.EscapeString(value)))
}
