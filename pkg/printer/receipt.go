package printer

import (
	"fmt"

	"github.com/sangkips/restropos-api/internal/domain/entity"
)

// RenderReceipt lays out a sale receipt as an ESC/POS job: store header,
// invoice line, item lines, totals block and footer.
func RenderReceipt(r *entity.Receipt, charWidth int) []byte {
	j := NewJob(charWidth)

	j.Align(AlignCenter).Bold(true).Size(SizeDouble)
	j.Line(r.Header.StoreName)
	j.Size(SizeNormal).Bold(false)
	if r.Header.Address != "" {
		j.Line(r.Header.Address)
	}
	if r.Header.Phone != "" {
		j.Line("Ph: " + r.Header.Phone)
	}

	j.Align(AlignLeft).Rule('-')
	j.TwoCol("Invoice", r.InvoiceNo)
	j.TwoCol("Date", r.Date)
	j.Rule('-')

	for _, it := range r.Items {
		j.ItemLine(it.Quantity, it.Name, money(r.Currency, it.Total))
	}

	j.Rule('-')
	j.TwoCol("Subtotal", money(r.Currency, r.Subtotal))
	if r.Tax > 0 {
		j.TwoCol("GST", money(r.Currency, r.Tax))
	}
	if r.Discount > 0 {
		j.TwoCol("Discount", "-"+money(r.Currency, r.Discount))
	}
	j.Bold(true).TwoCol("TOTAL", money(r.Currency, r.Total)).Bold(false)
	j.TwoCol("Paid by", r.PaymentMode)
	j.Rule('-')

	j.Align(AlignCenter).Line("Thank you, visit again!")
	j.Feed(3).Cut()
	return j.Bytes()
}

// RenderTestPage builds a short page used to verify printer connectivity.
func RenderTestPage(storeName string, charWidth int) []byte {
	j := NewJob(charWidth)
	j.Align(AlignCenter).Bold(true).Line(storeName).Bold(false)
	j.Line("Printer test OK")
	j.Feed(3).Cut()
	return j.Bytes()
}

func money(currency string, amount float64) string {
	return fmt.Sprintf("%s%.2f", currency, amount)
}
