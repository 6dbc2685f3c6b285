package domain

import (
	"encoding/json"
	"time"

	"github.com/invoiceworks/backend/pkg/money"
)

// AggregatedItem is one invoice line: a calendar day with the summed hours
// and the summed price, in cents, of every work record billed that day.
type AggregatedItem struct {
	Date  time.Time `json:"date"`
	Hours float64   `json:"hours"`
	Price int64     `json:"price"`
}

// InvoiceContent is the computed invoice body for one customer and period.
// Totals are fixed at construction; items must not be mutated afterwards.
type InvoiceContent struct {
	Number    int
	IssueDate time.Time
	Items     []AggregatedItem
	Period    Period
	Extended  bool
	VAT       bool
	Note      string

	NetCents   int64
	TaxCents   int64
	GrossCents int64
}

// NewInvoiceContent builds the content and computes net, tax and gross
// once. Net is the exact integer sum of item prices; tax is net at the
// fixed 19% rate rounded half up at cent precision; gross = net + tax.
func NewInvoiceContent(
	number int,
	issueDate time.Time,
	items []AggregatedItem,
	period Period,
	extended, vat bool,
	note string,
) InvoiceContent {
	var net int64
	for _, item := range items {
		net += item.Price
	}
	tax := money.VAT(net)

	return InvoiceContent{
		Number:     number,
		IssueDate:  issueDate,
		Items:      items,
		Period:     period,
		Extended:   extended,
		VAT:        vat,
		Note:       note,
		NetCents:   net,
		TaxCents:   tax,
		GrossCents: net + tax,
	}
}

// InvoiceDraft is a persisted snapshot of a rendered invoice context for
// one customer and period. The storage layer enforces no uniqueness on
// (customer, year, month); reconciliation defends against duplicates.
type InvoiceDraft struct {
	ID         int64           `json:"id"`
	CustomerID int64           `json:"customer_id"`
	Year       int             `json:"year"`
	Month      int             `json:"month"`
	Document   json.RawMessage `json:"document"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// PeriodOf returns the draft's period key.
func (d InvoiceDraft) PeriodOf() Period {
	return Period{Year: d.Year, Month: d.Month}
}
