package domain

import (
	"github.com/invoiceworks/backend/pkg/money"
)

// The render context types below are the validated replacement for the
// ad-hoc dicts the previous system fed its templates. Serialization to the
// short fixed tags the templates bind against ("cl", "co", "cnt", "a", …)
// happens in exactly one place per block, so a key typo cannot slip in at
// a call site.

const issueDateLayout = "02.01.2006"

// ClientBlock is the customer-facing party of the document.
type ClientBlock struct {
	Name      string
	Address   Address
	TaxNumber string // optional
}

// ContractorBlock is the issuing party of the document.
type ContractorBlock struct {
	Company     string
	Name        string
	TaxNumber   string
	VATID       string
	Address     Address
	BankAccount BankAccount
	Contact     *Contact // optional
}

// RenderContext is the full declarative input of the document renderer.
type RenderContext struct {
	Client     ClientBlock
	Contractor ContractorBlock
	Content    InvoiceContent
}

func addressTags(a Address) map[string]any {
	return map[string]any{
		"street": a.Street,
		"code":   a.PostalCode,
		"city":   a.City,
	}
}

func (c ClientBlock) tags() map[string]any {
	data := map[string]any{
		"name": c.Name,
		"a":    addressTags(c.Address),
	}
	if c.TaxNumber != "" {
		data["number"] = c.TaxNumber
	}
	return data
}

func (c ContractorBlock) tags() map[string]any {
	data := map[string]any{
		"company": c.Company,
		"name":    c.Name,
		"number":  c.TaxNumber,
		"vat_id":  c.VATID,
		"a":       addressTags(c.Address),
		"bank_account": map[string]any{
			"bank_name": c.BankAccount.BankName,
			"iban":      c.BankAccount.IBAN,
			"bic":       c.BankAccount.BIC,
		},
	}
	if c.Contact != nil {
		data["contact"] = map[string]any{
			"phone": "Tel.Pl: " + c.Contact.Phone,
			"email": "Email: " + c.Contact.Email,
		}
	}
	return data
}

func itemTags(item AggregatedItem) map[string]any {
	return map[string]any{
		"hours": money.FormatHours(item.Hours) + " Std",
		"total": money.Format(item.Price),
		"date":  item.Date.Format(issueDateLayout),
	}
}

func contentTags(c InvoiceContent) map[string]any {
	items := make([]map[string]any, 0, len(c.Items))
	for _, item := range c.Items {
		items = append(items, itemTags(item))
	}
	return map[string]any{
		"invoice_number": c.Number,
		"issue_date":     c.IssueDate.Format(issueDateLayout),
		"items_":         items,
		"netto":          money.Format(c.NetCents),
		"brutto":         money.Format(c.GrossCents),
		"tax":            money.Format(c.TaxCents),
		"year":           c.Period.Year,
		"month":          c.Period.MonthName(),
		"extended":       c.Extended,
		"vat":            c.VAT,
		"note":           c.Note,
	}
}

// Tags serializes the context into the fixed-tag mapping the templates and
// the persisted draft documents share. The key names are wire contract;
// existing templates bind against them.
func (r RenderContext) Tags() map[string]any {
	return map[string]any{
		"cl":  r.Client.tags(),
		"co":  r.Contractor.tags(),
		"cnt": contentTags(r.Content),
	}
}
