package billing

import (
	"github.com/invoiceworks/backend/domain"
)

// BuildRenderContext maps a customer, the employer and a computed invoice
// content into the declarative structure the renderer consumes. It is a
// pure mapping; profile validation happens here, once, at this boundary,
// and surfaces a MissingFieldError naming the malformed record instead of
// a raw lookup failure deep inside rendering.
func BuildRenderContext(
	customer domain.Customer,
	employer domain.Employer,
	content domain.InvoiceContent,
) (domain.RenderContext, error) {
	client, err := clientBlock(customer)
	if err != nil {
		return domain.RenderContext{}, err
	}
	contractor, err := contractorBlock(employer)
	if err != nil {
		return domain.RenderContext{}, err
	}
	return domain.RenderContext{
		Client:     client,
		Contractor: contractor,
		Content:    content,
	}, nil
}

func clientBlock(c domain.Customer) (domain.ClientBlock, error) {
	missing := func(field string) (domain.ClientBlock, error) {
		return domain.ClientBlock{}, domain.NewMissingFieldError("customer", c.Name, field)
	}

	switch {
	case c.Name == "":
		return missing("name")
	case c.Profile.Address.Street == "":
		return missing("address.street")
	case c.Profile.Address.PostalCode == "":
		return missing("address.postal_code")
	case c.Profile.Address.City == "":
		return missing("address.city")
	}

	return domain.ClientBlock{
		Name:      c.Name,
		Address:   c.Profile.Address,
		TaxNumber: c.Profile.TaxNumber,
	}, nil
}

func contractorBlock(e domain.Employer) (domain.ContractorBlock, error) {
	missing := func(field string) (domain.ContractorBlock, error) {
		return domain.ContractorBlock{}, domain.NewMissingFieldError("employer", e.Name, field)
	}

	p := e.Profile
	switch {
	case p.Company == "":
		return missing("company")
	case p.TaxNumber == "":
		return missing("tax_number")
	case p.VATID == "":
		return missing("vat_id")
	case p.Address.Street == "":
		return missing("address.street")
	case p.Address.PostalCode == "":
		return missing("address.postal_code")
	case p.Address.City == "":
		return missing("address.city")
	case p.BankAccount.BankName == "":
		return missing("bank_account.bank_name")
	case p.BankAccount.IBAN == "":
		return missing("bank_account.iban")
	case p.BankAccount.BIC == "":
		return missing("bank_account.bic")
	case p.Contact.Email == "":
		return missing("contact.email")
	case p.Contact.Phone == "":
		return missing("contact.phone")
	}

	contact := p.Contact
	return domain.ContractorBlock{
		Company:     p.Company,
		Name:        e.Name,
		TaxNumber:   p.TaxNumber,
		VATID:       p.VATID,
		Address:     p.Address,
		BankAccount: p.BankAccount,
		Contact:     &contact,
	}, nil
}
