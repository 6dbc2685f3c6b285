package domain

import "time"

// Address is a postal address block shared by customer and employer profiles.
type Address struct {
	Street     string `json:"street"`
	PostalCode string `json:"postal_code"`
	City       string `json:"city"`
}

// BankAccount holds payment coordinates of the issuing party.
type BankAccount struct {
	BankName string `json:"bank_name"`
	IBAN     string `json:"iban"`
	BIC      string `json:"bic"`
}

// Contact holds how the issuing party can be reached.
type Contact struct {
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// CustomerProfile is the structured form of the free-form metadata the
// previous system kept per customer. Validation happens once, at the
// context-building boundary, not here.
type CustomerProfile struct {
	Company   string  `json:"company,omitempty"`
	Address   Address `json:"address"`
	TaxNumber string  `json:"tax_number,omitempty"`
	Extended  bool    `json:"extended,omitempty"`
	VAT       bool    `json:"vat,omitempty"`
	Note      string  `json:"note,omitempty"`
}

// Customer is a billable party. Price is the hourly rate in cents.
type Customer struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	Price     int64           `json:"price"`
	Profile   CustomerProfile `json:"profile"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Validate checks the customer invariants.
func (c Customer) Validate() error {
	if c.Name == "" {
		return WrapError(ErrCodeInvalid, "customer name is required", nil)
	}
	if c.Price < 0 {
		return WrapError(ErrCodeInvalid, "customer price must be non-negative", nil)
	}
	return nil
}

// EmployerProfile is the structured metadata of the issuing party.
type EmployerProfile struct {
	Company     string      `json:"company"`
	TaxNumber   string      `json:"tax_number"`
	VATID       string      `json:"vat_id"`
	Address     Address     `json:"address"`
	BankAccount BankAccount `json:"bank_account"`
	Contact     Contact     `json:"contact"`
}

// Employer is the single issuing party. At most one record is expected to
// be active; its absence aborts a generation run.
type Employer struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	Profile   EmployerProfile `json:"profile"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
