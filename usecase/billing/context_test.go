package billing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invoiceworks/backend/domain"
	"github.com/invoiceworks/backend/usecase/billing"
)

func validCustomer() domain.Customer {
	return domain.Customer{
		ID:    7,
		Name:  "Acme GmbH",
		Price: 5000,
		Profile: domain.CustomerProfile{
			Address: domain.Address{
				Street:     "Hauptstraße 5",
				PostalCode: "10115",
				City:       "Berlin",
			},
			Note: "Bis bald.",
		},
	}
}

func validEmployer() domain.Employer {
	return domain.Employer{
		ID:   1,
		Name: "Max Muster",
		Profile: domain.EmployerProfile{
			Company:   "Muster Consulting",
			TaxNumber: "12/345/67890",
			VATID:     "DE123456789",
			Address: domain.Address{
				Street:     "Nebenweg 2",
				PostalCode: "20095",
				City:       "Hamburg",
			},
			BankAccount: domain.BankAccount{
				BankName: "Musterbank",
				IBAN:     "DE89370400440532013000",
				BIC:      "COBADEFFXXX",
			},
			Contact: domain.Contact{
				Email: "mail@example.com",
				Phone: "+49 170 0000000",
			},
		},
	}
}

func someContent() domain.InvoiceContent {
	return domain.NewInvoiceContent(101, day(31), []domain.AggregatedItem{
		{Date: day(1), Hours: 5, Price: 25000},
	}, domain.Period{Year: 2024, Month: 7}, false, false, "")
}

func TestBuildRenderContext_Success(t *testing.T) {
	rc, err := billing.BuildRenderContext(validCustomer(), validEmployer(), someContent())
	require.NoError(t, err)

	assert.Equal(t, "Acme GmbH", rc.Client.Name)
	assert.Equal(t, "Muster Consulting", rc.Contractor.Company)
	assert.Equal(t, "Max Muster", rc.Contractor.Name)
	require.NotNil(t, rc.Contractor.Contact)
	assert.Equal(t, "mail@example.com", rc.Contractor.Contact.Email)
	assert.Equal(t, int64(29750), rc.Content.GrossCents)
}

func TestBuildRenderContext_MissingCustomerCity(t *testing.T) {
	customer := validCustomer()
	customer.Profile.Address.City = ""

	_, err := billing.BuildRenderContext(customer, validEmployer(), someContent())
	require.Error(t, err)

	missing, ok := domain.AsMissingField(err)
	require.True(t, ok)
	assert.Equal(t, "customer", missing.Entity)
	assert.Equal(t, "Acme GmbH", missing.Record)
	assert.Equal(t, "address.city", missing.Field)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
}

func TestBuildRenderContext_CustomerTaxNumberOptional(t *testing.T) {
	customer := validCustomer()
	customer.Profile.TaxNumber = ""

	_, err := billing.BuildRenderContext(customer, validEmployer(), someContent())
	assert.NoError(t, err)
}

func TestBuildRenderContext_MissingEmployerFields(t *testing.T) {
	tests := []struct {
		field  string
		mutate func(*domain.Employer)
	}{
		{"company", func(e *domain.Employer) { e.Profile.Company = "" }},
		{"tax_number", func(e *domain.Employer) { e.Profile.TaxNumber = "" }},
		{"vat_id", func(e *domain.Employer) { e.Profile.VATID = "" }},
		{"address.street", func(e *domain.Employer) { e.Profile.Address.Street = "" }},
		{"bank_account.iban", func(e *domain.Employer) { e.Profile.BankAccount.IBAN = "" }},
		{"contact.email", func(e *domain.Employer) { e.Profile.Contact.Email = "" }},
		{"contact.phone", func(e *domain.Employer) { e.Profile.Contact.Phone = "" }},
	}

	for _, tc := range tests {
		t.Run(tc.field, func(t *testing.T) {
			employer := validEmployer()
			tc.mutate(&employer)

			_, err := billing.BuildRenderContext(validCustomer(), employer, someContent())
			require.Error(t, err)

			missing, ok := domain.AsMissingField(err)
			require.True(t, ok)
			assert.Equal(t, "employer", missing.Entity)
			assert.Equal(t, tc.field, missing.Field)
		})
	}
}
