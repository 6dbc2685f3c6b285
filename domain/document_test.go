package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invoiceworks/backend/domain"
)

func sampleRenderContext() domain.RenderContext {
	items := []domain.AggregatedItem{
		{Date: july(1), Hours: 5, Price: 25000},
		{Date: july(15), Hours: 7.5, Price: 37500},
	}
	content := domain.NewInvoiceContent(
		101,
		time.Date(2024, 7, 31, 0, 0, 0, 0, time.UTC),
		items,
		domain.Period{Year: 2024, Month: 7},
		true,
		true,
		"Zahlbar innerhalb von 14 Tagen.",
	)

	contact := domain.Contact{Email: "mail@example.com", Phone: "+49 170 0000000"}
	return domain.RenderContext{
		Client: domain.ClientBlock{
			Name: "Acme GmbH",
			Address: domain.Address{
				Street:     "Hauptstraße 5",
				PostalCode: "10115",
				City:       "Berlin",
			},
		},
		Contractor: domain.ContractorBlock{
			Company:   "Muster Consulting",
			Name:      "Max Muster",
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
			Contact: &contact,
		},
		Content: content,
	}
}

func TestRenderContextTags_TopLevelShape(t *testing.T) {
	tags := sampleRenderContext().Tags()

	assert.Len(t, tags, 3)
	assert.Contains(t, tags, "cl")
	assert.Contains(t, tags, "co")
	assert.Contains(t, tags, "cnt")
}

func TestRenderContextTags_ClientBlock(t *testing.T) {
	tags := sampleRenderContext().Tags()

	cl, ok := tags["cl"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Acme GmbH", cl["name"])
	assert.NotContains(t, cl, "number") // optional, absent when empty

	a, ok := cl["a"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Hauptstraße 5", a["street"])
	assert.Equal(t, "10115", a["code"])
	assert.Equal(t, "Berlin", a["city"])
}

func TestRenderContextTags_ClientTaxNumberWhenPresent(t *testing.T) {
	rc := sampleRenderContext()
	rc.Client.TaxNumber = "99/999/99999"

	cl := rc.Tags()["cl"].(map[string]any)
	assert.Equal(t, "99/999/99999", cl["number"])
}

func TestRenderContextTags_ContractorBlock(t *testing.T) {
	tags := sampleRenderContext().Tags()

	co, ok := tags["co"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Muster Consulting", co["company"])
	assert.Equal(t, "Max Muster", co["name"])
	assert.Equal(t, "12/345/67890", co["number"])
	assert.Equal(t, "DE123456789", co["vat_id"])

	bank, ok := co["bank_account"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Musterbank", bank["bank_name"])
	assert.Equal(t, "DE89370400440532013000", bank["iban"])
	assert.Equal(t, "COBADEFFXXX", bank["bic"])

	contact, ok := co["contact"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Tel.Pl: +49 170 0000000", contact["phone"])
	assert.Equal(t, "Email: mail@example.com", contact["email"])
}

func TestRenderContextTags_ContactOmittedWhenNil(t *testing.T) {
	rc := sampleRenderContext()
	rc.Contractor.Contact = nil

	co := rc.Tags()["co"].(map[string]any)
	assert.NotContains(t, co, "contact")
}

func TestRenderContextTags_ContentBlock(t *testing.T) {
	tags := sampleRenderContext().Tags()

	cnt, ok := tags["cnt"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 101, cnt["invoice_number"])
	assert.Equal(t, "31.07.2024", cnt["issue_date"])
	assert.Equal(t, "625.00 €", cnt["netto"])
	assert.Equal(t, "118.75 €", cnt["tax"])
	assert.Equal(t, "743.75 €", cnt["brutto"])
	assert.Equal(t, 2024, cnt["year"])
	assert.Equal(t, "Juli", cnt["month"])
	assert.Equal(t, true, cnt["extended"])
	assert.Equal(t, true, cnt["vat"])
	assert.Equal(t, "Zahlbar innerhalb von 14 Tagen.", cnt["note"])
}

func TestRenderContextTags_ItemFormatting(t *testing.T) {
	tags := sampleRenderContext().Tags()
	cnt := tags["cnt"].(map[string]any)

	items, ok := cnt["items_"].([]map[string]any)
	require.True(t, ok)
	require.Len(t, items, 2)

	assert.Equal(t, "5 Std", items[0]["hours"])
	assert.Equal(t, "250.00 €", items[0]["total"])
	assert.Equal(t, "01.07.2024", items[0]["date"])

	assert.Equal(t, "7.5 Std", items[1]["hours"])
	assert.Equal(t, "375.00 €", items[1]["total"])
	assert.Equal(t, "15.07.2024", items[1]["date"])
}
