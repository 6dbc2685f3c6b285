package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invoiceworks/backend/domain"
)

func TestProfileRoundTrip(t *testing.T) {
	in := domain.CustomerProfile{
		Address:   domain.Address{Street: "Hauptstraße 5", PostalCode: "10115", City: "Berlin"},
		TaxNumber: "12/345/67890",
		VAT:       true,
	}

	var out domain.CustomerProfile
	require.NoError(t, unmarshalProfile(marshalProfile(in), &out))
	assert.Equal(t, in, out)
}

func TestUnmarshalProfile_EmptyBlobIsZeroProfile(t *testing.T) {
	var out domain.CustomerProfile
	require.NoError(t, unmarshalProfile(nil, &out))
	assert.Equal(t, domain.CustomerProfile{}, out)
}

func TestUnmarshalProfile_ShapeMismatchSurfacesError(t *testing.T) {
	var out domain.CustomerProfile
	err := unmarshalProfile([]byte(`{"address": "not an object"}`), &out)
	assert.Error(t, err)
}

func TestUnmarshalProfile_MalformedBlobSurfacesError(t *testing.T) {
	var out domain.EmployerProfile
	assert.Error(t, unmarshalProfile([]byte(`{"company":`), &out))
}
