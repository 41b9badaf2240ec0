package phone

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_ValidUSNumber(t *testing.T) {
	n, err := Normalize("+14155552671")
	require.NoError(t, err)
	assert.Equal(t, "+1", n.CountryCode)
	assert.Equal(t, "US", n.ISOCode)
	assert.NotEmpty(t, n.InternationalNumber)
}

func TestNormalize_ValidFrenchNumber(t *testing.T) {
	n, err := Normalize("+33612345678")
	require.NoError(t, err)
	assert.Equal(t, "+33", n.CountryCode)
	assert.Equal(t, "FR", n.ISOCode)
}

func TestNormalize_Invalid(t *testing.T) {
	cases := []string{"", "not-a-number", "+1234567890", "12345"}
	for _, raw := range cases {
		_, err := Normalize(raw)
		assert.Error(t, err, "expected %q to be rejected", raw)
	}
}

func TestTimezones_ValidNumber(t *testing.T) {
	zones, err := Timezones("+14155552671")
	require.NoError(t, err)
	assert.NotEmpty(t, zones)
}
