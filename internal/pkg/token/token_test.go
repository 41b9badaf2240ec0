package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOTP_SixDigits(t *testing.T) {
	for i := 0; i < 50; i++ {
		otp, err := NewOTP()
		require.NoError(t, err)
		assert.Len(t, otp, 6)
		for _, c := range otp {
			assert.True(t, c >= '0' && c <= '9', "otp %q contains non-digit", otp)
		}
	}
}

func TestNewConfirmationToken_Length(t *testing.T) {
	tok, err := NewConfirmationToken()
	require.NoError(t, err)
	assert.Len(t, tok, 32)
}

func TestNewConfirmationToken_Unique(t *testing.T) {
	a, err := NewConfirmationToken()
	require.NoError(t, err)
	b, err := NewConfirmationToken()
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestNewRefreshToken_HexLength(t *testing.T) {
	tok, err := NewRefreshToken()
	require.NoError(t, err)
	assert.Len(t, tok, 64)
}
