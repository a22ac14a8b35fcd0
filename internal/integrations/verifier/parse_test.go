package verifier

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/EquestrianHub/internal/domain"
)

func TestParseVerdict_Normalizes(t *testing.T) {
	result, err := ParseVerdict(`{
		"isPaymentProof": "yes",
		"detectedAmount": "R1,250.50",
		"amountMatches": 1,
		"confidence": 140,
		"documentType": "",
		"isValid": true,
		"issues": "none"
	}`)
	require.NoError(t, err)

	assert.True(t, result.IsPaymentProof)
	assert.True(t, result.AmountMatches)
	require.NotNil(t, result.DetectedAmount)
	assert.True(t, result.DetectedAmount.Equal(decimal.RequireFromString("1250.50")))
	assert.Equal(t, 100, result.Confidence)
	assert.Equal(t, "Unknown", result.DocumentType)
	assert.Equal(t, []string{}, result.Issues)
	assert.Nil(t, result.BankName)
}

func TestParseVerdict_NegativeConfidenceAndBadAmount(t *testing.T) {
	result, err := ParseVerdict(`{"confidence": -20, "detectedAmount": "unknown"}`)
	require.NoError(t, err)

	assert.Equal(t, 0, result.Confidence)
	assert.Nil(t, result.DetectedAmount)
	assert.False(t, result.IsValid)
}

func TestParseVerdict_NaNConfidenceIsZero(t *testing.T) {
	result, err := ParseVerdict(`{"isValid": true, "amountMatches": true, "confidence": "NaN"}`)
	require.NoError(t, err)

	assert.Equal(t, 0, result.Confidence)
}

func TestParseVerdict_NoJSON(t *testing.T) {
	_, err := ParseVerdict("sorry, no idea")
	assert.ErrorIs(t, err, domain.ErrParseFailure)
}
