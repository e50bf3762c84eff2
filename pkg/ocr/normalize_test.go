package ocr

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDecode(t *testing.T, payload string) AnalyzeResult {
	t.Helper()
	result, err := DecodePayload([]byte(payload))
	require.NoError(t, err)
	return result
}

func TestNormalizeNoDocuments(t *testing.T) {
	_, err := Normalize(AnalyzeResult{})
	require.ErrorIs(t, err, ErrNoDocuments)

	result := mustDecode(t, `{"status":"succeeded"}`)
	_, err = Normalize(result)
	require.ErrorIs(t, err, ErrNoDocuments)
}

func TestNormalizeMissingFieldsAreNil(t *testing.T) {
	result := mustDecode(t, `{"documents":[{"fields":{}}]}`)

	fields, err := Normalize(result)
	require.NoError(t, err)
	assert.Nil(t, fields.MerchantName)
	assert.Nil(t, fields.TransactionDate)
	assert.Nil(t, fields.Subtotal)
	assert.Nil(t, fields.Tax)
	assert.Nil(t, fields.Total)
	assert.Empty(t, fields.Items)
	assert.Empty(t, fields.Warnings)
}

func TestNormalizeMonetaryStrings(t *testing.T) {
	result := mustDecode(t, `{"documents":[{"fields":{
		"Subtotal":{"value":"$1,199.00","confidence":0.98},
		"TotalTax":{"value":"0.75","confidence":0.97},
		"Total":{"value":1199.75,"confidence":0.99}
	}}]}`)

	fields, err := Normalize(result)
	require.NoError(t, err)
	require.NotNil(t, fields.Subtotal)
	assert.InDelta(t, 1199.00, *fields.Subtotal, 0.001)
	require.NotNil(t, fields.Tax)
	assert.InDelta(t, 0.75, *fields.Tax, 0.001)
	require.NotNil(t, fields.Total)
	assert.InDelta(t, 1199.75, *fields.Total, 0.001)
}

func TestNormalizeUnparsableAmountIsNil(t *testing.T) {
	result := mustDecode(t, `{"documents":[{"fields":{"Total":{"value":"N/A"}}}]}`)

	fields, err := Normalize(result)
	require.NoError(t, err)
	assert.Nil(t, fields.Total)
}

func TestNormalizeDateFormats(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"2024-01-05T00:00:00Z", "2024-01-05"},
		{"2024-01-05", "2024-01-05"},
		{"12/31/2024", "2024-12-31"},
		{"31/12/2024", "2024-12-31"},
		{"05/06/2024", "2024-05-06"}, // ambiguous, month-first wins
	}

	for _, tc := range cases {
		got, ok := normalizeDate(tc.raw)
		assert.True(t, ok, tc.raw)
		assert.Equal(t, tc.want, got, tc.raw)
	}
}

func TestNormalizeDateFallsBackToToday(t *testing.T) {
	result := mustDecode(t, `{"documents":[{"fields":{"TransactionDate":{"value":"last tuesday"}}}]}`)

	fields, err := Normalize(result)
	require.NoError(t, err)
	require.NotNil(t, fields.TransactionDate)
	assert.Equal(t, time.Now().Format("2006-01-02"), *fields.TransactionDate)
	require.Len(t, fields.Warnings, 1)
	assert.Contains(t, fields.Warnings[0], "last tuesday")
}

func TestNormalizeItemDefaults(t *testing.T) {
	result := mustDecode(t, `{"documents":[{"fields":{"Items":{"value":[
		{"properties":{"Description":{"value":"Latte"},"TotalPrice":{"value":4.50}}},
		{"properties":{"Description":{"value":"Bagel"},"Quantity":{"value":2},"Price":{"value":1.25}}},
		{"properties":{"Description":{"value":"   "},"TotalPrice":{"value":9.99}}},
		{"properties":{"TotalPrice":{"value":3.00}}}
	]}}}]}`)

	fields, err := Normalize(result)
	require.NoError(t, err)
	require.Len(t, fields.Items, 2, "items without a description are dropped")

	latte := fields.Items[0]
	assert.Equal(t, "Latte", latte.Description)
	assert.Equal(t, 1, latte.Quantity)
	assert.InDelta(t, 4.50, latte.UnitPrice, 0.001)
	assert.InDelta(t, 4.50, latte.TotalPrice, 0.001)

	bagel := fields.Items[1]
	assert.Equal(t, 2, bagel.Quantity)
	assert.InDelta(t, 1.25, bagel.UnitPrice, 0.001)
	assert.InDelta(t, 2.50, bagel.TotalPrice, 0.001)
}

func TestNormalizeFlagsLowConfidenceFields(t *testing.T) {
	result := mustDecode(t, `{"documents":[{"fields":{
		"MerchantName":{"value":"Starbucks","confidence":0.42},
		"Total":{"value":12.40,"confidence":0.95}
	}}]}`)

	fields, err := Normalize(result)
	require.NoError(t, err)
	require.NotNil(t, fields.MerchantName, "low-confidence values are kept, not discarded")
	assert.Equal(t, "Starbucks", *fields.MerchantName)
	assert.Equal(t, []string{"MerchantName"}, fields.LowConfidence)
}

func TestDecodePayloadWrappedEnvelope(t *testing.T) {
	result := mustDecode(t, `{"analyzeResult":{"documents":[{"fields":{"MerchantName":{"value":"CVS"}}}]}}`)
	require.Len(t, result.Documents, 1)

	fields, err := Normalize(result)
	require.NoError(t, err)
	require.NotNil(t, fields.MerchantName)
	assert.Equal(t, "CVS", *fields.MerchantName)
}
