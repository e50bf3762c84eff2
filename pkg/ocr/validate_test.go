package ocr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func float(v float64) *float64 { return &v }

func TestValidateTotalBounds(t *testing.T) {
	cases := []struct {
		name  string
		total float64
		valid bool
	}{
		{"negative", -1, false},
		{"zero", 0, true},
		{"at ceiling", 10000, true},
		{"above ceiling", 10001, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := Validate(ReceiptFields{Total: float(tc.total)})
			assert.Equal(t, tc.valid, result.IsValid)
		})
	}
}

func TestValidateRequiresSomeAmount(t *testing.T) {
	result := Validate(ReceiptFields{})
	require.False(t, result.IsValid)
	assert.Contains(t, result.Violations, "no amount found on receipt")

	// subtotal alone is enough
	result = Validate(ReceiptFields{Subtotal: float(5)})
	assert.True(t, result.IsValid)
}

func TestValidateCollectsAllViolations(t *testing.T) {
	result := Validate(ReceiptFields{
		Total: float(-3),
		Items: []LineItem{
			{Description: "", Quantity: 0, TotalPrice: -1},
		},
	})

	require.False(t, result.IsValid)
	assert.Len(t, result.Violations, 4, "every broken rule is reported, not just the first")
}

func TestValidateItemRules(t *testing.T) {
	result := Validate(ReceiptFields{
		Total: float(20),
		Items: []LineItem{
			{Description: "Coffee", Quantity: 1, TotalPrice: 4},
			{Description: "Muffin", Quantity: -2, TotalPrice: 6},
		},
	})

	require.False(t, result.IsValid)
	require.Len(t, result.Violations, 1)
	assert.Contains(t, result.Violations[0], "item 2")
}
