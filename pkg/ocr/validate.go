package ocr

import (
	"fmt"
)

// MaxReasonableTotal is the sanity ceiling for a single receipt. Anything
// above it is far more likely a misread than a real purchase.
const MaxReasonableTotal = 10000.0

type ValidationResult struct {
	IsValid    bool
	Violations []string
}

// Validate applies the sanity rules to normalized receipt fields. Every rule
// is evaluated; the caller gets the full violation list, not just the first.
func Validate(fields ReceiptFields) ValidationResult {
	var violations []string

	if fields.Total == nil && fields.Subtotal == nil {
		violations = append(violations, "no amount found on receipt")
	}
	if fields.Total != nil && *fields.Total < 0 {
		violations = append(violations, "total amount is negative")
	}
	if fields.Total != nil && *fields.Total > MaxReasonableTotal {
		violations = append(violations, fmt.Sprintf("total amount %.2f is unreasonably large", *fields.Total))
	}

	for i, item := range fields.Items {
		if item.TotalPrice < 0 {
			violations = append(violations, fmt.Sprintf("item %d has a negative total price", i+1))
		}
		if item.Quantity <= 0 {
			violations = append(violations, fmt.Sprintf("item %d has a non-positive quantity", i+1))
		}
		if item.Description == "" {
			violations = append(violations, fmt.Sprintf("item %d has an empty description", i+1))
		}
	}

	return ValidationResult{IsValid: len(violations) == 0, Violations: violations}
}
