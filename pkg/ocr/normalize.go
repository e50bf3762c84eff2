package ocr

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// LowConfidenceThreshold is the provider confidence below which a field is
// flagged for observability. Flagged fields are still used: a possibly
// imprecise value beats none.
const LowConfidenceThreshold = 0.5

var ErrNoDocuments = errors.New("no documents in analyze result")

type (
	LineItem struct {
		Description string
		Quantity    int
		UnitPrice   float64
		TotalPrice  float64
	}

	// ReceiptFields is the flat, typed view of one analyzed receipt. Every
	// field the provider did not return is nil.
	ReceiptFields struct {
		MerchantName    *string
		TransactionDate *string // ISO calendar date, YYYY-MM-DD
		Subtotal        *float64
		Tax             *float64
		Total           *float64
		Items           []LineItem
		Warnings        []string
		LowConfidence   []string
	}
)

// Normalize flattens the provider's first document into typed receipt fields.
// Returns ErrNoDocuments when the result carries no documents at all.
func Normalize(result AnalyzeResult) (ReceiptFields, error) {
	if len(result.Documents) == 0 {
		return ReceiptFields{}, ErrNoDocuments
	}

	doc := result.Documents[0]
	fields := ReceiptFields{}

	merchant := docField(doc, "MerchantName")
	fields.MerchantName = merchant.StringValue()
	fields.Subtotal = docField(doc, "Subtotal").NumberValue()
	fields.Tax = docField(doc, "TotalTax").NumberValue()
	fields.Total = docField(doc, "Total").NumberValue()

	if raw := docField(doc, "TransactionDate").StringValue(); raw != nil {
		normalized, ok := normalizeDate(*raw)
		if !ok {
			fields.Warnings = append(fields.Warnings,
				fmt.Sprintf("transaction date %q not recognized, defaulted to today", *raw))
		}
		fields.TransactionDate = &normalized
	}

	for _, item := range docField(doc, "Items").ArrayValue() {
		line, ok := normalizeItem(item)
		if !ok {
			continue
		}
		fields.Items = append(fields.Items, line)
	}

	for _, name := range []string{"MerchantName", "TransactionDate", "Subtotal", "TotalTax", "Total", "Items"} {
		f := docField(doc, name)
		if f != nil && f.Confidence != nil && *f.Confidence < LowConfidenceThreshold {
			fields.LowConfidence = append(fields.LowConfidence, name)
		}
	}

	return fields, nil
}

func docField(doc AnalyzedDocument, name string) *DocumentField {
	if doc.Fields == nil {
		return nil
	}
	f, ok := doc.Fields[name]
	if !ok {
		return nil
	}
	return &f
}

// normalizeItem keeps an item only when it has a non-empty description.
// Quantity defaults to 1; unit and total price back-fill each other when only
// one side was read.
func normalizeItem(item DocumentField) (LineItem, bool) {
	desc := item.Property("Description").StringValue()
	if desc == nil || strings.TrimSpace(*desc) == "" {
		return LineItem{}, false
	}

	line := LineItem{Description: strings.TrimSpace(*desc), Quantity: 1}

	if qty := item.Property("Quantity").NumberValue(); qty != nil && *qty > 0 {
		line.Quantity = int(*qty)
	}
	unit := item.Property("Price").NumberValue()
	total := item.Property("TotalPrice").NumberValue()

	switch {
	case unit != nil && total != nil:
		line.UnitPrice, line.TotalPrice = *unit, *total
	case total != nil:
		line.TotalPrice = *total
		line.UnitPrice = *total / float64(line.Quantity)
	case unit != nil:
		line.UnitPrice = *unit
		line.TotalPrice = *unit * float64(line.Quantity)
	}

	return line, true
}

// normalizeDate accepts ISO (with optional time part), MM/DD/YYYY and
// DD/MM/YYYY (day > 12 disambiguates). On failure it falls back to the
// current date and reports ok=false; the pipeline never fails on a date.
func normalizeDate(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)

	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("2006-01-02"), true
		}
	}

	if parts := strings.Split(raw, "/"); len(parts) == 3 {
		first, err1 := strconv.Atoi(parts[0])
		second, err2 := strconv.Atoi(parts[1])
		year, err3 := strconv.Atoi(parts[2])
		if err1 == nil && err2 == nil && err3 == nil && year >= 1000 {
			month, day := first, second
			if first > 12 {
				month, day = second, first
			}
			t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
			if int(t.Month()) == month && t.Day() == day {
				return t.Format("2006-01-02"), true
			}
		}
	}

	return time.Now().Format("2006-01-02"), false
}

// parseAmount coerces a monetary string to a finite float, stripping currency
// symbols and thousand separators. Returns nil when no number survives.
func parseAmount(raw string) *float64 {
	var b strings.Builder
	for _, r := range strings.TrimSpace(raw) {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	if cleaned == "" {
		return nil
	}
	n, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || !isFinite(n) {
		return nil
	}
	return &n
}

func isFinite(n float64) bool {
	return !math.IsNaN(n) && !math.IsInf(n, 0)
}

func trimFloat(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}
