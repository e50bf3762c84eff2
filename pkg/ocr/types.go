package ocr

import (
	"encoding/json"
)

type (
	// DocumentField is one field of the provider's analyze result. Value is
	// kept raw because the provider mixes strings and numbers freely; the
	// typed accessors below centralize the "missing is nil, never throw"
	// contract.
	DocumentField struct {
		Type       string                   `json:"type,omitempty"`
		Value      json.RawMessage          `json:"value,omitempty"`
		Content    string                   `json:"content,omitempty"`
		Confidence *float64                 `json:"confidence,omitempty"`
		Properties map[string]DocumentField `json:"properties,omitempty"`
	}

	AnalyzedDocument struct {
		DocType string                   `json:"docType,omitempty"`
		Fields  map[string]DocumentField `json:"fields"`
	}

	AnalyzeResult struct {
		Documents []AnalyzedDocument `json:"documents"`
	}
)

// StringValue returns the field value as a string, or nil when the field is
// absent or not representable as text. Numeric values are formatted back.
func (f *DocumentField) StringValue() *string {
	if f == nil || len(f.Value) == 0 {
		return nil
	}
	var s string
	if err := json.Unmarshal(f.Value, &s); err == nil {
		return &s
	}
	var n float64
	if err := json.Unmarshal(f.Value, &n); err == nil {
		formatted := trimFloat(n)
		return &formatted
	}
	if f.Content != "" {
		content := f.Content
		return &content
	}
	return nil
}

// NumberValue returns the field value coerced to a finite float, or nil.
// String values are run through the money parser, which strips currency
// symbols and separators.
func (f *DocumentField) NumberValue() *float64 {
	if f == nil || len(f.Value) == 0 {
		return nil
	}
	var n float64
	if err := json.Unmarshal(f.Value, &n); err == nil {
		if !isFinite(n) {
			return nil
		}
		return &n
	}
	var s string
	if err := json.Unmarshal(f.Value, &s); err == nil {
		return parseAmount(s)
	}
	return nil
}

// ArrayValue returns the field value as a list of sub-fields (the shape the
// provider uses for receipt line items), or nil.
func (f *DocumentField) ArrayValue() []DocumentField {
	if f == nil || len(f.Value) == 0 {
		return nil
	}
	var items []DocumentField
	if err := json.Unmarshal(f.Value, &items); err != nil {
		return nil
	}
	return items
}

// Property looks up a named sub-field, nil when missing.
func (f *DocumentField) Property(name string) *DocumentField {
	if f == nil || f.Properties == nil {
		return nil
	}
	p, ok := f.Properties[name]
	if !ok {
		return nil
	}
	return &p
}
