package domain

import (
	"errors"
)

var (
	MessageSuccessGetExpenses      = "expenses retrieved successfully"
	MessageSuccessGetExpenseDetail = "expense retrieved successfully"
	MessageSuccessDeleteExpense    = "expense deleted successfully"
	MessageSuccessConvertReceipt   = "receipt converted successfully"
	MessageSuccessConvertBatch     = "batch conversion completed"

	MessageFailedGetExpenses    = "failed to retrieve expenses"
	MessageFailedDeleteExpense  = "failed to delete expense"
	MessageFailedConvertReceipt = "failed to convert receipt"
	MessageFailedConvertBatch   = "failed to run batch conversion"

	ErrExpenseNotFound    = errors.New("expense not found")
	ErrExpenseExists      = errors.New("expense already exists for receipt")
	ErrValidationRejected = errors.New("receipt fields failed validation")
)

type (
	ExpenseItemResponse struct {
		ID         string  `json:"id"`
		ItemName   string  `json:"item_name"`
		Quantity   int     `json:"quantity"`
		UnitPrice  float64 `json:"unit_price"`
		TotalPrice float64 `json:"total_price"`
		Category   string  `json:"category,omitempty"`
	}

	ExpenseResponse struct {
		ID              string                `json:"id"`
		ReceiptID       string                `json:"receipt_id"`
		MerchantName    string                `json:"merchant_name"`
		TransactionDate string                `json:"transaction_date"`
		Currency        string                `json:"currency"`
		Subtotal        float64               `json:"subtotal"`
		Tax             float64               `json:"tax"`
		Total           float64               `json:"total"`
		PaymentMethod   string                `json:"payment_method,omitempty"`
		Items           []ExpenseItemResponse `json:"items"`
	}

	ConvertReceiptRequest struct {
		Currency string `json:"currency" validate:"omitempty,len=3"`
	}

	BulkConvertRequest struct {
		ReceiptIDs []string `json:"receipt_ids" validate:"required,min=1,dive,uuid"`
		Currency   string   `json:"currency" validate:"omitempty,len=3"`
	}

	ConversionResultResponse struct {
		ReceiptID    string `json:"receipt_id"`
		Status       string `json:"status"` // created, skipped, no_ocr, failed
		ExpenseID    string `json:"expense_id,omitempty"`
		ItemsCreated int    `json:"items_created,omitempty"`
		Error        string `json:"error,omitempty"`
	}

	BulkConvertResponse struct {
		Results []ConversionResultResponse `json:"results"`
		Summary BatchSummary               `json:"summary"`
	}

	BatchSummary struct {
		Total      int `json:"total"`
		Successful int `json:"successful"`
		Failed     int `json:"failed"`
	}

	// ReceiptReadyEvent is the webhook body posted by the OCR completion hook.
	// Either the flat or the wrapped shape may arrive; an empty body means
	// "sweep the backlog".
	ReceiptReadyEvent struct {
		ReceiptID string `json:"receipt_id"`
		Record    *struct {
			ID string `json:"id"`
		} `json:"record,omitempty"`
	}

	BacklogSweepResponse struct {
		Inserted int `json:"inserted"`
		Skipped  int `json:"skipped"`
		NoOCR    int `json:"no_ocr"`
		Failed   int `json:"failed"`
	}
)
