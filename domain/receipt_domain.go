package domain

import (
	"errors"
	"mime/multipart"
	"time"
)

var (
	MessageSuccessUploadReceipt    = "receipt uploaded successfully"
	MessageSuccessGetReceipts      = "receipts retrieved successfully"
	MessageSuccessGetReceiptDetail = "receipt retrieved successfully"
	MessageSuccessReanalyzeReceipt = "receipt queued for reanalysis"

	MessageFailedUploadReceipt    = "failed to upload receipt"
	MessageFailedGetReceipts      = "failed to retrieve receipts"
	MessageFailedReanalyzeReceipt = "failed to reanalyze receipt"

	ErrReceiptNotFound        = errors.New("receipt not found")
	ErrReceiptProcessing      = errors.New("receipt is still processing")
	ErrNoOCRData              = errors.New("receipt has no OCR data yet")
	ErrInvalidStatusChange    = errors.New("invalid receipt status transition")
	ErrOCRProviderUnavailable = errors.New("OCR provider is not configured")
)

type (
	UploadReceiptRequest struct {
		ReceiptImage *multipart.FileHeader `json:"receipt_image" form:"receipt_image" validate:"required"`
	}

	UploadReceiptResponse struct {
		ReceiptID string `json:"receipt_id"`
		ImageURL  string `json:"image_url"`
		Status    string `json:"status"`
	}

	ReceiptResponse struct {
		ID          string     `json:"id"`
		ImageURL    string     `json:"image_url"`
		Status      string     `json:"status"`
		HasOCRData  bool       `json:"has_ocr_data"`
		ProcessedAt *time.Time `json:"processed_at,omitempty"`
		CreatedAt   time.Time  `json:"created_at"`
	}
)
