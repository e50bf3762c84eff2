package conversion

import (
	"ExpenseSnap-Backend/domain"
	"ExpenseSnap-Backend/entities"
	"ExpenseSnap-Backend/pkg/expense"
	"ExpenseSnap-Backend/pkg/ocr"
	"ExpenseSnap-Backend/pkg/receipt"
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"gorm.io/gorm"
)

// BacklogLimit caps one sweep at the most recently uploaded unconverted
// receipts.
const BacklogLimit = 20

// Per-receipt conversion outcomes.
const (
	OutcomeCreated = "created"
	OutcomeSkipped = "skipped"
	OutcomeNoOCR   = "no_ocr"
	OutcomeFailed  = "failed"
)

type (
	ConversionResult struct {
		ReceiptID    string
		Status       string
		ExpenseID    string
		ItemsCreated int
		Error        string
	}

	BacklogSummary struct {
		Inserted int
		Skipped  int
		NoOCR    int
		Failed   int
	}

	// ConversionService drives the receipt-to-expense pipeline: normalize the
	// stored OCR payload, validate, materialize, advance the receipt status.
	// Every entry point returns structured results; no failure of one receipt
	// escapes into another's iteration.
	ConversionService interface {
		ConvertReceipt(ctx context.Context, receiptID string, currency string) ConversionResult
		ConvertBacklog(ctx context.Context, currency string) BacklogSummary
		ConvertBatch(ctx context.Context, receiptIDs []string, currency string) ([]ConversionResult, domain.BatchSummary)
	}

	conversionService struct {
		receiptRepository receipt.ReceiptRepository
		expenseService    expense.ExpenseService
	}
)

func NewConversionService(receiptRepository receipt.ReceiptRepository, expenseService expense.ExpenseService) ConversionService {
	return &conversionService{
		receiptRepository: receiptRepository,
		expenseService:    expenseService,
	}
}

func (s *conversionService) ConvertReceipt(ctx context.Context, receiptID string, currency string) ConversionResult {
	rec, err := s.receiptRepository.GetReceiptByID(ctx, receiptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ConversionResult{ReceiptID: receiptID, Status: OutcomeFailed, Error: domain.ErrReceiptNotFound.Error()}
		}
		return ConversionResult{ReceiptID: receiptID, Status: OutcomeFailed, Error: err.Error()}
	}

	if rec.RawOCRPayload == nil {
		return ConversionResult{ReceiptID: receiptID, Status: OutcomeNoOCR, Error: domain.ErrNoOCRData.Error()}
	}

	result, err := ocr.DecodePayload([]byte(*rec.RawOCRPayload))
	if err != nil {
		return ConversionResult{ReceiptID: receiptID, Status: OutcomeNoOCR, Error: err.Error()}
	}
	fields, err := ocr.Normalize(result)
	if err != nil {
		return ConversionResult{ReceiptID: receiptID, Status: OutcomeNoOCR, Error: err.Error()}
	}

	if validation := ocr.Validate(fields); !validation.IsValid {
		s.markStatus(ctx, rec, receipt.StatusExpenseCreationFailed)
		return ConversionResult{
			ReceiptID: receiptID,
			Status:    OutcomeFailed,
			Error:     fmt.Sprintf("validation failed: %s", strings.Join(validation.Violations, "; ")),
		}
	}

	materialized := s.expenseService.CreateFromReceipt(ctx, rec.ID, rec.UserID, fields, currency)
	if !materialized.Success {
		// Persistence failure: the receipt status stays where it is so the
		// conversion can simply be retried.
		return ConversionResult{ReceiptID: receiptID, Status: OutcomeFailed, Error: materialized.Error}
	}

	expenseID := ""
	if materialized.ExpenseID != nil {
		expenseID = materialized.ExpenseID.String()
	}
	if materialized.Skipped {
		return ConversionResult{ReceiptID: receiptID, Status: OutcomeSkipped, ExpenseID: expenseID}
	}

	s.markStatus(ctx, rec, receipt.StatusExpenseCreated)
	return ConversionResult{
		ReceiptID:    receiptID,
		Status:       OutcomeCreated,
		ExpenseID:    expenseID,
		ItemsCreated: materialized.ItemsCreated,
	}
}

func (s *conversionService) ConvertBacklog(ctx context.Context, currency string) BacklogSummary {
	summary := BacklogSummary{}

	receipts, err := s.receiptRepository.GetUnconvertedReceipts(ctx, BacklogLimit)
	if err != nil {
		log.Printf("Error loading conversion backlog: %v", err)
		return summary
	}

	for _, rec := range receipts {
		switch result := s.ConvertReceipt(ctx, rec.ID.String(), currency); result.Status {
		case OutcomeCreated:
			summary.Inserted++
		case OutcomeSkipped:
			summary.Skipped++
		case OutcomeNoOCR:
			summary.NoOCR++
		default:
			summary.Failed++
		}
	}
	return summary
}

func (s *conversionService) ConvertBatch(ctx context.Context, receiptIDs []string, currency string) ([]ConversionResult, domain.BatchSummary) {
	results := make([]ConversionResult, 0, len(receiptIDs))
	summary := domain.BatchSummary{Total: len(receiptIDs)}

	for _, id := range receiptIDs {
		result := s.ConvertReceipt(ctx, id, currency)
		results = append(results, result)
		if result.Status == OutcomeCreated || result.Status == OutcomeSkipped {
			summary.Successful++
		} else {
			summary.Failed++
		}
	}
	return results, summary
}

func (s *conversionService) markStatus(ctx context.Context, rec *entities.Receipt, to string) {
	if !receipt.CanTransition(rec.Status, to) {
		log.Printf("Receipt %s: transition %s -> %s not allowed, leaving status untouched", rec.ID, rec.Status, to)
		return
	}
	rec.Status = to
	if err := s.receiptRepository.UpdateReceipt(ctx, rec); err != nil {
		log.Printf("Error updating receipt %s status: %v", rec.ID, err)
	}
}
