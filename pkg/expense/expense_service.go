package expense

import (
	"ExpenseSnap-Backend/domain"
	"ExpenseSnap-Backend/entities"
	"ExpenseSnap-Backend/pkg/category"
	"ExpenseSnap-Backend/pkg/ocr"
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	DefaultMerchantName = "Unknown Merchant"
	DefaultCurrency     = "USD"
)

type (
	// MaterializeResult reports one materialization attempt. Skipped means the
	// expense already existed; that is a success, not an error.
	MaterializeResult struct {
		Success      bool
		Skipped      bool
		ExpenseID    *uuid.UUID
		ItemsCreated int
		Error        string
	}

	ExpenseService interface {
		CreateFromReceipt(ctx context.Context, receiptID, userID uuid.UUID, fields ocr.ReceiptFields, currency string) MaterializeResult
		GetExpenses(ctx context.Context, userID string, page, limit int) ([]domain.ExpenseResponse, int64, error)
		GetExpenseByID(ctx context.Context, id string, userID string) (domain.ExpenseResponse, error)
		DeleteExpense(ctx context.Context, id string, userID string) error
	}

	expenseService struct {
		expenseRepository ExpenseRepository
	}
)

func NewExpenseService(expenseRepository ExpenseRepository) ExpenseService {
	return &expenseService{expenseRepository: expenseRepository}
}

// CreateFromReceipt materializes one expense and its items from validated
// receipt fields. Safe to call any number of times for the same receipt: an
// existing expense short-circuits into a skip, and a concurrent insert losing
// the unique-index race on receipt_id is treated the same way.
func (s *expenseService) CreateFromReceipt(ctx context.Context, receiptID, userID uuid.UUID, fields ocr.ReceiptFields, currency string) MaterializeResult {
	existing, err := s.expenseRepository.GetExpenseByReceiptID(ctx, receiptID.String())
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return MaterializeResult{Error: fmt.Sprintf("idempotency check failed: %v", err)}
	}
	if existing != nil {
		return MaterializeResult{Success: true, Skipped: true, ExpenseID: &existing.ID}
	}

	if currency == "" {
		currency = DefaultCurrency
	}

	merchant := DefaultMerchantName
	if fields.MerchantName != nil && *fields.MerchantName != "" {
		merchant = *fields.MerchantName
	}

	transactionDate := time.Now()
	if fields.TransactionDate != nil {
		if parsed, err := time.Parse("2006-01-02", *fields.TransactionDate); err == nil {
			transactionDate = parsed
		}
	}

	total := deref(fields.Total)
	if fields.Total == nil {
		total = deref(fields.Subtotal) + deref(fields.Tax)
	}

	expense := &entities.Expense{
		ID:              uuid.New(),
		ReceiptID:       receiptID,
		UserID:          userID,
		MerchantName:    merchant,
		TransactionDate: transactionDate,
		Currency:        currency,
		Subtotal:        deref(fields.Subtotal),
		Tax:             deref(fields.Tax),
		Total:           total,
	}

	if err := s.expenseRepository.CreateExpense(ctx, expense); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// A concurrent conversion won the unique-index race on receipt_id.
			if winner, lookupErr := s.expenseRepository.GetExpenseByReceiptID(ctx, receiptID.String()); lookupErr == nil {
				return MaterializeResult{Success: true, Skipped: true, ExpenseID: &winner.ID}
			}
			return MaterializeResult{Success: true, Skipped: true}
		}
		return MaterializeResult{Error: fmt.Sprintf("expense insert failed: %v", err)}
	}

	itemsCreated := 0
	for _, line := range fields.Items {
		label := category.CategorizeItem(line.Description)
		item := &entities.ExpenseItem{
			ID:         uuid.New(),
			ExpenseID:  expense.ID,
			ItemName:   line.Description,
			Quantity:   line.Quantity,
			UnitPrice:  line.UnitPrice,
			TotalPrice: line.TotalPrice,
			Category:   &label,
		}
		if err := s.expenseRepository.CreateExpenseItem(ctx, item); err != nil {
			// Partial success stands: the expense is kept, the miss is logged
			// and reflected in the reduced ItemsCreated count.
			log.Printf("Error inserting item %q for expense %s: %v", line.Description, expense.ID, err)
			continue
		}
		itemsCreated++
	}

	if len(fields.Items) == 0 {
		label := category.DefaultItemCategory
		fallback := &entities.ExpenseItem{
			ID:         uuid.New(),
			ExpenseID:  expense.ID,
			ItemName:   fmt.Sprintf("Purchase from %s", merchant),
			Quantity:   1,
			UnitPrice:  total,
			TotalPrice: total,
			Category:   &label,
		}
		if err := s.expenseRepository.CreateExpenseItem(ctx, fallback); err != nil {
			log.Printf("Error inserting fallback item for expense %s: %v", expense.ID, err)
		} else {
			itemsCreated++
		}
	}

	return MaterializeResult{Success: true, ExpenseID: &expense.ID, ItemsCreated: itemsCreated}
}

func (s *expenseService) GetExpenses(ctx context.Context, userID string, page, limit int) ([]domain.ExpenseResponse, int64, error) {
	expenses, count, err := s.expenseRepository.GetExpensesByUser(ctx, userID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	var response []domain.ExpenseResponse
	for _, e := range expenses {
		response = append(response, toExpenseResponse(e))
	}
	return response, count, nil
}

func (s *expenseService) GetExpenseByID(ctx context.Context, id string, userID string) (domain.ExpenseResponse, error) {
	expense, err := s.expenseRepository.GetExpenseByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ExpenseResponse{}, domain.ErrExpenseNotFound
		}
		return domain.ExpenseResponse{}, err
	}
	if expense.UserID.String() != userID {
		return domain.ExpenseResponse{}, domain.ErrUnauthorizedAccess
	}
	return toExpenseResponse(expense), nil
}

func (s *expenseService) DeleteExpense(ctx context.Context, id string, userID string) error {
	expense, err := s.expenseRepository.GetExpenseByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrExpenseNotFound
		}
		return err
	}
	if expense.UserID.String() != userID {
		return domain.ErrUnauthorizedAccess
	}
	return s.expenseRepository.DeleteExpense(ctx, id)
}

func toExpenseResponse(e *entities.Expense) domain.ExpenseResponse {
	response := domain.ExpenseResponse{
		ID:              e.ID.String(),
		ReceiptID:       e.ReceiptID.String(),
		MerchantName:    e.MerchantName,
		TransactionDate: e.TransactionDate.Format("2006-01-02"),
		Currency:        e.Currency,
		Subtotal:        e.Subtotal,
		Tax:             e.Tax,
		Total:           e.Total,
	}
	if e.PaymentMethod != nil {
		response.PaymentMethod = *e.PaymentMethod
	}
	for _, item := range e.Items {
		itemResponse := domain.ExpenseItemResponse{
			ID:         item.ID.String(),
			ItemName:   item.ItemName,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
			TotalPrice: item.TotalPrice,
		}
		if item.Category != nil {
			itemResponse.Category = *item.Category
		}
		response.Items = append(response.Items, itemResponse)
	}
	return response
}

func deref(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}
