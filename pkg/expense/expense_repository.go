package expense

import (
	"ExpenseSnap-Backend/entities"
	"context"

	"gorm.io/gorm"
)

type (
	ExpenseRepository interface {
		CreateExpense(ctx context.Context, expense *entities.Expense) error
		CreateExpenseItem(ctx context.Context, item *entities.ExpenseItem) error
		GetExpenseByReceiptID(ctx context.Context, receiptID string) (*entities.Expense, error)
		GetExpenseByID(ctx context.Context, id string) (*entities.Expense, error)
		GetExpensesByUser(ctx context.Context, userID string, page, limit int) ([]*entities.Expense, int64, error)
		DeleteExpense(ctx context.Context, id string) error
	}

	expenseRepository struct {
		db *gorm.DB
	}
)

func NewExpenseRepository(db *gorm.DB) ExpenseRepository {
	return &expenseRepository{db: db}
}

func (r *expenseRepository) CreateExpense(ctx context.Context, expense *entities.Expense) error {
	return r.db.WithContext(ctx).Create(expense).Error
}

func (r *expenseRepository) CreateExpenseItem(ctx context.Context, item *entities.ExpenseItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *expenseRepository) GetExpenseByReceiptID(ctx context.Context, receiptID string) (*entities.Expense, error) {
	var expense entities.Expense
	if err := r.db.WithContext(ctx).Where("receipt_id = ?", receiptID).First(&expense).Error; err != nil {
		return nil, err
	}
	return &expense, nil
}

func (r *expenseRepository) GetExpenseByID(ctx context.Context, id string) (*entities.Expense, error) {
	var expense entities.Expense
	if err := r.db.WithContext(ctx).Preload("Items").Where("id = ?", id).First(&expense).Error; err != nil {
		return nil, err
	}
	return &expense, nil
}

func (r *expenseRepository) GetExpensesByUser(ctx context.Context, userID string, page, limit int) ([]*entities.Expense, int64, error) {
	var expenses []*entities.Expense
	var count int64

	offset := (page - 1) * limit
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)

	if err := query.Model(&entities.Expense{}).Count(&count).Error; err != nil {
		return nil, 0, err
	}
	if err := query.Preload("Items").Offset(offset).Limit(limit).Order("transaction_date desc").Find(&expenses).Error; err != nil {
		return nil, 0, err
	}
	return expenses, count, nil
}

func (r *expenseRepository) DeleteExpense(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Where("expense_id = ?", id).Delete(&entities.ExpenseItem{}).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.Expense{}).Error
}
