package receipt

import (
	"ExpenseSnap-Backend/entities"
	"context"

	"gorm.io/gorm"
)

type (
	ReceiptRepository interface {
		CreateReceipt(ctx context.Context, receipt *entities.Receipt) error
		GetReceiptByID(ctx context.Context, id string) (*entities.Receipt, error)
		UpdateReceipt(ctx context.Context, receipt *entities.Receipt) error
		GetReceiptsByUser(ctx context.Context, userID string, page, limit int) ([]*entities.Receipt, int64, error)
		GetUnconvertedReceipts(ctx context.Context, limit int) ([]*entities.Receipt, error)
	}

	receiptRepository struct {
		db *gorm.DB
	}
)

func NewReceiptRepository(db *gorm.DB) ReceiptRepository {
	return &receiptRepository{db: db}
}

func (r *receiptRepository) CreateReceipt(ctx context.Context, receipt *entities.Receipt) error {
	return r.db.WithContext(ctx).Create(receipt).Error
}

func (r *receiptRepository) GetReceiptByID(ctx context.Context, id string) (*entities.Receipt, error) {
	var receipt entities.Receipt
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&receipt).Error; err != nil {
		return nil, err
	}
	return &receipt, nil
}

func (r *receiptRepository) UpdateReceipt(ctx context.Context, receipt *entities.Receipt) error {
	return r.db.WithContext(ctx).Save(receipt).Error
}

func (r *receiptRepository) GetReceiptsByUser(ctx context.Context, userID string, page, limit int) ([]*entities.Receipt, int64, error) {
	var receipts []*entities.Receipt
	var count int64

	offset := (page - 1) * limit
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)

	if err := query.Model(&entities.Receipt{}).Count(&count).Error; err != nil {
		return nil, 0, err
	}
	if err := query.Offset(offset).Limit(limit).Order("created_at desc").Find(&receipts).Error; err != nil {
		return nil, 0, err
	}
	return receipts, count, nil
}

// GetUnconvertedReceipts returns the most recently uploaded receipts that
// already carry an OCR payload but have no expense yet. This is the backlog
// the sweep mode works through.
func (r *receiptRepository) GetUnconvertedReceipts(ctx context.Context, limit int) ([]*entities.Receipt, error) {
	var receipts []*entities.Receipt
	if err := r.db.WithContext(ctx).
		Where("raw_ocr_payload IS NOT NULL").
		Where("NOT EXISTS (SELECT 1 FROM expenses WHERE expenses.receipt_id = receipts.id AND expenses.deleted_at IS NULL)").
		Order("created_at desc").
		Limit(limit).
		Find(&receipts).Error; err != nil {
		return nil, err
	}
	return receipts, nil
}
