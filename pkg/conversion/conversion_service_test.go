package conversion

import (
	"ExpenseSnap-Backend/entities"
	"ExpenseSnap-Backend/pkg/expense"
	"ExpenseSnap-Backend/pkg/receipt"
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeReceiptRepository struct {
	mu       sync.Mutex
	receipts map[string]*entities.Receipt
}

func newFakeReceiptRepository() *fakeReceiptRepository {
	return &fakeReceiptRepository{receipts: map[string]*entities.Receipt{}}
}

func (f *fakeReceiptRepository) CreateReceipt(_ context.Context, rec *entities.Receipt) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.receipts[rec.ID.String()] = rec
	return nil
}

func (f *fakeReceiptRepository) GetReceiptByID(_ context.Context, id string) (*entities.Receipt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.receipts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return rec, nil
}

func (f *fakeReceiptRepository) UpdateReceipt(_ context.Context, rec *entities.Receipt) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.receipts[rec.ID.String()] = rec
	return nil
}

func (f *fakeReceiptRepository) GetReceiptsByUser(_ context.Context, userID string, _, _ int) ([]*entities.Receipt, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entities.Receipt
	for _, rec := range f.receipts {
		if rec.UserID.String() == userID {
			out = append(out, rec)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeReceiptRepository) GetUnconvertedReceipts(_ context.Context, limit int) ([]*entities.Receipt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entities.Receipt
	for _, rec := range f.receipts {
		if rec.RawOCRPayload == nil || rec.Status == receipt.StatusExpenseCreated {
			continue
		}
		out = append(out, rec)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

type fakeExpenseStore struct {
	mu       sync.Mutex
	expenses []*entities.Expense
	items    []*entities.ExpenseItem
}

func (f *fakeExpenseStore) CreateExpense(_ context.Context, e *entities.Expense) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.expenses {
		if existing.ReceiptID == e.ReceiptID {
			return gorm.ErrDuplicatedKey
		}
	}
	f.expenses = append(f.expenses, e)
	return nil
}

func (f *fakeExpenseStore) CreateExpenseItem(_ context.Context, item *entities.ExpenseItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items = append(f.items, item)
	return nil
}

func (f *fakeExpenseStore) GetExpenseByReceiptID(_ context.Context, receiptID string) (*entities.Expense, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.expenses {
		if e.ReceiptID.String() == receiptID {
			return e, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeExpenseStore) GetExpenseByID(_ context.Context, id string) (*entities.Expense, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.expenses {
		if e.ID.String() == id {
			return e, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeExpenseStore) GetExpensesByUser(_ context.Context, userID string, _, _ int) ([]*entities.Expense, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entities.Expense
	for _, e := range f.expenses {
		if e.UserID.String() == userID {
			out = append(out, e)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeExpenseStore) DeleteExpense(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, e := range f.expenses {
		if e.ID.String() == id {
			f.expenses = append(f.expenses[:i], f.expenses[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func newTestService() (ConversionService, *fakeReceiptRepository, *fakeExpenseStore) {
	receipts := newFakeReceiptRepository()
	expenses := &fakeExpenseStore{}
	service := NewConversionService(receipts, expense.NewExpenseService(expenses))
	return service, receipts, expenses
}

func seedReceipt(repo *fakeReceiptRepository, payload *string, status string) *entities.Receipt {
	rec := &entities.Receipt{
		ID:            uuid.New(),
		UserID:        uuid.New(),
		Status:        status,
		RawOCRPayload: payload,
	}
	_ = repo.CreateReceipt(context.Background(), rec)
	return rec
}

func payloadOf(json string) *string { return &json }

const timHortonsPayload = `{"documents":[{"fields":{"MerchantName":{"value":"Tim Hortons"},"Total":{"value":7.25}}}]}`
const invalidTotalPayload = `{"documents":[{"fields":{"MerchantName":{"value":"Bad Scan Deli"},"Total":{"value":-5}}}]}`

func TestConvertReceiptEndToEnd(t *testing.T) {
	service, receipts, expenses := newTestService()
	rec := seedReceipt(receipts, payloadOf(timHortonsPayload), receipt.StatusProcessed)

	result := service.ConvertReceipt(context.Background(), rec.ID.String(), "")

	require.Equal(t, OutcomeCreated, result.Status, result.Error)
	assert.Equal(t, 1, result.ItemsCreated)
	require.NotEmpty(t, result.ExpenseID)

	require.Len(t, expenses.expenses, 1)
	created := expenses.expenses[0]
	assert.Equal(t, "Tim Hortons", created.MerchantName)
	assert.InDelta(t, 7.25, created.Total, 0.001)
	assert.Equal(t, rec.UserID, created.UserID)

	require.Len(t, expenses.items, 1)
	assert.Equal(t, "Purchase from Tim Hortons", expenses.items[0].ItemName)

	stored, err := receipts.GetReceiptByID(context.Background(), rec.ID.String())
	require.NoError(t, err)
	assert.Equal(t, receipt.StatusExpenseCreated, stored.Status)
}

func TestConvertReceiptWithoutOCRData(t *testing.T) {
	service, receipts, expenses := newTestService()
	rec := seedReceipt(receipts, nil, receipt.StatusUploaded)

	result := service.ConvertReceipt(context.Background(), rec.ID.String(), "")

	assert.Equal(t, OutcomeNoOCR, result.Status)
	assert.Empty(t, expenses.expenses)

	stored, _ := receipts.GetReceiptByID(context.Background(), rec.ID.String())
	assert.Equal(t, receipt.StatusUploaded, stored.Status, "status untouched when there is nothing to convert")
}

func TestConvertReceiptNotFound(t *testing.T) {
	service, _, _ := newTestService()

	result := service.ConvertReceipt(context.Background(), uuid.New().String(), "")
	assert.Equal(t, OutcomeFailed, result.Status)
	assert.NotEmpty(t, result.Error)
}

func TestConvertReceiptValidationFailure(t *testing.T) {
	service, receipts, expenses := newTestService()
	rec := seedReceipt(receipts, payloadOf(invalidTotalPayload), receipt.StatusProcessed)

	result := service.ConvertReceipt(context.Background(), rec.ID.String(), "")

	require.Equal(t, OutcomeFailed, result.Status)
	assert.Contains(t, result.Error, "validation failed")
	assert.Empty(t, expenses.expenses, "invalid receipts never reach the materializer")

	stored, _ := receipts.GetReceiptByID(context.Background(), rec.ID.String())
	assert.Equal(t, receipt.StatusExpenseCreationFailed, stored.Status)
}

func TestConvertReceiptRerunIsSkipped(t *testing.T) {
	service, receipts, expenses := newTestService()
	rec := seedReceipt(receipts, payloadOf(timHortonsPayload), receipt.StatusProcessed)

	first := service.ConvertReceipt(context.Background(), rec.ID.String(), "")
	require.Equal(t, OutcomeCreated, first.Status, first.Error)

	second := service.ConvertReceipt(context.Background(), rec.ID.String(), "")
	assert.Equal(t, OutcomeSkipped, second.Status)
	assert.Equal(t, first.ExpenseID, second.ExpenseID)
	assert.Len(t, expenses.expenses, 1)
}

func TestConvertBatchIsolatesFailures(t *testing.T) {
	service, receipts, expenses := newTestService()
	a := seedReceipt(receipts, payloadOf(timHortonsPayload), receipt.StatusProcessed)
	b := seedReceipt(receipts, payloadOf(invalidTotalPayload), receipt.StatusProcessed)
	c := seedReceipt(receipts, payloadOf(timHortonsPayload), receipt.StatusProcessedWithWarnings)

	results, summary := service.ConvertBatch(context.Background(), []string{
		a.ID.String(), b.ID.String(), c.ID.String(),
	}, "")

	require.Len(t, results, 3)
	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 2, summary.Successful)
	assert.Equal(t, 1, summary.Failed)

	assert.Equal(t, OutcomeCreated, results[0].Status)
	assert.Equal(t, OutcomeFailed, results[1].Status)
	assert.Equal(t, OutcomeCreated, results[2].Status, "one bad receipt must not poison the rest of the batch")

	assert.Len(t, expenses.expenses, 2)
}

func TestConvertBacklog(t *testing.T) {
	service, receipts, _ := newTestService()
	seedReceipt(receipts, payloadOf(timHortonsPayload), receipt.StatusProcessed)
	seedReceipt(receipts, payloadOf(timHortonsPayload), receipt.StatusProcessed)
	seedReceipt(receipts, payloadOf(invalidTotalPayload), receipt.StatusProcessed)
	seedReceipt(receipts, payloadOf(`{"documents":[]}`), receipt.StatusProcessed)
	seedReceipt(receipts, nil, receipt.StatusUploaded)

	summary := service.ConvertBacklog(context.Background(), "")

	assert.Equal(t, 2, summary.Inserted)
	assert.Equal(t, 0, summary.Skipped)
	assert.Equal(t, 1, summary.NoOCR)
	assert.Equal(t, 1, summary.Failed)
}
