package category

import (
	"ExpenseSnap-Backend/domain"
	"ExpenseSnap-Backend/entities"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCategoryRepository struct {
	mu          sync.Mutex
	categories  []*entities.Category
	corrections []*entities.CategoryCorrection
	createErr   error
}

func (f *fakeCategoryRepository) GetCategoriesByUser(_ context.Context, userID string) ([]*entities.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entities.Category
	for _, c := range f.categories {
		if c.UserID.String() == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCategoryRepository) CreateCategories(_ context.Context, categories []*entities.Category) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	f.categories = append(f.categories, categories...)
	return nil
}

func (f *fakeCategoryRepository) GetCategoryByID(_ context.Context, id string) (*entities.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.categories {
		if c.ID.String() == id {
			return c, nil
		}
	}
	return nil, errors.New("not found")
}

func (f *fakeCategoryRepository) CreateCorrection(_ context.Context, correction *entities.CategoryCorrection) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.corrections = append(f.corrections, correction)
	return nil
}

func (f *fakeCategoryRepository) correctionCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.corrections)
}

func (f *fakeCategoryRepository) categoryNamed(name string) *entities.Category {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.categories {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestSuggestMatchesMerchantKeyword(t *testing.T) {
	repo := &fakeCategoryRepository{}
	service := NewCategoryService(repo, nil)
	userID := uuid.New().String()

	response, err := service.Suggest(context.Background(), userID, "Starbucks #1047", []string{"Latte", "Bagel"})
	require.NoError(t, err)

	food := repo.categoryNamed("Food & Dining")
	require.NotNil(t, food)
	assert.Equal(t, food.ID.String(), response.SuggestedCategoryID)
	assert.GreaterOrEqual(t, response.Confidence, 0.7)
	assert.Contains(t, response.Reasoning, "starbucks")
}

func TestSuggestIsDeterministic(t *testing.T) {
	repo := &fakeCategoryRepository{}
	service := NewCategoryService(repo, nil)
	userID := uuid.New().String()

	first, err := service.Suggest(context.Background(), userID, "Shell Gas Station", []string{"fuel"})
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		again, err := service.Suggest(context.Background(), userID, "Shell Gas Station", []string{"fuel"})
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestSuggestConfidenceCappedByRule(t *testing.T) {
	repo := &fakeCategoryRepository{}
	service := NewCategoryService(repo, nil)
	userID := uuid.New().String()

	// three keywords match: raw score 0.7 + 3*0.1 would exceed the rule cap
	response, err := service.Suggest(context.Background(), userID, "Cafe", []string{"pizza", "burger"})
	require.NoError(t, err)
	assert.InDelta(t, 0.9, response.Confidence, 0.001)
}

func TestSuggestBootstrapsDefaultCategories(t *testing.T) {
	repo := &fakeCategoryRepository{}
	service := NewCategoryService(repo, nil)
	userID := uuid.New().String()

	_, err := service.Suggest(context.Background(), userID, "Starbucks", nil)
	require.NoError(t, err)

	categories, err := repo.GetCategoriesByUser(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, categories, 10)
	for _, c := range categories {
		assert.True(t, c.IsDefault)
	}

	// second call reuses the bootstrapped set instead of creating more
	_, err = service.Suggest(context.Background(), userID, "Starbucks", nil)
	require.NoError(t, err)
	categories, _ = repo.GetCategoriesByUser(context.Background(), userID)
	assert.Len(t, categories, 10)
}

func TestSuggestBootstrapFailureIsFatal(t *testing.T) {
	repo := &fakeCategoryRepository{createErr: errors.New("insert denied")}
	service := NewCategoryService(repo, nil)

	_, err := service.Suggest(context.Background(), uuid.New().String(), "Starbucks", nil)
	require.ErrorIs(t, err, domain.ErrCategoryBootstrap)
}

func TestSuggestNoStrongMatch(t *testing.T) {
	repo := &fakeCategoryRepository{}
	service := NewCategoryService(repo, nil)

	response, err := service.Suggest(context.Background(), uuid.New().String(), "Zzyzx Holdings LLC", nil)
	require.NoError(t, err)
	assert.Empty(t, response.SuggestedCategoryID)
	assert.InDelta(t, 0.3, response.Confidence, 0.001)
	assert.Equal(t, "no strong match", response.Reasoning)
}

func TestSuggestRejectsBadUserID(t *testing.T) {
	service := NewCategoryService(&fakeCategoryRepository{}, nil)

	_, err := service.Suggest(context.Background(), "not-a-uuid", "Starbucks", nil)
	require.ErrorIs(t, err, domain.ErrParseUUID)
}

func TestRecordCorrection(t *testing.T) {
	repo := &fakeCategoryRepository{}
	service := NewCategoryService(repo, nil)

	err := service.RecordCorrection(uuid.New().String(), domain.RecordCorrectionRequest{
		MerchantName:        "Starbucks",
		SuggestedCategoryID: uuid.New().String(),
		ActualCategoryID:    uuid.New().String(),
	})
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		return repo.correctionCount() == 1
	}, time.Second, 10*time.Millisecond)
}

func TestRecordCorrectionRejectsBadIDs(t *testing.T) {
	service := NewCategoryService(&fakeCategoryRepository{}, nil)

	err := service.RecordCorrection("nope", domain.RecordCorrectionRequest{ActualCategoryID: uuid.New().String()})
	require.ErrorIs(t, err, domain.ErrParseUUID)

	err = service.RecordCorrection(uuid.New().String(), domain.RecordCorrectionRequest{ActualCategoryID: "nope"})
	require.ErrorIs(t, err, domain.ErrParseUUID)
}
