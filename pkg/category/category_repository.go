package category

import (
	"ExpenseSnap-Backend/entities"
	"context"

	"gorm.io/gorm"
)

type (
	CategoryRepository interface {
		GetCategoriesByUser(ctx context.Context, userID string) ([]*entities.Category, error)
		CreateCategories(ctx context.Context, categories []*entities.Category) error
		GetCategoryByID(ctx context.Context, id string) (*entities.Category, error)
		CreateCorrection(ctx context.Context, correction *entities.CategoryCorrection) error
	}

	categoryRepository struct {
		db *gorm.DB
	}
)

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) GetCategoriesByUser(ctx context.Context, userID string) ([]*entities.Category, error) {
	var categories []*entities.Category
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("name asc").
		Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *categoryRepository) CreateCategories(ctx context.Context, categories []*entities.Category) error {
	return r.db.WithContext(ctx).Create(categories).Error
}

func (r *categoryRepository) GetCategoryByID(ctx context.Context, id string) (*entities.Category, error) {
	var category entities.Category
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) CreateCorrection(ctx context.Context, correction *entities.CategoryCorrection) error {
	return r.db.WithContext(ctx).Create(correction).Error
}
