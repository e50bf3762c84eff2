package domain

import (
	"errors"
)

var (
	MessageSuccessGetCategories    = "categories retrieved successfully"
	MessageSuccessSuggestCategory  = "category suggestion generated"
	MessageSuccessRecordCorrection = "category correction recorded"

	MessageFailedGetCategories   = "failed to retrieve categories"
	MessageFailedSuggestCategory = "failed to suggest category"

	ErrCategoryNotFound   = errors.New("category not found")
	ErrCategoryBootstrap  = errors.New("failed to bootstrap default categories")
	ErrNoCategoriesToRank = errors.New("no categories available to match against")
)

type (
	CategoryResponse struct {
		ID          string `json:"id"`
		Name        string `json:"name"`
		Description string `json:"description,omitempty"`
		Color       string `json:"color"`
		IsDefault   bool   `json:"is_default"`
	}

	SuggestCategoryRequest struct {
		MerchantName     string   `json:"merchant_name" validate:"required"`
		ItemDescriptions []string `json:"item_descriptions"`
	}

	SuggestCategoryResponse struct {
		SuggestedCategoryID string  `json:"suggested_category_id,omitempty"`
		Confidence          float64 `json:"confidence"`
		Reasoning           string  `json:"reasoning"`
	}

	RecordCorrectionRequest struct {
		MerchantName        string `json:"merchant_name" validate:"required"`
		SuggestedCategoryID string `json:"suggested_category_id" validate:"omitempty,uuid"`
		ActualCategoryID    string `json:"actual_category_id" validate:"required,uuid"`
	}
)
