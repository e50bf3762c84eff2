package entities

import (
	"github.com/google/uuid"
)

type Category struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_user_category_name" json:"user_id"`
	Name        string    `gorm:"uniqueIndex:idx_user_category_name" json:"name"`
	Description string    `json:"description,omitempty"`
	Color       string    `gorm:"size:20;default:#64748b" json:"color"`
	IsDefault   bool      `json:"is_default"`

	User *User `gorm:"foreignKey:UserID"`
	Timestamp
}

// CategoryCorrection records a user overriding a suggested category, kept for
// future rule tuning.
type CategoryCorrection struct {
	ID                  uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID              uuid.UUID  `gorm:"index" json:"user_id"`
	MerchantName        string     `json:"merchant_name"`
	SuggestedCategoryID *uuid.UUID `gorm:"type:uuid" json:"suggested_category_id,omitempty"`
	ActualCategoryID    uuid.UUID  `gorm:"type:uuid" json:"actual_category_id"`

	Timestamp
}
