package entities

import (
	"time"

	"github.com/google/uuid"
)

type Expense struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	ReceiptID       uuid.UUID `gorm:"type:uuid;uniqueIndex" json:"receipt_id"`
	UserID          uuid.UUID `gorm:"index" json:"user_id"`
	MerchantName    string    `json:"merchant_name"`
	TransactionDate time.Time `gorm:"type:date" json:"transaction_date"`
	Currency        string    `gorm:"size:3" json:"currency"`
	Subtotal        float64   `gorm:"type:decimal(10,2)" json:"subtotal"`
	Tax             float64   `gorm:"type:decimal(10,2)" json:"tax"`
	Total           float64   `gorm:"type:decimal(10,2)" json:"total"`
	PaymentMethod   *string   `json:"payment_method,omitempty"`

	User  *User          `gorm:"foreignKey:UserID"`
	Items []*ExpenseItem `gorm:"foreignKey:ExpenseID"`
	Timestamp
}

type ExpenseItem struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	ExpenseID  uuid.UUID `gorm:"type:uuid;index" json:"expense_id"`
	ItemName   string    `json:"item_name"`
	Quantity   int       `gorm:"default:1" json:"quantity"`
	UnitPrice  float64   `gorm:"type:decimal(10,2)" json:"unit_price"`
	TotalPrice float64   `gorm:"type:decimal(10,2)" json:"total_price"`
	Category   *string   `json:"category,omitempty"`

	Timestamp
}
