package entities

import (
	"time"

	"github.com/google/uuid"
)

type Receipt struct {
	ID            uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID        uuid.UUID  `gorm:"index" json:"user_id"`
	ImageURL      string     `json:"image_url"`
	Status        string     `gorm:"index" json:"status"` // see pkg/receipt status machine
	RawOCRPayload *string    `gorm:"type:text" json:"raw_ocr_payload,omitempty"`
	ProcessedAt   *time.Time `json:"processed_at,omitempty"`

	User    *User    `gorm:"foreignKey:UserID"`
	Expense *Expense `gorm:"foreignKey:ReceiptID"`
	Timestamp
}
