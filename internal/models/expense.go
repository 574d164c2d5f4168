package models

import "time"

// Expense represents a single recorded expense. Amount is stored in cents
// to keep currency arithmetic exact.
type Expense struct {
	Base
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	CategoryID  uint      `gorm:"not null" json:"category_id"`
	Amount      int64     `gorm:"type:bigint;not null" json:"amount"`
	Description string    `json:"description"`
	Date        time.Time `gorm:"not null" json:"date"`
	Recurring   bool      `gorm:"default:false" json:"recurring"`

	// Relationships
	Category Category `gorm:"foreignKey:CategoryID" json:"category"`
}
