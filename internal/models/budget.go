package models

// Budget represents a monthly spending ceiling for one category.
// MonthlyBudget is stored in cents. One budget per (user, category);
// the unique index lives in the migrations and is also checked by the
// budget service so SQLite test databases behave the same way.
type Budget struct {
	Base
	UserID        uint  `gorm:"not null;index" json:"user_id"`
	CategoryID    uint  `gorm:"not null" json:"category_id"`
	MonthlyBudget int64 `gorm:"type:bigint;not null" json:"monthly_budget"`

	// Relationships
	Category Category `gorm:"foreignKey:CategoryID" json:"category"`
}
