package models

// Category represents an expense category. Categories are shared reference
// data seeded by migration; only admins may add more.
type Category struct {
	Base
	Name string `gorm:"uniqueIndex;not null" json:"name"`

	// Relationships
	Expenses []Expense `gorm:"foreignKey:CategoryID" json:"expenses,omitempty"`
	Budgets  []Budget  `gorm:"foreignKey:CategoryID" json:"budgets,omitempty"`
}
