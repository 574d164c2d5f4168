package services

import (
	"time"

	"spendwise/internal/budget"
	"spendwise/internal/models"
	"spendwise/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(name, email, password string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	UpdateProfile(userID uint, name, email string) (*models.User, error)
	ChangePassword(userID uint, currentPassword, newPassword string) error
	RequestPasswordReset(email string) error
	ResetPassword(token, newPassword string) error
}

// CategoryServicer defines the contract for category lookup data.
type CategoryServicer interface {
	ListCategories(page pagination.PageRequest) (*pagination.PageResponse[models.Category], error)
	GetCategoryByID(categoryID uint) (*models.Category, error)
	CreateCategory(name string) (*models.Category, error)
	NameIndex() (map[uint]string, error)
}

// ExpenseFilter holds optional filter parameters for listing expenses.
type ExpenseFilter struct {
	FromDate   *time.Time
	ToDate     *time.Time
	CategoryID *uint
	MinAmount  *int64
	MaxAmount  *int64
	Recurring  *bool
}

// ExpenseServicer defines the contract for expense-related business logic.
type ExpenseServicer interface {
	CreateExpense(userID, categoryID uint, amount int64, description string, date time.Time, recurring bool) (*models.Expense, error)
	GetUserExpenses(userID uint, page pagination.PageRequest, filter ExpenseFilter) (*pagination.PageResponse[models.Expense], error)
	GetExpenseByID(userID, expenseID uint) (*models.Expense, error)
	UpdateExpense(userID, expenseID uint, categoryID *uint, amount *int64, description *string, date *time.Time, recurring *bool) (*models.Expense, error)
	DeleteExpense(userID, expenseID uint) error
	MonthExpenses(userID uint, year int, month time.Month) ([]models.Expense, error)
}

// AlertMode selects how CheckBudgets picks among multiple at-risk budgets.
type AlertMode string

const (
	// AlertModeFirst returns the first at-risk budget in insertion order.
	// This is the default.
	AlertModeFirst AlertMode = "first"
	// AlertModeSevere returns the most severe at-risk budget instead.
	AlertModeSevere AlertMode = "severe"
)

// BudgetServicer defines the contract for budget-related business logic.
type BudgetServicer interface {
	CreateBudget(userID, categoryID uint, monthlyBudget int64) (*models.Budget, error)
	GetUserBudgets(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Budget], error)
	GetBudgetByID(userID, budgetID uint) (*models.Budget, error)
	UpdateBudget(userID, budgetID uint, monthlyBudget *int64) (*models.Budget, error)
	DeleteBudget(userID, budgetID uint) error
	CheckBudgets(userID uint, mode AlertMode) (*budget.Warning, error)
}

// CategorySpending is one row of the monthly spending report.
type CategorySpending struct {
	CategoryID    uint         `json:"category_id"`
	CategoryName  string       `json:"category_name"`
	Spent         int64        `json:"spent"`
	MonthlyBudget *int64       `json:"monthly_budget,omitempty"`
	Level         budget.Level `json:"level"`
}

// ReportServicer defines the contract for spend reports.
type ReportServicer interface {
	MonthlySpending(userID uint, year int, month time.Month) ([]CategorySpending, error)
}

// AccessLogServicer defines the contract for the append-only access log.
type AccessLogServicer interface {
	Log(userID uint, action string)
	RecentLogs(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.AccessLog], error)
}

// Notifier delivers out-of-band notifications to users. The real mail
// integration lives outside this repository; the default implementation
// only logs.
type Notifier interface {
	SendPasswordReset(email, token string)
}
