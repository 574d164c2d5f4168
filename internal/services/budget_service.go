package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"spendwise/internal/budget"
	apperrors "spendwise/internal/errors"
	"spendwise/internal/models"
	"spendwise/internal/pagination"
)

// budgetService handles budget-related business logic.
type budgetService struct {
	db              *gorm.DB
	categoryService CategoryServicer
	expenseService  ExpenseServicer
}

// NewBudgetService creates a new BudgetServicer.
func NewBudgetService(db *gorm.DB, categoryService CategoryServicer, expenseService ExpenseServicer) BudgetServicer {
	return &budgetService{db: db, categoryService: categoryService, expenseService: expenseService}
}

// CreateBudget creates a new monthly budget for a category. One budget per
// (user, category); duplicates are rejected.
func (s *budgetService) CreateBudget(userID, categoryID uint, monthlyBudget int64) (*models.Budget, error) {
	if monthlyBudget <= 0 {
		return nil, apperrors.ErrInvalidAmount
	}

	if _, err := s.categoryService.GetCategoryByID(categoryID); err != nil {
		return nil, err
	}

	var count int64
	s.db.Model(&models.Budget{}).Where("user_id = ? AND category_id = ?", userID, categoryID).Count(&count)
	if count > 0 {
		return nil, apperrors.ErrDuplicateBudget
	}

	b := &models.Budget{
		UserID:        userID,
		CategoryID:    categoryID,
		MonthlyBudget: monthlyBudget,
	}

	if err := s.db.Create(b).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return b, nil
}

// GetUserBudgets returns a paginated list of the user's budgets in
// insertion order. This order is also the evaluator's scan order.
func (s *budgetService) GetUserBudgets(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Budget], error) {
	page.Defaults()

	base := s.db.Model(&models.Budget{}).Where("user_id = ?", userID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var budgets []models.Budget
	if err := base.Preload("Category").Scopes(pagination.Paginate(page)).
		Order("id ASC").
		Find(&budgets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(budgets, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetBudgetByID returns a budget by ID if it belongs to the user.
func (s *budgetService) GetBudgetByID(userID, budgetID uint) (*models.Budget, error) {
	var b models.Budget
	if err := s.db.Preload("Category").Where("id = ? AND user_id = ?", budgetID, userID).First(&b).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBudgetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &b, nil
}

// UpdateBudget changes the monthly ceiling of an existing budget.
func (s *budgetService) UpdateBudget(userID, budgetID uint, monthlyBudget *int64) (*models.Budget, error) {
	b, err := s.GetBudgetByID(userID, budgetID)
	if err != nil {
		return nil, err
	}

	if monthlyBudget != nil {
		if *monthlyBudget <= 0 {
			return nil, apperrors.ErrInvalidAmount
		}
		if err := s.db.Model(b).Update("monthly_budget", *monthlyBudget).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return b, nil
}

// DeleteBudget soft-deletes a budget.
func (s *budgetService) DeleteBudget(userID, budgetID uint) error {
	b, err := s.GetBudgetByID(userID, budgetID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(b).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// CheckBudgets re-evaluates the user's budgets against the current
// calendar month's spending and returns at most one warning, or nil when
// no budget is at risk. Every call re-reads and re-sums from the store;
// nothing is cached.
func (s *budgetService) CheckBudgets(userID uint, mode AlertMode) (*budget.Warning, error) {
	var rows []models.Budget
	if err := s.db.Where("user_id = ?", userID).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	now := time.Now().UTC()
	expenses, err := s.expenseService.MonthExpenses(userID, now.Year(), now.Month())
	if err != nil {
		return nil, err
	}

	names, err := s.categoryService.NameIndex()
	if err != nil {
		return nil, err
	}

	lines := make([]budget.Line, 0, len(rows))
	for _, r := range rows {
		lines = append(lines, budget.Line{CategoryID: r.CategoryID, MonthlyBudget: r.MonthlyBudget})
	}
	items := make([]budget.Expense, 0, len(expenses))
	for _, e := range expenses {
		items = append(items, budget.Expense{CategoryID: e.CategoryID, Amount: e.Amount})
	}

	spend := budget.Aggregate(items)
	if mode == AlertModeSevere {
		return budget.EvaluateMostSevere(lines, spend, names), nil
	}
	return budget.Evaluate(lines, spend, names), nil
}
