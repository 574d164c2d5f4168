package services

import (
	"sort"
	"strconv"
	"time"

	"gorm.io/gorm"

	"spendwise/internal/budget"
	apperrors "spendwise/internal/errors"
	"spendwise/internal/models"
)

// reportService builds per-category spend reports.
type reportService struct {
	db              *gorm.DB
	categoryService CategoryServicer
	expenseService  ExpenseServicer
}

// NewReportService creates a new ReportServicer.
func NewReportService(db *gorm.DB, categoryService CategoryServicer, expenseService ExpenseServicer) ReportServicer {
	return &reportService{db: db, categoryService: categoryService, expenseService: expenseService}
}

// MonthlySpending aggregates the user's spending for one calendar month,
// grouped by category and annotated with the budget level where a budget
// exists. Categories without expenses are omitted.
func (s *reportService) MonthlySpending(userID uint, year int, month time.Month) ([]CategorySpending, error) {
	expenses, err := s.expenseService.MonthExpenses(userID, year, month)
	if err != nil {
		return nil, err
	}

	items := make([]budget.Expense, 0, len(expenses))
	for _, e := range expenses {
		items = append(items, budget.Expense{CategoryID: e.CategoryID, Amount: e.Amount})
	}
	spend := budget.Aggregate(items)

	names, err := s.categoryService.NameIndex()
	if err != nil {
		return nil, err
	}

	var budgets []models.Budget
	if err := s.db.Where("user_id = ?", userID).Find(&budgets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	ceilings := make(map[uint]int64, len(budgets))
	for _, b := range budgets {
		ceilings[b.CategoryID] = b.MonthlyBudget
	}

	report := make([]CategorySpending, 0, len(spend))
	for categoryID, total := range spend {
		name, ok := names[categoryID]
		if !ok {
			name = strconv.FormatUint(uint64(categoryID), 10)
		}

		row := CategorySpending{
			CategoryID:   categoryID,
			CategoryName: name,
			Spent:        total,
			Level:        budget.LevelNone,
		}
		if ceiling, ok := ceilings[categoryID]; ok {
			c := ceiling
			row.MonthlyBudget = &c
			row.Level = budget.Classify(total, ceiling)
		}
		report = append(report, row)
	}

	// Largest spend first; stable order for equal totals.
	sort.Slice(report, func(i, j int) bool {
		if report[i].Spent != report[j].Spent {
			return report[i].Spent > report[j].Spent
		}
		return report[i].CategoryID < report[j].CategoryID
	})

	return report, nil
}
