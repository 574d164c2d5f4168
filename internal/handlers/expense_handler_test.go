package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"spendwise/internal/budget"
	apperrors "spendwise/internal/errors"
	"spendwise/internal/models"
	"spendwise/internal/pagination"
	"spendwise/internal/services"
)

// --- mock expense service ---

type mockExpenseService struct {
	createExpenseFn   func(userID, categoryID uint, amount int64, description string, date time.Time, recurring bool) (*models.Expense, error)
	getUserExpensesFn func(userID uint, page pagination.PageRequest, filter services.ExpenseFilter) (*pagination.PageResponse[models.Expense], error)
	getExpenseByIDFn  func(userID, expenseID uint) (*models.Expense, error)
	updateExpenseFn   func(userID, expenseID uint, categoryID *uint, amount *int64, description *string, date *time.Time, recurring *bool) (*models.Expense, error)
	deleteExpenseFn   func(userID, expenseID uint) error
	monthExpensesFn   func(userID uint, year int, month time.Month) ([]models.Expense, error)
}

func (m *mockExpenseService) CreateExpense(userID, categoryID uint, amount int64, description string, date time.Time, recurring bool) (*models.Expense, error) {
	if m.createExpenseFn != nil {
		return m.createExpenseFn(userID, categoryID, amount, description, date, recurring)
	}
	return &models.Expense{}, nil
}

func (m *mockExpenseService) GetUserExpenses(userID uint, page pagination.PageRequest, filter services.ExpenseFilter) (*pagination.PageResponse[models.Expense], error) {
	if m.getUserExpensesFn != nil {
		return m.getUserExpensesFn(userID, page, filter)
	}
	resp := pagination.NewPageResponse([]models.Expense{}, 1, 20, 0)
	return &resp, nil
}

func (m *mockExpenseService) GetExpenseByID(userID, expenseID uint) (*models.Expense, error) {
	if m.getExpenseByIDFn != nil {
		return m.getExpenseByIDFn(userID, expenseID)
	}
	return &models.Expense{}, nil
}

func (m *mockExpenseService) UpdateExpense(userID, expenseID uint, categoryID *uint, amount *int64, description *string, date *time.Time, recurring *bool) (*models.Expense, error) {
	if m.updateExpenseFn != nil {
		return m.updateExpenseFn(userID, expenseID, categoryID, amount, description, date, recurring)
	}
	return &models.Expense{}, nil
}

func (m *mockExpenseService) DeleteExpense(userID, expenseID uint) error {
	if m.deleteExpenseFn != nil {
		return m.deleteExpenseFn(userID, expenseID)
	}
	return nil
}

func (m *mockExpenseService) MonthExpenses(userID uint, year int, month time.Month) ([]models.Expense, error) {
	if m.monthExpensesFn != nil {
		return m.monthExpensesFn(userID, year, month)
	}
	return nil, nil
}

var _ services.ExpenseServicer = (*mockExpenseService)(nil)

func setupExpenseRouter(handler *ExpenseHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectUserID(1))
	auth.POST("/expenses", handler.CreateExpense)
	auth.GET("/expenses", handler.GetExpenses)
	auth.GET("/expenses/:id", handler.GetExpense)
	auth.PUT("/expenses/:id", handler.UpdateExpense)
	auth.DELETE("/expenses/:id", handler.DeleteExpense)
	return r
}

func TestExpenseHandler_CreateExpense(t *testing.T) {
	t.Run("returns 201 with expense and warning", func(t *testing.T) {
		expenseSvc := &mockExpenseService{
			createExpenseFn: func(_ uint, categoryID uint, amount int64, description string, _ time.Time, _ bool) (*models.Expense, error) {
				return &models.Expense{
					Base:        models.Base{ID: 1},
					UserID:      1,
					CategoryID:  categoryID,
					Amount:      amount,
					Description: description,
				}, nil
			},
		}
		handler := NewExpenseHandler(expenseSvc, &mockBudgetService{}, &mockAccessLogService{})
		r := setupExpenseRouter(handler)

		rec := doRequest(r, "POST", "/expenses",
			`{"category_id":1,"amount":"12.34","description":"Lunch"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		expense := result["expense"].(map[string]interface{})
		if expense["amount"].(float64) != 1234 {
			t.Errorf("expected amount 1234 cents, got %v", expense["amount"])
		}
		if _, ok := result["warning"]; !ok {
			t.Error("expected warning key in response")
		}
	})

	t.Run("returns 400 on malformed amount", func(t *testing.T) {
		handler := NewExpenseHandler(&mockExpenseService{}, &mockBudgetService{}, &mockAccessLogService{})
		r := setupExpenseRouter(handler)

		rec := doRequest(r, "POST", "/expenses",
			`{"category_id":1,"amount":"12.3.4"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on bad date", func(t *testing.T) {
		handler := NewExpenseHandler(&mockExpenseService{}, &mockBudgetService{}, &mockAccessLogService{})
		r := setupExpenseRouter(handler)

		rec := doRequest(r, "POST", "/expenses",
			`{"category_id":1,"amount":"12.34","date":"03-15-2026"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 404 on unknown category", func(t *testing.T) {
		expenseSvc := &mockExpenseService{
			createExpenseFn: func(_, _ uint, _ int64, _ string, _ time.Time, _ bool) (*models.Expense, error) {
				return nil, apperrors.ErrCategoryNotFound
			},
		}
		handler := NewExpenseHandler(expenseSvc, &mockBudgetService{}, &mockAccessLogService{})
		r := setupExpenseRouter(handler)

		rec := doRequest(r, "POST", "/expenses",
			`{"category_id":999,"amount":"12.34"}`)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})

	t.Run("surfaces budget warning after mutation", func(t *testing.T) {
		budgetSvc := &mockBudgetService{
			checkBudgetsFn: func(_ uint, _ services.AlertMode) (*budget.Warning, error) {
				return &budget.Warning{
					CategoryName:  "Food",
					MonthlyBudget: 10000,
					CurrentSpend:  12000,
					Level:         budget.LevelCritical,
				}, nil
			},
		}
		handler := NewExpenseHandler(&mockExpenseService{}, budgetSvc, &mockAccessLogService{})
		r := setupExpenseRouter(handler)

		rec := doRequest(r, "POST", "/expenses", `{"category_id":1,"amount":"120.00"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		warning := result["warning"].(map[string]interface{})
		if warning["level"] != "critical" {
			t.Errorf("expected critical, got %v", warning["level"])
		}
	})
}

func TestExpenseHandler_GetExpenses(t *testing.T) {
	t.Run("returns 200 with paginated expenses", func(t *testing.T) {
		expenseSvc := &mockExpenseService{
			getUserExpensesFn: func(userID uint, _ pagination.PageRequest, _ services.ExpenseFilter) (*pagination.PageResponse[models.Expense], error) {
				resp := pagination.NewPageResponse([]models.Expense{
					{Base: models.Base{ID: 1}, UserID: userID, Amount: 1000},
				}, 1, 20, 1)
				return &resp, nil
			},
		}
		handler := NewExpenseHandler(expenseSvc, &mockBudgetService{}, &mockAccessLogService{})
		r := setupExpenseRouter(handler)

		rec := doRequest(r, "GET", "/expenses", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		data := result["data"].([]interface{})
		if len(data) != 1 {
			t.Errorf("expected 1 expense, got %d", len(data))
		}
	})

	t.Run("passes filters through", func(t *testing.T) {
		var gotFilter services.ExpenseFilter
		expenseSvc := &mockExpenseService{
			getUserExpensesFn: func(_ uint, _ pagination.PageRequest, filter services.ExpenseFilter) (*pagination.PageResponse[models.Expense], error) {
				gotFilter = filter
				resp := pagination.NewPageResponse([]models.Expense{}, 1, 20, 0)
				return &resp, nil
			},
		}
		handler := NewExpenseHandler(expenseSvc, &mockBudgetService{}, &mockAccessLogService{})
		r := setupExpenseRouter(handler)

		rec := doRequest(r, "GET", "/expenses?category_id=3&min_amount=10.00&recurring=true", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if gotFilter.CategoryID == nil || *gotFilter.CategoryID != 3 {
			t.Error("expected category filter 3")
		}
		if gotFilter.MinAmount == nil || *gotFilter.MinAmount != 1000 {
			t.Error("expected min amount 1000 cents")
		}
		if gotFilter.Recurring == nil || !*gotFilter.Recurring {
			t.Error("expected recurring filter true")
		}
	})

	t.Run("returns 400 on bad filter", func(t *testing.T) {
		handler := NewExpenseHandler(&mockExpenseService{}, &mockBudgetService{}, &mockAccessLogService{})
		r := setupExpenseRouter(handler)

		rec := doRequest(r, "GET", "/expenses?recurring=maybe", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestExpenseHandler_GetExpense(t *testing.T) {
	t.Run("returns 404 when not found", func(t *testing.T) {
		expenseSvc := &mockExpenseService{
			getExpenseByIDFn: func(_, _ uint) (*models.Expense, error) {
				return nil, apperrors.ErrExpenseNotFound
			},
		}
		handler := NewExpenseHandler(expenseSvc, &mockBudgetService{}, &mockAccessLogService{})
		r := setupExpenseRouter(handler)

		rec := doRequest(r, "GET", "/expenses/42", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "EXPENSE_NOT_FOUND")
	})
}

func TestExpenseHandler_UpdateExpense(t *testing.T) {
	t.Run("returns 200 with updated expense and warning", func(t *testing.T) {
		expenseSvc := &mockExpenseService{
			updateExpenseFn: func(_, expenseID uint, _ *uint, amount *int64, _ *string, _ *time.Time, _ *bool) (*models.Expense, error) {
				return &models.Expense{
					Base:   models.Base{ID: expenseID},
					Amount: *amount,
				}, nil
			},
		}
		handler := NewExpenseHandler(expenseSvc, &mockBudgetService{}, &mockAccessLogService{})
		r := setupExpenseRouter(handler)

		rec := doRequest(r, "PUT", "/expenses/1", `{"amount":"99.99"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		expense := result["expense"].(map[string]interface{})
		if expense["amount"].(float64) != 9999 {
			t.Errorf("expected 9999 cents, got %v", expense["amount"])
		}
	})
}

func TestExpenseHandler_DeleteExpense(t *testing.T) {
	t.Run("returns 200 with fresh warning", func(t *testing.T) {
		handler := NewExpenseHandler(&mockExpenseService{}, &mockBudgetService{}, &mockAccessLogService{})
		r := setupExpenseRouter(handler)

		rec := doRequest(r, "DELETE", "/expenses/1", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		if _, ok := result["warning"]; !ok {
			t.Error("expected warning key in response")
		}
	})

	t.Run("returns 404 when not found", func(t *testing.T) {
		expenseSvc := &mockExpenseService{
			deleteExpenseFn: func(_, _ uint) error {
				return apperrors.ErrExpenseNotFound
			},
		}
		handler := NewExpenseHandler(expenseSvc, &mockBudgetService{}, &mockAccessLogService{})
		r := setupExpenseRouter(handler)

		rec := doRequest(r, "DELETE", "/expenses/42", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}
