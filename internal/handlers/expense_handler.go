package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "spendwise/internal/errors"
	"spendwise/internal/pagination"
	"spendwise/internal/services"
)

// ExpenseHandler handles expense-related requests.
type ExpenseHandler struct {
	expenseService   services.ExpenseServicer
	budgetService    services.BudgetServicer
	accessLogService services.AccessLogServicer
}

// NewExpenseHandler creates a new ExpenseHandler.
func NewExpenseHandler(expenseService services.ExpenseServicer, budgetService services.BudgetServicer, accessLogService services.AccessLogServicer) *ExpenseHandler {
	return &ExpenseHandler{
		expenseService:   expenseService,
		budgetService:    budgetService,
		accessLogService: accessLogService,
	}
}

// CreateExpenseRequest represents the request payload for creating an expense.
// Amount is a decimal string like "12.34".
type CreateExpenseRequest struct {
	CategoryID  uint   `json:"category_id" binding:"required"`
	Amount      string `json:"amount" binding:"required,money"`
	Description string `json:"description" binding:"max=255"`
	Date        string `json:"date" binding:"omitempty,calendar_date"`
	Recurring   bool   `json:"recurring"`
}

// UpdateExpenseRequest represents the request payload for updating an expense.
type UpdateExpenseRequest struct {
	CategoryID  *uint   `json:"category_id"`
	Amount      *string `json:"amount" binding:"omitempty,money"`
	Description *string `json:"description" binding:"omitempty,max=255"`
	Date        *string `json:"date" binding:"omitempty,calendar_date"`
	Recurring   *bool   `json:"recurring"`
}

// CreateExpense records a new expense. The response includes the
// re-evaluated budget warning so clients always see fresh state after a
// mutation.
// @Summary     Create an expense
// @Description Record a new expense and re-evaluate budget warnings
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateExpenseRequest true "Expense details"
// @Success     201 {object} models.Expense "Expense created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses [post]
func (h *ExpenseHandler) CreateExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	amount, err := parseAmount(req.Amount)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var date time.Time
	if req.Date != "" {
		if date, err = parseDate(req.Date); err != nil {
			respondWithError(c, err)
			return
		}
	}

	expense, err := h.expenseService.CreateExpense(userID, req.CategoryID, amount, req.Description, date, req.Recurring)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.accessLogService.Log(userID, "create_expense")

	warning, err := h.budgetService.CheckBudgets(userID, services.AlertModeFirst)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"expense": expense, "warning": warning})
}

// GetExpenses lists the user's expenses with optional filters.
// @Summary     Get expenses
// @Description Get a paginated list of expenses for the authenticated user
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       from_date   query string false "Filter from date (YYYY-MM-DD)"
// @Param       to_date     query string false "Filter to date (YYYY-MM-DD)"
// @Param       category_id query int    false "Filter by category"
// @Param       min_amount  query string false "Minimum amount (decimal)"
// @Param       max_amount  query string false "Maximum amount (decimal)"
// @Param       recurring   query bool   false "Filter by recurring flag"
// @Param       page        query int    false "Page number (default 1)"
// @Param       page_size   query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Expense] "Paginated expenses"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses [get]
func (h *ExpenseHandler) GetExpenses(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	filter, err := parseExpenseFilter(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.expenseService.GetUserExpenses(userID, page, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func parseExpenseFilter(c *gin.Context) (services.ExpenseFilter, error) {
	var filter services.ExpenseFilter

	if v := c.Query("from_date"); v != "" {
		d, err := parseDate(v)
		if err != nil {
			return filter, err
		}
		filter.FromDate = &d
	}
	if v := c.Query("to_date"); v != "" {
		d, err := parseDate(v)
		if err != nil {
			return filter, err
		}
		filter.ToDate = &d
	}
	if v := c.Query("category_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "category_id must be a positive integer")
		}
		u := uint(id)
		filter.CategoryID = &u
	}
	if v := c.Query("min_amount"); v != "" {
		cents, err := parseAmount(v)
		if err != nil {
			return filter, err
		}
		filter.MinAmount = &cents
	}
	if v := c.Query("max_amount"); v != "" {
		cents, err := parseAmount(v)
		if err != nil {
			return filter, err
		}
		filter.MaxAmount = &cents
	}
	if v := c.Query("recurring"); v != "" {
		switch v {
		case "true":
			b := true
			filter.Recurring = &b
		case "false":
			b := false
			filter.Recurring = &b
		default:
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "recurring must be 'true' or 'false'")
		}
	}

	return filter, nil
}

// GetExpense retrieves a specific expense.
// @Summary     Get expense by ID
// @Description Get a specific expense by ID
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Expense ID"
// @Success     200 {object} models.Expense "Expense details"
// @Failure     400 {object} ErrorResponse "Invalid expense ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/{id} [get]
func (h *ExpenseHandler) GetExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expenseID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	expense, err := h.expenseService.GetExpenseByID(userID, expenseID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"expense": expense})
}

// UpdateExpense edits an existing expense and re-evaluates budget warnings.
// @Summary     Update expense
// @Description Update an existing expense and re-evaluate budget warnings
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int                  true "Expense ID"
// @Param       request body UpdateExpenseRequest true "Updated expense details"
// @Success     200 {object} models.Expense "Updated expense"
// @Failure     400 {object} ErrorResponse "Invalid input or expense ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/{id} [put]
func (h *ExpenseHandler) UpdateExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expenseID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var amount *int64
	if req.Amount != nil {
		cents, err := parseAmount(*req.Amount)
		if err != nil {
			respondWithError(c, err)
			return
		}
		amount = &cents
	}

	var date *time.Time
	if req.Date != nil {
		d, err := parseDate(*req.Date)
		if err != nil {
			respondWithError(c, err)
			return
		}
		date = &d
	}

	expense, err := h.expenseService.UpdateExpense(userID, expenseID, req.CategoryID, amount, req.Description, date, req.Recurring)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.accessLogService.Log(userID, "update_expense")

	warning, err := h.budgetService.CheckBudgets(userID, services.AlertModeFirst)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"expense": expense, "warning": warning})
}

// DeleteExpense removes an expense and re-evaluates budget warnings.
// @Summary     Delete expense
// @Description Delete an expense by ID and re-evaluate budget warnings
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Expense ID"
// @Success     200 {object} MessageResponse "Expense deleted"
// @Failure     400 {object} ErrorResponse "Invalid expense ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/{id} [delete]
func (h *ExpenseHandler) DeleteExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expenseID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.expenseService.DeleteExpense(userID, expenseID); err != nil {
		respondWithError(c, err)
		return
	}

	h.accessLogService.Log(userID, "delete_expense")

	warning, err := h.budgetService.CheckBudgets(userID, services.AlertModeFirst)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Expense deleted successfully", "warning": warning})
}
