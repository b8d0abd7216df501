package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Gangulr/finace/internal/services"
)

// ExpenseHandler handles expense-related requests.
type ExpenseHandler struct {
	expenseService services.ExpenseServicer
	access         Access
}

// NewExpenseHandler creates a new ExpenseHandler.
func NewExpenseHandler(expenseService services.ExpenseServicer, access Access) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService, access: access}
}

// ExpenseRequest represents the request payload for creating or validating an expense.
type ExpenseRequest struct {
	UserID        string      `json:"userId" binding:"max=64"`
	Amount        AmountInput `json:"amount" swaggertype:"string" example:"42"`
	Category      string      `json:"category" example:"Grocery"`
	PaymentMethod string      `json:"paymentMethod" example:"Cash"`
	DateSpent     string      `json:"dateSpent" example:"2025-06-01"`
	Notes         string      `json:"notes" binding:"max=1000"`
}

// UpdateExpenseRequest represents the request payload for updating an expense.
type UpdateExpenseRequest struct {
	Amount        *AmountInput `json:"amount" swaggertype:"string"`
	Category      *string      `json:"category" binding:"omitempty,expense_category"`
	PaymentMethod *string      `json:"paymentMethod" binding:"omitempty,payment_method"`
	DateSpent     *string      `json:"dateSpent" binding:"omitempty,iso_date"`
	Notes         *string      `json:"notes" binding:"omitempty,max=1000"`
}

func (r ExpenseRequest) input(userID string) services.ExpenseInput {
	return services.ExpenseInput{
		UserID:        userID,
		Amount:        string(r.Amount),
		Category:      r.Category,
		PaymentMethod: r.PaymentMethod,
		DateSpent:     r.DateSpent,
		Notes:         r.Notes,
	}
}

// CreateExpense handles the creation of a new expense.
// @Summary     Create an expense
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Param       request body ExpenseRequest true "Expense details"
// @Success     201 {object} models.Expense "Expense created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     403 {object} ErrorResponse "Forbidden"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/create [post]
func (h *ExpenseHandler) CreateExpense(c *gin.Context) {
	var req ExpenseRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}
	userID, err := h.access.owner(c, req.UserID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expense, err := h.expenseService.CreateExpense(c.Request.Context(), req.input(userID))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, expense)
}

// ValidateExpense runs the expense rules without storing anything.
// @Summary     Validate an expense
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Param       request body ExpenseRequest true "Expense details"
// @Success     200 {object} MessageResponse "Valid"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /expenses/validate [post]
func (h *ExpenseHandler) ValidateExpense(c *gin.Context) {
	var req ExpenseRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}
	userID, err := h.access.owner(c, req.UserID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.expenseService.ValidateExpense(req.input(userID)); err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Success: true, Message: "Valid"})
}

// GetExpenses lists a user's expenses.
// @Summary     List expenses
// @Tags        expenses
// @Produce     json
// @Param       userId    path  string true  "Owner id"
// @Param       category  query string false "Case-insensitive category filter"
// @Param       page      query int    false "Page number"
// @Param       page_size query int    false "Items per page (max 100)"
// @Success     200 {array}  models.Expense "Expenses"
// @Header      200 {int}    X-Total-Count "Number of matching expenses"
// @Failure     403 {object} ErrorResponse "Forbidden"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/Eitem/{userId} [get]
func (h *ExpenseHandler) GetExpenses(c *gin.Context) {
	userID, err := h.access.owner(c, c.Param("userId"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	opts, err := listOptions(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expenses, total, err := h.expenseService.ListExpenses(c.Request.Context(), userID, opts)
	if err != nil {
		respondWithError(c, err)
		return
	}
	respondWithList(c, expenses, total)
}

// GetExpense returns a single expense.
// @Summary     Get an expense
// @Tags        expenses
// @Produce     json
// @Param       id  path     string true "Expense id"
// @Success     200 {object} models.Expense "Expense"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Router      /expenses/get/{id} [get]
func (h *ExpenseHandler) GetExpense(c *gin.Context) {
	id, err := parseRecordID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expense, err := h.expenseService.GetExpense(c.Request.Context(), h.access.scope(c), id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, expense)
}

// UpdateExpense changes an expense.
// @Summary     Update an expense
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Param       id      path string               true "Expense id"
// @Param       request body UpdateExpenseRequest true "Fields to change"
// @Success     200 {object} models.Expense "Updated expense"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Router      /expenses/update/{id} [put]
func (h *ExpenseHandler) UpdateExpense(c *gin.Context) {
	id, err := parseRecordID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	var req UpdateExpenseRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	expense, err := h.expenseService.UpdateExpense(c.Request.Context(), h.access.scope(c), id, services.ExpensePatch{
		Amount:        optionalAmount(req.Amount),
		Category:      req.Category,
		PaymentMethod: req.PaymentMethod,
		DateSpent:     req.DateSpent,
		Notes:         req.Notes,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, expense)
}

// DeleteExpense permanently removes an expense.
// @Summary     Delete an expense
// @Tags        expenses
// @Produce     json
// @Param       id  path     string true "Expense id"
// @Success     200 {object} MessageResponse "Expense deleted"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Router      /expenses/delete/{id} [delete]
func (h *ExpenseHandler) DeleteExpense(c *gin.Context) {
	id, err := parseRecordID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.expenseService.DeleteExpense(c.Request.Context(), h.access.scope(c), id); err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Success: true, Message: "Expense deleted successfully"})
}
