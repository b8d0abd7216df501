package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Gangulr/finace/internal/services"
)

// BudgetHandler handles budget-related requests.
type BudgetHandler struct {
	budgetService services.BudgetServicer
	access        Access
}

// NewBudgetHandler creates a new BudgetHandler.
func NewBudgetHandler(budgetService services.BudgetServicer, access Access) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService, access: access}
}

// BudgetRequest represents the request payload for creating or validating a budget.
type BudgetRequest struct {
	UserID    string      `json:"userId" binding:"max=64" example:"0192f0c4-8a4b-7c3e-9d1a-2b3c4d5e6f70"`
	Amount    AmountInput `json:"amount" swaggertype:"string" example:"500"`
	Category  string      `json:"category" example:"Rent"`
	StartDate string      `json:"startDate" example:"2025-06-01"`
	EndDate   string      `json:"endDate" example:"2025-06-30"`
	Notes     string      `json:"notes" binding:"max=1000"`
}

// UpdateBudgetRequest represents the request payload for updating a budget.
// Omitted fields keep their stored value.
type UpdateBudgetRequest struct {
	Amount    *AmountInput `json:"amount" swaggertype:"string"`
	Category  *string      `json:"category" binding:"omitempty,budget_category"`
	StartDate *string      `json:"startDate" binding:"omitempty,iso_date"`
	EndDate   *string      `json:"endDate" binding:"omitempty,iso_date"`
	Notes     *string      `json:"notes" binding:"omitempty,max=1000"`
}

func (r BudgetRequest) input(userID string) services.BudgetInput {
	return services.BudgetInput{
		UserID:    userID,
		Amount:    string(r.Amount),
		Category:  r.Category,
		StartDate: r.StartDate,
		EndDate:   r.EndDate,
		Notes:     r.Notes,
	}
}

// CreateBudget handles the creation of a new budget.
// @Summary     Create a budget
// @Description Validate and store a spending limit for one category over a date range
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Param       request body BudgetRequest true "Budget details"
// @Success     201 {object} models.Budget "Budget created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     403 {object} ErrorResponse "Forbidden"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/create [post]
func (h *BudgetHandler) CreateBudget(c *gin.Context) {
	var req BudgetRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}
	userID, err := h.access.owner(c, req.UserID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	budget, err := h.budgetService.CreateBudget(c.Request.Context(), req.input(userID))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, budget)
}

// ValidateBudget runs the budget rules without storing anything.
// @Summary     Validate a budget
// @Description Run the server-side budget rules so forms can show the same messages
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Param       request body BudgetRequest true "Budget details"
// @Success     200 {object} MessageResponse "Valid"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /budgets/validate [post]
func (h *BudgetHandler) ValidateBudget(c *gin.Context) {
	var req BudgetRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}
	userID, err := h.access.owner(c, req.UserID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.budgetService.ValidateBudget(req.input(userID)); err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Success: true, Message: "Valid"})
}

// GetBudgets lists a user's budgets.
// @Summary     List budgets
// @Description Get every budget of a user in creation order
// @Tags        budgets
// @Produce     json
// @Param       userId    path  string true  "Owner id"
// @Param       category  query string false "Case-insensitive category filter"
// @Param       page      query int    false "Page number"
// @Param       page_size query int    false "Items per page (max 100)"
// @Success     200 {array}  models.Budget "Budgets"
// @Header      200 {int}    X-Total-Count "Number of matching budgets"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     403 {object} ErrorResponse "Forbidden"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/{userId} [get]
func (h *BudgetHandler) GetBudgets(c *gin.Context) {
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

	budgets, total, err := h.budgetService.ListBudgets(c.Request.Context(), userID, opts)
	if err != nil {
		respondWithError(c, err)
		return
	}
	respondWithList(c, budgets, total)
}

// GetBudget returns a single budget.
// @Summary     Get a budget
// @Tags        budgets
// @Produce     json
// @Param       id  path     string true "Budget id"
// @Success     200 {object} models.Budget "Budget"
// @Failure     400 {object} ErrorResponse "Invalid id"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Router      /budgets/get/{id} [get]
func (h *BudgetHandler) GetBudget(c *gin.Context) {
	id, err := parseRecordID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	budget, err := h.budgetService.GetBudget(c.Request.Context(), h.access.scope(c), id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, budget)
}

// UpdateBudget changes a budget.
// @Summary     Update a budget
// @Description Merge the submitted fields onto the budget and re-validate it
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Param       id      path string              true "Budget id"
// @Param       request body UpdateBudgetRequest true "Fields to change"
// @Success     200 {object} models.Budget "Updated budget"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/update/{id} [put]
func (h *BudgetHandler) UpdateBudget(c *gin.Context) {
	id, err := parseRecordID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	var req UpdateBudgetRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	budget, err := h.budgetService.UpdateBudget(c.Request.Context(), h.access.scope(c), id, services.BudgetPatch{
		Amount:    optionalAmount(req.Amount),
		Category:  req.Category,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Notes:     req.Notes,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, budget)
}

// DeleteBudget permanently removes a budget.
// @Summary     Delete a budget
// @Tags        budgets
// @Produce     json
// @Param       id  path     string true "Budget id"
// @Success     200 {object} MessageResponse "Budget deleted"
// @Failure     400 {object} ErrorResponse "Invalid id"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/delete/{id} [delete]
func (h *BudgetHandler) DeleteBudget(c *gin.Context) {
	id, err := parseRecordID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.budgetService.DeleteBudget(c.Request.Context(), h.access.scope(c), id); err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Success: true, Message: "Budget deleted successfully"})
}
