package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Gangulr/finace/internal/services"
)

// IncomeHandler handles income-related requests.
type IncomeHandler struct {
	incomeService services.IncomeServicer
	access        Access
}

// NewIncomeHandler creates a new IncomeHandler.
func NewIncomeHandler(incomeService services.IncomeServicer, access Access) *IncomeHandler {
	return &IncomeHandler{incomeService: incomeService, access: access}
}

// IncomeRequest represents the request payload for creating or validating an income.
type IncomeRequest struct {
	UserID       string      `json:"userId" binding:"max=64"`
	Amount       AmountInput `json:"amount" swaggertype:"string" example:"2500"`
	Source       string      `json:"source" binding:"max=255" example:"Acme Corp"`
	Category     string      `json:"category" example:"Salary"`
	DateReceived string      `json:"dateReceived" example:"2025-06-01"`
	Notes        string      `json:"notes" binding:"max=1000"`
}

// UpdateIncomeRequest represents the request payload for updating an income.
type UpdateIncomeRequest struct {
	Amount       *AmountInput `json:"amount" swaggertype:"string"`
	Source       *string      `json:"source" binding:"omitempty,max=255"`
	Category     *string      `json:"category" binding:"omitempty,income_category"`
	DateReceived *string      `json:"dateReceived" binding:"omitempty,iso_date"`
	Notes        *string      `json:"notes" binding:"omitempty,max=1000"`
}

func (r IncomeRequest) input(userID string) services.IncomeInput {
	return services.IncomeInput{
		UserID:       userID,
		Amount:       string(r.Amount),
		Source:       r.Source,
		Category:     r.Category,
		DateReceived: r.DateReceived,
		Notes:        r.Notes,
	}
}

// CreateIncome handles the creation of a new income.
// @Summary     Create an income
// @Tags        incomes
// @Accept      json
// @Produce     json
// @Param       request body IncomeRequest true "Income details"
// @Success     201 {object} models.Income "Income created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     403 {object} ErrorResponse "Forbidden"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /incomes/create [post]
func (h *IncomeHandler) CreateIncome(c *gin.Context) {
	var req IncomeRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}
	userID, err := h.access.owner(c, req.UserID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	income, err := h.incomeService.CreateIncome(c.Request.Context(), req.input(userID))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, income)
}

// ValidateIncome runs the income rules without storing anything.
// @Summary     Validate an income
// @Tags        incomes
// @Accept      json
// @Produce     json
// @Param       request body IncomeRequest true "Income details"
// @Success     200 {object} MessageResponse "Valid"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /incomes/validate [post]
func (h *IncomeHandler) ValidateIncome(c *gin.Context) {
	var req IncomeRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}
	userID, err := h.access.owner(c, req.UserID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.incomeService.ValidateIncome(req.input(userID)); err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Success: true, Message: "Valid"})
}

// GetIncomes lists a user's incomes.
// @Summary     List incomes
// @Tags        incomes
// @Produce     json
// @Param       userId    path  string true  "Owner id"
// @Param       category  query string false "Case-insensitive category filter"
// @Param       page      query int    false "Page number"
// @Param       page_size query int    false "Items per page (max 100)"
// @Success     200 {array}  models.Income "Incomes"
// @Header      200 {int}    X-Total-Count "Number of matching incomes"
// @Failure     403 {object} ErrorResponse "Forbidden"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /incomes/Items/{userId} [get]
func (h *IncomeHandler) GetIncomes(c *gin.Context) {
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

	incomes, total, err := h.incomeService.ListIncomes(c.Request.Context(), userID, opts)
	if err != nil {
		respondWithError(c, err)
		return
	}
	respondWithList(c, incomes, total)
}

// GetIncome returns a single income.
// @Summary     Get an income
// @Tags        incomes
// @Produce     json
// @Param       id  path     string true "Income id"
// @Success     200 {object} models.Income "Income"
// @Failure     404 {object} ErrorResponse "Income not found"
// @Router      /incomes/get/{id} [get]
func (h *IncomeHandler) GetIncome(c *gin.Context) {
	id, err := parseRecordID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	income, err := h.incomeService.GetIncome(c.Request.Context(), h.access.scope(c), id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, income)
}

// UpdateIncome changes an income.
// @Summary     Update an income
// @Tags        incomes
// @Accept      json
// @Produce     json
// @Param       id      path string              true "Income id"
// @Param       request body UpdateIncomeRequest true "Fields to change"
// @Success     200 {object} models.Income "Updated income"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Income not found"
// @Router      /incomes/update/{id} [put]
func (h *IncomeHandler) UpdateIncome(c *gin.Context) {
	id, err := parseRecordID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	var req UpdateIncomeRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	income, err := h.incomeService.UpdateIncome(c.Request.Context(), h.access.scope(c), id, services.IncomePatch{
		Amount:       optionalAmount(req.Amount),
		Source:       req.Source,
		Category:     req.Category,
		DateReceived: req.DateReceived,
		Notes:        req.Notes,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, income)
}

// DeleteIncome permanently removes an income.
// @Summary     Delete an income
// @Tags        incomes
// @Produce     json
// @Param       id  path     string true "Income id"
// @Success     200 {object} MessageResponse "Income deleted"
// @Failure     404 {object} ErrorResponse "Income not found"
// @Router      /incomes/delete/{id} [delete]
func (h *IncomeHandler) DeleteIncome(c *gin.Context) {
	id, err := parseRecordID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.incomeService.DeleteIncome(c.Request.Context(), h.access.scope(c), id); err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Success: true, Message: "Income deleted successfully"})
}
