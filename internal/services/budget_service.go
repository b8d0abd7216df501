package services

import (
	"context"

	apperrors "github.com/Gangulr/finace/internal/errors"
	"github.com/Gangulr/finace/internal/models"
	"github.com/Gangulr/finace/internal/store"
	"github.com/Gangulr/finace/internal/validator"
)

// budgetService handles budget-related business logic.
type budgetService struct {
	records records[models.Budget, *models.Budget]
	now     Clock
}

// NewBudgetService creates a new BudgetServicer.
func NewBudgetService(s store.Store[models.Budget], now Clock, notify ChangeNotifier) BudgetServicer {
	return &budgetService{
		records: newRecords[models.Budget](s, apperrors.ErrBudgetNotFound, notify, "budget"),
		now:     now,
	}
}

// check runs the budget rules and returns the parsed amount. The
// not-in-the-past rule applies only to the dates flagged as submitted.
func (s *budgetService) check(in BudgetInput, newStart, newEnd bool) (int64, error) {
	fields := validator.Fields{
		"userId":    in.UserID,
		"amount":    in.Amount,
		"category":  in.Category,
		"startDate": in.StartDate,
		"endDate":   in.EndDate,
	}
	if err := validator.ValidateRequired(fields, "userId", "amount", "category", "startDate", "endDate"); err != nil {
		return 0, fromValidation(err)
	}
	amount, err := validator.ValidateAmount(in.Amount)
	if err != nil {
		return 0, fromValidation(err)
	}
	if err := validator.ValidateOption("category", in.Category, models.BudgetCategories); err != nil {
		return 0, fromValidation(err)
	}

	today := validator.Today(s.now())
	if err := checkDate("startDate", in.StartDate, today, newStart); err != nil {
		return 0, err
	}
	if err := checkDate("endDate", in.EndDate, today, newEnd); err != nil {
		return 0, err
	}
	if err := validator.ValidateDateRange(in.StartDate, in.EndDate); err != nil {
		return 0, fromValidation(err)
	}
	return amount, nil
}

// checkDate validates the format of a date and, for newly submitted dates,
// that it is not before today.
func checkDate(field, date, today string, submitted bool) error {
	if submitted {
		return fromValidation(validator.ValidateDateNotPast(field, date, today))
	}
	return fromValidation(validator.ValidateDate(field, date))
}

// ValidateBudget runs the create rules without persisting anything.
func (s *budgetService) ValidateBudget(in BudgetInput) error {
	_, err := s.check(in, true, true)
	return err
}

// CreateBudget validates and stores a new budget.
func (s *budgetService) CreateBudget(ctx context.Context, in BudgetInput) (*models.Budget, error) {
	amount, err := s.check(in, true, true)
	if err != nil {
		return nil, err
	}

	budget := &models.Budget{
		UserID:    in.UserID,
		Amount:    amount,
		Category:  models.BudgetCategory(in.Category),
		StartDate: in.StartDate,
		EndDate:   in.EndDate,
		Notes:     in.Notes,
	}
	return s.records.create(ctx, budget)
}

// ListBudgets returns the user's budgets in creation order.
func (s *budgetService) ListBudgets(ctx context.Context, userID string, opts store.ListOptions) ([]models.Budget, int64, error) {
	return s.records.list(ctx, userID, opts)
}

// GetBudget returns one budget.
func (s *budgetService) GetBudget(ctx context.Context, ownerID, id string) (*models.Budget, error) {
	return s.records.get(ctx, ownerID, id)
}

// UpdateBudget merges patch onto the stored budget and re-validates the result.
func (s *budgetService) UpdateBudget(ctx context.Context, ownerID, id string, patch BudgetPatch) (*models.Budget, error) {
	budget, err := s.records.get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	in := BudgetInput{
		UserID:    budget.UserID,
		Amount:    formatAmount(budget.Amount),
		Category:  string(budget.Category),
		StartDate: budget.StartDate,
		EndDate:   budget.EndDate,
		Notes:     budget.Notes,
	}
	patchString(&in.Amount, patch.Amount)
	patchString(&in.Category, patch.Category)
	newStart := patchString(&in.StartDate, patch.StartDate)
	newEnd := patchString(&in.EndDate, patch.EndDate)
	patchString(&in.Notes, patch.Notes)

	amount, err := s.check(in, newStart, newEnd)
	if err != nil {
		return nil, err
	}

	budget.Amount = amount
	budget.Category = models.BudgetCategory(in.Category)
	budget.StartDate = in.StartDate
	budget.EndDate = in.EndDate
	budget.Notes = in.Notes
	return s.records.update(ctx, id, budget)
}

// DeleteBudget permanently removes a budget.
func (s *budgetService) DeleteBudget(ctx context.Context, ownerID, id string) error {
	return s.records.delete(ctx, ownerID, id)
}
