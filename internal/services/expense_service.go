package services

import (
	"context"

	apperrors "github.com/Gangulr/finace/internal/errors"
	"github.com/Gangulr/finace/internal/models"
	"github.com/Gangulr/finace/internal/store"
	"github.com/Gangulr/finace/internal/validator"
)

// expenseService handles expense-related business logic.
type expenseService struct {
	records records[models.Expense, *models.Expense]
	now     Clock
}

// NewExpenseService creates a new ExpenseServicer.
func NewExpenseService(s store.Store[models.Expense], now Clock, notify ChangeNotifier) ExpenseServicer {
	return &expenseService{
		records: newRecords[models.Expense](s, apperrors.ErrExpenseNotFound, notify, "expense"),
		now:     now,
	}
}

func (s *expenseService) check(in ExpenseInput, newDate bool) (int64, error) {
	fields := validator.Fields{
		"userId":        in.UserID,
		"amount":        in.Amount,
		"category":      in.Category,
		"paymentMethod": in.PaymentMethod,
		"dateSpent":     in.DateSpent,
	}
	if err := validator.ValidateRequired(fields, "userId", "amount", "category", "paymentMethod", "dateSpent"); err != nil {
		return 0, fromValidation(err)
	}
	amount, err := validator.ValidateAmount(in.Amount)
	if err != nil {
		return 0, fromValidation(err)
	}
	if err := validator.ValidateOption("category", in.Category, models.ExpenseCategories); err != nil {
		return 0, fromValidation(err)
	}
	if err := validator.ValidateOption("paymentMethod", in.PaymentMethod, models.PaymentMethods); err != nil {
		return 0, fromValidation(err)
	}
	if err := checkDate("dateSpent", in.DateSpent, validator.Today(s.now()), newDate); err != nil {
		return 0, err
	}
	return amount, nil
}

// ValidateExpense runs the create rules without persisting anything.
func (s *expenseService) ValidateExpense(in ExpenseInput) error {
	_, err := s.check(in, true)
	return err
}

// CreateExpense validates and stores a new expense.
func (s *expenseService) CreateExpense(ctx context.Context, in ExpenseInput) (*models.Expense, error) {
	amount, err := s.check(in, true)
	if err != nil {
		return nil, err
	}

	expense := &models.Expense{
		UserID:        in.UserID,
		Amount:        amount,
		Category:      models.ExpenseCategory(in.Category),
		PaymentMethod: models.PaymentMethod(in.PaymentMethod),
		DateSpent:     in.DateSpent,
		Notes:         in.Notes,
	}
	return s.records.create(ctx, expense)
}

// ListExpenses returns the user's expenses in creation order.
func (s *expenseService) ListExpenses(ctx context.Context, userID string, opts store.ListOptions) ([]models.Expense, int64, error) {
	return s.records.list(ctx, userID, opts)
}

// GetExpense returns one expense.
func (s *expenseService) GetExpense(ctx context.Context, ownerID, id string) (*models.Expense, error) {
	return s.records.get(ctx, ownerID, id)
}

// UpdateExpense merges patch onto the stored expense and re-validates the result.
func (s *expenseService) UpdateExpense(ctx context.Context, ownerID, id string, patch ExpensePatch) (*models.Expense, error) {
	expense, err := s.records.get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	in := ExpenseInput{
		UserID:        expense.UserID,
		Amount:        formatAmount(expense.Amount),
		Category:      string(expense.Category),
		PaymentMethod: string(expense.PaymentMethod),
		DateSpent:     expense.DateSpent,
		Notes:         expense.Notes,
	}
	patchString(&in.Amount, patch.Amount)
	patchString(&in.Category, patch.Category)
	patchString(&in.PaymentMethod, patch.PaymentMethod)
	newDate := patchString(&in.DateSpent, patch.DateSpent)
	patchString(&in.Notes, patch.Notes)

	amount, err := s.check(in, newDate)
	if err != nil {
		return nil, err
	}

	expense.Amount = amount
	expense.Category = models.ExpenseCategory(in.Category)
	expense.PaymentMethod = models.PaymentMethod(in.PaymentMethod)
	expense.DateSpent = in.DateSpent
	expense.Notes = in.Notes
	return s.records.update(ctx, id, expense)
}

// DeleteExpense permanently removes an expense.
func (s *expenseService) DeleteExpense(ctx context.Context, ownerID, id string) error {
	return s.records.delete(ctx, ownerID, id)
}
