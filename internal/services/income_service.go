package services

import (
	"context"

	apperrors "github.com/Gangulr/finace/internal/errors"
	"github.com/Gangulr/finace/internal/models"
	"github.com/Gangulr/finace/internal/store"
	"github.com/Gangulr/finace/internal/validator"
)

// incomeService handles income-related business logic.
type incomeService struct {
	records records[models.Income, *models.Income]
	now     Clock
}

// NewIncomeService creates a new IncomeServicer.
func NewIncomeService(s store.Store[models.Income], now Clock, notify ChangeNotifier) IncomeServicer {
	return &incomeService{
		records: newRecords[models.Income](s, apperrors.ErrIncomeNotFound, notify, "income"),
		now:     now,
	}
}

func (s *incomeService) check(in IncomeInput, newDate bool) (int64, error) {
	fields := validator.Fields{
		"userId":       in.UserID,
		"amount":       in.Amount,
		"source":       in.Source,
		"category":     in.Category,
		"dateReceived": in.DateReceived,
	}
	if err := validator.ValidateRequired(fields, "userId", "amount", "source", "category", "dateReceived"); err != nil {
		return 0, fromValidation(err)
	}
	amount, err := validator.ValidateAmount(in.Amount)
	if err != nil {
		return 0, fromValidation(err)
	}
	if err := validator.ValidateOption("category", in.Category, models.IncomeCategories); err != nil {
		return 0, fromValidation(err)
	}
	if err := checkDate("dateReceived", in.DateReceived, validator.Today(s.now()), newDate); err != nil {
		return 0, err
	}
	return amount, nil
}

// ValidateIncome runs the create rules without persisting anything.
func (s *incomeService) ValidateIncome(in IncomeInput) error {
	_, err := s.check(in, true)
	return err
}

// CreateIncome validates and stores a new income.
func (s *incomeService) CreateIncome(ctx context.Context, in IncomeInput) (*models.Income, error) {
	amount, err := s.check(in, true)
	if err != nil {
		return nil, err
	}

	income := &models.Income{
		UserID:       in.UserID,
		Amount:       amount,
		Source:       in.Source,
		Category:     models.IncomeCategory(in.Category),
		DateReceived: in.DateReceived,
		Notes:        in.Notes,
	}
	return s.records.create(ctx, income)
}

// ListIncomes returns the user's incomes in creation order.
func (s *incomeService) ListIncomes(ctx context.Context, userID string, opts store.ListOptions) ([]models.Income, int64, error) {
	return s.records.list(ctx, userID, opts)
}

// GetIncome returns one income.
func (s *incomeService) GetIncome(ctx context.Context, ownerID, id string) (*models.Income, error) {
	return s.records.get(ctx, ownerID, id)
}

// UpdateIncome merges patch onto the stored income and re-validates the result.
func (s *incomeService) UpdateIncome(ctx context.Context, ownerID, id string, patch IncomePatch) (*models.Income, error) {
	income, err := s.records.get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	in := IncomeInput{
		UserID:       income.UserID,
		Amount:       formatAmount(income.Amount),
		Source:       income.Source,
		Category:     string(income.Category),
		DateReceived: income.DateReceived,
		Notes:        income.Notes,
	}
	patchString(&in.Amount, patch.Amount)
	patchString(&in.Source, patch.Source)
	patchString(&in.Category, patch.Category)
	newDate := patchString(&in.DateReceived, patch.DateReceived)
	patchString(&in.Notes, patch.Notes)

	amount, err := s.check(in, newDate)
	if err != nil {
		return nil, err
	}

	income.Amount = amount
	income.Source = in.Source
	income.Category = models.IncomeCategory(in.Category)
	income.DateReceived = in.DateReceived
	income.Notes = in.Notes
	return s.records.update(ctx, id, income)
}

// DeleteIncome permanently removes an income.
func (s *incomeService) DeleteIncome(ctx context.Context, ownerID, id string) error {
	return s.records.delete(ctx, ownerID, id)
}
