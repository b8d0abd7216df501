package services

import (
	"context"
	"time"

	"github.com/Gangulr/finace/internal/models"
	"github.com/Gangulr/finace/internal/store"
)

// Clock returns the current time. The reference date for the not-in-the-past
// rules is its calendar date in its own location.
type Clock func() time.Time

// ChangeNotifier is told whenever a user's records change.
type ChangeNotifier interface {
	Invalidate(userID string)
}

// BudgetInput is a submitted budget form. Amount is the raw text the user
// typed; the service parses it.
type BudgetInput struct {
	UserID    string
	Amount    string
	Category  string
	StartDate string
	EndDate   string
	Notes     string
}

// BudgetPatch holds the fields to change on a budget. Nil fields keep their
// stored value.
type BudgetPatch struct {
	Amount    *string
	Category  *string
	StartDate *string
	EndDate   *string
	Notes     *string
}

// ExpenseInput is a submitted expense form.
type ExpenseInput struct {
	UserID        string
	Amount        string
	Category      string
	PaymentMethod string
	DateSpent     string
	Notes         string
}

// ExpensePatch holds the fields to change on an expense.
type ExpensePatch struct {
	Amount        *string
	Category      *string
	PaymentMethod *string
	DateSpent     *string
	Notes         *string
}

// IncomeInput is a submitted income form.
type IncomeInput struct {
	UserID       string
	Amount       string
	Source       string
	Category     string
	DateReceived string
	Notes        string
}

// IncomePatch holds the fields to change on an income.
type IncomePatch struct {
	Amount       *string
	Source       *string
	Category     *string
	DateReceived *string
	Notes        *string
}

// BudgetServicer defines the contract for budget-related business logic.
// A non-empty ownerID restricts the by-id operations to that user's budgets.
type BudgetServicer interface {
	ValidateBudget(in BudgetInput) error
	CreateBudget(ctx context.Context, in BudgetInput) (*models.Budget, error)
	ListBudgets(ctx context.Context, userID string, opts store.ListOptions) ([]models.Budget, int64, error)
	GetBudget(ctx context.Context, ownerID, id string) (*models.Budget, error)
	UpdateBudget(ctx context.Context, ownerID, id string, patch BudgetPatch) (*models.Budget, error)
	DeleteBudget(ctx context.Context, ownerID, id string) error
}

// ExpenseServicer defines the contract for expense-related business logic.
type ExpenseServicer interface {
	ValidateExpense(in ExpenseInput) error
	CreateExpense(ctx context.Context, in ExpenseInput) (*models.Expense, error)
	ListExpenses(ctx context.Context, userID string, opts store.ListOptions) ([]models.Expense, int64, error)
	GetExpense(ctx context.Context, ownerID, id string) (*models.Expense, error)
	UpdateExpense(ctx context.Context, ownerID, id string, patch ExpensePatch) (*models.Expense, error)
	DeleteExpense(ctx context.Context, ownerID, id string) error
}

// IncomeServicer defines the contract for income-related business logic.
type IncomeServicer interface {
	ValidateIncome(in IncomeInput) error
	CreateIncome(ctx context.Context, in IncomeInput) (*models.Income, error)
	ListIncomes(ctx context.Context, userID string, opts store.ListOptions) ([]models.Income, int64, error)
	GetIncome(ctx context.Context, ownerID, id string) (*models.Income, error)
	UpdateIncome(ctx context.Context, ownerID, id string, patch IncomePatch) (*models.Income, error)
	DeleteIncome(ctx context.Context, ownerID, id string) error
}

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	Signup(ctx context.Context, email, username, password string) (*models.User, error)
	AttemptLogin(ctx context.Context, email, password string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// Summary aggregates one user's records.
type Summary struct {
	UserID             string           `json:"userId"`
	TotalBudgeted      int64            `json:"totalBudgeted"`
	TotalSpent         int64            `json:"totalSpent"`
	TotalReceived      int64            `json:"totalReceived"`
	Balance            int64            `json:"balance"`
	BudgetCount        int              `json:"budgetCount"`
	ExpenseCount       int              `json:"expenseCount"`
	IncomeCount        int              `json:"incomeCount"`
	BudgetsByCategory  map[string]int64 `json:"budgetsByCategory"`
	ExpensesByCategory map[string]int64 `json:"expensesByCategory"`
	IncomesByCategory  map[string]int64 `json:"incomesByCategory"`
}

// SummaryServicer computes per-user totals.
type SummaryServicer interface {
	ChangeNotifier
	GetSummary(ctx context.Context, userID string) (*Summary, error)
}
