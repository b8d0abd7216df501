package services

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Gangulr/finace/internal/models"
	"github.com/Gangulr/finace/internal/store"
	"github.com/Gangulr/finace/internal/testutil"
)

func TestGetSummary(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewSummaryService(store.NewGormSet(db), time.Minute)

	testutil.CreateTestBudget(t, db, "user-1", models.BudgetCategoryRent, 1000, "2025-05-10", "2025-06-10")
	testutil.CreateTestBudget(t, db, "user-1", models.BudgetCategoryGrocery, 300, "2025-05-10", "2025-06-10")
	testutil.CreateTestExpense(t, db, "user-1", models.ExpenseCategoryGrocery, 120, "2025-05-10")
	testutil.CreateTestExpense(t, db, "user-1", models.ExpenseCategoryGrocery, 30, "2025-05-11")
	testutil.CreateTestIncome(t, db, "user-1", models.IncomeCategorySalary, 2000, "2025-05-10")
	testutil.CreateTestIncome(t, db, "user-2", models.IncomeCategorySalary, 9999, "2025-05-10")

	summary, err := svc.GetSummary(context.Background(), "user-1")
	testutil.AssertNoError(t, err)

	assert.Equal(t, int64(1300), summary.TotalBudgeted)
	assert.Equal(t, int64(150), summary.TotalSpent)
	assert.Equal(t, int64(2000), summary.TotalReceived)
	assert.Equal(t, int64(1850), summary.Balance)
	assert.Equal(t, 2, summary.BudgetCount)
	assert.Equal(t, 2, summary.ExpenseCount)
	assert.Equal(t, 1, summary.IncomeCount)
	assert.Equal(t, map[string]int64{"Rent": 1000, "Grocery": 300}, summary.BudgetsByCategory)
	assert.Equal(t, map[string]int64{"Grocery": 150}, summary.ExpensesByCategory)
	assert.Equal(t, map[string]int64{"Salary": 2000}, summary.IncomesByCategory)
}

func TestGetSummary_CachedUntilInvalidated(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	summaries := NewSummaryService(store.NewGormSet(db), time.Minute)
	expenses := NewExpenseService(store.NewGormStore[models.Expense](db), fixedClock(today), summaries)

	first, err := summaries.GetSummary(context.Background(), "user-1")
	testutil.AssertNoError(t, err)
	assert.Zero(t, first.TotalSpent)

	// Rows written behind the service's back are not seen until invalidation.
	testutil.CreateTestExpense(t, db, "user-1", models.ExpenseCategoryBills, 70, "2025-05-10")
	cached, err := summaries.GetSummary(context.Background(), "user-1")
	testutil.AssertNoError(t, err)
	assert.Zero(t, cached.TotalSpent)

	_, err = expenses.CreateExpense(context.Background(), validExpenseInput())
	testutil.AssertNoError(t, err)

	fresh, err := summaries.GetSummary(context.Background(), "user-1")
	testutil.AssertNoError(t, err)
	assert.Equal(t, int64(115), fresh.TotalSpent)
}

func TestGetSummary_StoreUnavailable(t *testing.T) {
	svc := NewSummaryService(store.Set{
		Budgets:  brokenStore[models.Budget]{},
		Expenses: brokenStore[models.Expense]{},
		Incomes:  brokenStore[models.Income]{},
	}, time.Minute)

	_, err := svc.GetSummary(context.Background(), "user-1")
	testutil.AssertAppError(t, err, "STORE_UNAVAILABLE")
}

func TestGetSummary_TotalOverflow(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewSummaryService(store.NewGormSet(db), time.Minute)

	// Rows written straight to the table skip the amount ceiling.
	testutil.CreateTestBudget(t, db, "user-1", models.BudgetCategoryRent, math.MaxInt64, "2025-05-10", "2025-06-10")
	testutil.CreateTestBudget(t, db, "user-1", models.BudgetCategoryRent, math.MaxInt64, "2025-05-10", "2025-06-10")

	_, err := svc.GetSummary(context.Background(), "user-1")
	testutil.AssertAppError(t, err, "SUMMARY_OVERFLOW")
}

func TestAddAmount(t *testing.T) {
	total := int64(math.MaxInt64 - 10)
	assert.True(t, addAmount(&total, 10))
	assert.Equal(t, int64(math.MaxInt64), total)
	assert.False(t, addAmount(&total, 1))
	assert.Equal(t, int64(math.MaxInt64), total)
	assert.False(t, addAmount(&total, -1))
}

// listHookStore runs onList before every ListByUser of the wrapped store.
type listHookStore[T any] struct {
	store.Store[T]
	onList func()
}

func (s listHookStore[T]) ListByUser(ctx context.Context, userID string, opts store.ListOptions) ([]T, int64, error) {
	s.onList()
	return s.Store.ListByUser(ctx, userID, opts)
}

func TestGetSummary_WriteDuringComputationIsNotCached(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	var svc SummaryServicer
	lists := 0
	set := store.NewGormSet(db)
	set.Expenses = listHookStore[models.Expense]{
		Store: set.Expenses,
		onList: func() {
			lists++
			if lists == 1 {
				// A write lands after budgets were read but before the totals are stored.
				testutil.CreateTestBudget(t, db, "user-1", models.BudgetCategoryBills, 400, "2025-05-10", "2025-06-10")
				svc.Invalidate("user-1")
			}
		},
	}
	svc = NewSummaryService(set, time.Minute)

	first, err := svc.GetSummary(context.Background(), "user-1")
	testutil.AssertNoError(t, err)
	assert.Zero(t, first.TotalBudgeted)

	second, err := svc.GetSummary(context.Background(), "user-1")
	testutil.AssertNoError(t, err)
	assert.Equal(t, int64(400), second.TotalBudgeted)
	assert.Equal(t, 2, lists)

	third, err := svc.GetSummary(context.Background(), "user-1")
	testutil.AssertNoError(t, err)
	assert.Equal(t, int64(400), third.TotalBudgeted)
	assert.Equal(t, 2, lists, "unchanged totals should come from the cache")
}
