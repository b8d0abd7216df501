package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gangulr/finace/internal/models"
	"github.com/Gangulr/finace/internal/store"
	"github.com/Gangulr/finace/internal/testutil"
)

func validBudgetInput() BudgetInput {
	return BudgetInput{
		UserID:    "user-1",
		Amount:    "500",
		Category:  "Rent",
		StartDate: "2025-05-10",
		EndDate:   "2025-06-10",
		Notes:     "flat",
	}
}

func TestCreateBudget(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		notify := &recordingNotifier{}
		svc := newBudgetTestService(db, notify)

		budget, err := svc.CreateBudget(context.Background(), validBudgetInput())
		testutil.AssertNoError(t, err)

		assert.NotEmpty(t, budget.ID)
		assert.Equal(t, int64(500), budget.Amount)
		assert.Equal(t, models.BudgetCategoryRent, budget.Category)
		assert.Equal(t, "flat", budget.Notes)
		assert.Equal(t, []string{"user-1"}, notify.calls())

		items, total, err := svc.ListBudgets(context.Background(), "user-1", store.ListOptions{})
		testutil.AssertNoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, items, 1)
		assert.Equal(t, budget.ID, items[0].ID)
	})

	t.Run("today_is_not_past", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newBudgetTestService(db, nil)

		in := validBudgetInput()
		in.StartDate = today
		in.EndDate = today
		_, err := svc.CreateBudget(context.Background(), in)
		testutil.AssertNoError(t, err)
	})

	tests := []struct {
		name    string
		mutate  func(*BudgetInput)
		code    string
		message string
	}{
		{name: "missing_user", mutate: func(in *BudgetInput) { in.UserID = "" }, code: "MISSING_FIELD", message: "User is required."},
		{name: "missing_category", mutate: func(in *BudgetInput) { in.Category = " " }, code: "MISSING_FIELD", message: "Category is required."},
		{name: "missing_amount", mutate: func(in *BudgetInput) { in.Amount = "" }, code: "MISSING_FIELD", message: "Amount is required."},
		{name: "amount_not_a_number", mutate: func(in *BudgetInput) { in.Amount = "abc" }, code: "NOT_A_NUMBER", message: "Amount must be a number"},
		{name: "amount_leading_zero", mutate: func(in *BudgetInput) { in.Amount = "012" }, code: "INVALID_AMOUNT", message: "Amount must be a positive integer"},
		{name: "amount_zero", mutate: func(in *BudgetInput) { in.Amount = "0" }, code: "INVALID_AMOUNT", message: "Amount must be a positive integer"},
		{name: "bad_category", mutate: func(in *BudgetInput) { in.Category = "Salary" }, code: "INVALID_OPTION", message: "Category must be one of: Rent, Bills, Grocery, Other"},
		{name: "start_in_past", mutate: func(in *BudgetInput) { in.StartDate = "2025-05-02" }, code: "PAST_DATE", message: "Start date cannot be in the past."},
		{name: "end_in_past", mutate: func(in *BudgetInput) { in.EndDate = "2025-01-01" }, code: "PAST_DATE", message: "End date cannot be in the past."},
		{name: "end_before_start", mutate: func(in *BudgetInput) { in.StartDate, in.EndDate = "2025-05-10", "2025-05-09" }, code: "END_BEFORE_START", message: "End date cannot be before start date."},
		{name: "malformed_date", mutate: func(in *BudgetInput) { in.StartDate = "10/05/2025" }, code: "INVALID_DATE", message: "Start date must be a date in YYYY-MM-DD format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := testutil.SetupTestDB(t)
			defer testutil.TeardownTestDB(t, db)
			svc := newBudgetTestService(db, nil)

			in := validBudgetInput()
			tt.mutate(&in)
			_, err := svc.CreateBudget(context.Background(), in)
			testutil.AssertAppErrorMessage(t, err, tt.code, tt.message)

			items, _, err := svc.ListBudgets(context.Background(), "user-1", store.ListOptions{})
			testutil.AssertNoError(t, err)
			assert.Empty(t, items, "rejected budgets must not be stored")
		})
	}

	t.Run("end_before_start", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(store.NewGormStore[models.Budget](db), fixedClock("2025-04-01"), nil)

		in := validBudgetInput()
		in.StartDate, in.EndDate = "2025-05-01", "2025-04-30"
		_, err := svc.CreateBudget(context.Background(), in)
		testutil.AssertAppError(t, err, "END_BEFORE_START")
	})

	t.Run("store_unavailable", func(t *testing.T) {
		svc := NewBudgetService(brokenStore[models.Budget]{}, fixedClock(today), nil)
		_, err := svc.CreateBudget(context.Background(), validBudgetInput())
		testutil.AssertAppError(t, err, "STORE_UNAVAILABLE")
	})
}

func TestValidateBudget(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := newBudgetTestService(db, nil)

	testutil.AssertNoError(t, svc.ValidateBudget(validBudgetInput()))

	in := validBudgetInput()
	in.Amount = "12a"
	testutil.AssertAppError(t, svc.ValidateBudget(in), "NOT_A_NUMBER")

	items, _, err := svc.ListBudgets(context.Background(), "user-1", store.ListOptions{})
	testutil.AssertNoError(t, err)
	assert.Empty(t, items)
}

func TestListBudgets(t *testing.T) {
	t.Run("returns_user_budgets_only", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newBudgetTestService(db, nil)

		testutil.CreateTestBudget(t, db, "user-1", models.BudgetCategoryRent, 100, "2025-05-10", "2025-06-10")
		testutil.CreateTestBudget(t, db, "user-1", models.BudgetCategoryGrocery, 200, "2025-05-10", "2025-06-10")
		testutil.CreateTestBudget(t, db, "user-2", models.BudgetCategoryRent, 300, "2025-05-10", "2025-06-10")

		items, total, err := svc.ListBudgets(context.Background(), "user-1", store.ListOptions{})
		testutil.AssertNoError(t, err)
		assert.Equal(t, int64(2), total)
		require.Len(t, items, 2)
		for _, b := range items {
			assert.Equal(t, "user-1", b.UserID)
		}
	})

	t.Run("category_filter", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newBudgetTestService(db, nil)

		testutil.CreateTestBudget(t, db, "user-1", models.BudgetCategoryRent, 100, "2025-05-10", "2025-06-10")
		testutil.CreateTestBudget(t, db, "user-1", models.BudgetCategoryBills, 200, "2025-05-10", "2025-06-10")

		items, total, err := svc.ListBudgets(context.Background(), "user-1", store.ListOptions{Category: "bil"})
		testutil.AssertNoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, items, 1)
		assert.Equal(t, models.BudgetCategoryBills, items[0].Category)
	})
}

func TestGetBudget(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := newBudgetTestService(db, nil)
	budget := testutil.CreateTestBudget(t, db, "user-1", models.BudgetCategoryRent, 100, "2025-05-10", "2025-06-10")

	t.Run("any_owner_when_unrestricted", func(t *testing.T) {
		got, err := svc.GetBudget(context.Background(), "", budget.ID)
		testutil.AssertNoError(t, err)
		assert.Equal(t, budget.ID, got.ID)
	})

	t.Run("owner_match", func(t *testing.T) {
		_, err := svc.GetBudget(context.Background(), "user-1", budget.ID)
		testutil.AssertNoError(t, err)
	})

	t.Run("other_owner", func(t *testing.T) {
		_, err := svc.GetBudget(context.Background(), "user-2", budget.ID)
		testutil.AssertAppError(t, err, "FORBIDDEN")
	})

	t.Run("not_found", func(t *testing.T) {
		_, err := svc.GetBudget(context.Background(), "", "missing")
		testutil.AssertAppError(t, err, "BUDGET_NOT_FOUND")
	})
}

func TestUpdateBudget(t *testing.T) {
	t.Run("patch_keeps_untouched_fields", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		notify := &recordingNotifier{}
		svc := newBudgetTestService(db, notify)
		// Dates already in the past stay valid while untouched.
		budget := testutil.CreateTestBudget(t, db, "user-1", models.BudgetCategoryRent, 100, "2025-01-01", "2025-12-31")

		updated, err := svc.UpdateBudget(context.Background(), "", budget.ID, BudgetPatch{Amount: strPtr("750"), Notes: strPtr("raised")})
		testutil.AssertNoError(t, err)

		assert.Equal(t, int64(750), updated.Amount)
		assert.Equal(t, "raised", updated.Notes)
		assert.Equal(t, "2025-01-01", updated.StartDate)
		assert.Equal(t, models.BudgetCategoryRent, updated.Category)
		assert.Equal(t, []string{"user-1"}, notify.calls())
	})

	t.Run("changed_date_must_not_be_past", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newBudgetTestService(db, nil)
		budget := testutil.CreateTestBudget(t, db, "user-1", models.BudgetCategoryRent, 100, "2025-05-10", "2025-12-31")

		_, err := svc.UpdateBudget(context.Background(), "", budget.ID, BudgetPatch{StartDate: strPtr("2025-04-01")})
		testutil.AssertAppError(t, err, "PAST_DATE")
	})

	t.Run("range_rechecked", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newBudgetTestService(db, nil)
		budget := testutil.CreateTestBudget(t, db, "user-1", models.BudgetCategoryRent, 100, "2025-05-10", "2025-12-31")

		_, err := svc.UpdateBudget(context.Background(), "", budget.ID, BudgetPatch{EndDate: strPtr("2025-05-09")})
		testutil.AssertAppError(t, err, "END_BEFORE_START")

		got, err := svc.GetBudget(context.Background(), "", budget.ID)
		testutil.AssertNoError(t, err)
		assert.Equal(t, "2025-12-31", got.EndDate, "rejected patch must not be stored")
	})

	t.Run("invalid_amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newBudgetTestService(db, nil)
		budget := testutil.CreateTestBudget(t, db, "user-1", models.BudgetCategoryRent, 100, "2025-05-10", "2025-12-31")

		_, err := svc.UpdateBudget(context.Background(), "", budget.ID, BudgetPatch{Amount: strPtr("-5")})
		testutil.AssertAppError(t, err, "NOT_A_NUMBER")
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newBudgetTestService(db, nil)

		_, err := svc.UpdateBudget(context.Background(), "", "missing", BudgetPatch{Amount: strPtr("1")})
		testutil.AssertAppError(t, err, "BUDGET_NOT_FOUND")
	})

	t.Run("other_owner", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newBudgetTestService(db, nil)
		budget := testutil.CreateTestBudget(t, db, "user-1", models.BudgetCategoryRent, 100, "2025-05-10", "2025-12-31")

		_, err := svc.UpdateBudget(context.Background(), "user-2", budget.ID, BudgetPatch{Amount: strPtr("1")})
		testutil.AssertAppError(t, err, "FORBIDDEN")
	})
}

func TestDeleteBudget(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	notify := &recordingNotifier{}
	svc := newBudgetTestService(db, notify)
	keep := testutil.CreateTestBudget(t, db, "user-1", models.BudgetCategoryRent, 100, "2025-05-10", "2025-06-10")
	gone := testutil.CreateTestBudget(t, db, "user-1", models.BudgetCategoryBills, 200, "2025-05-10", "2025-06-10")

	testutil.AssertAppError(t, svc.DeleteBudget(context.Background(), "user-2", gone.ID), "FORBIDDEN")
	testutil.AssertNoError(t, svc.DeleteBudget(context.Background(), "user-1", gone.ID))
	assert.Equal(t, []string{"user-1"}, notify.calls())

	items, _, err := svc.ListBudgets(context.Background(), "user-1", store.ListOptions{})
	testutil.AssertNoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, keep.ID, items[0].ID)

	testutil.AssertAppError(t, svc.DeleteBudget(context.Background(), "", gone.ID), "BUDGET_NOT_FOUND")
}
