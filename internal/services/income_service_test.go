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

func validIncomeInput() IncomeInput {
	return IncomeInput{
		UserID:       "user-1",
		Amount:       "3000",
		Source:       "Acme Ltd",
		Category:     "Salary",
		DateReceived: "2025-05-31",
	}
}

func TestCreateIncome(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newIncomeTestService(db, nil)

		income, err := svc.CreateIncome(context.Background(), validIncomeInput())
		testutil.AssertNoError(t, err)
		assert.Equal(t, int64(3000), income.Amount)
		assert.Equal(t, "Acme Ltd", income.Source)

		items, _, err := svc.ListIncomes(context.Background(), "user-1", store.ListOptions{})
		testutil.AssertNoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, income.ID, items[0].ID)
	})

	tests := []struct {
		name    string
		mutate  func(*IncomeInput)
		code    string
		message string
	}{
		{name: "missing_source", mutate: func(in *IncomeInput) { in.Source = "" }, code: "MISSING_FIELD", message: "Source is required."},
		{name: "not_a_number", mutate: func(in *IncomeInput) { in.Amount = "1,000" }, code: "NOT_A_NUMBER", message: "Amount must be a number"},
		{name: "bad_category", mutate: func(in *IncomeInput) { in.Category = "Rent" }, code: "INVALID_OPTION", message: "Category must be one of: Salary, Business, Freelance, Other"},
		{name: "past_date", mutate: func(in *IncomeInput) { in.DateReceived = "2025-04-30" }, code: "PAST_DATE", message: "Date received cannot be in the past."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := testutil.SetupTestDB(t)
			defer testutil.TeardownTestDB(t, db)
			svc := newIncomeTestService(db, nil)

			in := validIncomeInput()
			tt.mutate(&in)
			_, err := svc.CreateIncome(context.Background(), in)
			testutil.AssertAppErrorMessage(t, err, tt.code, tt.message)
		})
	}
}

func TestUpdateIncome(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	notify := &recordingNotifier{}
	svc := newIncomeTestService(db, notify)
	income := testutil.CreateTestIncome(t, db, "user-1", models.IncomeCategorySalary, 1000, "2025-06-01")

	updated, err := svc.UpdateIncome(context.Background(), "", income.ID, IncomePatch{
		Source:   strPtr("Side gig"),
		Category: strPtr("Freelance"),
	})
	testutil.AssertNoError(t, err)
	assert.Equal(t, "Side gig", updated.Source)
	assert.Equal(t, models.IncomeCategoryFreelance, updated.Category)
	assert.Equal(t, int64(1000), updated.Amount)
	assert.Equal(t, []string{"user-1"}, notify.calls())

	_, err = svc.UpdateIncome(context.Background(), "", income.ID, IncomePatch{Category: strPtr("Bills")})
	testutil.AssertAppError(t, err, "INVALID_OPTION")

	_, err = svc.UpdateIncome(context.Background(), "user-9", income.ID, IncomePatch{})
	testutil.AssertAppError(t, err, "FORBIDDEN")
}

func TestDeleteIncome(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := newIncomeTestService(db, nil)
	income := testutil.CreateTestIncome(t, db, "user-1", models.IncomeCategorySalary, 1000, "2025-06-01")

	testutil.AssertNoError(t, svc.DeleteIncome(context.Background(), "user-1", income.ID))

	_, err := svc.GetIncome(context.Background(), "", income.ID)
	testutil.AssertAppError(t, err, "INCOME_NOT_FOUND")
}
