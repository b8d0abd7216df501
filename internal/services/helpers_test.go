package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/Gangulr/finace/internal/models"
	"github.com/Gangulr/finace/internal/store"
	"github.com/Gangulr/finace/internal/validator"
)

const today = "2025-05-03"

// fixedClock returns a Clock stuck at 09:00 UTC on date.
func fixedClock(date string) Clock {
	t, err := time.Parse(validator.DateLayout, date)
	if err != nil {
		panic(err)
	}
	return func() time.Time { return t.Add(9 * time.Hour) }
}

type recordingNotifier struct {
	mu    sync.Mutex
	users []string
}

func (n *recordingNotifier) Invalidate(userID string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.users = append(n.users, userID)
}

func (n *recordingNotifier) calls() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.users...)
}

var errBackendDown = errors.New("connection refused")

// brokenStore fails every call as an unreachable backend would.
type brokenStore[T any] struct{}

func (brokenStore[T]) Create(context.Context, *T) error { return errBackendDown }
func (brokenStore[T]) ListByUser(context.Context, string, store.ListOptions) ([]T, int64, error) {
	return nil, 0, errBackendDown
}
func (brokenStore[T]) GetByID(context.Context, string) (*T, error)  { return nil, errBackendDown }
func (brokenStore[T]) UpdateByID(context.Context, string, *T) error { return errBackendDown }
func (brokenStore[T]) DeleteByID(context.Context, string) error     { return errBackendDown }

func newBudgetTestService(db *gorm.DB, notify ChangeNotifier) BudgetServicer {
	return NewBudgetService(store.NewGormStore[models.Budget](db), fixedClock(today), notify)
}

func newExpenseTestService(db *gorm.DB, notify ChangeNotifier) ExpenseServicer {
	return NewExpenseService(store.NewGormStore[models.Expense](db), fixedClock(today), notify)
}

func newIncomeTestService(db *gorm.DB, notify ChangeNotifier) IncomeServicer {
	return NewIncomeService(store.NewGormStore[models.Income](db), fixedClock(today), notify)
}

func strPtr(s string) *string { return &s }
