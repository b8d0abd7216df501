package services

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"

	apperrors "github.com/Gangulr/finace/internal/errors"
	"github.com/Gangulr/finace/internal/models"
	"github.com/Gangulr/finace/internal/store"
)

// summaryService totals a user's records and caches the result until the
// user writes again or the TTL expires.
type summaryService struct {
	budgets  store.Store[models.Budget]
	expenses store.Store[models.Expense]
	incomes  store.Store[models.Income]
	cache    *cache.Cache

	mu       sync.Mutex
	versions map[string]uint64
}

// NewSummaryService creates a new SummaryServicer.
func NewSummaryService(stores store.Set, ttl time.Duration) SummaryServicer {
	return &summaryService{
		budgets:  stores.Budgets,
		expenses: stores.Expenses,
		incomes:  stores.Incomes,
		cache:    cache.New(ttl, 2*ttl),
		versions: map[string]uint64{},
	}
}

// Invalidate drops the cached summary of userID.
func (s *summaryService) Invalidate(userID string) {
	s.mu.Lock()
	s.versions[userID]++
	s.cache.Delete(userID)
	s.mu.Unlock()
}

func (s *summaryService) version(userID string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.versions[userID]
}

// remember caches summary unless a write for its owner landed after version
// was read, in which case the totals may already be stale.
func (s *summaryService) remember(summary *Summary, version uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.versions[summary.UserID] == version {
		s.cache.SetDefault(summary.UserID, summary)
	}
}

// GetSummary returns the totals of userID.
func (s *summaryService) GetSummary(ctx context.Context, userID string) (*Summary, error) {
	if cached, ok := s.cache.Get(userID); ok {
		return cached.(*Summary), nil
	}
	version := s.version(userID)

	budgets, _, err := s.budgets.ListByUser(ctx, userID, store.ListOptions{})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStoreUnavailable, err)
	}
	expenses, _, err := s.expenses.ListByUser(ctx, userID, store.ListOptions{})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStoreUnavailable, err)
	}
	incomes, _, err := s.incomes.ListByUser(ctx, userID, store.ListOptions{})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStoreUnavailable, err)
	}

	summary := &Summary{
		UserID:             userID,
		BudgetCount:        len(budgets),
		ExpenseCount:       len(expenses),
		IncomeCount:        len(incomes),
		BudgetsByCategory:  map[string]int64{},
		ExpensesByCategory: map[string]int64{},
		IncomesByCategory:  map[string]int64{},
	}
	for _, b := range budgets {
		if !addAmount(&summary.TotalBudgeted, b.Amount) {
			return nil, overflow("budgeted")
		}
		summary.BudgetsByCategory[string(b.Category)] += b.Amount
	}
	for _, e := range expenses {
		if !addAmount(&summary.TotalSpent, e.Amount) {
			return nil, overflow("spent")
		}
		summary.ExpensesByCategory[string(e.Category)] += e.Amount
	}
	for _, i := range incomes {
		if !addAmount(&summary.TotalReceived, i.Amount) {
			return nil, overflow("received")
		}
		summary.IncomesByCategory[string(i.Category)] += i.Amount
	}
	summary.Balance = summary.TotalReceived - summary.TotalSpent

	s.remember(summary, version)
	return summary, nil
}

// addAmount adds n to total unless the sum would leave the int64 range.
// Category sums never exceed their total, so only totals are checked.
func addAmount(total *int64, n int64) bool {
	if n < 0 || *total > math.MaxInt64-n {
		return false
	}
	*total += n
	return true
}

func overflow(total string) error {
	return apperrors.Wrap(apperrors.ErrSummaryOverflow, fmt.Errorf("total %s exceeds the int64 range", total))
}
