// Package store is the record store accessor: it maps Budget, Expense and
// Income documents to their collections, keyed by owning user, and keeps
// user accounts. Two backends implement it, gorm (PostgreSQL, SQLite in
// tests) and MongoDB.
package store

import (
	"context"
	"errors"

	"github.com/Gangulr/finace/internal/models"
	"github.com/Gangulr/finace/internal/pagination"
)

var (
	// ErrNotFound is returned when no document has the requested id.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a unique key (user email) is already taken.
	ErrDuplicate = errors.New("duplicate record")
)

// ListOptions narrows a ListByUser query.
type ListOptions struct {
	// Category keeps records whose category contains this text, ignoring case.
	Category string
	Page     pagination.PageRequest
}

// Store persists one kind of owned record. Every other error returned by an
// implementation means the backend could not serve the call.
type Store[T any] interface {
	Create(ctx context.Context, rec *T) error
	ListByUser(ctx context.Context, userID string, opts ListOptions) ([]T, int64, error)
	GetByID(ctx context.Context, id string) (*T, error)
	UpdateByID(ctx context.Context, id string, rec *T) error
	DeleteByID(ctx context.Context, id string) error
}

// UserStore persists user accounts.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	FindUserByID(ctx context.Context, id string) (*models.User, error)
}

// Set groups the stores of one backend.
type Set struct {
	Budgets  Store[models.Budget]
	Expenses Store[models.Expense]
	Incomes  Store[models.Income]
	Users    UserStore
}

// recordPtr lets the generic backends call Record methods on *T.
type recordPtr[T any] interface {
	*T
	models.Record
}
