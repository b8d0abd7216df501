package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/Gangulr/finace/internal/models"
	"github.com/Gangulr/finace/internal/pagination"
	"github.com/Gangulr/finace/internal/uuid"
)

// GormStore is a Store backed by a SQL table through gorm.
type GormStore[T any, PT recordPtr[T]] struct {
	db *gorm.DB
}

// NewGormStore creates a GormStore for the table of T.
func NewGormStore[T any, PT recordPtr[T]](db *gorm.DB) *GormStore[T, PT] {
	return &GormStore[T, PT]{db: db}
}

// NewGormSet wires every store to the same database handle.
func NewGormSet(db *gorm.DB) Set {
	return Set{
		Budgets:  NewGormStore[models.Budget](db),
		Expenses: NewGormStore[models.Expense](db),
		Incomes:  NewGormStore[models.Income](db),
		Users:    &GormUserStore{db: db},
	}
}

// Create inserts rec and fills in its id and timestamps.
func (s *GormStore[T, PT]) Create(ctx context.Context, rec *T) error {
	p := PT(rec)
	if p.RecordID() == "" {
		p.AssignID(uuid.New())
	}
	if err := s.db.WithContext(ctx).Create(rec).Error; err != nil {
		return fmt.Errorf("insert: %w", err)
	}
	return nil
}

// ListByUser returns the owner's records in insertion order.
func (s *GormStore[T, PT]) ListByUser(ctx context.Context, userID string, opts ListOptions) ([]T, int64, error) {
	base := s.db.WithContext(ctx).Model(new(T)).Where("user_id = ?", userID)
	if opts.Category != "" {
		base = base.Where(`LOWER(category) LIKE ? ESCAPE '\'`, "%"+escapeLike(strings.ToLower(opts.Category))+"%")
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count: %w", err)
	}

	records := []T{}
	err := base.Session(&gorm.Session{}).
		Order("created_at ASC, id ASC").
		Scopes(pagination.Paginate(opts.Page)).
		Find(&records).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list: %w", err)
	}
	return records, total, nil
}

// GetByID loads one record.
func (s *GormStore[T, PT]) GetByID(ctx context.Context, id string) (*T, error) {
	var rec T
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get: %w", err)
	}
	return &rec, nil
}

// UpdateByID overwrites every mutable column of the record with id.
func (s *GormStore[T, PT]) UpdateByID(ctx context.Context, id string, rec *T) error {
	PT(rec).AssignID(id)
	res := s.db.WithContext(ctx).Model(rec).Select("*").Omit("id", "created_at").Updates(rec)
	if res.Error != nil {
		return fmt.Errorf("update: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteByID removes the record permanently.
func (s *GormStore[T, PT]) DeleteByID(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(new(T))
	if res.Error != nil {
		return fmt.Errorf("delete: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// GormUserStore keeps users in the users table.
type GormUserStore struct {
	db *gorm.DB
}

// NewGormUserStore creates a GormUserStore.
func NewGormUserStore(db *gorm.DB) *GormUserStore {
	return &GormUserStore{db: db}
}

// CreateUser inserts user, rejecting an email that is already registered.
func (s *GormUserStore) CreateUser(ctx context.Context, user *models.User) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", user.Email).Count(&count).Error; err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		return ErrDuplicate
	}
	return s.insertUser(ctx, user)
}

// insertUser relies on the unique email index for signups racing past the
// count in CreateUser. The db must be opened with TranslateError.
func (s *GormUserStore) insertUser(ctx context.Context, user *models.User) error {
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicate
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// FindUserByEmail loads the user registered with email.
func (s *GormUserStore) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.findUser(ctx, "email = ?", email)
}

// FindUserByID loads the user with id.
func (s *GormUserStore) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	return s.findUser(ctx, "id = ?", id)
}

func (s *GormUserStore) findUser(ctx context.Context, query string, arg string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where(query, arg).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &user, nil
}
