package services

import (
	"context"
	"errors"
	"strconv"

	apperrors "github.com/Gangulr/finace/internal/errors"
	"github.com/Gangulr/finace/internal/logger"
	"github.com/Gangulr/finace/internal/models"
	"github.com/Gangulr/finace/internal/store"
	"github.com/Gangulr/finace/internal/validator"
)

// validationErrors maps each rule to the error code clients receive.
var validationErrors = map[validator.Kind]*apperrors.AppError{
	validator.KindMissingField:       apperrors.ErrMissingField,
	validator.KindNotANumber:         apperrors.ErrNotANumber,
	validator.KindNotPositiveInteger: apperrors.ErrInvalidAmount,
	validator.KindAmountTooLarge:     apperrors.ErrAmountTooLarge,
	validator.KindPastDate:           apperrors.ErrPastDate,
	validator.KindEndBeforeStart:     apperrors.ErrEndBeforeStart,
	validator.KindInvalidDate:        apperrors.ErrInvalidDate,
	validator.KindInvalidOption:      apperrors.ErrInvalidOption,
	validator.KindInvalidInput:       apperrors.ErrInvalidInput,
}

// AsAppError converts a rule violation into an AppError carrying the rule's
// own message. Handlers use it for binding failures.
func AsAppError(err error) error {
	return fromValidation(err)
}

func fromValidation(err error) error {
	if err == nil {
		return nil
	}
	var ve *validator.ValidationError
	if !errors.As(err, &ve) {
		return apperrors.Wrap(apperrors.ErrInvalidInput, err)
	}
	sentinel, ok := validationErrors[ve.Kind]
	if !ok {
		sentinel = apperrors.ErrInvalidInput
	}
	return apperrors.WithMessage(sentinel, ve.Message)
}

type noopNotifier struct{}

func (noopNotifier) Invalidate(string) {}

type recordPtr[T any] interface {
	*T
	models.Record
}

// records implements the store-facing half shared by every record service:
// error mapping, the ownership check and change notification.
type records[T any, PT recordPtr[T]] struct {
	store    store.Store[T]
	notFound *apperrors.AppError
	notify   ChangeNotifier
	kind     string
}

func newRecords[T any, PT recordPtr[T]](s store.Store[T], notFound *apperrors.AppError, notify ChangeNotifier, kind string) records[T, PT] {
	if notify == nil {
		notify = noopNotifier{}
	}
	return records[T, PT]{store: s, notFound: notFound, notify: notify, kind: kind}
}

func (r records[T, PT]) storeError(op string, err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return r.notFound
	}
	logger.Named("services").Errorw("record store failure", "kind", r.kind, "op", op, "error", err)
	return apperrors.Wrap(apperrors.ErrStoreUnavailable, err)
}

func (r records[T, PT]) create(ctx context.Context, rec *T) (*T, error) {
	if err := r.store.Create(ctx, rec); err != nil {
		return nil, r.storeError("create", err)
	}
	r.notify.Invalidate(PT(rec).Owner())
	logger.Get().Debugw("record created", "kind", r.kind, "id", PT(rec).RecordID())
	return rec, nil
}

func (r records[T, PT]) list(ctx context.Context, userID string, opts store.ListOptions) ([]T, int64, error) {
	items, total, err := r.store.ListByUser(ctx, userID, opts)
	if err != nil {
		return nil, 0, r.storeError("list", err)
	}
	return items, total, nil
}

// get loads a record and, when ownerID is set, checks it belongs to that user.
func (r records[T, PT]) get(ctx context.Context, ownerID, id string) (*T, error) {
	rec, err := r.store.GetByID(ctx, id)
	if err != nil {
		return nil, r.storeError("get", err)
	}
	if ownerID != "" && PT(rec).Owner() != ownerID {
		return nil, apperrors.ErrForbidden
	}
	return rec, nil
}

func (r records[T, PT]) update(ctx context.Context, id string, rec *T) (*T, error) {
	if err := r.store.UpdateByID(ctx, id, rec); err != nil {
		return nil, r.storeError("update", err)
	}
	r.notify.Invalidate(PT(rec).Owner())
	updated, err := r.store.GetByID(ctx, id)
	if err != nil {
		return nil, r.storeError("get", err)
	}
	return updated, nil
}

func (r records[T, PT]) delete(ctx context.Context, ownerID, id string) error {
	rec, err := r.get(ctx, ownerID, id)
	if err != nil {
		return err
	}
	if err := r.store.DeleteByID(ctx, id); err != nil {
		return r.storeError("delete", err)
	}
	r.notify.Invalidate(PT(rec).Owner())
	return nil
}

func formatAmount(n int64) string {
	return strconv.FormatInt(n, 10)
}

func patchString(dst *string, src *string) bool {
	if src == nil || *src == *dst {
		return false
	}
	*dst = *src
	return true
}
