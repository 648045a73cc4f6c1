package relation

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	// Relation manages one "user marks target" table with a uniqueness
	// constraint on the (user, target) pair. Favorite, ShoppingCart and
	// Subscribe are all instances of it.
	Relation[R any] interface {
		Add(ctx context.Context, userID, targetID uuid.UUID) error
		Remove(ctx context.Context, userID, targetID uuid.UUID) error
		Exists(ctx context.Context, userID, targetID uuid.UUID) (bool, error)
	}

	// Config describes one relation table. Guard is an optional extra
	// invariant checked before insert (Subscribe's self-check). ErrExists
	// is the domain error returned on a duplicate pair; the database
	// unique index stays the arbiter under concurrent adds.
	Config[R any] struct {
		DB           *gorm.DB
		UserColumn   string
		TargetColumn string
		ErrExists    error
		NewRow       func(userID, targetID uuid.UUID) *R
		Guard        func(userID, targetID uuid.UUID) error
	}

	relation[R any] struct {
		db            *gorm.DB
		pairCondition string
		errExists     error
		newRow        func(userID, targetID uuid.UUID) *R
		guard         func(userID, targetID uuid.UUID) error
	}
)

func New[R any](cfg Config[R]) Relation[R] {
	return &relation[R]{
		db:            cfg.DB,
		pairCondition: fmt.Sprintf("%s = ? AND %s = ?", cfg.UserColumn, cfg.TargetColumn),
		errExists:     cfg.ErrExists,
		newRow:        cfg.NewRow,
		guard:         cfg.Guard,
	}
}

func (r *relation[R]) Add(ctx context.Context, userID, targetID uuid.UUID) error {
	if r.guard != nil {
		if err := r.guard(userID, targetID); err != nil {
			return err
		}
	}

	exists, err := r.Exists(ctx, userID, targetID)
	if err != nil {
		return err
	}
	if exists {
		return r.errExists
	}

	if err := r.db.WithContext(ctx).Create(r.newRow(userID, targetID)).Error; err != nil {
		// A concurrent add may win between the check and the insert.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return r.errExists
		}
		return err
	}
	return nil
}

// Remove is idempotent: deleting a pair that does not exist succeeds.
func (r *relation[R]) Remove(ctx context.Context, userID, targetID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where(r.pairCondition, userID, targetID).
		Delete(new(R)).Error
}

func (r *relation[R]) Exists(ctx context.Context, userID, targetID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(new(R)).
		Where(r.pairCondition, userID, targetID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
