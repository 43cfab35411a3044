// Package store is the storage context for the flashcard data model. Every
// operation takes a context and runs against the *gorm.DB it was built with;
// there is no package level connection.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

var (
	ErrNotFound         = errors.New("record not found")
	ErrDuplicate        = errors.New("unique constraint violated")
	ErrMissingReference = errors.New("referenced record does not exist")
	ErrInvalid          = errors.New("invalid record")
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// DB exposes the underlying handle, mostly for migrations and tests.
func (s *Store) DB() *gorm.DB {
	return s.db
}

func (s *Store) conn(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

// WithTx runs fn inside a single transaction. The transaction is committed
// when fn returns nil and rolled back otherwise, including on panic.
func (s *Store) WithTx(ctx context.Context, fn func(tx *Store) error) error {
	return translate(s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	}))
}

// translate maps driver and ORM errors onto the package sentinels. Drivers
// differ in what they report, so both the translated gorm errors and the raw
// messages of sqlite and postgres are recognised.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrDuplicate) ||
		errors.Is(err, ErrMissingReference) || errors.Is(err, ErrInvalid) {
		return err
	}

	var verrs validator.ValidationErrors
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.As(err, &verrs):
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("%w: %v", ErrMissingReference, err)
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed"),
		strings.Contains(msg, "duplicate key value"):
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	case strings.Contains(msg, "FOREIGN KEY constraint failed"),
		strings.Contains(msg, "violates foreign key constraint"):
		return fmt.Errorf("%w: %v", ErrMissingReference, err)
	}
	return err
}
