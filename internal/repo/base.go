package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/angelmondragon/catalog-backend/pkg/db"
	pkgerrors "github.com/angelmondragon/catalog-backend/pkg/errors"
)

// Base provides a shared foundation for domain repositories.
type Base struct {
	db *gorm.DB
}

// NewBase constructs a Base repository backed by the provided GORM connection.
func NewBase(db *gorm.DB) Base {
	return Base{db: db}
}

// WithTx returns a Base bound to the supplied transaction.
func (b Base) WithTx(tx *gorm.DB) Base {
	return Base{db: tx}
}

// DB returns the GORM connection bound to the supplied context (if any).
func (b Base) DB(ctx context.Context) *gorm.DB {
	if ctx == nil {
		return b.db
	}
	return b.db.WithContext(ctx)
}

// Exists reports whether at least one row of model matches the condition.
func (b Base) Exists(ctx context.Context, model any, query string, args ...any) (bool, error) {
	conn := b.DB(ctx)
	sub := conn.Session(&gorm.Session{NewDB: true}).Model(model).Select("1").Where(query, args...)
	var exists bool
	if err := conn.Raw("SELECT EXISTS (?)", sub).Scan(&exists).Error; err != nil {
		return false, err
	}
	return exists, nil
}

// MapError converts persistence errors into typed errors: missing rows become
// NOT_FOUND, unique violations CONFLICT, typed errors (hook validation) pass
// through and everything else is a DEPENDENCY_ERROR.
func MapError(err error, what string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.NotFound(what)
	}
	if typed := pkgerrors.As(err); typed != nil {
		return typed
	}
	if db.IsUniqueViolation(err, "") {
		return pkgerrors.Wrap(pkgerrors.CodeConflict, err, what+" already exists")
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "query "+what)
}
