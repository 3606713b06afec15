// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/finance-tracker/ledger/internal/application/adapter"
)

type txKey struct{}

// transactor implements the adapter.Transactor interface.
type transactor struct {
	db *gorm.DB
}

// NewTransactor creates a new unit of work runner backed by db.
func NewTransactor(db *gorm.DB) adapter.Transactor {
	return &transactor{
		db: db,
	}
}

// WithinTransaction runs fn inside a database transaction carried by the context.
func (t *transactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}

	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// conn returns the transaction bound to ctx, or db when there is none.
// Every repository query must go through it so that a unit of work sees its
// own writes.
func conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return db.WithContext(ctx)
}

// forUpdate adds a row lock to the query. SQLite serializes writers and has
// no FOR UPDATE, so the clause is only added on postgres.
func forUpdate(db *gorm.DB) *gorm.DB {
	if db.Dialector.Name() == "postgres" {
		return db.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return db
}
