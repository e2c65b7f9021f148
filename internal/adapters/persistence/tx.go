package persistence

import (
	"context"

	"gorm.io/gorm"
)

type txContextKey struct{}

// GormTxManager implements common.TxManager on a gorm transaction. The
// transaction handle travels in the context so every repository call inside
// the closure joins the same transaction.
type GormTxManager struct {
	db *gorm.DB
}

// NewGormTxManager creates a transaction manager for the given connection
func NewGormTxManager(db *gorm.DB) *GormTxManager {
	return &GormTxManager{db: db}
}

// WithinTx runs fn inside one transaction. Any error (or panic) from fn
// rolls the whole transaction back.
func (m *GormTxManager) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txContextKey{}, tx))
	})
}

// dbFor returns the transaction bound to ctx when one is active, otherwise
// the repository's own connection.
func dbFor(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txContextKey{}).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return db.WithContext(ctx)
}
