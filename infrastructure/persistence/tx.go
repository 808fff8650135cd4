package persistence

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

// RunInTx executes fn within a read-write transaction carried by context.
// Nested calls join the transaction already in the context.
func RunInTx(ctx context.Context, db *gorm.DB, fn func(ctx context.Context) error) error {
	if tx := TxFromContext(ctx); tx != nil {
		return fn(ctx)
	}
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ContextWithTx(ctx, tx))
	})
}

// RunReadOnly executes fn within a read-only transactional scope.
// One strategy invocation equals one scope: all its queries run sequentially
// inside it, and the scope is released on every exit path.
func RunReadOnly(ctx context.Context, db *gorm.DB, fn func(ctx context.Context) error) error {
	if tx := TxFromContext(ctx); tx != nil {
		return fn(ctx)
	}

	tx := db.WithContext(ctx).Begin(&sql.TxOptions{ReadOnly: true})
	if tx.Error != nil {
		return tx.Error
	}

	committed := false
	defer func() {
		if !committed {
			tx.Rollback()
		}
	}()

	if err := fn(ContextWithTx(ctx, tx)); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		return err
	}
	committed = true
	return nil
}
