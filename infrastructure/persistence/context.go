package persistence

import (
	"context"
	"sync/atomic"

	"gorm.io/gorm"
)

// txKey is the context key for storing the transaction
type txKey struct{}

// requestIDKey is the context key for request id propagation into SQL traces
type requestIDKey struct{}

// queryCounterKey is the context key for the per-request query counter
type queryCounterKey struct{}

// TxFromContext retrieves the GORM transaction from context
// Returns nil if no transaction is present
func TxFromContext(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return nil
}

// ContextWithTx returns a new context with the GORM transaction attached
func ContextWithTx(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// RequestIDFromContext retrieves the request id, or "" if absent
func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}
	return ""
}

// ContextWithRequestID returns a new context carrying the request id
func ContextWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// ContextWithQueryCounter arms a context with a fresh query counter.
// Every statement GORM executes under this context increments it (see
// RegisterQueryCounter), which is how the v1..v6 endpoints report their
// actual query fan-out.
func ContextWithQueryCounter(ctx context.Context) context.Context {
	return context.WithValue(ctx, queryCounterKey{}, new(atomic.Int64))
}

// QueryCount reads the counter; ok is false when the context is not armed.
func QueryCount(ctx context.Context) (int64, bool) {
	c, ok := ctx.Value(queryCounterKey{}).(*atomic.Int64)
	if !ok {
		return 0, false
	}
	return c.Load(), true
}

func incrementQueryCount(ctx context.Context) {
	if c, ok := ctx.Value(queryCounterKey{}).(*atomic.Int64); ok {
		c.Add(1)
	}
}

// RegisterQueryCounter installs GORM callbacks that bump the context counter
// after every executed statement.
func RegisterQueryCounter(db *gorm.DB) error {
	count := func(tx *gorm.DB) {
		if tx.Statement != nil {
			incrementQueryCount(tx.Statement.Context)
		}
	}
	if err := db.Callback().Query().After("gorm:query").Register("shop:count_query", count); err != nil {
		return err
	}
	if err := db.Callback().Row().After("gorm:row").Register("shop:count_row", count); err != nil {
		return err
	}
	if err := db.Callback().Raw().After("gorm:raw").Register("shop:count_raw", count); err != nil {
		return err
	}
	if err := db.Callback().Create().After("gorm:create").Register("shop:count_create", count); err != nil {
		return err
	}
	if err := db.Callback().Update().After("gorm:update").Register("shop:count_update", count); err != nil {
		return err
	}
	if err := db.Callback().Delete().After("gorm:delete").Register("shop:count_delete", count); err != nil {
		return err
	}
	return nil
}
