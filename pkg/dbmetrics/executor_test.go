package dbmetrics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetExecutor_PrefersTransaction(t *testing.T) {
	db := &SqlTxWrapper{}
	tx := &SqlTxWrapper{}

	ctx := context.Background()
	assert.Same(t, db, GetExecutor(ctx, db))
	assert.False(t, IsInTransaction(ctx))

	txCtx := WithTx(ctx, tx)
	assert.Same(t, tx, GetExecutor(txCtx, db))
	assert.True(t, IsInTransaction(txCtx))
}

func TestOperation(t *testing.T) {
	assert.Equal(t, "SELECT", operation("  select id FROM orders"))
	assert.Equal(t, "INSERT", operation("INSERT INTO orders"))
	assert.Equal(t, "UNKNOWN", operation("   "))
}
