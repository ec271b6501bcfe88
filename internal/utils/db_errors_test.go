package utils

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestIsDBLockError tests lock/busy/deadlock message detection
func TestIsDBLockError(t *testing.T) {
	t.Parallel()

	assert.True(t, IsDBLockError(errors.New("database is locked")))
	assert.True(t, IsDBLockError(errors.New("SQLITE_BUSY: database table is locked")))
	assert.True(t, IsDBLockError(errors.New("Error 1205: Lock wait timeout exceeded")))
	assert.True(t, IsDBLockError(errors.New("ERROR: deadlock detected (SQLSTATE 40P01)")))

	assert.False(t, IsDBLockError(nil))
	assert.False(t, IsDBLockError(errors.New("connection reset by peer")))
	assert.False(t, IsDBLockError(errors.New("UNIQUE constraint failed")))
}

// TestIsTransientDBError tests that context errors count as transient
func TestIsTransientDBError(t *testing.T) {
	t.Parallel()

	assert.True(t, IsTransientDBError(context.DeadlineExceeded))
	assert.True(t, IsTransientDBError(fmt.Errorf("query failed: %w", context.Canceled)))
	assert.True(t, IsTransientDBError(errors.New("database is locked")))

	assert.False(t, IsTransientDBError(nil))
	assert.False(t, IsTransientDBError(errors.New("syntax error near SELECT")))
}
