package repository

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestIsTransient(t *testing.T) {
	assert.True(t, isTransient(driver.ErrBadConn))
	assert.True(t, isTransient(&pq.Error{Code: "08006"})) // connection_failure
	assert.True(t, isTransient(&pq.Error{Code: "57P01"})) // admin_shutdown
	assert.True(t, isTransient(fmt.Errorf("exec: %w", &pq.Error{Code: "08001"})))

	assert.False(t, isTransient(&pq.Error{Code: "23505"})) // unique_violation
	assert.False(t, isTransient(&pq.Error{Code: "23503"})) // foreign_key_violation
	assert.False(t, isTransient(sql.ErrNoRows))
	assert.False(t, isTransient(errors.New("some application error")))
}
