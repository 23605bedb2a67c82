package repository

import (
	"context"
	"database/sql/driver"
	"errors"
	"net"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/lib/pq"
)

// commandTimeout bounds every store call (matches the backend's historical
// 3-minute command timeout).
const commandTimeout = 3 * time.Minute

// withRetry runs fn under the command timeout and retries transient
// connectivity faults only, up to 5 attempts with capped exponential backoff.
// Application-level errors (constraint violations, no rows) are returned on
// the first attempt.
func withRetry(ctx context.Context, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, commandTimeout)
	defer cancel()

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 500 * time.Millisecond
	policy.MaxInterval = 30 * time.Second

	op := func() error {
		err := fn(ctx)
		if err == nil {
			return nil
		}
		if isTransient(err) {
			return err
		}
		return backoff.Permanent(err)
	}
	return backoff.Retry(op, backoff.WithContext(backoff.WithMaxRetries(policy, 4), ctx))
}

func isTransient(err error) bool {
	if errors.Is(err, driver.ErrBadConn) {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		// 08 = connection exception, 57 = operator intervention (shutdown etc.)
		switch pqErr.Code.Class() {
		case "08", "57":
			return true
		}
		return false
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
