package testutil

import (
	"context"
	"testing"
	"time"
)

// DefaultTimeout bounds contexts handed to comparison, ingestion and
// benchmark code under test.
const DefaultTimeout = 5 * time.Second

// deadliner is implemented by *testing.T; testing.TB does not expose Deadline.
type deadliner interface {
	Deadline() (time.Time, bool)
}

// Context returns a context canceled at test cleanup. The timeout is
// shortened to leave a second before the go test deadline, if one is set.
func Context(t testing.TB, timeout time.Duration) context.Context {
	t.Helper()
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if d, ok := t.(deadliner); ok {
		if deadline, set := d.Deadline(); set {
			if remaining := time.Until(deadline) - time.Second; remaining > 0 && remaining < timeout {
				timeout = remaining
			}
		}
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	t.Cleanup(cancel)
	return ctx
}
