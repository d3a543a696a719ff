// internal/app/system/retrypolicy/retrypolicy.go
//
// Package retrypolicy names the retry behaviors used against the praise
// backend. Callers pick a policy by name instead of hand-rolling loops, so
// attempt counts and intervals live in one place.
package retrypolicy

import (
	"context"
	"time"

	"github.com/sethvargo/go-retry"

	"cheermate/internal/backend"
)

// Policy describes one retry behavior: how many attempts total, how long to
// wait between them, and which errors are worth retrying.
type Policy struct {
	// MaxAttempts is the total number of tries, first call included.
	MaxAttempts int

	// Interval is the fixed wait between tries.
	Interval time.Duration

	// RetryIf reports whether an error should trigger another try. A nil
	// RetryIf retries nothing.
	RetryIf func(error) bool
}

// ProfileFetch is the policy for the post-login profile fallback: when a
// login response comes back without a member id, /members/me is fetched
// under this policy. Only backend 5xx responses are retried; validation and
// auth failures are final on the first try.
var ProfileFetch = Policy{
	MaxAttempts: 3,
	Interval:    time.Second,
	RetryIf:     backend.IsServer,
}

// Do runs fn under the policy. The last error is returned as-is, without a
// retry wrapper, so callers can classify it normally.
func (p Policy) Do(ctx context.Context, fn func(context.Context) error) error {
	if p.MaxAttempts <= 1 {
		return fn(ctx)
	}

	b := retry.WithMaxRetries(uint64(p.MaxAttempts-1), retry.NewConstant(p.Interval))
	err := retry.Do(ctx, b, func(ctx context.Context) error {
		if err := fn(ctx); err != nil {
			if p.RetryIf != nil && p.RetryIf(err) {
				return retry.RetryableError(err)
			}
			return err
		}
		return nil
	})
	return err
}
