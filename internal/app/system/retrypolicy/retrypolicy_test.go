// internal/app/system/retrypolicy/retrypolicy_test.go
package retrypolicy_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"cheermate/internal/app/system/retrypolicy"
	"cheermate/internal/backend"
)

func TestRetriesOnlyMatchingErrors(t *testing.T) {
	p := retrypolicy.Policy{
		MaxAttempts: 3,
		Interval:    time.Millisecond,
		RetryIf:     backend.IsServer,
	}

	t.Run("server errors retry to the attempt cap", func(t *testing.T) {
		calls := 0
		err := p.Do(context.Background(), func(context.Context) error {
			calls++
			return &backend.Error{Kind: backend.KindServer, Status: 502}
		})
		require.Error(t, err)
		require.True(t, backend.IsServer(err))
		require.Equal(t, 3, calls)
	})

	t.Run("validation errors are final on the first try", func(t *testing.T) {
		calls := 0
		err := p.Do(context.Background(), func(context.Context) error {
			calls++
			return &backend.Error{Kind: backend.KindValidation, Status: 400, Message: "bad"}
		})
		require.Error(t, err)
		require.True(t, backend.IsValidation(err))
		require.Equal(t, 1, calls)
	})

	t.Run("success stops retrying", func(t *testing.T) {
		calls := 0
		err := p.Do(context.Background(), func(context.Context) error {
			calls++
			if calls < 2 {
				return &backend.Error{Kind: backend.KindServer, Status: 500}
			}
			return nil
		})
		require.NoError(t, err)
		require.Equal(t, 2, calls)
	})
}

func TestLastErrorIsClassifiable(t *testing.T) {
	p := retrypolicy.ProfileFetch
	p.Interval = time.Millisecond

	err := p.Do(context.Background(), func(context.Context) error {
		return &backend.Error{Kind: backend.KindServer, Status: 503}
	})
	require.True(t, backend.IsServer(err))
}

func TestSingleAttemptRunsOnce(t *testing.T) {
	p := retrypolicy.Policy{MaxAttempts: 1}
	calls := 0
	err := p.Do(context.Background(), func(context.Context) error {
		calls++
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, 1, calls)
}
