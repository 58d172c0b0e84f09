package resilience

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func failing(_ context.Context) (int, error) { return 0, errors.New("down") }
func working(_ context.Context) (int, error) { return 1, nil }

func TestBreaker_OpensAfterThreshold(t *testing.T) {
	b := NewBreaker(2, time.Minute)
	ctx := context.Background()

	_, _ = Call(ctx, b, failing)
	assert.False(t, b.Open())
	_, _ = Call(ctx, b, failing)
	assert.True(t, b.Open())

	_, err := Call(ctx, b, working)
	assert.ErrorIs(t, err, ErrCircuitOpen)
}

func TestBreaker_SuccessResetsCount(t *testing.T) {
	b := NewBreaker(2, time.Minute)
	ctx := context.Background()

	_, _ = Call(ctx, b, failing)
	_, err := Call(ctx, b, working)
	require.NoError(t, err)
	_, _ = Call(ctx, b, failing)
	assert.False(t, b.Open())
}

func TestBreaker_ProbeAfterCooldown(t *testing.T) {
	now := time.Now()
	b := NewBreaker(1, time.Second)
	b.now = func() time.Time { return now }
	ctx := context.Background()

	_, _ = Call(ctx, b, failing)
	require.True(t, b.Open())

	now = now.Add(2 * time.Second)
	assert.False(t, b.Open())

	// A failed probe reopens the breaker for a fresh cooldown.
	_, err := Call(ctx, b, failing)
	assert.EqualError(t, err, "down")
	assert.True(t, b.Open())

	now = now.Add(2 * time.Second)
	v, err := Call(ctx, b, working)
	require.NoError(t, err)
	assert.Equal(t, 1, v)
	assert.False(t, b.Open())
}

func TestNewBreaker_Defaults(t *testing.T) {
	b := NewBreaker(0, 0)
	assert.Equal(t, 5, b.threshold)
	assert.Equal(t, 30*time.Second, b.cooldown)
}
