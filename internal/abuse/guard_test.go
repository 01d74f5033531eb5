package abuse_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/errandly/errand-service/internal/abuse"
	"github.com/errandly/errand-service/internal/repository"
)

func TestLimits_CanCreate(t *testing.T) {
	limits := abuse.DefaultLimits()

	assert.True(t, limits.CanCreate(0))
	assert.True(t, limits.CanCreate(9))
	assert.False(t, limits.CanCreate(10))
	assert.False(t, limits.CanCreate(11))
}

func TestLimits_CanAcceptToday(t *testing.T) {
	limits := abuse.DefaultLimits()

	assert.True(t, limits.CanAcceptToday(0))
	assert.True(t, limits.CanAcceptToday(14))
	assert.False(t, limits.CanAcceptToday(15))
}

func TestLimits_CanCancel(t *testing.T) {
	limits := abuse.DefaultLimits()

	t.Run("customer threshold", func(t *testing.T) {
		assert.True(t, limits.CanCancel(repository.ActorCustomer, 2))
		assert.False(t, limits.CanCancel(repository.ActorCustomer, 3))
	})

	t.Run("runner threshold is stricter", func(t *testing.T) {
		assert.True(t, limits.CanCancel(repository.ActorRunner, 1))
		assert.False(t, limits.CanCancel(repository.ActorRunner, 2))
	})

	t.Run("unknown actor never allowed", func(t *testing.T) {
		assert.False(t, limits.CanCancel(repository.ActorType("admin"), 0))
	})
}

func TestLimits_WindowStart(t *testing.T) {
	limits := abuse.DefaultLimits()
	now := time.Date(2025, 3, 10, 15, 30, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2025, 3, 9, 15, 30, 0, 0, time.UTC), limits.WindowStart(now))
}

func TestLocalMidnight(t *testing.T) {
	t.Run("utc", func(t *testing.T) {
		now := time.Date(2025, 3, 10, 23, 59, 59, 0, time.UTC)
		assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), abuse.LocalMidnight(now))
	})

	t.Run("keeps the caller's location", func(t *testing.T) {
		loc := time.FixedZone("UTC+5", 5*3600)
		now := time.Date(2025, 3, 10, 0, 0, 1, 0, loc)

		midnight := abuse.LocalMidnight(now)
		assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, loc), midnight)
		assert.Equal(t, loc, midnight.Location())
	})

	t.Run("accepts after midnight reset the count", func(t *testing.T) {
		// An accept at 23:50 belongs to a different day than one at 00:10.
		evening := time.Date(2025, 3, 9, 23, 50, 0, 0, time.UTC)
		morning := time.Date(2025, 3, 10, 0, 10, 0, 0, time.UTC)

		assert.True(t, evening.Before(abuse.LocalMidnight(morning)))
	})
}

func TestTrustScore(t *testing.T) {
	assert.Equal(t, 1.0, abuse.TrustScore(0, 0))
	assert.InDelta(t, 0.7, abuse.TrustScore(3, 0), 1e-9)
	assert.InDelta(t, 0.5, abuse.TrustScore(0, 2), 1e-9)
	assert.Equal(t, 0.0, abuse.TrustScore(10, 5))
}
