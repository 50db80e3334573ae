package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLimiter_FailsOpenWithoutRedis(t *testing.T) {
	// A nil cache client behaves like an unavailable redis.
	l := New(nil, 5, time.Minute)

	for i := 0; i < 20; i++ {
		assert.True(t, l.Allow(context.Background(), "10.0.0.1"))
	}
}
