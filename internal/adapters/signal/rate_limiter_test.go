package signal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRateLimiter_SlidingWindow(t *testing.T) {
	req := require.New(t)
	now := time.Unix(1000, 0)
	rl := NewRateLimiter(2, 10*time.Second)
	rl.now = func() time.Time { return now }

	req.True(rl.Allow("c1"))
	req.True(rl.Allow("c1"))
	req.False(rl.Allow("c1"))

	// Other connections have their own budget
	req.True(rl.Allow("c2"))

	// When the window slides past the first attempts
	now = now.Add(11 * time.Second)
	req.True(rl.Allow("c1"))
}

func TestRateLimiter_Forget(t *testing.T) {
	req := require.New(t)
	rl := NewRateLimiter(1, time.Minute)

	req.True(rl.Allow("c1"))
	req.False(rl.Allow("c1"))

	rl.Forget("c1")
	req.True(rl.Allow("c1"))
}

func TestRateLimiter_Disabled(t *testing.T) {
	rl := NewRateLimiter(0, time.Minute)
	for i := 0; i < 100; i++ {
		require.True(t, rl.Allow("c1"))
	}
}
