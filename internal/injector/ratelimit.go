package injector

import (
	"context"
	"fmt"
	"sync"
	"time"

	domain "github.com/inference-gateway/gridpick/internal/domain"
)

// RateLimitConfig bounds the number of clicks within a sliding window
type RateLimitConfig struct {
	Enabled             bool
	MaxActionsPerMinute int
	WindowSeconds       int
}

// RateLimiter implements sliding window rate limiting for dispatched clicks
type RateLimiter struct {
	cfg         RateLimitConfig
	actionTimes []time.Time
	now         func() time.Time
	mu          sync.Mutex
}

// NewRateLimiter creates a new rate limiter
func NewRateLimiter(cfg RateLimitConfig) *RateLimiter {
	return &RateLimiter{
		cfg: cfg,
		now: time.Now,
	}
}

func (rl *RateLimiter) window() time.Duration {
	return time.Duration(rl.cfg.WindowSeconds) * time.Second
}

func (rl *RateLimiter) prune(now time.Time) {
	windowStart := now.Add(-rl.window())
	kept := rl.actionTimes[:0]
	for _, t := range rl.actionTimes {
		if t.After(windowStart) {
			kept = append(kept, t)
		}
	}
	rl.actionTimes = kept
}

// CheckAndRecord records an action, or returns an error if the window is full
func (rl *RateLimiter) CheckAndRecord() error {
	if !rl.cfg.Enabled {
		return nil
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	rl.prune(now)

	if len(rl.actionTimes) >= rl.cfg.MaxActionsPerMinute {
		return fmt.Errorf("rate limit exceeded: maximum %d clicks per %d seconds (current: %d clicks in window)",
			rl.cfg.MaxActionsPerMinute, rl.cfg.WindowSeconds, len(rl.actionTimes))
	}

	rl.actionTimes = append(rl.actionTimes, now)
	return nil
}

// GetCurrentCount returns the number of actions in the current window
func (rl *RateLimiter) GetCurrentCount() int {
	if !rl.cfg.Enabled {
		return 0
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.prune(rl.now())
	return len(rl.actionTimes)
}

// Reset clears all recorded actions
func (rl *RateLimiter) Reset() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.actionTimes = nil
}

// RateLimited wraps an injector so that clicks beyond the limit fail before
// reaching the pointer. Moves are never limited.
type RateLimited struct {
	next    domain.PointerInjector
	limiter *RateLimiter
}

var _ domain.PointerInjector = (*RateLimited)(nil)

// NewRateLimited wraps next with limiter
func NewRateLimited(next domain.PointerInjector, limiter *RateLimiter) *RateLimited {
	return &RateLimited{next: next, limiter: limiter}
}

// Move passes through
func (r *RateLimited) Move(ctx context.Context, x, y int) error {
	return r.next.Move(ctx, x, y)
}

// Click is rejected when the window is full
func (r *RateLimited) Click(ctx context.Context, button domain.MouseButton) error {
	if err := r.limiter.CheckAndRecord(); err != nil {
		return err
	}
	return r.next.Click(ctx, button)
}
