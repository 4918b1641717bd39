/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package games

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSchedulerCountdown(t *testing.T) {
	var mu sync.Mutex
	s := newScheduler(&mu, time.Millisecond)

	var ticks []int
	var expired atomic.Bool

	mu.Lock()
	s.Countdown(3, func(r int) { ticks = append(ticks, r) }, func() { expired.Store(true) })
	assert.Equal(t, 3, s.Remaining())
	mu.Unlock()

	assert.Eventually(t, expired.Load, time.Second, time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []int{2, 1, 0}, ticks)
	assert.Equal(t, 0, s.Remaining())
}

func TestSchedulerCancelPreventsExpiry(t *testing.T) {
	var mu sync.Mutex
	s := newScheduler(&mu, time.Millisecond)

	var expired atomic.Bool

	mu.Lock()
	s.Countdown(5, nil, func() { expired.Store(true) })
	epoch := s.Epoch()
	s.Cancel()
	assert.Greater(t, s.Epoch(), epoch)
	mu.Unlock()

	assert.Never(t, expired.Load, 30*time.Millisecond, time.Millisecond)
}

func TestSchedulerSupersede(t *testing.T) {
	var mu sync.Mutex
	s := newScheduler(&mu, time.Millisecond)

	var first, second atomic.Int32

	mu.Lock()
	s.Countdown(2, nil, func() { first.Add(1) })
	s.Countdown(2, nil, func() { second.Add(1) })
	mu.Unlock()

	assert.Eventually(t, func() bool { return second.Load() == 1 }, time.Second, time.Millisecond)
	assert.Never(t, func() bool { return first.Load() != 0 }, 20*time.Millisecond, time.Millisecond)
}

// A timer that fires while the lock is held by someone who then cancels
// must not run once it finally gets the lock.
func TestSchedulerDropsStaleCallback(t *testing.T) {
	var mu sync.Mutex
	s := newScheduler(&mu, time.Millisecond)

	var ran atomic.Bool

	mu.Lock()
	s.After(time.Millisecond, func() { ran.Store(true) })
	time.Sleep(20 * time.Millisecond)
	s.Cancel()
	mu.Unlock()

	assert.Never(t, ran.Load, 20*time.Millisecond, time.Millisecond)
}

func TestSchedulerWatch(t *testing.T) {
	var mu sync.Mutex
	s := newScheduler(&mu, time.Millisecond)

	var ready atomic.Bool
	var fired, expired atomic.Int32

	mu.Lock()
	s.Countdown(1000, nil, func() { expired.Add(1) })
	s.Watch(time.Millisecond, ready.Load, func() { fired.Add(1) })
	mu.Unlock()

	assert.Never(t, func() bool { return fired.Load() != 0 }, 10*time.Millisecond, time.Millisecond)

	ready.Store(true)
	assert.Eventually(t, func() bool { return fired.Load() == 1 }, time.Second, time.Millisecond)
	assert.Never(t, func() bool { return fired.Load() > 1 }, 10*time.Millisecond, time.Millisecond)

	mu.Lock()
	assert.Positive(t, s.Remaining(), "the watch must not cancel the countdown")
	s.Cancel()
	mu.Unlock()
	assert.Equal(t, int32(0), expired.Load())
}

func TestSchedulerStop(t *testing.T) {
	var mu sync.Mutex
	s := newScheduler(&mu, time.Millisecond)

	var ran atomic.Bool

	mu.Lock()
	s.Stop()
	s.Countdown(1, nil, func() { ran.Store(true) })
	s.After(time.Millisecond, func() { ran.Store(true) })
	s.Watch(time.Millisecond, func() bool { return true }, func() { ran.Store(true) })
	mu.Unlock()

	assert.Never(t, ran.Load, 20*time.Millisecond, time.Millisecond)
}
