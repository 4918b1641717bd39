/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package games

import (
	"sync"
	"time"
)

// Scheduler is the only timer authority for one room. It owns a main slot
// (phase countdowns and one-shot delays) and a watch slot (idle polls).
// Scheduling anything into the main slot cancels whatever was pending.
//
// Every method must be called with the room lock held, and callbacks run
// with that same lock held. A callback whose epoch has been superseded
// by a later Cancel is dropped instead of run, so a timer that fired
// while a player action held the lock can never advance the room twice.
type Scheduler struct {
	lock      sync.Locker
	tick      time.Duration
	epoch     uint64
	remaining int
	main      *time.Timer
	watch     *time.Timer
	stopped   bool
}

func newScheduler(lock sync.Locker, tick time.Duration) *Scheduler {
	if tick <= 0 {
		tick = time.Second
	}
	return &Scheduler{
		lock: lock,
		tick: tick,
	}
}

// Remaining is the number of ticks left on the current countdown.
func (s *Scheduler) Remaining() int {
	return s.remaining
}

// Epoch identifies the current generation of timers.
func (s *Scheduler) Epoch() uint64 {
	return s.epoch
}

// Cancel invalidates both slots.
func (s *Scheduler) Cancel() {
	s.epoch++
	s.remaining = 0
	if s.main != nil {
		s.main.Stop()
		s.main = nil
	}
	if s.watch != nil {
		s.watch.Stop()
		s.watch = nil
	}
}

// Stop cancels everything and refuses further scheduling.
func (s *Scheduler) Stop() {
	s.stopped = true
	s.Cancel()
}

func (s *Scheduler) guard(epoch uint64, fn func()) func() {
	return func() {
		s.lock.Lock()
		defer s.lock.Unlock()

		if s.stopped || s.epoch != epoch {
			return
		}
		fn()
	}
}

// Countdown runs n ticks, calling onTick with the remaining count after
// each one and onExpire once it reaches zero.
func (s *Scheduler) Countdown(n int, onTick func(remaining int), onExpire func()) {
	s.Cancel()
	if s.stopped {
		return
	}

	s.remaining = max(n, 0)

	var step func()
	step = s.guard(s.epoch, func() {
		if s.remaining > 0 {
			s.remaining--
		}
		if onTick != nil {
			onTick(s.remaining)
		}
		if s.remaining > 0 {
			s.main = time.AfterFunc(s.tick, step)
			return
		}
		s.main = nil
		onExpire()
	})

	s.main = time.AfterFunc(s.tick, step)
}

// After runs fn once after d.
func (s *Scheduler) After(d time.Duration, fn func()) {
	s.Cancel()
	if s.stopped {
		return
	}

	s.main = time.AfterFunc(d, s.guard(s.epoch, func() {
		s.main = nil
		fn()
	}))
}

// Watch polls cond every interval alongside the main slot and calls fire
// the first time it holds. It dies with the current epoch.
func (s *Scheduler) Watch(every time.Duration, cond func() bool, fire func()) {
	if s.stopped {
		return
	}
	if s.watch != nil {
		s.watch.Stop()
	}

	var poll func()
	poll = s.guard(s.epoch, func() {
		if cond() {
			s.watch = nil
			fire()
			return
		}
		s.watch = time.AfterFunc(every, poll)
	})

	s.watch = time.AfterFunc(every, poll)
}
