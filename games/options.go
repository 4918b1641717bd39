/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package games

import (
	"time"

	"github.com/rs/zerolog"
)

// Timings holds every phase length. Phase lengths are counted in ticks so
// a faster tick speeds up the whole game uniformly.
type Timings struct {
	Tick time.Duration

	WordReveal int
	Bidding    int
	Describing int
	Voting     int
	Results    int

	BidIdle     time.Duration
	BidIdlePoll time.Duration

	CategoryReveal int
	Countdown      int
	Typing         int
	Locked         int
	Scoring        int

	RevealStep time.Duration
	// RevealLimit caps the whole reveal; a long queue is shown faster.
	RevealLimit time.Duration
}

func DefaultTimings() Timings {
	return Timings{
		Tick: time.Second,

		WordReveal: 3,
		Bidding:    30,
		Describing: 20,
		Voting:     15,
		Results:    5,

		BidIdle:     5 * time.Second,
		BidIdlePoll: 500 * time.Millisecond,

		CategoryReveal: 3,
		Countdown:      3,
		Typing:         10,
		Locked:         1,
		Scoring:        3,

		RevealStep:  1500 * time.Millisecond,
		RevealLimit: 45 * time.Second,
	}
}

// WithTick rescales the wall-clock durations so they keep their ratio to
// the tick.
func (t Timings) WithTick(tick time.Duration) Timings {
	if tick <= 0 || t.Tick <= 0 || tick == t.Tick {
		return t
	}

	scale := func(d time.Duration) time.Duration {
		return time.Duration(float64(d) * float64(tick) / float64(t.Tick))
	}

	t.BidIdle = scale(t.BidIdle)
	t.BidIdlePoll = scale(t.BidIdlePoll)
	t.RevealStep = scale(t.RevealStep)
	t.RevealLimit = scale(t.RevealLimit)
	t.Tick = tick

	return t
}

// RevealInterval is the gap between reveals for a queue of n answers.
func (t Timings) RevealInterval(n int) time.Duration {
	if n <= 0 || t.RevealLimit <= 0 || t.RevealStep*time.Duration(n) <= t.RevealLimit {
		return t.RevealStep
	}
	return t.RevealLimit / time.Duration(n)
}

// Policy collects the scoring choices that are product decisions rather
// than rules of arithmetic.
type Policy struct {
	// TieGoesToDescriber counts an even vote as a success.
	TieGoesToDescriber bool
	// OpeningBid is the ceiling the first bid has to undercut.
	OpeningBid int
	Score      ScoreRules
}

func DefaultPolicy() Policy {
	return Policy{
		TieGoesToDescriber: true,
		OpeningBid:         MaxBid,
		Score:              DefaultScoreRules(),
	}
}

// Options configure every room a Registry creates.
type Options struct {
	MaxPlayers  int
	Timings     Timings
	Policy      Policy
	Words       *Pool
	Categories  *Pool
	IdleTimeout time.Duration
	Logger      zerolog.Logger
}

func (o Options) withDefaults() Options {
	if o.MaxPlayers <= 0 {
		o.MaxPlayers = DefaultMaxPlayers
	}
	if o.Timings.Tick <= 0 {
		o.Timings = DefaultTimings()
	}
	if o.Policy.OpeningBid <= 0 {
		o.Policy = DefaultPolicy()
	}
	if o.Words == nil {
		o.Words = Words()
	}
	if o.Categories == nil {
		o.Categories = Categories()
	}
	return o
}
