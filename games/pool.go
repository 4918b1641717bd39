/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package games

import (
	"math/rand/v2"
	"slices"
)

// Pool is a read-only set of round content split into tiers.
type Pool struct {
	tiers map[string][]string
	order []string
	def   string
}

// NewPool builds a pool whose tiers are visited in the given order. The
// first tier is the fallback for unknown tier names.
func NewPool(order []string, tiers map[string][]string) *Pool {
	p := &Pool{
		tiers: make(map[string][]string, len(tiers)),
	}
	for _, name := range order {
		items := tiers[name]
		if len(items) == 0 {
			continue
		}
		p.tiers[name] = slices.Clone(items)
		p.order = append(p.order, name)
	}
	if len(p.order) > 0 {
		p.def = p.order[0]
	}
	return p
}

// WithDefault changes the fallback tier.
func (p *Pool) WithDefault(tier string) *Pool {
	if _, ok := p.tiers[tier]; ok {
		p.def = tier
	}
	return p
}

func (p *Pool) Tiers() []string {
	return slices.Clone(p.order)
}

func (p *Pool) tier(name string) []string {
	if items, ok := p.tiers[name]; ok {
		return items
	}
	return p.tiers[p.def]
}

// Pick returns a random item from the tier that is not in used. When the
// whole tier has been used it falls back to any item from the tier.
func (p *Pool) Pick(tier string, used map[string]struct{}) string {
	items := p.tier(tier)
	if len(items) == 0 {
		return ""
	}

	fresh := make([]string, 0, len(items))
	for _, item := range items {
		if _, seen := used[item]; !seen {
			fresh = append(fresh, item)
		}
	}
	if len(fresh) == 0 {
		fresh = items
	}

	return fresh[rand.IntN(len(fresh))]
}

// Sequence builds n items for a whole game, drawing round-robin across
// tiers so consecutive rounds come from different tiers. Items repeat only
// once the pool is exhausted.
func (p *Pool) Sequence(n int, used map[string]struct{}) []string {
	if n <= 0 || len(p.order) == 0 {
		return nil
	}

	queues := make([][]string, len(p.order))
	for i, name := range p.order {
		q := slices.Clone(p.tiers[name])
		rand.Shuffle(len(q), func(a, b int) { q[a], q[b] = q[b], q[a] })
		queues[i] = slices.DeleteFunc(q, func(item string) bool {
			_, seen := used[item]
			return seen
		})
	}

	start := rand.IntN(len(queues))
	out := make([]string, 0, n)
	for len(out) < n {
		progressed := false
		for k := range queues {
			i := (start + k) % len(queues)
			if len(queues[i]) == 0 {
				continue
			}
			out = append(out, queues[i][0])
			queues[i] = queues[i][1:]
			progressed = true
			if len(out) == n {
				break
			}
		}
		if !progressed {
			// Everything has been used; refill ignoring history.
			return append(out, p.Sequence(n-len(out), nil)...)
		}
	}

	return out
}
