/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package games

import (
	"cmp"
	"slices"
)

const (
	MinBid = 1
	MaxBid = 5

	// FailurePenalty is applied to a describer whose description was voted
	// down, whatever the bid.
	FailurePenalty = -2
)

var bidPoints = map[int]int{
	5: 1,
	4: 2,
	3: 3,
	2: 4,
	1: 5,
}

// PointsForBid is what a successful description of the given length earns.
// Word counts outside the table are worth nothing.
func PointsForBid(words int) int {
	return bidPoints[words]
}

// BidPoints scores one auction round.
func BidPoints(words int, success bool) int {
	if !success {
		return FailurePenalty
	}
	return PointsForBid(words)
}

// Winners returns every player id holding the top score, sorted. An empty
// score map has no winners.
func Winners(scores map[string]int) []string {
	if len(scores) == 0 {
		return nil
	}

	best := 0
	first := true
	for _, s := range scores {
		if first || s > best {
			best = s
			first = false
		}
	}

	var winners []string
	for id, s := range scores {
		if s == best {
			winners = append(winners, id)
		}
	}
	slices.Sort(winners)

	return winners
}

// Standing is one row of a final scoreboard.
type Standing struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Score int    `json:"score"`
	Color string `json:"color"`
}

// scoreboard orders players by score, highest first; ties keep join order.
func scoreboard(players []Player) []Standing {
	out := make([]Standing, 0, len(players))
	for _, p := range players {
		out = append(out, Standing{ID: p.ID, Name: p.Name, Score: p.Score, Color: p.Color})
	}
	slices.SortStableFunc(out, func(a, b Standing) int {
		return cmp.Compare(b.Score, a.Score)
	})
	return out
}
