/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package games

import (
	"strconv"
	"strings"
)

const (
	DefaultMaxPlayers = 6
	MinPlayers        = 2
	MaxNameLength     = 20
)

var playerColors = []string{
	"#7C3AED",
	"#EC4899",
	"#FBBF24",
	"#84CC16",
	"#3B82F6",
	"#F97316",
}

// Player is the public view of one seat in a room.
type Player struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Score  int    `json:"score"`
	Color  string `json:"color"`
	IsHost bool   `json:"isHost"`
}

type seat struct {
	id    string
	name  string
	color string
}

// Room is the state shared by every variant: roster, host, phase, round
// counters, scores and content history. It is not safe for concurrent
// use; Session serializes access.
type Room struct {
	code        string
	variant     Variant
	maxPlayers  int
	phase       Phase
	seats       map[string]*seat
	order       []string
	hostID      string
	round       int
	totalRounds int
	scores      map[string]int
	used        map[string]struct{}
	joined      int
}

func newRoom(code string, variant Variant, maxPlayers int) *Room {
	if maxPlayers <= 0 {
		maxPlayers = DefaultMaxPlayers
	}
	return &Room{
		code:        code,
		variant:     variant,
		maxPlayers:  maxPlayers,
		phase:       PhaseLobby,
		seats:       make(map[string]*seat),
		scores:      make(map[string]int),
		used:        make(map[string]struct{}),
		totalRounds: variant.Rounds(LengthStandard),
	}
}

func (r *Room) Code() string { return r.code }

func (r *Room) Variant() Variant { return r.variant }

func (r *Room) Phase() Phase { return r.phase }

func (r *Room) HostID() string { return r.hostID }

func (r *Room) Round() int { return r.round }

func (r *Room) TotalRounds() int { return r.totalRounds }

func (r *Room) PlayerCount() int { return len(r.order) }

// IsGameOver reports whether the last round has been played.
func (r *Room) IsGameOver() bool { return r.round >= r.totalRounds }

func (r *Room) setPhase(p Phase) { r.phase = p }

func (r *Room) has(id string) bool {
	_, ok := r.seats[id]
	return ok
}

func cleanName(name string, fallback int) string {
	name = strings.Join(strings.Fields(name), " ")
	if runes := []rune(name); len(runes) > MaxNameLength {
		name = string(runes[:MaxNameLength])
	}
	if name == "" {
		name = "Player " + strconv.Itoa(fallback)
	}
	return name
}

// AddPlayer seats a new player. The first player becomes host.
func (r *Room) AddPlayer(id, name string) (Player, error) {
	if len(r.order) >= r.maxPlayers {
		return Player{}, ErrRoomFull
	}
	if r.phase != PhaseLobby {
		return Player{}, ErrGameInProgress
	}

	s := &seat{
		id:    id,
		name:  cleanName(name, r.joined+1),
		color: playerColors[r.joined%len(playerColors)],
	}
	r.joined++

	r.seats[id] = s
	r.order = append(r.order, id)
	r.scores[id] = 0
	if r.hostID == "" {
		r.hostID = id
	}

	return r.player(id), nil
}

// RemovePlayer drops a player and hands the host role to the oldest
// remaining player when needed. It reports whether anyone was removed.
func (r *Room) RemovePlayer(id string) bool {
	if !r.has(id) {
		return false
	}

	delete(r.seats, id)
	delete(r.scores, id)
	for i, pid := range r.order {
		if pid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}

	if r.hostID == id {
		r.hostID = ""
		if len(r.order) > 0 {
			r.hostID = r.order[0]
		}
	}

	return true
}

func (r *Room) player(id string) Player {
	s := r.seats[id]
	if s == nil {
		return Player{}
	}
	return Player{
		ID:     s.id,
		Name:   s.name,
		Score:  r.scores[id],
		Color:  s.color,
		IsHost: id == r.hostID,
	}
}

// Name returns a player's display name, or "" for unknown ids.
func (r *Room) Name(id string) string {
	if s := r.seats[id]; s != nil {
		return s.name
	}
	return ""
}

// Players lists the roster in join order.
func (r *Room) Players() []Player {
	out := make([]Player, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.player(id))
	}
	return out
}

func (r *Room) Scores() map[string]int {
	out := make(map[string]int, len(r.scores))
	for id, s := range r.scores {
		out[id] = s
	}
	return out
}

func (r *Room) addScore(id string, delta int) int {
	if !r.has(id) {
		return 0
	}
	r.scores[id] += delta
	return r.scores[id]
}

// Winners returns the top scorers in join order.
func (r *Room) Winners() []Player {
	top := make(map[string]struct{})
	for _, id := range Winners(r.scores) {
		top[id] = struct{}{}
	}

	var out []Player
	for _, id := range r.order {
		if _, ok := top[id]; ok {
			out = append(out, r.player(id))
		}
	}
	return out
}

func (r *Room) markUsed(item string) {
	r.used[item] = struct{}{}
}

// begin checks the start guards and resets the per-game counters.
func (r *Room) begin(rounds int) error {
	switch {
	case r.phase.InRound():
		return ErrGameInProgress
	case r.phase != PhaseLobby:
		return ErrWrongPhase
	}
	if len(r.order) < MinPlayers {
		return ErrNotEnoughPlayers
	}

	r.round = 0
	r.totalRounds = rounds
	r.used = make(map[string]struct{})
	for id := range r.scores {
		r.scores[id] = 0
	}

	return nil
}

// nextRound advances the round counter.
func (r *Room) nextRound() int {
	r.round++
	return r.round
}

// reset returns to the lobby keeping the roster.
func (r *Room) reset() {
	r.phase = PhaseLobby
	r.round = 0
	r.used = make(map[string]struct{})
	for id := range r.scores {
		r.scores[id] = 0
	}
}
