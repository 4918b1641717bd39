/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package games

// Phase is a named state of a room's round lifecycle.
type Phase string

const (
	PhaseLobby         Phase = "LOBBY"
	PhaseContentReveal Phase = "CONTENT_REVEAL"
	PhaseCountdown     Phase = "COUNTDOWN"
	PhaseActiveInput   Phase = "ACTIVE_INPUT"
	PhaseBidding       Phase = "BIDDING"
	PhaseDescribing    Phase = "DESCRIBING"
	PhaseVoting        Phase = "VOTING"
	PhaseLocked        Phase = "LOCKED"
	PhaseReveal        Phase = "REVEAL"
	PhaseScoring       Phase = "SCORING"
	PhaseGameOver      Phase = "GAME_OVER"
)

func (p Phase) String() string {
	return string(p)
}

// InRound reports whether p belongs to a running game.
func (p Phase) InRound() bool {
	return p != PhaseLobby && p != PhaseGameOver
}

// Variant selects which ruleset a room plays.
type Variant string

const (
	VariantAuction    Variant = "auction"
	VariantQuickThink Variant = "quickthink"
)

func (v Variant) Valid() bool {
	return v == VariantAuction || v == VariantQuickThink
}

// Title is the display name used on pages and in logs.
func (v Variant) Title() string {
	switch v {
	case VariantAuction:
		return "Alias Auction"
	case VariantQuickThink:
		return "Quick Think"
	default:
		return string(v)
	}
}

// Settings are chosen by the host when starting a game.
type Settings struct {
	Difficulty string `json:"difficulty,omitempty"`
	GameLength string `json:"gameLength,omitempty"`
}

const (
	LengthQuick    = "quick"
	LengthStandard = "standard"
	LengthExtended = "extended"
)

var gameLengths = map[Variant]map[string]int{
	VariantAuction: {
		LengthQuick:    5,
		LengthStandard: 7,
		LengthExtended: 10,
	},
	VariantQuickThink: {
		LengthQuick:    5,
		LengthStandard: 10,
		LengthExtended: 15,
	},
}

// Rounds returns the number of rounds for a game length, falling back to
// the standard length for unknown names.
func (v Variant) Rounds(length string) int {
	lengths := gameLengths[v]
	if n, ok := lengths[length]; ok {
		return n
	}
	return lengths[LengthStandard]
}
