/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package games

import (
	"errors"
	"fmt"
)

var (
	ErrRoomNotFound        = errors.New("room not found")
	ErrRoomFull            = errors.New("room is full")
	ErrGameInProgress      = errors.New("game has already started")
	ErrNotEnoughPlayers    = errors.New("not enough players to start")
	ErrWrongPhase          = errors.New("action not allowed in this phase")
	ErrNotAuthorized       = errors.New("not allowed to do that")
	ErrInvalidBid          = errors.New("invalid bid")
	ErrWordBudgetExceeded  = errors.New("too many words")
	ErrAlreadyInRoom       = errors.New("already connected to a room")
	ErrUnknownAction       = errors.New("unknown action")
	ErrBidTooHigh          = fmt.Errorf("%w: must be lower than the current bid", ErrInvalidBid)
	ErrBidOutOfRange       = fmt.Errorf("%w: must be between %d and %d", ErrInvalidBid, MinBid, MaxBid)
	errNoDescriptionWanted = fmt.Errorf("%w: only the lowest bidder can describe", ErrNotAuthorized)
)

var errorCodes = []struct {
	err  error
	code string
}{
	{ErrRoomNotFound, "ROOM_NOT_FOUND"},
	{ErrRoomFull, "ROOM_FULL"},
	{ErrGameInProgress, "GAME_IN_PROGRESS"},
	{ErrNotEnoughPlayers, "NOT_ENOUGH_PLAYERS"},
	{ErrWrongPhase, "WRONG_PHASE"},
	{ErrNotAuthorized, "NOT_AUTHORIZED"},
	{ErrInvalidBid, "INVALID_BID"},
	{ErrWordBudgetExceeded, "WORD_BUDGET_EXCEEDED"},
	{ErrAlreadyInRoom, "ALREADY_IN_ROOM"},
	{ErrUnknownAction, "UNKNOWN_ACTION"},
}

// ErrorCode returns the wire code for err, or "ERROR" for anything outside
// the engine's taxonomy.
func ErrorCode(err error) string {
	for _, e := range errorCodes {
		if errors.Is(err, e.err) {
			return e.code
		}
	}
	return "ERROR"
}
