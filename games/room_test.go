/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package games

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seatPlayers(t *testing.T, r *Room, names ...string) []Player {
	t.Helper()

	players := make([]Player, 0, len(names))
	for _, name := range names {
		p, err := r.AddPlayer("id-"+strings.ToLower(name), name)
		require.NoError(t, err)
		players = append(players, p)
	}
	return players
}

func TestRoomFirstPlayerIsHost(t *testing.T) {
	r := newRoom("ABCD", VariantAuction, 0)
	players := seatPlayers(t, r, "Ann", "Bob", "Cat")

	assert.True(t, players[0].IsHost)
	assert.False(t, players[1].IsHost)
	assert.Equal(t, players[0].ID, r.HostID())
	assert.Equal(t, playerColors[0], players[0].Color)
	assert.Equal(t, playerColors[2], players[2].Color)
}

func TestRoomHostReassignedOnLeave(t *testing.T) {
	r := newRoom("ABCD", VariantAuction, 0)
	players := seatPlayers(t, r, "Ann", "Bob", "Cat")

	require.True(t, r.RemovePlayer(players[0].ID))
	assert.Equal(t, players[1].ID, r.HostID())
	assert.Equal(t, 2, r.PlayerCount())

	require.True(t, r.RemovePlayer(players[1].ID))
	require.True(t, r.RemovePlayer(players[2].ID))
	assert.Empty(t, r.HostID())

	assert.False(t, r.RemovePlayer("missing"))
}

func TestRoomFull(t *testing.T) {
	r := newRoom("ABCD", VariantAuction, 2)
	seatPlayers(t, r, "Ann", "Bob")

	_, err := r.AddPlayer("id-cat", "Cat")
	assert.ErrorIs(t, err, ErrRoomFull)
}

func TestRoomRejectsJoinDuringGame(t *testing.T) {
	r := newRoom("ABCD", VariantAuction, 0)
	seatPlayers(t, r, "Ann", "Bob")

	require.NoError(t, r.begin(3))
	r.setPhase(PhaseBidding)

	_, err := r.AddPlayer("id-cat", "Cat")
	assert.ErrorIs(t, err, ErrGameInProgress)
}

func TestRoomNames(t *testing.T) {
	r := newRoom("ABCD", VariantQuickThink, 0)

	p, err := r.AddPlayer("a", "   ")
	require.NoError(t, err)
	assert.Equal(t, "Player 1", p.Name)

	p, err = r.AddPlayer("b", "  Mary    Jane  ")
	require.NoError(t, err)
	assert.Equal(t, "Mary Jane", p.Name)

	p, err = r.AddPlayer("c", strings.Repeat("x", 40))
	require.NoError(t, err)
	assert.Len(t, p.Name, MaxNameLength)

	assert.Equal(t, "Mary Jane", r.Name("b"))
	assert.Empty(t, r.Name("missing"))
}

func TestRoomBeginGuards(t *testing.T) {
	r := newRoom("ABCD", VariantAuction, 0)
	seatPlayers(t, r, "Ann")

	assert.ErrorIs(t, r.begin(5), ErrNotEnoughPlayers)

	seatPlayers(t, r, "Bob")
	require.NoError(t, r.begin(5))
	assert.Equal(t, 5, r.TotalRounds())

	r.setPhase(PhaseVoting)
	assert.ErrorIs(t, r.begin(5), ErrGameInProgress)

	r.setPhase(PhaseGameOver)
	assert.ErrorIs(t, r.begin(5), ErrWrongPhase)
}

func TestRoomResetKeepsRoster(t *testing.T) {
	r := newRoom("ABCD", VariantAuction, 0)
	players := seatPlayers(t, r, "Ann", "Bob")

	require.NoError(t, r.begin(5))
	r.nextRound()
	r.addScore(players[0].ID, 4)
	r.markUsed("CAT")
	r.setPhase(PhaseGameOver)

	r.reset()

	assert.Equal(t, PhaseLobby, r.Phase())
	assert.Equal(t, 0, r.Round())
	assert.Equal(t, 2, r.PlayerCount())
	assert.Equal(t, map[string]int{players[0].ID: 0, players[1].ID: 0}, r.Scores())
	assert.Empty(t, r.used)
}

func TestRoomWinnersInJoinOrder(t *testing.T) {
	r := newRoom("ABCD", VariantAuction, 0)
	players := seatPlayers(t, r, "Zed", "Amy", "Bob")

	r.addScore(players[0].ID, 3)
	r.addScore(players[1].ID, 3)
	r.addScore(players[2].ID, 1)

	winners := r.Winners()
	require.Len(t, winners, 2)
	assert.Equal(t, "Zed", winners[0].Name)
	assert.Equal(t, "Amy", winners[1].Name)

	assert.Equal(t, 0, r.addScore("missing", 5))
}
