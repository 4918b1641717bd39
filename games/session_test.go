/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package games

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder is a Sender that keeps everything it is sent.
type recorder struct {
	mu     sync.Mutex
	msgs   []Message
	closed bool
}

func (r *recorder) Send(m Message) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, m)
}

func (r *recorder) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
}

func (r *recorder) count(msgType string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for _, m := range r.msgs {
		if m.Type == msgType {
			n++
		}
	}
	return n
}

func (r *recorder) last(msgType string) (Message, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := len(r.msgs) - 1; i >= 0; i-- {
		if r.msgs[i].Type == msgType {
			return r.msgs[i], true
		}
	}
	return Message{}, false
}

func (r *recorder) isClosed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closed
}

// fastTimings runs a whole game in well under a second.
func fastTimings() Timings {
	return DefaultTimings().WithTick(time.Millisecond)
}

// slowTimings parks every countdown so tests can drive the phases.
func slowTimings() Timings {
	t := DefaultTimings().WithTick(time.Millisecond)
	t.Bidding = 100000
	t.Describing = 100000
	t.Voting = 100000
	t.Results = 100000
	t.Typing = 100000
	return t
}

type seated struct {
	player Player
	to     *recorder
}

func newTestSession(t *testing.T, variant Variant, timings Timings, names ...string) (*Session, []seated) {
	t.Helper()

	s := newSession("TEST", variant, Options{Timings: timings}.withDefaults())
	t.Cleanup(s.Close)

	var out []seated
	for _, name := range names {
		to := &recorder{}
		p, err := s.Join(name, to)
		require.NoError(t, err)
		out = append(out, seated{player: p, to: to})
	}
	return s, out
}

func waitPhase(t *testing.T, s *Session, want Phase) {
	t.Helper()
	require.Eventually(t, func() bool { return s.State().Phase == want },
		2*time.Second, time.Millisecond, "never reached %s (at %s)", want, s.State().Phase)
}

func TestSessionJoinAnnounces(t *testing.T) {
	s, ps := newTestSession(t, VariantAuction, slowTimings(), "Ann", "Bob")

	msg, ok := ps[0].to.last(MsgJoined)
	require.True(t, ok)
	joined := msg.Payload.(JoinedPayload)
	assert.Equal(t, "TEST", joined.RoomCode)
	assert.True(t, joined.IsHost)

	msg, ok = ps[0].to.last(MsgPlayerJoined)
	require.True(t, ok)
	assert.Len(t, msg.Payload.(RosterPayload).Players, 2)

	assert.Equal(t, 2, ps[0].to.count(MsgPlayerJoined))
	assert.Equal(t, 1, ps[1].to.count(MsgPlayerJoined), "Bob sees only his own arrival")
	assert.Equal(t, ps[0].player.ID, s.State().HostID)
}

func TestSessionStartGuards(t *testing.T) {
	s, ps := newTestSession(t, VariantAuction, slowTimings(), "Ann")

	assert.ErrorIs(t, s.Act(ps[0].player.ID, false, StartGame{}), ErrNotEnoughPlayers)

	bob := &recorder{}
	p, err := s.Join("Bob", bob)
	require.NoError(t, err)

	assert.ErrorIs(t, s.Act(p.ID, false, StartGame{}), ErrNotAuthorized)
	assert.ErrorIs(t, s.Act(p.ID, false, Join{Code: "TEST"}), ErrAlreadyInRoom)
	assert.ErrorIs(t, s.Act("", true, PlaceBid{Words: 3}), ErrNotAuthorized)

	require.NoError(t, s.Act("", true, StartGame{Settings: Settings{GameLength: LengthQuick}}), "displays may start")
	assert.Equal(t, 1, bob.count(MsgGameStarted))

	_, err = s.Join("Cat", &recorder{})
	assert.ErrorIs(t, err, ErrGameInProgress)
}

func TestSessionAuctionRound(t *testing.T) {
	s, ps := newTestSession(t, VariantAuction, slowTimings(), "Ann", "Bob", "Cat")
	ann, bob, cat := ps[0], ps[1], ps[2]

	require.NoError(t, s.Act(ann.player.ID, false, StartGame{}))
	waitPhase(t, s, PhaseBidding)

	require.NoError(t, s.Act(bob.player.ID, false, PlaceBid{Words: 2}))
	assert.Equal(t, 1, ann.to.count(MsgBidPlaced))

	// The idle watchdog closes bidding after the idle window.
	waitPhase(t, s, PhaseDescribing)

	assert.ErrorIs(t, s.Act(ann.player.ID, false, SubmitDescription{Text: "feline"}), ErrNotAuthorized)
	assert.ErrorIs(t, s.Act(bob.player.ID, false, SubmitDescription{Text: "small furry pet"}), ErrWordBudgetExceeded)
	require.NoError(t, s.Act(bob.player.ID, false, SubmitDescription{Text: "furry pet"}))
	assert.Equal(t, PhaseVoting, s.State().Phase, "a valid description ends describing early")

	require.NoError(t, s.Act(ann.player.ID, false, CastVote{Success: true}))
	assert.Equal(t, PhaseVoting, s.State().Phase)
	require.NoError(t, s.Act(cat.player.ID, false, CastVote{Success: false}))
	assert.Equal(t, PhaseScoring, s.State().Phase, "the last vote ends voting early")

	msg, ok := cat.to.last(MsgRoundResults)
	require.True(t, ok)
	res := msg.Payload.(AuctionResult)
	assert.True(t, res.Success, "ties go to the describer")
	assert.Equal(t, 4, res.Points)
	assert.Equal(t, 4, s.State().Scores[bob.player.ID])
}

func TestSessionVoterLeavingFinishesVoting(t *testing.T) {
	s, ps := newTestSession(t, VariantAuction, slowTimings(), "Ann", "Bob", "Cat")
	ann, bob, cat := ps[0], ps[1], ps[2]

	require.NoError(t, s.Act(ann.player.ID, false, StartGame{}))
	waitPhase(t, s, PhaseBidding)
	require.NoError(t, s.Act(bob.player.ID, false, PlaceBid{Words: 4}))
	waitPhase(t, s, PhaseDescribing)
	require.NoError(t, s.Act(bob.player.ID, false, SubmitDescription{Text: "a furry pet"}))

	require.NoError(t, s.Act(ann.player.ID, false, CastVote{Success: true}))
	assert.Equal(t, PhaseVoting, s.State().Phase)

	assert.False(t, s.Leave(cat.player.ID))
	assert.Equal(t, PhaseScoring, s.State().Phase)

	msg, ok := bob.to.last(MsgPlayerLeft)
	require.True(t, ok)
	assert.Equal(t, cat.player.ID, msg.Payload.(RosterPayload).PlayerID)
}

func TestSessionVotingTimerForcesResults(t *testing.T) {
	timings := slowTimings()
	timings.Describing = 5
	timings.Voting = 500

	s, ps := newTestSession(t, VariantAuction, timings, "Ann", "Bob", "Cat", "Dan")
	ann, bob, cat, dan := ps[0], ps[1], ps[2], ps[3]

	require.NoError(t, s.Act(ann.player.ID, false, StartGame{}))
	waitPhase(t, s, PhaseBidding)
	require.NoError(t, s.Act(bob.player.ID, false, PlaceBid{Words: 3}))

	// Bob never describes, so the describing timer runs out.
	waitPhase(t, s, PhaseVoting)
	assert.Equal(t, noDescription, s.State().Round.(AuctionView).Description)

	require.NoError(t, s.Act(ann.player.ID, false, CastVote{Success: true}))
	require.NoError(t, s.Act(cat.player.ID, false, CastVote{Success: false}))
	assert.False(t, s.Leave(ann.player.ID))
	assert.Equal(t, PhaseVoting, s.State().Phase, "Dan has not voted yet")

	waitPhase(t, s, PhaseScoring)

	msg, ok := dan.to.last(MsgRoundResults)
	require.True(t, ok)
	res := msg.Payload.(AuctionResult)
	assert.Equal(t, noDescription, res.Description)
	assert.Equal(t, 1, res.SuccessVotes)
	assert.Equal(t, 1, res.FailVotes)
	assert.True(t, res.Success, "ties go to the describer")
	assert.Equal(t, 3, s.State().Scores[bob.player.ID])
}

func TestSessionDescriberLeavingVoidsRound(t *testing.T) {
	s, ps := newTestSession(t, VariantAuction, slowTimings(), "Ann", "Bob", "Cat")
	ann, bob := ps[0], ps[1]

	require.NoError(t, s.Act(ann.player.ID, false, StartGame{}))
	waitPhase(t, s, PhaseBidding)
	require.NoError(t, s.Act(bob.player.ID, false, PlaceBid{Words: 3}))
	waitPhase(t, s, PhaseDescribing)

	s.Leave(bob.player.ID)

	st := s.State()
	assert.Contains(t, []Phase{PhaseContentReveal, PhaseBidding}, st.Phase)
	assert.Equal(t, 2, st.CurrentRound)
	assert.Equal(t, 0, ann.to.count(MsgRoundResults))
}

func TestSessionTooFewPlayersEndsGame(t *testing.T) {
	s, ps := newTestSession(t, VariantAuction, slowTimings(), "Ann", "Bob")

	require.NoError(t, s.Act(ps[0].player.ID, false, StartGame{}))
	waitPhase(t, s, PhaseBidding)

	s.Leave(ps[1].player.ID)
	assert.Equal(t, PhaseGameOver, s.State().Phase)

	msg, ok := ps[0].to.last(MsgGameOver)
	require.True(t, ok)
	over := msg.Payload.(GameOverPayload)
	require.Len(t, over.Winners, 1)
	assert.Equal(t, "Ann", over.Winners[0].Name)
}

func TestSessionRestartCancelsTimers(t *testing.T) {
	s, ps := newTestSession(t, VariantAuction, fastTimings(), "Ann", "Bob")
	display := &recorder{}
	require.NoError(t, s.Watch(display))

	require.NoError(t, s.Act(ps[0].player.ID, false, StartGame{}))
	waitPhase(t, s, PhaseBidding)

	assert.ErrorIs(t, s.Act(ps[1].player.ID, false, Restart{}), ErrNotAuthorized)
	require.NoError(t, s.Act("", true, Restart{}))

	st := s.State()
	assert.Equal(t, PhaseLobby, st.Phase)
	assert.Equal(t, 0, st.CurrentRound)
	assert.Len(t, st.Players, 2)
	assert.Equal(t, 1, display.count(MsgGameRestarted))

	assert.Never(t, func() bool { return s.State().Phase != PhaseLobby }, 50*time.Millisecond, time.Millisecond)
}

func TestSessionAuctionPlaysToGameOver(t *testing.T) {
	s, ps := newTestSession(t, VariantAuction, fastTimings(), "Ann", "Bob")

	require.NoError(t, s.Act(ps[0].player.ID, false, StartGame{Settings: Settings{GameLength: LengthQuick}}))
	waitPhase(t, s, PhaseGameOver)

	// Nobody bid, so every round was skipped.
	assert.Equal(t, 0, ps[0].to.count(MsgRoundResults))
	assert.Equal(t, 5, s.State().CurrentRound)
	assert.Positive(t, ps[1].to.count(MsgTimer))

	require.NoError(t, s.Act(ps[0].player.ID, false, Restart{}))
	require.NoError(t, s.Act(ps[0].player.ID, false, StartGame{}), "a restarted room can start again")
}

func TestSessionQuickThinkPlaysToGameOver(t *testing.T) {
	timings := DefaultTimings().WithTick(2 * time.Millisecond)
	timings.Typing = 100

	s, ps := newTestSession(t, VariantQuickThink, timings, "Ann", "Bob")
	ann, bob := ps[0], ps[1]

	require.NoError(t, s.Act(ann.player.ID, false, StartGame{Settings: Settings{GameLength: LengthQuick}}))
	waitPhase(t, s, PhaseActiveInput)

	require.NoError(t, s.Act(ann.player.ID, false, SubmitAnswer{Text: "spoon, kettle"}))
	require.NoError(t, s.Act(bob.player.ID, false, SubmitAnswer{Text: "Spoon"}))

	msg, ok := ann.to.last(MsgAnswerReceived)
	require.True(t, ok)
	assert.Equal(t, "spoon, kettle", msg.Payload.(AnswerPayload).Answer)
	assert.Equal(t, 1, ann.to.count(MsgPlayerSubmitted), "Ann hears about Bob's submission only")

	require.Eventually(t, func() bool { return ann.to.count(MsgRoundResults) == 1 }, 2*time.Second, time.Millisecond)
	assert.Equal(t, 3, ann.to.count(MsgRevealAnswer))

	msg, _ = ann.to.last(MsgRoundResults)
	scores := msg.Payload.(RoundScores)
	assert.Equal(t, 0, scores.Scores[ann.player.ID])
	assert.Equal(t, -1, scores.Scores[bob.player.ID])

	require.Eventually(t, func() bool { return s.State().Phase == PhaseGameOver }, 5*time.Second, time.Millisecond)

	msg, ok = bob.to.last(MsgGameOver)
	require.True(t, ok)
	over := msg.Payload.(GameOverPayload)
	assert.Equal(t, "Ann", over.Scoreboard[0].Name)
}

func TestSessionRevealFitsItsLimit(t *testing.T) {
	timings := DefaultTimings().WithTick(2 * time.Millisecond)
	timings.Typing = 100
	timings.Scoring = 100000
	timings.RevealStep = time.Hour
	timings.RevealLimit = 60 * time.Millisecond

	s, ps := newTestSession(t, VariantQuickThink, timings, "Ann", "Bob")
	ann, bob := ps[0], ps[1]

	require.NoError(t, s.Act(ann.player.ID, false, StartGame{}))
	waitPhase(t, s, PhaseActiveInput)
	require.NoError(t, s.Act(ann.player.ID, false, SubmitAnswer{Text: "spoon, kettle, ladle"}))
	require.NoError(t, s.Act(bob.player.ID, false, SubmitAnswer{Text: "whisk"}))

	waitPhase(t, s, PhaseScoring)
	assert.Equal(t, 4, ann.to.count(MsgRevealAnswer))
}

func TestSessionCloseDisconnectsEveryone(t *testing.T) {
	s, ps := newTestSession(t, VariantQuickThink, slowTimings(), "Ann")
	display := &recorder{}
	require.NoError(t, s.Watch(display))

	s.Close()

	assert.True(t, ps[0].to.isClosed())
	assert.True(t, display.isClosed())
	assert.ErrorIs(t, s.Watch(&recorder{}), ErrRoomNotFound)
	assert.ErrorIs(t, s.Act(ps[0].player.ID, false, StartGame{}), ErrRoomNotFound)
}

func TestSessionUnwatchReportsEmpty(t *testing.T) {
	s := newSession("TEST", VariantAuction, Options{}.withDefaults())
	t.Cleanup(s.Close)

	display := &recorder{}
	require.NoError(t, s.Watch(display))
	assert.True(t, s.Unwatch(display))
}
