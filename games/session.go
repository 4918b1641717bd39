/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package games

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// game is the variant half of a session. Methods run with the session
// lock held.
type game interface {
	start(s *Session, settings Settings) error
	act(s *Session, playerID string, a Action) error
	left(s *Session, playerID string)
	reset()
	view() any
}

// State is the public projection of a room, safe to send to anyone.
type State struct {
	RoomCode     string         `json:"roomCode"`
	Variant      Variant        `json:"variant"`
	Phase        Phase          `json:"phase"`
	Players      []Player       `json:"players"`
	HostID       string         `json:"hostId"`
	CurrentRound int            `json:"currentRound"`
	TotalRounds  int            `json:"totalRounds"`
	Timer        int            `json:"timer"`
	Scores       map[string]int `json:"scores"`
	Round        any            `json:"round,omitempty"`
}

// Session is one live room: its state machine, its timers and the
// endpoints subscribed to it. All mutation happens under mu.
type Session struct {
	mu sync.Mutex

	room     *Room
	game     game
	sched    *Scheduler
	timings  Timings
	log      zerolog.Logger
	players  map[string]Sender
	displays map[Sender]struct{}

	createdAt  time.Time
	lastActive time.Time
	closed     bool
}

func newSession(code string, variant Variant, opts Options) *Session {
	now := time.Now()
	s := &Session{
		room:       newRoom(code, variant, opts.MaxPlayers),
		timings:    opts.Timings,
		log:        opts.Logger.With().Str("room", code).Str("game", string(variant)).Logger(),
		players:    make(map[string]Sender),
		displays:   make(map[Sender]struct{}),
		createdAt:  now,
		lastActive: now,
	}
	s.sched = newScheduler(&s.mu, opts.Timings.Tick)

	switch variant {
	case VariantAuction:
		s.game = newAuction(s.room, opts.Words, opts.Policy, opts.Timings)
	default:
		s.game = newQuickThink(s.room, opts.Categories, opts.Policy.Score, opts.Timings)
	}

	return s
}

func (s *Session) Code() string {
	return s.room.Code()
}

func (s *Session) Variant() Variant {
	return s.room.Variant()
}

func (s *Session) CreatedAt() time.Time {
	return s.createdAt
}

func (s *Session) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}

// State returns the current public snapshot.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state()
}

func (s *Session) state() State {
	return State{
		RoomCode:     s.room.Code(),
		Variant:      s.room.Variant(),
		Phase:        s.room.Phase(),
		Players:      s.room.Players(),
		HostID:       s.room.HostID(),
		CurrentRound: s.room.Round(),
		TotalRounds:  s.room.TotalRounds(),
		Timer:        s.sched.Remaining(),
		Scores:       s.room.Scores(),
		Round:        s.game.view(),
	}
}

func (s *Session) touch() {
	s.lastActive = time.Now()
}

// Watch subscribes a display endpoint and sends it the current state.
func (s *Session) Watch(d Sender) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrRoomNotFound
	}
	s.touch()
	s.displays[d] = struct{}{}
	d.Send(Message{Type: MsgGameState, Payload: s.state()})

	return nil
}

// Unwatch drops a display and reports whether the room is now empty.
func (s *Session) Unwatch(d Sender) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.displays, d)
	return s.emptyLocked()
}

// Join seats a new player whose messages go to to.
func (s *Session) Join(name string, to Sender) (Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return Player{}, ErrRoomNotFound
	}
	s.touch()

	p, err := s.room.AddPlayer(uuid.NewString(), name)
	if err != nil {
		return Player{}, err
	}
	s.players[p.ID] = to

	s.log.Info().Str("player", p.Name).Msg("player joined")

	s.sendTo(p.ID, MsgJoined, JoinedPayload{
		PlayerID:   p.ID,
		PlayerName: p.Name,
		RoomCode:   s.room.Code(),
		Color:      p.Color,
		IsHost:     p.IsHost,
	})
	s.broadcast(MsgPlayerJoined, RosterPayload{
		PlayerID:   p.ID,
		PlayerName: p.Name,
		Players:    s.room.Players(),
	})
	s.sendState()

	return p, nil
}

// Leave removes a player and reports whether the room is now empty.
func (s *Session) Leave(playerID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.players, playerID)
	name := s.room.Name(playerID)
	if !s.room.RemovePlayer(playerID) {
		return s.emptyLocked()
	}
	s.touch()

	s.log.Info().Str("player", name).Msg("player left")

	s.broadcast(MsgPlayerLeft, RosterPayload{
		PlayerID:   playerID,
		PlayerName: name,
		Players:    s.room.Players(),
	})

	if s.room.Phase().InRound() && s.room.PlayerCount() < MinPlayers {
		s.gameOver()
	} else {
		s.game.left(s, playerID)
	}
	s.sendState()

	return s.emptyLocked()
}

func (s *Session) emptyLocked() bool {
	return len(s.players) == 0 && len(s.displays) == 0 && s.room.PlayerCount() == 0
}

// Act applies one player or display action. Displays pass an empty
// playerID and may only use host actions.
func (s *Session) Act(playerID string, display bool, a Action) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrRoomNotFound
	}
	s.touch()

	switch a := a.(type) {
	case StartGame:
		if !display && playerID != s.room.HostID() {
			return ErrNotAuthorized
		}
		if err := s.game.start(s, a.Settings); err != nil {
			return err
		}
		s.log.Info().Int("rounds", s.room.TotalRounds()).Msg("game started")
		return nil

	case Restart:
		if !display && playerID != s.room.HostID() {
			return ErrNotAuthorized
		}
		s.restart()
		return nil

	case CreateRoom, WatchRoom, Join:
		return ErrAlreadyInRoom

	case PlaceBid, SubmitDescription, CastVote, SubmitAnswer:
		if display || !s.room.has(playerID) {
			return ErrNotAuthorized
		}
		return s.game.act(s, playerID, a)

	default:
		return ErrUnknownAction
	}
}

// Close stops the timers and disconnects every endpoint.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	s.sched.Stop()

	for id, to := range s.players {
		if to != nil {
			to.Close()
		}
		delete(s.players, id)
	}
	for d := range s.displays {
		d.Close()
		delete(s.displays, d)
	}
}

func (s *Session) restart() {
	s.sched.Cancel()
	s.room.reset()
	s.game.reset()

	s.log.Info().Msg("game restarted")

	s.broadcast(MsgGameRestarted, s.state())
	s.sendState()
}

// enter switches phase. Callers start the phase's timer next and then
// announce it.
func (s *Session) enter(p Phase) {
	s.room.setPhase(p)
	s.touch()
	s.log.Debug().Str("phase", p.String()).Int("round", s.room.Round()).Msg("phase change")
}

func (s *Session) announce(content string) {
	s.broadcast(MsgPhaseChange, PhasePayload{
		Phase:       s.room.Phase(),
		Round:       s.room.Round(),
		TotalRounds: s.room.TotalRounds(),
		Timer:       s.sched.Remaining(),
		Content:     content,
	})
	s.sendState()
}

func (s *Session) countdown(ticks int, expire func()) {
	s.sched.Countdown(ticks, func(remaining int) {
		s.broadcast(MsgTimer, TimerPayload{Remaining: remaining})
	}, expire)
}

func (s *Session) gameOver() {
	s.sched.Cancel()
	s.enter(PhaseGameOver)

	winners := s.room.Winners()
	s.log.Info().Int("winners", len(winners)).Msg("game over")

	s.broadcast(MsgGameOver, GameOverPayload{
		Winners:    winners,
		Scoreboard: scoreboard(s.room.Players()),
		Scores:     s.room.Scores(),
	})
	s.announce("")
}

func (s *Session) broadcast(msgType string, payload any) {
	msg := Message{Type: msgType, Payload: payload}
	for _, to := range s.players {
		if to != nil {
			to.Send(msg)
		}
	}
	for d := range s.displays {
		d.Send(msg)
	}
}

func (s *Session) broadcastExcept(skip string, msgType string, payload any) {
	msg := Message{Type: msgType, Payload: payload}
	for id, to := range s.players {
		if id != skip && to != nil {
			to.Send(msg)
		}
	}
	for d := range s.displays {
		d.Send(msg)
	}
}

func (s *Session) sendTo(playerID, msgType string, payload any) {
	if to := s.players[playerID]; to != nil {
		to.Send(Message{Type: msgType, Payload: payload})
	}
}

func (s *Session) sendState() {
	s.broadcast(MsgGameState, s.state())
}
