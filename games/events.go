/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package games

// Action is an inbound client event. The set is closed: only types in
// this file implement it.
type Action interface {
	action() string
}

// CreateRoom opens a new room and subscribes the sender as its display.
type CreateRoom struct{}

// WatchRoom subscribes an extra display to an existing room.
type WatchRoom struct {
	Code string
}

// Join seats a new player.
type Join struct {
	Code string
	Name string
}

type StartGame struct {
	Settings Settings
}

type PlaceBid struct {
	Words int
}

type SubmitDescription struct {
	Text string
}

type CastVote struct {
	Success bool
}

type SubmitAnswer struct {
	Text string
}

// Restart returns a room to the lobby. Both RESTART_GAME and PLAY_AGAIN
// map here.
type Restart struct{}

func (CreateRoom) action() string        { return "CREATE_ROOM" }
func (WatchRoom) action() string         { return "TV_JOIN" }
func (Join) action() string              { return "JOIN" }
func (StartGame) action() string         { return "START_GAME" }
func (PlaceBid) action() string          { return "BID" }
func (SubmitDescription) action() string { return "SUBMIT_DESCRIPTION" }
func (CastVote) action() string          { return "VOTE" }
func (SubmitAnswer) action() string      { return "SUBMIT_ANSWER" }
func (Restart) action() string           { return "RESTART_GAME" }

// Kind returns the wire name of an action.
func Kind(a Action) string {
	if a == nil {
		return ""
	}
	return a.action()
}

// Outbound message types.
const (
	MsgRoomCreated          = "ROOM_CREATED"
	MsgJoined               = "JOINED"
	MsgGameState            = "GAME_STATE"
	MsgPlayerJoined         = "PLAYER_JOINED"
	MsgPlayerLeft           = "PLAYER_LEFT"
	MsgGameStarted          = "GAME_STARTED"
	MsgPhaseChange          = "PHASE_CHANGE"
	MsgTimer                = "TIMER"
	MsgBidPlaced            = "BID_PLACED"
	MsgDescriptionSubmitted = "DESCRIPTION_SUBMITTED"
	MsgVoteReceived         = "VOTE_RECEIVED"
	MsgRoundResults         = "ROUND_RESULTS"
	MsgAnswerReceived       = "ANSWER_RECEIVED"
	MsgPlayerSubmitted      = "PLAYER_SUBMITTED"
	MsgRevealAnswer         = "REVEAL_ANSWER"
	MsgGameOver             = "GAME_OVER"
	MsgGameRestarted        = "GAME_RESTARTED"
	MsgError                = "ERROR"
)

// Message is what gets written to an endpoint.
type Message struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// Sender is the transport's handle on one connected endpoint. Send must
// not block.
type Sender interface {
	Send(Message)
	Close()
}

type ErrorPayload struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

// ErrorMessage wraps err for the wire.
func ErrorMessage(err error) Message {
	return Message{
		Type: MsgError,
		Payload: ErrorPayload{
			Message: err.Error(),
			Code:    ErrorCode(err),
		},
	}
}

type TimerPayload struct {
	Remaining int `json:"remaining"`
}

type JoinedPayload struct {
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName"`
	RoomCode   string `json:"roomCode"`
	Color      string `json:"color"`
	IsHost     bool   `json:"isHost"`
}

type RosterPayload struct {
	PlayerID   string   `json:"playerId"`
	PlayerName string   `json:"playerName,omitempty"`
	Players    []Player `json:"players"`
}

type PhasePayload struct {
	Phase       Phase  `json:"phase"`
	Round       int    `json:"round"`
	TotalRounds int    `json:"totalRounds"`
	Timer       int    `json:"timer"`
	Content     string `json:"content,omitempty"`
}

type GameOverPayload struct {
	Winners    []Player       `json:"winners"`
	Scoreboard []Standing     `json:"scoreboard"`
	Scores     map[string]int `json:"finalScores"`
}
