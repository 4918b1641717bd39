/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/Seednode/partyroom/games"
	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"golang.org/x/time/rate"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBuffer     = 64
)

var (
	errRateLimited = errors.New("too many messages, slow down")
	errMalformed   = errors.New("malformed message")
	errNotInRoom   = fmt.Errorf("%w: join or create a room first", games.ErrRoomNotFound)
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// client is one websocket endpoint. It is either a player seat or a
// display, never both, and is bound to at most one room.
type client struct {
	conn    *websocket.Conn
	send    chan games.Message
	done    chan struct{}
	once    sync.Once
	limiter *rate.Limiter
	base    string

	session  *games.Session
	playerID string
	display  bool
}

func newClient(cfg *Config, conn *websocket.Conn, base string) *client {
	return &client{
		conn:    conn,
		send:    make(chan games.Message, sendBuffer),
		done:    make(chan struct{}),
		limiter: rate.NewLimiter(rate.Limit(cfg.rateLimit), cfg.rateBurst),
		base:    base,
	}
}

// Send queues msg without blocking. A client too slow to drain its queue
// misses messages; the next GAME_STATE catches it up.
func (c *client) Send(msg games.Message) {
	select {
	case <-c.done:
		return
	default:
	}

	select {
	case c.send <- msg:
	default:
	}
}

// Close hangs up. It is safe to call more than once.
func (c *client) Close() {
	c.once.Do(func() { close(c.done) })
}

type envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type inbound struct {
	RoomCode    string          `json:"roomCode"`
	PlayerName  string          `json:"playerName"`
	Settings    *games.Settings `json:"settings"`
	Difficulty  string          `json:"difficulty"`
	GameLength  string          `json:"gameLength"`
	WordCount   int             `json:"wordCount"`
	Description string          `json:"description"`
	Vote        *bool           `json:"vote"`
	Answer      string          `json:"answer"`
}

// decodeAction turns one wire message into an engine action.
func decodeAction(data []byte) (games.Action, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, errMalformed
	}

	var in inbound
	if len(env.Payload) > 0 && string(env.Payload) != "null" {
		if err := json.Unmarshal(env.Payload, &in); err != nil {
			return nil, fmt.Errorf("%w: bad %s payload", errMalformed, env.Type)
		}
	}

	switch env.Type {
	case "CREATE_ROOM":
		return games.CreateRoom{}, nil
	case "TV_JOIN":
		return games.WatchRoom{Code: in.RoomCode}, nil
	case "JOIN":
		return games.Join{Code: in.RoomCode, Name: in.PlayerName}, nil
	case "START_GAME":
		settings := games.Settings{
			Difficulty: in.Difficulty,
			GameLength: in.GameLength,
		}
		if in.Settings != nil {
			if in.Settings.Difficulty != "" {
				settings.Difficulty = in.Settings.Difficulty
			}
			if in.Settings.GameLength != "" {
				settings.GameLength = in.Settings.GameLength
			}
		}
		return games.StartGame{Settings: settings}, nil
	case "BID":
		return games.PlaceBid{Words: in.WordCount}, nil
	case "SUBMIT_DESCRIPTION":
		return games.SubmitDescription{Text: in.Description}, nil
	case "VOTE":
		if in.Vote == nil {
			return nil, fmt.Errorf("%w: vote must be true or false", errMalformed)
		}
		return games.CastVote{Success: *in.Vote}, nil
	case "SUBMIT_ANSWER":
		return games.SubmitAnswer{Text: in.Answer}, nil
	case "RESTART_GAME", "PLAY_AGAIN":
		return games.Restart{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", games.ErrUnknownAction, env.Type)
	}
}

func (c *client) lookup(reg *games.Registry, variant games.Variant, code string) (*games.Session, error) {
	s, err := reg.Get(code)
	if err != nil {
		return nil, err
	}
	if s.Variant() != variant {
		return nil, games.ErrRoomNotFound
	}
	return s, nil
}

// handle routes an action: room-binding actions are served here, the
// rest go to the bound session.
func (c *client) handle(cfg *Config, reg *games.Registry, variant games.Variant, act games.Action) error {
	if c.session != nil {
		return c.session.Act(c.playerID, c.display, act)
	}

	switch act := act.(type) {
	case games.CreateRoom:
		s, err := reg.Create(variant)
		if err != nil {
			return err
		}

		c.Send(games.Message{Type: games.MsgRoomCreated, Payload: newRoomLinks(c.base, variant, s.Code())})

		if err := s.Watch(c); err != nil {
			return err
		}
		c.session, c.display = s, true

		logf(cfg, "GAMES: Created %s room %s", variant, s.Code())

	case games.WatchRoom:
		s, err := c.lookup(reg, variant, act.Code)
		if err != nil {
			return err
		}
		if err := s.Watch(c); err != nil {
			return err
		}
		c.session, c.display = s, true

	case games.Join:
		s, err := c.lookup(reg, variant, act.Code)
		if err != nil {
			return err
		}
		p, err := s.Join(act.Name, c)
		if err != nil {
			return err
		}
		c.session, c.playerID = s, p.ID

	default:
		return errNotInRoom
	}

	return nil
}

// detach unbinds the client from its room and removes the room once
// nobody is left in it.
func (c *client) detach(reg *games.Registry) {
	c.Close()

	if c.session == nil {
		return
	}

	var empty bool
	if c.display {
		empty = c.session.Unwatch(c)
	} else {
		empty = c.session.Leave(c.playerID)
	}

	if empty {
		reg.Release(c.session)
	}
}

func (c *client) readPump(cfg *Config, reg *games.Registry, variant games.Variant) {
	defer c.detach(reg)

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}

		if !c.limiter.Allow() {
			c.Send(games.ErrorMessage(errRateLimited))
			continue
		}

		act, err := decodeAction(data)
		if err == nil {
			err = c.handle(cfg, reg, variant, act)
		}
		if err != nil {
			cfg.log.Debug().Str("action", games.Kind(act)).Err(err).Msg("action rejected")
			c.Send(games.ErrorMessage(err))
		}
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.done:
			_ = c.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(writeWait))
			return
		}
	}
}

func serveWS(cfg *Config, reg *games.Registry, variant games.Variant) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logf(cfg, "WS: Upgrade for %s failed: %v", realIP(r), err)
			return
		}

		c := newClient(cfg, conn, baseURL(cfg, r))

		logf(cfg, "WS: %s connected to %s", realIP(r), variant)

		go c.writePump()
		c.readPump(cfg, reg, variant)

		logf(cfg, "WS: %s disconnected from %s", realIP(r), variant)
	}
}
