/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package games

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
)

// CodeAlphabet leaves out I, O, 0 and 1, which are easy to misread on a
// TV across the room.
const (
	CodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	CodeLength   = 4

	maxCodeAttempts = 1000
)

var ErrNoFreeCodes = errors.New("no free room codes")

// Registry maps room codes to live sessions. It is created once at
// startup and handed to the transport.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session
	opts     Options
	newCode  func() string
}

func NewRegistry(opts Options) *Registry {
	return &Registry{
		sessions: make(map[string]*Session),
		opts:     opts.withDefaults(),
		newCode:  randomCode,
	}
}

func randomCode() string {
	buf := make([]byte, CodeLength)
	if _, err := rand.Read(buf); err != nil {
		panic("crypto/rand failure: " + err.Error())
	}
	out := make([]byte, CodeLength)
	for i := range out {
		out[i] = CodeAlphabet[int(buf[i])%len(CodeAlphabet)]
	}
	return string(out)
}

// NormalizeCode uppercases and trims user-typed codes.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Create opens a new room with an unused code.
func (r *Registry) Create(variant Variant) (*Session, error) {
	if !variant.Valid() {
		return nil, fmt.Errorf("unknown game %q", variant)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for range maxCodeAttempts {
		code := r.newCode()
		if _, taken := r.sessions[code]; taken {
			continue
		}

		s := newSession(code, variant, r.opts)
		r.sessions[code] = s
		r.opts.Logger.Info().Str("room", code).Str("game", string(variant)).Msg("room created")

		return s, nil
	}

	return nil, ErrNoFreeCodes
}

// Get looks up a room by code.
func (r *Registry) Get(code string) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[NormalizeCode(code)]
	if !ok {
		return nil, ErrRoomNotFound
	}
	return s, nil
}

// Destroy removes a room and stops it.
func (r *Registry) Destroy(code string) {
	r.mu.Lock()
	s, ok := r.sessions[code]
	delete(r.sessions, code)
	r.mu.Unlock()

	if ok {
		s.Close()
		r.opts.Logger.Info().Str("room", code).Msg("room destroyed")
	}
}

// Release removes s if it still owns its code. Endpoints of a reaped room
// use it so they never evict a newer room that reused the code.
func (r *Registry) Release(s *Session) {
	r.mu.Lock()
	owned := r.sessions[s.Code()] == s
	if owned {
		delete(r.sessions, s.Code())
	}
	r.mu.Unlock()

	if owned {
		s.Close()
		r.opts.Logger.Info().Str("room", s.Code()).Msg("room destroyed")
	}
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Reap closes every room idle since before cutoff and returns how many
// went.
func (r *Registry) Reap(cutoff time.Time) int {
	var stale []*Session

	r.mu.Lock()
	for code, s := range r.sessions {
		if s.LastActive().Before(cutoff) {
			delete(r.sessions, code)
			stale = append(stale, s)
		}
	}
	r.mu.Unlock()

	for _, s := range stale {
		s.Close()
		r.opts.Logger.Info().
			Str("room", s.Code()).
			Dur("age", time.Since(s.CreatedAt()).Round(time.Second)).
			Msg("room reaped")
	}

	return len(stale)
}

// Janitor reaps idle rooms until ctx is done.
func (r *Registry) Janitor(ctx context.Context) {
	idle := r.opts.IdleTimeout
	if idle <= 0 {
		return
	}

	ticker := time.NewTicker(idle / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			r.Reap(now.Add(-idle))
		}
	}
}
