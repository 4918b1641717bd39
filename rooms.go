/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Seednode/partyroom/games"
	"github.com/julienschmidt/httprouter"
	"github.com/skip2/go-qrcode"
)

const qrSize = 320

// roomLinks tells a display where players should go.
type roomLinks struct {
	RoomCode  string `json:"roomCode"`
	ServerURL string `json:"serverUrl"`
	JoinURL   string `json:"joinUrl"`
	QRURL     string `json:"qrUrl"`
}

func newRoomLinks(base string, variant games.Variant, code string) roomLinks {
	game := base + "/" + string(variant)

	return roomLinks{
		RoomCode:  code,
		ServerURL: base,
		JoinURL:   game + "?room=" + url.QueryEscape(code),
		QRURL:     game + "/qr/" + url.PathEscape(code),
	}
}

// baseURL is --public-url when set. Otherwise it is derived from the
// request, respecting TLS and X-Forwarded-Proto.
func baseURL(cfg *Config, r *http.Request) string {
	if cfg.publicURL != "" {
		return strings.TrimSuffix(cfg.publicURL, "/") + cfg.prefix
	}

	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}

	return scheme + "://" + r.Host + cfg.prefix
}

func writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, games.ErrRoomNotFound):
		return http.StatusNotFound
	case errors.Is(err, games.ErrNoFreeCodes):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) error {
	return writeJSON(w, errorStatus(err), games.ErrorPayload{
		Message: err.Error(),
		Code:    games.ErrorCode(err),
	})
}

// serveCreateRoom opens a room without a websocket, for displays that
// want to show a code before connecting.
func serveCreateRoom(cfg *Config, reg *games.Registry, variant games.Variant, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		startTime := time.Now()

		securityHeaders(cfg, w)

		s, err := reg.Create(variant)
		if err != nil {
			if err := writeError(w, err); err != nil {
				errs <- err
			}
			return
		}

		if err := writeJSON(w, http.StatusCreated, newRoomLinks(baseURL(cfg, r), variant, s.Code())); err != nil {
			errs <- err

			return
		}

		logf(cfg, "GAMES: Created %s room %s for %s in %s",
			variant,
			s.Code(),
			realIP(r),
			time.Since(startTime).Round(time.Microsecond),
		)
	}
}

// serveRoomState returns the public snapshot of one room.
func serveRoomState(cfg *Config, reg *games.Registry, variant games.Variant, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		securityHeaders(cfg, w)

		s, err := reg.Get(p.ByName("code"))
		if err == nil && s.Variant() != variant {
			err = games.ErrRoomNotFound
		}
		if err != nil {
			if err := writeError(w, err); err != nil {
				errs <- err
			}
			return
		}

		if err := writeJSON(w, http.StatusOK, s.State()); err != nil {
			errs <- err
		}
	}
}

// serveQR renders the join link of a live room as a PNG.
func serveQR(cfg *Config, reg *games.Registry, variant games.Variant, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		s, err := reg.Get(p.ByName("code"))
		if err != nil || s.Variant() != variant {
			http.Error(w, "room not found", http.StatusNotFound)
			return
		}

		links := newRoomLinks(baseURL(cfg, r), variant, s.Code())

		png, err := qrcode.Encode(links.JoinURL, qrcode.Medium, qrSize)
		if err != nil {
			http.Error(w, "qr generation failed", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Cache-Control", "no-store")
		securityHeaders(cfg, w)

		if _, err := w.Write(png); err != nil {
			errs <- err
		}
	}
}

// registerGame sets up routes so that:
//   - $path/ws          → websocket for every room of this game
//   - $path/rooms       → POST creates a room
//   - $path/rooms/:code → public state of a room
//   - $path/qr/:code    → PNG QR code of the room's join link
func registerGame(cfg *Config, reg *games.Registry, variant games.Variant, mux *httprouter.Router, errs chan<- error) {
	path := cfg.prefix + "/" + string(variant)

	mux.GET(path+"/ws", serveWS(cfg, reg, variant))
	mux.POST(path+"/rooms", serveCreateRoom(cfg, reg, variant, errs))
	mux.GET(path+"/rooms/:code", serveRoomState(cfg, reg, variant, errs))
	mux.GET(path+"/qr/:code", serveQR(cfg, reg, variant, errs))
}
