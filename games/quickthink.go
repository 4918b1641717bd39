/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package games

import (
	"math/rand/v2"
)

const maxAnswerLength = 500

// QuickThink is the category variant: everyone types as many answers as
// they can for a category, and only answers nobody else thought of score.
type QuickThink struct {
	room       *Room
	categories *Pool
	rules      ScoreRules
	timings    Timings
	shuffle    func([]MarkedAnswer)

	sequence []string
	category string
	answers  map[string]string
	marked   []MarkedAnswer
	revealed int
	tally    Tally
}

func newQuickThink(room *Room, categories *Pool, rules ScoreRules, timings Timings) *QuickThink {
	return &QuickThink{
		room:       room,
		categories: categories,
		rules:      rules,
		timings:    timings,
		answers:    make(map[string]string),
		shuffle: func(m []MarkedAnswer) {
			rand.Shuffle(len(m), func(i, j int) { m[i], m[j] = m[j], m[i] })
		},
	}
}

// MarkedAnswer is one entry as revealed to the room.
type MarkedAnswer struct {
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName"`
	Answer     string `json:"answer"`
	Canonical  string `json:"canonical"`
	Unique     bool   `json:"unique"`
	Points     int    `json:"points"`
}

// QuickThinkView is the round-local part of the public state.
type QuickThinkView struct {
	Category     string `json:"currentCategory"`
	Submitted    int    `json:"submittedCount"`
	RevealIndex  int    `json:"revealIndex"`
	TotalAnswers int    `json:"totalAnswers"`
}

type RevealPayload struct {
	MarkedAnswer
	RevealIndex  int `json:"revealIndex"`
	TotalAnswers int `json:"totalAnswers"`
}

type RoundScores struct {
	Category      string         `json:"category"`
	RoundPoints   map[string]int `json:"roundPoints"`
	Bonus         map[string]int `json:"bonus"`
	Scores        map[string]int `json:"scores"`
	MarkedAnswers []MarkedAnswer `json:"markedAnswers"`
	Groups        []Group        `json:"groups"`
}

type AnswerPayload struct {
	PlayerID string `json:"playerId,omitempty"`
	Answer   string `json:"answer,omitempty"`
}

func (q *QuickThink) clearRound() {
	clear(q.answers)
	q.marked = nil
	q.revealed = 0
	q.tally = Tally{}
}

// Start validates the start guards and draws the game's categories.
func (q *QuickThink) Start(settings Settings) error {
	rounds := q.room.Variant().Rounds(settings.GameLength)
	if err := q.room.begin(rounds); err != nil {
		return err
	}

	q.sequence = q.categories.Sequence(rounds, nil)
	q.category = ""
	q.clearRound()

	return nil
}

// StartRound advances the round and moves to the next category.
func (q *QuickThink) StartRound() string {
	n := q.room.nextRound()
	q.clearRound()

	if n-1 < len(q.sequence) {
		q.category = q.sequence[n-1]
	} else {
		q.category = q.categories.Pick("", q.room.used)
	}
	q.room.markUsed(q.category)

	return q.category
}

// SubmitAnswer replaces the player's answer box; the last write wins.
func (q *QuickThink) SubmitAnswer(playerID, text string) error {
	if q.room.Phase() != PhaseActiveInput {
		return ErrWrongPhase
	}
	if !q.room.has(playerID) {
		return ErrNotAuthorized
	}

	if runes := []rune(text); len(runes) > maxAnswerLength {
		text = string(runes[:maxAnswerLength])
	}
	q.answers[playerID] = text

	return nil
}

// LockAnswers snapshots every player's box, scores it and queues the
// entries for reveal in random order.
func (q *QuickThink) LockAnswers() []MarkedAnswer {
	subs := make([]Submission, 0, q.room.PlayerCount())
	for _, id := range q.room.order {
		subs = append(subs, Submission{PlayerID: id, Text: q.answers[id]})
	}

	q.tally = ScoreAnswers(subs, q.rules)

	q.marked = make([]MarkedAnswer, 0, len(q.tally.Entries))
	for _, e := range q.tally.Entries {
		q.marked = append(q.marked, MarkedAnswer{
			PlayerID:   e.PlayerID,
			PlayerName: q.room.Name(e.PlayerID),
			Answer:     e.Text,
			Canonical:  q.tally.Groups[e.Group].Canonical,
			Unique:     e.Unique,
			Points:     e.Points,
		})
	}
	q.shuffle(q.marked)
	q.revealed = 0

	return q.marked
}

// RevealNext pops the next answer off the reveal queue.
func (q *QuickThink) RevealNext() (MarkedAnswer, bool) {
	if q.revealed >= len(q.marked) {
		return MarkedAnswer{}, false
	}
	m := q.marked[q.revealed]
	q.revealed++
	return m, true
}

// ApplyScores adds the locked round's points to the running totals.
func (q *QuickThink) ApplyScores() RoundScores {
	for id, pts := range q.tally.Points {
		q.room.addScore(id, pts)
	}

	return RoundScores{
		Category:      q.category,
		RoundPoints:   q.tally.Points,
		Bonus:         q.tally.Bonus,
		Scores:        q.room.Scores(),
		MarkedAnswers: q.marked,
		Groups:        q.tally.Groups,
	}
}

func (q *QuickThink) view() any {
	return QuickThinkView{
		Category:     q.category,
		Submitted:    len(q.answers),
		RevealIndex:  q.revealed,
		TotalAnswers: len(q.marked),
	}
}

func (q *QuickThink) reset() {
	q.sequence = nil
	q.category = ""
	q.clearRound()
}

func (q *QuickThink) start(s *Session, settings Settings) error {
	if err := q.Start(settings); err != nil {
		return err
	}
	s.broadcast(MsgGameStarted, PhasePayload{TotalRounds: q.room.TotalRounds()})
	q.revealCategory(s)
	return nil
}

func (q *QuickThink) act(s *Session, playerID string, act Action) error {
	switch act := act.(type) {
	case SubmitAnswer:
		if err := q.SubmitAnswer(playerID, act.Text); err != nil {
			return err
		}
		s.sendTo(playerID, MsgAnswerReceived, AnswerPayload{Answer: q.answers[playerID]})
		s.broadcastExcept(playerID, MsgPlayerSubmitted, AnswerPayload{PlayerID: playerID})
		return nil

	default:
		return ErrWrongPhase
	}
}

func (q *QuickThink) left(_ *Session, playerID string) {
	delete(q.answers, playerID)
}

func (q *QuickThink) revealCategory(s *Session) {
	category := q.StartRound()
	s.enter(PhaseContentReveal)
	s.countdown(q.timings.CategoryReveal, func() { q.countIn(s) })
	s.announce(category)
}

func (q *QuickThink) countIn(s *Session) {
	s.enter(PhaseCountdown)
	s.countdown(q.timings.Countdown, func() { q.openTyping(s) })
	s.announce("")
}

func (q *QuickThink) openTyping(s *Session) {
	s.enter(PhaseActiveInput)
	s.countdown(q.timings.Typing, func() { q.lock(s) })
	s.announce(q.category)
}

func (q *QuickThink) lock(s *Session) {
	s.enter(PhaseLocked)
	q.LockAnswers()
	s.countdown(q.timings.Locked, func() { q.startReveal(s) })
	s.announce("")
}

func (q *QuickThink) startReveal(s *Session) {
	s.enter(PhaseReveal)
	s.sched.Cancel()
	s.announce("")
	q.revealStep(s)
}

// revealStep shows one answer and schedules the next; once the queue is
// empty it moves on to scoring.
func (q *QuickThink) revealStep(s *Session) {
	m, ok := q.RevealNext()
	if !ok {
		q.score(s)
		return
	}

	s.broadcast(MsgRevealAnswer, RevealPayload{
		MarkedAnswer: m,
		RevealIndex:  q.revealed,
		TotalAnswers: len(q.marked),
	})
	s.sched.After(q.timings.RevealInterval(len(q.marked)), func() { q.revealStep(s) })
}

func (q *QuickThink) score(s *Session) {
	s.enter(PhaseScoring)
	scores := q.ApplyScores()
	s.log.Info().Str("category", q.category).Int("answers", len(q.marked)).Msg("round scored")
	s.broadcast(MsgRoundResults, scores)
	s.countdown(q.timings.Scoring, func() { q.nextOrEnd(s) })
	s.announce("")
}

func (q *QuickThink) nextOrEnd(s *Session) {
	if q.room.IsGameOver() {
		s.gameOver()
		return
	}
	q.revealCategory(s)
}
