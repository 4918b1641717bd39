/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package games

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

const noDescription = "(No description given)"

// Auction is the bidding variant. Players undercut each other on how few
// words they need to describe a word; the lowest bidder describes and the
// rest vote on whether it worked.
type Auction struct {
	room    *Room
	words   *Pool
	policy  Policy
	timings Timings
	now     func() time.Time

	difficulty  string
	word        string
	bid         int
	bidderID    string
	bids        []standingBid
	lastBid     time.Time
	description string
	votes       map[string]bool
}

func newAuction(room *Room, words *Pool, policy Policy, timings Timings) *Auction {
	a := &Auction{
		room:       room,
		words:      words,
		policy:     policy,
		timings:    timings,
		now:        time.Now,
		difficulty: DifficultyMedium,
		votes:      make(map[string]bool),
	}
	a.clearRound()
	return a
}

// AuctionResult summarizes one scored round.
type AuctionResult struct {
	Word          string `json:"word"`
	Description   string `json:"description"`
	WordCount     int    `json:"wordCount"`
	Success       bool   `json:"success"`
	SuccessVotes  int    `json:"successVotes"`
	FailVotes     int    `json:"failVotes"`
	Points        int    `json:"points"`
	DescriberID   string `json:"describerId"`
	DescriberName string `json:"describerName"`
	NewScore      int    `json:"newScore"`
}

// AuctionView is the round-local part of the public state.
type AuctionView struct {
	Difficulty      string `json:"difficulty"`
	Word            string `json:"currentWord"`
	Bid             int    `json:"currentBid"`
	BidderID        string `json:"currentBidderId"`
	BidderName      string `json:"currentBidderName"`
	Description     string `json:"description"`
	VotesReceived   int    `json:"votesReceived"`
	TotalVoters     int    `json:"totalVoters"`
	PotentialPoints int    `json:"potentialPoints"`
}

// standingBid is one accepted bid. Bids only go down, so the last one
// still held by a present player is the current bid.
type standingBid struct {
	playerID string
	words    int
}

type BidPayload struct {
	Bid        int    `json:"bid"`
	BidderID   string `json:"bidderId"`
	BidderName string `json:"bidderName"`
}

type DescriptionPayload struct {
	Description string `json:"description"`
	WordCount   int    `json:"wordCount"`
}

type VotePayload struct {
	VotesReceived int `json:"votesReceived"`
	TotalVoters   int `json:"totalVoters"`
}

func (a *Auction) clearRound() {
	a.bid = a.policy.OpeningBid
	a.bidderID = ""
	a.bids = a.bids[:0]
	a.lastBid = time.Time{}
	a.description = ""
	clear(a.votes)
}

// Start validates the start guards and configures the game.
func (a *Auction) Start(settings Settings) error {
	if err := a.room.begin(a.room.Variant().Rounds(settings.GameLength)); err != nil {
		return err
	}

	a.difficulty = DifficultyMedium
	switch settings.Difficulty {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		a.difficulty = settings.Difficulty
	}
	a.word = ""
	a.clearRound()

	return nil
}

// StartRound advances the round and draws a fresh word.
func (a *Auction) StartRound() string {
	a.room.nextRound()
	a.clearRound()

	a.word = a.words.Pick(a.difficulty, a.room.used)
	a.room.markUsed(a.word)

	return a.word
}

// PlaceBid undercuts the current bid.
func (a *Auction) PlaceBid(playerID string, words int) error {
	if a.room.Phase() != PhaseBidding {
		return ErrWrongPhase
	}
	if !a.room.has(playerID) {
		return ErrNotAuthorized
	}
	if words >= a.bid {
		return ErrBidTooHigh
	}
	if words < MinBid || words > MaxBid {
		return ErrBidOutOfRange
	}

	a.bid = words
	a.bidderID = playerID
	a.bids = append(a.bids, standingBid{playerID: playerID, words: words})
	a.lastBid = a.now()

	return nil
}

// dropBids forgets a departed player's bids. The lowest bid still held by
// someone else becomes current again.
func (a *Auction) dropBids(playerID string) {
	a.bids = slices.DeleteFunc(a.bids, func(b standingBid) bool {
		return b.playerID == playerID
	})

	if playerID != a.bidderID {
		return
	}

	a.bid, a.bidderID = a.policy.OpeningBid, ""
	if n := len(a.bids); n > 0 {
		a.bid, a.bidderID = a.bids[n-1].words, a.bids[n-1].playerID
	}
	a.lastBid = a.now()
}

// SubmitDescription records the describer's text if it fits the bid.
func (a *Auction) SubmitDescription(playerID, text string) (int, error) {
	if a.room.Phase() != PhaseDescribing {
		return 0, ErrWrongPhase
	}
	if playerID != a.bidderID {
		return 0, errNoDescriptionWanted
	}

	text = strings.TrimSpace(text)
	count := len(strings.Fields(text))
	if count > a.bid {
		return count, fmt.Errorf("%w: you bid %d, but used %d", ErrWordBudgetExceeded, a.bid, count)
	}
	if count == 0 {
		text = noDescription
	}

	a.description = text
	return count, nil
}

// SubmitVote records a vote and reports whether every eligible voter has
// now voted.
func (a *Auction) SubmitVote(playerID string, success bool) (bool, error) {
	if a.room.Phase() != PhaseVoting {
		return false, ErrWrongPhase
	}
	if !a.room.has(playerID) {
		return false, ErrNotAuthorized
	}
	if playerID == a.bidderID {
		return false, fmt.Errorf("%w: the describer cannot vote", ErrNotAuthorized)
	}

	a.votes[playerID] = success

	return a.AllVoted(), nil
}

// AllVoted reports whether every current non-describer has voted.
func (a *Auction) AllVoted() bool {
	for _, id := range a.room.order {
		if id == a.bidderID {
			continue
		}
		if _, ok := a.votes[id]; !ok {
			return false
		}
	}
	return true
}

func (a *Auction) voters() int {
	n := a.room.PlayerCount()
	if a.room.has(a.bidderID) {
		n--
	}
	return max(n, 0)
}

// CalculateResults tallies the votes and pays the describer.
func (a *Auction) CalculateResults() AuctionResult {
	res := AuctionResult{
		Word:          a.word,
		Description:   a.description,
		WordCount:     a.bid,
		DescriberID:   a.bidderID,
		DescriberName: a.room.Name(a.bidderID),
	}

	for _, v := range a.votes {
		if v {
			res.SuccessVotes++
		} else {
			res.FailVotes++
		}
	}

	res.Success = res.SuccessVotes > res.FailVotes ||
		(res.SuccessVotes == res.FailVotes && a.policy.TieGoesToDescriber)
	res.Points = BidPoints(a.bid, res.Success)
	res.NewScore = a.room.addScore(a.bidderID, res.Points)

	return res
}

func (a *Auction) view() any {
	return AuctionView{
		Difficulty:      a.difficulty,
		Word:            a.word,
		Bid:             a.bid,
		BidderID:        a.bidderID,
		BidderName:      a.room.Name(a.bidderID),
		Description:     a.description,
		VotesReceived:   len(a.votes),
		TotalVoters:     a.voters(),
		PotentialPoints: PointsForBid(a.bid),
	}
}

func (a *Auction) reset() {
	a.word = ""
	a.clearRound()
}

func (a *Auction) start(s *Session, settings Settings) error {
	if err := a.Start(settings); err != nil {
		return err
	}
	s.broadcast(MsgGameStarted, PhasePayload{TotalRounds: a.room.TotalRounds()})
	a.revealWord(s)
	return nil
}

func (a *Auction) act(s *Session, playerID string, act Action) error {
	switch act := act.(type) {
	case PlaceBid:
		if err := a.PlaceBid(playerID, act.Words); err != nil {
			return err
		}
		s.broadcast(MsgBidPlaced, BidPayload{
			Bid:        a.bid,
			BidderID:   a.bidderID,
			BidderName: a.room.Name(a.bidderID),
		})
		s.sendState()

	case SubmitDescription:
		count, err := a.SubmitDescription(playerID, act.Text)
		if err != nil {
			return err
		}
		s.broadcast(MsgDescriptionSubmitted, DescriptionPayload{
			Description: a.description,
			WordCount:   count,
		})
		a.openVoting(s)

	case CastVote:
		all, err := a.SubmitVote(playerID, act.Success)
		if err != nil {
			return err
		}
		s.broadcast(MsgVoteReceived, VotePayload{
			VotesReceived: len(a.votes),
			TotalVoters:   a.voters(),
		})
		if all {
			a.showResults(s)
		} else {
			s.sendState()
		}

	default:
		return ErrWrongPhase
	}

	return nil
}

func (a *Auction) left(s *Session, playerID string) {
	switch a.room.Phase() {
	case PhaseBidding:
		a.dropBids(playerID)

	case PhaseDescribing, PhaseVoting:
		if playerID == a.bidderID {
			a.nextOrEnd(s)
			return
		}
		if a.room.Phase() == PhaseVoting && len(a.votes) > 0 && a.AllVoted() {
			a.showResults(s)
		}
	}
}

func (a *Auction) revealWord(s *Session) {
	word := a.StartRound()
	s.enter(PhaseContentReveal)
	s.countdown(a.timings.WordReveal, func() { a.openBidding(s) })
	s.announce(word)
}

func (a *Auction) openBidding(s *Session) {
	s.enter(PhaseBidding)
	a.lastBid = a.now()
	s.countdown(a.timings.Bidding, func() { a.closeBidding(s) })
	s.sched.Watch(a.timings.BidIdlePoll, a.biddingIdle, func() { a.openDescribing(s) })
	s.announce("")
}

// biddingIdle is the idle watchdog condition: someone has bid and nobody
// has undercut them for the idle window.
func (a *Auction) biddingIdle() bool {
	return a.bidderID != "" && a.now().Sub(a.lastBid) >= a.timings.BidIdle
}

func (a *Auction) closeBidding(s *Session) {
	if a.bidderID != "" {
		a.openDescribing(s)
		return
	}
	a.nextOrEnd(s)
}

func (a *Auction) nextOrEnd(s *Session) {
	if a.room.IsGameOver() {
		s.gameOver()
		return
	}
	a.revealWord(s)
}

func (a *Auction) openDescribing(s *Session) {
	s.enter(PhaseDescribing)
	s.countdown(a.timings.Describing, func() {
		if a.description == "" {
			a.description = noDescription
		}
		a.openVoting(s)
	})
	s.announce("")
}

func (a *Auction) openVoting(s *Session) {
	s.enter(PhaseVoting)
	s.countdown(a.timings.Voting, func() { a.showResults(s) })
	s.announce("")
}

func (a *Auction) showResults(s *Session) {
	s.enter(PhaseScoring)
	res := a.CalculateResults()
	s.log.Info().
		Str("describer", res.DescriberName).
		Bool("success", res.Success).
		Int("points", res.Points).
		Msg("round scored")
	s.broadcast(MsgRoundResults, res)
	s.countdown(a.timings.Results, func() { a.nextOrEnd(s) })
	s.announce("")
}
