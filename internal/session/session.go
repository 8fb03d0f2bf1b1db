// Package session runs a local match tick by tick: it feeds bot or human input
// into the match, steps it and reacts to the events it reports.
package session

import (
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"

	"github.com/diegok/blobvolley/internal/bot"
	"github.com/diegok/blobvolley/internal/game"
	"github.com/diegok/blobvolley/internal/protocol"
)

// Bot decides the input of a computer controlled side
type Bot interface {
	Step(snapshot protocol.Snapshot, ballPos, ballVel protocol.Vec2)
	ComputeInput() protocol.PlayerInput
	ResetInput()
}

// Sounds plays the effects triggered by match events
type Sounds interface {
	PlayHit()
	PlayWhistle()
}

type TransitionKind int

const (
	NoTransition TransitionKind = iota
	WinTransition
)

// Transition tells the caller whether the session should move on after a step
type Transition struct {
	Kind   TransitionKind
	Winner protocol.Side
}

// Option configures a Session
type Option func(*Session)

// WithSounds plays effects through s
func WithSounds(s Sounds) Option {
	return func(ses *Session) {
		ses.sounds = s
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(ses *Session) {
		ses.log = logger
	}
}

// WithBots sets how computer players are created, by default a SimpleBot of
// medium strength
func WithBots(newBot func(side protocol.Side) Bot) Option {
	return func(ses *Session) {
		ses.newBot = newBot
	}
}

// WithMatch sets how a new match is created, by default game.New with the
// standard score to win
func WithMatch(newMatch func() *game.Match) Option {
	return func(ses *Session) {
		ses.newMatch = newMatch
	}
}

// Session is a local game between two sides
type Session struct {
	match    *game.Match
	newMatch func() *game.Match
	newBot   func(side protocol.Side) Bot

	players [2]protocol.PlayerKind
	bots    [2]Bot
	events  []protocol.FrameEvent
	frame   int

	sounds Sounds
	log    zerolog.Logger
}

func New(opts ...Option) *Session {
	s := &Session{
		newMatch: func() *game.Match { return game.New(0) },
		newBot: func(side protocol.Side) Bot {
			return bot.NewSimpleBot(side, bot.MaxStrength/2)
		},
		sounds: silent{},
		log:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.match = s.newMatch()
	return s
}

// SetPlayers chooses who controls each side
func (s *Session) SetPlayers(left, right protocol.PlayerKind) {
	for _, side := range protocol.Sides {
		kind := left
		if side == protocol.SideRight {
			kind = right
		}
		s.players[side] = kind
		s.bots[side] = nil
		if kind == protocol.Computer {
			s.bots[side] = s.newBot(side)
		}
	}
	s.log.Debug().Stringer("left", left).Stringer("right", right).Msg("players set")
}

// SetHumanInput forwards the input of a human side; computer sides ignore it
func (s *Session) SetHumanInput(side protocol.Side, input protocol.PlayerInput) {
	if s.players[side.Index()] == protocol.Computer {
		return
	}
	s.match.World().SetPlayerInput(side, input)
}

// Reset starts a new match with the same players
func (s *Session) Reset() {
	s.match = s.newMatch()
	s.events = s.events[:0]
	s.frame = 0
	for _, b := range s.bots {
		if b != nil {
			b.ResetInput()
		}
	}
	s.log.Debug().Msg("new match")
}

// Step runs one tick of the match
func (s *Session) Step() Transition {
	s.events = s.events[:0]

	for _, side := range [2]protocol.Side{protocol.SideRight, protocol.SideLeft} {
		if s.players[side] == protocol.Computer {
			s.driveBot(side)
		}
	}

	s.events = s.match.Step(s.events)

	if protocol.ContainsKind(s.events, protocol.EventBlobbyHit) {
		s.sounds.PlayHit()
	}
	if protocol.ContainsKind(s.events, protocol.EventError) {
		s.sounds.PlayWhistle()
	}
	if s.frame == 0 {
		s.sounds.PlayWhistle()
	}
	s.logEvents()
	s.frame++

	for _, side := range protocol.Sides {
		for _, e := range s.events {
			if e == protocol.Win(side) {
				return Transition{Kind: WinTransition, Winner: side}
			}
		}
	}
	return Transition{}
}

func (s *Session) driveBot(side protocol.Side) {
	b := s.bots[side]
	if b == nil {
		panic(eris.Errorf("%v side is computer controlled but has no bot", side))
	}

	world := s.match.World()
	b.Step(s.match.Snapshot(), world.BallPosition(), world.BallVelocity())
	world.SetPlayerInput(side, b.ComputeInput())
	b.ResetInput()
}

func (s *Session) logEvents() {
	for _, e := range s.events {
		switch e.Kind {
		case protocol.EventError:
			left, right := s.match.Scores()
			s.log.Debug().Int("frame", s.frame).Stringer("side", e.Side).
				Int("left", left).Int("right", right).Msg("fault")
		case protocol.EventWin:
			left, right := s.match.Scores()
			s.log.Info().Int("frame", s.frame).Stringer("winner", e.Side).
				Int("left", left).Int("right", right).Msg("match won")
		case protocol.EventReset:
			s.log.Debug().Int("frame", s.frame).Stringer("serving", s.match.ServingPlayer()).Msg("round reset")
		}
	}
}

func (s *Session) Match() *game.Match { return s.match }

// Events returns the events of the last step, valid until the next one
func (s *Session) Events() []protocol.FrameEvent { return s.events }

// Frame returns the number of steps since the session or match started
func (s *Session) Frame() int { return s.frame }

func (s *Session) Players() (protocol.PlayerKind, protocol.PlayerKind) {
	return s.players[protocol.SideLeft], s.players[protocol.SideRight]
}

type silent struct{}

func (silent) PlayHit()     {}
func (silent) PlayWhistle() {}
