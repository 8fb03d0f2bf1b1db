// Package game drives one match: it steps the physics and the rules in lockstep
// and reports what happened on each tick as a list of frame events.
package game

import (
	"github.com/diegok/blobvolley/internal/physics"
	"github.com/diegok/blobvolley/internal/protocol"
	"github.com/diegok/blobvolley/internal/rules"
)

// Physics is the continuous part of a match
type Physics interface {
	Step()

	BallHitLeftPlayer() bool
	BallHitRightPlayer() bool
	BallHitLeftGround() bool
	BallHitRightGround() bool
	IsRoundFinished() bool

	Reset(serving protocol.Side)
	ResetPlayer()
	DampBall()
	SetBallValidity(valid bool)

	SetPlayerInput(side protocol.Side, input protocol.PlayerInput)
	PlayerInput(side protocol.Side) protocol.PlayerInput

	BallPosition() protocol.Vec2
	BallVelocity() protocol.Vec2
	BallRotation() float64
	BlobPosition(side protocol.Side) protocol.Vec2
	BlobVelocity(side protocol.Side) protocol.Vec2
	BlobState(side protocol.Side) float64
	IsGameRunning() bool
	IsBallValid() bool
}

// Rules is the discrete part of a match: scores, serve and faults
type Rules interface {
	Step()
	OnBallHitsPlayer(side protocol.Side) bool
	OnBallHitsGround(side protocol.Side)
	// LastError returns the side that faulted since the last call, if any
	LastError() (protocol.Side, bool)
	Winner() (protocol.Side, bool)
	ServingPlayer() protocol.Side
	Scores() (left, right int)
	// OnServe re-arms the rules for the next rally after the court was reset
	OnServe()
}

// Match owns one physics and one rules instance for the lifetime of a game
type Match struct {
	physics Physics
	rules   Rules
}

// New creates a match on the box2d court that ends at pointsToWin
func New(pointsToWin int) *Match {
	return NewMatch(physics.NewWorld(), rules.NewLogic(pointsToWin))
}

// NewMatch takes ownership of p and r. The players are put at their start
// positions and the physics is advanced once so the first Step works on a
// settled world.
func NewMatch(p Physics, r Rules) *Match {
	p.ResetPlayer()
	p.Step()
	return &Match{physics: p, rules: r}
}

// Step advances the match by one tick and appends the events of that tick to
// events in the order they happened
func (m *Match) Step(events []protocol.FrameEvent) []protocol.FrameEvent {
	m.physics.Step()
	m.rules.Step()

	if m.physics.BallHitLeftPlayer() && m.rules.OnBallHitsPlayer(protocol.SideLeft) {
		events = append(events, protocol.BlobbyHit(protocol.SideLeft))
	}
	if m.physics.BallHitRightPlayer() && m.rules.OnBallHitsPlayer(protocol.SideRight) {
		events = append(events, protocol.BlobbyHit(protocol.SideRight))
	}

	hitGround := false
	if m.physics.BallHitLeftGround() {
		hitGround = true
		m.rules.OnBallHitsGround(protocol.SideLeft)
		events = append(events, protocol.BallHitGround(protocol.SideLeft))
	}
	if m.physics.BallHitRightGround() {
		hitGround = true
		m.rules.OnBallHitsGround(protocol.SideRight)
		events = append(events, protocol.BallHitGround(protocol.SideRight))
	}

	if side, ok := m.rules.LastError(); ok {
		// an airborne fault keeps flying, slow it down
		if !hitGround {
			m.physics.DampBall()
		}
		events = append(events, protocol.Error(side))
		m.physics.SetBallValidity(false)
	}

	if m.physics.IsRoundFinished() {
		events = append(events, protocol.Reset())
		m.physics.Reset(m.rules.ServingPlayer())
		m.rules.OnServe()
	}

	if side, ok := m.rules.Winner(); ok {
		events = append(events, protocol.Win(side))
	}

	return events
}

// World returns the physics for input and rendering reads between steps
func (m *Match) World() Physics {
	return m.physics
}

func (m *Match) BallPosition() protocol.Vec2 {
	return m.physics.BallPosition()
}

func (m *Match) BlobPosition(side protocol.Side) protocol.Vec2 {
	return m.physics.BlobPosition(side)
}

func (m *Match) Scores() (int, int) {
	return m.rules.Scores()
}

func (m *Match) ServingPlayer() protocol.Side {
	return m.rules.ServingPlayer()
}

// Winner reports the side that has won the match, if any
func (m *Match) Winner() (protocol.Side, bool) {
	return m.rules.Winner()
}

// Snapshot assembles the state a bot sees for the coming tick
func (m *Match) Snapshot() protocol.Snapshot {
	var s protocol.Snapshot
	for _, side := range protocol.Sides {
		s.BlobPositions[side] = m.physics.BlobPosition(side)
		s.BlobVelocities[side] = m.physics.BlobVelocity(side)
	}
	s.IsGameRunning = m.physics.IsGameRunning()
	s.IsBallValid = m.physics.IsBallValid()
	s.ServingPlayer = m.rules.ServingPlayer()
	return s
}
